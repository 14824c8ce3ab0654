package sketch

import (
	"path/filepath"
	"strings"
)

// URLPrefix marks inputs carrying a base64 encoded sketch.
const URLPrefix = "pde://sketch/base64/"

// Source identifies where a sketch originated so loaders can operate on
// encoded URLs, directories, or literal text without leaking implementation
// details.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind enumerates the loader modalities.
type SourceKind string

const (
	SourceKindURL     SourceKind = "url"
	SourceKindDir     SourceKind = "dir"
	SourceKindLiteral SourceKind = "literal"
)

// urlSource references a pde:// URL.
type urlSource struct {
	raw string
}

func (s urlSource) Location() string {
	return s.raw
}

func (s urlSource) Kind() SourceKind {
	return SourceKindURL
}

// SourceFromURL returns a Source for a pde:// URL. The URL is validated when
// it is decoded, not here.
func SourceFromURL(raw string) Source {
	return urlSource{raw: raw}
}

// dirSource identifies an on-disk sketch folder.
type dirSource struct {
	path string
}

func (s dirSource) Location() string {
	return s.path
}

func (s dirSource) Kind() SourceKind {
	return SourceKindDir
}

// SourceFromDir returns a Source pointing to a sketch directory.
func SourceFromDir(path string) Source {
	return dirSource{path: filepath.Clean(path)}
}

// literalSource carries the primary source text itself.
type literalSource struct {
	text string
}

func (s literalSource) Location() string {
	return s.text
}

func (s literalSource) Kind() SourceKind {
	return SourceKindLiteral
}

// SourceFromLiteral returns a Source whose location is the sketch text.
func SourceFromLiteral(text string) Source {
	return literalSource{text: text}
}

// IsURL reports whether raw starts with the pde:// sketch scheme.
func IsURL(raw string) bool {
	return strings.HasPrefix(raw, URLPrefix)
}
