// Package identifier derives the content-addressed class name for a combined
// sketch source.
package identifier

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
)

// DefaultPrefix is prepended to the digest so the identifier starts with a
// letter.
const DefaultPrefix = "processingApp"

// ErrInvalidPrefix is returned when a prefix would not yield a valid Java
// identifier.
var ErrInvalidPrefix = errors.New("identifier: prefix must match [A-Za-z_][A-Za-z0-9_]*")

// Generator computes prefix + lowercase hex(sha256(text)).
type Generator struct {
	prefix string
}

// New returns a Generator using prefix, or DefaultPrefix when prefix is empty.
func New(prefix string) (*Generator, error) {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if !validPrefix(prefix) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPrefix, prefix)
	}
	return &Generator{prefix: prefix}, nil
}

// Default returns a Generator using DefaultPrefix.
func Default() *Generator {
	return &Generator{prefix: DefaultPrefix}
}

// Prefix returns the configured prefix.
func (g *Generator) Prefix() string {
	return g.prefix
}

// Generate hashes the UTF-8 bytes of combined.
func (g *Generator) Generate(combined string) string {
	sum := sha256.Sum256([]byte(combined))
	return g.prefix + hex.EncodeToString(sum[:])
}

// Generate is a shorthand for Default().Generate.
func Generate(combined string) string {
	return Default().Generate(combined)
}

func validPrefix(prefix string) bool {
	for i, r := range prefix {
		switch {
		case r == '_', r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return prefix != ""
}
