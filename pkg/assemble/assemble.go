// Package assemble merges a resolved sketch into the single source text handed
// to the preprocessor and renders its asset references as directive lines.
package assemble

import (
	"strings"

	"github.com/goliatone/go-pderun/pkg/sketch"
)

// DefaultFilesMarker prefixes asset directive lines.
const DefaultFilesMarker = "//FILES"

// Assembly is the output of Assemble.
type Assembly struct {
	// Combined is the primary source followed by every auxiliary source.
	Combined string

	// Directives holds one "<marker> name=reference" line per asset, without
	// trailing newlines.
	Directives []string
}

// Option customises assembly.
type Option func(*options)

type options struct {
	filesMarker string
	delimiter   func(name string) string
}

// WithFilesMarker overrides the asset directive marker.
func WithFilesMarker(marker string) Option {
	return func(o *options) {
		if marker = strings.TrimSpace(marker); marker != "" {
			o.filesMarker = marker
		}
	}
}

// WithDelimiter overrides the separator line placed before each auxiliary
// source. The returned line must not end with a newline.
func WithDelimiter(fn func(name string) string) Option {
	return func(o *options) {
		if fn != nil {
			o.delimiter = fn
		}
	}
}

// Delimiter is the default separator line for an auxiliary source.
func Delimiter(name string) string {
	return "// ---- " + name + " ----"
}

// Assemble merges s without mutating it. Auxiliary sources follow the primary
// in insertion order, each preceded by a blank line and a delimiter line. With
// no auxiliary sources the combined text is the primary source verbatim.
func Assemble(s *sketch.Sketch, opts ...Option) (Assembly, error) {
	if s == nil || !s.HasPrimary {
		return Assembly{}, sketch.NewError(sketch.KindNoPrimarySource, "assemble", "", nil)
	}

	cfg := options{filesMarker: DefaultFilesMarker, delimiter: Delimiter}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return Assembly{
		Combined:   combine(s, cfg.delimiter),
		Directives: directives(s.Assets, cfg.filesMarker),
	}, nil
}

func combine(s *sketch.Sketch, delimiter func(string) string) string {
	if s.Sources.Len() == 0 {
		return s.Primary
	}
	var b strings.Builder
	b.WriteString(s.Primary)
	for name, text := range s.Sources.All() {
		b.WriteString("\n\n")
		b.WriteString(delimiter(name))
		b.WriteString("\n")
		b.WriteString(text)
	}
	return b.String()
}

func directives(assets sketch.Entries, marker string) []string {
	if assets.Len() == 0 {
		return nil
	}
	out := make([]string, 0, assets.Len())
	for name, ref := range assets.All() {
		out = append(out, marker+" "+name+"="+ref)
	}
	return out
}
