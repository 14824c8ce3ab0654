package testsupport

import (
	"bytes"
	"context"
	"encoding/base64"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-pderun/pkg/sketch"
)

// Pair is one name/value entry encoded into a pde:// URL parameter.
type Pair struct {
	Name  string
	Value string
}

// EncodeURL builds a pde://sketch/base64/ URL. Sources become pde= pairs and
// assets data= pairs; every value is base64 encoded.
func EncodeURL(primary string, sources, assets []Pair) string {
	var b strings.Builder
	b.WriteString(sketch.URLPrefix)
	b.WriteString(base64.StdEncoding.EncodeToString([]byte(primary)))

	sep := "?"
	for _, param := range []struct {
		key   string
		pairs []Pair
	}{{"pde", sources}, {"data", assets}} {
		if len(param.pairs) == 0 {
			continue
		}
		encoded := make([]string, 0, len(param.pairs))
		for _, pair := range param.pairs {
			encoded = append(encoded, pair.Name+":"+base64.StdEncoding.EncodeToString([]byte(pair.Value)))
		}
		b.WriteString(sep + param.key + "=" + strings.Join(encoded, ","))
		sep = "&"
	}
	return b.String()
}

// WriteSketchDir creates files (slash separated relative paths) under root and
// returns root.
func WriteSketchDir(t *testing.T, root string, files map[string]string) string {
	t.Helper()

	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}
	return root
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
