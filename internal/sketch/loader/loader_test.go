package loader_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-pderun/internal/sketch/loader"
	"github.com/goliatone/go-pderun/pkg/sketch"
)

func TestLoad_DirectoryScenario(t *testing.T) {
	root := filepath.Join(t.TempDir(), "main")
	writeFile(t, filepath.Join(root, "main.pde"), "void setup() {}\n")
	writeFile(t, filepath.Join(root, "extra.pde"), "void helper() {}\n")
	writeFile(t, filepath.Join(root, "data", "foo.png"), "\x89PNG")
	writeFile(t, filepath.Join(root, "notes.txt"), "ignored")

	l := loader.New(sketch.NewLoaderOptions())
	got, err := l.Load(context.Background(), sketch.SourceFromDir(root))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if got.Primary != "void setup() {}\n" {
		t.Fatalf("primary mismatch: %q", got.Primary)
	}
	if diff := cmp.Diff([]string{"extra.pde=void helper() {}\n"}, collect(got.Sources)); diff != "" {
		t.Fatalf("sources mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"foo.png=data/foo.png"}, collect(got.Assets)); diff != "" {
		t.Fatalf("assets mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_DirectoryFallsBackToFirstEnumerated(t *testing.T) {
	fsys := fstest.MapFS{
		"sketch/b.pde":         {Data: []byte("b")},
		"sketch/a.pde":         {Data: []byte("a")},
		"sketch/c.pde":         {Data: []byte("c")},
		"sketch/data/one.csv":  {Data: []byte("1")},
		"sketch/data/two.json": {Data: []byte("{}")},
	}
	l := loader.New(sketch.NewLoaderOptions(sketch.WithFileSystem(fsys)))
	got, err := l.Load(context.Background(), sketch.SourceFromDir("sketch"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if got.Primary != "a" {
		t.Fatalf("expected first enumerated file as primary, got %q", got.Primary)
	}
	if diff := cmp.Diff([]string{"b.pde=b", "c.pde=c"}, collect(got.Sources)); diff != "" {
		t.Fatalf("sources mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"one.csv=data/one.csv", "two.json=data/two.json"}, collect(got.Assets)); diff != "" {
		t.Fatalf("assets mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_DirectoryCustomSuffixAndDataDir(t *testing.T) {
	fsys := fstest.MapFS{
		"app.java":          {Data: []byte("class A {}")},
		"app.pde":           {Data: []byte("ignored")},
		"assets/sprite.gif": {Data: []byte("gif")},
		"data/skip.txt":     {Data: []byte("skip")},
	}
	l := loader.New(sketch.NewLoaderOptions(
		sketch.WithFileSystem(fsys),
		sketch.WithSourceSuffix(".java"),
		sketch.WithDataDir("assets"),
	))
	got, err := l.Load(context.Background(), sketch.SourceFromDir("."))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Primary != "class A {}" {
		t.Fatalf("primary mismatch: %q", got.Primary)
	}
	if diff := cmp.Diff([]string{"sprite.gif=assets/sprite.gif"}, collect(got.Assets)); diff != "" {
		t.Fatalf("assets mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_DirectoryErrors(t *testing.T) {
	cases := []struct {
		name string
		fsys fstest.MapFS
		dir  string
		want error
	}{
		{
			name: "no primary source",
			fsys: fstest.MapFS{"sketch/readme.md": {Data: []byte("# hi")}},
			dir:  "sketch",
			want: sketch.ErrNoPrimarySource,
		},
		{
			name: "missing directory",
			fsys: fstest.MapFS{"sketch/a.pde": {Data: []byte("a")}},
			dir:  "elsewhere",
			want: sketch.ErrIO,
		},
		{
			name: "invalid utf8 file",
			fsys: fstest.MapFS{"sketch/a.pde": {Data: []byte{0xff, 0xfe}}},
			dir:  "sketch",
			want: sketch.ErrEncoding,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l := loader.New(sketch.NewLoaderOptions(sketch.WithFileSystem(tc.fsys)))
			got, err := l.Load(context.Background(), sketch.SourceFromDir(tc.dir))
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if got != nil {
				t.Fatalf("expected partial results to be discarded, got %#v", got)
			}
		})
	}
}

func TestLoad_HostDirectoryMissing(t *testing.T) {
	l := loader.New(sketch.NewLoaderOptions())
	_, err := l.Load(context.Background(), sketch.SourceFromDir(filepath.Join(t.TempDir(), "missing")))
	if !errors.Is(err, sketch.ErrIO) {
		t.Fatalf("expected io error, got %v", err)
	}
}

func TestLoad_URLAndLiteral(t *testing.T) {
	l := loader.New(sketch.NewLoaderOptions())

	fromURL, err := l.Load(context.Background(), sketch.SourceFromURL("pde://sketch/base64/aGVsbG8="))
	if err != nil {
		t.Fatalf("load url: %v", err)
	}
	if fromURL.Primary != "hello" {
		t.Fatalf("url primary mismatch: %q", fromURL.Primary)
	}

	literal, err := l.Load(context.Background(), sketch.SourceFromLiteral("line();"))
	if err != nil {
		t.Fatalf("load literal: %v", err)
	}
	if !literal.HasPrimary || literal.Primary != "line();" {
		t.Fatalf("literal primary mismatch: %#v", literal)
	}
	if literal.Sources.Len() != 0 || literal.Assets.Len() != 0 {
		t.Fatalf("literal sketch should be bare: %#v", literal)
	}
}

func TestLoad_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	l := loader.New(sketch.NewLoaderOptions())
	if _, err := l.Load(ctx, sketch.SourceFromLiteral("x")); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestLoad_NilSource(t *testing.T) {
	l := loader.New(sketch.NewLoaderOptions())
	if _, err := l.Load(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil source")
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func collect(entries sketch.Entries) []string {
	var out []string
	for name, value := range entries.All() {
		out = append(out, name+"="+value)
	}
	return out
}
