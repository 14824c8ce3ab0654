package input_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/goliatone/go-pderun/pkg/input"
	"github.com/goliatone/go-pderun/pkg/prompt"
	"github.com/goliatone/go-pderun/pkg/sketch"
)

func dirs(paths ...string) input.Option {
	set := make(map[string]bool, len(paths))
	for _, p := range paths {
		set[p] = true
	}
	return input.WithDirCheck(func(path string) bool { return set[path] })
}

func TestClassify_Argument(t *testing.T) {
	c := input.New(dirs("sketches/demo"))
	ctx := context.Background()

	src, err := c.Classify(ctx, input.Request{Args: []string{"pde://sketch/base64/aGVsbG8="}})
	if err != nil {
		t.Fatalf("classify url: %v", err)
	}
	if src.Kind() != sketch.SourceKindURL || src.Location() != "pde://sketch/base64/aGVsbG8=" {
		t.Fatalf("unexpected url source: %s %q", src.Kind(), src.Location())
	}

	src, err = c.Classify(ctx, input.Request{Args: []string{"sketches/demo"}})
	if err != nil {
		t.Fatalf("classify dir: %v", err)
	}
	if src.Kind() != sketch.SourceKindDir || src.Location() != "sketches/demo" {
		t.Fatalf("unexpected dir source: %s %q", src.Kind(), src.Location())
	}
}

func TestClassify_InvalidArguments(t *testing.T) {
	c := input.New(dirs())
	ctx := context.Background()

	cases := []input.Request{
		{Args: []string{"void setup() {}"}},
		{Args: []string{"   "}},
		{Args: []string{""}},
		{Args: []string{"a", "b"}},
	}
	for _, req := range cases {
		if _, err := c.Classify(ctx, req); !errors.Is(err, sketch.ErrInvalidInput) {
			t.Fatalf("args %q: expected invalid input, got %v", req.Args, err)
		}
	}
}

func TestClassify_StdinSentinel(t *testing.T) {
	c := input.New(dirs("sketches/demo"))
	ctx := context.Background()

	cases := []struct {
		stdin string
		kind  sketch.SourceKind
		loc   string
	}{
		{"  \npde://sketch/base64/aGVsbG8=\n", sketch.SourceKindURL, "pde://sketch/base64/aGVsbG8="},
		{"sketches/demo\n", sketch.SourceKindDir, "sketches/demo"},
		{"\n\nellipse(50, 50, 10, 10);\n\n", sketch.SourceKindLiteral, "ellipse(50, 50, 10, 10);"},
		{"-\n", sketch.SourceKindLiteral, "-"},
	}
	for _, tc := range cases {
		src, err := c.Classify(ctx, input.Request{Args: []string{"-"}, Stdin: strings.NewReader(tc.stdin)})
		if err != nil {
			t.Fatalf("stdin %q: %v", tc.stdin, err)
		}
		if src.Kind() != tc.kind || src.Location() != tc.loc {
			t.Fatalf("stdin %q: got %s %q", tc.stdin, src.Kind(), src.Location())
		}
	}
}

func TestClassify_ForceStdinWins(t *testing.T) {
	c := input.New(dirs("sketches/demo"))
	src, err := c.Classify(context.Background(), input.Request{
		Args:       []string{"sketches/demo"},
		ForceStdin: true,
		Stdin:      strings.NewReader("point(1, 1);"),
	})
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if src.Kind() != sketch.SourceKindLiteral {
		t.Fatalf("expected literal source, got %s", src.Kind())
	}
}

func TestClassify_NoInput(t *testing.T) {
	c := input.New(dirs())
	ctx := context.Background()

	cases := []input.Request{
		{},
		{Interactive: true},
		{Args: []string{"-"}, Stdin: strings.NewReader(" \n\t ")},
		{Stdin: strings.NewReader("")},
		{ForceStdin: true},
	}
	for i, req := range cases {
		if _, err := c.Classify(ctx, req); !errors.Is(err, sketch.ErrNoInput) {
			t.Fatalf("case %d: expected no input, got %v", i, err)
		}
	}
}

func TestClassify_PipedStdinWithoutArgument(t *testing.T) {
	c := input.New(dirs())
	src, err := c.Classify(context.Background(), input.Request{Stdin: strings.NewReader("size(100, 100);\n")})
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if src.Location() != "size(100, 100);" {
		t.Fatalf("unexpected location %q", src.Location())
	}
}

func TestClassify_StdinReadFailure(t *testing.T) {
	c := input.New(dirs())
	_, err := c.Classify(context.Background(), input.Request{
		Args:  []string{"-"},
		Stdin: iotest.ErrReader(errors.New("broken pipe")),
	})
	if !errors.Is(err, sketch.ErrIO) {
		t.Fatalf("expected io error, got %v", err)
	}
}

func TestClassify_InteractivePrompt(t *testing.T) {
	driver := prompt.DriverFunc(func(context.Context, prompt.MultilineConfig) (string, error) {
		return "\nbackground(0);\n", nil
	})
	c := input.New(dirs(), input.WithPrompt(driver))

	src, err := c.Classify(context.Background(), input.Request{Interactive: true})
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if src.Kind() != sketch.SourceKindLiteral || src.Location() != "background(0);" {
		t.Fatalf("unexpected source %s %q", src.Kind(), src.Location())
	}
}

func TestClassify_PromptAborted(t *testing.T) {
	driver := prompt.DriverFunc(func(context.Context, prompt.MultilineConfig) (string, error) {
		return "", prompt.ErrAborted
	})
	c := input.New(dirs(), input.WithPrompt(driver))
	if _, err := c.Classify(context.Background(), input.Request{Interactive: true}); !errors.Is(err, prompt.ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestClassify_HostDirectory(t *testing.T) {
	dir := t.TempDir()
	src, err := input.New().ClassifyArg(dir)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if src.Kind() != sketch.SourceKindDir {
		t.Fatalf("expected dir source, got %s", src.Kind())
	}
}
