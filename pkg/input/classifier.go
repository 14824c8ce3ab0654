package input

import (
	"context"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/goliatone/go-pderun/pkg/prompt"
	"github.com/goliatone/go-pderun/pkg/sketch"
)

// StdinArg is the argument asking pderun to read the sketch from stdin.
const StdinArg = "-"

// Request describes the raw inputs of one invocation.
type Request struct {
	// Args holds the positional arguments; at most one is accepted.
	Args []string

	// ForceStdin reads stdin even when an argument is present.
	ForceStdin bool

	// Stdin is read to completion when the sketch comes from standard input.
	Stdin io.Reader

	// Interactive reports that stdin is a terminal, so an empty invocation
	// prompts instead of reading.
	Interactive bool
}

// Option customises a Classifier.
type Option func(*Classifier)

// WithPrompt enables interactive input through driver.
func WithPrompt(driver prompt.Driver) Option {
	return func(c *Classifier) {
		c.prompt = driver
	}
}

// WithDirCheck overrides how candidate directory paths are detected.
func WithDirCheck(isDir func(path string) bool) Option {
	return func(c *Classifier) {
		if isDir != nil {
			c.isDir = isDir
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Classifier) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Classifier maps raw invocation input to a sketch.Source.
type Classifier struct {
	isDir  func(path string) bool
	prompt prompt.Driver
	logger *zap.Logger
}

// New constructs a Classifier.
func New(options ...Option) *Classifier {
	c := &Classifier{
		isDir:  isDirectory,
		logger: zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}

// Classify picks the resolution path for req.
func (c *Classifier) Classify(ctx context.Context, req Request) (sketch.Source, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(req.Args) > 1 {
		return nil, sketch.Errorf(sketch.KindInvalidInput, "classify", "", "expected at most one source, got %d", len(req.Args))
	}

	switch {
	case req.ForceStdin || (len(req.Args) == 1 && req.Args[0] == StdinArg):
		c.logger.Debug("reading sketch from stdin")
		return c.fromStdin(req.Stdin)
	case len(req.Args) == 1:
		return c.ClassifyArg(req.Args[0])
	case !req.Interactive && req.Stdin != nil:
		c.logger.Debug("no source argument, reading piped stdin")
		return c.fromStdin(req.Stdin)
	case req.Interactive && c.prompt != nil:
		c.logger.Debug("no source argument, prompting")
		return c.fromPrompt(ctx)
	default:
		return nil, sketch.NewError(sketch.KindNoInput, "classify", "", nil)
	}
}

// ClassifyArg handles the command-line argument form. Only pde:// URLs and
// existing directories are accepted; literal text must arrive on stdin.
func (c *Classifier) ClassifyArg(arg string) (sketch.Source, error) {
	switch {
	case sketch.IsURL(arg):
		c.logger.Debug("processing sketch url argument")
		return sketch.SourceFromURL(arg), nil
	case strings.TrimSpace(arg) == "":
		return nil, sketch.Errorf(sketch.KindInvalidInput, "classify", "", "empty source argument")
	case c.isDir(arg):
		c.logger.Debug("processing sketch directory", zap.String("path", arg))
		return sketch.SourceFromDir(arg), nil
	default:
		return nil, sketch.Errorf(sketch.KindInvalidInput, "classify", arg, "not a %s url or directory", sketch.URLPrefix)
	}
}

// ClassifyText handles content read from stdin or a prompt. The text is
// trimmed first; a URL or directory path is resolved as such, anything else
// non-empty is the primary source itself.
func (c *Classifier) ClassifyText(text string) (sketch.Source, error) {
	trimmed := strings.TrimSpace(text)
	switch {
	case trimmed == "":
		return nil, sketch.NewError(sketch.KindNoInput, "classify", "", nil)
	case sketch.IsURL(trimmed):
		return sketch.SourceFromURL(trimmed), nil
	case trimmed != StdinArg && !strings.ContainsAny(trimmed, "\n\r") && c.isDir(trimmed):
		return sketch.SourceFromDir(trimmed), nil
	default:
		return sketch.SourceFromLiteral(trimmed), nil
	}
}

func (c *Classifier) fromStdin(r io.Reader) (sketch.Source, error) {
	if r == nil {
		return nil, sketch.NewError(sketch.KindNoInput, "read stdin", "", nil)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, sketch.NewError(sketch.KindIO, "read stdin", "", err)
	}
	return c.ClassifyText(string(data))
}

func (c *Classifier) fromPrompt(ctx context.Context) (sketch.Source, error) {
	text, err := c.prompt.Multiline(ctx, prompt.MultilineConfig{
		Message: "Sketch source, " + sketch.URLPrefix + " URL, or sketch folder",
		Help:    "Paste the sketch, then enter two empty lines to finish.",
	})
	if err != nil {
		return nil, err
	}
	return c.ClassifyText(text)
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func isDirectory(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
