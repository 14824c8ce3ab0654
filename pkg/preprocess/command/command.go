// Package command runs an external program as the sketch preprocessor. The
// combined source is written to the program's stdin and its stdout is taken
// as the translated output.
package command

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-pderun/pkg/preprocess"
)

// NamePlaceholder is replaced with the sketch identifier in every argument.
const NamePlaceholder = "{name}"

// NameEnv carries the sketch identifier in the child environment.
const NameEnv = "PDERUN_SKETCH_NAME"

// ErrNoCommand is returned when no program is configured.
var ErrNoCommand = errors.New("command preprocessor: command is required")

// Option customises a Preprocessor.
type Option func(*Preprocessor)

// WithDir sets the working directory of the child process.
func WithDir(dir string) Option {
	return func(p *Preprocessor) {
		p.dir = dir
	}
}

// WithEnv appends KEY=VALUE entries to the inherited environment.
func WithEnv(env ...string) Option {
	return func(p *Preprocessor) {
		p.env = append(p.env, env...)
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Preprocessor) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// Preprocessor implements preprocess.Preprocessor with an external program.
type Preprocessor struct {
	argv   []string
	dir    string
	env    []string
	logger *zap.Logger
}

var _ preprocess.Preprocessor = (*Preprocessor)(nil)

// New returns a Preprocessor running argv.
func New(argv []string, options ...Option) (*Preprocessor, error) {
	if len(argv) == 0 || strings.TrimSpace(argv[0]) == "" {
		return nil, ErrNoCommand
	}
	p := &Preprocessor{
		argv:   append([]string(nil), argv...),
		logger: zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(p)
	}
	return p, nil
}

// Preprocess runs the program once. A non-zero exit becomes a
// *preprocess.TranslationError built from the first stderr line.
func (p *Preprocessor) Preprocess(ctx context.Context, name, source string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	args := make([]string, len(p.argv))
	for i, arg := range p.argv {
		args[i] = strings.ReplaceAll(arg, NamePlaceholder, name)
	}

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = p.dir
	cmd.Env = append(append(os.Environ(), p.env...), NameEnv+"="+name)
	cmd.Stdin = strings.NewReader(source)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	p.logger.Debug("running preprocessor command", zap.Strings("argv", args))
	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			translation := preprocess.ParseDiagnostic(name, firstLine(stderr.String()))
			if translation.Message == "" {
				translation.Message = err.Error()
			}
			translation.Err = err
			return "", translation
		}
		return "", fmt.Errorf("command preprocessor: run %s: %w", args[0], err)
	}
	return stdout.String(), nil
}

func firstLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
