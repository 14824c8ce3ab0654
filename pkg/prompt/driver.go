package prompt

import (
	"context"
	"errors"
	"io"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// ErrAborted signals the user aborted input (e.g., Ctrl+C).
var ErrAborted = errors.New("prompt: aborted")

// MultilineConfig configures a multi-line text prompt.
type MultilineConfig struct {
	Message string
	Default string
	Help    string
}

// Driver abstracts the terminal prompt implementation.
type Driver interface {
	Multiline(ctx context.Context, cfg MultilineConfig) (string, error)
}

// DriverFunc adapts a function to the Driver interface.
type DriverFunc func(ctx context.Context, cfg MultilineConfig) (string, error)

// Multiline calls f.
func (f DriverFunc) Multiline(ctx context.Context, cfg MultilineConfig) (string, error) {
	return f(ctx, cfg)
}

type surveyDriver struct {
	in  terminal.FileReader
	out terminal.FileWriter
	err io.Writer
}

// NewSurveyDriver returns a Driver that prompts on the given terminal. Prompt
// chrome goes to out so it never mixes with the generated script on stdout.
func NewSurveyDriver(in terminal.FileReader, out terminal.FileWriter) Driver {
	return &surveyDriver{in: in, out: out, err: out}
}

func (d *surveyDriver) Multiline(ctx context.Context, cfg MultilineConfig) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var out string
	prompt := &survey.Multiline{
		Message: cfg.Message,
		Default: cfg.Default,
		Help:    cfg.Help,
	}
	if err := survey.AskOne(prompt, &out, survey.WithStdio(d.in, d.out, d.err)); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}
