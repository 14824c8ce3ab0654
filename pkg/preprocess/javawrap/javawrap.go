package javawrap

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-pderun/pkg/preprocess"
	"github.com/goliatone/go-pderun/pkg/render/template"
	"github.com/goliatone/go-pderun/pkg/render/template/gotemplate"
)

const (
	// DefaultTabSize is the indentation width of generated code.
	DefaultTabSize = 2

	// DefaultTemplate is the class template rendered for every sketch.
	DefaultTemplate = "sketch"
)

// ErrInvalidTabSize is returned when a tab size is not positive.
var ErrInvalidTabSize = errors.New("javawrap: tab size must be positive")

// Option configures a Preprocessor.
type Option func(*Preprocessor)

// WithTabSize sets the indentation width of generated code.
func WithTabSize(size int) Option {
	return func(p *Preprocessor) {
		p.tabSize = size
	}
}

// WithRenderer replaces the embedded class template engine.
func WithRenderer(renderer template.TemplateRenderer) Option {
	return func(p *Preprocessor) {
		if renderer != nil {
			p.renderer = renderer
		}
	}
}

// WithTemplate selects the template name passed to the renderer.
func WithTemplate(name string) Option {
	return func(p *Preprocessor) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			p.template = trimmed
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Preprocessor) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// Preprocessor wraps a combined sketch in a PApplet subclass. It covers the
// common sketch forms and leaves full Processing grammar to an external
// command.
type Preprocessor struct {
	renderer template.TemplateRenderer
	template string
	tabSize  int
	logger   *zap.Logger
}

var _ preprocess.Preprocessor = (*Preprocessor)(nil)

// New builds a Preprocessor rendering through the embedded templates unless
// WithRenderer is given.
func New(options ...Option) (*Preprocessor, error) {
	p := &Preprocessor{
		template: DefaultTemplate,
		tabSize:  DefaultTabSize,
		logger:   zap.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(p)
		}
	}

	if p.tabSize <= 0 {
		return nil, ErrInvalidTabSize
	}

	if p.renderer == nil {
		engine, err := gotemplate.New(gotemplate.WithFS(TemplatesFS()))
		if err != nil {
			return nil, fmt.Errorf("javawrap: create template engine: %w", err)
		}
		p.renderer = engine
	}
	return p, nil
}

// Preprocess translates source into a Java class called name.
func (p *Preprocessor) Preprocess(ctx context.Context, name, source string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	prog, err := Translate(name, source)
	if err != nil {
		return "", err
	}

	p.logger.Debug("translated sketch",
		zap.String("name", name),
		zap.Bool("static", prog.Static),
		zap.Int("imports", len(prog.Imports)),
		zap.Int("settings", len(prog.Settings)),
	)

	data := map[string]any{
		"name":       name,
		"imports":    prog.Imports,
		"body":       prog.Body,
		"settings":   strings.Join(prog.Settings, "\n"),
		"staticMode": prog.Static,
		"pad":        strings.Repeat(" ", p.tabSize),
		"tabSize":    p.tabSize,
		"inner":      2 * p.tabSize,
	}

	out, err := p.renderer.RenderTemplate(p.template, data)
	if err != nil {
		return "", fmt.Errorf("javawrap: render: %w", err)
	}
	return out, nil
}
