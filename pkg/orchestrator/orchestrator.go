package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	internalLoader "github.com/goliatone/go-pderun/internal/sketch/loader"
	"github.com/goliatone/go-pderun/pkg/assemble"
	"github.com/goliatone/go-pderun/pkg/identifier"
	"github.com/goliatone/go-pderun/pkg/preprocess"
	"github.com/goliatone/go-pderun/pkg/preprocess/javawrap"
	"github.com/goliatone/go-pderun/pkg/sketch"
)

// DefaultHeader holds the build directives written ahead of every program.
var DefaultHeader = []string{
	"//JAVA 22+",
	"//RUNTIME_OPTIONS --enable-native-access=ALL-UNNAMED",
	"//REPOS central,https://jogamp.org/deployment/maven",
	"//DEPS org.processing:preprocessor:4.4.4",
}

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom sketch loader.
func WithLoader(loader sketch.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithPreprocessor injects the collaborator that translates combined source.
func WithPreprocessor(p preprocess.Preprocessor) Option {
	return func(o *Orchestrator) {
		o.preprocessor = p
	}
}

// WithHeader replaces the header directive lines. Pass no lines to omit the
// header.
func WithHeader(lines ...string) Option {
	return func(o *Orchestrator) {
		o.header = append([]string(nil), lines...)
	}
}

// WithAssembleOptions forwards options to assemble.Assemble.
func WithAssembleOptions(opts ...assemble.Option) Option {
	return func(o *Orchestrator) {
		o.assembleOpts = append(o.assembleOpts, opts...)
	}
}

// WithIdentifier overrides the identifier generator.
func WithIdentifier(g *identifier.Generator) Option {
	return func(o *Orchestrator) {
		o.ids = g
	}
}

// WithTransformer registers a Transformer that runs after resolution and
// before assembly.
func WithTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithLogger attaches a logger for pipeline debug output.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Orchestrator coordinates the pipeline from a sketch source to the framed
// program text. Missing collaborators fall back to the built-in loader,
// javawrap and the default identifier prefix.
type Orchestrator struct {
	loader        sketch.Loader
	preprocessor  preprocess.Preprocessor
	header        []string
	assembleOpts  []assemble.Option
	ids           *identifier.Generator
	transformer   Transformer
	logger        *zap.Logger
	initialiseErr error
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		header: append([]string(nil), DefaultHeader...),
		logger: zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes the sketch to generate. Sketch takes precedence over
// Source when both are set.
type Request struct {
	// Source identifies where the sketch lives.
	Source sketch.Source

	// Sketch allows callers to bypass the loader with an already resolved
	// value.
	Sketch *sketch.Sketch
}

// Generate runs the pipeline and returns header lines, asset directives, a
// blank line and the translated program. Any stage failure returns no output.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}

	s, err := o.resolveSketch(ctx, req)
	if err != nil {
		return nil, err
	}

	if o.transformer != nil {
		if err := o.transformer.Transform(ctx, s); err != nil {
			return nil, fmt.Errorf("orchestrator: transform sketch: %w", err)
		}
	}

	assembly, err := assemble.Assemble(s, o.assembleOpts...)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: assemble: %w", err)
	}
	o.logger.Debug("assembled sketch",
		zap.Int("extra_sources", s.Sources.Len()),
		zap.Int("assets", s.Assets.Len()),
	)

	name := o.ids.Generate(assembly.Combined)
	o.logger.Debug("generated identifier", zap.String("name", name))

	output, err := o.preprocessor.Preprocess(ctx, name, assembly.Combined)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: preprocess: %w", err)
	}

	var buf bytes.Buffer
	for _, line := range o.header {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	for _, line := range assembly.Directives {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	buf.WriteByte('\n')
	buf.WriteString(output)
	return buf.Bytes(), nil
}

// Write generates the program and writes it to w in a single call. Nothing
// is written when generation fails.
func (o *Orchestrator) Write(ctx context.Context, req Request, w io.Writer) error {
	out, err := o.Generate(ctx, req)
	if err != nil {
		return err
	}
	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("orchestrator: %w", sketch.NewError(sketch.KindIO, "write", "output", err))
	}
	return nil
}

func (o *Orchestrator) resolveSketch(ctx context.Context, req Request) (*sketch.Sketch, error) {
	if req.Sketch != nil {
		return req.Sketch.Clone(), nil
	}
	if req.Source == nil {
		return nil, errors.New("orchestrator: source or sketch is required")
	}
	o.logger.Debug("resolving sketch",
		zap.String("kind", string(req.Source.Kind())),
	)
	s, err := o.loader.Load(ctx, req.Source)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: load sketch: %w", err)
	}
	return s, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.loader == nil {
		o.loader = internalLoader.New(sketch.NewLoaderOptions(sketch.WithLogger(o.logger)))
	}
	if o.ids == nil {
		o.ids = identifier.Default()
	}
	if o.preprocessor == nil {
		p, err := javawrap.New(javawrap.WithLogger(o.logger))
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default preprocessor: %w", err)
			return
		}
		o.preprocessor = p
	}
}
