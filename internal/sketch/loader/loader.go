package loader

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/goliatone/go-pderun/internal/sketch/decoder"
	"github.com/goliatone/go-pderun/pkg/sketch"
)

// Loader implements sketch.Loader by delegating to the URL decoder, the
// directory resolver, or the literal path.
type Loader struct {
	options sketch.LoaderOptions
	logger  *zap.Logger
}

// Ensure the implementation satisfies the public interface.
var _ sketch.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options.
func New(options sketch.LoaderOptions) sketch.Loader {
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{options: options, logger: logger}
}

// Load resolves the source into a new Sketch.
func (l *Loader) Load(ctx context.Context, src sketch.Source) (*sketch.Sketch, error) {
	if src == nil {
		return nil, errors.New("sketch loader: source is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		result *sketch.Sketch
		err    error
	)

	switch src.Kind() {
	case sketch.SourceKindURL:
		l.logger.Debug("decoding sketch url")
		result, err = decoder.Decode(src.Location())
	case sketch.SourceKindDir:
		l.logger.Debug("resolving sketch directory", zap.String("path", src.Location()))
		result, err = loadDir(ctx, l.options, src.Location())
	case sketch.SourceKindLiteral:
		l.logger.Debug("using literal sketch source")
		result = sketch.FromLiteral(src.Location())
	default:
		err = sketch.Errorf(sketch.KindInvalidInput, "load", string(src.Kind()), "unsupported source kind")
	}
	if err != nil {
		return nil, err
	}

	l.logger.Debug("sketch resolved",
		zap.String("kind", string(src.Kind())),
		zap.Int("sources", result.Sources.Len()),
		zap.Int("assets", result.Assets.Len()),
	)
	return result, nil
}
