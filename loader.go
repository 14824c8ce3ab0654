package pderun

import (
	"context"

	internalLoader "github.com/goliatone/go-pderun/internal/sketch/loader"
	"github.com/goliatone/go-pderun/pkg/sketch"
)

// NewLoader constructs a loader using the internal implementation while keeping
// the concrete type hidden from consumers.
func NewLoader(options ...sketch.LoaderOption) sketch.Loader {
	cfg := sketch.NewLoaderOptions(options...)
	return internalLoader.New(cfg)
}

// Resolve loads source into a Sketch without assembling it.
func Resolve(ctx context.Context, source sketch.Source, options ...sketch.LoaderOption) (*sketch.Sketch, error) {
	return NewLoader(options...).Load(ctx, source)
}
