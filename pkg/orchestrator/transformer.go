package orchestrator

import (
	"context"

	"github.com/goliatone/go-pderun/pkg/sketch"
)

// Transformer mutates a resolved Sketch before it is assembled.
// Implementations can add assets, rename sources, or rewrite text.
type Transformer interface {
	Transform(ctx context.Context, s *sketch.Sketch) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, s *sketch.Sketch) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, s *sketch.Sketch) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, s)
}
