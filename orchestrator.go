package pderun

import (
	"context"

	"github.com/goliatone/go-pderun/pkg/orchestrator"
	"github.com/goliatone/go-pderun/pkg/sketch"
)

// Request aliases orchestrator.Request for callers of the root package.
type Request = orchestrator.Request

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Generate resolves source and returns the framed program. It is the simplest
// entry point for callers that hold a pde:// URL, a folder path or source
// text.
func Generate(ctx context.Context, source sketch.Source, options ...orchestrator.Option) ([]byte, error) {
	return orchestrator.New(options...).Generate(ctx, orchestrator.Request{Source: source})
}

// GenerateFromSketch runs the pipeline on an already resolved sketch,
// bypassing the loader stage.
func GenerateFromSketch(ctx context.Context, s *sketch.Sketch, options ...orchestrator.Option) ([]byte, error) {
	return orchestrator.New(options...).Generate(ctx, orchestrator.Request{Sketch: s})
}
