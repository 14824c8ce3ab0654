// Package template defines the renderer-agnostic template seam used to emit
// generated sources. The gotemplate subpackage provides the pongo2-backed
// engine.
package template
