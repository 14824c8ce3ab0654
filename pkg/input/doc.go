// Package input decides how a pderun invocation supplies its sketch: a
// pde:// URL, a sketch directory, literal text on stdin, or an interactive
// prompt. It returns a sketch.Source; resolving that source is the loader's
// job.
package input
