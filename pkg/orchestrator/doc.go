// Package orchestrator wires the resolve → assemble → identify → preprocess
// pipeline and frames the result with header and asset directives. Callers
// that prefer a single entry point construct an Orchestrator and call Generate
// or Write.
package orchestrator
