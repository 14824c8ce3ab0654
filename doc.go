// Package pderun turns Processing sketches into single-file Java programs.
//
// A sketch arrives as a pde://sketch/base64/ URL, a sketch folder or raw
// source text. pderun resolves it into one primary source plus named tabs and
// assets, merges the tabs, derives a stable class name from the merged text,
// hands both to a preprocessor and frames the result with build directives.
//
// The root package re-exports the common entry points. The pipeline pieces
// live under pkg/ and the command under cmd/pderun.
package pderun
