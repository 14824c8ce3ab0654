// Package cli implements the pderun command: flag parsing, configuration
// layering, logger setup and exit code mapping around the sketch pipeline.
package cli
