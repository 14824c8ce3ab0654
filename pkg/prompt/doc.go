// Package prompt collects a sketch interactively when pderun runs attached to
// a terminal without any source. The Driver interface keeps the survey-backed
// implementation swappable so callers can test without a real terminal.
package prompt
