// Package preprocess defines the contract for the collaborator that turns a
// combined sketch into its target-language program. pderun treats the
// collaborator as an opaque call: the command subpackage delegates to an
// external process and javawrap provides a small built-in translator.
package preprocess
