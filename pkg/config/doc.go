// Package config resolves pderun settings. Values are layered as defaults,
// then an optional JSON or YAML file, then PDERUN_* variables from the
// environment or a .env file. Command line flags are applied by the caller.
package config
