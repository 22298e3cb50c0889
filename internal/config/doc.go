// Package config loads the TOML configuration file of the lookupgo CLI.
//
// Every setting has a default, so the file is optional. Values are applied
// in order: defaults, the file, LOOKUPGO_* environment variables, and
// finally command-line flags, which the cli package merges on top.
package config
