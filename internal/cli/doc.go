// Package cli is responsible for parsing command-line arguments, validating
// user input, and handling process-level concerns like exit codes. It
// translates flags and the configuration file into an app.App and runs the
// requested subcommand against it.
package cli
