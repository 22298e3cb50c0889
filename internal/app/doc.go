// Package app contains the core application logic: it wires the logger,
// the type catalog and the scene built from the configured manifests, and
// runs the queries the cli package asks for. It does not know about flags
// or exit codes.
package app
