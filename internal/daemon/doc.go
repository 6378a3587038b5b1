// Package daemon coordinates the long-running snapid process.
//
// It wires configuration, the embedding index store, and the recognition
// engine into a single lifecycle with flock-based locking to prevent multiple
// instances, and serves the HTTP API that accepts screenshot uploads.
//
// Keep orchestration logic here: recognition semantics live in their own
// packages while the daemon focuses on startup, shutdown, and request
// handling.
package daemon
