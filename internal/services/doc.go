// Package services defines shared utilities consumed by the recognition
// engine and the external model/API integrations.
//
// Key responsibilities:
//   - Context helpers that stamp request correlation identifiers for logging.
//   - Structured error markers plus the Wrap helper that classify failures
//     (external tool, configuration, validation, not found) so the serving
//     boundary can translate them into consistent responses.
//
// Use these helpers when wiring new collaborators so operational behaviour
// stays uniform across the recognition routes.
package services
