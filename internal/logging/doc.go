// Package logging configures log/slog for the snapid daemon and CLI.
//
// Two output formats are supported: a compact console format for interactive
// use and JSON for log aggregation. Helpers mirror the slog attribute
// constructors so call sites import a single package, and component loggers
// stamp a standardized "component" attribute that the console handler hoists
// into the message prefix.
package logging
