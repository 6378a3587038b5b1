// Package config loads, normalizes, and validates the snapid TOML
// configuration. Loading applies repository defaults first, then overlays the
// file (if present), expands ~ in path fields, and rejects unusable values so
// the rest of the system can assume a coherent Config.
package config
