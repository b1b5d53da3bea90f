// Package config loads treehash settings from an optional TOML file,
// applies environment overrides and validates the result.
//
// Precedence, lowest first: built-in defaults, the config file, the
// TREEHASH_WORKERS environment variable, then command-line flags (applied by
// the caller after Load returns).
package config
