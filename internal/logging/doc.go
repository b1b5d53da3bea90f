// Package logging builds the slog logger used by the treehash commands.
//
// Logs always go to the configured writer (stderr from the CLI) so that
// stdout carries nothing but results.
package logging
