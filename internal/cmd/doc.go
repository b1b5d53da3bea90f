// Package cmd provides the command-line interface for treehash.
//
// The root command hashes the trees named on the command line. The count,
// dupes and config subcommands share its flag set and configuration
// loading. Commands are built with Cobra and executed through Fang by the
// main package.
package cmd
