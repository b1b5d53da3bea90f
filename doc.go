// Package main provides the treehash command-line interface.
//
// treehash walks one or more directory trees, hashes every regular file it
// reaches with a bounded pool of workers and prints one "<path> <digest>"
// line per file. The binary supports these subcommands:
//   - count: count the regular files that would be hashed
//   - dupes: group files with identical content
//   - config: print the effective configuration
package main
