// Package version reports the treehash build version.
//
// Release builds inject Version, Commit and Date with -ldflags, for example:
//
//	-ldflags "-X github.com/dendrascience/treehash/version.Version=v1.2.0 -X github.com/dendrascience/treehash/version.Commit=abc1234"
//
// Builds without those flags fall back to the module version and VCS
// settings recorded by the Go toolchain.
package version
