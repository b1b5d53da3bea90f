package version

import (
	"fmt"
	"runtime/debug"
)

// Set with -ldflags at release time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Info is the resolved build metadata.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Module  string `json:"module"`
}

// Get resolves build metadata, preferring values injected at link time.
func Get() Info {
	info := Info{
		Version: Version,
		Commit:  Commit,
		Date:    Date,
		Module:  "github.com/dendrascience/treehash",
	}

	build, ok := debug.ReadBuildInfo()
	if !ok {
		if info.Version == "dev" {
			info.Version = "development"
		}
		return info
	}

	if unset(info.Version, "dev") {
		info.Version = "development"
		if v := build.Main.Version; v != "" && v != "(devel)" {
			info.Version = v
		}
	}
	if unset(info.Commit, "unknown") {
		info.Commit = setting(build, "vcs.revision", "unknown")
	}
	if unset(info.Date, "unknown") {
		info.Date = setting(build, "vcs.time", "unknown")
	}
	return info
}

func unset(value, placeholder string) bool {
	return value == "" || value == placeholder
}

func setting(build *debug.BuildInfo, key, fallback string) string {
	for _, s := range build.Settings {
		if s.Key == key && s.Value != "" {
			return s.Value
		}
	}
	return fallback
}

// String renders the version with a short commit and build date when known.
func (i Info) String() string {
	if i.Commit == "unknown" || len(i.Commit) <= 7 {
		return i.Version
	}
	short := i.Commit[:7]
	if i.Date != "unknown" {
		return fmt.Sprintf("%s (%s, built %s)", i.Version, short, i.Date)
	}
	return fmt.Sprintf("%s (%s)", i.Version, short)
}

// Full is shorthand for Get().String().
func Full() string {
	return Get().String()
}
