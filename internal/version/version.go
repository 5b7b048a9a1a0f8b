package version

import (
	"fmt"
	"runtime/debug"
)

// shortCommitLength is how many SHA characters Full prints.
const shortCommitLength = 8

var (
	// Version is the semantic version of the build. It can be overridden via ldflags.
	Version = "dev"
	// Commit is the git SHA embedded at build time (or "none").
	Commit = "none"
	// BuildTime is the UTC build timestamp embedded at build time.
	BuildTime = "unknown"
)

// Short returns only the semantic version string.
func Short() string {
	return Version
}

// ShortCommit returns the abbreviated commit, consulting build info when ldflags left it unset.
func ShortCommit() string {
	commit := Commit
	if commit == "none" || commit == "" {
		commit = buildInfoRevision()
	}

	if len(commit) > shortCommitLength {
		return commit[:shortCommitLength]
	}

	return commit
}

// Full returns a human-readable version string with commit and build time.
func Full() string {
	return fmt.Sprintf("mkver version: %s, commit: %s, built at: %s", Version, ShortCommit(), BuildTime)
}

// buildInfoRevision reads vcs.revision from the embedded build info.
func buildInfoRevision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "none"
	}

	for _, setting := range info.Settings {
		if setting.Key == "vcs.revision" && setting.Value != "" {
			return setting.Value
		}
	}

	return "none"
}
