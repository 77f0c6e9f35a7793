// Package version exposes build information injected via ldflags.
package version

import (
	"fmt"
	"runtime"
)

var (
	// Version is the git tag or semantic version.
	Version = "dev"
	// Commit is the git commit SHA.
	Commit = "unknown"
)

// String renders a one-line, human-readable version banner.
func String() string {
	return fmt.Sprintf("smashcast %s (%s, %s)", Version, Commit, runtime.Version())
}
