// Package version holds build metadata injected via ldflags.
package version

import "fmt"

//nolint:revive // Set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String returns the build metadata in one line, e.g. "huntr dev (unknown, built unknown)".
func String() string {
	return fmt.Sprintf("huntr %s (%s, built %s)", Version, Commit, Date)
}

// UserAgent identifies this build to the search backend.
func UserAgent() string {
	return "huntr/" + Version
}
