// Package buildinfo carries version metadata stamped in at link time.
package buildinfo

import "fmt"

var (
	// Version is set via -ldflags "-X .../buildinfo.Version=...".
	Version = "dev"
	// Commit is the short git hash of the build.
	Commit = "none"
	// Date is the build timestamp.
	Date = "unknown"
)

// String returns the version line shown by --version and /api/status.
func String() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date)
}
