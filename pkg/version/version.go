// Package version exposes the build metadata of the backendgen binary.
//
// Release builds set the variables with:
//
//	-ldflags "-X github.com/backendgen/backendgen/pkg/version.Version=v1.2.0
//	          -X github.com/backendgen/backendgen/pkg/version.Commit=<sha>
//	          -X github.com/backendgen/backendgen/pkg/version.Date=<rfc3339>"
package version

import "fmt"

// Build-time variables injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// GetVersion returns the current version string.
func GetVersion() string {
	return Version
}

// GetCommit returns the build commit hash.
func GetCommit() string {
	return Commit
}

// GetDate returns the build date.
func GetDate() string {
	return Date
}

// GetFullVersion returns the version with commit and build date. Local
// builds without injected metadata print the version alone.
func GetFullVersion() string {
	if Commit == "none" && Date == "unknown" {
		return Version
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date)
}
