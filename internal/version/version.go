package version

import "runtime"

// These variables are populated at build time using -ldflags
var (
	// Version is the semantic version of the application
	Version = "dev"

	// Commit is the git commit the binary was built from
	Commit = "none"

	// BuildTime is the time the binary was built
	BuildTime = "unknown"
)

// GetVersionInfo returns a formatted string with version information
func GetVersionInfo() string {
	return "hypelist v" + Version + " (" + Commit + ", built " + BuildTime + ", " + runtime.Version() + ")"
}

// UserAgent is sent with every request hypelist makes to a backend
func UserAgent() string {
	return "hypelist/" + Version
}
