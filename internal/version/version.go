package version

import "fmt"

// Name is the program name printed in version output.
const Name = "smart-guard"

var (
	// Version is the semantic version, set with -ldflags "-X .../version.Version=v1.2.3".
	Version = "0.1.0"
	// Commit is the short git SHA of the build.
	Commit = "none"
	// BuildTime is the UTC build timestamp.
	BuildTime = "unknown"
)

// Short returns the semantic version.
func Short() string {
	return Version
}

// Full returns the program name with version, commit and build time.
func Full() string {
	return fmt.Sprintf("%s %s (commit %s, built %s)", Name, Version, Commit, BuildTime)
}
