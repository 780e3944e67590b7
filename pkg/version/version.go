// Package version reports build information injected with -ldflags, e.g.
//
//	go build -ldflags "-X bladeassist/pkg/version.Version=v1.2.0" ./cmd/bladeassist
package version

import "fmt"

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

const appName = "bladeassist"

// GetFullVersion returns a user-facing build string. Development builds
// include the commit and build time.
func GetFullVersion() string {
	if Version == "dev" {
		return fmt.Sprintf("%s/%s (commit: %s, built: %s)", appName, Version, GitCommit, BuildTime)
	}
	return fmt.Sprintf("%s/%s", appName, Version)
}
