// Package version holds build metadata injected with -ldflags.
package version

import (
	"runtime"
	"strings"
)

var (
	// Version is the release advertised in the User-Agent header.
	// Override with -ldflags "-X github.com/GriffinCanCode/wdremote/internal/version.Version=4.28.0".
	Version = "4.27.0"

	// GitCommit is the commit hash, injected at build time.
	GitCommit = ""
)

// Platform returns the operating system name used in the User-Agent:
// "mac", "windows" or "linux", falling back to GOOS.
func Platform() string {
	return platformName(runtime.GOOS)
}

func platformName(goos string) string {
	switch goos {
	case "darwin":
		return "mac"
	case "windows", "linux":
		return goos
	default:
		return strings.ToLower(goos)
	}
}

// UserAgent returns the default User-Agent, e.g. "selenium/4.27.0 (go linux)".
func UserAgent() string {
	return "selenium/" + Version + " (go " + Platform() + ")"
}

// String returns the version with the short commit, if known.
func String() string {
	if len(GitCommit) >= 8 {
		return Version + " (" + GitCommit[:8] + ")"
	}
	return Version
}
