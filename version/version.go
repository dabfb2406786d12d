// Package version exposes build metadata for the command-line tools.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

var (
	// Version is the application version, set via ldflags.
	Version string
	// Branch is the git branch, set via ldflags.
	Branch string
	// BuildUser is the user who built the binary, set via ldflags.
	BuildUser string
	// BuildDate is when the binary was built, set via ldflags.
	BuildDate string

	// Revision is the git commit revision.
	Revision = revision(readSettings())
	// GoVersion is the Go version used to build.
	GoVersion = runtime.Version()
	// GoOS is the operating system target.
	GoOS = runtime.GOOS
	// GoArch is the architecture target.
	GoArch = runtime.GOARCH
)

// String returns a one-line description of the build, suitable for a cobra
// Version field.
func String() string {
	v := Version
	if v == "" {
		v = "devel"
	}

	details := []string{"revision " + Revision}

	if Branch != "" {
		details = append(details, "branch "+Branch)
	}

	if BuildUser != "" && BuildDate != "" {
		details = append(details, fmt.Sprintf("built by %s on %s", BuildUser, BuildDate))
	}

	details = append(details, fmt.Sprintf("%s %s/%s", GoVersion, GoOS, GoArch))

	return fmt.Sprintf("%s (%s)", v, strings.Join(details, ", "))
}

func readSettings() []debug.BuildSetting {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return nil
	}

	return buildInfo.Settings
}

// revision returns the VCS revision recorded in settings, suffixed with
// "-dirty" for modified trees, or "unknown".
func revision(settings []debug.BuildSetting) string {
	rev := "unknown"
	modified := false

	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.modified":
			modified = s.Value == "true"
		}
	}

	if modified {
		return rev + "-dirty"
	}

	return rev
}
