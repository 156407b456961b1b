// Package version holds build metadata of the cdoc CLI.
package version

import (
	"fmt"
	"runtime"

	"github.com/fatih/color"
)

// Значения переопределяются при сборке через -ldflags "-X cdoc/internal/version.GitCommit=...".
var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)
)

// Info is the machine-readable form printed by "cdoc version --format json".
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
	GoVersion string `json:"go_version"`
}

// Current returns the build metadata.
func Current() Info {
	return Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
	}
}

// Colored renders Version with each numeric component in its own color.
// Colors are dropped when color output is disabled.
func Colored() string {
	major, minor, patch, rest, ok := split(Version)
	if !ok {
		return Version
	}
	return versionMajorColor.Sprint(major) + "." + versionMinorColor.Sprint(minor) + "." + versionPatchColor.Sprint(patch) + rest
}

// Banner is the one-line human readable version string.
func Banner() string {
	s := "cdoc " + Colored()
	if GitCommit != "" {
		s += fmt.Sprintf(" (%s)", GitCommit)
	}
	if BuildDate != "" {
		s += " built " + BuildDate
	}
	return s
}

// split разбирает "X.Y.Z[suffix]".
func split(v string) (major, minor, patch, rest string, ok bool) {
	parts := make([]string, 0, 3)
	start := 0
	for i := 0; i <= len(v); i++ {
		if i < len(v) && v[i] >= '0' && v[i] <= '9' {
			continue
		}
		if i == start {
			return "", "", "", "", false
		}
		parts = append(parts, v[start:i])
		if len(parts) == 3 {
			return parts[0], parts[1], parts[2], v[i:], true
		}
		if i == len(v) || v[i] != '.' {
			return "", "", "", "", false
		}
		start = i + 1
	}
	return "", "", "", "", false
}
