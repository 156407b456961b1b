package version

import (
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
	info := Current()
	if info.Version != Version || info.GoVersion == "" {
		t.Errorf("unexpected info %+v", info)
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		in                        string
		major, minor, patch, rest string
		ok                        bool
	}{
		{"0.1.0-dev", "0", "1", "0", "-dev", true},
		{"12.34.56", "12", "34", "56", "", true},
		{"1.2", "", "", "", "", false},
		{"v1.2.3", "", "", "", "", false},
		{"1..3", "", "", "", "", false},
	}
	for _, tt := range tests {
		major, minor, patch, rest, ok := split(tt.in)
		if ok != tt.ok || major != tt.major || minor != tt.minor || patch != tt.patch || rest != tt.rest {
			t.Errorf("split(%q) = %q %q %q %q %v", tt.in, major, minor, patch, rest, ok)
		}
	}
}

func TestBanner(t *testing.T) {
	origNoColor := color.NoColor
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	t.Cleanup(func() {
		color.NoColor = origNoColor
		Version, GitCommit, BuildDate = origVersion, origCommit, origDate
	})
	color.NoColor = true

	Version = "1.2.3"
	GitCommit = "abc123"
	BuildDate = "2024-01-15T10:30:00Z"
	if got, want := Banner(), "cdoc 1.2.3 (abc123) built 2024-01-15T10:30:00Z"; got != want {
		t.Errorf("Banner() = %q, want %q", got, want)
	}

	Version = "custom"
	GitCommit, BuildDate = "", ""
	if got := Banner(); !strings.HasSuffix(got, "custom") {
		t.Errorf("Banner() = %q", got)
	}
}
