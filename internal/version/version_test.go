package version

import (
	"strings"
	"testing"
)

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
	if Current().Version != Version {
		t.Error("Current must reflect Version")
	}
}

func TestPretty(t *testing.T) {
	tests := []struct {
		name string
		info Info
		want string
	}{
		{"plain", Info{Version: "1.2.3", GoVersion: "go1.24", Target: "rust-2021"}, "cobrust 1.2.3\ngo1.24, emits rust-2021\n"},
		{"suffix", Info{Version: "0.1.0-dev", GoVersion: "go1.24", Target: "rust-2021"}, "cobrust 0.1.0-dev\n"},
		{"commit", Info{Version: "1.0.0", GitCommit: "1234567890abcdef", BuildDate: "2026-01-15"}, "cobrust 1.0.0 (1234567890ab) built 2026-01-15\n"},
		{"not semver", Info{Version: "nightly"}, "cobrust nightly\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.info.Pretty(false); !strings.HasPrefix(got, tt.want) {
				t.Fatalf("Pretty() = %q, want prefix %q", got, tt.want)
			}
		})
	}
}

func TestPrettyColor(t *testing.T) {
	got := Info{Version: "1.2.3"}.Pretty(true)
	if !strings.Contains(got, "\x1b[") {
		t.Fatalf("expected ANSI colour codes, got %q", got)
	}
}

func TestVersion_CanBeOverridden(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()
	Version = "9.9.9"
	if Current().Version != "9.9.9" {
		t.Errorf("override not visible")
	}
}
