// Package version holds build metadata for the cobrust CLI.
// The variables can be overridden at build time via -ldflags.
package version

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/fatih/color"
)

var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

// Info is the machine-readable form printed by `cobrust version --format json`.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
	GoVersion string `json:"go_version"`
	Target    string `json:"target"`
}

// Current returns the build metadata of the running binary.
func Current() Info {
	return Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Target:    "rust-2021",
	}
}

// Pretty renders the version line; major, minor and patch are coloured
// when useColor is set.
func (i Info) Pretty(useColor bool) string {
	var sb strings.Builder
	sb.WriteString("cobrust ")
	sb.WriteString(colorize(i.Version, useColor))
	if i.GitCommit != "" {
		commit := i.GitCommit
		if len(commit) > 12 {
			commit = commit[:12]
		}
		fmt.Fprintf(&sb, " (%s)", commit)
	}
	if i.BuildDate != "" {
		fmt.Fprintf(&sb, " built %s", i.BuildDate)
	}
	fmt.Fprintf(&sb, "\n%s, emits %s\n", i.GoVersion, i.Target)
	return sb.String()
}

func colorize(v string, useColor bool) string {
	core, suffix, _ := strings.Cut(v, "-")
	parts := strings.SplitN(core, ".", 3)
	if len(parts) != 3 {
		return v
	}
	attrs := [][]color.Attribute{
		{color.FgYellow, color.Bold},
		{color.FgGreen, color.Bold},
		{color.FgBlue, color.Bold},
	}
	for i, p := range parts {
		c := color.New(attrs[i]...)
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		parts[i] = c.Sprint(p)
	}
	out := strings.Join(parts, ".")
	if suffix != "" {
		out += "-" + suffix
	}
	return out
}
