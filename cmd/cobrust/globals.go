package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// globals are the persistent flags after validation.
type globals struct {
	color          string
	quiet          bool
	timings        bool
	maxDiagnostics int
	diagFormat     string
	out            string
	maxNesting     int
	noFormat       bool
	ui             uiMode
}

func readGlobals(cmd *cobra.Command) (globals, error) {
	pf := cmd.Root().PersistentFlags()
	var g globals
	var err error

	if g.color, err = pf.GetString("color"); err != nil {
		return g, fmt.Errorf("failed to get color flag: %w", err)
	}
	if g.quiet, err = pf.GetBool("quiet"); err != nil {
		return g, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if g.timings, err = pf.GetBool("timings"); err != nil {
		return g, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if g.maxDiagnostics, err = pf.GetInt("max-diagnostics"); err != nil {
		return g, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if g.diagFormat, err = pf.GetString("diag-format"); err != nil {
		return g, fmt.Errorf("failed to get diag-format flag: %w", err)
	}
	if g.out, err = pf.GetString("out"); err != nil {
		return g, fmt.Errorf("failed to get out flag: %w", err)
	}
	if g.maxNesting, err = pf.GetInt("max-nesting"); err != nil {
		return g, fmt.Errorf("failed to get max-nesting flag: %w", err)
	}
	if g.noFormat, err = pf.GetBool("no-format"); err != nil {
		return g, fmt.Errorf("failed to get no-format flag: %w", err)
	}
	ui, err := pf.GetString("ui")
	if err != nil {
		return g, fmt.Errorf("failed to get ui flag: %w", err)
	}

	g.color = strings.ToLower(strings.TrimSpace(g.color))
	switch g.color {
	case "auto", "on", "off":
	default:
		return globals{}, fmt.Errorf("invalid --color value %q (expected auto|on|off)", g.color)
	}
	g.diagFormat = strings.ToLower(strings.TrimSpace(g.diagFormat))
	switch g.diagFormat {
	case "pretty", "short", "json":
	default:
		return globals{}, fmt.Errorf("invalid --diag-format value %q (expected pretty|short|json)", g.diagFormat)
	}
	if g.maxNesting < 0 {
		return globals{}, fmt.Errorf("--max-nesting must not be negative")
	}
	if g.ui, err = readUIMode(ui); err != nil {
		return globals{}, err
	}
	return g, nil
}

func (g globals) useColor(w io.Writer) bool {
	switch g.color {
	case "on":
		return true
	case "off":
		return false
	}
	return isTerminal(w)
}
