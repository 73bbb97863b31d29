package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"cobrust/internal/diag"
	"cobrust/internal/diagfmt"
	"cobrust/internal/source"
)

// printBag writes collected diagnostics to stderr in the selected format.
func printBag(cmd *cobra.Command, g globals, bag *diag.Bag, fs *source.FileSet) error {
	if bag == nil || bag.Len() == 0 {
		return nil
	}
	w := cmd.ErrOrStderr()
	switch g.diagFormat {
	case "json":
		return diagfmt.JSON(w, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			Max:              g.maxDiagnostics,
			IncludeNotes:     true,
		})
	case "short":
		return diagfmt.Short(w, bag.Items(), fs, true)
	default:
		diagfmt.Pretty(w, bag, fs, prettyOpts(g, w))
		if n := bag.Dropped(); n > 0 {
			fmt.Fprintf(w, "... %d more diagnostics not shown (--max-diagnostics %d)\n", n, g.maxDiagnostics)
		}
		return nil
	}
}

// fail prints err as a diagnostic and returns errReported so main does not
// print it twice.
func fail(cmd *cobra.Command, g globals, err error, fs *source.FileSet) error {
	w := cmd.ErrOrStderr()
	switch g.diagFormat {
	case "json", "short":
		var de *diag.Error
		if errors.As(err, &de) {
			bag := diag.NewBag(0)
			bag.AddError(de)
			if perr := printBag(cmd, g, bag, fs); perr != nil {
				return fmt.Errorf("%w (while printing: %v)", err, perr)
			}
			return errReported
		}
	}
	diagfmt.PrettyError(w, err, fs, prettyOpts(g, w))
	return errReported
}

func prettyOpts(g globals, w io.Writer) diagfmt.PrettyOpts {
	return diagfmt.PrettyOpts{
		Color:     g.useColor(w),
		Context:   1,
		ShowNotes: true,
	}
}

// printTimings writes the per-phase summary of a timer report.
func printTimings(w io.Writer, summary string) {
	if summary == "" {
		return
	}
	fmt.Fprint(w, summary)
}
