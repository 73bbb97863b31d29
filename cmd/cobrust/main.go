// Package main implements the cobrust CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"cobrust/internal/version"
)

// errReported marks an error that has already been printed as a diagnostic.
var errReported = errors.New("reported")

// app collects per-invocation state shared by the commands.
type app struct {
	cleanups []func()
}

func (a *app) onClose(fn func()) { a.cleanups = append(a.cleanups, fn) }

func (a *app) close() {
	for i := len(a.cleanups) - 1; i >= 0; i-- {
		a.cleanups[i]()
	}
	a.cleanups = nil
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "cobrust [flags] file.cob",
		Short: "Translate a COBOL subset into a Rust crate",
		Long: `cobrust translates a program written in a small COBOL subset into a
self-contained Cargo crate (out/src/main.rs and out/Cargo.toml).`,
		Version:           version.Version,
		Args:              sourceArg,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		RunE:              a.runTranslate,
	}

	// Глобальные флаги
	pf := root.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "show timing information")
	pf.Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	pf.String("diag-format", "pretty", "diagnostics format (pretty|short|json)")
	pf.String("out", "", "output directory (default: out, or [build].out_dir)")
	pf.Int("max-nesting", 0, "maximum perform nesting (default 64, or [build].max_nesting)")
	pf.Bool("no-format", false, "do not run the formatter on the generated crate")
	pf.String("ui", "auto", "progress UI (auto|on|off)")
	pf.String("trace", "", "trace output file (- for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	pf.String("profile", "", "runtime profile mode (cpu|mem|trace|...)")
	pf.String("profile-dir", "", "directory for profile output (default: temp dir)")

	root.AddCommand(newTokenizeCmd())
	root.AddCommand(newParseCmd())
	root.AddCommand(newRunCmd())
	root.AddCommand(newVersionCmd())
	return root
}

// sourceArg requires exactly one source path with a readable message.
func sourceArg(_ *cobra.Command, args []string) error {
	switch len(args) {
	case 0:
		return errors.New("missing source file\nusage: cobrust [flags] file.cob")
	case 1:
		return nil
	default:
		return fmt.Errorf("expected one source file, got %d arguments", len(args))
	}
}

// execute runs the CLI and returns the process exit status.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &app{}
	defer a.close()
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(stderr, "error: %v\n", err)
		}
		return 1
	}
	return 0
}

// main sets up signal handling and runs the root command.
// Any failure exits with status 1.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// isTerminal проверяет, является ли writer терминалом
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) //nolint:gosec // fd fits in int
}
