package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cobrust/internal/diagfmt"
	"cobrust/internal/driver"
	"cobrust/internal/project"
)

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [flags] file.cob",
		Short: "Parse a source file and print the declarations and instructions",
		Args:  sourceArg,
		RunE:  runParse,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json|yaml|msgpack)")
	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
	g, err := readGlobals(cmd)
	if err != nil {
		return err
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "json", "yaml", "msgpack":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	res, err := parseWithSettings(cmd, g, args[0])
	if res == nil {
		return err
	}
	if perr := printBag(cmd, g, res.Bag, res.FileSet); perr != nil {
		return fmt.Errorf("failed to print diagnostics: %w", perr)
	}
	if err != nil {
		return fail(cmd, g, err, res.FileSet)
	}
	if g.timings {
		printTimings(cmd.ErrOrStderr(), res.Timer.Summary())
	}

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		err = diagfmt.FormatProgramJSON(out, res.Program, res.FileSet)
	case "yaml":
		err = diagfmt.FormatProgramYAML(out, res.Program, res.FileSet)
	case "msgpack":
		err = diagfmt.FormatProgramMsgpack(out, res.Program, res.FileSet)
	default:
		err = diagfmt.FormatProgramPretty(out, res.Program, res.FileSet)
	}
	if err != nil {
		return fmt.Errorf("failed to format program: %w", err)
	}
	return nil
}

// parseWithSettings parses path with the nesting limit from cobrust.toml
// and flags. A nil result means err was already reported.
func parseWithSettings(cmd *cobra.Command, g globals, path string) (*driver.ParseResult, error) {
	settings, err := project.Resolve(path, project.Overrides{MaxNesting: g.maxNesting})
	if err != nil {
		return nil, fail(cmd, g, err, nil)
	}
	return driver.Parse(cmd.Context(), path, driver.Options{
		MaxDiagnostics: g.maxDiagnostics,
		MaxNesting:     settings.MaxNesting,
		Timings:        g.timings,
	})
}
