package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cobrust/internal/diagfmt"
	"cobrust/internal/driver"
)

func newTokenizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize [flags] file.cob",
		Short: "Split a source file into words",
		Long:  "Tokenize splits each line of a source file into words and prints them with their positions.",
		Args:  sourceArg,
		RunE:  runTokenize,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

func runTokenize(cmd *cobra.Command, args []string) error {
	g, err := readGlobals(cmd)
	if err != nil {
		return err
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}

	res, err := driver.Tokenize(cmd.Context(), args[0], driver.Options{MaxDiagnostics: g.maxDiagnostics})
	if err != nil {
		return fail(cmd, g, err, res.FileSet)
	}

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		err = diagfmt.FormatTokensJSON(out, res.Tokens, res.FileSet)
	default:
		err = diagfmt.FormatTokensPretty(out, res.Tokens, res.FileSet)
	}
	if err != nil {
		return fmt.Errorf("failed to format tokens: %w", err)
	}

	if perr := printBag(cmd, g, res.Bag, res.FileSet); perr != nil {
		return fmt.Errorf("failed to print diagnostics: %w", perr)
	}
	if res.Bag.HasErrors() {
		return errReported
	}
	return nil
}
