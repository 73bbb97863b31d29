package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cobrust/internal/vm"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [flags] file.cob",
		Short: "Interpret a source file without generating Rust",
		Long: `Run executes the program with the reference interpreter. Its output
matches what the generated crate prints.`,
		Args: sourceArg,
		RunE: runRun,
	}
	cmd.Flags().Int("max-steps", 0, "abort after this many steps (0 = unlimited)")
	return cmd
}

func runRun(cmd *cobra.Command, args []string) error {
	g, err := readGlobals(cmd)
	if err != nil {
		return err
	}
	maxSteps, err := cmd.Flags().GetInt("max-steps")
	if err != nil {
		return fmt.Errorf("failed to get max-steps flag: %w", err)
	}
	if maxSteps < 0 {
		return fmt.Errorf("--max-steps must not be negative")
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

	if err := vm.Run(cmd.Context(), res.Program, cmd.OutOrStdout(), vm.Options{MaxSteps: maxSteps}); err != nil {
		return fail(cmd, g, err, res.FileSet)
	}
	return nil
}
