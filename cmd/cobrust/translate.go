package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"cobrust/internal/buildpipeline"
	"cobrust/internal/project"
	"cobrust/internal/source"
)

// runTranslate is the root command: source file in, Cargo crate out.
func (a *app) runTranslate(cmd *cobra.Command, args []string) error {
	g, err := readGlobals(cmd)
	if err != nil {
		return err
	}
	path := args[0]

	settings, err := project.Resolve(path, project.Overrides{
		OutDir:     g.out,
		MaxNesting: g.maxNesting,
		NoFormat:   g.noFormat,
	})
	if err != nil {
		return fail(cmd, g, err, nil)
	}

	req := &buildpipeline.BuildRequest{
		SourcePath:     path,
		Settings:       settings,
		MaxDiagnostics: g.maxDiagnostics,
		Timings:        g.timings,
	}

	var res buildpipeline.BuildResult
	if !g.quiet && shouldUseTUI(g.ui, cmd.OutOrStdout()) {
		res, err = runBuildWithUI(cmd.Context(), "cobrust "+filepath.Base(path), req, cmd.OutOrStdout())
	} else {
		res, err = buildpipeline.Build(cmd.Context(), req)
	}

	var fs *source.FileSet
	if res.Parse != nil {
		fs = res.Parse.FileSet
	}
	if perr := printBag(cmd, g, res.Bag(), fs); perr != nil {
		return fmt.Errorf("failed to print diagnostics: %w", perr)
	}
	if err != nil {
		return fail(cmd, g, err, fs)
	}

	if g.timings {
		fmt.Fprintf(cmd.ErrOrStderr(), "stages: %s\n", res.Timings)
	}
	if !g.quiet {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "wrote %s\n", res.MainPath)
		fmt.Fprintf(out, "wrote %s\n", res.ManifestPath)
	}
	return nil
}
