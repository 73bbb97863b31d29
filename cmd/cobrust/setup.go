package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"cobrust/internal/prof"
	"cobrust/internal/trace"
)

// setup runs before every command: tracing and profiling.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := a.setupTracing(cmd); err != nil {
		return err
	}
	return a.setupProfiling(cmd)
}

// setupTracing inspects trace-related flags and attaches a tracer to the
// command context.
func (a *app) setupTracing(cmd *cobra.Command) error {
	pf := cmd.Root().PersistentFlags()
	traceOutput, err := pf.GetString("trace")
	if err != nil {
		return fmt.Errorf("failed to get trace flag: %w", err)
	}
	levelStr, err := pf.GetString("trace-level")
	if err != nil {
		return fmt.Errorf("failed to get trace-level flag: %w", err)
	}
	formatStr, err := pf.GetString("trace-format")
	if err != nil {
		return fmt.Errorf("failed to get trace-format flag: %w", err)
	}

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return err
	}
	format, err := trace.ParseFormat(formatStr)
	if err != nil {
		return err
	}
	if level == trace.LevelOff && traceOutput == "" {
		return nil
	}
	// --trace без уровня включает фазы
	if level == trace.LevelOff {
		level = trace.LevelPhase
	}

	cfg := trace.Config{Level: level, Format: format, OutputPath: traceOutput}
	if traceOutput == "" || traceOutput == "-" {
		cfg.Output = unclosable{cmd.ErrOrStderr()}
	}
	tracer, err := trace.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create tracer: %w", err)
	}

	ctx := trace.WithTracer(cmd.Context(), tracer)
	cmd.SetContext(ctx)

	_, span := trace.StartSpan(ctx, trace.ScopeDriver, cmd.CommandPath())
	a.onClose(func() {
		span.End("")
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: close error: %v\n", err)
		}
	})
	return nil
}

// setupProfiling starts the profiler selected by --profile.
func (a *app) setupProfiling(cmd *cobra.Command) error {
	pf := cmd.Root().PersistentFlags()
	mode, err := pf.GetString("profile")
	if err != nil {
		return fmt.Errorf("failed to get profile flag: %w", err)
	}
	dir, err := pf.GetString("profile-dir")
	if err != nil {
		return fmt.Errorf("failed to get profile-dir flag: %w", err)
	}
	quiet, err := pf.GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	stopper, err := prof.Start(mode, dir, quiet)
	if err != nil {
		return err
	}
	a.onClose(stopper.Stop)
	return nil
}

// unclosable hides Close so the tracer never closes stderr.
type unclosable struct{ io.Writer }
