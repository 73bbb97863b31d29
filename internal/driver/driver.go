// Package driver runs the front-end phases over one source file and
// collects their diagnostics. Each entry point (Tokenize, Parse, Translate)
// returns a result that still carries the FileSet on failure so callers can
// render the error against the source.
package driver

import (
	"context"
	"fmt"
	"time"

	"cobrust/internal/diag"
	"cobrust/internal/observ"
	"cobrust/internal/source"
	"cobrust/internal/trace"
)

// Options control a driver run.
type Options struct {
	// MaxDiagnostics limits the bag; <= 0 is unlimited.
	MaxDiagnostics int
	// MaxNesting caps PERFORM nesting; 0 uses the parser default.
	MaxNesting int
	// Timings appends an OBS6001 diagnostic with stage durations.
	Timings bool
	// PhaseObserver, if set, is called when a stage starts and ends.
	PhaseObserver func(PhaseEvent)
}

// PhaseStatus is the state a PhaseEvent reports.
type PhaseStatus uint8

const (
	PhaseStart PhaseStatus = iota
	PhaseEnd
)

// PhaseEvent describes one stage transition.
type PhaseEvent struct {
	Name    string
	Status  PhaseStatus
	Err     error // set on PhaseEnd of a failed stage
	Elapsed time.Duration
}

// Load reads path into fs. Failures become IO4001.
func Load(ctx context.Context, fs *source.FileSet, path string) (*source.File, error) {
	_, span := trace.StartSpan(ctx, trace.ScopeStage, "load")
	defer span.End(path)

	id, err := fs.Load(path)
	if err != nil {
		return nil, diag.Errorf(diag.IOLoadFileError, source.NoSpan, "cannot read %s: %v", path, err)
	}
	file := fs.Get(id)
	span.WithExtra("bytes", fmt.Sprint(len(file.Content)))
	return file, nil
}

// Stage runs fn under a timer phase and a trace span of the same name and
// reports both transitions to the observer in opts.
func Stage(ctx context.Context, timer *observ.Timer, opts Options, name string, fn func(ctx context.Context) error) error {
	notify := opts.PhaseObserver
	if notify == nil {
		notify = func(PhaseEvent) {}
	}
	notify(PhaseEvent{Name: name, Status: PhaseStart})
	start := time.Now()
	ctx, span := trace.StartSpan(ctx, trace.ScopeStage, name)
	err := timer.Measure(name, func() error { return fn(ctx) })
	detail := ""
	if err != nil {
		detail = diag.CodeOf(err).ID()
	}
	span.End(detail)
	notify(PhaseEvent{Name: name, Status: PhaseEnd, Err: err, Elapsed: time.Since(start)})
	return err
}
