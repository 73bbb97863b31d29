// Package buildpipeline turns one source file into a Cargo crate.
package buildpipeline

import (
	"context"
	"errors"
	"fmt"

	"cobrust/internal/diag"
	"cobrust/internal/driver"
	"cobrust/internal/observ"
	"cobrust/internal/project"
	"cobrust/internal/source"
)

// BuildRequest configures a translation into a crate.
type BuildRequest struct {
	SourcePath     string
	Settings       project.Settings
	MaxDiagnostics int
	// Timings appends an OBS6001 diagnostic for the whole build.
	Timings  bool
	Progress ProgressSink
	// Formatter replaces CargoFmt; nil means CargoFmt.
	Formatter FormatFunc
}

// BuildResult captures build artefacts and timings.
type BuildResult struct {
	Parse        *driver.ParseResult
	MainRS       string
	OutDir       string
	MainPath     string
	ManifestPath string
	Formatted    bool
	Timings      Timings
}

// Bag returns the diagnostics collected during the build.
func (r BuildResult) Bag() *diag.Bag {
	if r.Parse == nil {
		return nil
	}
	return r.Parse.Bag
}

// Build runs load, parse, translate, emit and format. Nothing is written
// before translation has succeeded; a formatter failure only adds an IO4003
// warning.
func Build(ctx context.Context, req *BuildRequest) (BuildResult, error) {
	var result BuildResult
	if ctx == nil {
		ctx = context.Background()
	}
	if req == nil {
		return result, errors.New("missing build request")
	}
	if req.SourcePath == "" {
		return result, errors.New("missing source path")
	}
	file := req.SourcePath
	sink := req.Progress
	emitQueued(sink, file)

	observer := &phaseObserver{sink: sink, file: file, timings: &result.Timings}
	opts := driver.Options{
		MaxDiagnostics: req.MaxDiagnostics,
		MaxNesting:     req.Settings.MaxNesting,
		PhaseObserver:  observer.OnPhase,
	}

	pr, err := driver.Parse(ctx, file, opts)
	result.Parse = pr
	if err != nil {
		return result, finish(req, &result, err)
	}
	result.MainRS, err = driver.TranslateProgram(ctx, pr, opts)
	if err != nil {
		return result, finish(req, &result, err)
	}

	err = driver.Stage(ctx, pr.Timer, opts, string(StageEmit), func(context.Context) error {
		return result.emit(req)
	})
	if err != nil {
		return result, finish(req, &result, err)
	}

	if !req.Settings.Format {
		emitStage(sink, file, StageFormat, StatusSkipped, nil, 0)
		return result, finish(req, &result, nil)
	}
	formatter := req.Formatter
	if formatter == nil {
		formatter = CargoFmt
	}
	observer.soft = true
	fmtErr := driver.Stage(ctx, pr.Timer, opts, string(StageFormat), func(ctx context.Context) error {
		return runFormatter(ctx, formatter, req.Settings.FormatTool, result.ManifestPath, req.Settings.FormatTimeout)
	})
	if fmtErr != nil {
		pr.Bag.Add(diag.NewWarning(diag.IOFormatterFailed, source.NoSpan,
			fmt.Sprintf("formatter failed, %s is left unformatted: %v", result.MainPath, fmtErr)))
	} else {
		result.Formatted = true
	}
	return result, finish(req, &result, nil)
}

func (r *BuildResult) emit(req *BuildRequest) error {
	if err := checkOutDir(req.Settings.OutDir, req.SourcePath); err != nil {
		return err
	}
	name := req.Settings.PackageName
	if name == "" {
		name = project.PackageName(req.SourcePath)
	}
	manifest, err := project.NewCargoManifest(name, req.Settings.Version).Encode()
	if err != nil {
		return diag.Wrap(err, diag.IOWriteFileError, source.NoSpan)
	}
	r.OutDir = req.Settings.OutDir
	r.MainPath, r.ManifestPath, err = writeCrate(r.OutDir, []byte(r.MainRS), manifest)
	return err
}

func finish(req *BuildRequest, result *BuildResult, err error) error {
	if req.Timings && result.Parse != nil {
		driver.AppendTimings(result.Parse.Bag, "build", req.SourcePath, result.Parse.Timer.Report())
	}
	return err
}

// phaseObserver maps driver phases onto progress events.
type phaseObserver struct {
	sink    ProgressSink
	file    string
	timings *Timings
	// soft turns a failing stage into a warning.
	soft bool
}

func (o *phaseObserver) OnPhase(ev driver.PhaseEvent) {
	stage := Stage(ev.Name)
	if ev.Status == driver.PhaseStart {
		emitStage(o.sink, o.file, stage, StatusWorking, nil, 0)
		return
	}
	o.timings.Set(stage, ev.Elapsed)
	status := StatusDone
	switch {
	case ev.Err != nil && o.soft:
		status = StatusWarning
	case ev.Err != nil:
		status = StatusError
	}
	emitStage(o.sink, o.file, stage, status, ev.Err, ev.Elapsed)
}

// Report converts the timer of a finished build for printing.
func (r BuildResult) Report() observ.Report {
	if r.Parse == nil {
		return observ.Report{}
	}
	return r.Parse.Timer.Report()
}
