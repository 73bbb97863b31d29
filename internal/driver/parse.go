package driver

import (
	"context"

	"cobrust/internal/diag"
	"cobrust/internal/observ"
	"cobrust/internal/parser"
	"cobrust/internal/source"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Program *parser.Program
	Bag     *diag.Bag
	Timer   *observ.Timer
}

// Parse loads and parses path. The fatal diagnostic, if any, is returned as
// *diag.Error; the result is never nil so warnings and the FileSet survive.
func Parse(ctx context.Context, path string, opts Options) (*ParseResult, error) {
	res := &ParseResult{
		FileSet: source.NewFileSet(),
		Bag:     diag.NewBag(opts.MaxDiagnostics),
		Timer:   observ.NewTimer(),
	}
	err := Stage(ctx, res.Timer, opts, "load", func(ctx context.Context) error {
		file, err := Load(ctx, res.FileSet, path)
		res.File = file
		return err
	})
	if err == nil {
		err = res.parse(ctx, opts)
	}
	res.finish(path, opts)
	return res, err
}

// ParseSource parses in-memory text registered under name.
func ParseSource(ctx context.Context, name string, content []byte, opts Options) (*ParseResult, error) {
	res := &ParseResult{
		FileSet: source.NewFileSet(),
		Bag:     diag.NewBag(opts.MaxDiagnostics),
		Timer:   observ.NewTimer(),
	}
	res.File = res.FileSet.Get(res.FileSet.AddSource(name, content))
	err := res.parse(ctx, opts)
	res.finish(name, opts)
	return res, err
}

func (res *ParseResult) parse(ctx context.Context, opts Options) error {
	return Stage(ctx, res.Timer, opts, "parse", func(context.Context) error {
		prog, err := parser.ParseFile(res.File, parser.Options{
			MaxNesting: opts.MaxNesting,
			Reporter:   diag.NewDedupReporter(diag.BagReporter{Bag: res.Bag}),
		})
		res.Program = prog
		return err
	})
}

func (res *ParseResult) finish(path string, opts Options) {
	if opts.Timings {
		appendTimingDiagnostic(res.Bag, timingPayload{Kind: "parse", Path: path, Report: res.Timer.Report()})
	}
}
