package driver

import (
	"context"
	"fmt"

	"cobrust/internal/backend/rust"
	"cobrust/internal/parser"
	"cobrust/internal/trace"
)

type TranslateResult struct {
	*ParseResult
	// MainRS is the generated main.rs; empty on failure.
	MainRS string
}

// Translate parses path and renders the program as Rust.
func Translate(ctx context.Context, path string, opts Options) (*TranslateResult, error) {
	inner := opts
	inner.Timings = false
	pr, err := Parse(ctx, path, inner)
	res := &TranslateResult{ParseResult: pr}
	if err == nil {
		res.MainRS, err = TranslateProgram(ctx, pr, inner)
	}
	if opts.Timings {
		appendTimingDiagnostic(res.Bag, timingPayload{Kind: "translate", Path: path, Report: res.Timer.Report()})
	}
	return res, err
}

// TranslateProgram runs the translate stage on an already parsed result.
func TranslateProgram(ctx context.Context, pr *ParseResult, opts Options) (string, error) {
	var out string
	err := Stage(ctx, pr.Timer, opts, "translate", func(ctx context.Context) error {
		var err error
		out, err = emit(ctx, pr.Program)
		return err
	})
	return out, err
}

func emit(ctx context.Context, prog *parser.Program) (string, error) {
	if prog == nil {
		return "", fmt.Errorf("driver: translate without a parsed program")
	}
	if tr := trace.FromContext(ctx); tr.Level().ShouldEmit(trace.ScopeSection) {
		trace.Point(tr, trace.ScopeSection, "symbols", fmt.Sprintf("%d declared", prog.Table.Len()))
		for _, name := range rust.UsedNames(prog.Body) {
			trace.Point(tr, trace.ScopeStatement, "assigned", name)
		}
	}
	return rust.EmitProgram(prog)
}
