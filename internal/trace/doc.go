// Package trace records structured events for the translation pipeline.
//
// Enable it from the command line:
//
//	cobrust --trace=- --trace-level=phase factorial.cob
//
// Levels: off, error, phase (driver and pipeline stages), detail (plus
// per-section work) and debug (plus per-statement events). Events are
// written as text or NDJSON by a StreamTracer; a disabled tracer costs
// one interface call.
//
// Tracers and the active span travel in context.Context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.StartSpan(ctx, trace.ScopeStage, "parse")
//	defer span.End("")
package trace
