// Package diag defines the diagnostic model shared by every translation phase.
//
// A Diagnostic carries a Severity, a stable numeric Code (rendered as
// LEX/SYN/SEM/IO/PRJ/OBS/RUN plus four digits), a short Message, the primary
// source.Span and optional Notes. Fatal findings travel as *Error values
// through ordinary error returns; the CLI renders them once via
// internal/diagfmt. Non-fatal findings (ignored clauses, formatter failures,
// timings) are collected in a Bag, usually through a Reporter.
//
// The package does no formatting and no IO.
package diag
