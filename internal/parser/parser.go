package parser

import (
	"cobrust/internal/ast"
	"cobrust/internal/diag"
	"cobrust/internal/source"
	"cobrust/internal/symbols"
)

// DefaultMaxNesting is the PERFORM nesting cap used when Options leaves it unset.
const DefaultMaxNesting = 64

type Options struct {
	// MaxNesting caps PERFORM nesting; 0 means DefaultMaxNesting.
	MaxNesting int
	// Reporter receives non-fatal diagnostics (ignored clauses). May be nil.
	Reporter diag.Reporter
}

func (o Options) maxNesting() int {
	if o.MaxNesting <= 0 {
		return DefaultMaxNesting
	}
	return o.MaxNesting
}

// Program is a parsed source file: the frozen symbol table and the
// top-level instruction sequence.
type Program struct {
	Table *symbols.Table
	Body  []ast.Instruction
}

// ParseFile locates the three section anchors, builds the symbol table from
// the data section and then parses the procedure section against it. The
// first fatal problem is returned as *diag.Error.
func ParseFile(file *source.File, opts Options) (*Program, error) {
	layout, err := FindSections(file)
	if err != nil {
		return nil, err
	}
	table, err := ParseData(file, layout.DataSpan(), opts)
	if err != nil {
		return nil, err
	}
	body, err := ParseProcedure(file, layout.ProcedureSpan(), table, opts)
	if err != nil {
		return nil, err
	}
	return &Program{Table: table, Body: body}, nil
}
