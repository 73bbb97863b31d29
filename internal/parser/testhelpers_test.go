package parser

import (
	"fmt"
	"strings"
	"testing"

	"cobrust/internal/diag"
	"cobrust/internal/source"
)

const factorialSource = `identification division.
program-id. factorial.
data division.
working-storage section.
01 n pic 9(2).
01 fact pic 9(15).
procedure division.
    move 1 to n.
    move 1 to fact.
    perform until n >= 5
        multiply n by fact
        add 1 to n
    end-perform.
    display fact.
`

// program wraps declarations and statements into a complete source text.
func program(decls, stmts string) string {
	return "data division.\nworking-storage section.\n" + decls + "\nprocedure division.\n" + stmts + "\n"
}

func loadSource(t *testing.T, text string) *source.File {
	t.Helper()
	fs := source.NewFileSet()
	return fs.Get(fs.AddSource("test.cob", []byte(text)))
}

func parseText(t *testing.T, text string, opts Options) (*Program, error) {
	t.Helper()
	return ParseFile(loadSource(t, text), opts)
}

func mustParse(t *testing.T, text string) *Program {
	t.Helper()
	prog, err := parseText(t, text, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return prog
}

func expectCode(t *testing.T, err error, code diag.Code) *diag.Error {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s, got no error", code.ID())
	}
	if !diag.IsCode(err, code) {
		t.Fatalf("expected %s, got %v", code.ID(), err)
	}
	return err.(*diag.Error)
}

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}
