package parser

import (
	"strings"
	"testing"

	"cobrust/internal/ast"
	"cobrust/internal/diag"
)

const decls = "01 n pic 9(2).\n01 fact pic 9(15).\n01 name pic x(3)."

func TestParseFactorial(t *testing.T) {
	prog := mustParse(t, factorialSource)
	if len(prog.Body) != 4 {
		t.Fatalf("expected 4 top-level instructions, got %d", len(prog.Body))
	}
	kinds := []ast.InstrKind{ast.InstrMove, ast.InstrMove, ast.InstrRepeat, ast.InstrPrint}
	for i, k := range kinds {
		if prog.Body[i].Kind != k {
			t.Fatalf("instruction %d: got %s, want %s", i, prog.Body[i].Kind, k)
		}
	}
	rep := prog.Body[2].Repeat
	if rep.Cond != ast.GreaterOrEqual || rep.Left.Ident.Name != "n" || rep.Right.Number != 5 {
		t.Fatalf("unexpected guard: %+v", rep)
	}
	if len(rep.Body) != 2 || rep.Body[0].Kind != ast.InstrMultiply || rep.Body[1].Kind != ast.InstrAdd {
		t.Fatalf("unexpected loop body: %+v", rep.Body)
	}
	mul := rep.Body[0].Infix
	if mul.Source.Ident.Name != "n" || mul.Dest.Name != "fact" || mul.Dest.Type != ast.Numeric(15) {
		t.Fatalf("multiply operands: %+v", mul)
	}
}

func TestInfixStatements(t *testing.T) {
	cases := []struct {
		stmt string
		kind ast.InstrKind
		src  ast.ValueKind
		dest string
	}{
		{"move 7 to n", ast.InstrMove, ast.ValueNumber, "n"},
		{"move \"abc\" to name", ast.InstrMove, ast.ValueString, "name"},
		{"move n to fact", ast.InstrMove, ast.ValueIdent, "fact"},
		{"move zeros to n", ast.InstrMove, ast.ValueNumber, "n"},
		{"add -3 to n", ast.InstrAdd, ast.ValueNumber, "n"},
		{"subtract 1 from n", ast.InstrSubtract, ast.ValueNumber, "n"},
		{"multiply n by fact", ast.InstrMultiply, ast.ValueIdent, "fact"},
	}
	for _, tc := range cases {
		t.Run(tc.stmt, func(t *testing.T) {
			prog := mustParse(t, program(decls, tc.stmt+"."))
			in := prog.Body[0]
			if in.Kind != tc.kind || in.Infix.Source.Kind != tc.src || in.Infix.Dest.Name != tc.dest {
				t.Fatalf("got %s %+v", in.Kind, in.Infix)
			}
		})
	}
}

func TestDisplayValues(t *testing.T) {
	prog := mustParse(t, program(decls, `display "n = ", n, fact.`))
	in := prog.Body[0]
	if in.Kind != ast.InstrPrint || len(in.Values) != 3 {
		t.Fatalf("unexpected print: %+v", in)
	}
	if in.Values[0].Str != "n = " || in.Values[1].Ident.Name != "n" || in.Values[2].Ident.Name != "fact" {
		t.Fatalf("unexpected values: %+v", in.Values)
	}
}

func TestConditions(t *testing.T) {
	cases := []struct {
		guard string
		want  ast.Condition
	}{
		{"n greater than 5", ast.GreaterThan},
		{"n greater 5", ast.GreaterThan},
		{"n > 5", ast.GreaterThan},
		{"n less than 5", ast.LessThan},
		{"n < 5", ast.LessThan},
		{"n equal to 5", ast.EqualTo},
		{"n equal 5", ast.EqualTo},
		{"n = 5", ast.EqualTo},
		{"n greater than or equal to 5", ast.GreaterOrEqual},
		{"n greater or equal 5", ast.GreaterOrEqual},
		{"n >= 5", ast.GreaterOrEqual},
		{"n less than or equal to 5", ast.LessOrEqual},
		{"n <= 5", ast.LessOrEqual},
	}
	for _, tc := range cases {
		t.Run(tc.guard, func(t *testing.T) {
			prog := mustParse(t, program(decls, "perform until "+tc.guard+"\nadd 1 to n\nend-perform."))
			if got := prog.Body[0].Repeat.Cond; got != tc.want {
				t.Fatalf("got %s, want %s", got, tc.want)
			}
		})
	}
}

func TestNestedPerform(t *testing.T) {
	stmts := `perform until n > 3
    move 0 to fact
    perform until fact > 2
        add 1 to fact
    end-perform
    add 1 to n
end-perform.
display n.`
	prog := mustParse(t, program(decls, stmts))
	if len(prog.Body) != 2 {
		t.Fatalf("expected 2 top-level instructions, got %d", len(prog.Body))
	}
	outer := prog.Body[0].Repeat
	if len(outer.Body) != 3 || outer.Body[1].Kind != ast.InstrRepeat {
		t.Fatalf("unexpected outer body: %+v", outer.Body)
	}
	if len(outer.Body[1].Repeat.Body) != 1 {
		t.Fatalf("inner body should hold one instruction")
	}
}

func TestSkipsLabelsBlankLinesAndSplitsSentences(t *testing.T) {
	prog := mustParse(t, program(decls, "main-para.\n\n   move 1 to n. add 1 to n.\nstop run."))
	kinds := []ast.InstrKind{ast.InstrMove, ast.InstrAdd, ast.InstrStop}
	if len(prog.Body) != len(kinds) {
		t.Fatalf("got %d instructions, want %d", len(prog.Body), len(kinds))
	}
	for i, k := range kinds {
		if prog.Body[i].Kind != k {
			t.Fatalf("instruction %d: got %s, want %s", i, prog.Body[i].Kind, k)
		}
	}
}

func TestProcedureErrors(t *testing.T) {
	cases := []struct {
		name  string
		stmts string
		code  diag.Code
	}{
		{"unknown verb", "compute n = 1.", diag.SynUnknownVerb},
		{"literal verb", "5 to n.", diag.SynUnknownVerb},
		{"undeclared dest", "move 1 to x.", diag.SemaUndeclaredIdentifier},
		{"undeclared source", "add y to n.", diag.SemaUndeclaredIdentifier},
		{"undeclared display", "display nn.", diag.SemaUndeclaredIdentifier},
		{"literal dest", "move 1 to 2.", diag.SynMalformedStatement},
		{"wrong connector", "multiply n to fact.", diag.SynMalformedStatement},
		{"too short", "add 1 to.", diag.SynMalformedStatement},
		{"unknown condition", "perform until n bigger 5\nend-perform.", diag.SynUnknownCondition},
		{"missing right operand", "perform until n >\nend-perform.", diag.SynMalformedStatement},
		{"extra words after guard", "perform until n > 5 add 1 to n\nend-perform.", diag.SynMalformedStatement},
		{"perform without until", "perform para-1.", diag.SynUnsupportedConstruct},
		{"unterminated", "perform until n > 5\nadd 1 to n.", diag.SynUnterminatedBlock},
		{"stray end-perform", "end-perform.", diag.SynMalformedStatement},
		{"stop without run", "stop.", diag.SynMalformedStatement},
		{"huge literal", "move 99999999999999999999 to n.", diag.SynUnsupportedConstruct},
		{"unterminated string", `display "abc.`, diag.LexUnterminatedString},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseText(t, program(decls, tc.stmts), Options{})
			expectCode(t, err, tc.code)
		})
	}
}

func TestSuggestions(t *testing.T) {
	_, err := parseText(t, program(decls, "mov 1 to n."), Options{})
	de := expectCode(t, err, diag.SynUnknownVerb)
	if len(de.Diag.Notes) != 1 || !strings.Contains(de.Diag.Notes[0].Msg, `"move"`) {
		t.Fatalf("expected a move suggestion, got %+v", de.Diag.Notes)
	}

	_, err = parseText(t, program(decls, "display factt."), Options{})
	de = expectCode(t, err, diag.SemaUndeclaredIdentifier)
	if len(de.Diag.Notes) != 1 || !strings.Contains(de.Diag.Notes[0].Msg, `"fact"`) {
		t.Fatalf("expected a fact suggestion, got %+v", de.Diag.Notes)
	}
}

func nestedPerforms(depth int) string {
	var b strings.Builder
	for range depth {
		b.WriteString("perform until n > 1\n")
	}
	b.WriteString("add 1 to n\n")
	for range depth {
		b.WriteString("end-perform\n")
	}
	return b.String()
}

func TestNestingCap(t *testing.T) {
	if _, err := parseText(t, program(decls, nestedPerforms(DefaultMaxNesting)), Options{}); err != nil {
		t.Fatalf("nesting at the cap must be accepted: %v", err)
	}
	_, err := parseText(t, program(decls, nestedPerforms(DefaultMaxNesting+1)), Options{})
	expectCode(t, err, diag.SynNestingTooDeep)

	_, err = parseText(t, program(decls, nestedPerforms(3)), Options{MaxNesting: 2})
	expectCode(t, err, diag.SynNestingTooDeep)
}

func TestSuggest(t *testing.T) {
	cases := []struct {
		word string
		want string
		ok   bool
	}{
		{"mov", "move", true},
		{"displayy", "display", true},
		{"qqq", "", false},
	}
	for _, tc := range cases {
		got, ok := suggest(tc.word, Verbs)
		if got != tc.want || ok != tc.ok {
			t.Errorf("suggest(%q) = %q, %v; want %q, %v", tc.word, got, ok, tc.want, tc.ok)
		}
	}
}
