package vm

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"cobrust/internal/diag"
	"cobrust/internal/parser"
	"cobrust/internal/source"
)

func parse(t *testing.T, decls, stmts string) *parser.Program {
	t.Helper()
	text := "data division.\nworking-storage section.\n" + decls + "\nprocedure division.\n" + stmts + "\n"
	fs := source.NewFileSet()
	prog, err := parser.ParseFile(fs.Get(fs.AddSource("test.cob", []byte(text))), parser.Options{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return prog
}

func run(t *testing.T, decls, stmts string) string {
	t.Helper()
	var out bytes.Buffer
	if err := Run(context.Background(), parse(t, decls, stmts), &out, Options{}); err != nil {
		t.Fatalf("run: %v", err)
	}
	return out.String()
}

func TestFactorial(t *testing.T) {
	got := run(t, "01 n pic 9(2).\n01 fact pic 9(15).", `move 1 to n.
move 1 to fact.
perform until n >= 5
    multiply n by fact
    add 1 to n
end-perform.
display fact.`)
	if got != "000000000000024\n" {
		t.Fatalf("got %q", got)
	}
}

func TestInitialValues(t *testing.T) {
	for w := 1; w <= 20; w++ {
		t.Run(fmt.Sprintf("numeric %d", w), func(t *testing.T) {
			got := run(t, fmt.Sprintf("01 n pic 9(%d).", w), "display n.")
			if want := strings.Repeat("1", w) + "\n"; got != want {
				t.Fatalf("got %q, want %q", got, want)
			}
		})
	}
	if got := run(t, "01 s pic x(4).", "display s."); got != "0000\n" {
		t.Fatalf("alphanumeric initial value: got %q", got)
	}
}

func TestMoveAndDisplay(t *testing.T) {
	cases := []struct {
		name  string
		decls string
		stmts string
		want  string
	}{
		{"pads numeric", "01 n pic 9(5).", "move 42 to n. display n.", "00042\n"},
		{"truncates high digits", "01 n pic 9(2).", "move 1234 to n. display n.", "34\n"},
		{"stores magnitude", "01 n pic 9(3).", "move -7 to n. display n.", "007\n"},
		{"zero constant", "01 n pic 9(2).", "move zero to n. display n.", "00\n"},
		{"text pads left", "01 s pic x(5).", `move "ab" to s. display s.`, "000ab\n"},
		{"text keeps right", "01 s pic x(2).", `move "abcd" to s. display s.`, "cd\n"},
		{"numeric into text", "01 n pic 9(2).\n01 s pic x(4).", "move 7 to n. move n to s. display s.", "0007\n"},
		{"text into numeric", "01 n pic 9(3).\n01 s pic x(4).", `move "a1b2" to s. move s to n. display n.`, "012\n"},
		{"display concatenates", "01 n pic 9(2).", `move 3 to n. display "n=", n, " ok".`, "n=03 ok\n"},
		{"empty display", "01 n pic 9.", "display.", "\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := run(t, tc.decls, tc.stmts); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestArithmetic(t *testing.T) {
	cases := []struct {
		name  string
		decls string
		stmts string
		want  string
	}{
		{"add wraps", "01 n pic 9(2).", "move 99 to n. add 3 to n. display n.", "02\n"},
		{"subtract below zero", "01 n pic 9(2).", "move 3 to n. subtract 5 from n. display n.", "02\n"},
		{"multiply wraps", "01 n pic 9(2).", "move 25 to n. multiply 5 by n. display n.", "25\n"},
		{"self multiply", "01 n pic 9(3).", "move 12 to n. multiply n by n. display n.", "144\n"},
		{"text arithmetic", "01 s pic x(3).", `move "9" to s. add 5 to s. display s.`, "014\n"},
		{"add text to number", "01 n pic 9(3).\n01 s pic x(2).", `move "12" to s. move 1 to n. add s to n. display n.`, "013\n"},
		{"wide multiply", "01 n pic 9(31).", "move 999999999999999999 to n. multiply n by n. display n.", "9999999999998000000000000000001\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := run(t, tc.decls, tc.stmts); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestGuardAlreadyTrueRunsZeroTimes(t *testing.T) {
	got := run(t, "01 n pic 9(2).", `move 10 to n.
perform until n > 5
    display "body"
end-perform.
display n.`)
	if got != "10\n" {
		t.Fatalf("got %q", got)
	}
}

func TestTextGuard(t *testing.T) {
	got := run(t, "01 s pic x(1).\n01 n pic 9(2).", `move "a" to s.
perform until s = "c"
    add 1 to n
    move "c" to s
end-perform.
display n.`)
	// n starts at 11
	if got != "12\n" {
		t.Fatalf("got %q", got)
	}
}

func TestNestedLoops(t *testing.T) {
	got := run(t, "01 i pic 9(2).\n01 j pic 9(2).\n01 total pic 9(4).", `move 0 to total.
move 0 to i.
perform until i = 3
    move 0 to j
    perform until j equal to 4
        add 1 to total
        add 1 to j
    end-perform
    add 1 to i
end-perform.
display total.`)
	if got != "0012\n" {
		t.Fatalf("got %q", got)
	}
}

func TestStopRun(t *testing.T) {
	got := run(t, "01 n pic 9.", `display "a".
stop run.
display "b".`)
	if got != "a\n" {
		t.Fatalf("got %q", got)
	}
}

func TestStepLimit(t *testing.T) {
	prog := parse(t, "01 n pic 9.", "move 0 to n. perform until n > 5\nend-perform.")
	var out bytes.Buffer
	err := Run(context.Background(), prog, &out, Options{MaxSteps: 100})
	if !diag.IsCode(err, diag.RunStepLimitExceeded) {
		t.Fatalf("expected step limit error, got %v", err)
	}
}

func TestCancelledContext(t *testing.T) {
	prog := parse(t, "01 n pic 9.", "move 0 to n. perform until n > 5\nend-perform.")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Run(ctx, prog, &bytes.Buffer{}, Options{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestMachineValue(t *testing.T) {
	prog := parse(t, "01 n pic 9(2).", "move 5 to n.")
	m := New(prog, &bytes.Buffer{}, Options{})
	if err := m.exec(context.Background(), prog.Body); err != nil {
		t.Fatal(err)
	}
	if got, ok := m.Value("n"); !ok || got != "05" {
		t.Fatalf("got %q %v", got, ok)
	}
	if _, ok := m.Value("missing"); ok {
		t.Fatalf("unknown names should not resolve")
	}
}
