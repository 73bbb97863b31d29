package rust

import (
	"fmt"
	"strings"
	"testing"

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

func emit(t *testing.T, decls, stmts string) string {
	t.Helper()
	out, err := EmitProgram(parse(t, decls, stmts))
	if err != nil {
		t.Fatalf("emit: %v", err)
	}
	return out
}

// mainFn cuts fn main out of the generated file.
func mainFn(t *testing.T, out string) string {
	t.Helper()
	start := strings.Index(out, "fn main() {\n")
	end := strings.Index(out, "\n}\n")
	if start < 0 || end < 0 {
		t.Fatalf("no main function in:\n%s", out)
	}
	return out[start : end+3]
}

func TestFactorialMain(t *testing.T) {
	out := emit(t, "01 n pic 9(2).\n01 fact pic 9(15).", `move 1 to n.
move 1 to fact.
perform until n >= 5
    multiply n by fact
    add 1 to n
end-perform.
display fact.`)
	want := `fn main() {
    let mut n: Num<2> = Num::new(11);
    let mut fact: Num<15> = Num::new(111111111111111);

    n = Num::new(1);
    fact = Num::new(1);
    loop {
        if n.value() >= 5 {
            break;
        }
        fact *= &n;
        n += 1;
    }
    println!("{}", fact);
}
`
	if got := mainFn(t, out); got != want {
		t.Fatalf("unexpected main:\n%s\nwant:\n%s", got, want)
	}
	if !strings.HasPrefix(out, "#![allow(unused)]\n") {
		t.Fatalf("missing crate attribute")
	}
	if !strings.Contains(out, "mod pic {") {
		t.Fatalf("runtime module not appended")
	}
}

func TestNumericDeclarationWidths(t *testing.T) {
	for w := 1; w <= 20; w++ {
		out := emit(t, fmt.Sprintf("01 n pic 9(%d).", w), "display n.")
		want := fmt.Sprintf("let n: Num<%d> = Num::new(%s);", w, strings.Repeat("1", w))
		if !strings.Contains(out, want) {
			t.Fatalf("width %d: missing %q", w, want)
		}
	}
}

func TestAlphanumericDeclaration(t *testing.T) {
	out := emit(t, "01 s pic x(3).", "display s.")
	if !strings.Contains(out, `let s: String = String::from("000");`) {
		t.Fatalf("unexpected declaration:\n%s", mainFn(t, out))
	}
}

func TestMutOnlyWhenAssigned(t *testing.T) {
	out := emit(t, "01 a pic 9.\n01 b pic 9.\n01 c pic 9.", `perform until a > 1
    perform until b > 1
        add 1 to c
    end-perform
end-perform.`)
	main := mainFn(t, out)
	for _, want := range []string{"let a: Num<1>", "let b: Num<1>", "let mut c: Num<1>"} {
		if !strings.Contains(main, want) {
			t.Fatalf("missing %q in:\n%s", want, main)
		}
	}
	if strings.Count(main, "let mut c") != 1 {
		t.Fatalf("c must be declared exactly once")
	}
}

func TestStatementForms(t *testing.T) {
	decls := "01 n pic 9(2).\n01 m pic 9(3).\n01 s pic x(4).\n01 t pic x(4)."
	cases := []struct {
		stmt string
		want string
	}{
		{"move 7 to n", "n = Num::new(7);"},
		{"move m to n", "n = Num::new(m.value());"},
		{`move "12" to n`, `n = Num::new(pic::digits("12"));`},
		{"move s to n", "n = Num::new(s.value());"},
		{`move "ab" to s`, `s = pic::alnum::<4>(&"ab");`},
		{"move n to s", "s = pic::alnum::<4>(&n);"},
		{"move 5 to s", "s = pic::alnum::<4>(&5);"},
		{"add 1 to n", "n += 1;"},
		{"add m to n", "n += &m;"},
		{"add s to n", "n += &s;"},
		{"add n to n", "n += n.value();"},
		{"subtract 2 from n", "n -= 2;"},
		{"multiply m by n", "n *= &m;"},
		{`add "3" to n`, `n += pic::digits("3");`},
		{"add 1 to s", "s = pic::alnum::<4>(&pic::add(s.value(), 1));"},
		{"multiply n by s", "s = pic::alnum::<4>(&pic::mul(s.value(), n.value()));"},
		{"subtract t from s", "s = pic::alnum::<4>(&pic::sub(s.value(), t.value()));"},
		{`display "n = ", n`, `println!("{}{}", "n = ", n);`},
		{"display", "println!();"},
		{"stop run", "std::process::exit(0);"},
	}
	for _, tc := range cases {
		t.Run(tc.stmt, func(t *testing.T) {
			main := mainFn(t, emit(t, decls, tc.stmt+"."))
			if !strings.Contains(main, tc.want) {
				t.Fatalf("missing %q in:\n%s", tc.want, main)
			}
		})
	}
}

func TestGuards(t *testing.T) {
	decls := "01 n pic 9(2).\n01 s pic x(2)."
	cases := []struct {
		guard string
		want  string
	}{
		{"n > 5", "if n.value() > 5 {"},
		{"n less than or equal to 5", "if n.value() <= 5 {"},
		{"n equal to 5", "if n.value() == 5 {"},
		{`s = "ab"`, `if s.as_str() == "ab" {`},
		{"s > 5", "if s.value() > 5 {"},
		{`n < "7"`, `if n.value() < pic::digits("7") {`},
	}
	for _, tc := range cases {
		t.Run(tc.guard, func(t *testing.T) {
			main := mainFn(t, emit(t, decls, "perform until "+tc.guard+"\nend-perform."))
			if !strings.Contains(main, tc.want) {
				t.Fatalf("missing %q in:\n%s", tc.want, main)
			}
		})
	}
}

func TestUsedNamesOrder(t *testing.T) {
	prog := parse(t, "01 a pic 9.\n01 b pic 9.\n01 c pic 9.", `move 1 to c.
perform until a > 1
    add 1 to b
    add 1 to c
    add 1 to a
end-perform.`)
	got := UsedNames(prog.Body)
	want := []string{"c", "b", "a"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestMangle(t *testing.T) {
	cases := map[string]string{
		"my-var": "my_var",
		"fact":   "fact",
		"loop":   "r#loop",
		"move":   "r#move",
		"self":   "self_",
		"crate":  "crate_",
		"1st":    "v_1st",
		"a$b":    "a_b",
	}
	for in, want := range cases {
		if got := Mangle(in); got != want {
			t.Errorf("Mangle(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMangledNameClash(t *testing.T) {
	out := emit(t, "01 my-var pic 9.\n01 my_var pic 9.", "move 1 to my-var. move 2 to my_var.")
	main := mainFn(t, out)
	for _, want := range []string{"let mut my_var: Num<1>", "let mut my_var_2: Num<1>", "my_var = Num::new(1);", "my_var_2 = Num::new(2);"} {
		if !strings.Contains(main, want) {
			t.Fatalf("missing %q in:\n%s", want, main)
		}
	}
}

func TestRustString(t *testing.T) {
	if got := rustString("a\"b\\c\n\x01é"); got != `"a\"b\\c\n\u{1}é"` {
		t.Fatalf("got %s", got)
	}
}

func TestEmitNilProgram(t *testing.T) {
	if _, err := EmitProgram(nil); err == nil {
		t.Fatalf("expected error")
	}
}
