package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/vmihailenco/msgpack/v5"

	"cobrust/internal/diag"
	"cobrust/internal/parser"
	"cobrust/internal/source"
	"cobrust/internal/token"
)

const header = "data division.\nworking-storage section.\n01 n pic 9(2).\n01 msg pic x(5).\nprocedure division.\n"

func parseSource(t *testing.T, stmts string) (*source.FileSet, *parser.Program, error) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddSource("mem.cob", []byte(header+stmts)))
	prog, err := parser.ParseFile(file, parser.Options{})
	return fs, prog, err
}

func TestPrettyErrorWithCaret(t *testing.T) {
	fs, _, err := parseSource(t, "    mov 1 to n.\n")
	if err == nil {
		t.Fatal("expected a parse error")
	}
	var buf bytes.Buffer
	PrettyError(&buf, err, fs, PrettyOpts{PathMode: PathModeBasename, ShowNotes: true})
	want := "mem.cob:6:5: error SYN2005: unknown verb \"mov\"\n" +
		" 6 |     mov 1 to n.\n" +
		"   |     ^~~\n" +
		"   = note: did you mean \"move\"?\n"
	if buf.String() != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestPrettyContextAndWideRunes(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("w.cob", []byte("first\n\"日本\" bad\n"))
	sp := source.Span{File: id, Start: 15, End: 18}
	bag := diag.NewBag(0)
	bag.Add(diag.NewWarning(diag.SynIgnoredClause, sp, "ignored"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: 1, PathMode: PathModeBasename})
	lines := strings.Split(buf.String(), "\n")
	if lines[0] != "w.cob:2:10: warning SYN2010: ignored" || lines[1] != " 1 | first" {
		t.Fatalf("unexpected header/context:\n%s", buf.String())
	}
	// "日本" is two wide runes: the caret sits after 7 display columns.
	if lines[3] != "   |        ^~~" {
		t.Fatalf("caret misaligned: %q", lines[3])
	}
}

func TestPrettyWithoutLocation(t *testing.T) {
	var buf bytes.Buffer
	PrettyError(&buf, diag.Errorf(diag.IOLoadFileError, source.NoSpan, "cannot read x.cob"), source.NewFileSet(), PrettyOpts{})
	if buf.String() != "error IO4001: cannot read x.cob\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
	buf.Reset()
	PrettyError(&buf, bytes.ErrTooLarge, nil, PrettyOpts{})
	if !strings.HasPrefix(buf.String(), "error: ") {
		t.Fatalf("plain errors need an error prefix: %q", buf.String())
	}
}

func TestPrettyColor(t *testing.T) {
	var buf bytes.Buffer
	PrettyError(&buf, diag.Errorf(diag.IOWriteFileError, source.NoSpan, "disk full"), nil, PrettyOpts{Color: true})
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Fatalf("expected ANSI escapes, got %q", buf.String())
	}
}

func TestShortIsSorted(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("s.cob", []byte("aaa\nbbb\n"))
	items := []diag.Diagnostic{
		diag.NewError(diag.SemaUndeclaredIdentifier, source.Span{File: id, Start: 4, End: 7}, "second").
			WithNote(source.Span{File: id, Start: 4, End: 7}, "hint"),
		diag.NewWarning(diag.SynIgnoredClause, source.Span{File: id, Start: 0, End: 3}, "first"),
	}
	var buf bytes.Buffer
	if err := Short(&buf, items, fs, true); err != nil {
		t.Fatal(err)
	}
	want := "WARNING SYN2010 s.cob:1:1 first\nERROR SEM3001 s.cob:2:1 second\n  note: hint\n"
	if buf.String() != want {
		t.Fatalf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestJSONDiagnostics(t *testing.T) {
	fs, _, err := parseSource(t, "display nn.\n")
	bag := diag.NewBag(0)
	bag.AddError(err.(*diag.Error))
	bag.Add(diag.New(diag.SevInfo, diag.ObsTimings, source.NoSpan, "timings").WithNote(source.NoSpan, `{"kind":"parse"}`))

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, PathMode: PathModeBasename}); err != nil {
		t.Fatal(err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.Count != 2 {
		t.Fatalf("count = %d", out.Count)
	}
	first := out.Diagnostics[0]
	if first.Code != "SEM3001" || first.Location == nil || first.Location.StartLine != 6 || first.Location.File != "mem.cob" {
		t.Fatalf("unexpected first diagnostic: %+v", first)
	}
	if first.Notes != nil {
		t.Fatalf("notes must be omitted unless requested")
	}
	second := out.Diagnostics[1]
	if second.Location != nil || len(second.Notes) != 1 {
		t.Fatalf("timings keep notes and have no location: %+v", second)
	}
}

func TestTokensOutput(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddSource("t.cob", []byte("move 1 to n."))
	f := fs.Get(id)
	toks := []token.Token{
		{Kind: token.Keyword, Span: source.Span{File: id, Start: 0, End: 4}, Text: "move"},
		{Kind: token.Punct, Span: source.Span{File: id, Start: 11, End: 12}, Text: "."},
	}
	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, toks, fs); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "  1: Keyword   \"move\" at 1:1-1:5\n") {
		t.Fatalf("unexpected pretty tokens:\n%s", buf.String())
	}
	buf.Reset()
	if err := FormatTokensJSON(&buf, toks, fs); err != nil {
		t.Fatal(err)
	}
	var out []TokenOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 || out[1].Col != 12 || f.Text(toks[1].Span) != "." {
		t.Fatalf("unexpected json tokens: %+v", out)
	}
}

const loop = "    move \"ab\" to msg.\n    perform until n >= 3\n        add 1 to n\n    end-perform.\n    display msg, n.\n"

func TestProgramDumps(t *testing.T) {
	fs, prog, err := parseSource(t, loop)
	if err != nil {
		t.Fatal(err)
	}
	want := BuildProgramOutput(prog, fs)
	if len(want.Declarations) != 2 || len(want.Body) != 3 || len(want.Body[1].Body) != 1 {
		t.Fatalf("unexpected shape: %+v", want)
	}
	if want.Body[1].Guard.Cond != ">=" || want.Body[0].Source.Value != "ab" {
		t.Fatalf("unexpected contents: %+v", want.Body)
	}

	var buf bytes.Buffer
	if err := FormatProgramYAML(&buf, prog, fs); err != nil {
		t.Fatal(err)
	}
	var fromYAML ProgramOutput
	if err := yaml.Unmarshal(buf.Bytes(), &fromYAML); err != nil {
		t.Fatal(err)
	}
	if fromYAML.Body[1].Body[0].Dest != "n" || fromYAML.Declarations[1].Pic != "x(5)" {
		t.Fatalf("yaml lost data: %+v", fromYAML)
	}

	buf.Reset()
	if err := FormatProgramMsgpack(&buf, prog, fs); err != nil {
		t.Fatal(err)
	}
	var fromPack ProgramOutput
	if err := msgpack.Unmarshal(buf.Bytes(), &fromPack); err != nil {
		t.Fatal(err)
	}
	if fromPack.Body[2].Values[1].Value != "n" || fromPack.File != want.File {
		t.Fatalf("msgpack lost data: %+v", fromPack)
	}
}

func TestProgramPrettyTree(t *testing.T) {
	_, prog, err := parseSource(t, loop)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := FormatProgramPretty(&buf, prog, nil); err != nil {
		t.Fatal(err)
	}
	want := `Program
├─ Data (2)
│  ├─ 01 n pic 9(2)
│  └─ 01 msg pic x(5)
└─ Procedure (3)
   ├─ Move "ab" -> msg
   ├─ Repeat until n >= 3
   │  └─ Add 1 -> n
   └─ Print msg, n
`
	if buf.String() != want {
		t.Fatalf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}
