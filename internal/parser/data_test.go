package parser

import (
	"strings"
	"testing"

	"cobrust/internal/ast"
	"cobrust/internal/diag"
	"cobrust/internal/source"
)

func TestParsePicture(t *testing.T) {
	cases := []struct {
		text string
		want ast.PicType
	}{
		{"9(2)", ast.Numeric(2)},
		{"9(15)", ast.Numeric(15)},
		{"999", ast.Numeric(3)},
		{"9", ast.Numeric(1)},
		{"x(3)", ast.Alphanumeric(3)},
		{"xx", ast.Alphanumeric(2)},
		{"9(31)", ast.Numeric(31)},
		{"9(007)", ast.Numeric(7)},
		{"99v99", ast.Numeric(5)},
		{"9(3)v99", ast.Numeric(3)},
		{"99x", ast.Numeric(3)},
		{"x(2)9", ast.Alphanumeric(2)},
	}
	for _, tc := range cases {
		t.Run(tc.text, func(t *testing.T) {
			got, err := ParsePicture(tc.text, source.Span{})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestParsePictureErrors(t *testing.T) {
	cases := []struct {
		text string
		code diag.Code
	}{
		{"9(2", diag.SynMalformedPicture},
		{"9()", diag.SynMalformedPicture},
		{"9(a)", diag.SynMalformedPicture},
		{"9(0)", diag.SynMalformedPicture},
		{"9(32)", diag.SynUnsupportedConstruct},
		{"s9(3)", diag.SynUnsupportedConstruct},
		{"a(3)", diag.SynUnsupportedConstruct},
		{"z(3)", diag.SynUnsupportedConstruct},
		{"x(70000)", diag.SynUnsupportedConstruct},
	}
	for _, tc := range cases {
		t.Run(tc.text, func(t *testing.T) {
			_, err := ParsePicture(tc.text, source.Span{})
			expectCode(t, err, tc.code)
		})
	}
}

func TestParseDataDeclarations(t *testing.T) {
	prog := mustParse(t, program("01 n pic 9(2).\n\n   01 fact pic 9(15).\n01 name pic x(3).", ""))
	all := prog.Table.All()
	if len(all) != 3 {
		t.Fatalf("expected 3 declarations, got %d", len(all))
	}
	want := []ast.Data{
		{Level: 1, Name: "n", Type: ast.Numeric(2)},
		{Level: 1, Name: "fact", Type: ast.Numeric(15)},
		{Level: 1, Name: "name", Type: ast.Alphanumeric(3)},
	}
	for i := range want {
		if all[i].Level != want[i].Level || all[i].Name != want[i].Name || all[i].Type != want[i].Type {
			t.Fatalf("declaration %d: got %+v, want %+v", i, all[i], want[i])
		}
	}
}

func TestParseDataErrors(t *testing.T) {
	cases := []struct {
		name  string
		decls string
		code  diag.Code
	}{
		{"non numeric level", "xx n pic 9.", diag.SynMalformedLevel},
		{"missing pic", "01 n 9(2).", diag.SynUnsupportedConstruct},
		{"group item", "01 record.", diag.SynUnsupportedConstruct},
		{"missing picture", "01 n pic.", diag.SynMalformedPicture},
		{"keyword as name", "01 move pic 9.", diag.SynUnsupportedConstruct},
		{"figurative constant as name", "01 zero pic 9.", diag.SynUnsupportedConstruct},
		{"plural figurative constant", "01 zeroes pic x(2).", diag.SynUnsupportedConstruct},
		{"duplicate", "01 n pic 9.\n01 n pic x.", diag.SemaDuplicateDeclaration},
		{"bad picture", "01 n pic 9(.", diag.SynMalformedPicture},
		{"unterminated literal", `01 n pic x value "abc.`, diag.LexUnterminatedString},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseText(t, program(tc.decls, ""), Options{})
			expectCode(t, err, tc.code)
		})
	}
}

func TestIgnoredClauseWarning(t *testing.T) {
	bag := diag.NewBag(10)
	prog, err := parseText(t, program("01 n pic 9(2) value 5.", "display n."), Options{Reporter: diag.BagReporter{Bag: bag}})
	if err != nil {
		t.Fatal(err)
	}
	if prog.Table.Len() != 1 {
		t.Fatalf("declaration should still be recorded")
	}
	if bag.Len() != 1 || bag.Items()[0].Code != diag.SynIgnoredClause || bag.Items()[0].Severity != diag.SevWarning {
		t.Fatalf("expected one IgnoredClause warning, got %s", diagnosticsSummary(bag))
	}
}

func TestPictureSuffixWarning(t *testing.T) {
	cases := []struct {
		decl string
		want ast.PicType
		rest string
	}{
		{"01 n pic 99v99.", ast.Numeric(5), `"v99"`},
		{"01 n pic 9(3)v99.", ast.Numeric(3), `"v99"`},
	}
	for _, tc := range cases {
		t.Run(tc.decl, func(t *testing.T) {
			bag := diag.NewBag(10)
			prog, err := parseText(t, program(tc.decl, "display n."), Options{Reporter: diag.BagReporter{Bag: bag}})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := prog.Table.All()[0].Type; got != tc.want {
				t.Fatalf("type = %v, want %v", got, tc.want)
			}
			items := bag.Items()
			if len(items) != 1 || items[0].Code != diag.SynIgnoredClause || !strings.Contains(items[0].Message, tc.rest) {
				t.Fatalf("expected one IgnoredClause warning about %s, got %s", tc.rest, diagnosticsSummary(bag))
			}
		})
	}
}

func TestPictureRest(t *testing.T) {
	for text, want := range map[string]string{"9(2)": "", "999": "", "99v99": "v99", "9(3)v99": "v99", "x(2)9": "9"} {
		if got := pictureRest(text); got != want {
			t.Fatalf("pictureRest(%q) = %q, want %q", text, got, want)
		}
	}
}
