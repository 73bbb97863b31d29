package token_test

import (
	"testing"

	"cobrust/internal/source"
	"cobrust/internal/token"
)

func tok(k token.Kind, text string) token.Token {
	return token.Token{Kind: k, Span: source.Span{Start: 0, End: 0}, Text: text}
}

func TestIsLiteral(t *testing.T) {
	for _, k := range []token.Kind{token.IntLit, token.StringLit} {
		if !tok(k, "").IsLiteral() {
			t.Fatalf("%v should be literal", k)
		}
	}
	for _, k := range []token.Kind{token.Ident, token.Keyword, token.Punct} {
		if tok(k, "").IsLiteral() {
			t.Fatalf("%v must NOT be literal", k)
		}
	}
}

func TestIs(t *testing.T) {
	if !tok(token.Keyword, "move").Is("move") {
		t.Fatal("keyword move should match")
	}
	if tok(token.Ident, "move").Is("move") {
		t.Fatal("identifiers never match Is")
	}
	if !tok(token.Punct, ".").IsPeriod() {
		t.Fatal("period expected")
	}
}

func TestKindString(t *testing.T) {
	if got := token.StringLit.String(); got != "StringLit" {
		t.Fatalf("got %q", got)
	}
	if got := token.Kind(200).String(); got != "Kind(?)" {
		t.Fatalf("got %q", got)
	}
}
