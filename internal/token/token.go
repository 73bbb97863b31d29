package token

import (
	"cobrust/internal/source"
)

// Token represents a single classified word with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsLiteral reports whether the token is an integer or string literal.
func (t Token) IsLiteral() bool {
	return t.Kind == IntLit || t.Kind == StringLit
}

// Is reports whether the token is the keyword or punctuation text.
func (t Token) Is(text string) bool {
	return (t.Kind == Keyword || t.Kind == Punct) && t.Text == text
}

// IsPeriod reports whether the token is the sentence terminator.
func (t Token) IsPeriod() bool { return t.Kind == Punct && t.Text == "." }

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }
