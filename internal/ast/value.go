package ast

import (
	"strconv"

	"cobrust/internal/source"
)

type ValueKind uint8

const (
	ValueNumber ValueKind = iota
	ValueIdent
	ValueString
)

func (k ValueKind) String() string {
	switch k {
	case ValueNumber:
		return "number"
	case ValueIdent:
		return "identifier"
	case ValueString:
		return "string"
	}
	return "?"
}

// Value is an operand: an integer literal, a declared identifier or a
// string literal. Str holds the literal without its quotes.
type Value struct {
	Kind   ValueKind
	Number int64
	Ident  Ident
	Str    string
	Span   source.Span
}

func NumberValue(n int64, sp source.Span) Value {
	return Value{Kind: ValueNumber, Number: n, Span: sp}
}

func IdentValue(id Ident) Value {
	return Value{Kind: ValueIdent, Ident: id, Span: id.Span}
}

func StringValue(s string, sp source.Span) Value {
	return Value{Kind: ValueString, Str: s, Span: sp}
}

// IsText reports whether the operand reads as text rather than a number.
func (v Value) IsText() bool {
	switch v.Kind {
	case ValueString:
		return true
	case ValueIdent:
		return v.Ident.Type.IsAlphanumeric()
	}
	return false
}

// String renders the value in source form.
func (v Value) String() string {
	switch v.Kind {
	case ValueNumber:
		return strconv.FormatInt(v.Number, 10)
	case ValueIdent:
		return v.Ident.Name
	case ValueString:
		return strconv.Quote(v.Str)
	}
	return "?"
}
