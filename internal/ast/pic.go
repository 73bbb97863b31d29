package ast

import "fmt"

// PicKind is the storage category of a declared item.
type PicKind uint8

const (
	PicNumeric PicKind = iota
	PicAlphanumeric
	// Ниже — категории, которые есть в модели, но парсер их отвергает.
	PicAlphabetic
	PicImplicitDecimal
	PicSign
	PicAssumedDecimal
)

func (k PicKind) String() string {
	switch k {
	case PicNumeric:
		return "numeric"
	case PicAlphanumeric:
		return "alphanumeric"
	case PicAlphabetic:
		return "alphabetic"
	case PicImplicitDecimal:
		return "implicit-decimal"
	case PicSign:
		return "sign"
	case PicAssumedDecimal:
		return "assumed-decimal"
	}
	return fmt.Sprintf("PicKind(%d)", uint8(k))
}

// PicType describes the declared representation of a data item.
// Width is always positive for the kinds the parser produces.
type PicType struct {
	Kind  PicKind
	Width int
}

func Numeric(width int) PicType      { return PicType{Kind: PicNumeric, Width: width} }
func Alphanumeric(width int) PicType { return PicType{Kind: PicAlphanumeric, Width: width} }

func (p PicType) IsNumeric() bool      { return p.Kind == PicNumeric }
func (p PicType) IsAlphanumeric() bool { return p.Kind == PicAlphanumeric }

// String renders the picture the way it is written in source, e.g. 9(15).
func (p PicType) String() string {
	switch p.Kind {
	case PicNumeric:
		return fmt.Sprintf("9(%d)", p.Width)
	case PicAlphanumeric:
		return fmt.Sprintf("x(%d)", p.Width)
	}
	return p.Kind.String()
}
