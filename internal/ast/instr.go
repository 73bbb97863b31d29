package ast

import (
	"cobrust/internal/source"
)

type InstrKind uint8

const (
	InstrMove InstrKind = iota
	InstrAdd
	InstrSubtract
	InstrMultiply
	InstrPrint
	InstrRepeat
	InstrStop
)

func (k InstrKind) String() string {
	switch k {
	case InstrMove:
		return "Move"
	case InstrAdd:
		return "Add"
	case InstrSubtract:
		return "Subtract"
	case InstrMultiply:
		return "Multiply"
	case InstrPrint:
		return "Print"
	case InstrRepeat:
		return "Repeat"
	case InstrStop:
		return "Stop"
	}
	return "?"
}

// IsInfix reports whether the instruction carries a source and a destination.
func (k InstrKind) IsInfix() bool {
	return k <= InstrMultiply
}

// Infix is the operand pair of MOVE/ADD/SUBTRACT/MULTIPLY.
type Infix struct {
	Source Value
	Dest   Ident
}

// Repeat is a pre-tested loop: the body runs until Left Cond Right holds.
type Repeat struct {
	Left  Value
	Cond  Condition
	Right Value
	Body  []Instruction
}

// Instruction is one executable statement. Which payload field is set
// depends on Kind: Infix for the infix kinds, Values for Print, Repeat for
// Repeat. Stop has no payload.
type Instruction struct {
	Kind   InstrKind
	Span   source.Span
	Infix  Infix
	Values []Value
	Repeat *Repeat
}

func NewInfix(kind InstrKind, src Value, dst Ident, sp source.Span) Instruction {
	return Instruction{Kind: kind, Span: sp, Infix: Infix{Source: src, Dest: dst}}
}

func NewPrint(values []Value, sp source.Span) Instruction {
	return Instruction{Kind: InstrPrint, Span: sp, Values: values}
}

func NewRepeat(rep *Repeat, sp source.Span) Instruction {
	return Instruction{Kind: InstrRepeat, Span: sp, Repeat: rep}
}

func NewStop(sp source.Span) Instruction {
	return Instruction{Kind: InstrStop, Span: sp}
}

// Walk visits instructions depth-first in source order. Returning false
// from fn skips the children of that instruction.
func Walk(body []Instruction, fn func(*Instruction) bool) {
	for i := range body {
		in := &body[i]
		if !fn(in) {
			continue
		}
		if in.Kind == InstrRepeat && in.Repeat != nil {
			Walk(in.Repeat.Body, fn)
		}
	}
}
