package ast

// Condition is the relational test of a PERFORM UNTIL guard.
type Condition uint8

const (
	GreaterThan Condition = iota
	LessThan
	EqualTo
	GreaterOrEqual
	LessOrEqual
)

// Symbol returns the relational operator, e.g. ">=".
func (c Condition) Symbol() string {
	switch c {
	case GreaterThan:
		return ">"
	case LessThan:
		return "<"
	case EqualTo:
		return "=="
	case GreaterOrEqual:
		return ">="
	case LessOrEqual:
		return "<="
	}
	return "?"
}

func (c Condition) String() string {
	switch c {
	case GreaterThan:
		return "GreaterThan"
	case LessThan:
		return "LessThan"
	case EqualTo:
		return "EqualTo"
	case GreaterOrEqual:
		return "GreaterOrEqual"
	case LessOrEqual:
		return "LessOrEqual"
	}
	return "?"
}

// Holds evaluates the condition on an ordered comparison result
// (negative, zero or positive).
func (c Condition) Holds(cmp int) bool {
	switch c {
	case GreaterThan:
		return cmp > 0
	case LessThan:
		return cmp < 0
	case EqualTo:
		return cmp == 0
	case GreaterOrEqual:
		return cmp >= 0
	case LessOrEqual:
		return cmp <= 0
	}
	return false
}
