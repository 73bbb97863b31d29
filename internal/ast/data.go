package ast

import "cobrust/internal/source"

// Data is one declared variable of the working-storage section.
type Data struct {
	Level int
	Name  string
	Type  PicType
	Span  source.Span
}

// Ident is a reference to a declared item at a use site.
type Ident struct {
	Name string
	Type PicType
	Span source.Span
}
