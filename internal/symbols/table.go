package symbols

import (
	"fmt"

	"fortio.org/safecast"

	"cobrust/internal/ast"
	"cobrust/internal/diag"
)

// Table is the immutable, ordered set of declared data items. It is built
// once by a Builder and shared read-only by the procedure parser, the
// translator and the interpreter.
type Table struct {
	items []ast.Data
	index map[string]uint32
}

// Builder accumulates declarations in source order.
type Builder struct {
	items []ast.Data
	index map[string]uint32
	built bool
}

// NewBuilder creates a builder with a capacity hint.
func NewBuilder(capHint int) *Builder {
	return &Builder{
		items: make([]ast.Data, 0, max(capHint, 0)),
		index: make(map[string]uint32, max(capHint, 0)),
	}
}

// Declare appends d. A second declaration of the same name is a
// DuplicateDeclaration error pointing at the later one.
func (b *Builder) Declare(d ast.Data) error {
	if b.built {
		panic("symbols: Declare after Build")
	}
	if prev, ok := b.index[d.Name]; ok {
		return diag.Errorf(diag.SemaDuplicateDeclaration, d.Span,
			"%q is already declared", d.Name).
			Note(b.items[prev].Span, "previous declaration is here")
	}
	pos, err := safecast.Conv[uint32](len(b.items))
	if err != nil {
		panic(fmt.Errorf("symbol table overflow: %w", err))
	}
	b.items = append(b.items, d)
	b.index[d.Name] = pos
	return nil
}

// Build freezes the builder into a Table. The builder must not be used
// afterwards.
func (b *Builder) Build() *Table {
	b.built = true
	return &Table{items: b.items, index: b.index}
}

// Lookup returns the declaration of name.
func (t *Table) Lookup(name string) (ast.Data, bool) {
	if t == nil {
		return ast.Data{}, false
	}
	pos, ok := t.index[name]
	if !ok {
		return ast.Data{}, false
	}
	return t.items[pos], true
}

// Resolve returns the use-site identifier for name.
func (t *Table) Resolve(name string) (ast.Ident, bool) {
	d, ok := t.Lookup(name)
	if !ok {
		return ast.Ident{}, false
	}
	return ast.Ident{Name: d.Name, Type: d.Type}, true
}

// Len returns the number of declarations.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.items)
}

// All returns the declarations in declaration order. The result is a copy.
func (t *Table) All() []ast.Data {
	if t == nil {
		return nil
	}
	out := make([]ast.Data, len(t.items))
	copy(out, t.items)
	return out
}

// Names returns declared names in declaration order.
func (t *Table) Names() []string {
	if t == nil {
		return nil
	}
	out := make([]string, len(t.items))
	for i := range t.items {
		out[i] = t.items[i].Name
	}
	return out
}
