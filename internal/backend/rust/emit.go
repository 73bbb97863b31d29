package rust

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"cobrust/internal/ast"
	"cobrust/internal/parser"
	"cobrust/internal/symbols"
)

const indentUnit = "    "

// Emitter renders a parsed program as a single Rust source file.
type Emitter struct {
	table *symbols.Table
	names *nameMap
	buf   strings.Builder
}

// usedSet is an insertion-ordered set of destination names.
type usedSet struct {
	order []string
	seen  map[string]struct{}
}

func newUsedSet() *usedSet {
	return &usedSet{seen: make(map[string]struct{})}
}

func (u *usedSet) add(name string) {
	if _, ok := u.seen[name]; ok {
		return
	}
	u.seen[name] = struct{}{}
	u.order = append(u.order, name)
}

func (u *usedSet) merge(other *usedSet) {
	for _, n := range other.order {
		u.add(n)
	}
}

func (u *usedSet) has(name string) bool {
	_, ok := u.seen[name]
	return ok
}

// EmitProgram returns the contents of main.rs for prog.
func EmitProgram(prog *parser.Program) (string, error) {
	if prog == nil || prog.Table == nil {
		return "", errors.New("rust: nil program")
	}
	e := &Emitter{
		table: prog.Table,
		names: newNameMap(prog.Table.Names()),
	}

	used, body := e.translate(prog.Body, 1)

	e.buf.WriteString("#![allow(unused)]\n\n")
	e.buf.WriteString("use pic::{Num, Operand};\n\n")
	e.buf.WriteString("fn main() {\n")
	for _, d := range prog.Table.All() {
		e.buf.WriteString(indentUnit)
		e.buf.WriteString(e.declaration(d, used.has(d.Name)))
		e.buf.WriteByte('\n')
	}
	if prog.Table.Len() > 0 && body != "" {
		e.buf.WriteByte('\n')
	}
	e.buf.WriteString(body)
	e.buf.WriteString("}\n\n")
	e.buf.WriteString(prelude)
	return e.buf.String(), nil
}

// UsedNames returns the destinations assigned anywhere in body, in order of
// first assignment.
func UsedNames(body []ast.Instruction) []string {
	e := &Emitter{names: newNameMap(nil)}
	used, _ := e.translate(body, 0)
	return used.order
}

// translate renders body at the given indentation depth and collects the
// names it assigns.
func (e *Emitter) translate(body []ast.Instruction, depth int) (*usedSet, string) {
	used := newUsedSet()
	var b strings.Builder
	pad := strings.Repeat(indentUnit, depth)
	for i := range body {
		in := &body[i]
		switch in.Kind {
		case ast.InstrMove, ast.InstrAdd, ast.InstrSubtract, ast.InstrMultiply:
			used.add(in.Infix.Dest.Name)
			b.WriteString(pad)
			b.WriteString(e.infix(in.Kind, in.Infix))
			b.WriteByte('\n')
		case ast.InstrPrint:
			b.WriteString(pad)
			b.WriteString(e.print(in.Values))
			b.WriteByte('\n')
		case ast.InstrRepeat:
			inner, text := e.translate(in.Repeat.Body, depth+1)
			used.merge(inner)
			fmt.Fprintf(&b, "%sloop {\n", pad)
			fmt.Fprintf(&b, "%s%sif %s {\n", pad, indentUnit, e.guard(in.Repeat))
			fmt.Fprintf(&b, "%s%s%sbreak;\n", pad, indentUnit, indentUnit)
			fmt.Fprintf(&b, "%s%s}\n", pad, indentUnit)
			b.WriteString(text)
			fmt.Fprintf(&b, "%s}\n", pad)
		case ast.InstrStop:
			b.WriteString(pad)
			b.WriteString("std::process::exit(0);\n")
		}
	}
	return used, b.String()
}

func (e *Emitter) declaration(d ast.Data, mutable bool) string {
	mut := ""
	if mutable {
		mut = "mut "
	}
	name := e.names.get(d.Name)
	if d.Type.IsNumeric() {
		return fmt.Sprintf("let %s%s: Num<%d> = Num::new(%s);", mut, name, d.Type.Width, strings.Repeat("1", d.Type.Width))
	}
	return fmt.Sprintf("let %s%s: String = String::from(%q);", mut, name, strings.Repeat("0", d.Type.Width))
}

func (e *Emitter) infix(kind ast.InstrKind, in ast.Infix) string {
	dst := e.names.get(in.Dest.Name)
	if in.Dest.Type.IsAlphanumeric() {
		w := in.Dest.Type.Width
		if kind == ast.InstrMove {
			return fmt.Sprintf("%s = pic::alnum::<%d>(&%s);", dst, w, e.display(in.Source))
		}
		return fmt.Sprintf("%s = pic::alnum::<%d>(&pic::%s(%s.value(), %s));",
			dst, w, textOp(kind), dst, e.numeric(in.Source))
	}

	if kind == ast.InstrMove {
		return fmt.Sprintf("%s = Num::new(%s);", dst, e.numeric(in.Source))
	}
	op := map[ast.InstrKind]string{ast.InstrAdd: "+=", ast.InstrSubtract: "-=", ast.InstrMultiply: "*="}[kind]
	rhs := e.numeric(in.Source)
	if in.Source.Kind == ast.ValueIdent && in.Source.Ident.Name != in.Dest.Name {
		rhs = "&" + e.names.get(in.Source.Ident.Name)
	}
	return fmt.Sprintf("%s %s %s;", dst, op, rhs)
}

func textOp(kind ast.InstrKind) string {
	switch kind {
	case ast.InstrSubtract:
		return "sub"
	case ast.InstrMultiply:
		return "mul"
	}
	return "add"
}

// numeric renders v as an i128 expression.
func (e *Emitter) numeric(v ast.Value) string {
	switch v.Kind {
	case ast.ValueNumber:
		return strconv.FormatInt(v.Number, 10)
	case ast.ValueString:
		return "pic::digits(" + rustString(v.Str) + ")"
	}
	return e.names.get(v.Ident.Name) + ".value()"
}

// display renders v as an expression implementing Display.
func (e *Emitter) display(v ast.Value) string {
	switch v.Kind {
	case ast.ValueNumber:
		return strconv.FormatInt(v.Number, 10)
	case ast.ValueString:
		return rustString(v.Str)
	}
	return e.names.get(v.Ident.Name)
}

func (e *Emitter) print(values []ast.Value) string {
	if len(values) == 0 {
		return "println!();"
	}
	args := make([]string, len(values))
	for i, v := range values {
		args[i] = e.display(v)
	}
	return fmt.Sprintf("println!(%q, %s);", strings.Repeat("{}", len(values)), strings.Join(args, ", "))
}

// guard renders the loop exit test. Two text operands compare as strings,
// anything else compares numeric readings.
func (e *Emitter) guard(rep *ast.Repeat) string {
	if rep.Left.IsText() && rep.Right.IsText() {
		return fmt.Sprintf("%s %s %s", e.text(rep.Left), rep.Cond.Symbol(), e.text(rep.Right))
	}
	return fmt.Sprintf("%s %s %s", e.numeric(rep.Left), rep.Cond.Symbol(), e.numeric(rep.Right))
}

func (e *Emitter) text(v ast.Value) string {
	if v.Kind == ast.ValueString {
		return rustString(v.Str)
	}
	return e.names.get(v.Ident.Name) + ".as_str()"
}
