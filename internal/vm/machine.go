package vm

import (
	"bufio"
	"context"
	"errors"
	"io"
	"math/big"
	"strconv"
	"strings"

	"cobrust/internal/ast"
	"cobrust/internal/diag"
	"cobrust/internal/parser"
)

// Options tune an interpreter run.
type Options struct {
	// MaxSteps bounds executed instructions plus loop tests; 0 means no limit.
	MaxSteps int
}

// errStop ends the run early, like std::process::exit(0).
var errStop = errors.New("stop run")

// Machine holds the state of one run.
type Machine struct {
	vars     map[string]*slot
	out      *bufio.Writer
	steps    int
	maxSteps int
}

// Run executes prog and writes its output to w.
func Run(ctx context.Context, prog *parser.Program, w io.Writer, opts Options) error {
	if prog == nil || prog.Table == nil {
		return errors.New("vm: nil program")
	}
	m := New(prog, w, opts)
	err := m.exec(ctx, prog.Body)
	if flushErr := m.out.Flush(); flushErr != nil && err == nil {
		err = flushErr
	}
	if errors.Is(err, errStop) {
		return nil
	}
	return err
}

// New prepares a machine with every declared item at its initial value.
func New(prog *parser.Program, w io.Writer, opts Options) *Machine {
	m := &Machine{
		vars:     make(map[string]*slot, prog.Table.Len()),
		out:      bufio.NewWriter(w),
		maxSteps: opts.MaxSteps,
	}
	for _, d := range prog.Table.All() {
		m.vars[d.Name] = newSlot(d.Type)
	}
	return m
}

// Value returns the printed form of a declared item.
func (m *Machine) Value(name string) (string, bool) {
	s, ok := m.vars[name]
	if !ok {
		return "", false
	}
	return s.String(), true
}

func (m *Machine) step(ctx context.Context, in *ast.Instruction) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.steps++
	if m.maxSteps > 0 && m.steps > m.maxSteps {
		return diag.Errorf(diag.RunStepLimitExceeded, in.Span,
			"execution exceeded %d steps", m.maxSteps)
	}
	return nil
}

func (m *Machine) exec(ctx context.Context, body []ast.Instruction) error {
	for i := range body {
		in := &body[i]
		if err := m.step(ctx, in); err != nil {
			return err
		}
		switch in.Kind {
		case ast.InstrMove:
			m.move(in.Infix)
		case ast.InstrAdd, ast.InstrSubtract, ast.InstrMultiply:
			m.arith(in.Kind, in.Infix)
		case ast.InstrPrint:
			if err := m.print(in.Values); err != nil {
				return err
			}
		case ast.InstrRepeat:
			if err := m.repeat(ctx, in); err != nil {
				return err
			}
		case ast.InstrStop:
			return errStop
		}
	}
	return nil
}

func (m *Machine) repeat(ctx context.Context, in *ast.Instruction) error {
	rep := in.Repeat
	for {
		if m.guard(rep) {
			return nil
		}
		if err := m.exec(ctx, rep.Body); err != nil {
			return err
		}
		if err := m.step(ctx, in); err != nil {
			return err
		}
	}
}

func (m *Machine) move(in ast.Infix) {
	dst := m.vars[in.Dest.Name]
	if dst.typ.IsNumeric() {
		dst.setNumber(m.numeric(in.Source))
		return
	}
	dst.setText(m.display(in.Source))
}

func (m *Machine) arith(kind ast.InstrKind, in ast.Infix) {
	dst := m.vars[in.Dest.Name]
	a, b := dst.reading(), m.numeric(in.Source)
	switch kind {
	case ast.InstrAdd:
		a.Add(a, b)
	case ast.InstrSubtract:
		a.Sub(a, b)
	case ast.InstrMultiply:
		a.Mul(a, b)
	}
	if dst.typ.IsNumeric() {
		dst.setNumber(a)
		return
	}
	dst.setText(reduce(a, textModulus).String())
}

func (m *Machine) print(values []ast.Value) error {
	var b strings.Builder
	for _, v := range values {
		b.WriteString(m.display(v))
	}
	b.WriteByte('\n')
	_, err := m.out.WriteString(b.String())
	return err
}

// guard reports whether the loop should stop.
func (m *Machine) guard(rep *ast.Repeat) bool {
	var cmp int
	if rep.Left.IsText() && rep.Right.IsText() {
		cmp = strings.Compare(m.display(rep.Left), m.display(rep.Right))
	} else {
		cmp = m.numeric(rep.Left).Cmp(m.numeric(rep.Right))
	}
	return rep.Cond.Holds(cmp)
}

// numeric is the i128 reading of an operand in the generated code.
func (m *Machine) numeric(v ast.Value) *big.Int {
	switch v.Kind {
	case ast.ValueNumber:
		return big.NewInt(v.Number)
	case ast.ValueString:
		return digits(v.Str)
	}
	return m.vars[v.Ident.Name].reading()
}

// display is the Display form of an operand in the generated code.
func (m *Machine) display(v ast.Value) string {
	switch v.Kind {
	case ast.ValueNumber:
		return strconv.FormatInt(v.Number, 10)
	case ast.ValueString:
		return v.Str
	}
	return m.vars[v.Ident.Name].String()
}
