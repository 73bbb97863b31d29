package diagfmt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/vmihailenco/msgpack/v5"

	"cobrust/internal/ast"
	"cobrust/internal/parser"
	"cobrust/internal/source"
)

// ProgramOutput is the serialisable form of a parsed program.
type ProgramOutput struct {
	File         string        `json:"file,omitempty" yaml:"file,omitempty" msgpack:"file,omitempty"`
	Declarations []DeclOutput  `json:"declarations" yaml:"declarations" msgpack:"declarations"`
	Body         []InstrOutput `json:"body" yaml:"body" msgpack:"body"`
}

type DeclOutput struct {
	Level int    `json:"level" yaml:"level" msgpack:"level"`
	Name  string `json:"name" yaml:"name" msgpack:"name"`
	Pic   string `json:"pic" yaml:"pic" msgpack:"pic"`
	Kind  string `json:"kind" yaml:"kind" msgpack:"kind"`
	Width int    `json:"width" yaml:"width" msgpack:"width"`
	Pos   string `json:"pos,omitempty" yaml:"pos,omitempty" msgpack:"pos,omitempty"`
}

type ValueOutput struct {
	Kind  string `json:"kind" yaml:"kind" msgpack:"kind"`
	Value string `json:"value" yaml:"value" msgpack:"value"`
}

type InstrOutput struct {
	Op     string        `json:"op" yaml:"op" msgpack:"op"`
	Pos    string        `json:"pos,omitempty" yaml:"pos,omitempty" msgpack:"pos,omitempty"`
	Source *ValueOutput  `json:"source,omitempty" yaml:"source,omitempty" msgpack:"source,omitempty"`
	Dest   string        `json:"dest,omitempty" yaml:"dest,omitempty" msgpack:"dest,omitempty"`
	Values []ValueOutput `json:"values,omitempty" yaml:"values,omitempty" msgpack:"values,omitempty"`
	Guard  *GuardOutput  `json:"guard,omitempty" yaml:"guard,omitempty" msgpack:"guard,omitempty"`
	Body   []InstrOutput `json:"body,omitempty" yaml:"body,omitempty" msgpack:"body,omitempty"`
}

type GuardOutput struct {
	Left  ValueOutput `json:"left" yaml:"left" msgpack:"left"`
	Cond  string      `json:"cond" yaml:"cond" msgpack:"cond"`
	Right ValueOutput `json:"right" yaml:"right" msgpack:"right"`
}

// BuildProgramOutput converts prog; fs may be nil, then positions are omitted.
func BuildProgramOutput(prog *parser.Program, fs *source.FileSet) ProgramOutput {
	out := ProgramOutput{Declarations: []DeclOutput{}, Body: []InstrOutput{}}
	if prog == nil {
		return out
	}
	if prog.Table != nil {
		for _, d := range prog.Table.All() {
			if out.File == "" && located(d.Span, fs) {
				out.File = fs.Get(d.Span.File).FormatPath("auto", "")
			}
			out.Declarations = append(out.Declarations, DeclOutput{
				Level: d.Level,
				Name:  d.Name,
				Pic:   d.Type.String(),
				Kind:  d.Type.Kind.String(),
				Width: d.Type.Width,
				Pos:   linePos(d.Span, fs),
			})
		}
	}
	out.Body = buildInstrs(prog.Body, fs)
	return out
}

func buildInstrs(body []ast.Instruction, fs *source.FileSet) []InstrOutput {
	out := make([]InstrOutput, 0, len(body))
	for i := range body {
		in := &body[i]
		item := InstrOutput{Op: in.Kind.String(), Pos: linePos(in.Span, fs)}
		switch {
		case in.Kind.IsInfix():
			src := valueOutput(in.Infix.Source)
			item.Source = &src
			item.Dest = in.Infix.Dest.Name
		case in.Kind == ast.InstrPrint:
			for _, v := range in.Values {
				item.Values = append(item.Values, valueOutput(v))
			}
		case in.Kind == ast.InstrRepeat && in.Repeat != nil:
			item.Guard = &GuardOutput{
				Left:  valueOutput(in.Repeat.Left),
				Cond:  in.Repeat.Cond.Symbol(),
				Right: valueOutput(in.Repeat.Right),
			}
			item.Body = buildInstrs(in.Repeat.Body, fs)
		}
		out = append(out, item)
	}
	return out
}

func valueOutput(v ast.Value) ValueOutput {
	val := v.String()
	if v.Kind == ast.ValueString {
		val = v.Str
	}
	return ValueOutput{Kind: v.Kind.String(), Value: val}
}

// source renders the value as written, strings quoted.
func (v ValueOutput) source() string {
	if v.Kind == ast.ValueString.String() {
		return fmt.Sprintf("%q", v.Value)
	}
	return v.Value
}

// linePos renders "line:col" of sp, or "" without a location.
func linePos(sp source.Span, fs *source.FileSet) string {
	if !located(sp, fs) {
		return ""
	}
	start, _ := fs.Resolve(sp)
	return fmt.Sprintf("%d:%d", start.Line, start.Col)
}

// FormatProgramJSON writes prog as indented JSON.
func FormatProgramJSON(w io.Writer, prog *parser.Program, fs *source.FileSet) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildProgramOutput(prog, fs))
}

// FormatProgramYAML writes prog as YAML.
func FormatProgramYAML(w io.Writer, prog *parser.Program, fs *source.FileSet) error {
	data, err := yaml.Marshal(BuildProgramOutput(prog, fs))
	if err != nil {
		return fmt.Errorf("yaml: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// FormatProgramMsgpack writes prog as a MessagePack document.
func FormatProgramMsgpack(w io.Writer, prog *parser.Program, fs *source.FileSet) error {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(BuildProgramOutput(prog, fs)); err != nil {
		return fmt.Errorf("msgpack: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

type treeNode struct {
	label    string
	children []*treeNode
}

// FormatProgramPretty prints the program as an indented tree.
func FormatProgramPretty(w io.Writer, prog *parser.Program, fs *source.FileSet) error {
	po := BuildProgramOutput(prog, fs)
	header := po.File
	if header == "" {
		header = "Program"
	}
	root := &treeNode{label: header}

	data := &treeNode{label: fmt.Sprintf("Data (%d)", len(po.Declarations))}
	for _, d := range po.Declarations {
		data.children = append(data.children, &treeNode{
			label: fmt.Sprintf("%02d %s pic %s%s", d.Level, d.Name, d.Pic, atPos(d.Pos)),
		})
	}
	proc := &treeNode{label: fmt.Sprintf("Procedure (%d)", len(po.Body))}
	proc.children = instrNodes(po.Body)
	root.children = []*treeNode{data, proc}

	var sb strings.Builder
	sb.WriteString(root.label)
	sb.WriteByte('\n')
	writeChildren(&sb, root.children, "")
	_, err := io.WriteString(w, sb.String())
	return err
}

func instrNodes(body []InstrOutput) []*treeNode {
	nodes := make([]*treeNode, 0, len(body))
	for _, in := range body {
		var label string
		switch {
		case in.Source != nil:
			label = fmt.Sprintf("%s %s -> %s", in.Op, in.Source.source(), in.Dest)
		case in.Guard != nil:
			label = fmt.Sprintf("%s until %s %s %s", in.Op, in.Guard.Left.source(), in.Guard.Cond, in.Guard.Right.source())
		case len(in.Values) > 0:
			parts := make([]string, len(in.Values))
			for i, v := range in.Values {
				parts[i] = v.source()
			}
			label = in.Op + " " + strings.Join(parts, ", ")
		default:
			label = in.Op
		}
		nodes = append(nodes, &treeNode{label: label + atPos(in.Pos), children: instrNodes(in.Body)})
	}
	return nodes
}

func atPos(pos string) string {
	if pos == "" {
		return ""
	}
	return " @" + pos
}

func writeChildren(sb *strings.Builder, children []*treeNode, prefix string) {
	for i, child := range children {
		last := i == len(children)-1
		branch, next := "├─ ", "│  "
		if last {
			branch, next = "└─ ", "   "
		}
		sb.WriteString(prefix)
		sb.WriteString(branch)
		sb.WriteString(child.label)
		sb.WriteByte('\n')
		writeChildren(sb, child.children, prefix+next)
	}
}
