package diagfmt

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"cobrust/internal/diag"
	"cobrust/internal/source"
)

type palette struct {
	err, warn, info, note, code, gutter, caret *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		err:    mk(color.FgRed, color.Bold),
		warn:   mk(color.FgYellow, color.Bold),
		info:   mk(color.FgCyan, color.Bold),
		note:   mk(color.FgBlue, color.Bold),
		code:   mk(color.Bold),
		gutter: mk(color.FgBlue),
		caret:  mk(color.FgGreen, color.Bold),
	}
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Для каждой печатает:
//
//	<path>:<line>:<col>: <sev> <CODE>: <message>
//	   10 |     multply n by fact
//	      |     ^~~~~~~
//	   = note: <path>:<line>:<col>: <note>
//
// Диагностики без места в исходнике печатаются одной строкой.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil {
		return
	}
	pal := newPalette(opts.Color)
	for _, d := range bag.Items() {
		writeDiagnostic(w, d, fs, opts, pal)
	}
}

// PrettyError renders err. A *diag.Error in the chain gets the full
// treatment; any other error is printed as a plain error line.
func PrettyError(w io.Writer, err error, fs *source.FileSet, opts PrettyOpts) {
	if err == nil {
		return
	}
	pal := newPalette(opts.Color)
	var de *diag.Error
	if errors.As(err, &de) {
		writeDiagnostic(w, de.Diag, fs, opts, pal)
		return
	}
	fmt.Fprintf(w, "%s: %s\n", pal.err.Sprint("error"), err)
}

func writeDiagnostic(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) {
	var sb strings.Builder
	if pos := position(d.Primary, fs, opts.PathMode); pos != "" {
		sb.WriteString(pos)
		sb.WriteString(": ")
	}
	sev := d.Severity.Label()
	fmt.Fprintf(&sb, "%s %s: %s\n", pal.severity(d.Severity).Sprint(sev), pal.code.Sprint(d.Code.ID()), d.Message)

	if located(d.Primary, fs) {
		writeSnippet(&sb, fs, d.Primary, opts.Context, pal)
	}
	if opts.ShowNotes {
		for _, n := range d.Notes {
			sb.WriteString("   = ")
			sb.WriteString(pal.note.Sprint("note"))
			sb.WriteString(": ")
			if pos := position(n.Span, fs, opts.PathMode); pos != "" && n.Span != d.Primary {
				sb.WriteString(pos)
				sb.WriteString(": ")
			}
			sb.WriteString(n.Msg)
			sb.WriteByte('\n')
		}
	}
	_, _ = io.WriteString(w, sb.String())
}

// writeSnippet печатает строку span-а (и context строк до неё) и линию
// подчёркивания. Ширина считается по runewidth, табы раскрываются.
func writeSnippet(sb *strings.Builder, fs *source.FileSet, sp source.Span, context int, pal palette) {
	f := fs.Get(sp.File)
	start, end := fs.Resolve(sp)
	first := max(1, int(start.Line)-context)
	gutterWidth := len(fmt.Sprint(start.Line))

	for ln := first; ln <= int(start.Line); ln++ {
		text := expandTabs(f.GetLine(uint32(ln))) //nolint:gosec // ln <= start.Line
		fmt.Fprintf(sb, " %s %s\n", pal.gutter.Sprintf("%*d |", gutterWidth, ln), text)
	}

	line := f.GetLine(start.Line)
	col := min(int(start.Col)-1, len(line))
	stop := len(line)
	if end.Line == start.Line {
		stop = min(int(end.Col)-1, len(line))
	}
	pad := runewidth.StringWidth(expandTabs(line[:col]))
	width := 1
	if stop > col {
		width = max(1, runewidth.StringWidth(expandTabs(line[col:stop])))
	}
	marker := "^" + strings.Repeat("~", width-1)
	fmt.Fprintf(sb, " %s %s%s\n", pal.gutter.Sprintf("%*s |", gutterWidth, ""), strings.Repeat(" ", pad), pal.caret.Sprint(marker))
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}
