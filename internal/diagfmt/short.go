package diagfmt

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"cobrust/internal/diag"
	"cobrust/internal/source"
)

type shortDiagnostic struct {
	Severity string
	Code     string
	Pos      string
	Path     string
	Line     uint32
	Column   uint32
	Message  string
	Notes    []string
}

// Short renders diagnostics one per line, sorted by position:
//
//	ERROR SYN2005 prog.cob:9:5 unknown verb "multply"
//
// Notes follow their diagnostic indented by two spaces. The output is
// stable and is used for golden comparisons.
func Short(w io.Writer, items []diag.Diagnostic, fs *source.FileSet, includeNotes bool) error {
	rendered := make([]shortDiagnostic, 0, len(items))
	for _, d := range items {
		sd := shortDiagnostic{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Pos:      "-",
			Message:  d.Message,
		}
		if located(d.Primary, fs) {
			start, _ := fs.Resolve(d.Primary)
			sd.Path = fs.Get(d.Primary.File).FormatPath("basename", "")
			sd.Line, sd.Column = start.Line, start.Col
			sd.Pos = fmt.Sprintf("%s:%d:%d", sd.Path, sd.Line, sd.Column)
		}
		if includeNotes {
			for _, n := range d.Notes {
				sd.Notes = append(sd.Notes, n.Msg)
			}
		}
		rendered = append(rendered, sd)
	}

	sort.SliceStable(rendered, func(i, j int) bool {
		di, dj := rendered[i], rendered[j]
		if di.Path != dj.Path {
			return di.Path < dj.Path
		}
		if di.Line != dj.Line {
			return di.Line < dj.Line
		}
		if di.Column != dj.Column {
			return di.Column < dj.Column
		}
		return di.Code < dj.Code
	})

	var b strings.Builder
	for _, d := range rendered {
		fmt.Fprintf(&b, "%s %s %s %s\n", d.Severity, d.Code, d.Pos, d.Message)
		for _, n := range d.Notes {
			fmt.Fprintf(&b, "  note: %s\n", n)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
