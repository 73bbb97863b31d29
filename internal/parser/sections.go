package parser

import (
	"strings"

	"cobrust/internal/diag"
	"cobrust/internal/source"
)

// Якоря разделов в порядке появления. Текст уже в нижнем регистре.
const (
	AnchorData           = "data division."
	AnchorWorkingStorage = "working-storage section."
	AnchorProcedure      = "procedure division."
)

// Layout records where the section anchors were found.
type Layout struct {
	File           source.FileID
	Data           source.Span
	WorkingStorage source.Span
	Procedure      source.Span
	End            uint32
}

// DataSpan is the text between the working-storage anchor and the
// procedure anchor.
func (l Layout) DataSpan() source.Span {
	return source.Span{File: l.File, Start: l.WorkingStorage.End, End: l.Procedure.Start}
}

// ProcedureSpan is the text after the procedure anchor.
func (l Layout) ProcedureSpan() source.Span {
	return source.Span{File: l.File, Start: l.Procedure.End, End: l.End}
}

// FindSections finds the three anchors, in order. A missing or out of
// order anchor is MissingSection.
func FindSections(file *source.File) (Layout, error) {
	text := string(file.Content)
	end := uint32(len(text)) //nolint:gosec // FileSet content fits in uint32
	layout := Layout{File: file.ID, End: end}

	from := 0
	for _, a := range []struct {
		anchor string
		dst    *source.Span
	}{
		{AnchorData, &layout.Data},
		{AnchorWorkingStorage, &layout.WorkingStorage},
		{AnchorProcedure, &layout.Procedure},
	} {
		at := findAnchor(text, a.anchor, from)
		if at < 0 {
			sp := source.Span{File: file.ID, Start: uint32(from), End: uint32(from)} //nolint:gosec // bounded by end
			err := diag.Errorf(diag.SynMissingSection, sp, "missing %q", a.anchor)
			if findAnchor(text, a.anchor, 0) >= 0 {
				err.Note(sp, "the section appears before an earlier required section")
			}
			return Layout{}, err
		}
		*a.dst = source.Span{File: file.ID, Start: uint32(at), End: uint32(at + len(a.anchor))} //nolint:gosec // bounded by end
		from = at + len(a.anchor)
	}
	return layout, nil
}

// findAnchor ищет anchor начиная с from; совпадение засчитывается только в
// начале слова, чтобы "metadata division." не сошёл за раздел.
func findAnchor(text, anchor string, from int) int {
	for from <= len(text) {
		i := strings.Index(text[from:], anchor)
		if i < 0 {
			return -1
		}
		at := from + i
		if at == 0 || isSpaceByte(text[at-1]) {
			return at
		}
		from = at + 1
	}
	return -1
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
