package parser

import (
	"cobrust/internal/lexer"
	"cobrust/internal/source"
	"cobrust/internal/token"
)

// sentence — последовательность слов до точки (или до конца строки).
type sentence struct {
	toks []token.Token
	// terminated is true when the sentence ended with '.'.
	terminated bool
}

func (s sentence) span() source.Span {
	if len(s.toks) == 0 {
		return source.Span{}
	}
	return s.toks[0].Span.Cover(s.toks[len(s.toks)-1].Span)
}

// lineSpans splits region into line spans without their '\n'.
func lineSpans(file *source.File, region source.Span) []source.Span {
	var out []source.Span
	start := region.Start
	for i := region.Start; i < region.End; i++ {
		if file.Content[i] == '\n' {
			out = append(out, source.Span{File: file.ID, Start: start, End: i})
			start = i + 1
		}
	}
	if start < region.End {
		out = append(out, source.Span{File: file.ID, Start: start, End: region.End})
	}
	return out
}

// sentences lexes region line by line and cuts every line at '.' tokens.
// Blank lines and empty sentences are dropped.
func sentences(file *source.File, region source.Span, opts lexer.Options) ([]sentence, error) {
	var out []sentence
	for _, line := range lineSpans(file, region) {
		toks, err := lexer.SplitLine(file, line, opts)
		if err != nil {
			return nil, err
		}
		var cur []token.Token
		for _, tok := range toks {
			if tok.IsPeriod() {
				if len(cur) > 0 {
					out = append(out, sentence{toks: cur, terminated: true})
				}
				cur = nil
				continue
			}
			cur = append(cur, tok)
		}
		if len(cur) > 0 {
			out = append(out, sentence{toks: cur})
		}
	}
	return out, nil
}
