package lexer

import (
	"cobrust/internal/diag"
	"cobrust/internal/source"
)

type Options struct {
	// Reporter получает копию каждой лексической ошибки; может быть nil.
	// Сама ошибка всё равно возвращается из Err/SplitLine.
	Reporter diag.Reporter
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.err == nil {
		lx.err = &diag.Error{Diag: diag.NewError(code, sp, msg)}
	}
	if lx.opts.Reporter != nil {
		diag.ReportError(lx.opts.Reporter, code, sp, msg).Emit()
	}
}
