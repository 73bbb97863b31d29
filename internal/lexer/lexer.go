package lexer

import (
	"cobrust/internal/diag"
	"cobrust/internal/source"
	"cobrust/internal/token"
)

// Lexer splits one line of a source file into classified words.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	err    *diag.Error
}

// New returns a lexer over the line span sp of file.
func New(file *source.File, sp source.Span, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file, sp),
		opts:   opts,
	}
}

// SplitLine returns every word of the line sp, in order. The first lexical
// error stops the split and is returned as *diag.Error.
func SplitLine(file *source.File, sp source.Span, opts Options) ([]token.Token, error) {
	lx := New(file, sp, opts)
	var out []token.Token
	for {
		tok, ok := lx.Next()
		if !ok {
			break
		}
		out = append(out, tok)
	}
	if err := lx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Err returns the first lexical error, if any.
func (lx *Lexer) Err() error {
	if lx.err == nil {
		return nil
	}
	return lx.err
}

// Next возвращает следующее слово строки. ok == false в конце строки или
// после первой ошибки.
func (lx *Lexer) Next() (token.Token, bool) {
	if lx.err != nil {
		return token.Token{}, false
	}
	lx.skipBlanks()
	if lx.cursor.EOF() {
		return token.Token{}, false
	}

	var tok token.Token
	if lx.cursor.Peek() == '"' {
		tok = lx.scanString()
	} else {
		tok = lx.scanWord()
	}
	if tok.Kind == token.Invalid {
		return token.Token{}, false
	}
	return tok, true
}

func (lx *Lexer) skipBlanks() {
	lx.cursor.SkipWhile(isBlank)
}

// scanString читает литерал от открывающей кавычки до закрывающей, пробелы
// внутри входят в слово.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '"'
	for !lx.cursor.EOF() {
		if lx.cursor.Bump() != '"' {
			continue
		}
		sp := lx.cursor.SpanFrom(start)
		if !lx.cursor.EOF() && !isBlank(lx.cursor.Peek()) && !isTrailingPunct(lx.cursor.Peek()) {
			bad := lx.cursor.Mark()
			lx.cursor.Bump()
			lx.errLex(diag.LexMalformedWord, lx.cursor.SpanFrom(bad),
				"unexpected character after closing quote")
			return token.Token{Kind: token.Invalid, Span: sp}
		}
		return lx.token(token.StringLit, sp)
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
	return token.Token{Kind: token.Invalid, Span: sp}
}

// scanWord читает слово до пробела или конца строки. Завершающие '.' и ','
// отделяются и вернутся следующими вызовами Next как Punct.
func (lx *Lexer) scanWord() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.SkipWhile(func(b byte) bool { return !isBlank(b) })
	lx.cursor.GiveBack(start, isTrailingPunct)
	sp := lx.cursor.SpanFrom(start)
	text := lx.file.Text(sp)
	return lx.token(classify(text), sp)
}

func (lx *Lexer) token(kind token.Kind, sp source.Span) token.Token {
	return token.Token{Kind: kind, Span: sp, Text: lx.file.Text(sp)}
}
