package parser

import (
	"strconv"
	"strings"

	"cobrust/internal/ast"
	"cobrust/internal/diag"
	"cobrust/internal/lexer"
	"cobrust/internal/source"
	"cobrust/internal/symbols"
	"cobrust/internal/token"
)

const (
	// MaxNumericWidth keeps generated values inside u128 arithmetic.
	MaxNumericWidth = 31
	// MaxAlphanumericWidth bounds the initial text literal of a declaration.
	MaxAlphanumericWidth = 1 << 16
)

// ParseData parses the declarations in region, one sentence per
// declaration, and freezes them into a symbol table.
func ParseData(file *source.File, region source.Span, opts Options) (*symbols.Table, error) {
	sents, err := sentences(file, region, lexer.Options{})
	if err != nil {
		return nil, err
	}
	b := symbols.NewBuilder(len(sents))
	for _, s := range sents {
		d, err := parseDeclaration(s, opts)
		if err != nil {
			return nil, err
		}
		if err := b.Declare(d); err != nil {
			return nil, err
		}
	}
	return b.Build(), nil
}

// parseDeclaration: <level> <name> pic <picture> [ignored clauses...]
func parseDeclaration(s sentence, opts Options) (ast.Data, error) {
	toks := s.toks
	levelTok := toks[0]
	if levelTok.Kind != token.IntLit {
		return ast.Data{}, diag.Errorf(diag.SynMalformedLevel, levelTok.Span,
			"expected a level number, found %q", levelTok.Text)
	}
	level, err := strconv.Atoi(levelTok.Text)
	if err != nil {
		return ast.Data{}, diag.Errorf(diag.SynMalformedLevel, levelTok.Span,
			"level number %q is out of range", levelTok.Text)
	}

	if len(toks) < 2 {
		return ast.Data{}, diag.Errorf(diag.SynUnsupportedConstruct, levelTok.Span,
			"declaration has no data name")
	}
	nameTok := toks[1]
	if nameTok.Kind != token.Ident {
		return ast.Data{}, diag.Errorf(diag.SynUnsupportedConstruct, nameTok.Span,
			"expected a data name, found %s %q", nameTok.Kind, nameTok.Text)
	}

	if _, ok := zeroWords[nameTok.Text]; ok {
		return ast.Data{}, diag.Errorf(diag.SynUnsupportedConstruct, nameTok.Span,
			"%q is a figurative constant and cannot be a data name", nameTok.Text)
	}

	if len(toks) < 3 || !toks[2].Is("pic") {
		sp := nameTok.Span
		if len(toks) >= 3 {
			sp = toks[2].Span
		}
		return ast.Data{}, diag.Errorf(diag.SynUnsupportedConstruct, sp,
			"declaration of %q must have a pic clause", nameTok.Text)
	}
	if len(toks) < 4 {
		return ast.Data{}, diag.Errorf(diag.SynMalformedPicture, toks[2].Span,
			"pic clause of %q has no picture string", nameTok.Text)
	}
	picTok := toks[3]
	pic, err := ParsePicture(picTok.Text, picTok.Span)
	if err != nil {
		return ast.Data{}, err
	}

	if rest := pictureRest(picTok.Text); rest != "" && opts.Reporter != nil {
		diag.ReportWarning(opts.Reporter, diag.SynIgnoredClause, picTok.Span,
			"picture characters "+strconv.Quote(rest)+" are ignored").
			WithNote(nameTok.Span, "declaration of "+strconv.Quote(nameTok.Text)).
			Emit()
	}

	if len(toks) > 4 && opts.Reporter != nil {
		extra := toks[4].Span.Cover(toks[len(toks)-1].Span)
		diag.ReportWarning(opts.Reporter, diag.SynIgnoredClause, extra,
			"clauses after the picture are ignored").
			WithNote(nameTok.Span, "declaration of "+strconv.Quote(nameTok.Text)).
			Emit()
	}

	return ast.Data{
		Level: level,
		Name:  nameTok.Text,
		Type:  pic,
		Span:  levelTok.Span.Cover(picTok.Span),
	}, nil
}

// ParsePicture decodes a picture string such as 9(15), 999 or x(3).
// The first character picks the type; the width is the count in
// parentheses or, without them, the length of the whole string. Other
// characters (99v99, 9(3)v99) do not change the type; see pictureRest.
func ParsePicture(text string, sp source.Span) (ast.PicType, error) {
	if text == "" {
		return ast.PicType{}, diag.Errorf(diag.SynMalformedPicture, sp, "empty picture string")
	}
	var kind ast.PicKind
	switch text[0] {
	case '9':
		kind = ast.PicNumeric
	case 'x':
		kind = ast.PicAlphanumeric
	case 'a':
		return ast.PicType{}, unsupportedPic(ast.PicAlphabetic, text, sp)
	case 's':
		return ast.PicType{}, unsupportedPic(ast.PicSign, text, sp)
	case 'v':
		return ast.PicType{}, unsupportedPic(ast.PicAssumedDecimal, text, sp)
	case 'p':
		return ast.PicType{}, unsupportedPic(ast.PicImplicitDecimal, text, sp)
	default:
		return ast.PicType{}, diag.Errorf(diag.SynUnsupportedConstruct, sp,
			"unsupported picture string %q", text)
	}

	var width int
	if len(text) > 1 && text[1] == '(' {
		n, err := parseWidth(text, sp)
		if err != nil {
			return ast.PicType{}, err
		}
		width = n
	} else {
		width = len(text)
	}

	switch {
	case kind == ast.PicNumeric && width > MaxNumericWidth:
		return ast.PicType{}, diag.Errorf(diag.SynUnsupportedConstruct, sp,
			"numeric width %d exceeds the maximum of %d digits", width, MaxNumericWidth)
	case kind == ast.PicAlphanumeric && width > MaxAlphanumericWidth:
		return ast.PicType{}, diag.Errorf(diag.SynUnsupportedConstruct, sp,
			"alphanumeric width %d exceeds the maximum of %d", width, MaxAlphanumericWidth)
	}
	return ast.PicType{Kind: kind, Width: width}, nil
}

// parseWidth reads "(<digits>)" starting at text[1]; returns the count and
// the index just past ')'.
func parseWidth(text string, sp source.Span) (int, error) {
	i := 2
	for i < len(text) && text[i] != ')' {
		i++
	}
	if i == len(text) {
		return 0, diag.Errorf(diag.SynMalformedPicture, sp,
			"picture %q is missing ')'", text)
	}
	digits := text[2:i]
	if digits == "" {
		return 0, diag.Errorf(diag.SynMalformedPicture, sp,
			"picture %q has an empty width", text)
	}
	for j := 0; j < len(digits); j++ {
		if digits[j] < '0' || digits[j] > '9' {
			return 0, diag.Errorf(diag.SynMalformedPicture, sp,
				"picture width %q is not a number", digits)
		}
	}
	n, convErr := strconv.Atoi(digits)
	if convErr != nil || n == 0 {
		return 0, diag.Errorf(diag.SynMalformedPicture, sp,
			"picture width %q must be a positive number", digits)
	}
	return n, nil
}

func unsupportedPic(kind ast.PicKind, text string, sp source.Span) error {
	return diag.Errorf(diag.SynUnsupportedConstruct, sp,
		"%s picture %q is not supported", kind, text)
}

// pictureRest returns the part of a valid picture string that does not
// describe the type: everything after "9(n)", or the first character that
// differs from the leading one onwards.
func pictureRest(text string) string {
	if len(text) > 1 && text[1] == '(' {
		if end := strings.IndexByte(text, ')'); end >= 0 {
			return text[end+1:]
		}
		return ""
	}
	for i := 1; i < len(text); i++ {
		if text[i] != text[0] {
			return text[i:]
		}
	}
	return ""
}
