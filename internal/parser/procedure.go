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

// Verbs lists the statement keywords the procedure parser accepts.
var Verbs = []string{"move", "add", "subtract", "multiply", "display", "perform", "end-perform", "stop"}

// figurative constants read as Number(0)
var zeroWords = map[string]struct{}{"zero": {}, "zeros": {}, "zeroes": {}}

type procParser struct {
	table *symbols.Table
	opts  Options
	sents []sentence
	pos   int
}

// ParseProcedure parses the statements in region into an instruction tree.
// Every identifier is resolved against table.
func ParseProcedure(file *source.File, region source.Span, table *symbols.Table, opts Options) ([]ast.Instruction, error) {
	sents, err := sentences(file, region, lexer.Options{})
	if err != nil {
		return nil, err
	}
	p := &procParser{table: table, opts: opts, sents: sents}
	return p.parseBody(0, source.Span{})
}

// parseBody consumes sentences until end-perform (depth > 0) or the end of
// input (depth == 0).
func (p *procParser) parseBody(depth int, open source.Span) ([]ast.Instruction, error) {
	var body []ast.Instruction
	for p.pos < len(p.sents) {
		s := p.sents[p.pos]
		p.pos++
		head := s.toks[0]

		if head.Is("end-perform") {
			if depth == 0 {
				return nil, diag.Errorf(diag.SynMalformedStatement, head.Span,
					"end-perform without a matching perform")
			}
			return body, nil
		}
		if isParagraphLabel(s) {
			continue
		}
		in, err := p.parseStatement(s, depth)
		if err != nil {
			return nil, err
		}
		body = append(body, in)
	}
	if depth > 0 {
		return nil, diag.Errorf(diag.SynUnterminatedBlock, open,
			"perform is not closed by end-perform")
	}
	return body, nil
}

// isParagraphLabel: одиночный идентификатор с точкой, например "main-para."
func isParagraphLabel(s sentence) bool {
	return s.terminated && len(s.toks) == 1 && s.toks[0].Kind == token.Ident
}

func (p *procParser) parseStatement(s sentence, depth int) (ast.Instruction, error) {
	head := s.toks[0]
	if head.Kind == token.Keyword {
		switch head.Text {
		case "move", "add":
			return p.parseInfix(s, infixKind(head.Text), "to")
		case "subtract":
			return p.parseInfix(s, ast.InstrSubtract, "from")
		case "multiply":
			return p.parseInfix(s, ast.InstrMultiply, "by")
		case "display":
			return p.parseDisplay(s)
		case "perform":
			return p.parsePerform(s, depth)
		case "stop":
			if len(s.toks) == 2 && s.toks[1].Is("run") {
				return ast.NewStop(s.span()), nil
			}
			return ast.Instruction{}, diag.Errorf(diag.SynMalformedStatement, s.span(),
				"expected \"stop run\"")
		}
	}
	err := diag.Errorf(diag.SynUnknownVerb, head.Span, "unknown verb %q", head.Text)
	if head.Kind == token.Ident || head.Kind == token.Keyword {
		if hint, ok := suggest(head.Text, Verbs); ok {
			err.Note(head.Span, "did you mean "+strconv.Quote(hint)+"?")
		}
	}
	return ast.Instruction{}, err
}

func infixKind(verb string) ast.InstrKind {
	if verb == "move" {
		return ast.InstrMove
	}
	return ast.InstrAdd
}

// parseInfix: <verb> <src> <connector> <dest>
func (p *procParser) parseInfix(s sentence, kind ast.InstrKind, connector string) (ast.Instruction, error) {
	toks := s.toks
	verb := toks[0].Text
	if len(toks) != 4 || !toks[2].Is(connector) {
		return ast.Instruction{}, diag.Errorf(diag.SynMalformedStatement, s.span(),
			"expected \"%s <value> %s <identifier>\"", verb, connector)
	}
	src, err := p.value(toks[1])
	if err != nil {
		return ast.Instruction{}, err
	}
	dst, err := p.dest(toks[3])
	if err != nil {
		return ast.Instruction{}, err
	}
	return ast.NewInfix(kind, src, dst, s.span()), nil
}

func (p *procParser) parseDisplay(s sentence) (ast.Instruction, error) {
	values := make([]ast.Value, 0, len(s.toks)-1)
	for _, tok := range s.toks[1:] {
		if tok.Kind == token.Punct && tok.Text == "," {
			continue
		}
		v, err := p.value(tok)
		if err != nil {
			return ast.Instruction{}, err
		}
		values = append(values, v)
	}
	return ast.NewPrint(values, s.span()), nil
}

// parsePerform: perform until <left> <condition> <right>, then the body up
// to end-perform.
func (p *procParser) parsePerform(s sentence, depth int) (ast.Instruction, error) {
	toks := s.toks
	if len(toks) < 2 || !toks[1].Is("until") {
		return ast.Instruction{}, diag.Errorf(diag.SynUnsupportedConstruct, s.span(),
			"only \"perform until <condition>\" is supported")
	}
	if depth+1 > p.opts.maxNesting() {
		return ast.Instruction{}, diag.Errorf(diag.SynNestingTooDeep, toks[0].Span,
			"perform nesting exceeds the limit of %d", p.opts.maxNesting())
	}
	rep, err := p.parseGuard(toks[1], toks[2:])
	if err != nil {
		return ast.Instruction{}, err
	}
	body, err := p.parseBody(depth+1, s.span())
	if err != nil {
		return ast.Instruction{}, err
	}
	rep.Body = body
	return ast.NewRepeat(rep, s.span()), nil
}

var conditionWords = []string{"greater", "less", "equal", ">", "<", "=", ">=", "<="}

// parseGuard reads <left> <condition words> <right>.
func (p *procParser) parseGuard(until token.Token, toks []token.Token) (*ast.Repeat, error) {
	if len(toks) == 0 {
		return nil, diag.Errorf(diag.SynMalformedStatement, until.Span, "missing condition after until")
	}
	left, err := p.value(toks[0])
	if err != nil {
		return nil, err
	}
	if len(toks) < 2 {
		return nil, diag.Errorf(diag.SynMalformedStatement, toks[0].Span, "missing relational operator")
	}
	cond, n, err := parseCondition(toks[1:])
	if err != nil {
		return nil, err
	}
	rest := toks[1+n:]
	switch {
	case len(rest) == 0:
		last := toks[len(toks)-1]
		return nil, diag.Errorf(diag.SynMalformedStatement, last.Span, "missing right operand")
	case len(rest) > 1:
		return nil, diag.Errorf(diag.SynMalformedStatement, rest[1].Span.Cover(rest[len(rest)-1].Span),
			"unexpected words after the condition")
	}
	right, err := p.value(rest[0])
	if err != nil {
		return nil, err
	}
	return &ast.Repeat{Left: left, Cond: cond, Right: right}, nil
}

// parseCondition returns the condition and the number of words it used.
func parseCondition(toks []token.Token) (ast.Condition, int, error) {
	head := toks[0]
	if head.Kind == token.Punct {
		switch head.Text {
		case ">":
			return ast.GreaterThan, 1, nil
		case "<":
			return ast.LessThan, 1, nil
		case "=":
			return ast.EqualTo, 1, nil
		case ">=":
			return ast.GreaterOrEqual, 1, nil
		case "<=":
			return ast.LessOrEqual, 1, nil
		}
	}
	if head.Kind == token.Keyword {
		n := 1
		optional := func(word string) {
			if n < len(toks) && toks[n].Is(word) {
				n++
			}
		}
		switch head.Text {
		case "equal":
			optional("to")
			return ast.EqualTo, n, nil
		case "greater", "less":
			optional("than")
			strict, inclusive := ast.GreaterThan, ast.GreaterOrEqual
			if head.Text == "less" {
				strict, inclusive = ast.LessThan, ast.LessOrEqual
			}
			if n+1 < len(toks) && toks[n].Is("or") && toks[n+1].Is("equal") {
				n += 2
				optional("to")
				return inclusive, n, nil
			}
			return strict, n, nil
		}
	}
	err := diag.Errorf(diag.SynUnknownCondition, head.Span, "unknown condition %q", head.Text)
	if hint, ok := suggest(head.Text, conditionWords); ok {
		err.Note(head.Span, "did you mean "+strconv.Quote(hint)+"?")
	}
	return 0, 0, err
}

// value classifies one word into an operand.
func (p *procParser) value(tok token.Token) (ast.Value, error) {
	switch tok.Kind {
	case token.StringLit:
		return ast.StringValue(strings.Trim(tok.Text, `"`), tok.Span), nil
	case token.IntLit:
		n, err := strconv.ParseInt(tok.Text, 10, 64)
		if err != nil {
			return ast.Value{}, diag.Errorf(diag.SynUnsupportedConstruct, tok.Span,
				"integer literal %s is out of range", tok.Text)
		}
		return ast.NumberValue(n, tok.Span), nil
	case token.Ident:
		if _, ok := zeroWords[tok.Text]; ok {
			return ast.NumberValue(0, tok.Span), nil
		}
		id, err := p.resolve(tok)
		if err != nil {
			return ast.Value{}, err
		}
		return ast.IdentValue(id), nil
	}
	return ast.Value{}, diag.Errorf(diag.SynMalformedStatement, tok.Span,
		"expected a value, found %s %q", tok.Kind, tok.Text)
}

// dest resolves an assignment target; literals are not allowed.
func (p *procParser) dest(tok token.Token) (ast.Ident, error) {
	if tok.Kind != token.Ident {
		return ast.Ident{}, diag.Errorf(diag.SynMalformedStatement, tok.Span,
			"destination must be a declared identifier, found %s %q", tok.Kind, tok.Text)
	}
	return p.resolve(tok)
}

func (p *procParser) resolve(tok token.Token) (ast.Ident, error) {
	id, ok := p.table.Resolve(tok.Text)
	if !ok {
		err := diag.Errorf(diag.SemaUndeclaredIdentifier, tok.Span,
			"identifier %q is not declared", tok.Text)
		if hint, ok := suggest(tok.Text, p.table.Names()); ok {
			err.Note(tok.Span, "did you mean "+strconv.Quote(hint)+"?")
		}
		return ast.Ident{}, err
	}
	id.Span = tok.Span
	return id, nil
}
