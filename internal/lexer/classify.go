package lexer

import (
	"cobrust/internal/token"
)

var punctWords = map[string]struct{}{
	".": {}, ",": {},
	">": {}, "<": {}, "=": {}, ">=": {}, "<=": {},
}

// classify относит уже выделенное слово к одному из видов токенов.
func classify(text string) token.Kind {
	switch {
	case text == "":
		return token.Invalid
	case text[0] == '"':
		return token.StringLit
	}
	if _, ok := punctWords[text]; ok {
		return token.Punct
	}
	if IsInteger(text) {
		return token.IntLit
	}
	if token.IsKeyword(text) {
		return token.Keyword
	}
	return token.Ident
}

// IsInteger reports whether s is an optionally signed run of decimal digits.
func IsInteger(s string) bool {
	if s != "" && (s[0] == '+' || s[0] == '-') {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isDec(s[i]) {
			return false
		}
	}
	return true
}

func isBlank(b byte) bool { return b == ' ' || b == '\t' }

func isDec(b byte) bool { return b >= '0' && b <= '9' }

func isTrailingPunct(b byte) bool { return b == '.' || b == ',' }
