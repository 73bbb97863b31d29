package rust

import (
	"strconv"
	"strings"
	"unicode"
)

var rustKeywords = map[string]struct{}{
	"as": {}, "async": {}, "await": {}, "break": {}, "const": {}, "continue": {},
	"crate": {}, "dyn": {}, "else": {}, "enum": {}, "extern": {}, "false": {},
	"fn": {}, "for": {}, "if": {}, "impl": {}, "in": {}, "let": {}, "loop": {},
	"match": {}, "mod": {}, "move": {}, "mut": {}, "pub": {}, "ref": {},
	"return": {}, "self": {}, "static": {}, "struct": {}, "super": {},
	"trait": {}, "true": {}, "type": {}, "unsafe": {}, "use": {}, "where": {},
	"while": {}, "abstract": {}, "become": {}, "box": {}, "do": {}, "final": {},
	"gen": {}, "macro": {}, "override": {}, "priv": {}, "try": {}, "typeof": {},
	"unsized": {}, "virtual": {}, "yield": {},
}

// эти нельзя писать как r#ident
var noRawIdent = map[string]struct{}{"crate": {}, "self": {}, "super": {}, "_": {}}

// Mangle turns a source data name into a Rust identifier.
func Mangle(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r == '_' || r < unicode.MaxASCII && (r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9'):
			b.WriteRune(r)
		case r >= unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	id := b.String()
	if id == "" {
		return "v_"
	}
	if r := []rune(id)[0]; unicode.IsDigit(r) {
		id = "v_" + id
	}
	if _, ok := noRawIdent[id]; ok {
		return id + "_"
	}
	if _, ok := rustKeywords[id]; ok {
		return "r#" + id
	}
	return id
}

// nameMap assigns every declared name a distinct Rust identifier.
type nameMap struct {
	byName map[string]string
	taken  map[string]struct{}
}

func newNameMap(names []string) *nameMap {
	m := &nameMap{
		byName: make(map[string]string, len(names)),
		taken:  make(map[string]struct{}, len(names)),
	}
	for _, n := range names {
		base := Mangle(n)
		id := base
		for i := 2; ; i++ {
			if _, clash := m.taken[id]; !clash {
				break
			}
			id = strings.TrimPrefix(base, "r#") + "_" + strconv.Itoa(i)
		}
		m.byName[n] = id
		m.taken[id] = struct{}{}
	}
	return m
}

func (m *nameMap) get(name string) string {
	if id, ok := m.byName[name]; ok {
		return id
	}
	return Mangle(name)
}

// rustString quotes s as a Rust string literal.
func rustString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if unicode.IsControl(r) {
				b.WriteString(`\u{` + strconv.FormatInt(int64(r), 16) + `}`)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
