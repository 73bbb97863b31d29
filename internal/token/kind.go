package token

// Kind represents the category of a lexical word.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// StringLit is a double-quoted literal, quotes included in Text.
	StringLit
	// Punct covers '.', ',' and the relational symbols > < = >= <=.
	Punct
	// Ident is any word that is not a literal, punctuation or keyword.
	Ident
	// IntLit is an optionally signed run of decimal digits.
	IntLit
	// Keyword is a reserved word of the language (see keywords.go).
	Keyword
)

var kindNames = [...]string{
	Invalid:   "Invalid",
	StringLit: "StringLit",
	Punct:     "Punct",
	Ident:     "Ident",
	IntLit:    "IntLit",
	Keyword:   "Keyword",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}
