package token

// keywords — замкнутое множество зарезервированных слов. Всё хранится в
// нижнем регистре: исходник нормализуется до лексера.
var keywords = map[string]struct{}{
	// разделы
	"division":        {},
	"section":         {},
	"working-storage": {},
	"procedure":       {},
	"data":            {},
	"pic":             {},

	// глаголы
	"move":        {},
	"add":         {},
	"subtract":    {},
	"multiply":    {},
	"display":     {},
	"perform":     {},
	"end-perform": {},
	"stop":        {},
	"run":         {},

	// связки и условия
	"to":      {},
	"by":      {},
	"from":    {},
	"until":   {},
	"greater": {},
	"less":    {},
	"equal":   {},
	"than":    {},
	"or":      {},
}

// IsKeyword reports whether word is reserved.
func IsKeyword(word string) bool {
	_, ok := keywords[word]
	return ok
}

// Keywords returns the reserved words in no particular order.
func Keywords() []string {
	out := make([]string, 0, len(keywords))
	for k := range keywords {
		out = append(out, k)
	}
	return out
}
