package parser

import (
	"github.com/sahilm/fuzzy"
)

// suggest picks the closest candidate for a misspelled word: first a
// candidate containing the word's letters in order ("mov" -> "move"),
// then the longest candidate whose letters appear in order inside the
// word ("displayy" -> "display").
func suggest(word string, candidates []string) (string, bool) {
	if word == "" || len(candidates) == 0 {
		return "", false
	}
	if matches := fuzzy.Find(word, candidates); len(matches) > 0 {
		return matches[0].Str, true
	}
	best := ""
	for _, c := range candidates {
		if len(c) <= len(best) || len(c) < 2 {
			continue
		}
		if len(fuzzy.Find(c, []string{word})) > 0 {
			best = c
		}
	}
	return best, best != ""
}
