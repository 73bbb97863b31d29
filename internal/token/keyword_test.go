package token

import (
	"testing"
)

func TestIsKeyword(t *testing.T) {
	for _, w := range []string{"move", "end-perform", "pic", "until", "greater", "working-storage"} {
		if !IsKeyword(w) {
			t.Errorf("IsKeyword(%q) = false, want true", w)
		}
	}
	for _, w := range []string{"MOVE", "fact", "n", "9(2)", ""} {
		if IsKeyword(w) {
			t.Errorf("IsKeyword(%q) = true, want false", w)
		}
	}
}

func TestKeywordsListed(t *testing.T) {
	if got := len(Keywords()); got != len(keywords) {
		t.Fatalf("Keywords() returned %d entries, want %d", got, len(keywords))
	}
}
