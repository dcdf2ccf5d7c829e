package paragraph

import (
	"unicode"

	"github.com/rivo/uniseg"
)

// countWords counts words in text using Unicode word segmentation. A segment
// counts as a word only if it contains at least one letter or digit, so
// punctuation and whitespace segments are skipped.
func countWords(text string) int {
	count := 0
	state := -1
	var word string
	rest := text
	for len(rest) > 0 {
		word, rest, state = uniseg.FirstWordInString(rest, state)
		if isWord(word) {
			count++
		}
	}
	return count
}

// isWord reports whether a segment contains at least one letter or digit.
func isWord(seg string) bool {
	for _, r := range seg {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
