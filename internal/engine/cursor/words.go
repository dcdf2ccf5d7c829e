package cursor

import "unicode"

// isWordRune reports whether a rune belongs to a word. Whitespace and
// punctuation act as separators.
func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// wordRightIn returns the offset of the next word boundary right of off
// within the rune slice: past the current word, then past any separators.
func wordRightIn(runes []rune, off int) int {
	n := len(runes)
	for off < n && isWordRune(runes[off]) {
		off++
	}
	for off < n && !isWordRune(runes[off]) {
		off++
	}
	return off
}

// wordLeftIn returns the offset of the previous word start left of off.
func wordLeftIn(runes []rune, off int) int {
	for off > 0 && !isWordRune(runes[off-1]) {
		off--
	}
	for off > 0 && isWordRune(runes[off-1]) {
		off--
	}
	return off
}

// wordSpanIn returns the [start, end) span of the word enclosing off. When
// off sits on a separator, the single separator rune is returned so
// double-click always selects something.
func wordSpanIn(runes []rune, off int) (int, int) {
	n := len(runes)
	if n == 0 {
		return 0, 0
	}
	if off >= n {
		off = n - 1
	}
	if off < 0 {
		off = 0
	}
	if !isWordRune(runes[off]) {
		// Clicking just past a word selects that word.
		if off > 0 && isWordRune(runes[off-1]) {
			off--
		} else {
			return off, off + 1
		}
	}
	start, end := off, off+1
	for start > 0 && isWordRune(runes[start-1]) {
		start--
	}
	for end < n && isWordRune(runes[end]) {
		end++
	}
	return start, end
}
