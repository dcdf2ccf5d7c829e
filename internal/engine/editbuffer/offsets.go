package editbuffer

import "github.com/dshills/inkwell/internal/engine/cursor"

// Absolute offsets count runes across the whole document with each
// paragraph separator counting as one rune. They interoperate with the
// search engine and IME composition tracking.

// PosToAbs converts a (paragraph, offset) position to an absolute rune
// offset.
func (b *Buffer) PosToAbs(pos cursor.Position) int {
	pos = pos.Clamp(b.store)
	abs := 0
	for p := 0; p < pos.Para; p++ {
		abs += b.store.ParagraphLen(p) + 1
	}
	return abs + pos.Offset
}

// AbsToPos converts an absolute rune offset to a (paragraph, offset)
// position, clamping past-the-end offsets to the document end.
func (b *Buffer) AbsToPos(abs int) cursor.Position {
	if abs < 0 {
		abs = 0
	}
	n := b.store.Count()
	for p := 0; p < n; p++ {
		l := b.store.ParagraphLen(p)
		if abs <= l {
			return cursor.Position{Para: p, Offset: abs}
		}
		abs -= l + 1
	}
	return cursor.End(b.store)
}
