package editbuffer

import (
	"strings"

	"github.com/dshills/inkwell/internal/engine/cursor"
	"github.com/dshills/inkwell/internal/engine/paragraph"
)

// Buffer is the live formatted text buffer active during edit mode. It
// owns in-progress edits and a transient pending-format state; the
// paragraph store stays synchronized on every operation.
type Buffer struct {
	store *paragraph.Store

	// pending is a set of style flags toggled for the next typed run when
	// there is no selection. Cleared whenever the cursor moves without
	// typing.
	pending paragraph.StyleFlags
}

// New creates an edit buffer over the store.
func New(store *paragraph.Store) *Buffer {
	return &Buffer{store: store}
}

// Store returns the underlying paragraph store.
func (b *Buffer) Store() *paragraph.Store {
	return b.store
}

// Commit ends the editing session. The store is already synchronized, so
// commit carries no flush work; the caller drops the buffer afterwards.
func (b *Buffer) Commit() {
	b.pending = paragraph.StyleNone
}

// Raw Mutation Primitives
//
// These perform no undo bookkeeping; undoable commands are composed from
// them and record their own inverse data.

// InsertAt inserts text at pos, splitting paragraphs at embedded newlines.
// Returns the position just after the inserted text.
func (b *Buffer) InsertAt(pos cursor.Position, text string) cursor.Position {
	pos = pos.Clamp(b.store)
	if text == "" {
		return pos
	}

	lines := strings.Split(text, "\n")
	if len(lines) == 1 {
		end := b.store.InsertText(pos.Para, pos.Offset, text)
		return cursor.Position{Para: pos.Para, Offset: end}
	}

	// Multi-line insert: split at the insertion point, fill the first and
	// last fragments, and splice whole paragraphs between.
	b.store.Split(pos.Para, pos.Offset)
	b.store.InsertText(pos.Para, pos.Offset, lines[0])
	last := pos.Para + 1
	for _, mid := range lines[1 : len(lines)-1] {
		b.store.Split(last, 0)
		b.store.InsertText(last, 0, mid)
		last++
	}
	end := b.store.InsertText(last, 0, lines[len(lines)-1])
	return cursor.Position{Para: last, Offset: end}
}

// DeleteRange removes [start, end) and returns the removed text with "\n"
// separating paragraph fragments. Multi-paragraph deletions merge the
// surviving fragments into one paragraph.
func (b *Buffer) DeleteRange(start, end cursor.Position) string {
	start = start.Clamp(b.store)
	end = end.Clamp(b.store)
	if end.Before(start) {
		start, end = end, start
	}
	if start.Equal(end) {
		return ""
	}

	if start.Para == end.Para {
		return b.store.DeleteText(start.Para, start.Offset, end.Offset)
	}

	var sb strings.Builder
	sb.WriteString(b.store.DeleteText(start.Para, start.Offset, b.store.ParagraphLen(start.Para)))
	// Remove the whole paragraphs strictly between the endpoints by merging
	// them empty into the start paragraph.
	for p := start.Para + 1; p < end.Para; p++ {
		sb.WriteByte('\n')
		sb.WriteString(b.store.DeleteText(start.Para+1, 0, b.store.ParagraphLen(start.Para+1)))
		b.store.Merge(start.Para)
	}
	sb.WriteByte('\n')
	sb.WriteString(b.store.DeleteText(start.Para+1, 0, end.Offset))
	b.store.Merge(start.Para)
	return sb.String()
}

// TextRange returns the text of [start, end) with "\n" separators, without
// mutating anything.
func (b *Buffer) TextRange(start, end cursor.Position) string {
	start = start.Clamp(b.store)
	end = end.Clamp(b.store)
	if end.Before(start) {
		start, end = end, start
	}
	if start.Para == end.Para {
		runes := []rune(b.store.PlainText(start.Para))
		if start.Offset > len(runes) || end.Offset > len(runes) {
			return ""
		}
		return string(runes[start.Offset:end.Offset])
	}

	var sb strings.Builder
	first := []rune(b.store.PlainText(start.Para))
	sb.WriteString(string(first[start.Offset:]))
	for p := start.Para + 1; p < end.Para; p++ {
		sb.WriteByte('\n')
		sb.WriteString(b.store.PlainText(p))
	}
	sb.WriteByte('\n')
	last := []rune(b.store.PlainText(end.Para))
	sb.WriteString(string(last[:end.Offset]))
	return sb.String()
}

// Split divides the paragraph at pos into two.
func (b *Buffer) Split(pos cursor.Position) {
	pos = pos.Clamp(b.store)
	b.store.Split(pos.Para, pos.Offset)
}

// Merge joins paragraph para with the following paragraph and returns the
// join offset.
func (b *Buffer) Merge(para int) int {
	return b.store.Merge(para)
}

// ApplyStyle adds or removes a style flag over [start, end), which may span
// paragraphs.
func (b *Buffer) ApplyStyle(start, end cursor.Position, flag paragraph.StyleFlags, on bool) {
	start = start.Clamp(b.store)
	end = end.Clamp(b.store)
	if end.Before(start) {
		start, end = end, start
	}
	for p := start.Para; p <= end.Para; p++ {
		from, to := 0, b.store.ParagraphLen(p)
		if p == start.Para {
			from = start.Offset
		}
		if p == end.Para {
			to = end.Offset
		}
		b.store.ApplyStyle(p, from, to, flag, on)
	}
}

// ApplyFont sets the font name over [start, end), which may span
// paragraphs. An empty name clears back to the default.
func (b *Buffer) ApplyFont(start, end cursor.Position, font string) {
	start = start.Clamp(b.store)
	end = end.Clamp(b.store)
	if end.Before(start) {
		start, end = end, start
	}
	for p := start.Para; p <= end.Para; p++ {
		from, to := 0, b.store.ParagraphLen(p)
		if p == start.Para {
			from = start.Offset
		}
		if p == end.Para {
			to = end.Offset
		}
		b.store.ApplyFont(p, from, to, font)
	}
}

// RangeHasStyle reports whether every rune of [start, end) carries the
// flag. Paragraph separators are ignored.
func (b *Buffer) RangeHasStyle(start, end cursor.Position, flag paragraph.StyleFlags) bool {
	start = start.Clamp(b.store)
	end = end.Clamp(b.store)
	if end.Before(start) {
		start, end = end, start
	}
	if start.Equal(end) {
		return false
	}
	for p := start.Para; p <= end.Para; p++ {
		from, to := 0, b.store.ParagraphLen(p)
		if p == start.Para {
			from = start.Offset
		}
		if p == end.Para {
			to = end.Offset
		}
		if from == to {
			continue
		}
		if !b.store.RangeHasStyle(p, from, to, flag) {
			return false
		}
	}
	return true
}

// SetAlignment sets the alignment of every paragraph touched by the range.
func (b *Buffer) SetAlignment(start, end cursor.Position, a paragraph.Alignment) {
	start = start.Clamp(b.store)
	end = end.Clamp(b.store)
	if end.Before(start) {
		start, end = end, start
	}
	for p := start.Para; p <= end.Para; p++ {
		b.store.SetAlignment(p, a)
	}
}

// Alignment returns the alignment of the paragraph at pos.
func (b *Buffer) Alignment(pos cursor.Position) paragraph.Alignment {
	pos = pos.Clamp(b.store)
	p := b.store.Paragraph(pos.Para)
	if p == nil {
		return paragraph.AlignLeft
	}
	return p.Align
}

// Pending Format

// TogglePending flips a style flag in the pending-format set applied to the
// next typed character run.
func (b *Buffer) TogglePending(flag paragraph.StyleFlags) {
	b.pending ^= flag
}

// Pending returns the pending style toggles.
func (b *Buffer) Pending() paragraph.StyleFlags {
	return b.pending
}

// ClearPending resets the pending-format state; called whenever the cursor
// moves without typing.
func (b *Buffer) ClearPending() {
	b.pending = paragraph.StyleNone
}
