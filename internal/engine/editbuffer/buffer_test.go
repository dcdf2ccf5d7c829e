package editbuffer

import (
	"testing"

	"github.com/dshills/inkwell/internal/engine/cursor"
	"github.com/dshills/inkwell/internal/engine/paragraph"
)

func newTestBuffer(text string) *Buffer {
	return New(paragraph.FromText(text))
}

func TestInsertAtSingleLine(t *testing.T) {
	b := newTestBuffer("helo")
	end := b.InsertAt(cursor.Position{Para: 0, Offset: 2}, "ll")
	if got := b.Store().PlainText(0); got != "helllo" {
		t.Errorf("text = %q", got)
	}
	if !end.Equal(cursor.Position{Para: 0, Offset: 4}) {
		t.Errorf("end = %+v", end)
	}
}

func TestInsertAtMultiLine(t *testing.T) {
	b := newTestBuffer("headtail")
	end := b.InsertAt(cursor.Position{Para: 0, Offset: 4}, "one\ntwo\nthree")

	want := []string{"headone", "two", "threetail"}
	if b.Store().Count() != 3 {
		t.Fatalf("paragraph count = %d, want 3", b.Store().Count())
	}
	for i, w := range want {
		if got := b.Store().PlainText(i); got != w {
			t.Errorf("paragraph %d = %q, want %q", i, got, w)
		}
	}
	if !end.Equal(cursor.Position{Para: 2, Offset: 5}) {
		t.Errorf("end = %+v", end)
	}
}

func TestInsertNewlineSplits(t *testing.T) {
	b := newTestBuffer("HelloWorld")
	end := b.InsertAt(cursor.Position{Para: 0, Offset: 5}, "\n")
	if b.Store().PlainText(0) != "Hello" || b.Store().PlainText(1) != "World" {
		t.Fatalf("split = %q / %q", b.Store().PlainText(0), b.Store().PlainText(1))
	}
	if !end.Equal(cursor.Position{Para: 1, Offset: 0}) {
		t.Errorf("cursor after newline = %+v", end)
	}
}

func TestDeleteRangeSameParagraph(t *testing.T) {
	b := newTestBuffer("hello world")
	removed := b.DeleteRange(cursor.Position{Para: 0, Offset: 5}, cursor.Position{Para: 0, Offset: 11})
	if removed != " world" {
		t.Errorf("removed = %q", removed)
	}
	if got := b.Store().PlainText(0); got != "hello" {
		t.Errorf("text = %q", got)
	}
}

func TestDeleteRangeAcrossParagraphs(t *testing.T) {
	b := newTestBuffer("alpha\nbeta\ngamma\ndelta")
	removed := b.DeleteRange(cursor.Position{Para: 0, Offset: 3}, cursor.Position{Para: 3, Offset: 2})

	if removed != "ha\nbeta\ngamma\nde" {
		t.Errorf("removed = %q", removed)
	}
	if b.Store().Count() != 1 {
		t.Fatalf("paragraph count = %d, want 1", b.Store().Count())
	}
	if got := b.Store().PlainText(0); got != "alplta" {
		t.Errorf("text = %q", got)
	}
}

func TestDeleteRangeReversedEndpoints(t *testing.T) {
	b := newTestBuffer("hello")
	removed := b.DeleteRange(cursor.Position{Para: 0, Offset: 4}, cursor.Position{Para: 0, Offset: 1})
	if removed != "ell" {
		t.Errorf("removed = %q", removed)
	}
}

func TestTextRange(t *testing.T) {
	b := newTestBuffer("alpha\nbeta")
	got := b.TextRange(cursor.Position{Para: 0, Offset: 3}, cursor.Position{Para: 1, Offset: 2})
	if got != "ha\nbe" {
		t.Errorf("TextRange = %q", got)
	}
	// Reading never mutates.
	if b.Store().Document() != "alpha\nbeta" {
		t.Errorf("document changed: %q", b.Store().Document())
	}
}

func TestApplyStyleAcrossParagraphs(t *testing.T) {
	b := newTestBuffer("bold\nalso")
	b.ApplyStyle(cursor.Position{Para: 0, Offset: 2}, cursor.Position{Para: 1, Offset: 2}, paragraph.StyleBold, true)

	if !b.RangeHasStyle(cursor.Position{Para: 0, Offset: 2}, cursor.Position{Para: 1, Offset: 2}, paragraph.StyleBold) {
		t.Error("range should be bold")
	}
	if b.RangeHasStyle(cursor.Position{Para: 0, Offset: 0}, cursor.Position{Para: 0, Offset: 4}, paragraph.StyleBold) {
		t.Error("leading range should not be fully bold")
	}
}

func TestPendingFormat(t *testing.T) {
	b := newTestBuffer("text")

	b.TogglePending(paragraph.StyleBold)
	b.TogglePending(paragraph.StyleItalic)
	if !b.Pending().Has(paragraph.StyleBold) || !b.Pending().Has(paragraph.StyleItalic) {
		t.Fatalf("pending = %v", b.Pending())
	}

	// Toggling twice cancels.
	b.TogglePending(paragraph.StyleBold)
	if b.Pending().Has(paragraph.StyleBold) {
		t.Error("bold should be cancelled")
	}

	b.ClearPending()
	if b.Pending() != paragraph.StyleNone {
		t.Error("pending not cleared")
	}
}

func TestAbsOffsetRoundTrip(t *testing.T) {
	b := newTestBuffer("ab\ncde\nf")

	tests := []struct {
		pos cursor.Position
		abs int
	}{
		{cursor.Position{Para: 0, Offset: 0}, 0},
		{cursor.Position{Para: 0, Offset: 2}, 2},
		{cursor.Position{Para: 1, Offset: 0}, 3},
		{cursor.Position{Para: 1, Offset: 3}, 6},
		{cursor.Position{Para: 2, Offset: 1}, 8},
	}

	for _, tt := range tests {
		if got := b.PosToAbs(tt.pos); got != tt.abs {
			t.Errorf("PosToAbs(%+v) = %d, want %d", tt.pos, got, tt.abs)
		}
		if got := b.AbsToPos(tt.abs); !got.Equal(tt.pos) {
			t.Errorf("AbsToPos(%d) = %+v, want %+v", tt.abs, got, tt.pos)
		}
	}

	// Past-the-end clamps to document end.
	if got := b.AbsToPos(99); !got.Equal(cursor.Position{Para: 2, Offset: 1}) {
		t.Errorf("AbsToPos(99) = %+v", got)
	}
}
