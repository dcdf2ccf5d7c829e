package editor

import (
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/dshills/inkwell/internal/engine/cursor"
	"github.com/dshills/inkwell/internal/engine/paragraph"
	"github.com/dshills/inkwell/internal/render/frame"
)

// Movement commands wrap the navigator and refresh caret-derived state.
// Every one of them drops an armed pending format.

func (s *Session) MoveLeft(extend bool)      { s.nav.MoveLeft(extend); s.caretMoved(true) }
func (s *Session) MoveRight(extend bool)     { s.nav.MoveRight(extend); s.caretMoved(true) }
func (s *Session) MoveWordLeft(extend bool)  { s.nav.MoveWordLeft(extend); s.caretMoved(true) }
func (s *Session) MoveWordRight(extend bool) { s.nav.MoveWordRight(extend); s.caretMoved(true) }
func (s *Session) MoveLineStart(extend bool) { s.nav.MoveLineStart(extend); s.caretMoved(true) }
func (s *Session) MoveLineEnd(extend bool)   { s.nav.MoveLineEnd(extend); s.caretMoved(true) }
func (s *Session) MoveUp(extend bool)        { s.nav.MoveUp(extend); s.caretMoved(true) }
func (s *Session) MoveDown(extend bool)      { s.nav.MoveDown(extend); s.caretMoved(true) }
func (s *Session) MoveDocStart(extend bool)  { s.nav.MoveDocStart(extend); s.caretMoved(true) }
func (s *Session) MoveDocEnd(extend bool)    { s.nav.MoveDocEnd(extend); s.caretMoved(true) }

// MovePageUp moves the caret up by one viewport of visual lines.
func (s *Session) MovePageUp(extend bool) {
	s.nav.MovePageUp(s.pageLines(), extend)
	s.caretMoved(true)
}

// MovePageDown moves the caret down by one viewport of visual lines.
func (s *Session) MovePageDown(extend bool) {
	s.nav.MovePageDown(s.pageLines(), extend)
	s.caretMoved(true)
}

func (s *Session) pageLines() int {
	lines := s.vp.Height() / s.app.LineHeight
	if lines < 1 {
		lines = 1
	}
	return lines
}

// SetCaret places the caret at a document position.
func (s *Session) SetCaret(pos cursor.Position) {
	s.nav.SetPosition(pos)
	s.caretMoved(true)
}

// Click handles a mouse press at screen cell (x, y). Consecutive clicks in
// place cycle caret, word selection, paragraph selection. With extend set,
// a single click extends the selection instead.
func (s *Session) Click(x, y int, extend bool, at time.Time) {
	pos := s.PositionAt(x, y)
	switch s.clicks.Click(x, y, at) {
	case 1:
		if extend {
			s.nav.DragTo(pos)
		} else {
			s.nav.SetPosition(pos)
		}
	case 2:
		s.nav.SetSelection(s.nav.WordAt(pos))
	default:
		s.nav.SetSelection(s.nav.ParagraphAt(pos))
	}
	s.caretMoved(true)
}

// Drag extends the selection to the position under (x, y).
func (s *Session) Drag(x, y int) {
	s.nav.DragTo(s.PositionAt(x, y))
	s.caretMoved(true)
}

// PositionAt maps a screen cell to the nearest document position under the
// current view mode.
func (s *Session) PositionAt(x, y int) cursor.Position {
	var para, row int
	if s.renderer.Mode() == frame.ModePage {
		para, row = s.pageHit(y)
	} else {
		cy := s.vp.ScreenToContent(y)
		if cy < 0 {
			cy = 0
		}
		para = s.vp.Heights().FindOffset(cy)
		row = cy - s.vp.ParagraphTop(para)
	}

	line := row / s.app.LineHeight
	if max := s.layout.LineCount(para) - 1; line > max {
		line = max
	}
	if line < 0 {
		line = 0
	}
	return cursor.Position{Para: para, Offset: s.offsetAt(para, line, x)}
}

// pageHit resolves a screen row against the current page's paragraphs,
// skipping the page gap drawn above the page edge.
func (s *Session) pageHit(y int) (para, row int) {
	pg := s.renderer.Pagination()
	first, last := pg.Range(s.renderer.CurrentPage())
	top := s.app.PageGap
	for i := first; i <= last && i >= 0; i++ {
		h := s.renderer.ParagraphHeight(i)
		if y < top+h || i == last {
			return i, y - top
		}
		top += h
	}
	return first, 0
}

// offsetAt finds the rune offset on a visual line closest to screen
// column x, accounting for alignment padding.
func (s *Session) offsetAt(para, line, x int) int {
	start, end := s.layout.LineRange(para, line)
	runes := []rune(s.store.PlainText(para))

	col := s.alignPad(para, line)
	for off := start; off < end && off < len(runes); off++ {
		w := runewidth.RuneWidth(runes[off])
		if x < col+w {
			if x-col > w/2 {
				return off + 1
			}
			return off
		}
		col += w
	}
	return end
}

func (s *Session) alignPad(para, line int) int {
	p := s.store.Paragraph(para)
	if p == nil || p.Align == paragraph.AlignLeft || p.Align == paragraph.AlignJustify {
		return 0
	}
	pad := s.layout.Width() - s.layout.Layout(para).Lines[line].Width
	if pad <= 0 {
		return 0
	}
	if p.Align == paragraph.AlignCenter {
		return pad / 2
	}
	return pad
}
