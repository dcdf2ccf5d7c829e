package editor

import (
	"github.com/dshills/inkwell/internal/engine/cursor"
	"github.com/dshills/inkwell/internal/engine/paragraph"
	"github.com/dshills/inkwell/internal/event"
)

// Markers and comments attach to rune ranges and ride along with edits;
// they are annotation state, not document text, so they sit outside the
// undo history.

// AddMarker attaches a marker of the given kind to the selection. An empty
// selection marks the caret position. Returns the marker id.
func (s *Session) AddMarker(kind paragraph.MarkerKind, text string) string {
	para, start, end := s.selectionSpan()
	id := s.store.AddMarker(para, kind, start, end, text)
	s.hub.Content.Publish(event.ContentChange{Para: para})
	return id
}

// SetMarkerDone flips a todo marker's done state.
func (s *Session) SetMarkerDone(id string, done bool) bool {
	return s.store.SetMarkerDone(id, done)
}

// SetMarkerText rewords a marker.
func (s *Session) SetMarkerText(id, text string) bool {
	return s.store.SetMarkerText(id, text)
}

// RemoveMarker deletes a marker by id.
func (s *Session) RemoveMarker(id string) bool {
	return s.store.RemoveMarker(id)
}

// NextMarker moves the caret to the next marker after it, wrapping at the
// document end.
func (s *Session) NextMarker() (paragraph.Marker, bool) {
	pos := s.nav.Position()
	m, para, ok := s.store.NextMarker(pos.Para, pos.Offset)
	if !ok {
		return paragraph.Marker{}, false
	}
	s.nav.SetPosition(cursor.Position{Para: para, Offset: m.Start})
	s.caretMoved(true)
	return m, true
}

// PrevMarker moves the caret to the previous marker, wrapping at the
// document start.
func (s *Session) PrevMarker() (paragraph.Marker, bool) {
	pos := s.nav.Position()
	m, para, ok := s.store.PrevMarker(pos.Para, pos.Offset)
	if !ok {
		return paragraph.Marker{}, false
	}
	s.nav.SetPosition(cursor.Position{Para: para, Offset: m.Start})
	s.caretMoved(true)
	return m, true
}

// AddComment attaches a comment to the selection and returns its id.
func (s *Session) AddComment(author, text string) string {
	para, start, end := s.selectionSpan()
	id := s.store.AddComment(para, start, end, author, text)
	s.hub.Content.Publish(event.ContentChange{Para: para})
	return id
}

// EditComment rewrites a comment's text.
func (s *Session) EditComment(id, text string) bool {
	return s.store.SetCommentText(id, text)
}

// RemoveComment deletes a comment by id.
func (s *Session) RemoveComment(id string) bool {
	return s.store.RemoveComment(id)
}

// selectionSpan reduces the selection to a single-paragraph span for
// annotation attachment; cross-paragraph selections clamp to the first
// paragraph.
func (s *Session) selectionSpan() (para, start, end int) {
	selStart, selEnd := s.nav.Selection().Normalized()
	para = selStart.Para
	start = selStart.Offset
	if selEnd.Para == para {
		end = selEnd.Offset
	} else {
		end = s.store.ParagraphLen(para)
	}
	return para, start, end
}
