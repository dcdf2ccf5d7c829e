package paragraph

import "github.com/google/uuid"

// MarkerKind distinguishes TODO markers from plain notes.
type MarkerKind uint8

const (
	MarkerTodo MarkerKind = iota
	MarkerNote
)

// String returns the marker kind name.
func (k MarkerKind) String() string {
	if k == MarkerNote {
		return "note"
	}
	return "todo"
}

// Marker is a TODO or note annotation attached to a rune range within a
// paragraph. The ID is stable across paragraph index shifts and is used for
// next/previous navigation.
type Marker struct {
	ID    string
	Kind  MarkerKind
	Start int
	End   int
	Text  string
	Done  bool // TODO markers only
}

// NewMarker creates a marker with a fresh identifier.
func NewMarker(kind MarkerKind, start, end int, text string) Marker {
	return Marker{
		ID:    uuid.NewString(),
		Kind:  kind,
		Start: start,
		End:   end,
		Text:  text,
	}
}

// Comment is an author annotation attached to a rune range. Comments are
// keyed by ID for lookup independent of paragraph index shifts.
type Comment struct {
	ID     string
	Start  int
	End    int
	Author string
	Text   string
}

// NewComment creates a comment with a fresh identifier.
func NewComment(start, end int, author, text string) Comment {
	return Comment{
		ID:     uuid.NewString(),
		Start:  start,
		End:    end,
		Author: author,
		Text:   text,
	}
}

// clampSpan clamps an annotation span to a paragraph length.
func clampSpan(start, end, textLen int) (int, int) {
	if start < 0 {
		start = 0
	}
	if start > textLen {
		start = textLen
	}
	if end < start {
		end = start
	}
	if end > textLen {
		end = textLen
	}
	return start, end
}

// shiftSpanInsert adjusts an annotation span for an insertion of n runes at off.
func shiftSpanInsert(start, end, off, n int) (int, int) {
	if off <= start {
		return start + n, end + n
	}
	if off < end {
		return start, end + n
	}
	return start, end
}

// shiftSpanDelete adjusts an annotation span for a deletion of [delStart, delEnd).
func shiftSpanDelete(start, end, delStart, delEnd int) (int, int) {
	n := delEnd - delStart
	switch {
	case delEnd <= start:
		return start - n, end - n
	case delStart >= end:
		return start, end
	default:
		if start > delStart {
			start = delStart
		}
		if end > delEnd {
			end -= n
		} else {
			end = delStart
		}
		if end < start {
			end = start
		}
		return start, end
	}
}
