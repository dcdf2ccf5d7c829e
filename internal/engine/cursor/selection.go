package cursor

// Selection is an anchor/active pair of positions. An empty selection
// (anchor == active) means no selection. Rendering treats the pair as
// directionless; extension operations move only the active end.
type Selection struct {
	Anchor Position
	Active Position
}

// Caret returns an empty selection at the given position.
func Caret(pos Position) Selection {
	return Selection{Anchor: pos, Active: pos}
}

// IsEmpty reports whether the selection selects nothing.
func (s Selection) IsEmpty() bool {
	return s.Anchor.Equal(s.Active)
}

// Normalized returns the selection with its endpoints in document order.
func (s Selection) Normalized() (start, end Position) {
	if s.Active.Before(s.Anchor) {
		return s.Active, s.Anchor
	}
	return s.Anchor, s.Active
}

// Clamp re-validates both endpoints against the document.
func (s Selection) Clamp(doc Doc) Selection {
	return Selection{Anchor: s.Anchor.Clamp(doc), Active: s.Active.Clamp(doc)}
}

// Contains reports whether the position lies inside the selection.
func (s Selection) Contains(pos Position) bool {
	if s.IsEmpty() {
		return false
	}
	start, end := s.Normalized()
	return !pos.Before(start) && pos.Before(end)
}

// Extend moves the active end to pos, preserving the anchor.
func (s Selection) Extend(pos Position) Selection {
	s.Active = pos
	return s
}
