package paragraph

// AddMarker attaches a marker to paragraph i, clamping its span to the
// paragraph length. Returns the marker ID, or "" if i is out of range.
func (s *Store) AddMarker(i int, kind MarkerKind, start, end int, text string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.paras) {
		return ""
	}
	p := s.paras[i]
	start, end = clampSpan(start, end, p.Len())
	m := NewMarker(kind, start, end, text)
	p.Markers = append(p.Markers, m)
	return m.ID
}

// MarkerByID looks up a marker by ID, returning the marker and its
// paragraph index.
func (s *Store) MarkerByID(id string) (Marker, int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i, p := range s.paras {
		for _, m := range p.Markers {
			if m.ID == id {
				return m, i, true
			}
		}
	}
	return Marker{}, 0, false
}

// SetMarkerDone sets the completion flag of a TODO marker.
func (s *Store) SetMarkerDone(id string, done bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.paras {
		for j := range p.Markers {
			if p.Markers[j].ID == id {
				p.Markers[j].Done = done
				return true
			}
		}
	}
	return false
}

// SetMarkerText replaces a marker's annotation text.
func (s *Store) SetMarkerText(id, text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.paras {
		for j := range p.Markers {
			if p.Markers[j].ID == id {
				p.Markers[j].Text = text
				return true
			}
		}
	}
	return false
}

// RemoveMarker deletes a marker by ID.
func (s *Store) RemoveMarker(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.paras {
		for j := range p.Markers {
			if p.Markers[j].ID == id {
				p.Markers = append(p.Markers[:j], p.Markers[j+1:]...)
				return true
			}
		}
	}
	return false
}

// NextMarker returns the first marker strictly after (para, off) in document
// order, wrapping to the document start when none follows.
func (s *Store) NextMarker(para, off int) (Marker, int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var first, next Marker
	firstPara, nextPara := -1, -1
	for i, p := range s.paras {
		for _, m := range p.Markers {
			if firstPara < 0 || less(i, m.Start, firstPara, first.Start) {
				first, firstPara = m, i
			}
			if less(para, off, i, m.Start) &&
				(nextPara < 0 || less(i, m.Start, nextPara, next.Start)) {
				next, nextPara = m, i
			}
		}
	}
	if nextPara >= 0 {
		return next, nextPara, true
	}
	if firstPara >= 0 {
		return first, firstPara, true
	}
	return Marker{}, 0, false
}

// PrevMarker returns the last marker strictly before (para, off) in document
// order, wrapping to the document end when none precedes.
func (s *Store) PrevMarker(para, off int) (Marker, int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var best, last Marker
	bestPara, lastPara := -1, -1
	for i, p := range s.paras {
		for _, m := range p.Markers {
			if lastPara < 0 || less(lastPara, last.Start, i, m.Start) {
				last, lastPara = m, i
			}
			if less(i, m.Start, para, off) {
				if bestPara < 0 || less(bestPara, best.Start, i, m.Start) {
					best, bestPara = m, i
				}
			}
		}
	}
	if bestPara >= 0 {
		return best, bestPara, true
	}
	if lastPara >= 0 {
		return last, lastPara, true
	}
	return Marker{}, 0, false
}

// less orders (para, off) pairs in document order.
func less(pa, oa, pb, ob int) bool {
	return pa < pb || (pa == pb && oa < ob)
}

// AddComment attaches a comment to paragraph i. Returns the comment ID, or
// "" if i is out of range.
func (s *Store) AddComment(i, start, end int, author, text string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.paras) {
		return ""
	}
	p := s.paras[i]
	start, end = clampSpan(start, end, p.Len())
	c := NewComment(start, end, author, text)
	p.Comments = append(p.Comments, c)
	return c.ID
}

// CommentByID looks up a comment by ID, returning the comment and its
// paragraph index.
func (s *Store) CommentByID(id string) (Comment, int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i, p := range s.paras {
		for _, c := range p.Comments {
			if c.ID == id {
				return c, i, true
			}
		}
	}
	return Comment{}, 0, false
}

// SetCommentText replaces a comment's text.
func (s *Store) SetCommentText(id, text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.paras {
		for j := range p.Comments {
			if p.Comments[j].ID == id {
				p.Comments[j].Text = text
				return true
			}
		}
	}
	return false
}

// RemoveComment deletes a comment by ID.
func (s *Store) RemoveComment(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.paras {
		for j := range p.Comments {
			if p.Comments[j].ID == id {
				p.Comments = append(p.Comments[:j], p.Comments[j+1:]...)
				return true
			}
		}
	}
	return false
}
