package editor

import (
	"github.com/dshills/inkwell/internal/engine/cursor"
	"github.com/dshills/inkwell/internal/engine/search"
)

// Find scans the document for query and retains the match set for
// next/previous navigation.
func (s *Session) Find(query string, opts search.Options) []search.Match {
	return s.searcher.Find(s.buffer(), query, opts)
}

// FindNext selects the next match after the caret, wrapping at the end.
func (s *Session) FindNext() (search.Match, bool) {
	m, ok := s.searcher.Next(s.nav.Position())
	if ok {
		s.selectMatch(m)
	}
	return m, ok
}

// FindPrev selects the previous match before the caret, wrapping at the
// start.
func (s *Session) FindPrev() (search.Match, bool) {
	m, ok := s.searcher.Prev(s.nav.Position())
	if ok {
		s.selectMatch(m)
	}
	return m, ok
}

func (s *Session) selectMatch(m search.Match) {
	s.nav.SetSelection(cursor.Selection{Anchor: m.Start, Active: m.End})
	s.caretMoved(true)
}

// ReplaceNext replaces the next match after the caret and advances to the
// one following it.
func (s *Session) ReplaceNext(replacement string) error {
	m, ok := s.searcher.Next(s.nav.Position())
	if !ok {
		return nil
	}
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	if err := s.searcher.ReplaceOne(s.buffer(), s.hist, m, replacement); err != nil {
		return err
	}
	s.nav.SetPosition(m.Start)
	s.mutated(m.Start.Para, m.Start.Para != m.End.Para)
	return nil
}

// ReplaceAll replaces every match and returns how many changed.
func (s *Session) ReplaceAll(replacement string) (int, error) {
	if err := s.begin(); err != nil {
		return 0, err
	}
	defer s.end()

	n, err := s.searcher.ReplaceAll(s.buffer(), s.hist, replacement)
	if n > 0 {
		s.mutated(0, true)
	}
	return n, err
}
