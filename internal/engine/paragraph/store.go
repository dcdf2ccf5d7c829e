package paragraph

import (
	"strings"
	"sync"
)

// Store is an ordered sequence of paragraphs with running word and
// character counts. A store always contains at least one paragraph, so a
// fresh document is one empty paragraph rather than an empty sequence.
type Store struct {
	mu    sync.RWMutex
	paras []*Paragraph

	charCount int // runes, paragraph separators excluded
	wordCount int
}

// New creates a store holding a single empty paragraph.
func New() *Store {
	return &Store{paras: []*Paragraph{NewParagraph("")}}
}

// FromParagraphs creates a store from pre-built paragraphs. An empty slice
// yields a single empty paragraph.
func FromParagraphs(paras []*Paragraph) *Store {
	if len(paras) == 0 {
		return New()
	}
	s := &Store{paras: paras}
	for _, p := range paras {
		p.Runs = normalizeRuns(p.Runs, p.Len())
		s.charCount += p.Len()
		s.wordCount += p.Words()
	}
	return s
}

// FromText creates a store by splitting plain text on newlines.
func FromText(text string) *Store {
	lines := strings.Split(text, "\n")
	paras := make([]*Paragraph, len(lines))
	for i, line := range lines {
		paras[i] = NewParagraph(line)
	}
	return FromParagraphs(paras)
}

// Count returns the number of paragraphs.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.paras)
}

// Paragraph returns the paragraph at index i, or nil if out of range.
// Callers must not mutate the result directly; all mutation goes through
// store methods so counts and invariants stay consistent.
func (s *Store) Paragraph(i int) *Paragraph {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i < 0 || i >= len(s.paras) {
		return nil
	}
	return s.paras[i]
}

// PlainText returns the text of paragraph i. Out-of-range indices return an
// empty string so rendering stays robust during structural edits.
func (s *Store) PlainText(i int) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i < 0 || i >= len(s.paras) {
		return ""
	}
	return s.paras[i].Text
}

// ParagraphLen returns the rune length of paragraph i, or 0 if out of range.
func (s *Store) ParagraphLen(i int) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i < 0 || i >= len(s.paras) {
		return 0
	}
	return s.paras[i].Len()
}

// Document returns the full document text with paragraphs joined by "\n".
func (s *Store) Document() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var b strings.Builder
	for i, p := range s.paras {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(p.Text)
	}
	return b.String()
}

// CharCount returns the total rune count across all paragraphs, excluding
// paragraph separators. O(1).
func (s *Store) CharCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.charCount
}

// WordCount returns the total word count. O(1).
func (s *Store) WordCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.wordCount
}

// Text Mutation

// InsertText inserts text into paragraph i at rune offset off, shifting
// format runs and annotation spans. The text must not contain newlines;
// paragraph splits go through Split. Returns the offset after the inserted
// text, clamped if the input was out of range.
func (s *Store) InsertText(i, off int, text string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.paras) || text == "" {
		return off
	}
	p := s.paras[i]
	if off < 0 {
		off = 0
	}
	if off > p.Len() {
		off = p.Len()
	}

	bi := runeIndex(p.Text, off)
	s.retext(p, p.Text[:bi]+text+p.Text[bi:])

	n := len([]rune(text))
	p.Runs = normalizeRuns(shiftRunsInsert(p.Runs, off, n), p.Len())
	for j := range p.Markers {
		m := &p.Markers[j]
		m.Start, m.End = shiftSpanInsert(m.Start, m.End, off, n)
	}
	for j := range p.Comments {
		c := &p.Comments[j]
		c.Start, c.End = shiftSpanInsert(c.Start, c.End, off, n)
	}
	return off + n
}

// DeleteText removes the rune range [start, end) from paragraph i and
// returns the removed text. Runs and annotation spans are adjusted.
func (s *Store) DeleteText(i, start, end int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.paras) {
		return ""
	}
	p := s.paras[i]
	start, end = clampSpan(start, end, p.Len())
	if start == end {
		return ""
	}

	removed := runeSlice(p.Text, start, end)
	bs := runeIndex(p.Text, start)
	be := runeIndex(p.Text, end)
	s.retext(p, p.Text[:bs]+p.Text[be:])

	p.Runs = shiftRunsDelete(p.Runs, start, end, p.Len())
	for j := range p.Markers {
		m := &p.Markers[j]
		m.Start, m.End = shiftSpanDelete(m.Start, m.End, start, end)
	}
	for j := range p.Comments {
		c := &p.Comments[j]
		c.Start, c.End = shiftSpanDelete(c.Start, c.End, start, end)
	}
	return removed
}

// Split divides paragraph i at rune offset off into two paragraphs. Runs
// and annotations are distributed by position. The new paragraph inherits
// the alignment of the original.
func (s *Store) Split(i, off int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.paras) {
		return
	}
	p := s.paras[i]
	if off < 0 {
		off = 0
	}
	if off > p.Len() {
		off = p.Len()
	}

	bi := runeIndex(p.Text, off)
	tail := NewParagraph(p.Text[bi:])
	tail.Align = p.Align
	tail.Kind = p.Kind

	// Distribute runs.
	runs := splitRunsAt(p.Runs, off)
	var headRuns, tailRuns []FormatRun
	for _, r := range runs {
		if r.End <= off {
			headRuns = append(headRuns, r)
		} else {
			tailRuns = append(tailRuns, FormatRun{Start: r.Start - off, End: r.End - off, Style: r.Style, Font: r.Font})
		}
	}

	// Distribute annotations; spans straddling the split are clamped to the
	// head side.
	var headMarks, tailMarks []Marker
	for _, m := range p.Markers {
		if m.Start >= off {
			m.Start -= off
			m.End -= off
			tailMarks = append(tailMarks, m)
		} else {
			if m.End > off {
				m.End = off
			}
			headMarks = append(headMarks, m)
		}
	}
	var headComments, tailComments []Comment
	for _, c := range p.Comments {
		if c.Start >= off {
			c.Start -= off
			c.End -= off
			tailComments = append(tailComments, c)
		} else {
			if c.End > off {
				c.End = off
			}
			headComments = append(headComments, c)
		}
	}

	s.retext(p, p.Text[:bi])
	p.Runs = normalizeRuns(headRuns, p.Len())
	p.Markers = headMarks
	p.Comments = headComments

	tail.Runs = normalizeRuns(tailRuns, tail.Len())
	tail.Markers = tailMarks
	tail.Comments = tailComments

	// retext only accounted for the head; the tail is a new paragraph.
	s.charCount += tail.Len()
	s.wordCount += tail.Words()

	s.paras = append(s.paras[:i+1], append([]*Paragraph{tail}, s.paras[i+1:]...)...)
}

// Merge joins paragraph i+1 onto the end of paragraph i, adjusting run and
// annotation offsets from the absorbed paragraph. No-op if i+1 is out of
// range. Returns the rune offset of the join point in the merged paragraph.
func (s *Store) Merge(i int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i+1 >= len(s.paras) {
		return 0
	}
	head := s.paras[i]
	tail := s.paras[i+1]
	join := head.Len()

	s.retext(head, head.Text+tail.Text)
	// The tail paragraph leaves the store; retext only re-counted the head.
	s.charCount -= tail.Len()
	s.wordCount -= tail.Words()

	for _, r := range tail.Runs {
		head.Runs = append(head.Runs, FormatRun{Start: r.Start + join, End: r.End + join, Style: r.Style, Font: r.Font})
	}
	head.Runs = normalizeRuns(head.Runs, head.Len())
	for _, m := range tail.Markers {
		m.Start += join
		m.End += join
		head.Markers = append(head.Markers, m)
	}
	for _, c := range tail.Comments {
		c.Start += join
		c.End += join
		head.Comments = append(head.Comments, c)
	}

	s.paras = append(s.paras[:i+1], s.paras[i+2:]...)
	return join
}

// SetAlignment sets the alignment of paragraph i.
func (s *Store) SetAlignment(i int, a Alignment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.paras) {
		return
	}
	s.paras[i].Align = a
}

// ApplyStyle adds or removes a style flag over [start, end) of paragraph i.
func (s *Store) ApplyStyle(i, start, end int, flag StyleFlags, on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.paras) {
		return
	}
	p := s.paras[i]
	p.Runs = applyStyle(p.Runs, start, end, flag, on, p.Len())
}

// ApplyFont sets the font name over [start, end) of paragraph i; an empty
// name clears it.
func (s *Store) ApplyFont(i, start, end int, font string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.paras) {
		return
	}
	p := s.paras[i]
	p.Runs = applyFont(p.Runs, start, end, font, p.Len())
}

// Runs returns a copy of the format runs of paragraph i.
func (s *Store) Runs(i int) []FormatRun {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i < 0 || i >= len(s.paras) {
		return nil
	}
	return append([]FormatRun(nil), s.paras[i].Runs...)
}

// SetRuns replaces the format runs of paragraph i, normalizing them.
func (s *Store) SetRuns(i int, runs []FormatRun) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.paras) {
		return
	}
	p := s.paras[i]
	p.Runs = normalizeRuns(append([]FormatRun(nil), runs...), p.Len())
}

// RangeHasStyle reports whether every rune of [start, end) in paragraph i
// carries the flag.
func (s *Store) RangeHasStyle(i, start, end int, flag StyleFlags) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i < 0 || i >= len(s.paras) {
		return false
	}
	return rangeHasStyle(s.paras[i].Runs, start, end, flag)
}

// retext swaps a paragraph's text, keeping the store's character and word
// counts in sync. Callers are responsible for run/annotation adjustment.
func (s *Store) retext(p *Paragraph, text string) {
	s.charCount -= p.Len()
	s.wordCount -= p.Words()
	p.setText(text)
	s.charCount += p.Len()
	s.wordCount += p.Words()
}
