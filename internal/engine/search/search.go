// Package search implements document search: incremental find with case
// and whole-word options, and replace operations that route through the
// edit buffer so they participate in undo/redo.
package search

import (
	"unicode"

	"github.com/dshills/inkwell/internal/engine/cursor"
	"github.com/dshills/inkwell/internal/engine/editbuffer"
	"github.com/dshills/inkwell/internal/engine/history"
)

// Options controls match behavior.
type Options struct {
	CaseSensitive bool
	WholeWord     bool
}

// Match is a single occurrence of the query.
type Match struct {
	Start cursor.Position
	End   cursor.Position
}

// Engine maintains an independent scan over the document plain text. Find
// operations never mutate the document.
type Engine struct {
	query   string
	opts    Options
	matches []Match
}

// NewEngine creates an empty search engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Find scans the document for the query and returns all matches in
// document order. The match list is retained for Next/Prev navigation.
func (e *Engine) Find(buf *editbuffer.Buffer, query string, opts Options) []Match {
	e.query = query
	e.opts = opts
	e.matches = nil
	if query == "" {
		return nil
	}

	doc := []rune(buf.Store().Document())
	q := []rune(query)
	if !opts.CaseSensitive {
		doc = foldRunes(doc)
		q = foldRunes(q)
	}

	for i := 0; i+len(q) <= len(doc); i++ {
		if !runesEqual(doc[i:i+len(q)], q) {
			continue
		}
		if opts.WholeWord && !isWholeWord(doc, i, i+len(q)) {
			continue
		}
		e.matches = append(e.matches, Match{
			Start: buf.AbsToPos(i),
			End:   buf.AbsToPos(i + len(q)),
		})
	}
	return e.matches
}

// Matches returns the current match list.
func (e *Engine) Matches() []Match {
	return e.matches
}

// Next returns the first match starting after pos, wrapping to the first
// match when none follows. ok is false when there are no matches.
func (e *Engine) Next(pos cursor.Position) (Match, bool) {
	if len(e.matches) == 0 {
		return Match{}, false
	}
	for _, m := range e.matches {
		if pos.Before(m.Start) {
			return m, true
		}
	}
	return e.matches[0], true
}

// Prev returns the last match starting before pos, wrapping to the last
// match when none precedes.
func (e *Engine) Prev(pos cursor.Position) (Match, bool) {
	if len(e.matches) == 0 {
		return Match{}, false
	}
	for i := len(e.matches) - 1; i >= 0; i-- {
		if e.matches[i].Start.Before(pos) {
			return e.matches[i], true
		}
	}
	return e.matches[len(e.matches)-1], true
}

// ReplaceOne replaces a single match through the undo stack, then re-runs
// the scan since match offsets shift.
func (e *Engine) ReplaceOne(buf *editbuffer.Buffer, st *history.Stack, m Match, replacement string) error {
	cmd := history.NewReplaceCommand(m.Start, m.End, replacement, cursor.Caret(m.Start))
	if err := st.Execute(cmd, buf); err != nil {
		return err
	}
	e.Find(buf, e.query, e.opts)
	return nil
}

// ReplaceAll replaces every current match, processing matches last-to-first
// so earlier offsets stay valid, then re-runs the scan. Returns the number
// of replacements.
func (e *Engine) ReplaceAll(buf *editbuffer.Buffer, st *history.Stack, replacement string) (int, error) {
	n := 0
	for i := len(e.matches) - 1; i >= 0; i-- {
		m := e.matches[i]
		cmd := history.NewReplaceCommand(m.Start, m.End, replacement, cursor.Caret(m.Start))
		if err := st.Execute(cmd, buf); err != nil {
			return n, err
		}
		n++
	}
	e.Find(buf, e.query, e.opts)
	return n, nil
}

// foldRunes lowercases runes one-for-one so offsets are preserved.
func foldRunes(rs []rune) []rune {
	out := make([]rune, len(rs))
	for i, r := range rs {
		out[i] = unicode.ToLower(r)
	}
	return out
}

func runesEqual(a, b []rune) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// isWholeWord reports whether the match at [start, end) is bounded by
// non-word runes.
func isWholeWord(doc []rune, start, end int) bool {
	if start > 0 && isWordRune(doc[start-1]) {
		return false
	}
	if end < len(doc) && isWordRune(doc[end]) {
		return false
	}
	return true
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
