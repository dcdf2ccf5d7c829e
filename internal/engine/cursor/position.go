package cursor

// Doc is the read-only document surface navigation operates on.
// *paragraph.Store satisfies it.
type Doc interface {
	Count() int
	ParagraphLen(i int) int
	PlainText(i int) string
}

// Position is a logical document position: a paragraph index and a rune
// offset within that paragraph.
type Position struct {
	Para   int
	Offset int
}

// Clamp returns the position corrected to satisfy the bounds invariant:
// 0 <= Para < doc.Count() and 0 <= Offset <= len(paragraph).
func (p Position) Clamp(doc Doc) Position {
	if n := doc.Count(); p.Para >= n {
		p.Para = n - 1
	}
	if p.Para < 0 {
		p.Para = 0
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	if l := doc.ParagraphLen(p.Para); p.Offset > l {
		p.Offset = l
	}
	return p
}

// Before reports whether p precedes o in document order.
func (p Position) Before(o Position) bool {
	return p.Para < o.Para || (p.Para == o.Para && p.Offset < o.Offset)
}

// Equal reports whether two positions are identical.
func (p Position) Equal(o Position) bool {
	return p.Para == o.Para && p.Offset == o.Offset
}

// Start returns the document start position.
func Start() Position {
	return Position{}
}

// End returns the last valid position in the document.
func End(doc Doc) Position {
	last := doc.Count() - 1
	return Position{Para: last, Offset: doc.ParagraphLen(last)}
}
