package cursor

// LineIndex resolves visual (wrapped) lines for vertical movement. The
// render layout cache satisfies it.
type LineIndex interface {
	// LineCount returns the number of visual lines in paragraph i.
	LineCount(para int) int
	// LineAt returns the index of the visual line containing rune offset off.
	LineAt(para, off int) int
	// LineRange returns the [start, end) rune span of visual line ln.
	LineRange(para, ln int) (start, end int)
}

// Navigator owns the authoritative selection and implements all movement
// operations. Vertical movement preserves a preferred column across lines
// of differing length; the preferred column is recomputed only when
// horizontal movement occurs.
type Navigator struct {
	doc   Doc
	lines LineIndex
	sel   Selection

	// prefCol is the preferred column for vertical movement, in runes from
	// the visual line start. -1 means "derive from the current position".
	prefCol int
}

// NewNavigator creates a navigator over the given document and line index.
func NewNavigator(doc Doc, lines LineIndex) *Navigator {
	return &Navigator{doc: doc, lines: lines, prefCol: -1}
}

// Selection returns the current selection.
func (n *Navigator) Selection() Selection {
	return n.sel
}

// Position returns the active cursor position.
func (n *Navigator) Position() Position {
	return n.sel.Active
}

// SetPosition collapses the selection to pos after clamping.
func (n *Navigator) SetPosition(pos Position) {
	n.sel = Caret(pos.Clamp(n.doc))
	n.prefCol = -1
}

// SetSelection installs a selection after clamping both endpoints.
func (n *Navigator) SetSelection(sel Selection) {
	n.sel = sel.Clamp(n.doc)
	n.prefCol = -1
}

// Revalidate re-clamps the selection after a structural document change.
func (n *Navigator) Revalidate() {
	n.sel = n.sel.Clamp(n.doc)
}

// SelectAll selects the entire document.
func (n *Navigator) SelectAll() {
	n.sel = Selection{Anchor: Start(), Active: End(n.doc)}
	n.prefCol = -1
}

// apply commits a movement target: collapse or extend per the flag.
func (n *Navigator) apply(pos Position, extend bool) {
	pos = pos.Clamp(n.doc)
	if extend {
		n.sel = n.sel.Extend(pos)
	} else {
		n.sel = Caret(pos)
	}
}

// Horizontal Movement

// MoveLeft moves one rune left. At (0,0) it is a no-op.
func (n *Navigator) MoveLeft(extend bool) {
	pos := n.sel.Active
	switch {
	case pos.Offset > 0:
		pos.Offset--
	case pos.Para > 0:
		pos.Para--
		pos.Offset = n.doc.ParagraphLen(pos.Para)
	}
	n.apply(pos, extend)
	n.prefCol = -1
}

// MoveRight moves one rune right. At end of document it is a no-op.
func (n *Navigator) MoveRight(extend bool) {
	pos := n.sel.Active
	switch {
	case pos.Offset < n.doc.ParagraphLen(pos.Para):
		pos.Offset++
	case pos.Para < n.doc.Count()-1:
		pos.Para++
		pos.Offset = 0
	}
	n.apply(pos, extend)
	n.prefCol = -1
}

// MoveWordLeft moves to the previous word start.
func (n *Navigator) MoveWordLeft(extend bool) {
	pos := n.sel.Active
	if pos.Offset == 0 {
		n.MoveLeft(extend)
		return
	}
	runes := []rune(n.doc.PlainText(pos.Para))
	pos.Offset = wordLeftIn(runes, pos.Offset)
	n.apply(pos, extend)
	n.prefCol = -1
}

// MoveWordRight moves past the current word and any following separators.
func (n *Navigator) MoveWordRight(extend bool) {
	pos := n.sel.Active
	if pos.Offset >= n.doc.ParagraphLen(pos.Para) {
		n.MoveRight(extend)
		return
	}
	runes := []rune(n.doc.PlainText(pos.Para))
	pos.Offset = wordRightIn(runes, pos.Offset)
	n.apply(pos, extend)
	n.prefCol = -1
}

// MoveLineStart moves to the start of the current visual line.
func (n *Navigator) MoveLineStart(extend bool) {
	pos := n.sel.Active
	ln := n.lines.LineAt(pos.Para, pos.Offset)
	pos.Offset, _ = n.lines.LineRange(pos.Para, ln)
	n.apply(pos, extend)
	n.prefCol = -1
}

// MoveLineEnd moves to the end of the current visual line.
func (n *Navigator) MoveLineEnd(extend bool) {
	pos := n.sel.Active
	ln := n.lines.LineAt(pos.Para, pos.Offset)
	_, end := n.lines.LineRange(pos.Para, ln)
	pos.Offset = end
	n.apply(pos, extend)
	n.prefCol = -1
}

// Vertical Movement

// MoveUp moves one visual line up, honoring the preferred column.
func (n *Navigator) MoveUp(extend bool) {
	n.moveVertical(-1, extend)
}

// MoveDown moves one visual line down, honoring the preferred column.
func (n *Navigator) MoveDown(extend bool) {
	n.moveVertical(1, extend)
}

// MovePageUp moves up by the given number of visual lines.
func (n *Navigator) MovePageUp(lines int, extend bool) {
	for i := 0; i < lines; i++ {
		n.moveVertical(-1, extend)
	}
}

// MovePageDown moves down by the given number of visual lines.
func (n *Navigator) MovePageDown(lines int, extend bool) {
	for i := 0; i < lines; i++ {
		n.moveVertical(1, extend)
	}
}

func (n *Navigator) moveVertical(dir int, extend bool) {
	pos := n.sel.Active
	ln := n.lines.LineAt(pos.Para, pos.Offset)

	col := n.prefCol
	if col < 0 {
		start, _ := n.lines.LineRange(pos.Para, ln)
		col = pos.Offset - start
		n.prefCol = col
	}

	targetPara, targetLine := pos.Para, ln+dir
	if targetLine < 0 {
		if targetPara == 0 {
			return // top of document
		}
		targetPara--
		targetLine = n.lines.LineCount(targetPara) - 1
	} else if targetLine >= n.lines.LineCount(targetPara) {
		if targetPara >= n.doc.Count()-1 {
			return // bottom of document
		}
		targetPara++
		targetLine = 0
	}

	start, end := n.lines.LineRange(targetPara, targetLine)
	off := start + col
	if off > end {
		off = end
	}
	n.apply(Position{Para: targetPara, Offset: off}, extend)
}

// Document Movement

// MoveDocStart moves to the start of the document.
func (n *Navigator) MoveDocStart(extend bool) {
	n.apply(Start(), extend)
	n.prefCol = -1
}

// MoveDocEnd moves to the end of the document.
func (n *Navigator) MoveDocEnd(extend bool) {
	n.apply(End(n.doc), extend)
	n.prefCol = -1
}

// Pointer Selection

// WordAt returns a selection covering the word enclosing pos; used for
// double-click.
func (n *Navigator) WordAt(pos Position) Selection {
	pos = pos.Clamp(n.doc)
	runes := []rune(n.doc.PlainText(pos.Para))
	start, end := wordSpanIn(runes, pos.Offset)
	return Selection{
		Anchor: Position{Para: pos.Para, Offset: start},
		Active: Position{Para: pos.Para, Offset: end},
	}
}

// ParagraphAt returns a selection covering the whole paragraph at pos; used
// for triple-click.
func (n *Navigator) ParagraphAt(pos Position) Selection {
	pos = pos.Clamp(n.doc)
	return Selection{
		Anchor: Position{Para: pos.Para, Offset: 0},
		Active: Position{Para: pos.Para, Offset: n.doc.ParagraphLen(pos.Para)},
	}
}

// DragTo extends the selection to pos during a pointer drag.
func (n *Navigator) DragTo(pos Position) {
	n.apply(pos, true)
	n.prefCol = -1
}
