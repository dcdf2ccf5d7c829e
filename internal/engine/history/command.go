package history

import (
	"strings"

	"github.com/dshills/inkwell/internal/engine/cursor"
	"github.com/dshills/inkwell/internal/engine/editbuffer"
	"github.com/dshills/inkwell/internal/engine/paragraph"
)

// Command is a reversible edit action. Each command stores exactly the data
// needed to apply and invert itself once each.
type Command interface {
	// Execute performs the command against the edit buffer.
	Execute(buf *editbuffer.Buffer) error

	// Undo reverses the command.
	Undo(buf *editbuffer.Buffer) error

	// Description returns a short human-readable label for the command.
	Description() string

	// SelectionBefore and SelectionAfter give the selection to restore when
	// the command is undone or redone.
	SelectionBefore() cursor.Selection
	SelectionAfter() cursor.Selection
}

// endOf computes the position just after text inserted at start, accounting
// for embedded newlines.
func endOf(start cursor.Position, text string) cursor.Position {
	lines := strings.Split(text, "\n")
	if len(lines) == 1 {
		return cursor.Position{Para: start.Para, Offset: start.Offset + len([]rune(text))}
	}
	return cursor.Position{
		Para:   start.Para + len(lines) - 1,
		Offset: len([]rune(lines[len(lines)-1])),
	}
}

// ReplaceCommand replaces the text range [Start, End) with NewText. It
// covers plain insertion (empty range), deletion (empty NewText), newline
// insertion (paragraph split), and boundary deletion (paragraph merge),
// since multi-line ranges split and merge as they are edited.
type ReplaceCommand struct {
	Start   cursor.Position
	End     cursor.Position
	NewText string

	// oldText is captured on first execute so undo restores it exactly.
	oldText string

	selBefore cursor.Selection
	selAfter  cursor.Selection
	executed  bool
}

// NewReplaceCommand creates a replace command. selBefore is the selection
// at the moment the command was issued.
func NewReplaceCommand(start, end cursor.Position, newText string, selBefore cursor.Selection) *ReplaceCommand {
	return &ReplaceCommand{Start: start, End: end, NewText: newText, selBefore: selBefore}
}

// Execute applies the replacement and records the replaced text.
func (c *ReplaceCommand) Execute(buf *editbuffer.Buffer) error {
	if !c.executed {
		c.oldText = buf.TextRange(c.Start, c.End)
		c.executed = true
	}
	buf.DeleteRange(c.Start, c.End)
	after := buf.InsertAt(c.Start, c.NewText)
	c.selAfter = cursor.Caret(after)
	return nil
}

// Undo removes the inserted text and restores the original.
func (c *ReplaceCommand) Undo(buf *editbuffer.Buffer) error {
	buf.DeleteRange(c.Start, endOf(c.Start, c.NewText))
	buf.InsertAt(c.Start, c.oldText)
	return nil
}

// Description returns a label for the command.
func (c *ReplaceCommand) Description() string {
	switch {
	case c.NewText == "":
		return "delete"
	case c.Start.Equal(c.End):
		return "insert"
	default:
		return "replace"
	}
}

// SelectionBefore returns the selection before the command ran.
func (c *ReplaceCommand) SelectionBefore() cursor.Selection { return c.selBefore }

// SelectionAfter returns the selection after the command ran.
func (c *ReplaceCommand) SelectionAfter() cursor.Selection { return c.selAfter }

// StyleCommand toggles a style flag over a range. Undo restores the exact
// prior run lists of every touched paragraph.
type StyleCommand struct {
	Start cursor.Position
	End   cursor.Position
	Flag  paragraph.StyleFlags
	On    bool

	prevRuns [][]paragraph.FormatRun
	sel      cursor.Selection
}

// NewStyleCommand creates a style command over the given selection range.
func NewStyleCommand(start, end cursor.Position, flag paragraph.StyleFlags, on bool, sel cursor.Selection) *StyleCommand {
	return &StyleCommand{Start: start, End: end, Flag: flag, On: on, sel: sel}
}

// Execute applies the style change, snapshotting prior runs once.
func (c *StyleCommand) Execute(buf *editbuffer.Buffer) error {
	if c.prevRuns == nil {
		for p := c.Start.Para; p <= c.End.Para; p++ {
			c.prevRuns = append(c.prevRuns, buf.Store().Runs(p))
		}
	}
	buf.ApplyStyle(c.Start, c.End, c.Flag, c.On)
	return nil
}

// Undo restores the snapshotted runs.
func (c *StyleCommand) Undo(buf *editbuffer.Buffer) error {
	for i, runs := range c.prevRuns {
		buf.Store().SetRuns(c.Start.Para+i, runs)
	}
	return nil
}

// Description returns a label for the command.
func (c *StyleCommand) Description() string { return "format" }

// SelectionBefore returns the selection the command was issued with.
func (c *StyleCommand) SelectionBefore() cursor.Selection { return c.sel }

// SelectionAfter returns the selection after the command; style changes do
// not move the cursor.
func (c *StyleCommand) SelectionAfter() cursor.Selection { return c.sel }

// FontCommand sets a font name over a range. Undo restores the exact
// prior run lists of every touched paragraph.
type FontCommand struct {
	Start cursor.Position
	End   cursor.Position
	Font  string

	prevRuns [][]paragraph.FormatRun
	sel      cursor.Selection
}

// NewFontCommand creates a font command over the given selection range.
func NewFontCommand(start, end cursor.Position, font string, sel cursor.Selection) *FontCommand {
	return &FontCommand{Start: start, End: end, Font: font, sel: sel}
}

// Execute applies the font change, snapshotting prior runs once.
func (c *FontCommand) Execute(buf *editbuffer.Buffer) error {
	if c.prevRuns == nil {
		for p := c.Start.Para; p <= c.End.Para; p++ {
			c.prevRuns = append(c.prevRuns, buf.Store().Runs(p))
		}
	}
	buf.ApplyFont(c.Start, c.End, c.Font)
	return nil
}

// Undo restores the snapshotted runs.
func (c *FontCommand) Undo(buf *editbuffer.Buffer) error {
	for i, runs := range c.prevRuns {
		buf.Store().SetRuns(c.Start.Para+i, runs)
	}
	return nil
}

// Description returns a label for the command.
func (c *FontCommand) Description() string { return "font" }

// SelectionBefore returns the selection the command was issued with.
func (c *FontCommand) SelectionBefore() cursor.Selection { return c.sel }

// SelectionAfter returns the unchanged selection.
func (c *FontCommand) SelectionAfter() cursor.Selection { return c.sel }

// AlignCommand sets paragraph alignment over a range.
type AlignCommand struct {
	Start cursor.Position
	End   cursor.Position
	Align paragraph.Alignment

	prev []paragraph.Alignment
	sel  cursor.Selection
}

// NewAlignCommand creates an alignment command.
func NewAlignCommand(start, end cursor.Position, a paragraph.Alignment, sel cursor.Selection) *AlignCommand {
	return &AlignCommand{Start: start, End: end, Align: a, sel: sel}
}

// Execute applies the alignment, snapshotting prior values once.
func (c *AlignCommand) Execute(buf *editbuffer.Buffer) error {
	if c.prev == nil {
		for p := c.Start.Para; p <= c.End.Para; p++ {
			if para := buf.Store().Paragraph(p); para != nil {
				c.prev = append(c.prev, para.Align)
			}
		}
	}
	buf.SetAlignment(c.Start, c.End, c.Align)
	return nil
}

// Undo restores the prior alignments.
func (c *AlignCommand) Undo(buf *editbuffer.Buffer) error {
	for i, a := range c.prev {
		buf.Store().SetAlignment(c.Start.Para+i, a)
	}
	return nil
}

// Description returns a label for the command.
func (c *AlignCommand) Description() string { return "align " + c.Align.String() }

// SelectionBefore returns the selection the command was issued with.
func (c *AlignCommand) SelectionBefore() cursor.Selection { return c.sel }

// SelectionAfter returns the unchanged selection.
func (c *AlignCommand) SelectionAfter() cursor.Selection { return c.sel }
