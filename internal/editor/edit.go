package editor

import (
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/dshills/inkwell/internal/clipboard"
	"github.com/dshills/inkwell/internal/engine/cursor"
	"github.com/dshills/inkwell/internal/engine/history"
	"github.com/dshills/inkwell/internal/engine/paragraph"
)

// styleFlags lists the toggleable inline styles.
var styleFlags = []paragraph.StyleFlags{
	paragraph.StyleBold,
	paragraph.StyleItalic,
	paragraph.StyleUnderline,
	paragraph.StyleStrikethrough,
}

// InsertText replaces the selection with text. A pending format set by a
// style toggle on an empty selection applies to the inserted span.
func (s *Session) InsertText(text string) error {
	if text == "" {
		return nil
	}
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()
	return s.insertLocked(text)
}

// InsertNewline splits the current paragraph at the caret.
func (s *Session) InsertNewline() error {
	return s.InsertText("\n")
}

func (s *Session) insertLocked(text string) error {
	sel := s.nav.Selection()
	start, end := sel.Normalized()
	buf := s.buffer()

	cmd := history.NewReplaceCommand(start, end, text, sel)
	var final history.Command = cmd

	if pending := buf.Pending(); pending != 0 && !strings.Contains(text, "\n") {
		insEnd := cursor.Position{Para: start.Para, Offset: start.Offset + len([]rune(text))}
		cmds := []history.Command{cmd}
		for _, flag := range styleFlags {
			if pending.Has(flag) {
				cmds = append(cmds, history.NewStyleCommand(start, insEnd, flag, true, cursor.Caret(insEnd)))
			}
		}
		final = history.NewComposite(cmd.Description(), cmds...)
	}

	structural := strings.Contains(text, "\n") || start.Para != end.Para
	if err := s.hist.Execute(final, buf); err != nil {
		return err
	}
	s.nav.SetSelection(final.SelectionAfter())
	s.mutated(start.Para, structural)
	return nil
}

// DeleteBackward deletes the selection, or the rune before the caret. At a
// paragraph start it merges with the previous paragraph; at the document
// start it is a no-op.
func (s *Session) DeleteBackward() error {
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	sel := s.nav.Selection()
	start, end := sel.Normalized()
	if sel.IsEmpty() {
		pos := sel.Active
		switch {
		case pos.Offset > 0:
			start = cursor.Position{Para: pos.Para, Offset: pos.Offset - 1}
		case pos.Para > 0:
			start = cursor.Position{Para: pos.Para - 1, Offset: s.store.ParagraphLen(pos.Para - 1)}
		default:
			return nil
		}
		end = pos
	}
	return s.deleteLocked(start, end, sel)
}

// DeleteForward deletes the selection, or the rune after the caret. At a
// paragraph end it merges with the next paragraph; at the document end it
// is a no-op.
func (s *Session) DeleteForward() error {
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	sel := s.nav.Selection()
	start, end := sel.Normalized()
	if sel.IsEmpty() {
		pos := sel.Active
		switch {
		case pos.Offset < s.store.ParagraphLen(pos.Para):
			end = cursor.Position{Para: pos.Para, Offset: pos.Offset + 1}
		case pos.Para < s.store.Count()-1:
			end = cursor.Position{Para: pos.Para + 1, Offset: 0}
		default:
			return nil
		}
		start = pos
	}
	return s.deleteLocked(start, end, sel)
}

func (s *Session) deleteLocked(start, end cursor.Position, sel cursor.Selection) error {
	cmd := history.NewReplaceCommand(start, end, "", sel)
	if err := s.hist.Execute(cmd, s.buffer()); err != nil {
		return err
	}
	s.nav.SetSelection(cmd.SelectionAfter())
	s.mutated(start.Para, start.Para != end.Para)
	return nil
}

// Undo reverses the most recent command and restores its prior selection.
func (s *Session) Undo() error {
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	cmd, err := s.hist.Undo(s.buffer())
	if err != nil || cmd == nil {
		return err
	}
	sel := cmd.SelectionBefore()
	s.nav.SetSelection(sel)
	s.mutated(minPara(sel), true)
	return nil
}

// Redo re-applies the most recently undone command.
func (s *Session) Redo() error {
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	cmd, err := s.hist.Redo(s.buffer())
	if err != nil || cmd == nil {
		return err
	}
	sel := cmd.SelectionAfter()
	s.nav.SetSelection(sel)
	s.mutated(minPara(sel), true)
	return nil
}

func minPara(sel cursor.Selection) int {
	start, _ := sel.Normalized()
	return start.Para
}

// Copy places the selected text on the clipboard. Single-paragraph
// selections carry their format runs; cross-paragraph selections copy as
// plain text.
func (s *Session) Copy() {
	sel := s.nav.Selection()
	if sel.IsEmpty() {
		return
	}
	start, end := sel.Normalized()
	payload := clipboard.Payload{Text: s.buffer().TextRange(start, end)}
	if start.Para == end.Para {
		payload.Runs = clippedRuns(s.store.Runs(start.Para), start.Offset, end.Offset)
	}
	s.clip.Set(payload)
}

// clippedRuns extracts the runs overlapping [start, end), rebased to the
// span start.
func clippedRuns(runs []paragraph.FormatRun, start, end int) []paragraph.FormatRun {
	var out []paragraph.FormatRun
	for _, r := range runs {
		if r.End <= start || r.Start >= end {
			continue
		}
		clipped := r
		if clipped.Start < start {
			clipped.Start = start
		}
		if clipped.End > end {
			clipped.End = end
		}
		clipped.Start -= start
		clipped.End -= start
		out = append(out, clipped)
	}
	return out
}

// Cut copies the selection and deletes it.
func (s *Session) Cut() error {
	sel := s.nav.Selection()
	if sel.IsEmpty() {
		return nil
	}
	s.Copy()
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()
	start, end := sel.Normalized()
	return s.deleteLocked(start, end, sel)
}

// Paste replaces the selection with the clipboard payload. Formatting is
// reapplied for single-paragraph payloads; payloads without runs paste as
// plain text. An empty clipboard is a no-op, never an error.
func (s *Session) Paste() error {
	payload := s.clip.Get()
	if payload.IsEmpty() {
		return nil
	}
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	sel := s.nav.Selection()
	start, end := sel.Normalized()
	cmd := history.NewReplaceCommand(start, end, payload.Text, sel)
	var final history.Command = cmd

	if len(payload.Runs) > 0 && !strings.Contains(payload.Text, "\n") {
		insEnd := cursor.Position{Para: start.Para, Offset: start.Offset + len([]rune(payload.Text))}
		cmds := []history.Command{cmd}
		for _, run := range payload.Runs {
			span := [2]cursor.Position{
				{Para: start.Para, Offset: start.Offset + run.Start},
				{Para: start.Para, Offset: start.Offset + run.End},
			}
			for _, flag := range styleFlags {
				if run.Style.Has(flag) {
					cmds = append(cmds, history.NewStyleCommand(span[0], span[1], flag, true, cursor.Caret(insEnd)))
				}
			}
		}
		final = history.NewComposite("paste", cmds...)
	}

	structural := strings.Contains(payload.Text, "\n") || start.Para != end.Para
	if err := s.hist.Execute(final, s.buffer()); err != nil {
		return err
	}
	s.nav.SetSelection(final.SelectionAfter())
	s.mutated(start.Para, structural)
	return nil
}

// ToggleStyle toggles a style flag over the selection. With an empty
// selection it arms a pending format for the next insertion instead.
func (s *Session) ToggleStyle(flag paragraph.StyleFlags) error {
	sel := s.nav.Selection()
	if sel.IsEmpty() {
		s.buffer().TogglePending(flag)
		return nil
	}
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	start, end := sel.Normalized()
	on := !s.buffer().RangeHasStyle(start, end, flag)
	cmd := history.NewStyleCommand(start, end, flag, on, sel)
	if err := s.hist.Execute(cmd, s.buffer()); err != nil {
		return err
	}
	s.mutated(start.Para, false)
	return nil
}

// ToggleBold toggles bold over the selection.
func (s *Session) ToggleBold() error { return s.ToggleStyle(paragraph.StyleBold) }

// ToggleItalic toggles italic over the selection.
func (s *Session) ToggleItalic() error { return s.ToggleStyle(paragraph.StyleItalic) }

// ToggleUnderline toggles underline over the selection.
func (s *Session) ToggleUnderline() error { return s.ToggleStyle(paragraph.StyleUnderline) }

// ToggleStrikethrough toggles strikethrough over the selection.
func (s *Session) ToggleStrikethrough() error { return s.ToggleStyle(paragraph.StyleStrikethrough) }

// SelectionHasStyle reports whether the whole selection carries the flag.
func (s *Session) SelectionHasStyle(flag paragraph.StyleFlags) bool {
	start, end := s.nav.Selection().Normalized()
	return s.buffer().RangeHasStyle(start, end, flag)
}

// SetAlignment aligns every paragraph the selection touches.
func (s *Session) SetAlignment(a paragraph.Alignment) error {
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	sel := s.nav.Selection()
	start, end := sel.Normalized()
	cmd := history.NewAlignCommand(start, end, a, sel)
	if err := s.hist.Execute(cmd, s.buffer()); err != nil {
		return err
	}
	s.mutated(start.Para, false)
	return nil
}

// SetSelectionFont applies a font name over the selection; an empty name
// reverts the range to the configured base font.
func (s *Session) SetSelectionFont(name string) error {
	sel := s.nav.Selection()
	if sel.IsEmpty() {
		return nil
	}
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	if name == s.app.FontName {
		name = ""
	}
	start, end := sel.Normalized()
	cmd := history.NewFontCommand(start, end, name, sel)
	if err := s.hist.Execute(cmd, s.buffer()); err != nil {
		return err
	}
	s.mutated(start.Para, false)
	return nil
}

// FontAt returns the font name in effect at the caret; text without a font
// run reports the configured base font.
func (s *Session) FontAt() string {
	pos := s.nav.Position()
	if p := s.store.Paragraph(pos.Para); p != nil {
		if f := p.FontAt(pos.Offset); f != "" {
			return f
		}
	}
	return s.app.FontName
}

// SelectAll selects the whole document.
func (s *Session) SelectAll() {
	s.nav.SelectAll()
	s.caretMoved(true)
}

// Composition: preedit text from an input method is held in the document
// provisionally and replaced on every update; only the committed text
// becomes an undoable insertion.

// ComposeBegin starts input-method composition at the caret.
func (s *Session) ComposeBegin() {
	s.comp.Begin(s.nav.Position())
	s.compLen = 0
}

// ComposeUpdate replaces the preedit text with text.
func (s *Session) ComposeUpdate(text string) {
	if !s.comp.Active() {
		return
	}
	text = strings.ReplaceAll(text, "\n", "")
	start := s.comp.Start()
	s.replacePreedit(start, text)
	s.comp.Update(text)
	s.nav.SetPosition(cursor.Position{Para: start.Para, Offset: start.Offset + s.compLen})
	s.renderer.Blink().Reset(time.Now())
}

// ComposeCommit removes the preedit and inserts the committed text as a
// normal undoable edit, normalized to NFC so composed sequences compare
// and search consistently.
func (s *Session) ComposeCommit() error {
	if !s.comp.Active() {
		return nil
	}
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	start, text := s.comp.Commit()
	s.replacePreedit(start, "")
	s.nav.SetPosition(start)
	if text == "" {
		return nil
	}
	return s.insertLocked(norm.NFC.String(text))
}

// ComposeCancel discards the composition and its preedit.
func (s *Session) ComposeCancel() {
	if !s.comp.Active() {
		return
	}
	start := s.comp.Start()
	s.replacePreedit(start, "")
	s.comp.Cancel()
	s.nav.SetPosition(start)
	s.caretMoved(false)
}

// replacePreedit swaps the preedit span at start for text, outside the
// history stack. The paragraph generation advances so annotation results
// computed against the pre-composition text are dropped rather than drawn
// at shifted offsets.
func (s *Session) replacePreedit(start cursor.Position, text string) {
	buf := s.buffer()
	if s.compLen > 0 {
		buf.DeleteRange(start, cursor.Position{Para: start.Para, Offset: start.Offset + s.compLen})
	}
	if text != "" {
		buf.InsertAt(start, text)
	}
	s.compLen = len([]rune(text))
	s.generation++
	s.paraGen[start.Para] = s.generation
	s.renderer.ClearIssues(start.Para)
	s.layout.Invalidate(start.Para)
	s.renderer.SyncHeight(start.Para)
}
