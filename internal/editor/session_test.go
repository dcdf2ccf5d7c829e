package editor

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dshills/inkwell/internal/config"
	"github.com/dshills/inkwell/internal/engine/cursor"
	"github.com/dshills/inkwell/internal/engine/paragraph"
	"github.com/dshills/inkwell/internal/engine/search"
	"github.com/dshills/inkwell/internal/event"
	"github.com/dshills/inkwell/internal/render/frame"
	"github.com/dshills/inkwell/internal/spell"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	s := NewSession(config.Default(), nil, nil)
	s.SetViewportSize(40, 10)
	return s
}

func docText(s *Session) string {
	return s.Store().Document()
}

func TestInsertTextAndSplit(t *testing.T) {
	s := newTestSession(t)
	if err := s.InsertText("hello world"); err != nil {
		t.Fatalf("InsertText() error = %v", err)
	}
	if got := docText(s); got != "hello world" {
		t.Fatalf("document = %q", got)
	}
	if got := s.Position(); got.Para != 0 || got.Offset != 11 {
		t.Fatalf("caret = %+v, want end of insert", got)
	}

	s.SetCaret(cursor.Position{Para: 0, Offset: 5})
	if err := s.InsertNewline(); err != nil {
		t.Fatalf("InsertNewline() error = %v", err)
	}
	if got := docText(s); got != "hello\n world" {
		t.Fatalf("document after split = %q", got)
	}
	if got := s.Position(); got.Para != 1 || got.Offset != 0 {
		t.Fatalf("caret after split = %+v, want start of new paragraph", got)
	}
}

func TestDeleteBackwardMergesAtParagraphStart(t *testing.T) {
	s := newTestSession(t)
	if err := s.InsertText("alpha\nbeta"); err != nil {
		t.Fatal(err)
	}
	s.SetCaret(cursor.Position{Para: 1, Offset: 0})
	if err := s.DeleteBackward(); err != nil {
		t.Fatalf("DeleteBackward() error = %v", err)
	}
	if got := docText(s); got != "alphabeta" {
		t.Fatalf("document = %q, want merged paragraphs", got)
	}
	if got := s.Position(); got.Para != 0 || got.Offset != 5 {
		t.Fatalf("caret = %+v, want join point", got)
	}

	// Document start is a no-op.
	s.SetCaret(cursor.Position{Para: 0, Offset: 0})
	if err := s.DeleteBackward(); err != nil {
		t.Fatal(err)
	}
	if got := docText(s); got != "alphabeta" {
		t.Fatalf("document changed at start no-op: %q", got)
	}
}

func TestUndoRedoRoundTrip(t *testing.T) {
	s := newTestSession(t)
	steps := []string{"one", " two", "\nthree"}
	for _, step := range steps {
		if err := s.InsertText(step); err != nil {
			t.Fatal(err)
		}
	}
	want := "one two\nthree"
	if got := docText(s); got != want {
		t.Fatalf("document = %q, want %q", got, want)
	}

	for range steps {
		if err := s.Undo(); err != nil {
			t.Fatalf("Undo() error = %v", err)
		}
	}
	if got := docText(s); got != "" {
		t.Fatalf("document after full undo = %q, want empty", got)
	}
	if s.CanUndo() {
		t.Error("CanUndo() = true after full undo")
	}

	for range steps {
		if err := s.Redo(); err != nil {
			t.Fatalf("Redo() error = %v", err)
		}
	}
	if got := docText(s); got != want {
		t.Fatalf("document after redo = %q, want %q", got, want)
	}
}

func TestPendingFormatAppliesToNextInsert(t *testing.T) {
	s := newTestSession(t)
	if err := s.ToggleBold(); err != nil {
		t.Fatal(err)
	}
	if err := s.InsertText("bold"); err != nil {
		t.Fatal(err)
	}
	if !s.Store().RangeHasStyle(0, 0, 4, paragraph.StyleBold) {
		t.Error("inserted text did not pick up the pending bold format")
	}

	// Moving the caret drops the armed format.
	if err := s.ToggleItalic(); err != nil {
		t.Fatal(err)
	}
	s.MoveLeft(false)
	if err := s.InsertText("x"); err != nil {
		t.Fatal(err)
	}
	if s.Store().RangeHasStyle(0, 3, 4, paragraph.StyleItalic) {
		t.Error("pending italic survived a caret move")
	}
}

func TestToggleStyleOnSelectionUndoes(t *testing.T) {
	s := newTestSession(t)
	if err := s.InsertText("hello world"); err != nil {
		t.Fatal(err)
	}
	s.nav.SetSelection(cursor.Selection{
		Anchor: cursor.Position{Para: 0, Offset: 0},
		Active: cursor.Position{Para: 0, Offset: 5},
	})
	if err := s.ToggleBold(); err != nil {
		t.Fatal(err)
	}
	if !s.Store().RangeHasStyle(0, 0, 5, paragraph.StyleBold) {
		t.Fatal("selection not bold after toggle")
	}
	if err := s.Undo(); err != nil {
		t.Fatal(err)
	}
	if s.Store().RangeHasStyle(0, 0, 5, paragraph.StyleBold) {
		t.Error("bold survived undo")
	}
}

func TestCopyPasteWithFormatting(t *testing.T) {
	s := newTestSession(t)
	if err := s.InsertText("hello world"); err != nil {
		t.Fatal(err)
	}
	s.nav.SetSelection(cursor.Selection{
		Anchor: cursor.Position{Para: 0, Offset: 0},
		Active: cursor.Position{Para: 0, Offset: 5},
	})
	if err := s.ToggleBold(); err != nil {
		t.Fatal(err)
	}
	s.Copy()

	s.SetCaret(cursor.Position{Para: 0, Offset: 11})
	if err := s.Paste(); err != nil {
		t.Fatalf("Paste() error = %v", err)
	}
	if got := docText(s); got != "hello worldhello" {
		t.Fatalf("document = %q", got)
	}
	if !s.Store().RangeHasStyle(0, 11, 16, paragraph.StyleBold) {
		t.Error("pasted text lost its formatting")
	}
}

func TestCutPastePlain(t *testing.T) {
	s := newTestSession(t)
	if err := s.InsertText("abc def"); err != nil {
		t.Fatal(err)
	}
	s.nav.SetSelection(cursor.Selection{
		Anchor: cursor.Position{Para: 0, Offset: 0},
		Active: cursor.Position{Para: 0, Offset: 4},
	})
	if err := s.Cut(); err != nil {
		t.Fatal(err)
	}
	if got := docText(s); got != "def" {
		t.Fatalf("document after cut = %q", got)
	}
	s.SetCaret(cursor.Position{Para: 0, Offset: 3})
	if err := s.Paste(); err != nil {
		t.Fatal(err)
	}
	if got := docText(s); got != "defabc " {
		t.Fatalf("document after paste = %q", got)
	}
}

func TestReentrantMutationRejected(t *testing.T) {
	s := newTestSession(t)
	var inner error
	calls := 0
	s.Hub().Content.Subscribe(func(event.ContentChange) {
		calls++
		if calls == 1 {
			inner = s.InsertText("nested")
		}
	})
	if err := s.InsertText("outer"); err != nil {
		t.Fatal(err)
	}
	if inner != ErrBusy {
		t.Fatalf("nested InsertText error = %v, want ErrBusy", inner)
	}
	if got := docText(s); got != "outer" {
		t.Fatalf("document = %q, nested edit must not apply", got)
	}
}

func TestSetCaretClamps(t *testing.T) {
	s := newTestSession(t)
	if err := s.InsertText("short"); err != nil {
		t.Fatal(err)
	}
	s.SetCaret(cursor.Position{Para: 99, Offset: 99})
	if got := s.Position(); got.Para != 0 || got.Offset != 5 {
		t.Fatalf("caret = %+v, want clamp to document end", got)
	}
}

func TestFindReplaceAll(t *testing.T) {
	s := newTestSession(t)
	if err := s.InsertText("cat dog cat\ncat"); err != nil {
		t.Fatal(err)
	}
	matches := s.Find("cat", search.Options{})
	if len(matches) != 3 {
		t.Fatalf("Find() = %d matches, want 3", len(matches))
	}

	m, ok := s.FindNext()
	if !ok {
		t.Fatal("FindNext() found nothing")
	}
	if sel := s.Selection(); sel.Anchor != m.Start || sel.Active != m.End {
		t.Error("FindNext did not select the match")
	}

	n, err := s.ReplaceAll("bird")
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Fatalf("ReplaceAll() = %d, want 3", n)
	}
	if got := docText(s); got != "bird dog bird\nbird" {
		t.Fatalf("document = %q", got)
	}

	if err := s.Undo(); err != nil {
		t.Fatal(err)
	}
}

func TestMarkers(t *testing.T) {
	s := newTestSession(t)
	if err := s.InsertText("first\nsecond\nthird"); err != nil {
		t.Fatal(err)
	}
	s.SetCaret(cursor.Position{Para: 0, Offset: 0})
	id1 := s.AddMarker(paragraph.MarkerTodo, "fix wording")
	s.SetCaret(cursor.Position{Para: 2, Offset: 1})
	id2 := s.AddMarker(paragraph.MarkerTodo, "expand")

	s.SetCaret(cursor.Position{Para: 1, Offset: 0})
	m, ok := s.NextMarker()
	if !ok || m.Text != "expand" {
		t.Fatalf("NextMarker() = %+v %v, want the third-paragraph marker", m, ok)
	}
	// Wraps past the end back to the first marker.
	m, ok = s.NextMarker()
	if !ok || m.Text != "fix wording" {
		t.Fatalf("NextMarker() wrap = %+v %v", m, ok)
	}

	if !s.SetMarkerDone(id1, true) {
		t.Error("SetMarkerDone failed")
	}
	if !s.RemoveMarker(id2) {
		t.Error("RemoveMarker failed")
	}
	if _, ok := s.NextMarker(); !ok {
		t.Error("remaining marker not found")
	}
}

func TestComments(t *testing.T) {
	s := newTestSession(t)
	if err := s.InsertText("draft text"); err != nil {
		t.Fatal(err)
	}
	s.nav.SetSelection(cursor.Selection{
		Anchor: cursor.Position{Para: 0, Offset: 0},
		Active: cursor.Position{Para: 0, Offset: 5},
	})
	id := s.AddComment("reviewer", "tighten this")
	if !s.EditComment(id, "cut this") {
		t.Error("EditComment failed")
	}
	if !s.RemoveComment(id) {
		t.Error("RemoveComment failed")
	}
	if s.RemoveComment(id) {
		t.Error("RemoveComment succeeded twice")
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	s := newTestSession(t)
	if err := s.LoadString("# Title\n\nHello **brave** world."); err != nil {
		t.Fatalf("LoadString() error = %v", err)
	}
	if s.Store().Count() != 2 {
		t.Fatalf("Count() = %d, want 2", s.Store().Count())
	}
	if s.Store().Paragraph(0).Kind != paragraph.KindHeading1 {
		t.Error("first paragraph is not a heading")
	}

	path := filepath.Join(t.TempDir(), "doc.md")
	if err := s.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != s.Export() {
		t.Error("saved file differs from Export()")
	}

	s2 := newTestSession(t)
	if err := s2.Load(path); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s2.Export() != s.Export() {
		t.Error("load/save round trip changed the document")
	}
}

func TestLoadFailureLeavesEmptyDocument(t *testing.T) {
	s := newTestSession(t)
	if err := s.InsertText("existing"); err != nil {
		t.Fatal(err)
	}
	if err := s.Load(filepath.Join(t.TempDir(), "missing.md")); err == nil {
		t.Fatal("Load() of a missing file succeeded")
	}
	if got := s.Store().Count(); got != 1 {
		t.Fatalf("Count() = %d, want single empty paragraph", got)
	}
	if got := docText(s); got != "" {
		t.Fatalf("document = %q, want empty", got)
	}
}

func TestViewModeSwitch(t *testing.T) {
	s := newTestSession(t)
	var modes []string
	s.Hub().ViewMode.Subscribe(func(m string) { modes = append(modes, m) })

	s.SetViewMode(frame.ModePage)
	s.SetViewMode(frame.ModePage) // no-op, no duplicate event
	s.SetViewMode(frame.ModeContinuous)

	if len(modes) != 2 || modes[0] != "page" || modes[1] != "continuous" {
		t.Fatalf("mode events = %v", modes)
	}
}

func TestTypewriterCentersCaret(t *testing.T) {
	s := newTestSession(t)
	for i := 0; i < 30; i++ {
		if err := s.InsertText("line\n"); err != nil {
			t.Fatal(err)
		}
	}
	s.SetTypewriter(true)
	s.SetCaret(cursor.Position{Para: 15, Offset: 0})

	y := s.caretContentY()
	want := y - int(float64(s.vp.Height())*s.app.FocusLineFraction)
	if got := s.vp.ScrollOffset(); got != want {
		t.Fatalf("scroll offset = %d, want caret pinned at %d", got, want)
	}
}

func TestScrollToAnimatesDisplay(t *testing.T) {
	s := newTestSession(t)
	for i := 0; i < 20; i++ {
		if err := s.InsertText("line\n"); err != nil {
			t.Fatal(err)
		}
	}
	s.SetCaret(cursor.Position{})

	s.ScrollTo(12)
	if got := s.vp.ScrollOffset(); got != 12 {
		t.Fatalf("scroll offset = %d, want 12", got)
	}
	if got := s.smooth.Offset(time.Now().Add(time.Second)); got != 12 {
		t.Errorf("display offset after animation = %d, want 12", got)
	}

	// Caret movement snaps the display to the new offset immediately.
	s.MoveDocStart(false)
	if got := s.smooth.Offset(time.Now()); got != s.vp.ScrollOffset() {
		t.Errorf("display offset = %d, want snap to %d", got, s.vp.ScrollOffset())
	}
}

func TestRenderUsesDisplayOffset(t *testing.T) {
	s := newTestSession(t)
	for i := 0; i < 12; i++ {
		if err := s.InsertText(fmt.Sprintf("p%d\n", i)); err != nil {
			t.Fatal(err)
		}
	}
	s.vp.SetScrollOffset(8)
	s.smooth.Jump(6)

	sim := frame.NewSim(40, 10)
	if err := sim.Init(); err != nil {
		t.Fatalf("sim init: %v", err)
	}
	s.Render(sim, time.Unix(1000, 0))

	// The draw trails the authoritative offset: content row 6 is
	// paragraph 3's top.
	if got := sim.Row(0); got != "p3" {
		t.Errorf("row 0 = %q, want %q", got, "p3")
	}
}

func TestSelectionFontAppliesAndUndoes(t *testing.T) {
	s := newTestSession(t)
	if err := s.InsertText("hello world"); err != nil {
		t.Fatal(err)
	}
	s.nav.SetSelection(cursor.Selection{
		Anchor: cursor.Position{Para: 0, Offset: 6},
		Active: cursor.Position{Para: 0, Offset: 11},
	})
	if err := s.SetSelectionFont("mono"); err != nil {
		t.Fatal(err)
	}

	s.SetCaret(cursor.Position{Para: 0, Offset: 7})
	if got := s.FontAt(); got != "mono" {
		t.Errorf("FontAt() inside run = %q, want %q", got, "mono")
	}
	s.SetCaret(cursor.Position{Para: 0, Offset: 2})
	if got := s.FontAt(); got != s.app.FontName {
		t.Errorf("FontAt() outside run = %q, want base font %q", got, s.app.FontName)
	}

	if err := s.Undo(); err != nil {
		t.Fatal(err)
	}
	if runs := s.Store().Runs(0); len(runs) != 0 {
		t.Errorf("runs after undo = %+v", runs)
	}
}

func TestPreeditInvalidatesAnnotations(t *testing.T) {
	s := newTestSession(t)
	if err := s.InsertText("helo"); err != nil {
		t.Fatal(err)
	}
	s.renderer.SetIssues(0, []spell.Issue{{Start: 0, End: 4, Kind: spell.KindSpelling, Word: "helo"}})
	gen := s.paraGen[0]

	s.ComposeBegin()
	s.ComposeUpdate("x")

	if s.paraGen[0] == gen {
		t.Error("paragraph generation unchanged by preedit")
	}
	if s.renderer.Issues(0) != nil {
		t.Error("annotations kept over preedit-shifted text")
	}
}

func TestComposeCommitNormalizes(t *testing.T) {
	s := newTestSession(t)
	s.ComposeBegin()
	s.ComposeUpdate("é") // e + combining acute
	if got := docText(s); got != "é" {
		t.Fatalf("preedit not shown: %q", got)
	}
	if err := s.ComposeCommit(); err != nil {
		t.Fatal(err)
	}
	if got := docText(s); got != "é" {
		t.Fatalf("committed text = %q, want NFC form", got)
	}

	// Cancel removes the preedit entirely.
	s.ComposeBegin()
	s.ComposeUpdate("xyz")
	s.ComposeCancel()
	if got := docText(s); got != "é" {
		t.Fatalf("document after cancel = %q", got)
	}
}

func TestStaleSpellResultDropped(t *testing.T) {
	s := newTestSession(t)
	// Paragraph 7 has no generation entry, so any result for it is stale.
	s.spellSvc.Request(7, 123, "wrld")

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		s.PumpSpell()
		time.Sleep(10 * time.Millisecond)
	}
	if got := s.Renderer().Issues(7); got != nil {
		t.Fatalf("stale result applied: %+v", got)
	}
}

func TestSpellResultApplied(t *testing.T) {
	s := newTestSession(t)
	if err := s.InsertText("helo world"); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		s.PumpSpell()
		if issues := s.Renderer().Issues(0); len(issues) > 0 {
			if issues[0].Word != "helo" {
				t.Fatalf("issue word = %q, want %q", issues[0].Word, "helo")
			}
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("spell result never arrived")
}
