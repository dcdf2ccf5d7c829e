package frame

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/inkwell/internal/config"
	"github.com/dshills/inkwell/internal/engine/cursor"
	"github.com/dshills/inkwell/internal/engine/paragraph"
	"github.com/dshills/inkwell/internal/render/layout"
	"github.com/dshills/inkwell/internal/render/style"
	"github.com/dshills/inkwell/internal/render/viewport"
	"github.com/dshills/inkwell/internal/spell"
)

func testSetup(text string, width, height int) (*paragraph.Store, *Renderer, *Sim) {
	store := paragraph.FromText(text)
	cache := layout.NewCache(store, width)
	vp := viewport.New(height, store.Count(), 2)
	app := config.Default()
	app.ContentWidth = width
	r := NewRenderer(store, cache, vp, app)
	r.SyncAllHeights()
	sim := NewSim(width, height)
	if err := sim.Init(); err != nil {
		panic(err)
	}
	return store, r, sim
}

func emptyFrame() Frame {
	return Frame{Now: time.Unix(1000, 0)}
}

func TestRenderContinuousText(t *testing.T) {
	_, r, sim := testSetup("hello\nworld", 20, 10)
	r.Render(sim, emptyFrame())

	if got := sim.Row(0); got != "hello" {
		t.Errorf("row 0 = %q, want %q", got, "hello")
	}
	// Line height 1 plus paragraph gap 1 puts the next paragraph at row 2.
	if got := sim.Row(2); got != "world" {
		t.Errorf("row 2 = %q, want %q", got, "world")
	}
	if sim.Shows() != 1 {
		t.Errorf("Shows() = %d, want 1", sim.Shows())
	}
}

func TestRenderScrolledOffscreen(t *testing.T) {
	_, r, sim := testSetup("one\ntwo\nthree\nfour\nfive\nsix", 20, 4)
	r.vp.SetScrollOffset(4)
	r.Render(sim, emptyFrame())

	// Paragraph 2 starts at content row 4, now at screen row 0.
	if got := sim.Row(0); got != "three" {
		t.Errorf("row 0 = %q, want %q", got, "three")
	}
	if got := sim.Row(2); got != "four" {
		t.Errorf("row 2 = %q, want %q", got, "four")
	}
}

func TestRenderSelectionBackground(t *testing.T) {
	_, r, sim := testSetup("hello", 20, 4)
	f := emptyFrame()
	f.Selection = cursor.Selection{
		Anchor: cursor.Position{Para: 0, Offset: 1},
		Active: cursor.Position{Para: 0, Offset: 4},
	}
	r.Render(sim, f)

	_, bg, _ := sim.StyleAt(2, 0).Decompose()
	if bg != r.Palette().Selection {
		t.Errorf("selected cell background = %v, want selection color", bg)
	}
	_, bg, _ = sim.StyleAt(0, 0).Decompose()
	if bg == r.Palette().Selection {
		t.Error("unselected cell painted with selection background")
	}
}

func TestRenderFormatRuns(t *testing.T) {
	store, r, sim := testSetup("hello", 20, 4)
	store.ApplyStyle(0, 0, 5, paragraph.StyleBold, true)
	r.Render(sim, emptyFrame())

	_, _, attrs := sim.StyleAt(0, 0).Decompose()
	if attrs&tcell.AttrBold == 0 {
		t.Error("bold run not rendered bold")
	}
}

func TestRenderAnnotationUnderline(t *testing.T) {
	_, r, sim := testSetup("helo world", 20, 4)
	r.SetIssues(0, []spell.Issue{{Start: 0, End: 4, Kind: spell.KindSpelling, Word: "helo"}})
	r.Render(sim, emptyFrame())

	fg, _, attrs := sim.StyleAt(0, 0).Decompose()
	if attrs&tcell.AttrUnderline == 0 {
		t.Error("annotated cell not underlined")
	}
	if fg != r.Palette().Annotation {
		t.Errorf("annotated cell fg = %v, want annotation color", fg)
	}
	_, _, attrs = sim.StyleAt(5, 0).Decompose()
	if attrs&tcell.AttrUnderline != 0 {
		t.Error("cell past annotation underlined")
	}
}

func TestRenderCompositionUnderline(t *testing.T) {
	_, r, sim := testSetup("abc", 20, 4)
	f := emptyFrame()
	f.Caret = cursor.Position{Para: 0, Offset: 3}
	f.CompositionStart, f.CompositionEnd = 1, 3
	r.Render(sim, f)

	_, _, attrs := sim.StyleAt(1, 0).Decompose()
	if attrs&tcell.AttrUnderline == 0 {
		t.Error("composition cell not underlined")
	}
}

func TestCaretPositionAndBlink(t *testing.T) {
	_, r, sim := testSetup("hello\nworld", 20, 10)
	f := emptyFrame()
	f.Caret = cursor.Position{Para: 1, Offset: 2}
	r.Blink().Reset(f.Now)
	r.Render(sim, f)

	x, y, shown := sim.Cursor()
	if !shown || x != 2 || y != 2 {
		t.Fatalf("cursor = (%d,%d) shown=%v, want (2,2) shown", x, y, shown)
	}

	f.Now = f.Now.Add(config.Default().BlinkInterval.Std() + time.Millisecond)
	r.Render(sim, f)
	if _, _, shown := sim.Cursor(); shown {
		t.Error("caret still shown in the blink-off phase")
	}
}

func TestCaretBlinkCycle(t *testing.T) {
	blink := NewCaretBlink(100 * time.Millisecond)
	t0 := time.Unix(0, 0)
	blink.Reset(t0)

	if !blink.Visible(t0) {
		t.Error("caret invisible immediately after reset")
	}
	if blink.Visible(t0.Add(150 * time.Millisecond)) {
		t.Error("caret visible during off phase")
	}
	if !blink.Visible(t0.Add(250 * time.Millisecond)) {
		t.Error("caret invisible during second on phase")
	}

	blink.Reset(t0.Add(150 * time.Millisecond))
	if !blink.Visible(t0.Add(150 * time.Millisecond)) {
		t.Error("reset did not restore visibility")
	}
}

func TestFadeOverlayAlpha(t *testing.T) {
	fade := NewFadeOverlay(time.Second, 400*time.Millisecond)
	t0 := time.Unix(0, 0)
	fade.Touch(t0)

	if got := fade.Alpha(t0); got != 1 {
		t.Errorf("Alpha at input = %v, want 1", got)
	}
	if got := fade.Alpha(t0.Add(time.Second)); got != 1 {
		t.Errorf("Alpha at delay boundary = %v, want 1", got)
	}
	got := fade.Alpha(t0.Add(1200 * time.Millisecond))
	if got <= 0.4 || got >= 0.6 {
		t.Errorf("Alpha mid-decay = %v, want about 0.5", got)
	}
	if got := fade.Alpha(t0.Add(2 * time.Second)); got != 0 {
		t.Errorf("Alpha after decay = %v, want 0", got)
	}
}

func TestOverlayDrawnThenFaded(t *testing.T) {
	_, r, sim := testSetup("hello", 20, 5)
	f := emptyFrame()
	f.Overlay = "12 words"
	r.Fade().Touch(f.Now)
	r.Render(sim, f)

	if got := sim.Row(4); got == "" {
		t.Fatal("overlay not drawn while opaque")
	}

	f.Now = f.Now.Add(time.Hour)
	r.Render(sim, f)
	if got := sim.Row(4); got != "" {
		t.Errorf("overlay still drawn after fade: %q", got)
	}
}

func TestFocusDim(t *testing.T) {
	_, r, sim := testSetup("alpha\nbeta", 20, 10)
	r.SetFocus(0)
	r.Render(sim, emptyFrame())

	focused, _, _ := sim.StyleAt(0, 0).Decompose()
	dimmed, _, _ := sim.StyleAt(0, 2).Decompose()
	if focused != r.Palette().Text {
		t.Errorf("focused paragraph fg = %v, want text color", focused)
	}
	if dimmed == r.Palette().Text {
		t.Error("unfocused paragraph not dimmed")
	}
}

func TestAlignment(t *testing.T) {
	store, r, sim := testSetup("hi", 10, 4)
	store.SetAlignment(0, paragraph.AlignRight)
	r.Render(sim, emptyFrame())

	if got := sim.Row(0); got != "        hi" {
		t.Errorf("right-aligned row = %q", got)
	}

	store.SetAlignment(0, paragraph.AlignCenter)
	r.Render(sim, emptyFrame())
	if got := sim.Row(0); got != "    hi" {
		t.Errorf("centered row = %q", got)
	}
}

func TestPagination(t *testing.T) {
	heights := []int{2, 2, 2, 2, 7}
	pg := Paginate(len(heights), 5, func(i int) int { return heights[i] })

	if pg.PageCount() != 3 {
		t.Fatalf("PageCount() = %d, want 3", pg.PageCount())
	}
	if first, last := pg.Range(0); first != 0 || last != 1 {
		t.Errorf("page 0 = [%d,%d], want [0,1]", first, last)
	}
	if first, last := pg.Range(1); first != 2 || last != 3 {
		t.Errorf("page 1 = [%d,%d], want [2,3]", first, last)
	}
	// The oversized paragraph gets its own page rather than splitting.
	if first, last := pg.Range(2); first != 4 || last != 4 {
		t.Errorf("page 2 = [%d,%d], want [4,4]", first, last)
	}
	if pg.PageOf(3) != 1 {
		t.Errorf("PageOf(3) = %d, want 1", pg.PageOf(3))
	}
}

func TestPageModeShowsOnePage(t *testing.T) {
	_, r, sim := testSetup("one\ntwo\nthree\nfour", 20, 10)
	r.SetMode(ModePage)
	r.pageHeight = 4 // two paragraphs of height 2 per page

	// The default page gap of 2 leaves a margin above the page edge.
	margin := config.Default().PageGap
	r.Render(sim, emptyFrame())
	if got := sim.Row(margin); got != "one" {
		t.Errorf("page 0 row %d = %q, want %q", margin, got, "one")
	}
	if got := sim.Row(margin + 2); got != "two" {
		t.Errorf("page 0 row %d = %q, want %q", margin+2, got, "two")
	}

	if r.PageCount() != 2 {
		t.Fatalf("PageCount() = %d, want 2", r.PageCount())
	}
	r.GoToPage(1)
	r.Render(sim, emptyFrame())
	if got := sim.Row(margin); got != "three" {
		t.Errorf("page 1 row %d = %q, want %q", margin, got, "three")
	}

	if got := r.GoToPage(99); got != 1 {
		t.Errorf("GoToPage(99) = %d, want clamp to 1", got)
	}
}

func TestRenderScrollShift(t *testing.T) {
	_, r, sim := testSetup("one\ntwo\nthree\nfour\nfive\nsix", 20, 4)
	r.vp.SetScrollOffset(4)

	f := emptyFrame()
	f.ScrollShift = -2
	r.Render(sim, f)

	// The draw trails the authoritative offset: content row 2 is at the
	// top, so paragraph 1 shows at screen row 0 and paragraph 2 at row 2.
	if got := sim.Row(0); got != "two" {
		t.Errorf("row 0 = %q, want %q", got, "two")
	}
	if got := sim.Row(2); got != "three" {
		t.Errorf("row 2 = %q, want %q", got, "three")
	}
}

func TestColorModeSwitch(t *testing.T) {
	_, r, sim := testSetup("hi", 10, 3)
	r.SetColorMode(style.ModeLight)
	r.Render(sim, emptyFrame())

	fg, bg, _ := sim.StyleAt(0, 0).Decompose()
	light := style.PaletteFor(style.ModeLight)
	if fg != light.Text || bg != light.Background {
		t.Errorf("light mode cell = fg %v bg %v, want light palette", fg, bg)
	}
}
