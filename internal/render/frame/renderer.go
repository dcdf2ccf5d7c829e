// Package frame assembles the visible portion of the document into a cell
// grid on a backend surface. It draws only the paragraphs intersecting the
// viewport, styles text from format runs, and layers the edit overlays:
// selection highlight, caret blink, composition underline, annotation
// underlines, focus dimming, and the fading status overlay.
package frame

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/dshills/inkwell/internal/config"
	"github.com/dshills/inkwell/internal/engine/cursor"
	"github.com/dshills/inkwell/internal/engine/paragraph"
	"github.com/dshills/inkwell/internal/render/layout"
	"github.com/dshills/inkwell/internal/render/style"
	"github.com/dshills/inkwell/internal/render/viewport"
	"github.com/dshills/inkwell/internal/spell"
)

// ViewMode selects how the document maps onto the surface.
type ViewMode uint8

const (
	// ModeContinuous scrolls the document as one column of paragraphs.
	ModeContinuous ViewMode = iota
	// ModePage shows one fixed-height page at a time.
	ModePage
)

// String returns the mode name.
func (m ViewMode) String() string {
	if m == ModePage {
		return "page"
	}
	return "continuous"
}

// Frame is the per-draw input: everything that changes between frames but
// does not belong to the renderer.
type Frame struct {
	Selection cursor.Selection
	Caret     cursor.Position

	// Composition span as rune offsets within the caret paragraph.
	// Start == End means no active composition.
	CompositionStart int
	CompositionEnd   int

	// Overlay is the status text (word count, clock) drawn bottom-right.
	Overlay string

	// ScrollShift is added to the authoritative scroll offset for this
	// draw only, so a smooth-scroll animation can trail the viewport
	// without touching its state.
	ScrollShift int

	Now time.Time
}

// Renderer draws frames of a document onto a backend.
type Renderer struct {
	store  *paragraph.Store
	layout *layout.Cache
	vp     *viewport.Viewport

	palette style.Palette
	mode    ViewMode

	lineHeight   int
	paragraphGap int
	pageHeight   int
	pageGap      int

	focusPara int
	dimAmount float64

	curPage int

	blink *CaretBlink
	fade  *FadeOverlay

	issues map[int][]spell.Issue
}

// NewRenderer creates a renderer over the store, layout cache, and
// viewport, configured from the appearance.
func NewRenderer(store *paragraph.Store, cache *layout.Cache, vp *viewport.Viewport, app config.Appearance) *Renderer {
	return &Renderer{
		store:        store,
		layout:       cache,
		vp:           vp,
		palette:      style.PaletteFor(style.ModeFromName(app.ColorMode)),
		lineHeight:   app.LineHeight,
		paragraphGap: app.ParagraphGap,
		pageHeight:   app.PageHeight,
		pageGap:      app.PageGap,
		focusPara:    -1,
		dimAmount:    app.FocusDimAmount,
		blink:        NewCaretBlink(app.BlinkInterval.Std()),
		fade:         NewFadeOverlay(app.FadeDelay.Std(), app.FadeDuration.Std()),
		issues:       make(map[int][]spell.Issue),
	}
}

// Blink exposes the caret blink cycle so cursor operations can reset it.
func (r *Renderer) Blink() *CaretBlink {
	return r.blink
}

// Fade exposes the overlay fade so input can restore opacity.
func (r *Renderer) Fade() *FadeOverlay {
	return r.fade
}

// Mode returns the current view mode.
func (r *Renderer) Mode() ViewMode {
	return r.mode
}

// SetMode switches the view mode.
func (r *Renderer) SetMode(mode ViewMode) {
	r.mode = mode
}

// SetColorMode swaps the palette.
func (r *Renderer) SetColorMode(mode style.ColorMode) {
	r.palette = style.PaletteFor(mode)
}

// Palette returns the active palette.
func (r *Renderer) Palette() style.Palette {
	return r.palette
}

// SetFocus enables focus dimming on every paragraph except para; -1
// disables it.
func (r *Renderer) SetFocus(para int) {
	r.focusPara = para
}

// SetIssues replaces the annotation underlines for paragraph i. The caller
// is responsible for dropping stale results before they reach here.
func (r *Renderer) SetIssues(i int, issues []spell.Issue) {
	if len(issues) == 0 {
		delete(r.issues, i)
		return
	}
	r.issues[i] = issues
}

// ClearIssues drops annotations for paragraph i.
func (r *Renderer) ClearIssues(i int) {
	delete(r.issues, i)
}

// Issues returns the annotations currently shown for paragraph i.
func (r *Renderer) Issues(i int) []spell.Issue {
	return r.issues[i]
}

// ParagraphHeight returns the rendered height of paragraph i in rows,
// including the trailing paragraph gap.
func (r *Renderer) ParagraphHeight(i int) int {
	return r.layout.LineCount(i)*r.lineHeight + r.paragraphGap
}

// SyncHeight publishes paragraph i's rendered height to the viewport's
// height index.
func (r *Renderer) SyncHeight(i int) {
	r.vp.Heights().SetHeight(i, r.ParagraphHeight(i))
}

// SyncAllHeights rebuilds the height index for the whole document; used
// after load and after appearance or width changes.
func (r *Renderer) SyncAllHeights() {
	n := r.store.Count()
	r.vp.Heights().Resize(n, r.lineHeight+r.paragraphGap)
	for i := 0; i < n; i++ {
		r.vp.Heights().SetHeight(i, r.ParagraphHeight(i))
	}
}

// Pagination computes the current page layout for page mode.
func (r *Renderer) Pagination() *Pagination {
	return Paginate(r.store.Count(), r.pageHeight, r.ParagraphHeight)
}

// PageCount returns the page count in page mode.
func (r *Renderer) PageCount() int {
	return r.Pagination().PageCount()
}

// CurrentPage returns the page shown in page mode.
func (r *Renderer) CurrentPage() int {
	return r.curPage
}

// GoToPage clamps and switches the shown page.
func (r *Renderer) GoToPage(page int) int {
	last := r.PageCount() - 1
	if page < 0 {
		page = 0
	}
	if page > last {
		page = last
	}
	r.curPage = page
	return r.curPage
}

// Render draws one frame onto the backend and flushes it.
func (r *Renderer) Render(b Backend, f Frame) {
	base := r.palette.Base()
	b.Clear(base)

	switch r.mode {
	case ModePage:
		r.renderPage(b, f)
	default:
		r.renderContinuous(b, f)
	}

	r.renderOverlay(b, f)
	b.Show()
}

// renderContinuous draws the paragraphs intersecting the viewport, offset
// by the frame's transient scroll shift.
func (r *Renderer) renderContinuous(b Backend, f Frame) {
	first, last := r.vp.VisibleRange()
	if f.ScrollShift != 0 {
		shown := r.vp.ScrollOffset() + f.ScrollShift
		first = r.vp.Heights().FindOffset(shown)
		last = r.vp.Heights().FindOffset(shown + r.vp.Height() - 1)
	}
	caretDrawn := false
	for i := first; i <= last && i < r.store.Count(); i++ {
		top := r.vp.ContentToScreen(r.vp.ParagraphTop(i)) - f.ScrollShift
		caretDrawn = r.renderParagraph(b, i, top, f) || caretDrawn
	}
	if !caretDrawn {
		b.HideCursor()
	}
}

// renderPage draws the paragraphs of the current page, leaving the page
// gap as a margin above the page edge.
func (r *Renderer) renderPage(b Backend, f Frame) {
	pg := r.Pagination()
	if r.curPage >= pg.PageCount() {
		r.curPage = pg.PageCount() - 1
	}
	first, last := pg.Range(r.curPage)

	caretDrawn := false
	top := r.pageGap
	for i := first; i <= last && i >= 0; i++ {
		caretDrawn = r.renderParagraph(b, i, top, f) || caretDrawn
		top += r.ParagraphHeight(i)
	}
	if !caretDrawn {
		b.HideCursor()
	}
}

// renderParagraph draws paragraph i with its top edge at screen row top.
// It returns true when it positioned the caret.
func (r *Renderer) renderParagraph(b Backend, i, top int, f Frame) bool {
	p := r.store.Paragraph(i)
	if p == nil {
		return false
	}
	pl := r.layout.Layout(i)
	_, screenH := b.Size()
	runes := []rune(p.Text)
	dimmed := r.focusPara >= 0 && i != r.focusPara
	caretDrawn := false

	for li, line := range pl.Lines {
		y := top + li*r.lineHeight
		if y >= screenH {
			break
		}
		if y < 0 {
			continue
		}
		x := r.alignPad(p.Align, line.Width)
		for off := line.Start; off < line.End; off++ {
			ch := runes[off]
			w := runewidth.RuneWidth(ch)
			if w == 0 {
				continue
			}
			b.SetContent(x, y, ch, r.cellStyle(p, i, off, f, dimmed))
			x += w
		}
		if sel := f.Selection; !sel.IsEmpty() && lineSelectedPastEnd(sel, i, line.End, len(runes)) {
			// Paint the separator cell so cross-paragraph selections
			// read as continuous.
			b.SetContent(x, y, ' ', r.palette.Base().Background(r.palette.Selection))
		}
		if f.Caret.Para == i && f.Caret.Offset >= line.Start && caretOnLine(f.Caret.Offset, line, li == len(pl.Lines)-1) {
			caretDrawn = true
			cx := r.alignPad(p.Align, line.Width) + cellWidth(runes[line.Start:f.Caret.Offset])
			if r.blink.Visible(f.Now) {
				b.ShowCursor(cx, y)
			} else {
				b.HideCursor()
			}
		}
	}
	return caretDrawn
}

// caretOnLine decides which visual line owns a caret sitting exactly on a
// wrap boundary; it belongs to the start of the next line except at
// paragraph end.
func caretOnLine(off int, line layout.Line, lastLine bool) bool {
	if off < line.End {
		return true
	}
	return off == line.End && lastLine
}

// lineSelectedPastEnd reports whether the selection extends past the last
// rune of the line at the end of paragraph i.
func lineSelectedPastEnd(sel cursor.Selection, para, lineEnd, paraLen int) bool {
	if lineEnd != paraLen {
		return false
	}
	start, end := sel.Normalized()
	pos := cursor.Position{Para: para, Offset: paraLen}
	return !pos.Before(start) && pos.Before(end)
}

// cellStyle computes the full style of one rune cell: format run flags,
// selection, annotation underlines, composition underline, focus dim.
func (r *Renderer) cellStyle(p *paragraph.Paragraph, para, off int, f Frame, dimmed bool) tcell.Style {
	fg := r.palette.Text
	bg := r.palette.Background

	st := style.ForRun(tcell.StyleDefault, p.StyleAt(off))

	if issue := r.issueAt(para, off); issue != nil {
		st = st.Underline(true)
		if issue.Kind == spell.KindGrammar {
			fg = r.palette.Grammar
		} else {
			fg = r.palette.Annotation
		}
	}

	if f.Caret.Para == para && off >= f.CompositionStart && off < f.CompositionEnd {
		st = st.Underline(true)
	}

	if !f.Selection.IsEmpty() && f.Selection.Contains(cursor.Position{Para: para, Offset: off}) {
		bg = r.palette.Selection
	}

	if dimmed {
		fg = r.palette.Dim(fg, r.dimAmount)
	}
	return st.Foreground(fg).Background(bg)
}

// issueAt returns the annotation covering rune offset off in paragraph
// para, or nil.
func (r *Renderer) issueAt(para, off int) *spell.Issue {
	for i := range r.issues[para] {
		iss := &r.issues[para][i]
		if off >= iss.Start && off < iss.End {
			return iss
		}
	}
	return nil
}

// alignPad returns the left padding for a line of the given width under
// the paragraph alignment.
func (r *Renderer) alignPad(a paragraph.Alignment, lineWidth int) int {
	content := r.layout.Width()
	pad := content - lineWidth
	if pad <= 0 {
		return 0
	}
	switch a {
	case paragraph.AlignCenter:
		return pad / 2
	case paragraph.AlignRight:
		return pad
	default:
		return 0
	}
}

// renderOverlay draws the fading status text in the bottom-right corner.
func (r *Renderer) renderOverlay(b Backend, f Frame) {
	if f.Overlay == "" {
		return
	}
	alpha := r.fade.Alpha(f.Now)
	if alpha <= 0 {
		return
	}
	w, h := b.Size()
	st := tcell.StyleDefault.
		Foreground(r.palette.FadeAlpha(alpha)).
		Background(r.palette.Background)

	x := w - runewidth.StringWidth(f.Overlay) - 1
	if x < 0 {
		x = 0
	}
	y := h - 1
	for _, ch := range f.Overlay {
		cw := runewidth.RuneWidth(ch)
		if cw == 0 {
			continue
		}
		b.SetContent(x, y, ch, st)
		x += cw
	}
}

func cellWidth(runes []rune) int {
	w := 0
	for _, r := range runes {
		w += runewidth.RuneWidth(r)
	}
	return w
}
