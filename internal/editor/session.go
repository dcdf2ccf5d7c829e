// Package editor wires the engine together behind a single command
// surface: one Session owns the paragraph store, cursor, history, search,
// viewport, renderer, clipboard, and spell service, and exposes the
// operations a host binds keys to.
package editor

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dshills/inkwell/internal/clipboard"
	"github.com/dshills/inkwell/internal/config"
	"github.com/dshills/inkwell/internal/engine/cursor"
	"github.com/dshills/inkwell/internal/engine/editbuffer"
	"github.com/dshills/inkwell/internal/engine/history"
	"github.com/dshills/inkwell/internal/engine/paragraph"
	"github.com/dshills/inkwell/internal/engine/search"
	"github.com/dshills/inkwell/internal/event"
	"github.com/dshills/inkwell/internal/render/frame"
	"github.com/dshills/inkwell/internal/render/layout"
	"github.com/dshills/inkwell/internal/render/style"
	"github.com/dshills/inkwell/internal/render/viewport"
	"github.com/dshills/inkwell/internal/spell"
)

// ErrBusy rejects a mutation issued from inside another mutation, such as
// a notification callback editing the document it was notified about.
var ErrBusy = errors.New("editor: re-entrant mutation rejected")

// historyDepth bounds the undo stack.
const historyDepth = 200

// Session is the live editing state of one document.
type Session struct {
	app    config.Appearance
	logger *slog.Logger

	store    *paragraph.Store
	buf      *editbuffer.Buffer // created on first edit
	layout   *layout.Cache
	vp       *viewport.Viewport
	nav      *cursor.Navigator
	hist     *history.Stack
	searcher *search.Engine
	renderer *frame.Renderer
	clip     clipboard.Clipboard
	spellSvc *spell.Service

	hub    event.Hub
	clicks *cursor.ClickTracker
	comp   cursor.Composition
	smooth viewport.SmoothScroller

	// compLen is the rune length of the preedit text provisionally
	// inserted at the composition start.
	compLen int

	editing    bool
	generation uint64
	paraGen    map[int]uint64

	typewriter bool
	focusMode  bool
}

// NewSession creates a session over an empty document. A nil clipboard
// gets an in-memory one; a nil logger discards.
func NewSession(app config.Appearance, clip clipboard.Clipboard, logger *slog.Logger) *Session {
	if clip == nil {
		clip = clipboard.NewMemory()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Session{
		app:      app,
		logger:   logger,
		hist:     history.NewStack(historyDepth),
		searcher: search.NewEngine(),
		clip:     clip,
		spellSvc: spell.NewService(spell.NewChecker(), logger),
		clicks:   cursor.NewClickTracker(),
		paraGen:  make(map[int]uint64),
	}
	s.install(paragraph.New())
	return s
}

// install points the session at a new store, rebuilding every component
// that holds a reference to the old one.
func (s *Session) install(store *paragraph.Store) {
	s.store = store
	s.buf = nil
	s.layout = layout.NewCache(store, s.app.ContentWidth)
	s.vp = viewport.New(1, store.Count(), s.app.LineHeight+s.app.ParagraphGap)
	s.nav = cursor.NewNavigator(store, s.layout)
	s.renderer = frame.NewRenderer(store, s.layout, s.vp, s.app)
	s.renderer.SyncAllHeights()
	s.hist.Clear()
	s.smooth.Jump(0)
	s.comp.Cancel()
	s.compLen = 0
	s.generation++
	s.paraGen = make(map[int]uint64)
}

// buffer returns the edit buffer, creating it on the first mutation.
func (s *Session) buffer() *editbuffer.Buffer {
	if s.buf == nil {
		s.buf = editbuffer.New(s.store)
	}
	return s.buf
}

// Store exposes the paragraph store for read access.
func (s *Session) Store() *paragraph.Store {
	return s.store
}

// Hub returns the notification feeds.
func (s *Session) Hub() *event.Hub {
	return &s.hub
}

// Renderer exposes the frame renderer.
func (s *Session) Renderer() *frame.Renderer {
	return s.renderer
}

// Selection returns the current selection.
func (s *Session) Selection() cursor.Selection {
	return s.nav.Selection()
}

// Position returns the caret position.
func (s *Session) Position() cursor.Position {
	return s.nav.Position()
}

// CanUndo reports whether an undo entry exists.
func (s *Session) CanUndo() bool { return s.hist.CanUndo() }

// CanRedo reports whether a redo entry exists.
func (s *Session) CanRedo() bool { return s.hist.CanRedo() }

// begin takes the mutation guard.
func (s *Session) begin() error {
	if s.editing {
		return ErrBusy
	}
	s.editing = true
	return nil
}

func (s *Session) end() {
	s.editing = false
}

// mutated refreshes derived state after a document change starting at
// paragraph first. Structural changes renumber paragraphs, so their
// cached heights, annotations, and generations all rebuild.
func (s *Session) mutated(first int, structural bool) {
	s.generation++

	if structural {
		s.renderer.SyncAllHeights()
		for i := range s.paraGen {
			s.renderer.ClearIssues(i)
			s.spellSvc.Forget(i)
		}
		s.paraGen = make(map[int]uint64)
		for i := 0; i < s.store.Count(); i++ {
			s.paraGen[i] = s.generation
		}
	} else {
		s.layout.Invalidate(first)
		s.renderer.SyncHeight(first)
		s.paraGen[first] = s.generation
	}

	s.nav.Revalidate()
	s.checkParagraph(s.nav.Position().Para)
	s.hub.Content.Publish(event.ContentChange{Para: first, Structural: structural})
	s.caretMoved(false)
}

// caretMoved refreshes caret-derived state: blink phase, scroll position,
// focus paragraph, and notifications. clearPending drops a pending format
// that was never typed into.
func (s *Session) caretMoved(clearPending bool) {
	if clearPending && s.buf != nil {
		s.buf.ClearPending()
	}
	s.renderer.Blink().Reset(time.Now())
	s.scrollCaretIntoView()
	if s.focusMode {
		s.renderer.SetFocus(s.nav.Position().Para)
	}
	s.hub.Cursor.Publish(s.nav.Position())
	s.hub.Selection.Publish(s.nav.Selection())
}

// caretContentY returns the content row of the caret's visual line.
func (s *Session) caretContentY() int {
	pos := s.nav.Position()
	line := s.layout.LineAt(pos.Para, pos.Offset)
	return s.vp.ParagraphTop(pos.Para) + line*s.app.LineHeight
}

func (s *Session) scrollCaretIntoView() {
	y := s.caretContentY()
	if s.typewriter {
		s.vp.CenterOn(y, s.app.FocusLineFraction)
	} else {
		s.vp.ScrollIntoView(y, y+s.app.LineHeight)
	}
	// Caret motion snaps; only explicit scrolling animates.
	s.smooth.Jump(s.vp.ScrollOffset())
	s.hub.Scroll.Publish(s.vp.ScrollOffset())
}

// animateScroll retargets the smooth scroller at the new authoritative
// offset, starting from wherever the display currently sits. With smooth
// scrolling off it snaps instead.
func (s *Session) animateScroll() {
	target := s.vp.ScrollOffset()
	if !s.app.SmoothScroll {
		s.smooth.Jump(target)
		return
	}
	now := time.Now()
	s.smooth.Start(s.smooth.Offset(now), target, now, viewport.DefaultScrollDuration)
}

// Render draws one frame onto the backend.
func (s *Session) Render(b frame.Backend, now time.Time) {
	f := frame.Frame{
		Selection: s.nav.Selection(),
		Caret:     s.nav.Position(),
		Overlay:   s.overlayText(now),
		Now:       now,
	}
	if s.comp.Active() {
		start := s.comp.Start()
		f.CompositionStart = start.Offset
		f.CompositionEnd = start.Offset + s.compLen
	}
	if s.app.SmoothScroll {
		f.ScrollShift = s.smooth.Offset(now) - s.vp.ScrollOffset()
	}
	s.renderer.Render(b, f)
}

// overlayText is the distraction-free status line: word count and clock.
func (s *Session) overlayText(now time.Time) string {
	return fmt.Sprintf("%d words  %s", s.store.WordCount(), now.Format("15:04"))
}

// SetViewportSize resizes the drawing surface. Width changes rewrap the
// document and republish paragraph heights.
func (s *Session) SetViewportSize(width, height int) {
	if width > s.app.ContentWidth {
		width = s.app.ContentWidth
	}
	if width < 1 {
		width = 1
	}
	if width != s.layout.Width() {
		s.layout.SetWidth(width)
		s.renderer.SyncAllHeights()
	}
	s.vp.SetViewportSize(height)
	s.smooth.Jump(s.vp.ScrollOffset())
}

// ScrollBy shifts the scroll offset without moving the caret, animating
// the display toward it when smooth scrolling is on.
func (s *Session) ScrollBy(delta int) {
	s.vp.ScrollBy(delta)
	s.animateScroll()
	s.hub.Scroll.Publish(s.vp.ScrollOffset())
}

// ScrollTo sets the absolute scroll offset, animating like ScrollBy.
func (s *Session) ScrollTo(offset int) {
	s.vp.SetScrollOffset(offset)
	s.animateScroll()
	s.hub.Scroll.Publish(s.vp.ScrollOffset())
}

// SetViewMode switches between continuous and page display.
func (s *Session) SetViewMode(mode frame.ViewMode) {
	if mode == s.renderer.Mode() {
		return
	}
	s.renderer.SetMode(mode)
	if mode == frame.ModePage {
		s.renderer.GoToPage(s.renderer.Pagination().PageOf(s.nav.Position().Para))
	}
	s.hub.ViewMode.Publish(mode.String())
}

// SetColorMode swaps the palette at runtime.
func (s *Session) SetColorMode(mode style.ColorMode) {
	s.renderer.SetColorMode(mode)
	s.hub.ColorMode.Publish(mode.String())
}

// SetTypewriter toggles typewriter scrolling, which pins the caret line
// at a fixed viewport fraction.
func (s *Session) SetTypewriter(on bool) {
	s.typewriter = on
	s.scrollCaretIntoView()
}

// SetFocusMode toggles focus dimming of every paragraph but the caret's.
func (s *Session) SetFocusMode(on bool) {
	s.focusMode = on
	if on {
		s.renderer.SetFocus(s.nav.Position().Para)
	} else {
		s.renderer.SetFocus(-1)
	}
}

// PageCount returns the page count in page mode.
func (s *Session) PageCount() int { return s.renderer.PageCount() }

// CurrentPage returns the displayed page in page mode.
func (s *Session) CurrentPage() int { return s.renderer.CurrentPage() }

// GoToPage jumps page mode to the given page and moves the caret to its
// first paragraph.
func (s *Session) GoToPage(page int) {
	page = s.renderer.GoToPage(page)
	first, _ := s.renderer.Pagination().Range(page)
	if first >= 0 {
		s.nav.SetPosition(cursor.Position{Para: first})
		s.caretMoved(true)
	}
}

// checkParagraph schedules a spell check of paragraph i at its current
// generation.
func (s *Session) checkParagraph(i int) {
	gen, ok := s.paraGen[i]
	if !ok {
		gen = s.generation
		s.paraGen[i] = gen
	}
	s.spellSvc.Request(i, gen, s.store.PlainText(i))
}

// PumpSpell applies any completed spell results without blocking. Results
// whose generation no longer matches the paragraph are dropped.
func (s *Session) PumpSpell() {
	for {
		select {
		case res := <-s.spellSvc.Results():
			if gen, ok := s.paraGen[res.Index]; ok && gen == res.Generation {
				s.renderer.SetIssues(res.Index, res.Issues)
			} else {
				s.logger.Debug("stale spell result dropped",
					"paragraph", res.Index, "generation", res.Generation)
			}
		default:
			return
		}
	}
}
