package frame

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Sim is an in-memory backend. Tests render into it and assert on the
// resulting cell grid.
type Sim struct {
	width, height int
	runes         [][]rune
	styles        [][]tcell.Style

	cursorX, cursorY int
	cursorShown      bool
	shows            int
}

// NewSim creates a sim backend with the given dimensions.
func NewSim(width, height int) *Sim {
	s := &Sim{width: width, height: height}
	s.reset()
	return s
}

func (s *Sim) reset() {
	s.runes = make([][]rune, s.height)
	s.styles = make([][]tcell.Style, s.height)
	for y := range s.runes {
		s.runes[y] = make([]rune, s.width)
		s.styles[y] = make([]tcell.Style, s.width)
		for x := range s.runes[y] {
			s.runes[y][x] = ' '
		}
	}
}

func (s *Sim) Init() error { return nil }
func (s *Sim) Fini()       {}

func (s *Sim) Size() (int, int) {
	return s.width, s.height
}

func (s *Sim) Clear(st tcell.Style) {
	for y := range s.runes {
		for x := range s.runes[y] {
			s.runes[y][x] = ' '
			s.styles[y][x] = st
		}
	}
}

func (s *Sim) SetContent(x, y int, r rune, st tcell.Style) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	s.runes[y][x] = r
	s.styles[y][x] = st
}

func (s *Sim) ShowCursor(x, y int) {
	s.cursorX, s.cursorY = x, y
	s.cursorShown = true
}

func (s *Sim) HideCursor() {
	s.cursorShown = false
}

func (s *Sim) Show() {
	s.shows++
}

// Row returns the text of row y with trailing spaces trimmed.
func (s *Sim) Row(y int) string {
	if y < 0 || y >= s.height {
		return ""
	}
	return strings.TrimRight(string(s.runes[y]), " ")
}

// StyleAt returns the style of the cell at (x, y).
func (s *Sim) StyleAt(x, y int) tcell.Style {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return tcell.StyleDefault
	}
	return s.styles[y][x]
}

// Cursor returns the hardware cursor position and visibility.
func (s *Sim) Cursor() (x, y int, shown bool) {
	return s.cursorX, s.cursorY, s.cursorShown
}

// Shows returns how many times the surface was flushed.
func (s *Sim) Shows() int {
	return s.shows
}
