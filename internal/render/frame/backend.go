package frame

import "github.com/gdamore/tcell/v2"

// Backend is the drawing surface the renderer paints into. The terminal
// implementation wraps a tcell screen; the sim implementation keeps an
// in-memory grid for tests.
type Backend interface {
	// Init prepares the surface. Must be called before drawing.
	Init() error

	// Fini releases the surface and restores terminal state.
	Fini()

	// Size returns the surface dimensions in cells.
	Size() (width, height int)

	// Clear fills the surface with spaces in the given style.
	Clear(st tcell.Style)

	// SetContent places a rune at the given cell. Out-of-bounds positions
	// are ignored.
	SetContent(x, y int, r rune, st tcell.Style)

	// ShowCursor positions and shows the hardware cursor.
	ShowCursor(x, y int)

	// HideCursor hides the hardware cursor.
	HideCursor()

	// Show flushes pending changes to the display.
	Show()
}

// Terminal is the tcell-backed surface used by the real application.
type Terminal struct {
	screen tcell.Screen
}

// NewTerminal creates a terminal backend on the process tty.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Terminal{screen: screen}, nil
}

// Screen exposes the underlying tcell screen for event polling.
func (t *Terminal) Screen() tcell.Screen {
	return t.screen
}

func (t *Terminal) Init() error {
	return t.screen.Init()
}

func (t *Terminal) Fini() {
	t.screen.Fini()
}

func (t *Terminal) Size() (int, int) {
	return t.screen.Size()
}

func (t *Terminal) Clear(st tcell.Style) {
	t.screen.Fill(' ', st)
}

func (t *Terminal) SetContent(x, y int, r rune, st tcell.Style) {
	t.screen.SetContent(x, y, r, nil, st)
}

func (t *Terminal) ShowCursor(x, y int) {
	t.screen.ShowCursor(x, y)
}

func (t *Terminal) HideCursor() {
	t.screen.HideCursor()
}

func (t *Terminal) Show() {
	t.screen.Show()
}
