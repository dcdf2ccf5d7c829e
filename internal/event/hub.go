package event

import "github.com/dshills/inkwell/internal/engine/cursor"

// ContentChange describes a document mutation. Structural changes add or
// remove paragraphs; Para is the first affected paragraph index.
type ContentChange struct {
	Para       int
	Structural bool
}

// Hub groups the notification feeds the session publishes on. Zero value
// is ready to use.
type Hub struct {
	Content   Feed[ContentChange]
	Cursor    Feed[cursor.Position]
	Selection Feed[cursor.Selection]
	Scroll    Feed[int]
	ViewMode  Feed[string]
	ColorMode Feed[string]
}
