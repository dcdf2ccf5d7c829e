package layout

import "sync"

// Source provides paragraph text to the cache. *paragraph.Store satisfies
// it.
type Source interface {
	Count() int
	PlainText(i int) string
}

// Cache lazily computes and retains paragraph layouts, keyed by paragraph
// index. An entry is recomputed when that paragraph's text no longer
// matches the cached text; width or appearance changes drop the whole
// cache. Indices, not pointers, key the cache so paragraph insertion and
// removal cannot dangle.
type Cache struct {
	mu      sync.Mutex
	source  Source
	width   int
	entries map[int]*entry
}

type entry struct {
	text   string
	layout *ParagraphLayout
}

// NewCache creates a layout cache over the source at the given wrap width.
func NewCache(source Source, width int) *Cache {
	if width < 1 {
		width = 1
	}
	return &Cache{
		source:  source,
		width:   width,
		entries: make(map[int]*entry),
	}
}

// Width returns the current wrap width.
func (c *Cache) Width() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.width
}

// SetWidth changes the wrap width, invalidating every cached layout.
func (c *Cache) SetWidth(width int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if width < 1 {
		width = 1
	}
	if width == c.width {
		return
	}
	c.width = width
	c.entries = make(map[int]*entry)
}

// Layout returns the layout for paragraph i, computing it on demand. The
// cached result is reused until the paragraph's text changes.
func (c *Cache) Layout(i int) *ParagraphLayout {
	c.mu.Lock()
	defer c.mu.Unlock()
	text := c.source.PlainText(i)
	if e, ok := c.entries[i]; ok && e.text == text {
		return e.layout
	}
	l := Wrap(text, c.width)
	c.entries[i] = &entry{text: text, layout: l}
	return l
}

// Invalidate drops the cached layout for paragraph i.
func (c *Cache) Invalidate(i int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, i)
}

// InvalidateAll drops every cached layout; used when appearance
// configuration changes.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[int]*entry)
}

// cursor.LineIndex implementation, so vertical navigation follows visual
// lines.

// LineCount returns the number of visual lines in paragraph i.
func (c *Cache) LineCount(para int) int {
	return c.Layout(para).LineCount()
}

// LineAt returns the visual line index containing rune offset off.
func (c *Cache) LineAt(para, off int) int {
	l := c.Layout(para)
	for i, line := range l.Lines {
		if off < line.End {
			return i
		}
	}
	return len(l.Lines) - 1
}

// LineRange returns the [start, end) rune span of visual line ln.
func (c *Cache) LineRange(para, ln int) (int, int) {
	l := c.Layout(para)
	if ln < 0 {
		ln = 0
	}
	if ln >= len(l.Lines) {
		ln = len(l.Lines) - 1
	}
	line := l.Lines[ln]
	return line.Start, line.End
}
