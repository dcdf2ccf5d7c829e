// Package viewport tracks the currently visible slice of the document:
// a scroll offset, an available drawing height, and the derived paragraph
// range intersecting the visible area.
package viewport

import "sync"

// Viewport owns the authoritative scroll offset and the cumulative height
// index used to resolve visible paragraph ranges.
type Viewport struct {
	mu sync.RWMutex

	offset  int // authoritative scroll offset, logical units
	height  int // visible height
	heights *HeightIndex
}

// New creates a viewport of the given height over n paragraphs of
// defaultParaHeight each.
func New(height, n, defaultParaHeight int) *Viewport {
	if height < 1 {
		height = 1
	}
	return &Viewport{
		height:  height,
		heights: NewHeightIndex(n, defaultParaHeight),
	}
}

// Heights exposes the height index so layout can publish paragraph heights.
func (v *Viewport) Heights() *HeightIndex {
	return v.heights
}

// Height returns the visible height.
func (v *Viewport) Height() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.height
}

// SetViewportSize updates the available drawing height and re-clamps the
// scroll offset.
func (v *Viewport) SetViewportSize(height int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if height < 1 {
		height = 1
	}
	v.height = height
	v.offset = v.clamp(v.offset)
}

// ScrollOffset returns the authoritative scroll offset.
func (v *Viewport) ScrollOffset() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.offset
}

// SetScrollOffset sets the scroll offset, clamped to [0, maxScrollOffset].
// Returns the clamped value.
func (v *Viewport) SetScrollOffset(offset int) int {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.offset = v.clamp(offset)
	return v.offset
}

// ScrollBy shifts the scroll offset by delta, clamped.
func (v *Viewport) ScrollBy(delta int) int {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.offset = v.clamp(v.offset + delta)
	return v.offset
}

// MaxScrollOffset returns totalContentHeight - viewportHeight, floored at 0.
func (v *Viewport) MaxScrollOffset() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.maxScroll()
}

// VisibleRange returns the inclusive range of paragraph indices
// intersecting the visible area.
func (v *Viewport) VisibleRange() (first, last int) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	first = v.heights.FindOffset(v.offset)
	last = v.heights.FindOffset(v.offset + v.height - 1)
	return first, last
}

// ParagraphTop returns the top edge of paragraph i in content coordinates.
func (v *Viewport) ParagraphTop(i int) int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.heights.PrefixSum(i)
}

// ContentToScreen converts a content y coordinate to a screen row relative
// to the viewport top.
func (v *Viewport) ContentToScreen(y int) int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return y - v.offset
}

// ScreenToContent converts a screen row to a content y coordinate.
func (v *Viewport) ScreenToContent(row int) int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return row + v.offset
}

// ScrollIntoView adjusts the scroll offset just enough to make the content
// span [top, bottom) visible.
func (v *Viewport) ScrollIntoView(top, bottom int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	switch {
	case top < v.offset:
		v.offset = v.clamp(top)
	case bottom > v.offset+v.height:
		v.offset = v.clamp(bottom - v.height)
	}
}

// CenterOn recenters the scroll offset so content y sits at the given
// fraction of the viewport height; typewriter mode pins the cursor line
// this way.
func (v *Viewport) CenterOn(y int, fraction float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	v.offset = v.clamp(y - int(float64(v.height)*fraction))
}

func (v *Viewport) maxScroll() int {
	max := v.heights.Total() - v.height
	if max < 0 {
		return 0
	}
	return max
}

func (v *Viewport) clamp(offset int) int {
	if offset < 0 {
		return 0
	}
	if max := v.maxScroll(); offset > max {
		return max
	}
	return offset
}
