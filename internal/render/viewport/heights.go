package viewport

// HeightIndex maintains per-paragraph pixel heights in a Fenwick (binary
// indexed) tree so prefix sums and offset lookups are O(log n) in the
// paragraph count. Locating the visible range after a scroll change never
// rescans the document linearly.
type HeightIndex struct {
	tree    []int // 1-based Fenwick tree of heights
	heights []int
	total   int

	// probes counts tree node visits, exposed for operation-count bounds
	// in tests.
	probes int
}

// NewHeightIndex creates an index for n paragraphs, each starting at
// defaultHeight.
func NewHeightIndex(n, defaultHeight int) *HeightIndex {
	h := &HeightIndex{
		tree:    make([]int, n+1),
		heights: make([]int, n),
	}
	for i := 0; i < n; i++ {
		h.heights[i] = defaultHeight
		h.add(i, defaultHeight)
	}
	h.total = n * defaultHeight
	return h
}

// Len returns the number of paragraphs tracked.
func (h *HeightIndex) Len() int {
	return len(h.heights)
}

// Total returns the total content height.
func (h *HeightIndex) Total() int {
	return h.total
}

// Height returns the height of paragraph i.
func (h *HeightIndex) Height(i int) int {
	if i < 0 || i >= len(h.heights) {
		return 0
	}
	return h.heights[i]
}

// SetHeight updates the height of paragraph i.
func (h *HeightIndex) SetHeight(i, height int) {
	if i < 0 || i >= len(h.heights) || height < 0 {
		return
	}
	delta := height - h.heights[i]
	if delta == 0 {
		return
	}
	h.heights[i] = height
	h.total += delta
	h.add(i, delta)
}

// Resize rebuilds the index for a new paragraph count, preserving heights
// of surviving indices and assigning defaultHeight to new ones. Structural
// edits (split/merge) go through here.
func (h *HeightIndex) Resize(n, defaultHeight int) {
	old := h.heights
	h.tree = make([]int, n+1)
	h.heights = make([]int, n)
	h.total = 0
	for i := 0; i < n; i++ {
		height := defaultHeight
		if i < len(old) {
			height = old[i]
		}
		h.heights[i] = height
		h.add(i, height)
		h.total += height
	}
}

// PrefixSum returns the sum of heights of paragraphs [0, i), i.e. the top
// edge of paragraph i. O(log n).
func (h *HeightIndex) PrefixSum(i int) int {
	if i < 0 {
		return 0
	}
	if i > len(h.heights) {
		i = len(h.heights)
	}
	sum := 0
	for ; i > 0; i -= i & (-i) {
		sum += h.tree[i]
		h.probes++
	}
	return sum
}

// FindOffset returns the index of the paragraph containing vertical offset
// y. Offsets at or past the total height return the last paragraph.
// O(log n) via a Fenwick descent.
func (h *HeightIndex) FindOffset(y int) int {
	n := len(h.heights)
	if n == 0 {
		return 0
	}
	if y < 0 {
		return 0
	}
	if y >= h.total {
		return n - 1
	}

	// Largest power of two <= n.
	logn := 1
	for logn<<1 <= n {
		logn <<= 1
	}

	idx := 0
	for step := logn; step > 0; step >>= 1 {
		h.probes++
		next := idx + step
		if next <= n && h.tree[next] <= y {
			y -= h.tree[next]
			idx = next
		}
	}
	// idx is the count of paragraphs fully above y.
	if idx >= n {
		idx = n - 1
	}
	return idx
}

// ResetProbes clears the visit counter and returns its prior value.
func (h *HeightIndex) ResetProbes() int {
	p := h.probes
	h.probes = 0
	return p
}

// add applies a delta at index i (0-based) through the tree.
func (h *HeightIndex) add(i, delta int) {
	for j := i + 1; j <= len(h.heights); j += j & (-j) {
		h.tree[j] += delta
	}
}
