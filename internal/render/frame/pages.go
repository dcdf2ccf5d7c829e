package frame

// Pagination assigns whole paragraphs to fixed-height pages. A paragraph
// that would straddle a page boundary moves down to the next page; pages
// never split a paragraph.
type Pagination struct {
	pageOf []int    // paragraph index -> page
	ranges [][2]int // page -> inclusive paragraph range
}

// Paginate lays out count paragraphs onto pages of pageHeight rows using
// heightOf for per-paragraph heights. Paragraphs taller than a page get a
// page to themselves.
func Paginate(count, pageHeight int, heightOf func(i int) int) *Pagination {
	if pageHeight < 1 {
		pageHeight = 1
	}
	p := &Pagination{pageOf: make([]int, count)}

	used := 0
	first := 0
	for i := 0; i < count; i++ {
		h := heightOf(i)
		if used+h > pageHeight && used > 0 {
			p.ranges = append(p.ranges, [2]int{first, i - 1})
			first = i
			used = 0
		}
		p.pageOf[i] = len(p.ranges)
		used += h
	}
	if count > 0 {
		p.ranges = append(p.ranges, [2]int{first, count - 1})
	}
	return p
}

// PageCount returns the number of pages; at least one for a non-empty
// document.
func (p *Pagination) PageCount() int {
	return len(p.ranges)
}

// PageOf returns the page containing paragraph i.
func (p *Pagination) PageOf(i int) int {
	if i < 0 || i >= len(p.pageOf) {
		return 0
	}
	return p.pageOf[i]
}

// Range returns the inclusive paragraph range of the given page.
func (p *Pagination) Range(page int) (first, last int) {
	if page < 0 || page >= len(p.ranges) {
		return 0, -1
	}
	r := p.ranges[page]
	return r[0], r[1]
}
