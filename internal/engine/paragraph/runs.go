package paragraph

import "sort"

// normalizeRuns sorts runs, clamps them to the text length, drops empty or
// unstyled runs, and merges adjacent runs with identical styling. Every run
// mutation funnels through here so the non-overlap invariant holds.
func normalizeRuns(runs []FormatRun, textLen int) []FormatRun {
	if len(runs) == 0 {
		return nil
	}

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Start < runs[j].Start
	})

	out := make([]FormatRun, 0, len(runs))
	for _, r := range runs {
		if r.Start < 0 {
			r.Start = 0
		}
		if r.End > textLen {
			r.End = textLen
		}
		if r.Start >= r.End {
			continue
		}
		if r.Style == StyleNone && r.Font == "" {
			continue
		}
		// Truncate overlap; later runs win on conflicts, but an enclosing
		// earlier run keeps its uncovered tail.
		var tail FormatRun
		if n := len(out); n > 0 {
			prev := &out[n-1]
			if r.Start < prev.End {
				if r.End < prev.End {
					tail = FormatRun{Start: r.End, End: prev.End, Style: prev.Style, Font: prev.Font}
				}
				prev.End = r.Start
				if prev.Start >= prev.End {
					out = out[:n-1]
				}
			}
		}
		out = appendRun(out, r)
		if tail.Start < tail.End {
			out = appendRun(out, tail)
		}
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

// appendRun appends r, merging it into the previous run when they abut
// with identical styling.
func appendRun(out []FormatRun, r FormatRun) []FormatRun {
	if n := len(out); n > 0 {
		prev := &out[n-1]
		if prev.End == r.Start && prev.sameStyle(r) {
			prev.End = r.End
			return out
		}
	}
	return append(out, r)
}

// splitRunsAt ensures no run straddles the given offset, splitting one in
// two if necessary.
func splitRunsAt(runs []FormatRun, off int) []FormatRun {
	for i, r := range runs {
		if r.Start < off && off < r.End {
			left := FormatRun{Start: r.Start, End: off, Style: r.Style, Font: r.Font}
			right := FormatRun{Start: off, End: r.End, Style: r.Style, Font: r.Font}
			out := append([]FormatRun(nil), runs[:i]...)
			out = append(out, left, right)
			return append(out, runs[i+1:]...)
		}
	}
	return runs
}

// applyStyle adds or removes a style flag over the rune range [start, end).
// Uncovered gaps in the range get a fresh run when adding.
func applyStyle(runs []FormatRun, start, end int, flag StyleFlags, on bool, textLen int) []FormatRun {
	if start < 0 {
		start = 0
	}
	if end > textLen {
		end = textLen
	}
	if start >= end {
		return runs
	}

	runs = splitRunsAt(runs, start)
	runs = splitRunsAt(runs, end)

	var out []FormatRun
	pos := start
	for _, r := range runs {
		if r.End <= start || r.Start >= end {
			out = append(out, r)
			continue
		}
		// Run is fully inside [start, end) after splitting.
		if on && r.Start > pos {
			out = append(out, FormatRun{Start: pos, End: r.Start, Style: flag})
		}
		if on {
			r.Style = r.Style.With(flag)
		} else {
			r.Style = r.Style.Without(flag)
		}
		out = append(out, r)
		pos = r.End
	}
	if on && pos < end {
		out = append(out, FormatRun{Start: pos, End: end, Style: flag})
	}

	return normalizeRuns(out, textLen)
}

// applyFont sets the font name over the rune range [start, end); an empty
// name clears it. Uncovered gaps in the range get a fresh font-only run
// when setting.
func applyFont(runs []FormatRun, start, end int, font string, textLen int) []FormatRun {
	if start < 0 {
		start = 0
	}
	if end > textLen {
		end = textLen
	}
	if start >= end {
		return runs
	}

	runs = splitRunsAt(runs, start)
	runs = splitRunsAt(runs, end)

	var out []FormatRun
	pos := start
	for _, r := range runs {
		if r.End <= start || r.Start >= end {
			out = append(out, r)
			continue
		}
		if font != "" && r.Start > pos {
			out = append(out, FormatRun{Start: pos, End: r.Start, Font: font})
		}
		r.Font = font
		out = append(out, r)
		pos = r.End
	}
	if font != "" && pos < end {
		out = append(out, FormatRun{Start: pos, End: end, Font: font})
	}

	return normalizeRuns(out, textLen)
}

// rangeHasStyle reports whether every rune in [start, end) carries the flag.
// An empty range reports false.
func rangeHasStyle(runs []FormatRun, start, end int, flag StyleFlags) bool {
	if start >= end {
		return false
	}
	pos := start
	for _, r := range runs {
		if r.End <= pos {
			continue
		}
		if r.Start > pos {
			return false // uncovered gap
		}
		if !r.Style.Has(flag) {
			return false
		}
		pos = r.End
		if pos >= end {
			return true
		}
	}
	return pos >= end
}

// shiftRunsInsert adjusts runs for an insertion of n runes at off. A run
// containing the insertion point grows so typing inside styled text stays
// styled.
func shiftRunsInsert(runs []FormatRun, off, n int) []FormatRun {
	var out []FormatRun
	for _, r := range runs {
		switch {
		case r.End <= off:
			out = append(out, r)
		case r.Start >= off:
			r.Start += n
			r.End += n
			out = append(out, r)
		default:
			// off strictly inside the run: grow it.
			r.End += n
			out = append(out, r)
		}
	}
	return out
}

// shiftRunsDelete adjusts runs for a deletion of the rune range [start, end).
func shiftRunsDelete(runs []FormatRun, start, end int, textLen int) []FormatRun {
	n := end - start
	var out []FormatRun
	for _, r := range runs {
		switch {
		case r.End <= start:
			out = append(out, r)
		case r.Start >= end:
			r.Start -= n
			r.End -= n
			out = append(out, r)
		default:
			// Overlap: cut the deleted span out of the run.
			if r.Start > start {
				r.Start = start
			}
			if r.End > end {
				r.End -= n
			} else {
				r.End = start
			}
			if r.Start < r.End {
				out = append(out, r)
			}
		}
	}
	return normalizeRuns(out, textLen)
}
