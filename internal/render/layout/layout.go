// Package layout computes per-paragraph line-break layout: grapheme-aware
// greedy word wrap producing visual lines measured in screen cells.
//
// Layouts are cached per paragraph index and invalidated only when that
// paragraph's text or the wrap width changes, never globally on a
// keystroke.
package layout

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Line is one visual line of a wrapped paragraph, as a [Start, End) rune
// span and its rendered cell width.
type Line struct {
	Start int
	End   int
	Width int
}

// ParagraphLayout is the wrap result for one paragraph.
type ParagraphLayout struct {
	Lines []Line
}

// LineCount returns the number of visual lines; never zero.
func (pl *ParagraphLayout) LineCount() int {
	return len(pl.Lines)
}

// Wrap computes the visual lines of text at the given cell width. An empty
// text yields a single empty line so every paragraph occupies vertical
// space.
func Wrap(text string, width int) *ParagraphLayout {
	if width < 1 {
		width = 1
	}
	if text == "" {
		return &ParagraphLayout{Lines: []Line{{}}}
	}

	var lines []Line
	lineStart := 0  // rune offset of current line start
	lineWidth := 0  // cells used on current line
	breakRune := -1 // rune offset just after the last breakable cluster
	breakWidth := 0 // line width at the break point

	runeOff := 0
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		cluster := gr.Str()
		runes := gr.Runes()
		w := runewidth.StringWidth(cluster)

		if lineWidth+w > width && lineWidth > 0 {
			// Overflow: break at the last space if the line has one,
			// otherwise hard-break before this cluster.
			if breakRune > lineStart {
				lines = append(lines, Line{Start: lineStart, End: breakRune, Width: breakWidth})
				lineWidth -= breakWidth
				lineStart = breakRune
			} else {
				lines = append(lines, Line{Start: lineStart, End: runeOff, Width: lineWidth})
				lineStart = runeOff
				lineWidth = 0
			}
			breakRune = -1
		}

		lineWidth += w
		runeOff += len(runes)
		if isBreakable(cluster) {
			breakRune = runeOff
			breakWidth = lineWidth
		}
	}

	lines = append(lines, Line{Start: lineStart, End: runeOff, Width: lineWidth})
	return &ParagraphLayout{Lines: lines}
}

// isBreakable reports whether a line may break after the cluster.
func isBreakable(cluster string) bool {
	return cluster == " " || cluster == "\t"
}
