package paragraph

import "unicode/utf8"

// StyleFlags is a bitmask of inline text styles.
type StyleFlags uint8

// Inline style flags.
const (
	StyleNone          StyleFlags = 0
	StyleBold          StyleFlags = 1 << iota
	StyleItalic
	StyleUnderline
	StyleStrikethrough
)

// Has returns true if the flag set contains the given style.
func (s StyleFlags) Has(flag StyleFlags) bool {
	return s&flag != 0
}

// With returns the flag set with the given style added.
func (s StyleFlags) With(flag StyleFlags) StyleFlags {
	return s | flag
}

// Without returns the flag set with the given style removed.
func (s StyleFlags) Without(flag StyleFlags) StyleFlags {
	return s &^ flag
}

// Alignment specifies paragraph alignment.
type Alignment uint8

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
	AlignJustify
)

// String returns the alignment name.
func (a Alignment) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	case AlignJustify:
		return "justify"
	default:
		return "left"
	}
}

// FormatRun is a contiguous rune range within a paragraph sharing identical
// inline styling. Runs are kept sorted, non-overlapping, and within the
// paragraph's text bounds.
type FormatRun struct {
	Start int
	End   int
	Style StyleFlags
	Font  string
}

// Len returns the run length in runes.
func (r FormatRun) Len() int {
	return r.End - r.Start
}

// sameStyle reports whether two runs carry identical styling.
func (r FormatRun) sameStyle(o FormatRun) bool {
	return r.Style == o.Style && r.Font == o.Font
}

// Kind tags the structural role of a paragraph. Paragraphs are plain
// structs with a kind tag plus data, not a class hierarchy.
type Kind uint8

const (
	KindBody Kind = iota
	KindHeading1
	KindHeading2
	KindHeading3
	KindBullet
)

// Paragraph is the atomic structural unit of document text between hard
// line breaks.
type Paragraph struct {
	Text     string
	Kind     Kind
	Runs     []FormatRun
	Align    Alignment
	Markers  []Marker
	Comments []Comment

	// runeLen caches utf8.RuneCountInString(Text).
	runeLen int
	// words caches the word count of Text.
	words int
}

// NewParagraph creates a paragraph with the given text and no formatting.
func NewParagraph(text string) *Paragraph {
	return &Paragraph{
		Text:    text,
		runeLen: utf8.RuneCountInString(text),
		words:   countWords(text),
	}
}

// Len returns the paragraph length in runes.
func (p *Paragraph) Len() int {
	return p.runeLen
}

// Words returns the cached word count of the paragraph.
func (p *Paragraph) Words() int {
	return p.words
}

// StyleAt returns the style flags in effect at the given rune offset.
func (p *Paragraph) StyleAt(off int) StyleFlags {
	for _, r := range p.Runs {
		if off >= r.Start && off < r.End {
			return r.Style
		}
		if r.Start > off {
			break
		}
	}
	return StyleNone
}

// FontAt returns the font name at rune offset off, or "" for unfonted text.
func (p *Paragraph) FontAt(off int) string {
	for _, r := range p.Runs {
		if off >= r.Start && off < r.End {
			return r.Font
		}
		if r.Start > off {
			break
		}
	}
	return ""
}

// setText replaces the paragraph text and refreshes cached lengths.
// Runs and attachments are the caller's responsibility.
func (p *Paragraph) setText(text string) {
	p.Text = text
	p.runeLen = utf8.RuneCountInString(text)
	p.words = countWords(text)
}

// clone returns a deep copy of the paragraph.
func (p *Paragraph) clone() *Paragraph {
	cp := *p
	cp.Runs = append([]FormatRun(nil), p.Runs...)
	cp.Markers = append([]Marker(nil), p.Markers...)
	cp.Comments = append([]Comment(nil), p.Comments...)
	return &cp
}

// runeSlice returns the substring covering rune offsets [start, end).
// Offsets are clamped to the text bounds.
func runeSlice(s string, start, end int) string {
	if start < 0 {
		start = 0
	}
	if end < start {
		end = start
	}
	byteStart := len(s)
	byteEnd := len(s)
	i := 0
	for bi := range s {
		if i == start {
			byteStart = bi
		}
		if i == end {
			byteEnd = bi
			break
		}
		i++
	}
	if byteStart > byteEnd {
		byteEnd = byteStart
	}
	return s[byteStart:byteEnd]
}

// runeIndex converts a rune offset to a byte offset, clamped to the text.
func runeIndex(s string, off int) int {
	if off <= 0 {
		return 0
	}
	i := 0
	for bi := range s {
		if i == off {
			return bi
		}
		i++
	}
	return len(s)
}
