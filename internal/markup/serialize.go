package markup

import (
	"strings"

	"github.com/dshills/inkwell/internal/engine/paragraph"
)

// Serialize renders the store back to markdown. Paragraphs are separated
// by blank lines so a reparse reproduces the same structure.
func Serialize(store *paragraph.Store) string {
	var sb strings.Builder
	for i := 0; i < store.Count(); i++ {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		p := store.Paragraph(i)
		sb.WriteString(kindPrefix(p.Kind))
		writeStyled(&sb, p)
	}
	return sb.String()
}

func kindPrefix(k paragraph.Kind) string {
	switch k {
	case paragraph.KindHeading1:
		return "# "
	case paragraph.KindHeading2:
		return "## "
	case paragraph.KindHeading3:
		return "### "
	case paragraph.KindBullet:
		return "- "
	default:
		return ""
	}
}

// writeStyled emits paragraph text with inline markers around each run.
func writeStyled(sb *strings.Builder, p *paragraph.Paragraph) {
	text := []rune(p.Text)
	pos := 0
	for _, run := range p.Runs {
		if run.Start > pos {
			sb.WriteString(string(text[pos:run.Start]))
		}
		open, closing := markers(run.Style)
		sb.WriteString(open)
		sb.WriteString(string(text[run.Start:run.End]))
		sb.WriteString(closing)
		pos = run.End
	}
	if pos < len(text) {
		sb.WriteString(string(text[pos:]))
	}
}

// markers returns opening and closing marker strings for the flags.
// Closers mirror openers in reverse so the markers nest.
func markers(s paragraph.StyleFlags) (string, string) {
	var open, closing strings.Builder
	var closers []string
	if s.Has(paragraph.StyleStrikethrough) {
		open.WriteString("~~")
		closers = append(closers, "~~")
	}
	if s.Has(paragraph.StyleBold) {
		open.WriteString("**")
		closers = append(closers, "**")
	}
	if s.Has(paragraph.StyleItalic) {
		open.WriteString("*")
		closers = append(closers, "*")
	}
	if s.Has(paragraph.StyleUnderline) {
		open.WriteString("<u>")
		closers = append(closers, "</u>")
	}
	for i := len(closers) - 1; i >= 0; i-- {
		closing.WriteString(closers[i])
	}
	return open.String(), closing.String()
}
