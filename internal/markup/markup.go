// Package markup is the interchange codec between markdown text and the
// paragraph store. Parse builds paragraphs with format runs from the
// goldmark AST; Serialize is its inverse and is round-trip stable for
// well-formed input.
//
// Inline mapping: *emphasis* is italic, **strong** is bold, ~~text~~ is
// strikethrough (GFM), and <u>text</u> carries underline through inline
// HTML.
package markup

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	gtext "github.com/yuin/goldmark/text"

	"github.com/dshills/inkwell/internal/engine/paragraph"
)

// ErrInvalidInput reports undecodable load input.
var ErrInvalidInput = errors.New("markup: input is not valid UTF-8")

var md = goldmark.New(
	goldmark.WithExtensions(extension.Strikethrough),
)

// Parse converts markdown source into a paragraph store. Empty input
// yields a valid one-paragraph document.
func Parse(source string) (*paragraph.Store, error) {
	if !utf8.ValidString(source) {
		return nil, ErrInvalidInput
	}

	src := []byte(source)
	root := md.Parser().Parse(gtext.NewReader(src))

	var paras []*paragraph.Paragraph
	for node := root.FirstChild(); node != nil; node = node.NextSibling() {
		paras = append(paras, blockParagraphs(node, src)...)
	}
	return paragraph.FromParagraphs(paras), nil
}

// blockParagraphs converts one top-level block node into paragraphs.
func blockParagraphs(node ast.Node, src []byte) []*paragraph.Paragraph {
	switch n := node.(type) {
	case *ast.Heading:
		p := inlineParagraph(n, src)
		switch n.Level {
		case 1:
			p.Kind = paragraph.KindHeading1
		case 2:
			p.Kind = paragraph.KindHeading2
		default:
			p.Kind = paragraph.KindHeading3
		}
		return []*paragraph.Paragraph{p}

	case *ast.Paragraph:
		return []*paragraph.Paragraph{inlineParagraph(n, src)}

	case *ast.TextBlock:
		return []*paragraph.Paragraph{inlineParagraph(n, src)}

	case *ast.List:
		var paras []*paragraph.Paragraph
		for item := n.FirstChild(); item != nil; item = item.NextSibling() {
			for block := item.FirstChild(); block != nil; block = block.NextSibling() {
				for _, p := range blockParagraphs(block, src) {
					p.Kind = paragraph.KindBullet
					paras = append(paras, p)
				}
			}
		}
		return paras

	case *ast.ThematicBreak:
		return []*paragraph.Paragraph{paragraph.NewParagraph("---")}

	case *ast.Blockquote, *ast.FencedCodeBlock, *ast.CodeBlock:
		// Flatten container/code blocks to body paragraphs.
		var paras []*paragraph.Paragraph
		if cb, ok := node.(interface{ Lines() *gtext.Segments }); ok && node.ChildCount() == 0 {
			var sb strings.Builder
			lines := cb.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				sb.Write(seg.Value(src))
			}
			for _, line := range strings.Split(strings.TrimRight(sb.String(), "\n"), "\n") {
				paras = append(paras, paragraph.NewParagraph(line))
			}
			return paras
		}
		for block := node.FirstChild(); block != nil; block = block.NextSibling() {
			paras = append(paras, blockParagraphs(block, src)...)
		}
		return paras

	default:
		return nil
	}
}

// inlineState accumulates text and format runs while walking inline nodes.
type inlineState struct {
	sb    strings.Builder
	runes int
	runs  []paragraph.FormatRun
}

// write appends text, recording a format run when style is active.
func (st *inlineState) write(text string, style paragraph.StyleFlags) {
	if text == "" {
		return
	}
	n := utf8.RuneCountInString(text)
	if style != paragraph.StyleNone {
		// Extend the previous run when it abuts with the same style.
		if last := len(st.runs) - 1; last >= 0 && st.runs[last].End == st.runes && st.runs[last].Style == style {
			st.runs[last].End += n
		} else {
			st.runs = append(st.runs, paragraph.FormatRun{
				Start: st.runes,
				End:   st.runes + n,
				Style: style,
			})
		}
	}
	st.sb.WriteString(text)
	st.runes += n
}

// inlineParagraph flattens a block node's inline children into a
// paragraph.
func inlineParagraph(node ast.Node, src []byte) *paragraph.Paragraph {
	st := &inlineState{}
	underline := false
	walkInline(node, src, st, paragraph.StyleNone, &underline)

	p := paragraph.NewParagraph(st.sb.String())
	p.Runs = st.runs
	return p
}

func walkInline(node ast.Node, src []byte, st *inlineState, style paragraph.StyleFlags, underline *bool) {
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		effective := style
		if *underline {
			effective = effective.With(paragraph.StyleUnderline)
		}

		switch n := child.(type) {
		case *ast.Text:
			st.write(string(n.Segment.Value(src)), effective)
			if n.SoftLineBreak() || n.HardLineBreak() {
				st.write(" ", paragraph.StyleNone)
			}

		case *ast.String:
			st.write(string(n.Value), effective)

		case *ast.Emphasis:
			flag := paragraph.StyleItalic
			if n.Level >= 2 {
				flag = paragraph.StyleBold
			}
			walkInline(n, src, st, style.With(flag), underline)

		case *east.Strikethrough:
			walkInline(n, src, st, style.With(paragraph.StyleStrikethrough), underline)

		case *ast.CodeSpan:
			walkInline(n, src, st, style, underline)

		case *ast.RawHTML:
			raw := rawHTMLValue(n, src)
			switch strings.ToLower(strings.TrimSpace(raw)) {
			case "<u>":
				*underline = true
			case "</u>":
				*underline = false
			}

		case *ast.Link:
			walkInline(n, src, st, style, underline)

		case *ast.AutoLink:
			st.write(string(n.URL(src)), effective)

		default:
			walkInline(child, src, st, style, underline)
		}
	}
}

func rawHTMLValue(n *ast.RawHTML, src []byte) string {
	var sb strings.Builder
	for i := 0; i < n.Segments.Len(); i++ {
		seg := n.Segments.At(i)
		sb.Write(seg.Value(src))
	}
	return sb.String()
}
