package markup

import (
	"testing"

	"github.com/dshills/inkwell/internal/engine/paragraph"
)

func TestParseHeadings(t *testing.T) {
	st, err := Parse("# One\n\n## Two\n\n### Three\n\nbody")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if st.Count() != 4 {
		t.Fatalf("Count() = %d, want 4", st.Count())
	}
	wantKinds := []paragraph.Kind{
		paragraph.KindHeading1,
		paragraph.KindHeading2,
		paragraph.KindHeading3,
		paragraph.KindBody,
	}
	wantText := []string{"One", "Two", "Three", "body"}
	for i, k := range wantKinds {
		p := st.Paragraph(i)
		if p.Kind != k {
			t.Errorf("paragraph %d kind = %d, want %d", i, p.Kind, k)
		}
		if p.Text != wantText[i] {
			t.Errorf("paragraph %d text = %q, want %q", i, p.Text, wantText[i])
		}
	}
}

func TestParseInlineStyles(t *testing.T) {
	st, err := Parse("Hello **brave** *new* ~~old~~ world")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	p := st.Paragraph(0)
	if p.Text != "Hello brave new old world" {
		t.Fatalf("text = %q", p.Text)
	}
	want := []paragraph.FormatRun{
		{Start: 6, End: 11, Style: paragraph.StyleBold},
		{Start: 12, End: 15, Style: paragraph.StyleItalic},
		{Start: 16, End: 19, Style: paragraph.StyleStrikethrough},
	}
	if len(p.Runs) != len(want) {
		t.Fatalf("runs = %+v, want %+v", p.Runs, want)
	}
	for i, r := range want {
		if p.Runs[i] != r {
			t.Errorf("run %d = %+v, want %+v", i, p.Runs[i], r)
		}
	}
}

func TestParseUnderline(t *testing.T) {
	st, err := Parse("a <u>b</u> c")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	p := st.Paragraph(0)
	if p.Text != "a b c" {
		t.Fatalf("text = %q", p.Text)
	}
	if len(p.Runs) != 1 || p.Runs[0] != (paragraph.FormatRun{Start: 2, End: 3, Style: paragraph.StyleUnderline}) {
		t.Fatalf("runs = %+v", p.Runs)
	}
}

func TestParseBullets(t *testing.T) {
	st, err := Parse("- one\n- two")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if st.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", st.Count())
	}
	for i, want := range []string{"one", "two"} {
		p := st.Paragraph(i)
		if p.Kind != paragraph.KindBullet {
			t.Errorf("paragraph %d kind = %d, want bullet", i, p.Kind)
		}
		if p.Text != want {
			t.Errorf("paragraph %d text = %q, want %q", i, p.Text, want)
		}
	}
}

func TestParseEmpty(t *testing.T) {
	st, err := Parse("")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if st.Count() != 1 || st.PlainText(0) != "" {
		t.Fatalf("empty input should yield one empty paragraph, got %d paragraphs", st.Count())
	}
}

func TestParseInvalidUTF8(t *testing.T) {
	if _, err := Parse("ok\xff"); err != ErrInvalidInput {
		t.Fatalf("Parse() error = %v, want ErrInvalidInput", err)
	}
}

func TestSerializeStyles(t *testing.T) {
	p := paragraph.NewParagraph("Hello brave world")
	p.Runs = []paragraph.FormatRun{{Start: 6, End: 11, Style: paragraph.StyleBold}}
	st := paragraph.FromParagraphs([]*paragraph.Paragraph{p})

	if got := Serialize(st); got != "Hello **brave** world" {
		t.Fatalf("Serialize() = %q", got)
	}
}

func TestRoundTripStable(t *testing.T) {
	source := "# Title\n\nHello **brave** world.\n\n- one\n- two\n\nPlain <u>tail</u>."
	st, err := Parse(source)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	first := Serialize(st)

	st2, err := Parse(first)
	if err != nil {
		t.Fatalf("reparse error = %v", err)
	}
	if second := Serialize(st2); second != first {
		t.Fatalf("round trip unstable:\nfirst  = %q\nsecond = %q", first, second)
	}
}
