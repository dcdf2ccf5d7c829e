// Package style maps document formatting onto terminal styles: format-run
// flags to tcell attributes, color modes to palettes, and the dimming and
// fading math used by focus mode and timed overlays.
package style

import (
	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/inkwell/internal/engine/paragraph"
)

// ColorMode selects the light or dark palette.
type ColorMode uint8

const (
	ModeDark ColorMode = iota
	ModeLight
)

// String returns the mode name.
func (m ColorMode) String() string {
	if m == ModeLight {
		return "light"
	}
	return "dark"
}

// ModeFromName parses a configured mode name; unknown names map to dark.
func ModeFromName(name string) ColorMode {
	if name == "light" {
		return ModeLight
	}
	return ModeDark
}

// Palette holds the colors one color mode renders with.
type Palette struct {
	Text       tcell.Color
	Background tcell.Color
	Selection  tcell.Color
	Annotation tcell.Color // spelling underline
	Grammar    tcell.Color // grammar underline
	Overlay    tcell.Color // distraction-free overlay text
	Caret      tcell.Color
}

// PaletteFor returns the palette for a color mode.
func PaletteFor(mode ColorMode) Palette {
	if mode == ModeLight {
		return Palette{
			Text:       tcell.NewHexColor(0x202020),
			Background: tcell.NewHexColor(0xf5f1e8),
			Selection:  tcell.NewHexColor(0xc8d8f0),
			Annotation: tcell.NewHexColor(0xc03020),
			Grammar:    tcell.NewHexColor(0x2060c0),
			Overlay:    tcell.NewHexColor(0x606060),
			Caret:      tcell.NewHexColor(0x202020),
		}
	}
	return Palette{
		Text:       tcell.NewHexColor(0xd8d4c8),
		Background: tcell.NewHexColor(0x1c1c22),
		Selection:  tcell.NewHexColor(0x2c405c),
		Annotation: tcell.NewHexColor(0xe06050),
		Grammar:    tcell.NewHexColor(0x5090e0),
		Overlay:    tcell.NewHexColor(0x909090),
		Caret:      tcell.NewHexColor(0xe8e4d8),
	}
}

// Base returns the palette's default text style.
func (p Palette) Base() tcell.Style {
	return tcell.StyleDefault.Foreground(p.Text).Background(p.Background)
}

// ForRun applies format-run flags to a base style.
func ForRun(base tcell.Style, flags paragraph.StyleFlags) tcell.Style {
	if flags.Has(paragraph.StyleBold) {
		base = base.Bold(true)
	}
	if flags.Has(paragraph.StyleItalic) {
		base = base.Italic(true)
	}
	if flags.Has(paragraph.StyleUnderline) {
		base = base.Underline(true)
	}
	if flags.Has(paragraph.StyleStrikethrough) {
		base = base.StrikeThrough(true)
	}
	return base
}

// Blend mixes two terminal colors in perceptual color space. t=0 yields a,
// t=1 yields b.
func Blend(a, b tcell.Color, t float64) tcell.Color {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	ca := toColorful(a)
	cb := toColorful(b)
	return fromColorful(ca.BlendLab(cb, t))
}

// Dim fades a foreground toward the background; focus mode renders
// non-focused text with amount around 0.6.
func (p Palette) Dim(fg tcell.Color, amount float64) tcell.Color {
	return Blend(fg, p.Background, amount)
}

// FadeAlpha maps an overlay opacity in [0,1] onto the overlay text color;
// fully transparent text disappears into the background.
func (p Palette) FadeAlpha(alpha float64) tcell.Color {
	return Blend(p.Background, p.Overlay, alpha)
}

func toColorful(c tcell.Color) colorful.Color {
	r, g, b := c.RGB()
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

func fromColorful(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
