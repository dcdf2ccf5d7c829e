// Package config holds the appearance configuration for the editing core:
// layout metrics, view behavior, and timing for cursor blink and overlay
// fades. Values load from TOML with sensible defaults; any change to
// appearance invalidates the entire layout cache, the conservative
// interpretation when font metrics change.
package config

import (
	"fmt"
	"io"
	"os"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Duration is a time.Duration that decodes from a TOML string such as
// "500ms" or "2s". go-toml maps strings onto encoding.TextUnmarshaler, so
// timing fields use this wrapper instead of time.Duration directly.
type Duration time.Duration

// UnmarshalText parses a Go duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", string(text), err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalText renders the duration in time.Duration notation.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Appearance is the full appearance configuration.
type Appearance struct {
	// Layout metrics, in terminal cells.
	LineHeight    int `toml:"line_height"`
	ParagraphGap  int `toml:"paragraph_gap"`
	ContentWidth  int `toml:"content_width"`
	PageHeight    int `toml:"page_height"`
	PageGap       int `toml:"page_gap"`

	// View behavior.
	ColorMode         string  `toml:"color_mode"` // "dark" or "light"
	FontName          string  `toml:"font_name"`
	FocusLineFraction float64 `toml:"focus_line_fraction"` // typewriter pin point
	FocusDimAmount    float64 `toml:"focus_dim_amount"`
	SmoothScroll      bool    `toml:"smooth_scroll"`

	// Timing.
	BlinkInterval Duration `toml:"blink_interval"`
	FadeDelay     Duration `toml:"fade_delay"`
	FadeDuration  Duration `toml:"fade_duration"`
}

// Default returns the built-in appearance.
func Default() Appearance {
	return Appearance{
		LineHeight:        1,
		ParagraphGap:      1,
		ContentWidth:      72,
		PageHeight:        40,
		PageGap:           2,
		ColorMode:         "dark",
		FontName:          "default",
		FocusLineFraction: 0.4,
		FocusDimAmount:    0.6,
		SmoothScroll:      true,
		BlinkInterval:     Duration(530 * time.Millisecond),
		FadeDelay:         Duration(2 * time.Second),
		FadeDuration:      Duration(400 * time.Millisecond),
	}
}

// Load reads an appearance file, overlaying the defaults. A missing file
// is not an error; malformed TOML is.
func Load(path string) (Appearance, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("open appearance config: %w", err)
	}
	defer f.Close()
	return LoadReader(f)
}

// LoadReader decodes appearance TOML from a reader over the defaults.
func LoadReader(r io.Reader) (Appearance, error) {
	a := Default()
	dec := toml.NewDecoder(r)
	if err := dec.Decode(&a); err != nil {
		return Default(), fmt.Errorf("decode appearance config: %w", err)
	}
	return a.sanitized(), nil
}

// sanitized clamps nonsense values back to usable ones.
func (a Appearance) sanitized() Appearance {
	d := Default()
	if a.LineHeight < 1 {
		a.LineHeight = d.LineHeight
	}
	if a.ContentWidth < 10 {
		a.ContentWidth = d.ContentWidth
	}
	if a.PageHeight < 5 {
		a.PageHeight = d.PageHeight
	}
	if a.PageGap < 0 {
		a.PageGap = d.PageGap
	}
	if a.ParagraphGap < 0 {
		a.ParagraphGap = d.ParagraphGap
	}
	if a.FocusLineFraction < 0 || a.FocusLineFraction > 1 {
		a.FocusLineFraction = d.FocusLineFraction
	}
	if a.FocusDimAmount < 0 || a.FocusDimAmount > 1 {
		a.FocusDimAmount = d.FocusDimAmount
	}
	if a.BlinkInterval <= 0 {
		a.BlinkInterval = d.BlinkInterval
	}
	if a.FadeDelay <= 0 {
		a.FadeDelay = d.FadeDelay
	}
	if a.FadeDuration <= 0 {
		a.FadeDuration = d.FadeDuration
	}
	if a.ColorMode != "dark" && a.ColorMode != "light" {
		a.ColorMode = d.ColorMode
	}
	return a
}
