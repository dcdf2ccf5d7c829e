package config

import (
	"strings"
	"testing"
	"time"
)

func TestDefaultIsSane(t *testing.T) {
	a := Default()
	if a.LineHeight < 1 || a.ContentWidth < 10 {
		t.Errorf("defaults out of range: %+v", a)
	}
	if a.ColorMode != "dark" {
		t.Errorf("color mode = %q", a.ColorMode)
	}
}

func TestLoadReaderOverlay(t *testing.T) {
	src := `
content_width = 60
color_mode = "light"
fade_delay = "5s"
`
	a, err := LoadReader(strings.NewReader(src))
	if err != nil {
		t.Fatalf("LoadReader: %v", err)
	}
	if a.ContentWidth != 60 {
		t.Errorf("content width = %d", a.ContentWidth)
	}
	if a.ColorMode != "light" {
		t.Errorf("color mode = %q", a.ColorMode)
	}
	if a.FadeDelay.Std() != 5*time.Second {
		t.Errorf("fade delay = %v", a.FadeDelay.Std())
	}
	// Unspecified fields keep defaults.
	if a.PageHeight != Default().PageHeight {
		t.Errorf("page height = %d", a.PageHeight)
	}
}

func TestLoadReaderDurationStrings(t *testing.T) {
	src := `
blink_interval = "250ms"
fade_duration = "1.5s"
`
	a, err := LoadReader(strings.NewReader(src))
	if err != nil {
		t.Fatalf("LoadReader: %v", err)
	}
	if a.BlinkInterval.Std() != 250*time.Millisecond {
		t.Errorf("blink interval = %v", a.BlinkInterval.Std())
	}
	if a.FadeDuration.Std() != 1500*time.Millisecond {
		t.Errorf("fade duration = %v", a.FadeDuration.Std())
	}
}

func TestLoadReaderBadDuration(t *testing.T) {
	if _, err := LoadReader(strings.NewReader(`fade_delay = "soon"`)); err == nil {
		t.Error("expected error for unparseable duration")
	}
}

func TestLoadReaderMalformed(t *testing.T) {
	if _, err := LoadReader(strings.NewReader("not [valid toml")); err == nil {
		t.Error("expected error for malformed TOML")
	}
}

func TestSanitizeClampsBadValues(t *testing.T) {
	src := `
line_height = 0
content_width = 2
focus_dim_amount = 3.0
color_mode = "sepia"
`
	a, err := LoadReader(strings.NewReader(src))
	if err != nil {
		t.Fatalf("LoadReader: %v", err)
	}
	d := Default()
	if a.LineHeight != d.LineHeight || a.ContentWidth != d.ContentWidth {
		t.Errorf("metrics not clamped: %+v", a)
	}
	if a.FocusDimAmount != d.FocusDimAmount {
		t.Errorf("dim amount = %v", a.FocusDimAmount)
	}
	if a.ColorMode != "dark" {
		t.Errorf("color mode = %q", a.ColorMode)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	a, err := Load("/nonexistent/appearance.toml")
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if a != Default() {
		t.Errorf("got %+v", a)
	}
}
