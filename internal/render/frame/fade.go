package frame

import "time"

// FadeOverlay drives the opacity of the distraction-free status overlay.
// Input makes the overlay fully opaque; after an idle delay the opacity
// decays linearly to zero over the fade duration.
type FadeOverlay struct {
	delay     time.Duration
	duration  time.Duration
	lastInput time.Time
}

// NewFadeOverlay creates an overlay fade with the given idle delay and
// decay duration.
func NewFadeOverlay(delay, duration time.Duration) *FadeOverlay {
	return &FadeOverlay{delay: delay, duration: duration}
}

// Touch records input at now, restoring full opacity.
func (f *FadeOverlay) Touch(now time.Time) {
	f.lastInput = now
}

// Alpha returns the overlay opacity in [0, 1] at now.
func (f *FadeOverlay) Alpha(now time.Time) float64 {
	idle := now.Sub(f.lastInput)
	if idle <= f.delay {
		return 1
	}
	if f.duration <= 0 {
		return 0
	}
	fade := float64(idle-f.delay) / float64(f.duration)
	if fade >= 1 {
		return 0
	}
	return 1 - fade
}
