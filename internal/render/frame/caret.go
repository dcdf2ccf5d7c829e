package frame

import "time"

// CaretBlink computes caret visibility as a fixed-interval toggle. Any
// cursor operation calls Reset, which restarts the cycle in the visible
// phase. Visibility is a pure function of the clock so frames need no
// timer state of their own.
type CaretBlink struct {
	interval time.Duration
	epoch    time.Time
}

// NewCaretBlink creates a blink cycle with the given phase interval.
// A non-positive interval disables blinking; the caret stays visible.
func NewCaretBlink(interval time.Duration) *CaretBlink {
	return &CaretBlink{interval: interval}
}

// Reset restarts the cycle so the caret is visible at now.
func (c *CaretBlink) Reset(now time.Time) {
	c.epoch = now
}

// Visible reports whether the caret is in the visible phase at now.
func (c *CaretBlink) Visible(now time.Time) bool {
	if c.interval <= 0 {
		return true
	}
	elapsed := now.Sub(c.epoch)
	if elapsed < 0 {
		return true
	}
	return (elapsed/c.interval)%2 == 0
}
