package cursor

import "time"

// Default click detection window.
const (
	defaultClickInterval = 500 * time.Millisecond
	defaultClickDistance = 3 // screen cells
)

// ClickTracker turns a stream of pointer presses into single, double, and
// triple clicks using a bounded time-and-distance window between successive
// presses.
type ClickTracker struct {
	interval time.Duration
	distance int

	lastTime time.Time
	lastX    int
	lastY    int
	count    int
}

// NewClickTracker creates a tracker with the default window.
func NewClickTracker() *ClickTracker {
	return &ClickTracker{interval: defaultClickInterval, distance: defaultClickDistance}
}

// Click records a pointer press at screen cell (x, y) and returns the click
// count: 1 for single, 2 for double, 3 for triple. The count cycles back to
// 1 after a triple click.
func (c *ClickTracker) Click(x, y int, at time.Time) int {
	within := !c.lastTime.IsZero() &&
		at.Sub(c.lastTime) <= c.interval &&
		abs(x-c.lastX) <= c.distance &&
		abs(y-c.lastY) <= c.distance

	if within && c.count < 3 {
		c.count++
	} else {
		c.count = 1
	}

	c.lastTime = at
	c.lastX, c.lastY = x, y
	return c.count
}

// Reset clears the click history.
func (c *ClickTracker) Reset() {
	c.lastTime = time.Time{}
	c.count = 0
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
