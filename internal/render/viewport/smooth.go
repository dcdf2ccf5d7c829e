package viewport

import "time"

// SmoothScroller interpolates a transient display offset toward the
// authoritative scroll offset over a bounded duration. It never changes
// document or viewport state; callers sample Offset at their drawing
// cadence.
type SmoothScroller struct {
	from     int
	to       int
	start    time.Time
	duration time.Duration
	active   bool
}

// DefaultScrollDuration is the animation length for a smooth scroll.
const DefaultScrollDuration = 120 * time.Millisecond

// Start begins an animation from the current display offset to target.
func (s *SmoothScroller) Start(from, target int, now time.Time, duration time.Duration) {
	if duration <= 0 {
		duration = DefaultScrollDuration
	}
	if from == target {
		s.active = false
		s.to = target
		return
	}
	s.from = from
	s.to = target
	s.start = now
	s.duration = duration
	s.active = true
}

// Offset returns the display offset at the given time. Once the animation
// completes it returns the target exactly.
func (s *SmoothScroller) Offset(now time.Time) int {
	if !s.active {
		return s.to
	}
	elapsed := now.Sub(s.start)
	if elapsed >= s.duration {
		s.active = false
		return s.to
	}
	t := float64(elapsed) / float64(s.duration)
	// Ease-out cubic.
	t = 1 - (1-t)*(1-t)*(1-t)
	return s.from + int(float64(s.to-s.from)*t)
}

// Active reports whether an animation is in progress at the given time.
func (s *SmoothScroller) Active(now time.Time) bool {
	if s.active && now.Sub(s.start) >= s.duration {
		s.active = false
	}
	return s.active
}

// Jump stops any animation and snaps the display offset to target.
func (s *SmoothScroller) Jump(target int) {
	s.active = false
	s.to = target
}
