// Package timing paces the frame loop and keeps the animation clock.
package timing

// Clock is the scene time. It advances by scaled frame time and stands
// still while paused, so pausing freezes every animation in place.
type Clock struct {
	scale   float64
	paused  bool
	elapsed float64
}

// NewClock creates a running clock. A non-positive scale is treated as 1.
func NewClock(scale float64, paused bool) *Clock {
	if scale <= 0 {
		scale = 1
	}
	return &Clock{scale: scale, paused: paused}
}

// Advance moves the clock by dt real seconds and returns the scene time.
func (c *Clock) Advance(dt float64) float64 {
	if !c.paused && dt > 0 {
		c.elapsed += dt * c.scale
	}
	return c.elapsed
}

// Toggle pauses or resumes the clock and reports whether it is now paused.
func (c *Clock) Toggle() bool {
	c.paused = !c.paused
	return c.paused
}

// Paused reports whether the clock is stopped.
func (c *Clock) Paused() bool {
	return c.paused
}

// Elapsed returns the scene time in seconds.
func (c *Clock) Elapsed() float64 {
	return c.elapsed
}

// Reset sets the scene time back to zero.
func (c *Clock) Reset() {
	c.elapsed = 0
}
