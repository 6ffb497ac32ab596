package sim

import "time"

// Clock is a virtual clock starting at zero.
type Clock struct {
	// now is the elapsed virtual time.
	now time.Duration
}

// NewClock returns a clock at zero.
func NewClock() *Clock {
	return new(Clock)
}

// Sleep advances the clock by d without blocking.
func (c *Clock) Sleep(d time.Duration) {
	if d > 0 {
		c.now += d
	}
}

// Now returns the elapsed virtual time.
func (c *Clock) Now() time.Duration {
	return c.now
}
