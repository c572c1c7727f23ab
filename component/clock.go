package component

import "time"

// Clock reports monotonic game time measured from an arbitrary start.
type Clock interface {
	Now() time.Duration
}

// RealClock reads the wall clock's monotonic reading.
type RealClock struct {
	start time.Time
}

// NewRealClock starts a clock at zero.
func NewRealClock() *RealClock {
	return &RealClock{start: time.Now()}
}

func (c *RealClock) Now() time.Duration {
	return time.Since(c.start)
}

// ManualClock only moves when told to. Tools and tests drive it per tick.
type ManualClock struct {
	now time.Duration
}

func (c *ManualClock) Now() time.Duration {
	if c == nil {
		return 0
	}
	return c.now
}

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	if c == nil || d < 0 {
		return
	}
	c.now += d
}

// Set jumps the clock to t. Time never moves backward.
func (c *ManualClock) Set(t time.Duration) {
	if c == nil || t < c.now {
		return
	}
	c.now = t
}
