package component

import "time"

// Gate is an elapsed-time cooldown. Closing it stamps the time; Update reopens
// it once Duration has passed since that stamp. A gate holds at most one
// pending window, and closing it again restarts the window.
type Gate struct {
	Duration time.Duration

	closed   bool
	closedAt time.Duration
}

// NewGate returns an open gate with the given reopen duration.
func NewGate(d time.Duration) Gate {
	return Gate{Duration: d}
}

// Ready reports whether the gate is open.
func (g *Gate) Ready() bool {
	return g == nil || !g.closed
}

// Close shuts the gate and stamps it with at.
func (g *Gate) Close(at time.Duration) {
	if g == nil {
		return
	}
	g.closed = true
	g.closedAt = at
}

// Update reopens a closed gate once now-closedAt >= Duration. It reports
// whether the gate reopened during this call.
func (g *Gate) Update(now time.Duration) bool {
	if g == nil || !g.closed {
		return false
	}
	if now-g.closedAt < g.Duration {
		return false
	}
	g.closed = false
	return true
}

// Remaining returns how long until a closed gate may reopen.
func (g *Gate) Remaining(now time.Duration) time.Duration {
	if g == nil || !g.closed {
		return 0
	}
	left := g.Duration - (now - g.closedAt)
	if left < 0 {
		return 0
	}
	return left
}
