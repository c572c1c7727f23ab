package component

import "time"

// Health tracks hit points and the post-hit invulnerability window. Current
// is allowed to drop below zero; the owner is dead once it is <= 0.
type Health struct {
	Current float64

	// Invulnerability closes on every accepted hit.
	Invulnerability Gate
}

// NewHealth creates a Health with current hit points and the given grace
// period after each hit.
func NewHealth(current float64, grace time.Duration) Health {
	return Health{Current: current, Invulnerability: NewGate(grace)}
}

// Vulnerable reports whether a hit would currently be accepted.
func (h *Health) Vulnerable() bool {
	return h != nil && h.Invulnerability.Ready()
}

// TakeHit subtracts amount and starts the invulnerability window. It is a
// no-op while the window is open. Returns true if the hit landed.
func (h *Health) TakeHit(amount float64, now time.Duration) bool {
	if !h.Vulnerable() {
		return false
	}
	h.Current -= amount
	h.Invulnerability.Close(now)
	return true
}

// Heal restores amount up to max.
func (h *Health) Heal(amount, max float64) {
	if h == nil || amount <= 0 {
		return
	}
	h.Current += amount
	if h.Current > max {
		h.Current = max
	}
}

// Dead reports whether hit points are exhausted.
func (h *Health) Dead() bool {
	return h != nil && h.Current <= 0
}

// Tick reopens the invulnerability window once it has elapsed.
func (h *Health) Tick(now time.Duration) {
	if h == nil {
		return
	}
	h.Invulnerability.Update(now)
}
