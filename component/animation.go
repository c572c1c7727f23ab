package component

import (
	"errors"
	"fmt"
	"image"
)

// DefaultAnimationSpeed is the per-tick cursor increment used by players,
// enemies and particles.
const DefaultAnimationSpeed = 0.15

var ErrMissingTrack = errors.New("animation: missing track")

// Track is the ordered frame list of one animation state.
type Track []image.Image

// Tracks maps a status name to its frames. Tracks are loaded once and shared
// read-only by every entity of the same kind.
type Tracks map[string]Track

// Require fails if any of names has no frames.
func (t Tracks) Require(names ...string) error {
	for _, name := range names {
		if len(t[name]) == 0 {
			return fmt.Errorf("%w: %q", ErrMissingTrack, name)
		}
	}
	return nil
}

// Animator plays named tracks with a fractional frame cursor. The cursor
// advances by Speed every tick and wraps to zero once it passes the end of the
// current track.
type Animator struct {
	Tracks Tracks
	Speed  float64

	current string
	cursor  float64
}

// NewAnimator creates an animator positioned at the start of initial.
func NewAnimator(tracks Tracks, speed float64, initial string) *Animator {
	if speed <= 0 {
		speed = DefaultAnimationSpeed
	}
	return &Animator{Tracks: tracks, Speed: speed, current: initial}
}

// Current returns the name of the playing track.
func (a *Animator) Current() string {
	if a == nil {
		return ""
	}
	return a.current
}

// Play switches tracks without touching the cursor. A cursor beyond the end of
// the new track wraps on the next Advance.
func (a *Animator) Play(name string) {
	if a == nil {
		return
	}
	a.current = name
}

// Restart rewinds the cursor to the first frame.
func (a *Animator) Restart() {
	if a == nil {
		return
	}
	a.cursor = 0
}

// Advance moves the cursor forward one tick and reports whether it wrapped.
func (a *Animator) Advance() bool {
	if a == nil {
		return false
	}
	n := len(a.Tracks[a.current])
	if n == 0 {
		return false
	}
	a.cursor += a.Speed
	if a.cursor >= float64(n) {
		a.cursor = 0
		return true
	}
	return false
}

// Cursor returns the fractional frame position.
func (a *Animator) Cursor() float64 {
	if a == nil {
		return 0
	}
	return a.cursor
}

// Index returns the integer frame position clamped to the current track.
func (a *Animator) Index() int {
	if a == nil {
		return 0
	}
	n := len(a.Tracks[a.current])
	i := int(a.cursor)
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

// Frame returns the frame under the cursor, or nil when the track is empty.
func (a *Animator) Frame() image.Image {
	if a == nil {
		return nil
	}
	track := a.Tracks[a.current]
	if len(track) == 0 {
		return nil
	}
	return track[a.Index()]
}

// FrameSize returns the pixel size of img.
func FrameSize(img image.Image) (float64, float64) {
	if img == nil {
		return 0, 0
	}
	b := img.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}
