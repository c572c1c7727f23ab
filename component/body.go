package component

import (
	"math"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/overworld/common"
)

// Obstacles supplies the static boxes a body collides with.
type Obstacles interface {
	// Overlapping returns every obstacle hitbox intersecting r, in the order
	// the obstacles were added.
	Overlapping(r common.Rect) []common.Rect
}

type axis int

const (
	axisHorizontal axis = iota
	axisVertical
)

// Body is the motion capability shared by the player and enemies. Movement
// works on Hitbox; Rect is the render box and is always re-centered on the
// hitbox afterwards.
type Body struct {
	Rect      common.Rect
	Hitbox    common.Rect
	Direction cp.Vector
}

// NewBody places a body at rect with a hitbox inflated by (dx, dy).
func NewBody(rect common.Rect, dx, dy float64) Body {
	return Body{Rect: rect, Hitbox: rect.Inflate(dx, dy)}
}

// Center returns the render box center, which is also the hitbox center.
func (b *Body) Center() cp.Vector {
	return b.Rect.Center()
}

// Move normalizes Direction and displaces the hitbox by speed, resolving the
// horizontal axis before the vertical one.
func (b *Body) Move(speed float64, obstacles Obstacles) {
	if b == nil {
		return
	}
	b.Direction = common.Normalize(b.Direction)

	b.Hitbox.X += b.Direction.X * speed
	b.collide(axisHorizontal, obstacles)

	b.Hitbox.Y += b.Direction.Y * speed
	b.collide(axisVertical, obstacles)

	b.Rect.SetCenter(b.Hitbox.Center())
}

func (b *Body) collide(ax axis, obstacles Obstacles) {
	if obstacles == nil {
		return
	}
	for _, o := range obstacles.Overlapping(b.Hitbox) {
		// an earlier clamp may already have pushed the hitbox clear
		if !o.Intersects(b.Hitbox) {
			continue
		}
		switch ax {
		case axisHorizontal:
			if b.Direction.X > 0 {
				b.Hitbox.SetRight(o.Left())
			}
			if b.Direction.X < 0 {
				b.Hitbox.SetLeft(o.Right())
			}
		case axisVertical:
			if b.Direction.Y > 0 {
				b.Hitbox.SetBottom(o.Top())
			}
			if b.Direction.Y < 0 {
				b.Hitbox.SetTop(o.Bottom())
			}
		}
	}
}

// Fit resizes the render box to w*h around the hitbox center. Frames of one
// track may differ in size.
func (b *Body) Fit(w, h float64) {
	if b == nil || w <= 0 || h <= 0 {
		return
	}
	b.Rect = common.RectAround(b.Hitbox.Center(), w, h)
}

// FlickerAlpha toggles between fully opaque and fully transparent based on
// the millisecond clock.
func FlickerAlpha(now time.Duration) uint8 {
	if math.Sin(float64(now.Milliseconds())) >= 0 {
		return 255
	}
	return 0
}
