package common

import "github.com/jakecoffman/cp"

// Rect is an axis-aligned box in world pixels. Y grows downward.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// NewRect returns a rect with its top-left corner at (x, y).
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, Width: w, Height: h}
}

// RectAround returns a w*h rect centered on c.
func RectAround(c cp.Vector, w, h float64) Rect {
	return Rect{X: c.X - w/2, Y: c.Y - h/2, Width: w, Height: h}
}

func (r Rect) Left() float64   { return r.X }
func (r Rect) Right() float64  { return r.X + r.Width }
func (r Rect) Top() float64    { return r.Y }
func (r Rect) Bottom() float64 { return r.Y + r.Height }

func (r *Rect) SetLeft(v float64)   { r.X = v }
func (r *Rect) SetRight(v float64)  { r.X = v - r.Width }
func (r *Rect) SetTop(v float64)    { r.Y = v }
func (r *Rect) SetBottom(v float64) { r.Y = v - r.Height }

// Center returns the midpoint of the rect.
func (r Rect) Center() cp.Vector {
	return cp.Vector{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// SetCenter moves the rect so its midpoint is c.
func (r *Rect) SetCenter(c cp.Vector) {
	r.X = c.X - r.Width/2
	r.Y = c.Y - r.Height/2
}

func (r Rect) MidLeft() cp.Vector   { return cp.Vector{X: r.X, Y: r.Y + r.Height/2} }
func (r Rect) MidRight() cp.Vector  { return cp.Vector{X: r.Right(), Y: r.Y + r.Height/2} }
func (r Rect) MidTop() cp.Vector    { return cp.Vector{X: r.X + r.Width/2, Y: r.Y} }
func (r Rect) MidBottom() cp.Vector { return cp.Vector{X: r.X + r.Width/2, Y: r.Bottom()} }

func (r *Rect) SetMidLeft(p cp.Vector)   { r.X, r.Y = p.X, p.Y-r.Height/2 }
func (r *Rect) SetMidRight(p cp.Vector)  { r.X, r.Y = p.X-r.Width, p.Y-r.Height/2 }
func (r *Rect) SetMidTop(p cp.Vector)    { r.X, r.Y = p.X-r.Width/2, p.Y }
func (r *Rect) SetMidBottom(p cp.Vector) { r.X, r.Y = p.X-r.Width/2, p.Y-r.Height }

// Inflate grows the rect by dx and dy in total while keeping its center.
// Negative values shrink it.
func (r Rect) Inflate(dx, dy float64) Rect {
	return Rect{
		X:      r.X - dx/2,
		Y:      r.Y - dy/2,
		Width:  r.Width + dx,
		Height: r.Height + dy,
	}
}

// Intersects reports whether the two rects overlap with positive area.
// Rects that only share an edge do not intersect.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.Width &&
		r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height &&
		r.Y+r.Height > other.Y
}

// BB converts the rect to a chipmunk bounding box (B is the minimum Y).
func (r Rect) BB() cp.BB {
	return cp.BB{L: r.X, B: r.Y, R: r.Right(), T: r.Bottom()}
}

// RectFromBB is the inverse of Rect.BB.
func RectFromBB(bb cp.BB) Rect {
	return Rect{X: bb.L, Y: bb.B, Width: bb.R - bb.L, Height: bb.T - bb.B}
}
