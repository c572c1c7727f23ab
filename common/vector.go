package common

import "github.com/jakecoffman/cp"

// Normalize returns v scaled to unit length. The zero vector is returned
// unchanged.
func Normalize(v cp.Vector) cp.Vector {
	l := v.Length()
	if l == 0 {
		return cp.Vector{}
	}
	return cp.Vector{X: v.X / l, Y: v.Y / l}
}

// IsZero reports whether both components are exactly zero.
func IsZero(v cp.Vector) bool {
	return v.X == 0 && v.Y == 0
}

// DistanceDirection returns the distance from a to b and the unit vector
// pointing from a to b. The direction is zero when the points coincide.
func DistanceDirection(a, b cp.Vector) (float64, cp.Vector) {
	d := b.Sub(a)
	dist := d.Length()
	if dist == 0 {
		return 0, cp.Vector{}
	}
	return dist, cp.Vector{X: d.X / dist, Y: d.Y / dist}
}
