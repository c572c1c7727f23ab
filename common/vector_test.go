package common

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	inputs := []cp.Vector{
		{X: 1, Y: 0},
		{X: 1, Y: 1},
		{X: -1, Y: 1},
		{X: 0, Y: -7},
		{X: 3, Y: 4},
		{X: 0.001, Y: -0.002},
	}
	for _, v := range inputs {
		n := Normalize(v)
		assert.InDelta(t, 1.0, n.Length(), 1e-9, "normalize(%v)", v)
	}

	assert.Equal(t, cp.Vector{}, Normalize(cp.Vector{}))
}

func TestDistanceDirection(t *testing.T) {
	dist, dir := DistanceDirection(cp.Vector{X: 0, Y: 0}, cp.Vector{X: 3, Y: 4})
	assert.Equal(t, 5.0, dist)
	assert.InDelta(t, 0.6, dir.X, 1e-9)
	assert.InDelta(t, 0.8, dir.Y, 1e-9)

	dist, dir = DistanceDirection(cp.Vector{X: 2, Y: 2}, cp.Vector{X: 2, Y: 2})
	assert.Zero(t, dist)
	assert.True(t, IsZero(dir))
}
