package obj

import (
	"testing"

	"github.com/milk9111/overworld/common"
	"github.com/milk9111/overworld/ecs"
	"github.com/stretchr/testify/assert"
)

func TestCollisionWorldInsertionOrder(t *testing.T) {
	cw := NewCollisionWorld()
	a := common.NewRect(64, 0, 64, 64)
	b := common.NewRect(0, 0, 64, 64)
	c := common.NewRect(32, 32, 64, 64)
	cw.Add(ecs.Entity(3), a)
	cw.Add(ecs.Entity(1), b)
	cw.Add(ecs.Entity(2), c)

	query := common.NewRect(50, 10, 30, 30)
	assert.Equal(t, []common.Rect{a, b, c}, cw.Overlapping(query))

	// replacing keeps the original slot in the order
	moved := common.NewRect(60, 0, 64, 64)
	cw.Add(ecs.Entity(3), moved)
	assert.Equal(t, []common.Rect{moved, b, c}, cw.Overlapping(query))
	assert.Equal(t, 3, cw.Len())

	assert.True(t, cw.Remove(ecs.Entity(1)))
	assert.False(t, cw.Remove(ecs.Entity(1)))
	assert.Equal(t, []common.Rect{moved, c}, cw.Overlapping(query))
}

func TestCollisionWorldIgnoresTouchingEdges(t *testing.T) {
	cw := NewCollisionWorld()
	cw.Add(ecs.Entity(1), common.NewRect(0, 0, 64, 64))

	assert.Empty(t, cw.Overlapping(common.NewRect(64, 0, 10, 10)))
	assert.Len(t, cw.Overlapping(common.NewRect(63, 0, 10, 10)), 1)
}

func TestCollisionWorldNil(t *testing.T) {
	var cw *CollisionWorld
	assert.Nil(t, cw.Overlapping(common.NewRect(0, 0, 1, 1)))
	assert.False(t, cw.Remove(1))
	assert.Zero(t, cw.Len())
}
