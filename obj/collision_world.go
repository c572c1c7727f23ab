package obj

import (
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/overworld/common"
	"github.com/milk9111/overworld/ecs"
)

type obstacleShape struct {
	entity ecs.Entity
	hitbox common.Rect
	seq    uint64
	shape  *cp.Shape
}

// CollisionWorld indexes static obstacle hitboxes in a chipmunk space. The
// space is only used as a broadphase; no simulation step is ever run.
type CollisionWorld struct {
	space  *cp.Space
	shapes map[ecs.Entity]*obstacleShape
	seq    uint64
}

func NewCollisionWorld() *CollisionWorld {
	return &CollisionWorld{
		space:  cp.NewSpace(),
		shapes: make(map[ecs.Entity]*obstacleShape),
	}
}

// Add registers an obstacle. Adding the same entity again replaces its box
// but keeps its original insertion position.
func (cw *CollisionWorld) Add(e ecs.Entity, hitbox common.Rect) {
	if cw == nil {
		return
	}
	seq := cw.seq
	if old, ok := cw.shapes[e]; ok {
		seq = old.seq
		cw.space.RemoveShape(old.shape)
	} else {
		cw.seq++
	}
	shape := cp.NewBox2(cw.space.StaticBody, hitbox.BB(), 0)
	shape.SetSensor(true)
	o := &obstacleShape{entity: e, hitbox: hitbox, seq: seq, shape: shape}
	shape.UserData = o
	cw.space.AddShape(shape)
	cw.shapes[e] = o
}

// Remove drops an obstacle. Unknown entities are ignored.
func (cw *CollisionWorld) Remove(e ecs.Entity) bool {
	if cw == nil {
		return false
	}
	o, ok := cw.shapes[e]
	if !ok {
		return false
	}
	cw.space.RemoveShape(o.shape)
	delete(cw.shapes, e)
	return true
}

func (cw *CollisionWorld) Len() int {
	if cw == nil {
		return 0
	}
	return len(cw.shapes)
}

// Overlapping returns every obstacle hitbox strictly overlapping r, in
// insertion order.
func (cw *CollisionWorld) Overlapping(r common.Rect) []common.Rect {
	if cw == nil || len(cw.shapes) == 0 {
		return nil
	}
	var hits []*obstacleShape
	cw.space.BBQuery(r.BB(), cp.SHAPE_FILTER_ALL, func(shape *cp.Shape, _ interface{}) {
		o, ok := shape.UserData.(*obstacleShape)
		if !ok || !o.hitbox.Intersects(r) {
			return
		}
		hits = append(hits, o)
	}, nil)
	sort.Slice(hits, func(i, j int) bool { return hits[i].seq < hits[j].seq })

	out := make([]common.Rect, len(hits))
	for i, o := range hits {
		out[i] = o.hitbox
	}
	return out
}
