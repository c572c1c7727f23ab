package ecs

// Group is a named membership set. An entity may belong to any number of
// groups; World.Kill removes it from all of them at once.
type Group[T any] struct {
	name    string
	world   *World
	members SparseSet[T]
}

// NewGroup creates a group registered with w.
func NewGroup[T any](w *World, name string) *Group[T] {
	g := &Group[T]{name: name, world: w}
	w.register(g)
	return g
}

func (g *Group[T]) Name() string {
	if g == nil {
		return ""
	}
	return g.name
}

// Add puts e in the group. Dead handles are ignored.
func (g *Group[T]) Add(e Entity, v T) bool {
	if g == nil || (g.world != nil && !g.world.IsAlive(e)) {
		return false
	}
	g.members.Set(e, v)
	return true
}

func (g *Group[T]) Remove(e Entity) bool {
	if g == nil {
		return false
	}
	return g.members.Remove(e)
}

func (g *Group[T]) Has(e Entity) bool {
	if g == nil {
		return false
	}
	return g.members.Has(e)
}

func (g *Group[T]) Get(e Entity) (T, bool) {
	if g == nil {
		var zero T
		return zero, false
	}
	return g.members.Get(e)
}

func (g *Group[T]) Len() int {
	if g == nil {
		return 0
	}
	return g.members.Len()
}

// Snapshot copies the members in insertion order. Iterating a snapshot is
// safe while the group is being modified.
func (g *Group[T]) Snapshot() []T {
	if g == nil {
		return nil
	}
	return append([]T(nil), g.members.Values()...)
}

// Entities copies the member handles in insertion order.
func (g *Group[T]) Entities() []Entity {
	if g == nil {
		return nil
	}
	return append([]Entity(nil), g.members.Entities()...)
}

// Each calls fn for every member of a snapshot, skipping members removed by
// earlier calls.
func (g *Group[T]) Each(fn func(e Entity, v T)) {
	if g == nil || fn == nil {
		return
	}
	ents := g.Entities()
	vals := g.Snapshot()
	for i, e := range ents {
		if !g.members.Has(e) {
			continue
		}
		fn(e, vals[i])
	}
}
