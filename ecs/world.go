package ecs

// membership is implemented by every Group so the world can purge a killed
// entity from all of them.
type membership interface {
	Name() string
	Remove(e Entity) bool
	Has(e Entity) bool
}

// World owns entity handles and the membership sets they belong to.
type World struct {
	entities entityStore
	groups   []membership
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{}
}

// CreateEntity allocates a new entity.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Kill removes e from every group and invalidates the handle. Killing an
// entity twice is a no-op; it returns false the second time.
func (w *World) Kill(e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, g := range w.groups {
		g.Remove(e)
	}
	return w.entities.destroy(e)
}

// Count returns the number of live entities.
func (w *World) Count() int {
	if w == nil {
		return 0
	}
	return w.entities.count()
}

// Memberships lists the names of the groups e belongs to, in registration
// order.
func (w *World) Memberships(e Entity) []string {
	if w == nil {
		return nil
	}
	var out []string
	for _, g := range w.groups {
		if g.Has(e) {
			out = append(out, g.Name())
		}
	}
	return out
}

func (w *World) register(m membership) {
	if w == nil || m == nil {
		return
	}
	w.groups = append(w.groups, m)
}
