package ecs

// entityStore tracks entity generations and free ids. Slot 0 is reserved so
// the zero Entity is never alive.
type entityStore struct {
	gen  []generation
	live []bool
	free []entityID
}

func (s *entityStore) create() Entity {
	if s == nil {
		return NoEntity
	}
	if len(s.gen) == 0 {
		s.gen = append(s.gen, 0)
		s.live = append(s.live, false)
	}
	var id entityID
	if n := len(s.free); n > 0 {
		id = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		id = entityID(len(s.gen))
		s.gen = append(s.gen, 0)
		s.live = append(s.live, false)
	}
	s.live[id] = true
	return makeEntity(id, s.gen[id])
}

func (s *entityStore) destroy(e Entity) bool {
	if !s.isAlive(e) {
		return false
	}
	id := e.id()
	s.live[id] = false
	s.gen[id]++
	s.free = append(s.free, id)
	return true
}

func (s *entityStore) isAlive(e Entity) bool {
	if s == nil || !e.Valid() || int(e.id()) >= len(s.gen) {
		return false
	}
	return s.live[e.id()] && s.gen[e.id()] == e.generation()
}

func (s *entityStore) count() int {
	if s == nil {
		return 0
	}
	n := 0
	for _, alive := range s.live {
		if alive {
			n++
		}
	}
	return n
}
