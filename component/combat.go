package component

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/overworld/ecs"
)

// AttackKind selects the damage formula applied by a hit.
type AttackKind int

const (
	AttackWeapon AttackKind = iota
	AttackMagic
)

func (k AttackKind) String() string {
	switch k {
	case AttackWeapon:
		return "weapon"
	case AttackMagic:
		return "magic"
	default:
		return "unknown"
	}
}

// CombatEventType defines the kind of combat event.
type CombatEventType string

const (
	EventHit       CombatEventType = "hit"
	EventDestroyed CombatEventType = "destroyed"
	EventDeath     CombatEventType = "death"
)

// CombatEvent is emitted during combat resolution.
type CombatEvent struct {
	Type     CombatEventType
	Attacker ecs.Entity
	Target   ecs.Entity
	Kind     AttackKind
	Pos      cp.Vector
}

// CombatEventHandler handles combat events.
type CombatEventHandler func(evt CombatEvent)

// CombatEventEmitter allows components to emit combat events.
type CombatEventEmitter struct {
	Handlers []CombatEventHandler
}

// Emit sends a combat event to all handlers.
func (e *CombatEventEmitter) Emit(evt CombatEvent) {
	if e == nil || len(e.Handlers) == 0 {
		return
	}
	for _, h := range e.Handlers {
		if h != nil {
			h(evt)
		}
	}
}
