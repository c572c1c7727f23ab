package component

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/overworld/common"
	"github.com/milk9111/overworld/ecs"
)

// Collider is anything taking part in the combat overlap pass.
type Collider interface {
	Entity() ecs.Entity
	Hitbox() common.Rect
	Alive() bool
}

// Attack is a live attack hitbox. Damage and Origin are read at hit time so
// stat changes after the swing started still apply.
type Attack interface {
	Collider
	Kind() AttackKind
	Damage() float64
	Origin() cp.Vector
}

// Destructible targets are removed outright on contact.
type Destructible interface {
	Collider
	Destroy()
}

// Damageable targets apply their own damage rules. TakeAttack reports
// whether the hit landed; Dead is checked right after.
type Damageable interface {
	Collider
	TakeAttack(a Attack) bool
	Dead() bool
}

// CombatResolver tests every live attack against every live target.
type CombatResolver struct {
	Emitter *CombatEventEmitter

	// Recent collisions recorded during Resolve, for debug highlighting.
	Recent []CollisionRecord
}

// NewCombatResolver creates a resolver instance.
func NewCombatResolver() *CombatResolver {
	return &CombatResolver{Emitter: &CombatEventEmitter{}}
}

// Resolve runs one pass over snapshots of attacks and targets. Both sides are
// re-checked for liveness before each test, so targets destroyed earlier in
// the pass are skipped. Returns the number of hits that landed.
func (r *CombatResolver) Resolve(attacks []Attack, targets []Collider) int {
	if r == nil || len(attacks) == 0 || len(targets) == 0 {
		return 0
	}
	landed := 0
	for _, a := range attacks {
		if a == nil {
			continue
		}
		for _, t := range targets {
			if t == nil || !a.Alive() || !t.Alive() {
				continue
			}
			if !a.Hitbox().Intersects(t.Hitbox()) {
				continue
			}
			if r.apply(a, t) {
				landed++
			}
		}
	}
	return landed
}

func (r *CombatResolver) apply(a Attack, t Collider) bool {
	evt := CombatEvent{
		Attacker: a.Entity(),
		Target:   t.Entity(),
		Kind:     a.Kind(),
		Pos:      t.Hitbox().Center(),
	}
	switch target := t.(type) {
	case Destructible:
		target.Destroy()
		r.record(a, t)
		evt.Type = EventDestroyed
		r.Emitter.Emit(evt)
		return true
	case Damageable:
		if !target.TakeAttack(a) {
			return false
		}
		r.record(a, t)
		evt.Type = EventHit
		r.Emitter.Emit(evt)
		if target.Dead() {
			evt.Type = EventDeath
			r.Emitter.Emit(evt)
		}
		return true
	}
	return false
}

func (r *CombatResolver) record(a Attack, t Collider) {
	r.Recent = append(r.Recent, CollisionRecord{Hit: a.Hitbox(), Hurt: t.Hitbox(), FramesLeft: 6})
}

// CollisionRecord stores a recent collision pair for debug highlighting.
type CollisionRecord struct {
	Hit        common.Rect
	Hurt       common.Rect
	FramesLeft int
}

// TickHighlights advances and expires recent highlight records. Call once per frame.
func (r *CombatResolver) TickHighlights() {
	if r == nil || len(r.Recent) == 0 {
		return
	}
	out := r.Recent[:0]
	for _, rec := range r.Recent {
		rec.FramesLeft--
		if rec.FramesLeft > 0 {
			out = append(out, rec)
		}
	}
	r.Recent = out
}
