package obj

import (
	"fmt"
	"image"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/overworld/common"
	"github.com/milk9111/overworld/component"
	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/prefabs"
)

// enemyHitboxInflate shrinks the enemy hitbox vertically.
const enemyHitboxInflate = -10

// EnemyEvents is how an enemy reaches the player and the level.
type EnemyEvents interface {
	DamagePlayer(amount float64, attackType string)
	TriggerDeathParticles(pos cp.Vector, particle string)
	AddExp(amount float64)
}

// EnemyDeps are the collaborators an enemy talks to.
type EnemyDeps struct {
	Events    EnemyEvents
	Cues      component.CuePlayer
	Clock     component.Clock
	Obstacles component.Obstacles
	// OnDeath runs once after the death effects, to remove the enemy.
	OnDeath func(e *Enemy)
}

type Enemy struct {
	component.Body

	ID     ecs.Entity
	Spec   prefabs.MonsterSpec
	Status EnemyStatus
	Anim   *component.Animator
	Health component.Health

	// attackReady is closed from the end of an attack animation until the
	// monster's attack cooldown has passed since its last attack.
	attackReady component.Gate
	lastAttack  time.Duration
	knockback   cp.Vector

	alpha uint8
	dead  bool
	deps  EnemyDeps
}

// NewEnemy places an enemy with its render box top-left at pos.
func NewEnemy(id ecs.Entity, pos cp.Vector, spec prefabs.MonsterSpec, tracks component.Tracks, deps EnemyDeps) (*Enemy, error) {
	if err := tracks.Require(EnemyTracks()...); err != nil {
		return nil, fmt.Errorf("obj: monster %s: %w", spec.Name, err)
	}
	if deps.Cues == nil {
		deps.Cues = component.NopCues{}
	}
	if deps.Clock == nil {
		deps.Clock = &component.ManualClock{}
	}
	w, h := component.FrameSize(tracks[EnemyIdle.String()][0])
	rect := common.NewRect(pos.X, pos.Y, w, h)
	return &Enemy{
		Body:        component.NewBody(rect, 0, enemyHitboxInflate),
		ID:          id,
		Spec:        spec,
		Status:      EnemyIdle,
		Anim:        component.NewAnimator(tracks, component.DefaultAnimationSpeed, EnemyIdle.String()),
		Health:      component.NewHealth(spec.Health, spec.Invulnerability()),
		attackReady: component.NewGate(spec.AttackCooldown()),
		alpha:       255,
		deps:        deps,
	}, nil
}

// Update runs the body phase of a tick: knockback, movement, animation and
// cooldowns.
func (e *Enemy) Update() {
	if e.dead {
		return
	}
	now := e.deps.Clock.Now()
	if !e.Health.Vulnerable() {
		e.Direction = e.knockback.Mult(-e.Spec.Resistance)
	}
	e.Move(e.Spec.Speed, e.deps.Obstacles)
	e.animate(now)
	e.cooldowns(now)
}

func (e *Enemy) animate(now time.Duration) {
	e.Anim.Play(e.Status.String())
	if e.Anim.Advance() && e.Status == EnemyAttacking {
		e.attackReady.Close(e.lastAttack)
	}
	e.Fit(component.FrameSize(e.Anim.Frame()))

	e.alpha = 255
	if !e.Health.Vulnerable() {
		e.alpha = component.FlickerAlpha(now)
	}
}

func (e *Enemy) cooldowns(now time.Duration) {
	e.attackReady.Update(now)
	e.Health.Tick(now)
}

// EnemyUpdate runs the behavior phase of a tick against the player's center.
func (e *Enemy) EnemyUpdate(playerCenter cp.Vector) {
	if e.dead {
		return
	}
	dist, dir := common.DistanceDirection(e.Center(), playerCenter)
	e.updateStatus(dist)
	e.act(dir)
	e.CheckDeath()
}

func (e *Enemy) updateStatus(dist float64) {
	switch {
	case dist <= e.Spec.AttackRadius && e.attackReady.Ready():
		if e.Status != EnemyAttacking {
			e.Anim.Restart()
			// once per attack: each cue has a single player that Play rewinds,
			// so replaying it every tick would only restart the first sample
			e.deps.Cues.Play(component.Cue(e.Spec.AttackSound))
		}
		e.Status = EnemyAttacking
	case dist <= e.Spec.NoticeRadius:
		e.Status = EnemyChasing
	default:
		e.Status = EnemyIdle
	}
}

func (e *Enemy) act(dir cp.Vector) {
	switch e.Status {
	case EnemyAttacking:
		if e.deps.Events != nil {
			e.deps.Events.DamagePlayer(e.Spec.Damage, e.Spec.AttackType)
		}
		e.lastAttack = e.deps.Clock.Now()
	case EnemyChasing:
		e.Direction = dir
	default:
		e.Direction = cp.Vector{}
	}
}

// TakeAttack applies a player hit. It is ignored while the enemy is
// invulnerable or already dead.
func (e *Enemy) TakeAttack(a component.Attack) bool {
	if e.dead || !e.Health.Vulnerable() {
		return false
	}
	e.deps.Cues.Play(component.CueHit)
	_, e.knockback = common.DistanceDirection(e.Center(), a.Origin())
	e.Direction = e.knockback
	e.Health.TakeHit(a.Damage(), e.deps.Clock.Now())
	e.CheckDeath()
	return true
}

// CheckDeath runs the death effects once health is exhausted. Calling it
// again after death is a no-op.
func (e *Enemy) CheckDeath() bool {
	if e.dead || !e.Health.Dead() {
		return false
	}
	e.dead = true
	if e.deps.Events != nil {
		e.deps.Events.TriggerDeathParticles(e.Center(), e.Spec.Name)
		e.deps.Events.AddExp(e.Spec.Exp)
	}
	e.deps.Cues.Play(component.CueDeath)
	if e.deps.OnDeath != nil {
		e.deps.OnDeath(e)
	}
	return true
}

// CanAttack reports whether the attack cooldown has elapsed.
func (e *Enemy) CanAttack() bool { return e.attackReady.Ready() }

func (e *Enemy) Entity() ecs.Entity  { return e.ID }
func (e *Enemy) Hitbox() common.Rect { return e.Body.Hitbox }
func (e *Enemy) Alive() bool         { return e != nil && !e.dead }
func (e *Enemy) Dead() bool          { return e.dead || e.Health.Dead() }

func (e *Enemy) Frame() image.Image { return e.Anim.Frame() }

func (e *Enemy) Sprite() Sprite {
	return Sprite{Rect: e.Rect, Frame: e.Anim.Frame(), Alpha: e.alpha}
}
