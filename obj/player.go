package obj

import (
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/overworld/common"
	"github.com/milk9111/overworld/component"
	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/prefabs"
)

var ErrEmptyLoadout = errors.New("obj: player needs at least one weapon and one spell")

// PlayerEvents is how the player asks the level to create and remove its
// attacks.
type PlayerEvents interface {
	CreateAttack()
	DestroyAttack()
	CreateMagic(style string, strength, cost float64)
}

// PlayerDeps are the collaborators a player talks to.
type PlayerDeps struct {
	Events    PlayerEvents
	Cues      component.CuePlayer
	Clock     component.Clock
	Obstacles component.Obstacles
}

type Player struct {
	component.Body

	ID     ecs.Entity
	Status PlayerStatus
	Anim   *component.Animator

	Stats       Stats
	MaxStats    Stats
	UpgradeCost Stats
	Health      component.Health
	Energy      float64
	Exp         float64

	WeaponIndex int
	MagicIndex  int

	weapons []prefabs.WeaponSpec
	spells  []prefabs.SpellSpec

	attacking      component.Gate
	weaponSwitch   component.Gate
	magicSwitch    component.Gate
	attackCooldown time.Duration

	upgradeRatio float64
	costRatio    float64
	regenRate    float64
	attackCue    component.Cue

	alpha uint8
	deps  PlayerDeps
}

// NewPlayer places the player with its render box top-left at pos.
func NewPlayer(id ecs.Entity, pos cp.Vector, spec prefabs.PlayerSpec, weapons []prefabs.WeaponSpec, spells []prefabs.SpellSpec, tracks component.Tracks, deps PlayerDeps) (*Player, error) {
	if err := tracks.Require(PlayerTracks()...); err != nil {
		return nil, fmt.Errorf("obj: player: %w", err)
	}
	if len(weapons) == 0 || len(spells) == 0 {
		return nil, ErrEmptyLoadout
	}
	if deps.Cues == nil {
		deps.Cues = component.NopCues{}
	}
	if deps.Clock == nil {
		deps.Clock = &component.ManualClock{}
	}

	status := PlayerStatus{Facing: FacingDown, Phase: PhaseIdle}
	w, h := component.FrameSize(tracks[status.Track()][0])
	rect := common.NewRect(pos.X, pos.Y, w, h)

	p := &Player{
		Body:   component.NewBody(rect, spec.HitboxInflate.X, spec.HitboxInflate.Y),
		ID:     id,
		Status: status,
		Anim:   component.NewAnimator(tracks, component.DefaultAnimationSpeed, status.Track()),

		Stats:       statsFromSpec(spec.Stats),
		MaxStats:    statsFromSpec(spec.MaxStats),
		UpgradeCost: statsFromSpec(spec.UpgradeCost),
		Exp:         spec.StartExp,

		weapons: weapons,
		spells:  spells,

		attackCooldown: spec.AttackCooldown(),
		weaponSwitch:   component.NewGate(spec.SwitchCooldown()),
		magicSwitch:    component.NewGate(spec.SwitchCooldown()),

		upgradeRatio: spec.UpgradeRatio,
		costRatio:    spec.CostRatio,
		regenRate:    spec.EnergyRegenRate,
		attackCue:    component.Cue(spec.AttackSound),

		alpha: 255,
		deps:  deps,
	}
	p.Health = component.NewHealth(p.Stats[StatHealth]*spec.StartHealthRatio, spec.Invulnerability())
	p.Energy = p.Stats[StatEnergy] * spec.StartEnergyRatio
	return p, nil
}

// Update runs one tick: input, cooldowns, status, animation, movement and
// energy recovery.
func (p *Player) Update(in Input) {
	now := p.deps.Clock.Now()
	p.input(in, now)
	p.cooldowns(now)
	p.updateStatus()
	p.animate(now)
	p.Move(p.Stats[StatSpeed], p.deps.Obstacles)
	p.recoverEnergy()
}

func (p *Player) input(in Input, now time.Duration) {
	if p.Attacking() {
		p.Direction = cp.Vector{}
		return
	}

	switch {
	case in.Up:
		p.Direction.Y = -1
		p.Status.Facing = FacingUp
	case in.Down:
		p.Direction.Y = 1
		p.Status.Facing = FacingDown
	default:
		p.Direction.Y = 0
	}

	// horizontal input is read last so it decides facing on diagonals
	switch {
	case in.Right:
		p.Direction.X = 1
		p.Status.Facing = FacingRight
	case in.Left:
		p.Direction.X = -1
		p.Status.Facing = FacingLeft
	default:
		p.Direction.X = 0
	}

	if in.Attack {
		p.startAttack(now)
		if p.deps.Events != nil {
			p.deps.Events.CreateAttack()
		}
		p.deps.Cues.Play(p.attackCue)
	}

	if in.Magic {
		p.startAttack(now)
		spell := p.CurrentSpell()
		if p.deps.Events != nil {
			p.deps.Events.CreateMagic(spell.Name, spell.Strength+p.Stats[StatMagic], spell.Cost)
		}
	}

	if in.NextWeapon && p.weaponSwitch.Ready() {
		p.weaponSwitch.Close(now)
		p.WeaponIndex = (p.WeaponIndex + 1) % len(p.weapons)
	}

	if in.NextSpell && p.magicSwitch.Ready() {
		p.magicSwitch.Close(now)
		p.MagicIndex = (p.MagicIndex + 1) % len(p.spells)
	}
}

func (p *Player) startAttack(now time.Duration) {
	p.attacking.Duration = p.attackCooldown + p.CurrentWeapon().Cooldown()
	p.attacking.Close(now)
}

func (p *Player) cooldowns(now time.Duration) {
	if p.attacking.Update(now) && p.deps.Events != nil {
		p.deps.Events.DestroyAttack()
	}
	p.weaponSwitch.Update(now)
	p.magicSwitch.Update(now)
	p.Health.Tick(now)
}

func (p *Player) updateStatus() {
	switch {
	case p.Attacking():
		p.Direction = cp.Vector{}
		p.Status.Phase = PhaseAttacking
	case common.IsZero(p.Direction):
		p.Status.Phase = PhaseIdle
	default:
		p.Status.Phase = PhaseMoving
	}
}

func (p *Player) animate(now time.Duration) {
	if track := p.Status.Track(); p.Anim.Current() != track {
		p.Anim.Play(track)
	}
	p.Anim.Advance()
	p.Fit(component.FrameSize(p.Anim.Frame()))

	p.alpha = 255
	if !p.Health.Vulnerable() {
		p.alpha = component.FlickerAlpha(now)
	}
}

func (p *Player) recoverEnergy() {
	max := p.Stats[StatEnergy]
	if p.Energy < max {
		p.Energy += p.regenRate * p.Stats[StatMagic]
	}
	if p.Energy > max {
		p.Energy = max
	}
}

// Attacking reports whether an attack or spell is still in its cooldown.
func (p *Player) Attacking() bool {
	return !p.attacking.Ready()
}

// CanSwitchWeapon and CanSwitchMagic report the switch gates for the HUD.
func (p *Player) CanSwitchWeapon() bool { return p.weaponSwitch.Ready() }
func (p *Player) CanSwitchMagic() bool  { return p.magicSwitch.Ready() }

func (p *Player) CurrentWeapon() prefabs.WeaponSpec {
	return p.weapons[p.WeaponIndex%len(p.weapons)]
}

func (p *Player) CurrentSpell() prefabs.SpellSpec {
	return p.spells[p.MagicIndex%len(p.spells)]
}

// SetLoadout swaps the weapon and spell tables, keeping the selections in
// range.
func (p *Player) SetLoadout(weapons []prefabs.WeaponSpec, spells []prefabs.SpellSpec) {
	if len(weapons) > 0 {
		p.weapons = weapons
		p.WeaponIndex %= len(weapons)
	}
	if len(spells) > 0 {
		p.spells = spells
		p.MagicIndex %= len(spells)
	}
}

// WeaponDamage is the damage of a weapon hit.
func (p *Player) WeaponDamage() float64 {
	return p.Stats[StatAttack] + p.CurrentWeapon().Damage
}

// MagicDamage is the damage of a spell hit.
func (p *Player) MagicDamage() float64 {
	return p.Stats[StatMagic] + p.CurrentSpell().Strength
}

// TakeDamage applies an enemy hit unless the player is invulnerable.
func (p *Player) TakeDamage(amount float64) bool {
	return p.Health.TakeHit(amount, p.deps.Clock.Now())
}

// Upgrade raises stat if the player has enough exp and the stat is below
// its maximum.
func (p *Player) Upgrade(stat Stat) bool {
	if stat < 0 || stat >= statCount {
		return false
	}
	cost := p.UpgradeCost[stat]
	if p.Exp < cost || p.Stats[stat] >= p.MaxStats[stat] {
		return false
	}
	p.Exp -= cost
	p.Stats[stat] *= p.upgradeRatio
	if p.Stats[stat] > p.MaxStats[stat] {
		p.Stats[stat] = p.MaxStats[stat]
	}
	p.UpgradeCost[stat] *= p.costRatio
	return true
}

func (p *Player) AddExp(amount float64) {
	p.Exp += amount
	if p.Exp < 0 {
		p.Exp = 0
	}
}

func (p *Player) Frame() image.Image {
	return p.Anim.Frame()
}

func (p *Player) Alpha() uint8 {
	return p.alpha
}

func (p *Player) Sprite() Sprite {
	return Sprite{Rect: p.Rect, Frame: p.Anim.Frame(), Alpha: p.alpha}
}
