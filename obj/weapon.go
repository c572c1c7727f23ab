package obj

import (
	"image"
	"path"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/overworld/common"
	"github.com/milk9111/overworld/component"
	"github.com/milk9111/overworld/ecs"
)

// WeaponFrame names the image of a weapon held in a facing direction.
func WeaponFrame(weapon string, f Facing) string {
	return path.Join(GraphicsDir, "weapons", weapon, f.String()+".png")
}

// Weapon is the attack hitbox of a melee swing. It lives until the player's
// attack cooldown ends.
type Weapon struct {
	ID     ecs.Entity
	Name   string
	Facing Facing
	Rect   common.Rect
	Frame  image.Image

	owner *Player
	dead  bool
}

// NewWeapon places the weapon frame against the side of the player it faces.
func NewWeapon(id ecs.Entity, owner *Player, frame image.Image) *Weapon {
	w, h := component.FrameSize(frame)
	wp := &Weapon{
		ID:     id,
		Name:   owner.CurrentWeapon().Name,
		Facing: owner.Status.Facing,
		Rect:   common.NewRect(0, 0, w, h),
		Frame:  frame,
		owner:  owner,
	}
	pr := owner.Rect
	switch wp.Facing {
	case FacingRight:
		wp.Rect.SetMidLeft(pr.MidRight().Add(cp.Vector{X: 0, Y: 16}))
	case FacingLeft:
		wp.Rect.SetMidRight(pr.MidLeft().Add(cp.Vector{X: 0, Y: 16}))
	case FacingDown:
		wp.Rect.SetMidTop(pr.MidBottom().Add(cp.Vector{X: -10, Y: 0}))
	default:
		wp.Rect.SetMidBottom(pr.MidTop().Add(cp.Vector{X: -10, Y: 0}))
	}
	return wp
}

func (w *Weapon) Entity() ecs.Entity  { return w.ID }
func (w *Weapon) Hitbox() common.Rect { return w.Rect }
func (w *Weapon) Alive() bool         { return w != nil && !w.dead }

func (w *Weapon) Kind() component.AttackKind { return component.AttackWeapon }

// Damage is read from the owner at hit time.
func (w *Weapon) Damage() float64 { return w.owner.WeaponDamage() }

func (w *Weapon) Origin() cp.Vector { return w.owner.Center() }

func (w *Weapon) Sprite() Sprite {
	return Sprite{Rect: w.Rect, Frame: w.Frame, Alpha: 255}
}
