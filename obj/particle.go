package obj

import (
	"fmt"
	"image"
	"math/rand"
	"path"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/overworld/assets"
	"github.com/milk9111/overworld/common"
	"github.com/milk9111/overworld/component"
	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/prefabs"
)

const particleTrack = "play"

// GraphicsDir is the asset subdirectory that table graphic paths are
// relative to.
const GraphicsDir = "graphics"

// Particle plays a frame set once around a fixed center, then removes itself.
// A particle with an owner is also a magic attack hitbox for its lifetime.
type Particle struct {
	ID     ecs.Entity
	Name   string
	Anim   *component.Animator
	Center cp.Vector
	Rect   common.Rect

	owner *Player
	done  bool
}

func newParticle(name string, frames component.Track, center cp.Vector) *Particle {
	p := &Particle{
		Name:   name,
		Anim:   component.NewAnimator(component.Tracks{particleTrack: frames}, component.DefaultAnimationSpeed, particleTrack),
		Center: center,
	}
	p.fit()
	return p
}

func (p *Particle) fit() {
	w, h := component.FrameSize(p.Anim.Frame())
	p.Rect = common.RectAround(p.Center, w, h)
}

// Update advances the animation. It reports true once the animation has
// played through.
func (p *Particle) Update() bool {
	if p.done {
		return true
	}
	if p.Anim.Advance() {
		p.done = true
		return true
	}
	p.fit()
	return false
}

func (p *Particle) Done() bool { return p.done }

func (p *Particle) Entity() ecs.Entity  { return p.ID }
func (p *Particle) Hitbox() common.Rect { return p.Rect }
func (p *Particle) Alive() bool         { return p != nil && !p.done }

func (p *Particle) Kind() component.AttackKind { return component.AttackMagic }

func (p *Particle) Damage() float64 {
	if p.owner == nil {
		return 0
	}
	return p.owner.MagicDamage()
}

func (p *Particle) Origin() cp.Vector {
	if p.owner == nil {
		return p.Center
	}
	return p.owner.Center()
}

// IsAttack reports whether the particle deals damage.
func (p *Particle) IsAttack() bool { return p.owner != nil }

func (p *Particle) Frame() image.Image { return p.Anim.Frame() }

func (p *Particle) Sprite() Sprite {
	return Sprite{Rect: p.Rect, Frame: p.Anim.Frame(), Alpha: 255}
}

// ParticleSink takes ownership of new particles.
type ParticleSink interface {
	AddParticle(p *Particle)
}

// AnimationPlayer resolves particle effects to frames and hands new
// particles to a sink.
type AnimationPlayer struct {
	Lookup func(name string) (prefabs.ParticleSpec, error)
	Assets assets.Provider
	Rand   *rand.Rand
	Sink   ParticleSink

	variants map[string][]component.Track
}

// Track returns the frames of one variant of the named effect, chosen at
// random when the effect has several.
func (ap *AnimationPlayer) Track(name string) (component.Track, error) {
	variants, err := ap.load(name)
	if err != nil {
		return nil, err
	}
	if len(variants) == 1 || ap.Rand == nil {
		return variants[0], nil
	}
	return variants[ap.Rand.Intn(len(variants))], nil
}

func (ap *AnimationPlayer) load(name string) ([]component.Track, error) {
	if v, ok := ap.variants[name]; ok {
		return v, nil
	}
	if ap.Lookup == nil || ap.Assets == nil {
		return nil, fmt.Errorf("obj: particle %q: %w", name, prefabs.ErrUnknownParticle)
	}
	spec, err := ap.Lookup(name)
	if err != nil {
		return nil, err
	}
	var variants []component.Track
	for _, folder := range spec.Folders {
		folder = path.Join(GraphicsDir, folder)
		frames, err := ap.Assets.Frames(folder)
		if err != nil {
			return nil, fmt.Errorf("obj: particle %q: %w", name, err)
		}
		variants = append(variants, frames)
		if spec.Mirror {
			mirrored, err := ap.Assets.MirroredFrames(folder)
			if err != nil {
				return nil, fmt.Errorf("obj: particle %q: %w", name, err)
			}
			variants = append(variants, mirrored)
		}
	}
	if len(variants) == 0 {
		return nil, fmt.Errorf("obj: particle %q has no folders: %w", name, prefabs.ErrEmptyTable)
	}
	if ap.variants == nil {
		ap.variants = make(map[string][]component.Track)
	}
	ap.variants[name] = variants
	return variants, nil
}

// CreateParticles spawns one decorative effect centered on pos.
func (ap *AnimationPlayer) CreateParticles(name string, pos cp.Vector) (*Particle, error) {
	return ap.spawn(name, pos, nil)
}

// CreateGrassParticles spawns one leaf effect centered on pos.
func (ap *AnimationPlayer) CreateGrassParticles(pos cp.Vector) (*Particle, error) {
	return ap.spawn("leaf", pos, nil)
}

// CreateAttackParticles spawns an effect that damages enemies on behalf of
// owner.
func (ap *AnimationPlayer) CreateAttackParticles(name string, pos cp.Vector, owner *Player) (*Particle, error) {
	return ap.spawn(name, pos, owner)
}

func (ap *AnimationPlayer) spawn(name string, pos cp.Vector, owner *Player) (*Particle, error) {
	frames, err := ap.Track(name)
	if err != nil {
		return nil, err
	}
	p := newParticle(name, frames, pos)
	p.owner = owner
	if ap.Sink != nil {
		ap.Sink.AddParticle(p)
	}
	return p, nil
}
