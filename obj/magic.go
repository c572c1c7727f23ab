package obj

import (
	"math/rand"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/overworld/common"
	"github.com/milk9111/overworld/component"
	"github.com/sirupsen/logrus"
)

const (
	flameCount  = 5
	flameJitter = common.TileSize / 3
)

// MagicPlayer casts spells for the player.
type MagicPlayer struct {
	Particles *AnimationPlayer
	Cues      component.CuePlayer
	Rand      *rand.Rand
}

// Heal restores strength health for cost energy. It does nothing when the
// player cannot pay or is already at full health.
func (m *MagicPlayer) Heal(p *Player, strength, cost float64) bool {
	if p.Energy < cost || p.Health.Current >= p.Stats[StatHealth] {
		return false
	}
	p.Health.Heal(strength, p.Stats[StatHealth])
	p.Energy -= cost
	m.play(component.CueHeal)

	center := p.Center()
	m.particles("aura", center)
	m.particles("heal", center.Add(cp.Vector{X: 0, Y: -60}))
	return true
}

// Flame throws a line of flames away from the player in its facing
// direction.
func (m *MagicPlayer) Flame(p *Player, cost float64) bool {
	if p.Energy < cost {
		return false
	}
	p.Energy -= cost
	m.play(component.CueFlame)

	dir := p.Status.Facing.Vector()
	center := p.Center()
	for i := 1; i <= flameCount; i++ {
		step := dir.Mult(float64(common.TileSize * i))
		pos := cp.Vector{
			X: center.X + step.X + m.jitter(),
			Y: center.Y + step.Y + m.jitter(),
		}
		if m.Particles == nil {
			continue
		}
		if _, err := m.Particles.CreateAttackParticles("flame", pos, p); err != nil {
			logrus.WithError(err).Warn("magic: flame")
		}
	}
	return true
}

func (m *MagicPlayer) jitter() float64 {
	if m.Rand == nil {
		return 0
	}
	return float64(m.Rand.Intn(2*flameJitter+1) - flameJitter)
}

func (m *MagicPlayer) play(cue component.Cue) {
	if m.Cues != nil {
		m.Cues.Play(cue)
	}
}

func (m *MagicPlayer) particles(name string, pos cp.Vector) {
	if m.Particles == nil {
		return
	}
	if _, err := m.Particles.CreateParticles(name, pos); err != nil {
		logrus.WithError(err).WithField("effect", name).Warn("magic: particles")
	}
}
