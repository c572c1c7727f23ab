package obj

import "github.com/jakecoffman/cp"

// Facing is the direction the player last moved in.
type Facing int

const (
	FacingDown Facing = iota
	FacingUp
	FacingLeft
	FacingRight
)

var facingNames = [...]string{"down", "up", "left", "right"}

func (f Facing) String() string {
	if f < 0 || int(f) >= len(facingNames) {
		return "down"
	}
	return facingNames[f]
}

// Vector is the unit step in the facing direction.
func (f Facing) Vector() cp.Vector {
	switch f {
	case FacingUp:
		return cp.Vector{X: 0, Y: -1}
	case FacingLeft:
		return cp.Vector{X: -1, Y: 0}
	case FacingRight:
		return cp.Vector{X: 1, Y: 0}
	default:
		return cp.Vector{X: 0, Y: 1}
	}
}

// Phase is what the player is doing while facing a direction.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseMoving
	PhaseAttacking
)

// PlayerStatus selects the player's animation track.
type PlayerStatus struct {
	Facing Facing
	Phase  Phase
}

// Track maps the status to its animation name: "right", "right_idle",
// "right_attack" and so on.
func (s PlayerStatus) Track() string {
	switch s.Phase {
	case PhaseIdle:
		return s.Facing.String() + "_idle"
	case PhaseAttacking:
		return s.Facing.String() + "_attack"
	default:
		return s.Facing.String()
	}
}

// PlayerTracks lists every track the player needs.
func PlayerTracks() []string {
	out := make([]string, 0, len(facingNames)*3)
	for f := range facingNames {
		for _, p := range []Phase{PhaseMoving, PhaseIdle, PhaseAttacking} {
			out = append(out, PlayerStatus{Facing: Facing(f), Phase: p}.Track())
		}
	}
	return out
}

// EnemyStatus is the aggro state of an enemy. Its string is the track name.
type EnemyStatus int

const (
	EnemyIdle EnemyStatus = iota
	EnemyChasing
	EnemyAttacking
)

func (s EnemyStatus) String() string {
	switch s {
	case EnemyChasing:
		return "move"
	case EnemyAttacking:
		return "attack"
	default:
		return "idle"
	}
}

// EnemyTracks lists every track an enemy needs.
func EnemyTracks() []string {
	return []string{EnemyIdle.String(), EnemyChasing.String(), EnemyAttacking.String()}
}
