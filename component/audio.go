package component

// Cue names a sound effect. Monster attack cues come from the tuning tables,
// so any string is a valid cue.
type Cue string

const (
	CueHit   Cue = "hit"
	CueDeath Cue = "death"
	CueHeal  Cue = "heal"
	CueFlame Cue = "flame"
)

// CuePlayer plays sound effects fire-and-forget.
type CuePlayer interface {
	Play(cue Cue)
}

// NopCues discards every cue.
type NopCues struct{}

func (NopCues) Play(Cue) {}
