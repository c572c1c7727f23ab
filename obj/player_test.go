package obj

import (
	"testing"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/overworld/assets"
	"github.com/milk9111/overworld/component"
	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/prefabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type playerEvents struct {
	created   int
	destroyed int
	spells    []string
	strengths []float64
}

func (r *playerEvents) CreateAttack()  { r.created++ }
func (r *playerEvents) DestroyAttack() { r.destroyed++ }
func (r *playerEvents) CreateMagic(style string, strength, cost float64) {
	r.spells = append(r.spells, style)
	r.strengths = append(r.strengths, strength)
}

type cueLog []component.Cue

func (c *cueLog) Play(cue component.Cue) { *c = append(*c, cue) }

func testTables(t *testing.T) *prefabs.Tables {
	t.Helper()
	tables, err := prefabs.LoadTables()
	require.NoError(t, err)
	return tables
}

func testTracks(names []string) component.Tracks {
	ph := assets.Placeholder{}
	tracks := make(component.Tracks, len(names))
	for _, n := range names {
		frames, _ := ph.Frames(n)
		tracks[n] = frames
	}
	return tracks
}

func newTestPlayer(t *testing.T, clock *component.ManualClock, events PlayerEvents) *Player {
	t.Helper()
	tables := testTables(t)
	p, err := NewPlayer(ecs.NewWorld().CreateEntity(), cp.Vector{}, tables.Player, tables.Weapons, tables.Magic,
		testTracks(PlayerTracks()), PlayerDeps{Events: events, Clock: clock})
	require.NoError(t, err)
	return p
}

func TestNewPlayerStartValues(t *testing.T) {
	p := newTestPlayer(t, &component.ManualClock{}, nil)

	assert.Equal(t, 50.0, p.Health.Current)
	assert.Equal(t, 48.0, p.Energy)
	assert.Equal(t, 500.0, p.Exp)
	assert.Equal(t, "down_idle", p.Status.Track())
	assert.Equal(t, "sword", p.CurrentWeapon().Name)
	assert.Equal(t, "flame", p.CurrentSpell().Name)
	assert.True(t, p.Hitbox.Height < p.Rect.Height)
	assert.Equal(t, p.Rect.Center(), p.Hitbox.Center())
}

func TestNewPlayerRejectsMissingTracks(t *testing.T) {
	tables := testTables(t)
	_, err := NewPlayer(1, cp.Vector{}, tables.Player, tables.Weapons, tables.Magic,
		testTracks([]string{"down_idle"}), PlayerDeps{})
	assert.ErrorIs(t, err, component.ErrMissingTrack)

	_, err = NewPlayer(1, cp.Vector{}, tables.Player, nil, tables.Magic,
		testTracks(PlayerTracks()), PlayerDeps{})
	assert.ErrorIs(t, err, ErrEmptyLoadout)
}

func TestPlayerAttackStatusSequence(t *testing.T) {
	clock := &component.ManualClock{}
	events := &playerEvents{}
	p := newTestPlayer(t, clock, events)

	p.Update(Input{Right: true})
	assert.Equal(t, "right", p.Status.Track())
	assert.Equal(t, 1.0, p.Direction.X)

	clock.Advance(16 * time.Millisecond)
	p.Update(Input{Right: true, Attack: true})
	assert.Equal(t, "right_attack", p.Status.Track())
	assert.True(t, p.Attacking())
	assert.Equal(t, cp.Vector{}, p.Direction)
	assert.Equal(t, 1, events.created)

	// input is ignored while the attack runs
	before := p.Hitbox
	clock.Advance(16 * time.Millisecond)
	p.Update(Input{Left: true})
	assert.Equal(t, before, p.Hitbox)
	assert.Equal(t, FacingRight, p.Status.Facing)

	// 400ms base plus the sword's 100ms
	clock.Advance(500 * time.Millisecond)
	p.Update(Input{})
	assert.Equal(t, "right_idle", p.Status.Track())
	assert.False(t, p.Attacking())
	assert.Equal(t, 1, events.destroyed)
}

func TestPlayerDiagonalFacing(t *testing.T) {
	p := newTestPlayer(t, &component.ManualClock{}, nil)
	start := p.Center()

	p.Update(Input{Up: true, Left: true})

	assert.Equal(t, FacingLeft, p.Status.Facing)
	moved := p.Center().Sub(start)
	assert.InDelta(t, p.Stats[StatSpeed], moved.Length(), 1e-9)
}

func TestPlayerMagicRequest(t *testing.T) {
	events := &playerEvents{}
	p := newTestPlayer(t, &component.ManualClock{}, events)

	p.Update(Input{Magic: true})

	require.Equal(t, []string{"flame"}, events.spells)
	assert.Equal(t, 5.0+4.0, events.strengths[0])
	assert.True(t, p.Attacking())
}

func TestPlayerSwitchGates(t *testing.T) {
	clock := &component.ManualClock{}
	p := newTestPlayer(t, clock, nil)

	p.Update(Input{NextWeapon: true, NextSpell: true})
	assert.Equal(t, 1, p.WeaponIndex)
	assert.Equal(t, 1, p.MagicIndex)
	assert.False(t, p.CanSwitchWeapon())

	clock.Advance(100 * time.Millisecond)
	p.Update(Input{NextWeapon: true, NextSpell: true})
	assert.Equal(t, 1, p.WeaponIndex)

	// the gate reopens at the end of this tick, after input was read
	clock.Advance(100 * time.Millisecond)
	p.Update(Input{NextWeapon: true, NextSpell: true})
	assert.Equal(t, 1, p.WeaponIndex)
	assert.True(t, p.CanSwitchWeapon())

	clock.Advance(16 * time.Millisecond)
	p.Update(Input{NextWeapon: true, NextSpell: true})
	assert.Equal(t, 2, p.WeaponIndex)
	// two spells wrap around
	assert.Equal(t, 0, p.MagicIndex)
}

func TestPlayerInvulnerableHitIsNoop(t *testing.T) {
	clock := &component.ManualClock{}
	p := newTestPlayer(t, clock, nil)

	assert.True(t, p.TakeDamage(10))
	assert.Equal(t, 40.0, p.Health.Current)

	assert.False(t, p.TakeDamage(10))
	assert.Equal(t, 40.0, p.Health.Current)

	clock.Advance(500 * time.Millisecond)
	p.Update(Input{})
	assert.True(t, p.TakeDamage(10))
	assert.Equal(t, 30.0, p.Health.Current)
}

func TestPlayerEnergyRegenIsCapped(t *testing.T) {
	p := newTestPlayer(t, &component.ManualClock{}, nil)

	p.Energy = 30
	p.Update(Input{})
	assert.InDelta(t, 30.02, p.Energy, 1e-9)

	p.Energy = p.Stats[StatEnergy] - 0.001
	p.Update(Input{})
	assert.Equal(t, p.Stats[StatEnergy], p.Energy)
}

func TestPlayerUpgrade(t *testing.T) {
	tests := []struct {
		name    string
		stat    Stat
		setup   func(p *Player)
		ok      bool
		value   float64
		exp     float64
		newCost float64
	}{
		{name: "upgrades", stat: StatHealth, ok: true, value: 120, exp: 400, newCost: 140},
		{
			name:    "not enough exp",
			stat:    StatAttack,
			setup:   func(p *Player) { p.Exp = 99 },
			value:   10,
			exp:     99,
			newCost: 100,
		},
		{
			name:    "at max",
			stat:    StatSpeed,
			setup:   func(p *Player) { p.Stats[StatSpeed] = p.MaxStats[StatSpeed] },
			value:   10,
			exp:     500,
			newCost: 100,
		},
		{
			name:    "clamps to max",
			stat:    StatSpeed,
			setup:   func(p *Player) { p.Stats[StatSpeed] = 9 },
			ok:      true,
			value:   10,
			exp:     400,
			newCost: 140,
		},
		{
			name:    "exact cost",
			stat:    StatMagic,
			setup:   func(p *Player) { p.Exp = 100 },
			ok:      true,
			value:   4.8,
			exp:     0,
			newCost: 140,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestPlayer(t, &component.ManualClock{}, nil)
			if tt.setup != nil {
				tt.setup(p)
			}
			assert.Equal(t, tt.ok, p.Upgrade(tt.stat))
			assert.InDelta(t, tt.value, p.Stats[tt.stat], 1e-9)
			assert.InDelta(t, tt.exp, p.Exp, 1e-9)
			assert.InDelta(t, tt.newCost, p.UpgradeCost[tt.stat], 1e-9)
		})
	}
}

func TestPlayerUpgradeRejectsUnknownStat(t *testing.T) {
	p := newTestPlayer(t, &component.ManualClock{}, nil)
	assert.False(t, p.Upgrade(Stat(StatCount)))
	assert.False(t, p.Upgrade(Stat(-1)))
	assert.Equal(t, 500.0, p.Exp)
}

func TestPlayerAddExpNeverNegative(t *testing.T) {
	p := newTestPlayer(t, &component.ManualClock{}, nil)
	p.AddExp(-1000)
	assert.Equal(t, 0.0, p.Exp)
	p.AddExp(120)
	assert.Equal(t, 120.0, p.Exp)
}

func TestPlayerFlickersWhileInvulnerable(t *testing.T) {
	clock := &component.ManualClock{}
	p := newTestPlayer(t, clock, nil)

	p.TakeDamage(1)
	seen := map[uint8]bool{}
	for i := 0; i < 20; i++ {
		clock.Advance(time.Millisecond)
		p.Update(Input{})
		seen[p.Alpha()] = true
	}
	assert.True(t, seen[0])
	assert.True(t, seen[255])

	clock.Advance(time.Second)
	p.Update(Input{})
	assert.Equal(t, uint8(255), p.Alpha())
}

func TestPlayerTracksCoverEveryStatus(t *testing.T) {
	names := PlayerTracks()
	assert.Len(t, names, 12)
	assert.Contains(t, names, "up_attack")
	assert.Contains(t, names, "left_idle")
	assert.Contains(t, names, "down")
}
