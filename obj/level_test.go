package obj

import (
	"errors"
	"image"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/overworld/assets"
	"github.com/milk9111/overworld/common"
	"github.com/milk9111/overworld/component"
	"github.com/milk9111/overworld/levels"
	"github.com/milk9111/overworld/prefabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testAssets = assets.Placeholder{Counts: map[string]int{"graphics/objects": 21}}

func newTestLevel(t *testing.T, seed int64) (*Level, *component.ManualClock) {
	t.Helper()
	layout, err := levels.Load(levels.LevelsFS, "map")
	require.NoError(t, err)
	clock := &component.ManualClock{}
	l, err := NewLevel(LevelConfig{
		Layout: layout,
		Tables: testTables(t),
		Assets: testAssets,
		Clock:  clock,
		Rand:   rand.New(rand.NewSource(seed)),
	})
	require.NoError(t, err)
	return l, clock
}

var errNoGraphic = errors.New("no such graphic")

// missingAssets serves placeholders except under prefix.
type missingAssets struct {
	assets.Placeholder
	prefix string
}

func (m missingAssets) check(name string) error {
	if strings.HasPrefix(name, m.prefix) {
		return errNoGraphic
	}
	return nil
}

func (m missingAssets) Image(name string) (image.Image, error) {
	if err := m.check(name); err != nil {
		return nil, err
	}
	return m.Placeholder.Image(name)
}

func (m missingAssets) Frames(name string) ([]image.Image, error) {
	if err := m.check(name); err != nil {
		return nil, err
	}
	return m.Placeholder.Frames(name)
}

func (m missingAssets) MirroredFrames(name string) ([]image.Image, error) {
	if err := m.check(name); err != nil {
		return nil, err
	}
	return m.Placeholder.MirroredFrames(name)
}

// openArea returns the first w by h region of the map no obstacle overlaps.
func openArea(t *testing.T, l *Level, w, h float64) common.Rect {
	t.Helper()
	for y := 0.0; y+h <= l.Height; y += common.TileSize {
		for x := 0.0; x+w <= l.Width; x += common.TileSize {
			r := common.NewRect(x, y, w, h)
			if len(l.collisions.Overlapping(r)) == 0 {
				return r
			}
		}
	}
	t.Fatal("map has no open area")
	return common.Rect{}
}

func placeBody(b *component.Body, center cp.Vector) {
	b.Hitbox.SetCenter(center)
	b.Rect.SetCenter(center)
}

func grassTiles(l *Level) []*Tile {
	var out []*Tile
	for _, tile := range l.obstacles.Snapshot() {
		if tile.Kind == TileGrass {
			out = append(out, tile)
		}
	}
	return out
}

func TestNewLevelCounts(t *testing.T) {
	layout, err := levels.Load(levels.LevelsFS, "map")
	require.NoError(t, err)
	l, _ := newTestLevel(t, 1)

	boundary := layout.Count(levels.LayerBoundary)
	grass := layout.Count(levels.LayerGrass)
	objects := layout.Count(levels.LayerObject)
	enemies := layout.Count(levels.LayerEntity) - 1

	c := l.Counts()
	assert.Equal(t, boundary+grass+objects, c.Obstacles)
	assert.Equal(t, grass+objects+1+enemies, c.Visible)
	assert.Equal(t, grass+enemies, c.Attackable)
	assert.Equal(t, enemies, c.Enemies)
	assert.Equal(t, 0, c.Attacks)
	assert.Equal(t, 0, c.Particles)
	assert.Equal(t, c.Obstacles+1+enemies, c.Entities)
	assert.Equal(t, c.Obstacles, l.collisions.Len())

	assert.Equal(t, float64(layout.Cols*64), l.Width)
	assert.Equal(t, float64(layout.Rows*64), l.Height)
}

func TestLevelTickOrder(t *testing.T) {
	l, _ := newTestLevel(t, 1)
	assert.Equal(t, []string{"snapshot", "player", "bodies", "combat", "enemies", "cull"}, l.sched.Names())
}

func TestNewLevelRejectsUnknownObject(t *testing.T) {
	layout, err := levels.Load(levels.LevelsFS, "map")
	require.NoError(t, err)

	_, err = NewLevel(LevelConfig{
		Layout: layout,
		Tables: testTables(t),
		Assets: assets.Placeholder{},
		Clock:  &component.ManualClock{},
	})
	assert.ErrorIs(t, err, ErrUnknownObject)
}

func TestNewLevelRejectsBadTables(t *testing.T) {
	layout, err := levels.Load(levels.LevelsFS, "map")
	require.NoError(t, err)

	iceFirst := testTables(t)
	iceFirst.Magic = append([]prefabs.SpellSpec{{Name: "ice", Strength: 3, Cost: 5}}, iceFirst.Magic...)

	tests := []struct {
		name   string
		tables *prefabs.Tables
		assets assets.Provider
		want   error
	}{
		{"missing weapon frame", testTables(t), missingAssets{testAssets, "graphics/weapons/axe/left"}, errNoGraphic},
		{"missing flame frames", testTables(t), missingAssets{testAssets, "graphics/particles/flame"}, errNoGraphic},
		{"missing leaf frames", testTables(t), missingAssets{testAssets, "graphics/particles/leaf2"}, errNoGraphic},
		{"uncastable spell", iceFirst, testAssets, prefabs.ErrUnknownSpell},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLevel(LevelConfig{
				Layout: layout,
				Tables: tt.tables,
				Assets: tt.assets,
				Clock:  &component.ManualClock{},
			})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNewLevelRequiresInputs(t *testing.T) {
	_, err := NewLevel(LevelConfig{})
	assert.Error(t, err)
}

func TestGrassDestroySpawnsLeaves(t *testing.T) {
	for seed := int64(1); seed <= 8; seed++ {
		l, _ := newTestLevel(t, seed)
		tiles := grassTiles(l)
		require.NotEmpty(t, tiles)
		tile := tiles[0]
		before := l.Counts()

		tile.Destroy()

		after := l.Counts()
		assert.GreaterOrEqual(t, after.Particles, 3)
		assert.LessOrEqual(t, after.Particles, 6)
		assert.Empty(t, l.Memberships(tile.ID))
		assert.Equal(t, before.Obstacles-1, after.Obstacles)
		assert.Equal(t, before.Attackable-1, after.Attackable)
		assert.Equal(t, before.Obstacles-1, l.collisions.Len())
		for _, p := range l.Particles() {
			assert.Equal(t, "leaf", p.Name)
			assert.False(t, p.IsAttack())
			assert.Equal(t, tile.Rect.Center().Y-55, p.Center.Y)
		}

		tile.Destroy()
		assert.Equal(t, after, l.Counts())
	}
}

func TestLevelEnemyDeathRemovesFromAllSets(t *testing.T) {
	l, clock := newTestLevel(t, 1)
	enemies := l.Enemies()
	require.NotEmpty(t, enemies)
	e := enemies[0]
	e.Health.Current = 10
	exp := l.Player().Exp
	hit := testAttack{damage: 6, origin: e.Center()}

	require.True(t, e.TakeAttack(hit))
	assert.Equal(t, 4.0, e.Health.Current)
	assert.NotEmpty(t, l.Memberships(e.ID))

	clock.Advance(300 * time.Millisecond)
	e.Update()
	require.True(t, e.TakeAttack(hit))

	assert.Empty(t, l.Memberships(e.ID))
	assert.Len(t, l.Enemies(), len(enemies)-1)
	assert.Equal(t, exp+e.Spec.Exp, l.Player().Exp)
	require.Len(t, l.Particles(), 1)
	assert.Equal(t, e.Spec.Name, l.Particles()[0].Name)

	e.CheckDeath()
	assert.Equal(t, exp+e.Spec.Exp, l.Player().Exp)
	assert.Len(t, l.Particles(), 1)
}

func TestLevelWeaponLifecycle(t *testing.T) {
	l, clock := newTestLevel(t, 1)

	l.Update(Input{Attack: true})
	require.NotNil(t, l.weapon)
	w := l.weapon
	assert.ElementsMatch(t, []string{"visible", "attacks"}, l.Memberships(w.ID))

	clock.Advance(500 * time.Millisecond)
	l.Update(Input{})
	assert.Nil(t, l.weapon)
	assert.Empty(t, l.Memberships(w.ID))
	assert.False(t, w.Alive())

	// destroying with no attack is a no-op
	l.DestroyAttack()
}

func TestLevelFlameParticlesAreCulled(t *testing.T) {
	l, clock := newTestLevel(t, 1)

	l.Update(Input{Magic: true})
	flames := l.Particles()
	var ids []uint64
	for _, p := range flames {
		if p.Name == "flame" {
			ids = append(ids, uint64(p.ID))
			assert.Contains(t, l.Memberships(p.ID), "attacks")
		}
	}
	assert.Len(t, ids, 5)
	assert.InDelta(t, 48.0-20.0+0.02, l.Player().Energy, 1e-9)

	for i := 0; i < 30; i++ {
		clock.Advance(16 * time.Millisecond)
		l.Update(Input{})
	}
	for _, p := range flames {
		if p.Name == "flame" {
			assert.True(t, p.Done())
			assert.Empty(t, l.Memberships(p.ID))
		}
	}
}

func TestLevelPauseFreezesWorld(t *testing.T) {
	l, clock := newTestLevel(t, 1)
	start := l.Player().Center()

	l.Update(Input{ToggleMenu: true, Right: true})
	assert.True(t, l.Paused())
	assert.Equal(t, 3, l.Upgrade().Selection)

	clock.Advance(16 * time.Millisecond)
	l.Update(Input{Right: true})
	assert.Equal(t, start, l.Player().Center())

	l.Update(Input{ToggleMenu: true})
	assert.False(t, l.Paused())
	l.Update(Input{Right: true})
	assert.Greater(t, l.Player().Center().X, start.X)
}

func TestLevelSpritesAreDepthSorted(t *testing.T) {
	l, _ := newTestLevel(t, 1)
	sprites := l.Sprites()
	require.Len(t, sprites, l.Counts().Visible)
	for i := 1; i < len(sprites); i++ {
		assert.LessOrEqual(t, sprites[i-1].Depth(), sprites[i].Depth())
	}
}

func TestLevelApplyTables(t *testing.T) {
	l, _ := newTestLevel(t, 1)
	tables := testTables(t)
	tables.Weapons = tables.Weapons[:2]
	l.Player().WeaponIndex = 4

	require.NoError(t, l.ApplyTables(tables))
	assert.Equal(t, 0, l.Player().WeaponIndex)
	assert.Equal(t, "sword", l.Player().CurrentWeapon().Name)
	assert.Same(t, tables, l.cfg.Tables)

	assert.NoError(t, l.ApplyTables(nil))
	assert.Equal(t, "sword", l.Player().CurrentWeapon().Name)
}

func TestLevelApplyTablesRejectsBadTables(t *testing.T) {
	l, _ := newTestLevel(t, 1)
	current := l.cfg.Tables
	weapons := len(l.Player().weapons)
	frames := len(l.weaponFrames)

	ice := testTables(t)
	ice.Weapons = ice.Weapons[:2]
	ice.Magic = append(ice.Magic, prefabs.SpellSpec{Name: "ice"})
	assert.ErrorIs(t, l.ApplyTables(ice), prefabs.ErrUnknownSpell)

	club := testTables(t)
	club.Weapons = append(club.Weapons, prefabs.WeaponSpec{Name: "club", Damage: 40})
	l.cfg.Assets = missingAssets{testAssets, "graphics/weapons/club"}
	assert.ErrorIs(t, l.ApplyTables(club), errNoGraphic)

	assert.Same(t, current, l.cfg.Tables)
	assert.Len(t, l.Player().weapons, weapons)
	assert.Len(t, l.weaponFrames, frames)
}

func TestLevelSwingDamagesEnemyOncePerWindow(t *testing.T) {
	l, clock := newTestLevel(t, 1)
	p := l.Player()
	require.Equal(t, FacingDown, p.Status.Facing)

	area := openArea(t, l, 3*common.TileSize, 5*common.TileSize)
	center := cp.Vector{X: area.X + 96, Y: area.Y + 64}
	placeBody(&p.Body, center)
	enemies := l.Enemies()
	require.NotEmpty(t, enemies)
	e := enemies[0]
	placeBody(&e.Body, center.Add(cp.Vector{X: 0, Y: 64}))
	health := e.Health.Current

	damage := p.Stats[StatAttack] + p.CurrentWeapon().Damage
	require.Equal(t, 25.0, damage)

	l.Update(Input{Attack: true})
	require.NotNil(t, l.weapon)
	assert.Equal(t, health-damage, e.Health.Current)
	y := e.Center().Y

	// the swing stays out while the enemy is invulnerable
	for i := 0; i < 5; i++ {
		l.Update(Input{})
	}
	require.NotNil(t, l.weapon)
	assert.Equal(t, health-damage, e.Health.Current)
	assert.Greater(t, e.Center().Y, y, "knocked away from the player")
	assert.Equal(t, center.X, e.Center().X)

	clock.Advance(300 * time.Millisecond)
	l.Update(Input{})
	require.NotNil(t, l.weapon)
	assert.Equal(t, health-2*damage, e.Health.Current)
}

func TestLevelFlameBurnsGrass(t *testing.T) {
	for seed := int64(1); seed <= 4; seed++ {
		l, _ := newTestLevel(t, seed)
		before := len(grassTiles(l))
		tile := grassTiles(l)[0]
		p := l.Player()
		p.Status.Facing = FacingRight
		placeBody(&p.Body, tile.Rect.Center().Sub(cp.Vector{X: 64, Y: 0}))

		l.Update(Input{Magic: true})

		assert.Empty(t, l.Memberships(tile.ID))
		burned := before - len(grassTiles(l))
		require.GreaterOrEqual(t, burned, 1)
		leaves := 0
		for _, pt := range l.Particles() {
			if pt.Name == "leaf" {
				leaves++
			}
		}
		assert.GreaterOrEqual(t, leaves, 3*burned)
		assert.LessOrEqual(t, leaves, 6*burned)
	}
}
