package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useOverrideDir(t *testing.T, dir string) {
	t.Helper()
	prev := OverrideDir
	OverrideDir = dir
	t.Cleanup(func() { OverrideDir = prev })
}

func TestLoadEmbeddedTables(t *testing.T) {
	useOverrideDir(t, t.TempDir())
	tables, err := LoadTables()
	require.NoError(t, err)

	p := tables.Player
	assert.Equal(t, StatsSpec{Health: 100, Energy: 60, Attack: 10, Magic: 4, Speed: 6}, p.Stats)
	assert.Equal(t, StatsSpec{Health: 300, Energy: 140, Attack: 20, Magic: 10, Speed: 10}, p.MaxStats)
	assert.Equal(t, 400*time.Millisecond, p.AttackCooldown())
	assert.Equal(t, 500*time.Millisecond, p.Invulnerability())
	assert.Equal(t, 200*time.Millisecond, p.SwitchCooldown())
	assert.Equal(t, 300*time.Millisecond, p.UpgradeSelection())
	assert.Equal(t, 500.0, p.StartExp)

	names := make([]string, 0, len(tables.Weapons))
	for _, w := range tables.Weapons {
		names = append(names, w.Name)
	}
	assert.Equal(t, []string{"sword", "lance", "axe", "rapier", "sai"}, names)
	require.Len(t, tables.Magic, 2)
	assert.Equal(t, "flame", tables.Magic[0].Name)
	assert.NotNil(t, tables.HUD.Health.Or(nil))
}

func TestTableLookups(t *testing.T) {
	useOverrideDir(t, t.TempDir())
	tables, err := LoadTables()
	require.NoError(t, err)

	cases := []struct {
		name     string
		lookup   func() error
		sentinel error
	}{
		{"weapon", func() error { _, err := tables.Weapon("club"); return err }, ErrUnknownWeapon},
		{"spell", func() error { _, err := tables.Spell("ice"); return err }, ErrUnknownSpell},
		{"monster", func() error { _, err := tables.Monster("dragon"); return err }, ErrUnknownMonster},
		{"particle", func() error { _, err := tables.Particle("smoke"); return err }, ErrUnknownParticle},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.ErrorIs(t, c.lookup(), c.sentinel)
		})
	}

	lance, err := tables.Weapon("lance")
	require.NoError(t, err)
	assert.Equal(t, 30.0, lance.Damage)
	assert.Equal(t, 400*time.Millisecond, lance.Cooldown())
}

func TestMonsterByCode(t *testing.T) {
	useOverrideDir(t, t.TempDir())
	tables, err := LoadTables()
	require.NoError(t, err)

	cases := []struct {
		code int
		want string
	}{
		{390, "bamboo"},
		{391, "spirit"},
		{392, "raccoon"},
		{393, "squid"},
		{7, "squid"},
	}
	for _, c := range cases {
		m, err := tables.MonsterByCode(c.code)
		require.NoError(t, err)
		assert.Equal(t, c.want, m.Name, "code %d", c.code)
	}

	tables.Monsters = []MonsterSpec{{Name: "raccoon", Code: 392}}
	_, err = tables.MonsterByCode(391)
	assert.ErrorIs(t, err, ErrUnknownMonster)
	m, err := tables.MonsterByCode(392)
	require.NoError(t, err)
	assert.Equal(t, "raccoon", m.Name)

	tables, err = LoadTables()
	require.NoError(t, err)
	spirit, _ := tables.Monster("spirit")
	assert.Equal(t, "thunder", spirit.AttackType)
	assert.Equal(t, "fireball", spirit.AttackSound)
	assert.Equal(t, time.Second, spirit.AttackCooldown())
	assert.Equal(t, 300*time.Millisecond, spirit.Invulnerability())
}

func TestDiskOverrideAndReload(t *testing.T) {
	dir := t.TempDir()
	useOverrideDir(t, dir)
	tables, err := LoadTables()
	require.NoError(t, err)

	yaml := "- {name: club, cooldown_ms: 10, damage: 1, graphic: x.png}\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, WeaponsFile), []byte(yaml), 0o644))
	require.NoError(t, tables.Reload(filepath.Join(dir, WeaponsFile)))
	require.Len(t, tables.Weapons, 1)
	assert.Equal(t, "club", tables.Weapons[0].Name)

	require.NoError(t, os.WriteFile(filepath.Join(dir, WeaponsFile), []byte("[]\n"), 0o644))
	assert.ErrorIs(t, tables.Reload(WeaponsFile), ErrEmptyTable)
	assert.Len(t, tables.Weapons, 1, "failed reload keeps the previous table")

	assert.NoError(t, tables.Reload("notes.txt"))
}

func TestSpellsMustBeCastable(t *testing.T) {
	dir := t.TempDir()
	useOverrideDir(t, dir)
	tables, err := LoadTables()
	require.NoError(t, err)

	spells := "- {name: ice, strength: 3, cost: 5, graphic: x.png}\n- {name: flame, strength: 5, cost: 20, graphic: y.png}\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, MagicFile), []byte(spells), 0o644))

	assert.ErrorIs(t, tables.Reload(MagicFile), ErrUnknownSpell)
	assert.Len(t, tables.Magic, 2, "failed reload keeps the previous table")
	assert.Equal(t, SpellFlame, tables.Magic[0].Name)

	_, err = LoadTables()
	assert.ErrorIs(t, err, ErrUnknownSpell)
}

func TestYAMLColorRejectsBadValues(t *testing.T) {
	dir := t.TempDir()
	useOverrideDir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, HUDFile), []byte("bg: \"#12\"\n"), 0o644))
	_, err := LoadSpec[HUDSpec](HUDFile)
	assert.Error(t, err)
}

func TestWatcherReportsTableChanges(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, MagicFile), []byte("[]"), 0o644))

	var got []string
	require.Eventually(t, func() bool {
		files, err := w.Drain()
		assert.NoError(t, err)
		got = append(got, files...)
		return len(got) > 0
	}, 2*time.Second, 20*time.Millisecond)
	for _, name := range got {
		assert.Equal(t, MagicFile, filepath.Base(name))
	}
}
