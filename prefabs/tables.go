package prefabs

import (
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Table file names.
const (
	PlayerFile    = "player.yaml"
	WeaponsFile   = "weapons.yaml"
	MagicFile     = "magic.yaml"
	MonstersFile  = "monsters.yaml"
	ParticlesFile = "particles.yaml"
	SoundsFile    = "sounds.yaml"
	HUDFile       = "hud.yaml"
)

// Spell names the game has a cast for.
const (
	SpellFlame = "flame"
	SpellHeal  = "heal"
)

// Tables is the full set of static tuning data. Lists keep file order, which
// is also the cycling order for weapons and spells.
type Tables struct {
	Player    PlayerSpec
	Weapons   []WeaponSpec
	Magic     []SpellSpec
	Monsters  []MonsterSpec
	Particles []ParticleSpec
	Sounds    SoundsSpec
	HUD       HUDSpec
}

// LoadTables reads every table.
func LoadTables() (*Tables, error) {
	t := &Tables{}
	var err error
	if t.Player, err = LoadSpec[PlayerSpec](PlayerFile); err != nil {
		return nil, err
	}
	if t.Weapons, err = loadList[WeaponSpec](WeaponsFile); err != nil {
		return nil, err
	}
	if t.Magic, err = loadList[SpellSpec](MagicFile); err != nil {
		return nil, err
	}
	if t.Monsters, err = loadList[MonsterSpec](MonstersFile); err != nil {
		return nil, err
	}
	if t.Particles, err = loadList[ParticleSpec](ParticlesFile); err != nil {
		return nil, err
	}
	if t.Sounds, err = LoadSpec[SoundsSpec](SoundsFile); err != nil {
		return nil, err
	}
	if t.HUD, err = LoadSpec[HUDSpec](HUDFile); err != nil {
		return nil, err
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"weapons":   len(t.Weapons),
		"spells":    len(t.Magic),
		"monsters":  len(t.Monsters),
		"particles": len(t.Particles),
	}).Debug("prefabs: tables loaded")
	return t, nil
}

func loadList[T any](filename string) ([]T, error) {
	list, err := LoadSpec[[]T](filename)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("prefabs: %s: %w", filename, ErrEmptyTable)
	}
	return list, nil
}

// Reload re-reads the table stored in file (a base name or path) into t.
// On error t is left unchanged.
func (t *Tables) Reload(file string) error {
	if t == nil {
		return nil
	}
	next := *t
	var err error
	switch filepath.Base(file) {
	case PlayerFile:
		next.Player, err = LoadSpec[PlayerSpec](PlayerFile)
	case WeaponsFile:
		next.Weapons, err = loadList[WeaponSpec](WeaponsFile)
	case MagicFile:
		next.Magic, err = loadList[SpellSpec](MagicFile)
	case MonstersFile:
		next.Monsters, err = loadList[MonsterSpec](MonstersFile)
	case ParticlesFile:
		next.Particles, err = loadList[ParticleSpec](ParticlesFile)
	case SoundsFile:
		next.Sounds, err = LoadSpec[SoundsSpec](SoundsFile)
	case HUDFile:
		next.HUD, err = LoadSpec[HUDSpec](HUDFile)
	default:
		return nil
	}
	if err != nil {
		return err
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*t = next
	return nil
}

// Validate checks entries the loaders cannot: every spell must be castable.
func (t *Tables) Validate() error {
	for _, s := range t.Magic {
		switch s.Name {
		case SpellFlame, SpellHeal:
		default:
			return fmt.Errorf("prefabs: %s: %w: %q cannot be cast", MagicFile, ErrUnknownSpell, s.Name)
		}
	}
	return nil
}

func (t *Tables) Weapon(name string) (WeaponSpec, error) {
	for _, w := range t.Weapons {
		if w.Name == name {
			return w, nil
		}
	}
	return WeaponSpec{}, fmt.Errorf("%w: %q", ErrUnknownWeapon, name)
}

func (t *Tables) Spell(name string) (SpellSpec, error) {
	for _, s := range t.Magic {
		if s.Name == name {
			return s, nil
		}
	}
	return SpellSpec{}, fmt.Errorf("%w: %q", ErrUnknownSpell, name)
}

func (t *Tables) Monster(name string) (MonsterSpec, error) {
	for _, m := range t.Monsters {
		if m.Name == name {
			return m, nil
		}
	}
	return MonsterSpec{}, fmt.Errorf("%w: %q", ErrUnknownMonster, name)
}

// MonsterByCode maps an entity layer code to a monster. Codes without an
// exact match are squids; without a squid entry they are unknown.
func (t *Tables) MonsterByCode(code int) (MonsterSpec, error) {
	for _, m := range t.Monsters {
		if m.Code == code {
			return m, nil
		}
	}
	if m, err := t.Monster("squid"); err == nil {
		return m, nil
	}
	return MonsterSpec{}, fmt.Errorf("%w: code %d", ErrUnknownMonster, code)
}

func (t *Tables) Particle(name string) (ParticleSpec, error) {
	for _, p := range t.Particles {
		if p.Name == name {
			return p, nil
		}
	}
	return ParticleSpec{}, fmt.Errorf("%w: %q", ErrUnknownParticle, name)
}
