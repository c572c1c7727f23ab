package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownWeapon   = errors.New("prefabs: unknown weapon")
	ErrUnknownSpell    = errors.New("prefabs: unknown spell")
	ErrUnknownMonster  = errors.New("prefabs: unknown monster")
	ErrUnknownParticle = errors.New("prefabs: unknown particle effect")
	ErrEmptyTable      = errors.New("prefabs: empty table")
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// StatsSpec holds one value per upgradable stat.
type StatsSpec struct {
	Health float64 `yaml:"health"`
	Energy float64 `yaml:"energy"`
	Attack float64 `yaml:"attack"`
	Magic  float64 `yaml:"magic"`
	Speed  float64 `yaml:"speed"`
}

type InflateSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type PlayerSpec struct {
	Name               string      `yaml:"name"`
	Graphics           string      `yaml:"graphics"`
	HitboxInflate      InflateSpec `yaml:"hitbox_inflate"`
	Stats              StatsSpec   `yaml:"stats"`
	MaxStats           StatsSpec   `yaml:"max_stats"`
	UpgradeCost        StatsSpec   `yaml:"upgrade_cost"`
	StartHealthRatio   float64     `yaml:"start_health_ratio"`
	StartEnergyRatio   float64     `yaml:"start_energy_ratio"`
	StartExp           float64     `yaml:"start_exp"`
	UpgradeRatio       float64     `yaml:"upgrade_ratio"`
	CostRatio          float64     `yaml:"cost_ratio"`
	EnergyRegenRate    float64     `yaml:"energy_regen_rate"`
	AttackCooldownMS   int         `yaml:"attack_cooldown_ms"`
	InvulnerabilityMS  int         `yaml:"invulnerability_ms"`
	SwitchCooldownMS   int         `yaml:"switch_cooldown_ms"`
	UpgradeSelectionMS int         `yaml:"upgrade_selection_ms"`
	AttackSound        string      `yaml:"attack_sound"`
}

func (p PlayerSpec) AttackCooldown() time.Duration   { return ms(p.AttackCooldownMS) }
func (p PlayerSpec) Invulnerability() time.Duration  { return ms(p.InvulnerabilityMS) }
func (p PlayerSpec) SwitchCooldown() time.Duration   { return ms(p.SwitchCooldownMS) }
func (p PlayerSpec) UpgradeSelection() time.Duration { return ms(p.UpgradeSelectionMS) }

type WeaponSpec struct {
	Name       string  `yaml:"name"`
	CooldownMS int     `yaml:"cooldown_ms"`
	Damage     float64 `yaml:"damage"`
	Graphic    string  `yaml:"graphic"`
}

func (w WeaponSpec) Cooldown() time.Duration { return ms(w.CooldownMS) }

type SpellSpec struct {
	Name     string  `yaml:"name"`
	Strength float64 `yaml:"strength"`
	Cost     float64 `yaml:"cost"`
	Graphic  string  `yaml:"graphic"`
}

type MonsterSpec struct {
	Name         string  `yaml:"name"`
	Code         int     `yaml:"code"`
	Health       float64 `yaml:"health"`
	Exp          float64 `yaml:"exp"`
	Damage       float64 `yaml:"damage"`
	AttackType   string  `yaml:"attack_type"`
	AttackSound  string  `yaml:"attack_sound"`
	Speed        float64 `yaml:"speed"`
	Resistance   float64 `yaml:"resistance"`
	AttackRadius float64 `yaml:"attack_radius"`
	NoticeRadius float64 `yaml:"notice_radius"`
	// Zero values fall back to the defaults below.
	AttackCooldownMS  int `yaml:"attack_cooldown_ms"`
	InvulnerabilityMS int `yaml:"invulnerability_ms"`
}

const (
	defaultMonsterAttackCooldown  = 1000 * time.Millisecond
	defaultMonsterInvulnerability = 300 * time.Millisecond
)

func (m MonsterSpec) AttackCooldown() time.Duration {
	if m.AttackCooldownMS <= 0 {
		return defaultMonsterAttackCooldown
	}
	return ms(m.AttackCooldownMS)
}

func (m MonsterSpec) Invulnerability() time.Duration {
	if m.InvulnerabilityMS <= 0 {
		return defaultMonsterInvulnerability
	}
	return ms(m.InvulnerabilityMS)
}

type ParticleSpec struct {
	Name    string   `yaml:"name"`
	Folders []string `yaml:"folders"`
	// Mirror adds a horizontally flipped copy of every folder.
	Mirror bool `yaml:"mirror"`
}

type AudioSpec struct {
	Name   string  `yaml:"name"`
	File   string  `yaml:"file"`
	Volume float64 `yaml:"volume"`
}

type SoundsSpec struct {
	Music AudioSpec   `yaml:"music"`
	Cues  []AudioSpec `yaml:"cues"`
}

type HUDSpec struct {
	FontScale         float64    `yaml:"font_scale"`
	BarHeight         float64    `yaml:"bar_height"`
	HealthBarWidth    float64    `yaml:"health_bar_width"`
	EnergyBarWidth    float64    `yaml:"energy_bar_width"`
	ItemBoxSize       float64    `yaml:"item_box_size"`
	BG                *YAMLColor `yaml:"bg"`
	Border            *YAMLColor `yaml:"border"`
	BorderActive      *YAMLColor `yaml:"border_active"`
	Text              *YAMLColor `yaml:"text"`
	Health            *YAMLColor `yaml:"health"`
	Energy            *YAMLColor `yaml:"energy"`
	TextSelected      *YAMLColor `yaml:"text_selected"`
	Bar               *YAMLColor `yaml:"bar"`
	BarSelected       *YAMLColor `yaml:"bar_selected"`
	UpgradeBGSelected *YAMLColor `yaml:"upgrade_bg_selected"`
	Water             *YAMLColor `yaml:"water"`
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

type YAMLColor struct {
	color.Color
}

// Or returns c, or fallback when c was not set.
func (c *YAMLColor) Or(fallback color.Color) color.Color {
	if c == nil || c.Color == nil {
		return fallback
	}
	return c.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
