package obj

import (
	"errors"
	"fmt"
	"image"
	"math/rand"
	"path"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/overworld/assets"
	"github.com/milk9111/overworld/common"
	"github.com/milk9111/overworld/component"
	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/levels"
	"github.com/milk9111/overworld/prefabs"
	"github.com/sirupsen/logrus"
)

var ErrUnknownObject = errors.New("obj: object index out of range")

const (
	grassLeavesMin = 3
	grassLeavesMax = 6
)

// grassLeafOffset lifts the leaf burst above the grass tile center.
var grassLeafOffset = cp.Vector{X: 0, Y: -55}

// Renderable is anything that draws as a single sprite.
type Renderable interface {
	Sprite() Sprite
}

// LevelConfig holds everything a level is built from.
type LevelConfig struct {
	Layout *levels.Layout
	Tables *prefabs.Tables
	Assets assets.Provider
	Cues   component.CuePlayer
	Clock  component.Clock
	// Rand drives grass variants, leaf counts and flame jitter. Nil seeds
	// from the wall clock.
	Rand *rand.Rand
}

// LevelCounts is a census of the level's membership sets.
type LevelCounts struct {
	Entities   int
	Visible    int
	Obstacles  int
	Attacks    int
	Attackable int
	Enemies    int
	Particles  int
}

// Level owns every entity of a map and drives the per-tick update order:
// player, bodies, combat, enemy behavior, cull.
type Level struct {
	Width, Height float64

	world *ecs.World
	sched *ecs.Scheduler

	visible    *ecs.Group[Renderable]
	obstacles  *ecs.Group[*Tile]
	attacks    *ecs.Group[component.Attack]
	attackable *ecs.Group[component.Collider]
	enemies    *ecs.Group[*Enemy]
	particles  *ecs.Group[*Particle]

	collisions *CollisionWorld
	resolver   *component.CombatResolver
	effects    *AnimationPlayer
	magic      *MagicPlayer

	player  *Player
	weapon  *Weapon
	upgrade *UpgradeMenu
	paused  bool

	input        Input
	playerCenter cp.Vector

	monsterTracks map[string]component.Tracks
	weaponFrames  map[string]image.Image
	cfg           LevelConfig
}

// NewLevel builds the tiles, the player and the enemies of cfg.Layout.
func NewLevel(cfg LevelConfig) (*Level, error) {
	if cfg.Layout == nil || cfg.Tables == nil || cfg.Assets == nil {
		return nil, errors.New("obj: level needs a layout, tables and assets")
	}
	if err := cfg.Tables.Validate(); err != nil {
		return nil, err
	}
	if cfg.Cues == nil {
		cfg.Cues = component.NopCues{}
	}
	if cfg.Clock == nil {
		cfg.Clock = component.NewRealClock()
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	w := ecs.NewWorld()
	l := &Level{
		Width:  float64(cfg.Layout.Cols * common.TileSize),
		Height: float64(cfg.Layout.Rows * common.TileSize),

		world:      w,
		visible:    ecs.NewGroup[Renderable](w, "visible"),
		obstacles:  ecs.NewGroup[*Tile](w, "obstacles"),
		attacks:    ecs.NewGroup[component.Attack](w, "attacks"),
		attackable: ecs.NewGroup[component.Collider](w, "attackable"),
		enemies:    ecs.NewGroup[*Enemy](w, "enemies"),
		particles:  ecs.NewGroup[*Particle](w, "particles"),

		collisions:    NewCollisionWorld(),
		resolver:      component.NewCombatResolver(),
		monsterTracks: make(map[string]component.Tracks),
		cfg:           cfg,
	}
	l.effects = &AnimationPlayer{
		Lookup: func(name string) (prefabs.ParticleSpec, error) { return l.cfg.Tables.Particle(name) },
		Assets: cfg.Assets,
		Rand:   cfg.Rand,
		Sink:   l,
	}
	l.magic = &MagicPlayer{Particles: l.effects, Cues: cfg.Cues, Rand: cfg.Rand}
	l.resolver.Emitter.Handlers = append(l.resolver.Emitter.Handlers, logCombatEvent)

	frames, variants, err := l.preload(cfg.Tables)
	if err != nil {
		return nil, err
	}
	l.weaponFrames = frames
	l.effects.variants = variants

	if err := l.build(); err != nil {
		return nil, err
	}
	if l.player == nil {
		return nil, levels.ErrMissingPlayer
	}
	l.upgrade = NewUpgradeMenu(l.player, cfg.Tables.Player.UpgradeSelection())

	l.sched = ecs.NewScheduler(
		ecs.Stage{Name: "snapshot", Run: l.snapshotPlayer},
		ecs.Stage{Name: "player", Run: l.updatePlayer},
		ecs.Stage{Name: "bodies", Run: l.updateBodies},
		ecs.Stage{Name: "combat", Run: l.resolveCombat},
		ecs.Stage{Name: "enemies", Run: l.updateEnemies},
		ecs.Stage{Name: "cull", Run: l.cull},
	)

	logrus.WithFields(logrus.Fields{
		"rows":      cfg.Layout.Rows,
		"cols":      cfg.Layout.Cols,
		"obstacles": l.obstacles.Len(),
		"enemies":   l.enemies.Len(),
		"stages":    l.sched.Names(),
	}).Info("level: built")
	return l, nil
}

func logCombatEvent(evt component.CombatEvent) {
	logrus.WithFields(logrus.Fields{
		"type":     evt.Type,
		"attacker": evt.Attacker.String(),
		"target":   evt.Target.String(),
		"kind":     evt.Kind.String(),
	}).Debug("combat")
}

// preload loads every weapon frame and particle effect t refers to, so a
// missing graphic fails the load instead of a swing or a cast.
func (l *Level) preload(t *prefabs.Tables) (map[string]image.Image, map[string][]component.Track, error) {
	frames := make(map[string]image.Image, len(t.Weapons)*len(facingNames))
	for _, w := range t.Weapons {
		for f := range facingNames {
			name := WeaponFrame(w.Name, Facing(f))
			img, err := l.cfg.Assets.Image(name)
			if err != nil {
				return nil, nil, fmt.Errorf("obj: weapon %s: %w", w.Name, err)
			}
			frames[name] = img
		}
	}

	effects := &AnimationPlayer{Lookup: t.Particle, Assets: l.cfg.Assets}
	for _, p := range t.Particles {
		if _, err := effects.load(p.Name); err != nil {
			return nil, nil, err
		}
	}
	return frames, effects.variants, nil
}

func (l *Level) build() error {
	grass, err := l.cfg.Assets.Frames(path.Join(GraphicsDir, "grass"))
	if err != nil {
		return fmt.Errorf("obj: level grass: %w", err)
	}
	objects, err := l.cfg.Assets.Frames(path.Join(GraphicsDir, "objects"))
	if err != nil {
		return fmt.Errorf("obj: level objects: %w", err)
	}

	for _, cell := range l.cfg.Layout.Cells() {
		pos := common.NewRect(float64(cell.Col*common.TileSize), float64(cell.Row*common.TileSize), common.TileSize, common.TileSize)
		switch cell.Layer {
		case levels.LayerBoundary:
			l.addTile(TileBoundary, pos, nil)
		case levels.LayerGrass:
			if len(grass) == 0 {
				return fmt.Errorf("obj: level grass: %w", assets.ErrEmptyFolder)
			}
			t := l.addTile(TileGrass, pos, grass[l.cfg.Rand.Intn(len(grass))])
			t.onDestroy = l.destroyGrass
			l.attackable.Add(t.ID, t)
		case levels.LayerObject:
			if cell.Code < 0 || cell.Code >= len(objects) {
				return fmt.Errorf("%w: %d at row %d col %d", ErrUnknownObject, cell.Code, cell.Row, cell.Col)
			}
			l.addTile(TileObject, pos, objects[cell.Code])
		case levels.LayerEntity:
			var err error
			if cell.Code == levels.CodePlayer {
				err = l.addPlayer(cp.Vector{X: pos.X, Y: pos.Y})
			} else {
				err = l.addEnemy(cell.Code, cp.Vector{X: pos.X, Y: pos.Y})
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func (l *Level) addTile(kind TileKind, pos common.Rect, frame image.Image) *Tile {
	e := l.world.CreateEntity()
	t := NewTile(e, kind, pos, frame)
	if frame != nil {
		l.visible.Add(e, t)
	}
	l.obstacles.Add(e, t)
	l.collisions.Add(e, t.Hitbox())
	return t
}

func (l *Level) loadTracks(dir string, names []string) (component.Tracks, error) {
	tracks := make(component.Tracks, len(names))
	for _, name := range names {
		frames, err := l.cfg.Assets.Frames(path.Join(dir, name))
		if err != nil {
			return nil, err
		}
		tracks[name] = frames
	}
	return tracks, nil
}

func (l *Level) addPlayer(pos cp.Vector) error {
	spec := l.cfg.Tables.Player
	tracks, err := l.loadTracks(path.Join(GraphicsDir, spec.Graphics), PlayerTracks())
	if err != nil {
		return fmt.Errorf("obj: player graphics: %w", err)
	}
	e := l.world.CreateEntity()
	p, err := NewPlayer(e, pos, spec, l.cfg.Tables.Weapons, l.cfg.Tables.Magic, tracks, PlayerDeps{
		Events:    l,
		Cues:      l.cfg.Cues,
		Clock:     l.cfg.Clock,
		Obstacles: l.collisions,
	})
	if err != nil {
		return err
	}
	l.player = p
	l.visible.Add(e, p)
	return nil
}

func (l *Level) addEnemy(code int, pos cp.Vector) error {
	spec, err := l.cfg.Tables.MonsterByCode(code)
	if err != nil {
		return err
	}
	tracks, ok := l.monsterTracks[spec.Name]
	if !ok {
		tracks, err = l.loadTracks(path.Join(GraphicsDir, "monsters", spec.Name), EnemyTracks())
		if err != nil {
			return fmt.Errorf("obj: monster %s graphics: %w", spec.Name, err)
		}
		l.monsterTracks[spec.Name] = tracks
	}
	e := l.world.CreateEntity()
	en, err := NewEnemy(e, pos, spec, tracks, EnemyDeps{
		Events:    l,
		Cues:      l.cfg.Cues,
		Clock:     l.cfg.Clock,
		Obstacles: l.collisions,
		OnDeath:   l.removeEnemy,
	})
	if err != nil {
		return err
	}
	l.visible.Add(e, en)
	l.attackable.Add(e, en)
	l.enemies.Add(e, en)
	return nil
}

func (l *Level) removeEnemy(e *Enemy) {
	l.world.Kill(e.ID)
}

func (l *Level) destroyGrass(t *Tile) {
	center := t.Rect.Center()
	n := grassLeavesMin + l.cfg.Rand.Intn(grassLeavesMax-grassLeavesMin+1)
	for i := 0; i < n; i++ {
		if _, err := l.effects.CreateGrassParticles(center.Add(grassLeafOffset)); err != nil {
			logrus.WithError(err).Warn("level: grass particles")
			break
		}
	}
	l.collisions.Remove(t.ID)
	l.world.Kill(t.ID)
}

// Update runs one tick. The menu key toggles pause; while paused only the
// upgrade menu reads input.
func (l *Level) Update(in Input) {
	if in.ToggleMenu {
		l.paused = !l.paused
	}
	if l.paused {
		l.upgrade.Update(in, l.cfg.Clock.Now())
		return
	}
	l.input = in
	l.sched.Update(l.world)
}

func (l *Level) snapshotPlayer(*ecs.World) {
	l.playerCenter = l.player.Center()
}

func (l *Level) updatePlayer(*ecs.World) {
	l.player.Update(l.input)
}

func (l *Level) updateBodies(*ecs.World) {
	l.enemies.Each(func(_ ecs.Entity, e *Enemy) {
		e.Update()
	})
	l.particles.Each(func(_ ecs.Entity, p *Particle) {
		p.Update()
	})
}

func (l *Level) resolveCombat(*ecs.World) {
	l.resolver.TickHighlights()
	l.resolver.Resolve(l.attacks.Snapshot(), l.attackable.Snapshot())
}

func (l *Level) updateEnemies(*ecs.World) {
	l.enemies.Each(func(_ ecs.Entity, e *Enemy) {
		e.EnemyUpdate(l.playerCenter)
	})
}

func (l *Level) cull(w *ecs.World) {
	l.particles.Each(func(e ecs.Entity, p *Particle) {
		if p.Done() {
			w.Kill(e)
		}
	})
}

// CreateAttack spawns the weapon hitbox for the player's current swing.
func (l *Level) CreateAttack() {
	l.DestroyAttack()
	frame, ok := l.weaponFrames[WeaponFrame(l.player.CurrentWeapon().Name, l.player.Status.Facing)]
	if !ok {
		return
	}
	e := l.world.CreateEntity()
	w := NewWeapon(e, l.player, frame)
	l.weapon = w
	l.visible.Add(e, w)
	l.attacks.Add(e, w)
}

// DestroyAttack removes the weapon hitbox. It is a no-op without one.
func (l *Level) DestroyAttack() {
	if l.weapon == nil {
		return
	}
	l.weapon.dead = true
	l.world.Kill(l.weapon.ID)
	l.weapon = nil
}

// CreateMagic casts the named spell.
func (l *Level) CreateMagic(style string, strength, cost float64) {
	switch style {
	case prefabs.SpellHeal:
		l.magic.Heal(l.player, strength, cost)
	case prefabs.SpellFlame:
		l.magic.Flame(l.player, cost)
	}
}

// DamagePlayer applies an enemy attack unless the player is invulnerable.
func (l *Level) DamagePlayer(amount float64, attackType string) {
	if !l.player.TakeDamage(amount) {
		return
	}
	if _, err := l.effects.CreateParticles(attackType, l.player.Center()); err != nil {
		logrus.WithError(err).WithField("attack", attackType).Warn("level: attack particles")
	}
}

func (l *Level) TriggerDeathParticles(pos cp.Vector, particle string) {
	if _, err := l.effects.CreateParticles(particle, pos); err != nil {
		logrus.WithError(err).WithField("particle", particle).Warn("level: death particles")
	}
}

func (l *Level) AddExp(amount float64) {
	l.player.AddExp(amount)
}

// AddParticle registers a particle created by the animation player.
func (l *Level) AddParticle(p *Particle) {
	e := l.world.CreateEntity()
	p.ID = e
	l.visible.Add(e, p)
	l.particles.Add(e, p)
	if p.IsAttack() {
		l.attacks.Add(e, p)
	}
}

// ApplyTables swaps in reloaded tuning tables. Entities already built keep
// their stats; the player's loadout and every lookup use the new tables.
// Tables that fail to validate or preload leave the level unchanged.
func (l *Level) ApplyTables(t *prefabs.Tables) error {
	if t == nil {
		return nil
	}
	if err := t.Validate(); err != nil {
		return err
	}
	frames, variants, err := l.preload(t)
	if err != nil {
		return err
	}
	l.cfg.Tables = t
	l.weaponFrames = frames
	l.effects.variants = variants
	l.player.SetLoadout(t.Weapons, t.Magic)
	return nil
}

// Sprites returns the render state of every visible entity, y-sorted.
func (l *Level) Sprites() []Sprite {
	members := l.visible.Snapshot()
	out := make([]Sprite, 0, len(members))
	for _, r := range members {
		s := r.Sprite()
		if s.Frame == nil {
			continue
		}
		out = append(out, s)
	}
	SortByDepth(out)
	return out
}

func (l *Level) Player() *Player { return l.player }

func (l *Level) Upgrade() *UpgradeMenu { return l.upgrade }

func (l *Level) Paused() bool { return l.paused }

// Resolver exposes recent collisions for debug drawing.
func (l *Level) Resolver() *component.CombatResolver { return l.resolver }

// Enemies returns the live enemies in creation order.
func (l *Level) Enemies() []*Enemy { return l.enemies.Snapshot() }

// Particles returns the live particles in creation order.
func (l *Level) Particles() []*Particle { return l.particles.Snapshot() }

// Memberships lists the sets e currently belongs to.
func (l *Level) Memberships(e ecs.Entity) []string { return l.world.Memberships(e) }

func (l *Level) Counts() LevelCounts {
	return LevelCounts{
		Entities:   l.world.Count(),
		Visible:    l.visible.Len(),
		Obstacles:  l.obstacles.Len(),
		Attacks:    l.attacks.Len(),
		Attackable: l.attackable.Len(),
		Enemies:    l.enemies.Len(),
		Particles:  l.particles.Len(),
	}
}
