package main

import (
	"errors"
	"image"
	"os"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/overworld/assets"
	"github.com/milk9111/overworld/common"
	"github.com/milk9111/overworld/component"
	"github.com/milk9111/overworld/levels"
	"github.com/milk9111/overworld/obj"
	"github.com/milk9111/overworld/prefabs"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/colornames"
)

const (
	floorImage = "graphics/tilemap/ground.png"
	titleImage = "graphics/test/titlescreen.png"
)

// Config is the command-line configuration of a game.
type Config struct {
	AssetsDir string
	MapDir    string
	Debug     bool
}

type Game struct {
	cfg Config

	tables *prefabs.Tables
	assets *assets.Dir
	sounds *assets.Sounds
	level  *obj.Level
	camera *obj.Camera
	hud    *HUD

	title    *ebitenui.UI
	titleImg image.Image
	floor    image.Image

	started bool
	quit    bool

	watcher *prefabs.Watcher
}

func NewGame(cfg Config) (*Game, error) {
	tables, err := prefabs.LoadTables()
	if err != nil {
		return nil, err
	}
	layout, err := levels.LoadDefault(cfg.MapDir)
	if err != nil {
		return nil, err
	}

	fsys := os.DirFS(cfg.AssetsDir)
	dir := assets.NewEbitenDir(fsys)
	sounds := assets.NewSounds(fsys, tables.Sounds)

	level, err := obj.NewLevel(obj.LevelConfig{
		Layout: layout,
		Tables: tables,
		Assets: dir,
		Cues:   sounds,
		Clock:  component.NewRealClock(),
	})
	if err != nil {
		return nil, err
	}

	floor, err := dir.Image(floorImage)
	if err != nil {
		return nil, err
	}

	g := &Game{
		cfg:    cfg,
		tables: tables,
		assets: dir,
		sounds: sounds,
		level:  level,
		camera: obj.NewCamera(common.BaseWidth, common.BaseHeight),
		hud:    NewHUD(tables.HUD, dir),
		floor:  floor,
	}
	g.camera.Follow(level.Player().Center())

	if g.titleImg, err = dir.Image(titleImage); err != nil {
		logrus.WithError(err).Warn("game: no title image")
	}
	g.title = NewTitleUI(g)

	if cfg.Debug {
		g.watcher, err = prefabs.NewWatcher(prefabs.OverrideDir)
		if err != nil {
			logrus.WithError(err).Warn("game: tuning hot reload disabled")
		}
	}

	return g, nil
}

func (g *Game) start() {
	if g.started {
		return
	}
	g.started = true
	g.sounds.PlayMusic()
	logrus.Info("game: started")
}

// Close stops the tuning watcher and the music.
func (g *Game) Close() {
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			logrus.WithError(err).Warn("game: closing watcher")
		}
	}
	g.sounds.StopMusic()
}

func (g *Game) Update() error {
	in := obj.PollInput()
	if in.Quit || g.quit {
		return ebiten.Termination
	}

	g.sounds.Update()
	g.reload()

	if !g.started {
		g.title.Update()
		if in.Start {
			g.start()
		}
		return nil
	}

	g.level.Update(in)
	g.camera.Follow(g.level.Player().Center())
	return nil
}

// reload applies tuning files changed on disk since the last tick.
func (g *Game) reload() {
	changed, err := g.watcher.Drain()
	if err != nil {
		logrus.WithError(err).Warn("game: tuning watcher")
	}
	if len(changed) == 0 {
		return
	}
	next := *g.tables
	for _, file := range changed {
		if err := next.Reload(file); err != nil {
			logrus.WithError(err).WithField("file", file).Warn("game: reload failed")
			continue
		}
		logrus.WithField("file", file).Info("game: tuning reloaded")
	}
	if err := g.level.ApplyTables(&next); err != nil {
		logrus.WithError(err).Warn("game: reloaded tuning rejected")
		return
	}
	g.tables = &next
	g.hud.SetSpec(next.HUD)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.hud.Water())

	if !g.started {
		if g.titleImg != nil {
			g.camera.DrawImage(screen, g.titleImg, g.camera.ViewTopLeft(), 255)
		}
		g.title.Draw(screen)
		return
	}

	g.camera.DrawImage(screen, g.floor, cp.Vector{}, 255)
	g.camera.DrawSprites(screen, g.level.Sprites())

	if g.cfg.Debug {
		for _, rec := range g.level.Resolver().Recent {
			debugRect(screen, g.camera, rec.Hit, colornames.Red)
			debugRect(screen, g.camera, rec.Hurt, colornames.Yellow)
		}
	}

	g.hud.Draw(screen, g.level.Player())
	if g.level.Paused() {
		g.hud.DrawUpgrade(screen, g.level.Upgrade())
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

// run drives g until the window closes or the player quits.
func run(g *Game) error {
	defer g.Close()
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
