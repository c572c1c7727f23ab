package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/milk9111/overworld/assets"
	"github.com/milk9111/overworld/component"
	"github.com/milk9111/overworld/levels"
	"github.com/milk9111/overworld/obj"
	"github.com/milk9111/overworld/prefabs"
	"github.com/sirupsen/logrus"
)

func main() {
	mapDir := flag.String("map", "", "directory with map_*.csv layer files (embedded map when empty)")
	ticks := flag.Int("ticks", 0, "idle ticks to simulate after building")
	seed := flag.Int64("seed", 1, "random seed")
	verbose := flag.Bool("v", false, "log combat events")
	flag.Parse()

	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	if err := check(*mapDir, *ticks, *seed); err != nil {
		logrus.WithError(err).Error("mapcheck: failed")
		os.Exit(1)
	}
}

func check(mapDir string, ticks int, seed int64) error {
	tables, err := prefabs.LoadTables()
	if err != nil {
		return err
	}
	layout, err := levels.LoadDefault(mapDir)
	if err != nil {
		return err
	}

	// one placeholder frame per object index the layout uses
	objects := 0
	for _, c := range layout.Cells() {
		if c.Layer == levels.LayerObject && c.Code+1 > objects {
			objects = c.Code + 1
		}
	}

	clock := &component.ManualClock{}
	level, err := obj.NewLevel(obj.LevelConfig{
		Layout: layout,
		Tables: tables,
		Assets: assets.Placeholder{Counts: map[string]int{obj.GraphicsDir + "/objects": objects}},
		Clock:  clock,
		Rand:   rand.New(rand.NewSource(seed)),
	})
	if err != nil {
		return err
	}

	for i := 0; i < ticks; i++ {
		clock.Advance(time.Second / 60)
		level.Update(obj.Input{})
	}

	c := level.Counts()
	fmt.Printf("map        %dx%d\n", layout.Cols, layout.Rows)
	for _, layer := range levels.Layers {
		fmt.Printf("%-10s %d cells\n", layer, layout.Count(layer))
	}
	fmt.Printf("entities   %d\n", c.Entities)
	fmt.Printf("visible    %d\n", c.Visible)
	fmt.Printf("obstacles  %d\n", c.Obstacles)
	fmt.Printf("attackable %d\n", c.Attackable)
	fmt.Printf("enemies    %d\n", c.Enemies)
	fmt.Printf("particles  %d\n", c.Particles)
	p := level.Player()
	fmt.Printf("player     %.0f,%.0f health %.0f energy %.2f\n", p.Center().X, p.Center().Y, p.Health.Current, p.Energy)
	return nil
}
