package main

import (
	"flag"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/overworld/common"
	"github.com/sirupsen/logrus"
)

func main() {
	assetsDir := flag.String("assets", ".", "directory holding graphics/ and audio/")
	mapDir := flag.String("map", "", "directory with map_*.csv layer files (embedded map when empty)")
	debug := flag.Bool("debug", false, "enable debug mode (hitboxes, debug logs, tuning hot reload)")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	fullscreen := flag.Bool("fullscreen", false, "start fullscreen")
	flag.Parse()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if *debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("overworld")
	ebiten.SetFullscreen(*fullscreen)
	ebiten.SetTPS(common.TPS)

	game, err := NewGame(Config{AssetsDir: *assetsDir, MapDir: *mapDir, Debug: *debug})
	if err != nil {
		logrus.WithError(err).Fatal("failed to start")
	}

	if err := run(game); err != nil {
		logrus.WithError(err).Fatal("game exited")
	}
}
