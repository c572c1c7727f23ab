package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/overworld/assets"
	"github.com/milk9111/overworld/component"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/colornames"
)

const viewSize = 512

type viewer struct {
	anim   *component.Animator
	folder string
	scale  float64
	paused bool
	wraps  int
}

func (v *viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		v.paused = !v.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		v.anim.Restart()
	}
	if v.paused {
		return nil
	}
	if v.anim.Advance() {
		v.wraps++
	}
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Black)
	frame := v.anim.Frame()
	if frame == nil {
		return
	}
	img, ok := frame.(*ebiten.Image)
	if !ok {
		img = ebiten.NewImageFromImage(frame)
	}
	fw, fh := component.FrameSize(frame)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(v.scale, v.scale)
	op.GeoM.Translate((viewSize-fw*v.scale)/2, (viewSize-fh*v.scale)/2)
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(img, op)

	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s  frame %d/%d  loops %d\nspace: pause  r: restart  esc: quit",
		v.folder, v.anim.Index()+1, len(v.anim.Tracks[v.anim.Current()]), v.wraps))
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return viewSize, viewSize
}

func main() {
	root := flag.String("assets", ".", "asset root directory")
	folder := flag.String("folder", "graphics/player/down", "frame folder relative to the asset root")
	speed := flag.Float64("speed", component.DefaultAnimationSpeed, "frames advanced per tick")
	scale := flag.Float64("scale", 2, "draw scale")
	mirror := flag.Bool("mirror", false, "flip frames horizontally")
	flag.Parse()

	dir := assets.NewEbitenDir(os.DirFS(*root))
	load := dir.Frames
	if *mirror {
		load = dir.MirroredFrames
	}
	frames, err := load(*folder)
	if err != nil {
		logrus.WithError(err).WithField("folder", *folder).Fatal("animview: cannot load frames")
	}
	logrus.WithFields(logrus.Fields{"folder": *folder, "frames": len(frames)}).Info("animview: loaded")

	v := &viewer{
		anim:   component.NewAnimator(component.Tracks{*folder: frames}, *speed, *folder),
		folder: *folder,
		scale:  *scale,
	}
	ebiten.SetWindowSize(viewSize, viewSize)
	ebiten.SetWindowTitle("animview")
	if err := ebiten.RunGame(v); err != nil && err != ebiten.Termination {
		logrus.WithError(err).Fatal("animview: exited")
	}
}
