package assets

import (
	"hash/fnv"
	"image"
	"image/color"
	"image/draw"

	"github.com/milk9111/overworld/common"
)

// Placeholder returns solid tiles for every name. Headless tools and tests
// use it in place of real graphics.
type Placeholder struct {
	// FramesPerSet is the number of frames returned by Frames; 0 means 4.
	FramesPerSet int
	// Size is the edge length of each frame; 0 means one tile.
	Size int
	// Sizes overrides Size per name.
	Sizes map[string]image.Point
	// Counts overrides FramesPerSet per name.
	Counts map[string]int
}

func (p Placeholder) Frames(name string) ([]image.Image, error) {
	n := p.FramesPerSet
	if c, ok := p.Counts[name]; ok {
		n = c
	}
	if n <= 0 {
		n = 4
	}
	out := make([]image.Image, n)
	for i := range out {
		out[i] = p.solid(name)
	}
	return out, nil
}

func (p Placeholder) MirroredFrames(name string) ([]image.Image, error) {
	return p.Frames(name)
}

func (p Placeholder) Image(name string) (image.Image, error) {
	return p.solid(name), nil
}

func (p Placeholder) solid(name string) image.Image {
	size := image.Pt(p.Size, p.Size)
	if size.X <= 0 {
		size = image.Pt(common.TileSize, common.TileSize)
	}
	if s, ok := p.Sizes[name]; ok {
		size = s
	}
	h := fnv.New32a()
	h.Write([]byte(name))
	sum := h.Sum32()
	img := image.NewRGBA(image.Rect(0, 0, size.X, size.Y))
	fill := color.NRGBA{R: uint8(sum), G: uint8(sum >> 8), B: uint8(sum >> 16), A: 255}
	draw.Draw(img, img.Bounds(), image.NewUniform(fill), image.Point{}, draw.Src)
	return img
}
