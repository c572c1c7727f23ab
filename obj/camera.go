package obj

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/overworld/common"
)

// Camera keeps a world point at the center of the screen and draws y-sorted
// sprites relative to it.
type Camera struct {
	PosX float64
	PosY float64

	screenW int
	screenH int

	// smoothing factor (0..1). 0 snaps to the target every tick.
	smooth float64

	converted map[image.Image]*ebiten.Image
}

// NewCamera creates a camera for the given logical screen size.
func NewCamera(screenW, screenH int) *Camera {
	return &Camera{
		PosX:      float64(screenW) / 2.0,
		PosY:      float64(screenH) / 2.0,
		screenW:   screenW,
		screenH:   screenH,
		converted: make(map[image.Image]*ebiten.Image),
	}
}

// SetScreenSize updates the logical screen size used by the camera.
func (c *Camera) SetScreenSize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	c.screenW = w
	c.screenH = h
}

func (c *Camera) SetSmooth(f float64) {
	c.smooth = common.Clamp(f, 0, 1)
}

// Follow moves the camera toward target. Call from the fixed-rate Update
// loop.
func (c *Camera) Follow(target cp.Vector) {
	if c.smooth <= 0 {
		c.PosX = target.X
		c.PosY = target.Y
	} else {
		c.PosX += (target.X - c.PosX) * c.smooth
		c.PosY += (target.Y - c.PosY) * c.smooth
	}
	// whole pixels keep tiles from shimmering
	c.PosX = math.Round(c.PosX)
	c.PosY = math.Round(c.PosY)
}

// ViewTopLeft returns the world-space top-left of the current view.
func (c *Camera) ViewTopLeft() cp.Vector {
	return cp.Vector{
		X: c.PosX - float64(c.screenW)/2.0,
		Y: c.PosY - float64(c.screenH)/2.0,
	}
}

// View is the world-space rectangle on screen.
func (c *Camera) View() common.Rect {
	tl := c.ViewTopLeft()
	return common.NewRect(tl.X, tl.Y, float64(c.screenW), float64(c.screenH))
}

// ToScreen maps a world point to screen space.
func (c *Camera) ToScreen(p cp.Vector) cp.Vector {
	return p.Sub(c.ViewTopLeft())
}

// DrawImage draws img with its top-left at world point at.
func (c *Camera) DrawImage(dst *ebiten.Image, img image.Image, at cp.Vector, alpha uint8) {
	src := c.ebitenImage(img)
	if src == nil || alpha == 0 {
		return
	}
	pos := c.ToScreen(at)
	op := &ebiten.DrawImageOptions{}
	op.Filter = ebiten.FilterNearest
	op.GeoM.Translate(pos.X, pos.Y)
	if alpha < 255 {
		op.ColorScale.ScaleAlpha(float32(alpha) / 255)
	}
	dst.DrawImage(src, op)
}

// DrawSprites draws sprites in slice order, skipping those outside the
// view. Pass them already sorted by depth.
func (c *Camera) DrawSprites(dst *ebiten.Image, sprites []Sprite) {
	view := c.View()
	for _, s := range sprites {
		if !s.Rect.Intersects(view) {
			continue
		}
		c.DrawImage(dst, s.Frame, cp.Vector{X: s.Rect.X, Y: s.Rect.Y}, s.Alpha)
	}
}

func (c *Camera) ebitenImage(img image.Image) *ebiten.Image {
	if img == nil {
		return nil
	}
	if e, ok := img.(*ebiten.Image); ok {
		return e
	}
	if e, ok := c.converted[img]; ok {
		return e
	}
	e := ebiten.NewImageFromImage(img)
	c.converted[img] = e
	return e
}
