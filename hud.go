package main

import (
	"fmt"
	"image/color"
	"path"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/overworld/assets"
	"github.com/milk9111/overworld/common"
	"github.com/milk9111/overworld/obj"
	"github.com/milk9111/overworld/prefabs"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

const (
	hudBorder    = 3
	hudMargin    = 10
	hudBarGap    = 4
	upgradeInset = 60
	upgradeLabel = 20
)

// HUD draws the player's bars, exp, selected weapon and spell, and the
// upgrade menu.
type HUD struct {
	spec   prefabs.HUDSpec
	face   ebtext.Face
	assets assets.Provider

	icons  map[string]*ebiten.Image
	failed map[string]bool
}

func NewHUD(spec prefabs.HUDSpec, provider assets.Provider) *HUD {
	return &HUD{
		spec:   spec,
		face:   ebtext.NewGoXFace(basicfont.Face7x13),
		assets: provider,
		icons:  make(map[string]*ebiten.Image),
		failed: make(map[string]bool),
	}
}

// SetSpec applies reloaded HUD tuning.
func (h *HUD) SetSpec(spec prefabs.HUDSpec) {
	h.spec = spec
}

func (h *HUD) Water() color.Color {
	return h.spec.Water.Or(color.RGBA{R: 0x71, G: 0xdd, B: 0xee, A: 0xff})
}

func (h *HUD) bg() color.Color     { return h.spec.BG.Or(color.RGBA{R: 0x22, G: 0x22, B: 0x22, A: 0xff}) }
func (h *HUD) border() color.Color { return h.spec.Border.Or(color.RGBA{R: 0x11, G: 0x11, B: 0x11, A: 0xff}) }
func (h *HUD) text() color.Color   { return h.spec.Text.Or(colornames.Whitesmoke) }

func (h *HUD) scale() float64 {
	if h.spec.FontScale <= 0 {
		return 1
	}
	return h.spec.FontScale
}

func (h *HUD) barHeight() float64 {
	if h.spec.BarHeight <= 0 {
		return 20
	}
	return h.spec.BarHeight
}

func (h *HUD) boxSize() float64 {
	if h.spec.ItemBoxSize <= 0 {
		return 80
	}
	return h.spec.ItemBoxSize
}

// Draw renders the in-game overlay for p.
func (h *HUD) Draw(screen *ebiten.Image, p *obj.Player) {
	if p == nil {
		return
	}
	barH := h.barHeight()
	health := common.NewRect(hudMargin, hudMargin, h.spec.HealthBarWidth, barH)
	energy := common.NewRect(hudMargin, health.Bottom()+hudBarGap, h.spec.EnergyBarWidth, barH)
	h.bar(screen, p.Health.Current, p.Stats[obj.StatHealth], health, h.spec.Health.Or(colornames.Red))
	h.bar(screen, p.Energy, p.Stats[obj.StatEnergy], energy, h.spec.Energy.Or(colornames.Blue))

	h.exp(screen, p.Exp)

	size := h.boxSize()
	bottom := float64(common.BaseHeight)
	weapon := p.CurrentWeapon()
	h.selectionBox(screen, common.NewRect(hudMargin, bottom-size-hudMargin, size, size), !p.CanSwitchWeapon(), weapon.Graphic)
	spell := p.CurrentSpell()
	// the spell box sits beside the weapon box, slightly lower
	h.selectionBox(screen, common.NewRect(size, bottom-size-hudMargin/2, size, size), !p.CanSwitchMagic(), spell.Graphic)
}

func (h *HUD) bar(screen *ebiten.Image, current, max float64, r common.Rect, fill color.Color) {
	fillRect(screen, r, h.bg())
	ratio := 0.0
	if max > 0 {
		ratio = common.Clamp(current/max, 0, 1)
	}
	filled := r
	filled.Width = r.Width * ratio
	fillRect(screen, filled, fill)
	strokeRect(screen, r, h.border())
}

func (h *HUD) exp(screen *ebiten.Image, exp float64) {
	label := strconv.Itoa(int(exp))
	w, ht := h.measure(label)
	r := common.NewRect(common.BaseWidth-20-w, common.BaseHeight-20-ht, w, ht)
	box := r.Inflate(20, 20)
	fillRect(screen, box, h.bg())
	h.drawText(screen, label, r.X, r.Y, h.text())
	strokeRect(screen, box, h.border())
}

func (h *HUD) selectionBox(screen *ebiten.Image, r common.Rect, switching bool, graphic string) {
	fillRect(screen, r, h.bg())
	border := h.border()
	if switching {
		border = h.spec.BorderActive.Or(colornames.Gold)
	}
	strokeRect(screen, r, border)

	icon := h.icon(graphic)
	if icon == nil {
		return
	}
	b := icon.Bounds()
	c := r.Center()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(c.X-float64(b.Dx())/2, c.Y-float64(b.Dy())/2)
	screen.DrawImage(icon, op)
}

func (h *HUD) icon(graphic string) *ebiten.Image {
	if graphic == "" || h.assets == nil || h.failed[graphic] {
		return nil
	}
	if img, ok := h.icons[graphic]; ok {
		return img
	}
	img, err := h.assets.Image(path.Join(obj.GraphicsDir, graphic))
	if err != nil {
		h.failed[graphic] = true
		logrus.WithError(err).WithField("graphic", graphic).Warn("hud: icon unavailable")
		return nil
	}
	e, ok := img.(*ebiten.Image)
	if !ok {
		e = ebiten.NewImageFromImage(img)
	}
	h.icons[graphic] = e
	return e
}

// DrawUpgrade renders one column per stat with its name, value bar and
// cost. The selected column is highlighted.
func (h *HUD) DrawUpgrade(screen *ebiten.Image, m *obj.UpgradeMenu) {
	if m == nil {
		return
	}
	items := m.Items()
	n := float64(len(items))
	width := float64(common.BaseWidth) / (n + 1)
	height := float64(common.BaseHeight) * 0.8
	top := float64(common.BaseHeight) * 0.1
	inc := float64(common.BaseWidth) / n

	for i, item := range items {
		left := float64(i)*inc + (inc-width)/2
		h.upgradeItem(screen, common.NewRect(left, top, width, height), item)
	}
}

func (h *HUD) upgradeItem(screen *ebiten.Image, r common.Rect, item obj.UpgradeItem) {
	bg, textColor, barColor := h.bg(), h.text(), h.spec.Bar.Or(colornames.Whitesmoke)
	if item.Selected {
		bg = h.spec.UpgradeBGSelected.Or(colornames.Whitesmoke)
		textColor = h.spec.TextSelected.Or(color.RGBA{R: 0x11, G: 0x11, B: 0x11, A: 0xff})
		barColor = h.spec.BarSelected.Or(color.RGBA{R: 0x11, G: 0x11, B: 0x11, A: 0xff})
	}
	fillRect(screen, r, bg)
	strokeRect(screen, r, h.border())

	name := item.Stat.String()
	w, _ := h.measure(name)
	mt := r.MidTop()
	h.drawText(screen, name, mt.X-w/2, mt.Y+upgradeLabel, textColor)

	cost := fmt.Sprintf("Cost : %d", int(item.Cost))
	w, ht := h.measure(cost)
	mb := r.MidBottom()
	h.drawText(screen, cost, mb.X-w/2, mb.Y-upgradeLabel-ht, textColor)

	barTop := mt.Y + upgradeInset
	barBottom := mb.Y - upgradeInset
	vector.StrokeLine(screen, float32(mt.X), float32(barTop), float32(mt.X), float32(barBottom), 5, barColor, false)
	full := barBottom - barTop
	rel := 0.0
	if item.Max > 0 {
		rel = common.Clamp(item.Value/item.Max, 0, 1) * full
	}
	fillRect(screen, common.NewRect(mt.X-15, barBottom-rel, 30, 10), barColor)
}

func (h *HUD) measure(s string) (float64, float64) {
	w, ht := ebtext.Measure(s, h.face, 0)
	return w * h.scale(), ht * h.scale()
}

func (h *HUD) drawText(screen *ebiten.Image, s string, x, y float64, clr color.Color) {
	op := &ebtext.DrawOptions{}
	op.GeoM.Scale(h.scale(), h.scale())
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	ebtext.Draw(screen, s, h.face, op)
}

func fillRect(screen *ebiten.Image, r common.Rect, clr color.Color) {
	if r.Width <= 0 || r.Height <= 0 {
		return
	}
	vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), clr, false)
}

func strokeRect(screen *ebiten.Image, r common.Rect, clr color.Color) {
	vector.StrokeRect(screen, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), hudBorder, clr, false)
}

// debugRect outlines a world-space box, used for hitbox highlighting.
func debugRect(screen *ebiten.Image, cam *obj.Camera, r common.Rect, clr color.Color) {
	tl := cam.ToScreen(cp.Vector{X: r.X, Y: r.Y})
	vector.StrokeRect(screen, float32(tl.X), float32(tl.Y), float32(r.Width), float32(r.Height), 1, clr, false)
}
