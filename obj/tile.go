package obj

import (
	"image"

	"github.com/milk9111/overworld/common"
	"github.com/milk9111/overworld/ecs"
)

// TileKind classifies static map tiles.
type TileKind int

const (
	TileBoundary TileKind = iota
	TileGrass
	TileObject
)

func (k TileKind) String() string {
	switch k {
	case TileGrass:
		return "grass"
	case TileObject:
		return "object"
	default:
		return "invisible"
	}
}

// hitboxOffset is the vertical inflate applied to each tile kind's hitbox.
func (k TileKind) hitboxOffset() float64 {
	switch k {
	case TileGrass:
		return -10
	case TileObject:
		return -40
	default:
		return 0
	}
}

// Tile is a static obstacle. Grass tiles are also attackable and vanish when
// hit.
type Tile struct {
	ID    ecs.Entity
	Kind  TileKind
	Rect  common.Rect
	Frame image.Image

	hitbox    common.Rect
	onDestroy func(t *Tile)
	destroyed bool
}

// NewTile places a tile at a grid position. Object tiles are anchored one
// tile higher since their images are two tiles tall.
func NewTile(id ecs.Entity, kind TileKind, pos common.Rect, frame image.Image) *Tile {
	w, h := float64(common.TileSize), float64(common.TileSize)
	if frame != nil {
		b := frame.Bounds()
		w, h = float64(b.Dx()), float64(b.Dy())
	}
	rect := common.NewRect(pos.X, pos.Y, w, h)
	if kind == TileObject {
		rect.Y -= common.TileSize
	}
	return &Tile{
		ID:     id,
		Kind:   kind,
		Rect:   rect,
		Frame:  frame,
		hitbox: rect.Inflate(0, kind.hitboxOffset()),
	}
}

func (t *Tile) Entity() ecs.Entity  { return t.ID }
func (t *Tile) Hitbox() common.Rect { return t.hitbox }
func (t *Tile) Alive() bool         { return t != nil && !t.destroyed }

// Destroy removes a grass tile through the level hook. It runs at most once.
func (t *Tile) Destroy() {
	if t == nil || t.destroyed {
		return
	}
	t.destroyed = true
	if t.onDestroy != nil {
		t.onDestroy(t)
	}
}

func (t *Tile) Sprite() Sprite {
	return Sprite{Rect: t.Rect, Frame: t.Frame, Alpha: 255}
}
