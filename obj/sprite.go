package obj

import (
	"image"
	"sort"

	"github.com/milk9111/overworld/common"
)

// Sprite is the render state of one visible entity.
type Sprite struct {
	Rect  common.Rect
	Frame image.Image
	Alpha uint8
}

// Depth is the y-sort key: sprites with a lower center are drawn later.
func (s Sprite) Depth() float64 {
	return s.Rect.Center().Y
}

// SortByDepth orders sprites for drawing. Equal depths keep their order.
func SortByDepth(sprites []Sprite) {
	sort.SliceStable(sprites, func(i, j int) bool {
		return sprites[i].Depth() < sprites[j].Depth()
	})
}
