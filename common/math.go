package common

const (
	// TileSize is the edge length of one map cell in pixels.
	TileSize = 64

	BaseWidth  = 1280
	BaseHeight = 720

	// TPS is the fixed simulation rate; one tick per rendered frame.
	TPS = 60
)

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
