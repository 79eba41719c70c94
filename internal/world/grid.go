package world

import "math"

// DefaultRegionSize is the edge of a square region in world units.
const DefaultRegionSize = 32.0

// grid maps world coordinates onto a fixed 2D array of regions.
type grid struct {
	originX, originY float64
	regionSize       float64
	regionsX         int32
	regionsY         int32
}

func newGrid(cfg Config) grid {
	size := cfg.RegionSize
	if size <= 0 {
		size = DefaultRegionSize
	}
	return grid{
		originX:    cfg.OriginX,
		originY:    cfg.OriginY,
		regionSize: size,
		regionsX:   max(int32(math.Ceil(cfg.Width/size)), 1),
		regionsY:   max(int32(math.Ceil(cfg.Height/size)), 1),
	}
}

// regionIndex converts world coordinates to a region index.
func (g grid) regionIndex(x, y float64) (rx, ry int32) {
	rx = int32(math.Floor((x - g.originX) / g.regionSize))
	ry = int32(math.Floor((y - g.originY) / g.regionSize))
	return rx, ry
}

// valid checks if region index is within bounds
func (g grid) valid(rx, ry int32) bool {
	return rx >= 0 && rx < g.regionsX && ry >= 0 && ry < g.regionsY
}

// clamp limits a region index to the grid.
func (g grid) clamp(rx, ry int32) (int32, int32) {
	return min(max(rx, 0), g.regionsX-1), min(max(ry, 0), g.regionsY-1)
}
