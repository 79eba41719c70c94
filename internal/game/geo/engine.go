package geo

import (
	"math"

	"github.com/udisondev/npcwarden/internal/model"
)

// Config describes the grid covered by an Engine.
type Config struct {
	OriginX    float64 // world X of the grid's lower-left corner
	OriginY    float64 // world Y of the grid's lower-left corner
	Width      int32   // columns
	Height     int32   // rows
	CellSize   float64 // world units per cell side
	BaseHeight float64 // terrain height outside of the grid and default inside
}

// Engine is the navigation grid: per-cell terrain height, navigation area,
// and solid (sight-blocking) flag. Immutable after setup; safe for concurrent reads.
type Engine struct {
	originX, originY float64
	cellSize         float64
	width, height    int32
	baseHeight       float64

	heights []float64
	areas   []int8
	solid   []bool
}

// NewEngine creates a flat, fully walkable grid.
func NewEngine(cfg Config) *Engine {
	if cfg.CellSize <= 0 {
		cfg.CellSize = 1
	}
	if cfg.Width < 1 {
		cfg.Width = 1
	}
	if cfg.Height < 1 {
		cfg.Height = 1
	}

	n := int(cfg.Width) * int(cfg.Height)
	e := &Engine{
		originX:    cfg.OriginX,
		originY:    cfg.OriginY,
		cellSize:   cfg.CellSize,
		width:      cfg.Width,
		height:     cfg.Height,
		baseHeight: cfg.BaseHeight,
		heights:    make([]float64, n),
		areas:      make([]int8, n),
		solid:      make([]bool, n),
	}
	for i := range e.heights {
		e.heights[i] = cfg.BaseHeight
	}
	return e
}

// CellSize returns world units per cell side.
func (e *Engine) CellSize() float64 {
	return e.cellSize
}

// SetCellHeight sets the terrain height of one cell.
func (e *Engine) SetCellHeight(cx, cy int32, h float64) {
	if !e.InBounds(cx, cy) {
		return
	}
	e.heights[e.index(cx, cy)] = h
}

// SetHeightFunc samples fn at every cell center.
func (e *Engine) SetHeightFunc(fn func(x, y float64) float64) {
	for cy := range e.height {
		for cx := range e.width {
			e.heights[e.index(cx, cy)] = fn(e.WorldX(cx), e.WorldY(cy))
		}
	}
}

// SetAreaRect assigns a navigation area to every cell whose center lies in the rectangle.
func (e *Engine) SetAreaRect(minX, minY, maxX, maxY float64, area int8) {
	e.forEachCellIn(minX, minY, maxX, maxY, func(i int) {
		e.areas[i] = area
	})
}

// BlockRect turns the rectangle into a wall: removed from the navigation
// surface and opaque for line of sight.
func (e *Engine) BlockRect(minX, minY, maxX, maxY float64) {
	e.forEachCellIn(minX, minY, maxX, maxY, func(i int) {
		e.areas[i] = AreaNone
		e.solid[i] = true
	})
}

func (e *Engine) forEachCellIn(minX, minY, maxX, maxY float64, fn func(i int)) {
	if minX > maxX {
		minX, maxX = maxX, minX
	}
	if minY > maxY {
		minY, maxY = maxY, minY
	}
	for cy := max(e.CellY(minY), 0); cy <= min(e.CellY(maxY), e.height-1); cy++ {
		for cx := max(e.CellX(minX), 0); cx <= min(e.CellX(maxX), e.width-1); cx++ {
			wx, wy := e.WorldX(cx), e.WorldY(cy)
			if wx < minX || wx > maxX || wy < minY || wy > maxY {
				continue
			}
			fn(e.index(cx, cy))
		}
	}
}

// HeightAt returns the terrain height at world (x, y).
// Outside the grid the base height is returned.
func (e *Engine) HeightAt(x, y float64) float64 {
	cx, cy := e.CellX(x), e.CellY(y)
	if !e.InBounds(cx, cy) {
		return e.baseHeight
	}
	return e.heights[e.index(cx, cy)]
}

// IsWalkable reports whether the cell is on the navigation surface for mask.
func (e *Engine) IsWalkable(cx, cy int32, mask int32) bool {
	if !e.InBounds(cx, cy) {
		return false
	}
	return areaAllowed(e.areas[e.index(cx, cy)], mask)
}

// IsSolid reports whether the cell blocks line of sight.
func (e *Engine) IsSolid(cx, cy int32) bool {
	if !e.InBounds(cx, cy) {
		return false
	}
	return e.solid[e.index(cx, cy)]
}

func (e *Engine) cellHeight(cx, cy int32) float64 {
	return e.heights[e.index(cx, cy)]
}

// SampleNavigable projects loc onto the nearest navigable point within
// radius (3D distance). Returns false when nothing navigable is in range.
func (e *Engine) SampleNavigable(loc model.Location, radius float64, mask int32) (model.Location, bool) {
	if radius < 0 {
		return model.Location{}, false
	}

	// Point already above the surface: project straight down/up.
	cx, cy := e.CellX(loc.X), e.CellY(loc.Y)
	if e.IsWalkable(cx, cy, mask) {
		onSurface := loc.WithZ(e.cellHeight(cx, cy))
		if math.Abs(onSurface.Z-loc.Z) <= radius {
			return onSurface, true
		}
	}

	span := int32(math.Ceil(radius/e.cellSize)) + 1
	best := model.Location{}
	bestDistSq := radius * radius
	found := false

	for ny := cy - span; ny <= cy+span; ny++ {
		for nx := cx - span; nx <= cx+span; nx++ {
			if !e.IsWalkable(nx, ny, mask) {
				continue
			}
			candidate := model.NewLocation(e.WorldX(nx), e.WorldY(ny), e.cellHeight(nx, ny))
			distSq := loc.DistanceSquared(candidate)
			if distSq <= bestDistSq {
				best = candidate
				bestDistSq = distSq
				found = true
			}
		}
	}

	return best, found
}
