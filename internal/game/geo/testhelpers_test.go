package geo

import (
	"testing"

	"github.com/udisondev/npcwarden/internal/model"
)

// newFlatEngine creates a 100×100 grid of 1-unit cells covering [-50, 50)² at height 0.
func newFlatEngine(t *testing.T) *Engine {
	t.Helper()
	return NewEngine(Config{
		OriginX:  -50,
		OriginY:  -50,
		Width:    100,
		Height:   100,
		CellSize: 1,
	})
}

// newWallEngine adds a wall along x∈[10,11] with a gap for |y| < 5.
func newWallEngine(t *testing.T) *Engine {
	t.Helper()
	e := newFlatEngine(t)
	e.BlockRect(10, -50, 11, -5)
	e.BlockRect(10, 5, 11, 50)
	return e
}

func loc(x, y, z float64) model.Location {
	return model.NewLocation(x, y, z)
}
