package geo

import "github.com/udisondev/npcwarden/internal/model"

// CanSeeTarget checks line of sight between two world positions.
// Walks the cells under the segment: a solid cell, or terrain rising above
// the segment's height at that cell, blocks the view.
func (e *Engine) CanSeeTarget(from, to model.Location) bool {
	sx, sy := e.CellX(from.X), e.CellY(from.Y)
	ex, ey := e.CellX(to.X), e.CellY(to.Y)

	total := float64(max(abs32(ex-sx), abs32(ey-sy)))
	step := 0

	it := NewLineIterator(sx, sy, ex, ey)
	for it.Next() {
		cx, cy := it.X(), it.Y()
		if !e.InBounds(cx, cy) {
			step++
			continue
		}
		if e.IsSolid(cx, cy) {
			return false
		}

		// Expected Z along the straight line at this cell
		t := 0.0
		if total > 0 {
			t = float64(step) / total
		}
		lineZ := from.Z + (to.Z-from.Z)*t
		if e.cellHeight(cx, cy) > lineZ {
			return false
		}
		step++
	}
	return true
}

// CanMoveToTarget checks whether a walker can go in a straight line from
// one position to another: every crossed cell walkable for mask and no
// step higher than MaxStepHeight.
func (e *Engine) CanMoveToTarget(from, to model.Location, mask int32) bool {
	sx, sy := e.CellX(from.X), e.CellY(from.Y)
	ex, ey := e.CellX(to.X), e.CellY(to.Y)

	if !e.IsWalkable(sx, sy, mask) {
		return false
	}

	prevX, prevY := sx, sy
	it := NewLineIterator(sx, sy, ex, ey)
	for it.Next() {
		cx, cy := it.X(), it.Y()
		if cx == prevX && cy == prevY {
			continue
		}
		if !e.canStep(prevX, prevY, cx, cy, mask) {
			return false
		}
		// Diagonal move: refuse to cut a blocked corner
		if cx != prevX && cy != prevY {
			if !e.IsWalkable(prevX, cy, mask) || !e.IsWalkable(cx, prevY, mask) {
				return false
			}
		}
		prevX, prevY = cx, cy
	}
	return true
}

// canStep reports whether a walker may move between adjacent cells.
func (e *Engine) canStep(fromX, fromY, toX, toY int32, mask int32) bool {
	if !e.IsWalkable(toX, toY, mask) {
		return false
	}
	dz := e.cellHeight(toX, toY) - e.cellHeight(fromX, fromY)
	return dz <= MaxStepHeight && dz >= -MaxStepHeight
}
