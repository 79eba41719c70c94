package geo

import "math"

// CellX converts world X coordinate to grid column.
func (e *Engine) CellX(worldX float64) int32 {
	return int32(math.Floor((worldX - e.originX) / e.cellSize))
}

// CellY converts world Y coordinate to grid row.
func (e *Engine) CellY(worldY float64) int32 {
	return int32(math.Floor((worldY - e.originY) / e.cellSize))
}

// WorldX converts grid column to world X (centered in cell).
func (e *Engine) WorldX(cx int32) float64 {
	return e.originX + (float64(cx)+0.5)*e.cellSize
}

// WorldY converts grid row to world Y (centered in cell).
func (e *Engine) WorldY(cy int32) float64 {
	return e.originY + (float64(cy)+0.5)*e.cellSize
}

// InBounds reports whether (cx, cy) is inside the grid.
func (e *Engine) InBounds(cx, cy int32) bool {
	return cx >= 0 && cy >= 0 && cx < e.width && cy < e.height
}

func (e *Engine) index(cx, cy int32) int {
	return int(cy)*int(e.width) + int(cx)
}
