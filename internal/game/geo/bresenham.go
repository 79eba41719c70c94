package geo

// LineIterator steps through grid cells along a 2D Bresenham line.
type LineIterator struct {
	currentX, currentY int32
	targetX, targetY   int32
	deltaX, deltaY     int32
	stepX, stepY       int32
	err                int32
	started            bool
}

// NewLineIterator creates a line iterator from (sx, sy) to (ex, ey), inclusive.
func NewLineIterator(sx, sy, ex, ey int32) *LineIterator {
	it := &LineIterator{
		currentX: sx, currentY: sy,
		targetX: ex, targetY: ey,
		deltaX: abs32(ex - sx),
		deltaY: -abs32(ey - sy),
		stepX:  1,
		stepY:  1,
	}
	if sx > ex {
		it.stepX = -1
	}
	if sy > ey {
		it.stepY = -1
	}
	it.err = it.deltaX + it.deltaY
	return it
}

// Next advances the iterator to the next cell.
// The first call yields the start cell; returns false once the target was yielded.
func (it *LineIterator) Next() bool {
	if !it.started {
		it.started = true
		return true
	}

	if it.currentX == it.targetX && it.currentY == it.targetY {
		return false
	}

	e2 := 2 * it.err
	if e2 >= it.deltaY {
		it.err += it.deltaY
		it.currentX += it.stepX
	}
	if e2 <= it.deltaX {
		it.err += it.deltaX
		it.currentY += it.stepY
	}
	return true
}

// X returns current column.
func (it *LineIterator) X() int32 { return it.currentX }

// Y returns current row.
func (it *LineIterator) Y() int32 { return it.currentY }

func abs32(x int32) int32 {
	if x < 0 {
		return -x
	}
	return x
}
