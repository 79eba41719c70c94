package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputePathSameCell(t *testing.T) {
	e := newFlatEngine(t)

	path := e.ComputePath(loc(0.2, 0.2, 0), loc(0.8, 0.7, 0), AllAreas)
	assert.Equal(t, PathComplete, path.Status)
	require.Len(t, path.Corners, 2)

	last, ok := path.Last()
	require.True(t, ok)
	assert.Equal(t, loc(0.8, 0.7, 0), last)
}

func TestComputePathFlatTerrain(t *testing.T) {
	e := newFlatEngine(t)

	from, to := loc(-20.5, -20.5, 0), loc(15.5, 10.5, 0)
	path := e.ComputePath(from, to, AllAreas)

	require.Equal(t, PathComplete, path.Status)
	assert.Equal(t, from, path.Corners[0])
	last, _ := path.Last()
	assert.Equal(t, to, last)
	assert.Len(t, path.Corners, 2, "open field is smoothed to a straight line")
}

func TestComputePathAroundWall(t *testing.T) {
	e := newWallEngine(t)

	from, to := loc(0.5, 20.5, 0), loc(20.5, 20.5, 0)
	path := e.ComputePath(from, to, AllAreas)

	require.Equal(t, PathComplete, path.Status)
	assert.Greater(t, len(path.Corners), 2, "path must bend through the gap")

	throughGap := false
	for _, c := range path.Corners {
		if c.Y <= 5.5 {
			throughGap = true
		}
	}
	assert.True(t, throughGap, "some corner lies at the gap")

	for i := 1; i < len(path.Corners); i++ {
		assert.True(t, e.CanMoveToTarget(path.Corners[i-1], path.Corners[i], AllAreas),
			"segment %d must be walkable", i)
	}
}

func TestComputePathEnclosedGoalIsPartial(t *testing.T) {
	e := newFlatEngine(t)
	// Closed box around (30, 30)
	e.BlockRect(25, 25, 35, 26)
	e.BlockRect(25, 34, 35, 35)
	e.BlockRect(25, 25, 26, 35)
	e.BlockRect(34, 25, 35, 35)

	to := loc(30.5, 30.5, 0)
	path := e.ComputePath(loc(0.5, 0.5, 0), to, AllAreas)

	require.Equal(t, PathPartial, path.Status)
	last, ok := path.Last()
	require.True(t, ok)
	assert.NotEqual(t, to, last)
	assert.LessOrEqual(t, last.PlanarDistance(to), 7.5, "ends next to the box")
	assert.True(t, e.IsWalkable(e.CellX(last.X), e.CellY(last.Y), AllAreas))
}

func TestComputePathStartOffSurfaceIsInvalid(t *testing.T) {
	e := newWallEngine(t)

	path := e.ComputePath(loc(10.5, 20.5, 0), loc(0.5, 0.5, 0), AllAreas)
	assert.Equal(t, PathInvalid, path.Status)
	_, ok := path.Last()
	assert.False(t, ok)
}

func TestComputePathGoalOffGridIsPartial(t *testing.T) {
	e := newFlatEngine(t)

	path := e.ComputePath(loc(40.5, 0.5, 0), loc(80, 0.5, 0), AllAreas)
	require.Equal(t, PathPartial, path.Status)
	last, _ := path.Last()
	assert.InDelta(t, 49.5, last.X, 1e-9, "stops at the grid edge")
}

func TestPathStatusString(t *testing.T) {
	assert.Equal(t, "INVALID", PathInvalid.String())
	assert.Equal(t, "PARTIAL", PathPartial.String())
	assert.Equal(t, "COMPLETE", PathComplete.String())
	assert.Equal(t, "UNKNOWN", PathStatus(42).String())
}
