package geo

// Pathfinding configuration.
const (
	MaxPathfindIterations = 7000

	// MaxStepHeight is the largest height difference between two adjacent
	// cells that a walker can climb.
	MaxStepHeight = 1.0

	// A* weights.
	WeightStraight = 1.0
	WeightDiagonal = 1.41421356 // sqrt(2)
	WeightRough    = 2.5        // crossing a steep (but climbable) step
)

// Navigation area indices. A cell's area selects the bit tested against an
// agent's area mask: walkable iff mask & (1 << area) != 0.
const (
	AreaWalkable int8 = 0
	AreaRoad     int8 = 3
	AreaWater    int8 = 4

	// AreaNone marks a cell that is not part of the navigation surface.
	AreaNone int8 = -1
)

// AllAreas is the area mask accepting every navigation area.
const AllAreas int32 = -1

// areaAllowed reports whether area passes mask.
func areaAllowed(area int8, mask int32) bool {
	if area < 0 || area > 31 {
		return false
	}
	return mask&(int32(1)<<uint(area)) != 0
}
