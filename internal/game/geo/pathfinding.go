package geo

import (
	"container/heap"
	"math"

	"github.com/udisondev/npcwarden/internal/model"
)

// PathStatus is the outcome of a path query.
type PathStatus int32

const (
	// PathInvalid means no path could be computed (start is off the navigation surface).
	PathInvalid PathStatus = iota
	// PathPartial means the goal is unreachable; corners end at the closest reachable cell.
	PathPartial
	// PathComplete means corners end at the goal.
	PathComplete
)

// String returns human-readable status name
func (s PathStatus) String() string {
	switch s {
	case PathInvalid:
		return "INVALID"
	case PathPartial:
		return "PARTIAL"
	case PathComplete:
		return "COMPLETE"
	default:
		return "UNKNOWN"
	}
}

// Path is the result of ComputePath.
type Path struct {
	Status  PathStatus
	Corners []model.Location
}

// Last returns the final corner of the path.
func (p Path) Last() (model.Location, bool) {
	if len(p.Corners) == 0 {
		return model.Location{}, false
	}
	return p.Corners[len(p.Corners)-1], true
}

// ComputePath finds a path from one position to another using A* on the grid.
// The start cell must be walkable for mask, otherwise PathInvalid is returned.
// When the goal can't be reached (blocked, off-grid, or MaxPathfindIterations
// exceeded) the path to the closest explored cell is returned as PathPartial.
func (e *Engine) ComputePath(from, to model.Location, mask int32) Path {
	sx, sy := e.CellX(from.X), e.CellY(from.Y)
	tx, ty := e.CellX(to.X), e.CellY(to.Y)

	if !e.IsWalkable(sx, sy, mask) {
		return Path{Status: PathInvalid}
	}

	// Same cell, already there
	if sx == tx && sy == ty {
		return Path{Status: PathComplete, Corners: []model.Location{from, to}}
	}

	goal, closest := e.astar(sx, sy, tx, ty, mask)

	end := goal
	status := PathComplete
	if goal == nil {
		end = closest
		status = PathPartial
	}

	// Convert to world coordinates
	cells := make([]model.Location, 0, 32)
	for n := end; n != nil; n = n.parent {
		cells = append(cells, model.NewLocation(e.WorldX(n.x), e.WorldY(n.y), e.cellHeight(n.x, n.y)))
	}

	// Reverse (A* builds path backward)
	for i, j := 0, len(cells)-1; i < j; i, j = i+1, j-1 {
		cells[i], cells[j] = cells[j], cells[i]
	}

	// Exact endpoints replace the start and goal cell centers
	cells[0] = from
	if status == PathComplete {
		cells[len(cells)-1] = to
	}

	return Path{Status: status, Corners: e.smoothPath(cells, mask)}
}

// smoothPath removes unnecessary intermediate corners.
// If corner N can be reached directly from the last kept corner, corner N-1 is dropped.
// Runs up to 3 passes to progressively simplify the path.
func (e *Engine) smoothPath(path []model.Location, mask int32) []model.Location {
	for range 3 {
		if len(path) <= 2 {
			return path
		}

		changed := false
		smoothed := make([]model.Location, 0, len(path))
		smoothed = append(smoothed, path[0])

		for i := 1; i < len(path)-1; i++ {
			prev := smoothed[len(smoothed)-1]
			next := path[i+1]

			if e.CanMoveToTarget(prev, next, mask) {
				changed = true
				continue
			}
			smoothed = append(smoothed, path[i])
		}
		smoothed = append(smoothed, path[len(path)-1])
		path = smoothed

		if !changed {
			break
		}
	}
	return path
}

// pathNode represents a node in the A* search graph.
type pathNode struct {
	x, y   int32
	parent *pathNode
	gCost  float64 // Actual cost from start
	hCost  float64 // Heuristic cost to target
	fCost  float64 // gCost + hCost
	index  int     // heap index
}

// astar runs A* from (sx, sy) to (tx, ty). Returns the goal node, or nil and
// the explored node closest to the goal.
func (e *Engine) astar(sx, sy, tx, ty int32, mask int32) (goal, closest *pathNode) {
	start := &pathNode{x: sx, y: sy}
	start.hCost = heuristic(sx, sy, tx, ty)
	start.fCost = start.hCost
	closest = start

	openList := &nodeHeap{}
	heap.Init(openList)
	heap.Push(openList, start)

	closed := make(map[nodeKey]struct{}, 256)

	for range MaxPathfindIterations {
		if openList.Len() == 0 {
			return nil, closest
		}

		current := heap.Pop(openList).(*pathNode)

		if current.x == tx && current.y == ty {
			return current, current
		}

		key := nodeKey{current.x, current.y}
		if _, exists := closed[key]; exists {
			continue
		}
		closed[key] = struct{}{}

		if current.hCost < closest.hCost {
			closest = current
		}

		e.expandNeighbors(current, tx, ty, mask, openList, closed)
	}

	return nil, closest // Max iterations exceeded
}

// expandNeighbors adds valid adjacent cells to the open list.
func (e *Engine) expandNeighbors(
	current *pathNode,
	tx, ty int32,
	mask int32,
	openList *nodeHeap,
	closed map[nodeKey]struct{},
) {
	// N, E, S, W
	cardinals := [4][2]int32{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
	passable := [4]bool{}

	for i, d := range cardinals {
		nx, ny := current.x+d[0], current.y+d[1]
		if !e.canStep(current.x, current.y, nx, ny, mask) {
			continue
		}
		passable[i] = true
		e.pushNeighbor(current, nx, ny, WeightStraight, tx, ty, openList, closed)
	}

	// Diagonal directions (anti-corner-cut: both adjacent cardinals must be passable)
	diagonals := [4]struct {
		dx, dy     int32
		adj1, adj2 int
	}{
		{1, -1, 0, 1},  // NE: need N(0) and E(1)
		{1, 1, 1, 2},   // SE: need E(1) and S(2)
		{-1, 1, 2, 3},  // SW: need S(2) and W(3)
		{-1, -1, 3, 0}, // NW: need W(3) and N(0)
	}

	for _, d := range diagonals {
		if !passable[d.adj1] || !passable[d.adj2] {
			continue
		}
		nx, ny := current.x+d.dx, current.y+d.dy
		if !e.canStep(current.x, current.y, nx, ny, mask) {
			continue
		}
		e.pushNeighbor(current, nx, ny, WeightDiagonal, tx, ty, openList, closed)
	}
}

func (e *Engine) pushNeighbor(
	current *pathNode,
	nx, ny int32,
	weight float64,
	tx, ty int32,
	openList *nodeHeap,
	closed map[nodeKey]struct{},
) {
	if _, exists := closed[nodeKey{nx, ny}]; exists {
		return
	}

	dz := math.Abs(e.cellHeight(nx, ny) - e.cellHeight(current.x, current.y))
	if dz > MaxStepHeight/2 {
		weight = WeightRough
	}

	node := &pathNode{
		x: nx, y: ny,
		parent: current,
		gCost:  current.gCost + weight,
		hCost:  heuristic(nx, ny, tx, ty),
	}
	node.fCost = node.gCost + node.hCost
	heap.Push(openList, node)
}

// heuristic calculates the planar Euclidean distance in cells.
func heuristic(x, y, tx, ty int32) float64 {
	dx := float64(x - tx)
	dy := float64(y - ty)
	return math.Sqrt(dx*dx + dy*dy)
}

// nodeKey uniquely identifies a cell position for the closed set.
type nodeKey struct {
	x, y int32
}

// nodeHeap implements container/heap for A* open list (min-heap by fCost).
type nodeHeap []*pathNode

func (h nodeHeap) Len() int           { return len(h) }
func (h nodeHeap) Less(i, j int) bool { return h[i].fCost < h[j].fCost }
func (h nodeHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i]; h[i].index = i; h[j].index = j }
func (h *nodeHeap) Push(x any)        { n := x.(*pathNode); n.index = len(*h); *h = append(*h, n) }
func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	node := old[n-1]
	old[n-1] = nil // GC
	node.index = -1
	*h = old[:n-1]
	return node
}
