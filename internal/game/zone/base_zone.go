package zone

import "github.com/udisondev/npcwarden/internal/model"

// BaseZone holds common zone geometry and metadata.
// Specific zone types embed BaseZone.
type BaseZone struct {
	id       int32
	name     string
	zoneType string
	shape    string
	minZ     float64
	maxZ     float64
	nodesX   []float64
	nodesY   []float64
	rad      float64
}

// newBaseZone builds zone geometry from a definition.
func newBaseZone(def Def) *BaseZone {
	z := &BaseZone{
		id:       def.ID,
		name:     def.Name,
		zoneType: def.Type,
		shape:    def.Shape,
		minZ:     def.MinZ,
		maxZ:     def.MaxZ,
		rad:      def.Radius,
		nodesX:   make([]float64, len(def.Nodes)),
		nodesY:   make([]float64, len(def.Nodes)),
	}
	for i, n := range def.Nodes {
		z.nodesX[i] = n[0]
		z.nodesY[i] = n[1]
	}
	// Unbounded height when both limits are zero
	if z.minZ == 0 && z.maxZ == 0 {
		z.minZ, z.maxZ = -1e9, 1e9
	}
	return z
}

// ID returns the zone identifier.
func (z *BaseZone) ID() int32 { return z.id }

// Name returns the zone display name.
func (z *BaseZone) Name() string { return z.name }

// ZoneType returns the zone type string.
func (z *BaseZone) ZoneType() string { return z.zoneType }

// IsSafe reports whether the zone protects players from NPC aggression.
func (z *BaseZone) IsSafe() bool { return false }

// Contains checks if loc is inside the zone geometry.
// NPoly uses ray casting, Cuboid an axis-aligned box, Cylinder center plus radius.
func (z *BaseZone) Contains(loc model.Location) bool {
	if loc.Z < z.minZ || loc.Z > z.maxZ {
		return false
	}
	if len(z.nodesX) == 0 {
		return false
	}

	switch z.shape {
	case ShapeCuboid:
		return z.containsCuboid(loc.X, loc.Y)
	case ShapeCylinder:
		return z.containsCylinder(loc.X, loc.Y)
	default:
		return z.containsNPoly(loc.X, loc.Y)
	}
}

// bounds returns the planar bounding box of the zone.
func (z *BaseZone) bounds() (minX, minY, maxX, maxY float64) {
	if z.shape == ShapeCylinder && len(z.nodesX) > 0 {
		return z.nodesX[0] - z.rad, z.nodesY[0] - z.rad, z.nodesX[0] + z.rad, z.nodesY[0] + z.rad
	}

	minX, maxX = z.nodesX[0], z.nodesX[0]
	minY, maxY = z.nodesY[0], z.nodesY[0]
	for i := 1; i < len(z.nodesX); i++ {
		minX = min(minX, z.nodesX[i])
		maxX = max(maxX, z.nodesX[i])
		minY = min(minY, z.nodesY[i])
		maxY = max(maxY, z.nodesY[i])
	}
	return minX, minY, maxX, maxY
}

// containsCuboid проверяет попадание в AABB (axis-aligned bounding box).
func (z *BaseZone) containsCuboid(x, y float64) bool {
	if len(z.nodesX) < 2 {
		return false
	}
	minX, minY, maxX, maxY := z.bounds()
	return x >= minX && x <= maxX && y >= minY && y <= maxY
}

// containsCylinder проверяет попадание точки в цилиндр (center + radius).
func (z *BaseZone) containsCylinder(x, y float64) bool {
	if z.rad <= 0 {
		return false
	}
	dx := x - z.nodesX[0]
	dy := y - z.nodesY[0]
	return dx*dx+dy*dy <= z.rad*z.rad
}

// containsNPoly проверяет попадание точки в полигон алгоритмом ray casting.
func (z *BaseZone) containsNPoly(x, y float64) bool {
	n := len(z.nodesX)
	if n < 3 {
		return false
	}

	inside := false
	j := n - 1
	for i := range n {
		xi, yi := z.nodesX[i], z.nodesY[i]
		xj, yj := z.nodesX[j], z.nodesY[j]
		if (yi > y) != (yj > y) && x < (xj-xi)*(y-yi)/(yj-yi)+xi {
			inside = !inside
		}
		j = i
	}
	return inside
}
