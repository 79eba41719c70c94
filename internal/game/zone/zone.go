// Package zone implements world zones with geometric bounds and a spatial
// index. Safe zones exclude players inside them from NPC targeting.
package zone

import "github.com/udisondev/npcwarden/internal/model"

// Zone type string constants.
const (
	TypeSafe   = "SafeZone"
	TypeCombat = "CombatZone"
)

// Shape names accepted by Def.Shape.
const (
	ShapeCylinder = "Cylinder"
	ShapeCuboid   = "Cuboid"
	ShapeNPoly    = "NPoly"
)

// Zone represents a world zone with geometric bounds.
type Zone interface {
	ID() int32
	Name() string
	ZoneType() string
	Contains(loc model.Location) bool
	IsSafe() bool
}

// Def is the declarative description of a zone.
// Cylinder: Nodes[0] is the center, Radius the radius.
// Cuboid: bounding box of Nodes. NPoly: polygon through Nodes.
type Def struct {
	ID     int32
	Name   string
	Type   string
	Shape  string
	Nodes  [][2]float64
	Radius float64
	MinZ   float64
	MaxZ   float64
}
