package model

// Prop is a static world object (wall segment, barricade, crate).
type Prop struct {
	*WorldObject

	material string
	blocks   bool
	radius   float64
}

// NewProp creates a static prop. Empty material means the surface has none.
func NewProp(objectID uint32, name, material string, loc Location, radius float64, blocksProjectiles bool) *Prop {
	return &Prop{
		WorldObject: NewWorldObject(objectID, name, loc),
		material:    material,
		blocks:      blocksProjectiles,
		radius:      radius,
	}
}

// Material returns the surface material name ("" if none).
func (p *Prop) Material() string {
	return p.material
}

// Radius returns the collision radius.
func (p *Prop) Radius() float64 {
	return p.radius
}

// BlocksProjectiles implements Entity.
func (p *Prop) BlocksProjectiles() bool {
	return p.blocks
}
