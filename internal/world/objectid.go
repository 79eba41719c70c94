package world

import "sync/atomic"

// ObjectIDGenerator generates unique object IDs for all world entities.
//
// ID ranges (convention):
//
//	0x00000000 - 0x0FFFFFFF: Reserved (0 = none)
//	0x10000000 - 0x1FFFFFFF: Players
//	0x20000000 - 0x2FFFFFFF: NPCs
//	0x30000000 - 0x3FFFFFFF: Props and held weapons
type ObjectIDGenerator struct {
	nextPlayerID atomic.Uint32
	nextNpcID    atomic.Uint32
	nextItemID   atomic.Uint32
}

// NewObjectIDGenerator creates a new ID generator.
func NewObjectIDGenerator() *ObjectIDGenerator {
	gen := &ObjectIDGenerator{}
	gen.nextPlayerID.Store(0x10000000)
	gen.nextNpcID.Store(0x20000000)
	gen.nextItemID.Store(0x30000000)
	return gen
}

// NextPlayerID generates next unique player object ID.
func (g *ObjectIDGenerator) NextPlayerID() uint32 {
	return g.nextPlayerID.Add(1)
}

// NextNpcID generates next unique NPC object ID.
func (g *ObjectIDGenerator) NextNpcID() uint32 {
	return g.nextNpcID.Add(1)
}

// NextItemID generates next unique prop/weapon object ID.
func (g *ObjectIDGenerator) NextItemID() uint32 {
	return g.nextItemID.Add(1)
}
