package world

import (
	"sync"
	"sync/atomic"

	"github.com/udisondev/npcwarden/internal/model"
)

// Region is one cell of the world grid holding the entities standing in it.
type Region struct {
	rx, ry int32

	entities sync.Map // map[uint32]model.Entity, objectID → entity

	// version is bumped on every add/remove.
	version atomic.Uint64
}

// NewRegion creates a new region
func NewRegion(rx, ry int32) *Region {
	return &Region{rx: rx, ry: ry}
}

// RX returns region X index
func (r *Region) RX() int32 { return r.rx }

// RY returns region Y index
func (r *Region) RY() int32 { return r.ry }

// Version returns current region version (incremented on Add/Remove).
func (r *Region) Version() uint64 {
	return r.version.Load()
}

// Add puts an entity into the region (concurrent-safe)
func (r *Region) Add(e model.Entity) {
	r.entities.Store(e.ObjectID(), e)
	r.version.Add(1)
}

// Remove takes an entity out of the region (concurrent-safe)
func (r *Region) Remove(objectID uint32) {
	if _, ok := r.entities.LoadAndDelete(objectID); ok {
		r.version.Add(1)
	}
}

// ForEach iterates over entities in this region.
// If fn returns false, iteration stops.
func (r *Region) ForEach(fn func(model.Entity) bool) {
	r.entities.Range(func(_, value any) bool {
		return fn(value.(model.Entity))
	})
}

// Count returns the number of entities in the region (O(N)).
func (r *Region) Count() int {
	n := 0
	r.entities.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
