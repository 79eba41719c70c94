package world

import (
	"cmp"
	"math"
	"slices"

	"github.com/udisondev/npcwarden/internal/ai"
	"github.com/udisondev/npcwarden/internal/model"
)

// Collision bodies are vertical capsules standing on the entity location.
const (
	characterRadius = 0.4
	characterHeight = 1.8
	propHeight      = 1.0

	// MaterialRock is reported for hits on walls and terrain.
	MaterialRock = "rock"
)

func bodyOf(e model.Entity) (radius, height float64) {
	if p, ok := e.(*model.Prop); ok {
		return p.Radius(), propHeight
	}
	return characterRadius, characterHeight
}

// RaycastAll sweeps a sphere of radius along ray up to maxDistance and
// returns every entity on layerMask it touches, nearest first. A wall or
// terrain crossing ends the sweep and is reported as a hit without entity.
func (w *World) RaycastAll(ray model.Ray, radius, maxDistance float64, layerMask int32) []ai.RaycastHit {
	dir := ray.Direction.Normalized()
	ray.Direction = dir

	limit := maxDistance
	var hits []ai.RaycastHit

	if d, ok := w.staticHit(ray, maxDistance); ok {
		limit = d
		if layerMask&(model.LayerConstruction|model.LayerTerrain) != 0 {
			hits = append(hits, ai.RaycastHit{Point: ray.At(d), Distance: d, Material: MaterialRock})
		}
	}

	w.ForEachInRange(ray.Origin, maxDistance+radius+characterHeight, func(e model.Entity) bool {
		if model.LayerOf(e)&layerMask == 0 {
			return true
		}
		d, ok := sweepCapsule(ray, radius, e)
		if !ok || d > limit {
			return true
		}
		hit := ai.RaycastHit{Entity: e, Point: ray.At(d), Distance: d}
		if p, isProp := e.(*model.Prop); isProp {
			hit.Material = p.Material()
		}
		hits = append(hits, hit)
		return true
	})

	slices.SortStableFunc(hits, func(a, b ai.RaycastHit) int {
		if c := cmp.Compare(a.Distance, b.Distance); c != 0 {
			return c
		}
		return cmp.Compare(objectIDOf(a.Entity), objectIDOf(b.Entity))
	})
	return hits
}

func objectIDOf(e model.Entity) uint32 {
	if e == nil {
		return 0
	}
	return e.ObjectID()
}

// staticHit marches the ray through the height grid and returns the
// distance to the first solid cell or terrain above the ray.
func (w *World) staticHit(ray model.Ray, maxDistance float64) (float64, bool) {
	step := w.geo.CellSize() / 2
	for d := 0.0; d <= maxDistance; d += step {
		p := ray.At(d)
		cx, cy := w.geo.CellX(p.X), w.geo.CellY(p.Y)
		if !w.geo.InBounds(cx, cy) {
			continue
		}
		if w.geo.IsSolid(cx, cy) || w.geo.HeightAt(p.X, p.Y) > p.Z {
			return d, true
		}
	}
	return 0, false
}

// sweepCapsule returns the distance along ray at which a sphere of radius
// first touches the entity's capsule. Only the planar projection is solved
// exactly; the vertical extent is checked at the entry point.
func sweepCapsule(ray model.Ray, radius float64, e model.Entity) (float64, bool) {
	bodyRadius, height := bodyOf(e)
	base := e.Location()
	reach := radius + bodyRadius

	// Planar components
	ox, oy := ray.Origin.X-base.X, ray.Origin.Y-base.Y
	dx, dy := ray.Direction.X, ray.Direction.Y
	a := dx*dx + dy*dy
	b := 2 * (ox*dx + oy*dy)
	c := ox*ox + oy*oy - reach*reach

	var d float64
	switch {
	case c <= 0:
		d = 0 // origin already inside
	case a < 1e-12:
		return 0, false
	default:
		disc := b*b - 4*a*c
		if disc < 0 {
			return 0, false
		}
		d = (-b - math.Sqrt(disc)) / (2 * a)
		if d < 0 {
			return 0, false
		}
	}

	z := ray.At(d).Z
	if z < base.Z-radius || z > base.Z+height+radius {
		return 0, false
	}
	return d, true
}
