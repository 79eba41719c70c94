package world

import (
	"github.com/udisondev/npcwarden/internal/model"
)

const (
	characterEyeHeight = 1.6
	propEyeHeight      = 0.5
)

// eyeOf returns the point used for line-of-sight checks against e.
func eyeOf(e model.Entity) model.Location {
	switch v := e.(type) {
	case *model.Npc:
		return v.EyePosition()
	case *model.Player:
		return v.Location().Add(model.Location{Z: characterEyeHeight})
	default:
		return e.Location().Add(model.Location{Z: propEyeHeight})
	}
}

// Targets returns entities inside the NPC's sense range, excluding itself.
func (w *World) Targets(npcID uint32) []model.Entity {
	npc, ok := w.Npc(npcID)
	if !ok {
		return nil
	}

	var result []model.Entity
	w.ForEachInRange(npc.Location(), w.cfg.SenseRange, func(e model.Entity) bool {
		if e.ObjectID() != npcID {
			result = append(result, e)
		}
		return true
	})
	return result
}

// LineOfSight reports whether npcID can see targetID.
func (w *World) LineOfSight(npcID, targetID uint32) bool {
	npc, ok := w.Npc(npcID)
	if !ok {
		return false
	}
	target, ok := w.Entity(targetID)
	if !ok {
		return false
	}
	return w.geo.CanSeeTarget(npc.EyePosition(), eyeOf(target))
}

// HasHostileTarget reports whether the host brain has a live target for npcID.
func (w *World) HasHostileTarget(npcID uint32) bool {
	npc, ok := w.Npc(npcID)
	if !ok {
		return false
	}
	id := npc.HostileTargetID()
	if id == 0 {
		return false
	}
	p, ok := w.Player(id)
	return ok && !p.IsDead()
}

// UpdateHostileTargets is the host brain for roamers: each roamer targets
// the nearest visible living player outside safe zones, or nothing.
func (w *World) UpdateHostileTargets() {
	for _, npc := range w.FindAllOfKind(model.KindRoamer) {
		var (
			best   uint32
			bestSq float64
		)
		from := npc.Location()
		w.ForEachInRange(from, w.cfg.SenseRange, func(e model.Entity) bool {
			p, ok := e.(*model.Player)
			if !ok || p.IsDead() || w.zones.InSafeZone(p.Location()) {
				return true
			}
			if !w.geo.CanSeeTarget(npc.EyePosition(), eyeOf(p)) {
				return true
			}
			distSq := from.DistanceSquared(p.Location())
			if best == 0 || distSq < bestSq || (distSq == bestSq && p.ObjectID() < best) {
				best, bestSq = p.ObjectID(), distSq
			}
			return true
		})
		npc.SetHostileTargetID(best)
	}
}
