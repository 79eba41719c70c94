package spawn

import (
	"testing"

	"github.com/udisondev/npcwarden/internal/model"
)

// BenchmarkRegistry_OnSpawnOnKill measures attach and release of one guard
// next to 400 controlled homes (dedup scan over the archetype map).
func BenchmarkRegistry_OnSpawnOnKill(b *testing.B) {
	w := newTestWorld(b)
	reg, _ := newTestRegistry(w)
	for i := range 400 {
		reg.OnSpawn(spawnNpc(b, w, model.KindGuard, model.NewLocation(float64(i%20)*2-40, float64(i/20)*2-40, 0)))
	}

	loc := model.NewLocation(30, 30, 0)
	for b.Loop() {
		npc := spawnNpc(b, w, model.KindGuard, loc)
		reg.OnSpawn(npc)
		reg.OnKill(npc)
		w.Destroy(npc)
		w.DispatchEvents()
	}
}

// BenchmarkRegistry_Count measures the controller count across archetypes.
func BenchmarkRegistry_Count(b *testing.B) {
	w := newTestWorld(b)
	reg, _ := newTestRegistry(w)
	for i := range 200 {
		kind := model.KindGuard
		if i%2 == 1 {
			kind = model.KindRoamer
		}
		reg.OnSpawn(spawnNpc(b, w, kind, model.NewLocation(float64(i%20)*2-40, float64(i/20)*2-40, 0)))
	}

	for b.Loop() {
		_ = reg.Count()
	}
}
