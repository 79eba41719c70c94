package spawn

import (
	"testing"
	"time"

	"github.com/udisondev/npcwarden/internal/ai"
	"github.com/udisondev/npcwarden/internal/game/geo"
	"github.com/udisondev/npcwarden/internal/model"
	"github.com/udisondev/npcwarden/internal/world"
)

func newTestWorld(t testing.TB) *world.World {
	t.Helper()
	engine := geo.NewEngine(geo.Config{OriginX: -50, OriginY: -50, Width: 100, Height: 100, CellSize: 1})
	return world.New(world.Config{OriginX: -50, OriginY: -50, Width: 100, Height: 100, RegionSize: 10}, engine, nil)
}

func spawnNpc(t testing.TB, w *world.World, kind model.NpcKind, loc model.Location) *model.Npc {
	t.Helper()
	npc := model.NewNpc(w.IDs().NextNpcID(), kind, "scarecrow", loc, 100)
	if err := w.Spawn(npc); err != nil {
		t.Fatalf("Spawn() error = %v", err)
	}
	return npc
}

// newTestRegistry wires a registry over w with real controllers on a
// tick manager that is never started.
func newTestRegistry(w *world.World) (*Registry, *ai.TickManager) {
	tm := ai.NewTickManager(time.Second, 50*time.Millisecond)
	archetypes := DefaultArchetypes(w.Host(nil), ai.DefaultOptions())
	return NewRegistry(w, tm, DefaultDedupRadius, archetypes...), tm
}
