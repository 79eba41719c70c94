package world

import (
	"testing"

	"github.com/udisondev/npcwarden/internal/game/geo"
	"github.com/udisondev/npcwarden/internal/game/zone"
	"github.com/udisondev/npcwarden/internal/model"
)

const accountBase uint64 = 76561197960265728

// newTestWorld covers [-50, 50)² with 1-unit cells and 10-unit regions.
func newTestWorld(t *testing.T) *World {
	t.Helper()
	engine := geo.NewEngine(geo.Config{OriginX: -50, OriginY: -50, Width: 100, Height: 100, CellSize: 1})
	return New(Config{OriginX: -50, OriginY: -50, Width: 100, Height: 100, RegionSize: 10, SenseRange: 30}, engine, zone.NewManager())
}

func newPlayer(w *World, loc model.Location) *model.Player {
	id := w.IDs().NextPlayerID()
	return model.NewPlayer(id, accountBase+uint64(id), "player", loc, 100)
}

func newGuard(w *World, loc model.Location) *model.Npc {
	return model.NewNpc(w.IDs().NextNpcID(), model.KindGuard, "scarecrow", loc, 100)
}

func newRoamer(w *World, loc model.Location) *model.Npc {
	return model.NewNpc(w.IDs().NextNpcID(), model.KindRoamer, "scientist", loc, 100)
}

type recordingHandler struct {
	spawned []uint32
	killed  []uint32
}

func (h *recordingHandler) OnSpawn(npc *model.Npc) { h.spawned = append(h.spawned, npc.ObjectID()) }
func (h *recordingHandler) OnKill(npc *model.Npc)  { h.killed = append(h.killed, npc.ObjectID()) }
