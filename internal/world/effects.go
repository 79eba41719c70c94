package world

import (
	"log/slog"
	"sync/atomic"

	"github.com/udisondev/npcwarden/internal/ai"
	"github.com/udisondev/npcwarden/internal/model"
)

type stats struct {
	damage  atomic.Int64
	kills   atomic.Int64
	effects atomic.Int64
	signals atomic.Int64
	impacts atomic.Int64
}

// Stats is a snapshot of world effect counters.
type Stats struct {
	Damage  int64
	Kills   int64
	Effects int64
	Signals int64
	Impacts int64
}

// Stats returns effect counters.
func (w *World) Stats() Stats {
	return Stats{
		Damage:  w.stats.damage.Load(),
		Kills:   w.stats.kills.Load(),
		Effects: w.stats.effects.Load(),
		Signals: w.stats.signals.Load(),
		Impacts: w.stats.impacts.Load(),
	}
}

var _ ai.Effects = (*World)(nil)

// ApplyDamage damages characters; props are indestructible.
// A killing blow on an NPC destroys it (the kill event is queued).
func (w *World) ApplyDamage(target model.Entity, amount float64, dmgType model.DamageType, attacker *model.Npc) bool {
	var (
		killed bool
		victim *model.Character
	)
	switch t := target.(type) {
	case *model.Player:
		victim = t.Character
	case *model.Npc:
		victim = t.Character
	default:
		return false
	}

	w.stats.damage.Add(1)
	killed = victim.ReduceHealth(amount)

	slog.Debug("damage applied",
		"attacker", attacker.ObjectID(),
		"target", target.ObjectID(),
		"amount", amount,
		"type", dmgType,
		"hp", victim.Health())

	if killed {
		w.stats.kills.Add(1)
		slog.Info("killed",
			"attacker", attacker.Name(),
			"target", target.Name(),
			"objectID", target.ObjectID())
		if npc, ok := target.(*model.Npc); ok {
			w.Destroy(npc)
		}
	}
	return killed
}

// PlayEffect is logged; no client replication.
func (w *World) PlayEffect(path string, pos, forward model.Location, owner *model.Npc) {
	w.stats.effects.Add(1)
	slog.Debug("effect", "path", path, "pos", pos, "forward", forward, "owner", owner.ObjectID())
}

// BroadcastSignal is logged; no client replication.
func (w *World) BroadcastSignal(npc *model.Npc, signal model.Signal) {
	w.stats.signals.Add(1)
	slog.Debug("signal", "npc", npc.ObjectID(), "signal", signal)
}

// ImpactEffect is logged; no client replication.
func (w *World) ImpactEffect(point, normal model.Location, material string) {
	w.stats.impacts.Add(1)
	slog.Debug("impact", "point", point, "normal", normal, "material", material)
}
