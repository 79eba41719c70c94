package world

import (
	"context"
	"log/slog"
	"time"

	"github.com/udisondev/npcwarden/internal/ai"
)

// Host bundles this world as the host services of AI controllers.
// hits may be nil.
func (w *World) Host(hits ai.HitRecorder) ai.Host {
	return ai.Host{
		Terrain:    w.geo,
		NavMesh:    w.geo,
		Physics:    w,
		Navigators: w,
		Senses:     w,
		Effects:    w,
		Weapons:    w,
		SafeZones:  w.zones,
		Hits:       hits,
	}
}

// Tick advances the simulation by dt: movement, host targeting, then
// delivery of queued spawn/kill events.
func (w *World) Tick(dt time.Duration) {
	w.StepNavigators(dt)
	w.UpdateHostileTargets()
	w.DispatchEvents()
}

// Run ticks the world on interval until ctx is canceled.
func (w *World) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	slog.Info("world stepper started", "interval", interval)

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			slog.Info("world stepper stopping")
			return ctx.Err()
		case now := <-ticker.C:
			w.Tick(now.Sub(last))
			last = now
		}
	}
}
