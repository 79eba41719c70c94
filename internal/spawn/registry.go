package spawn

import (
	"log/slog"
	"sync"

	"github.com/udisondev/npcwarden/internal/ai"
	"github.com/udisondev/npcwarden/internal/model"
	"github.com/udisondev/npcwarden/internal/world"
)

// DefaultDedupRadius: an NPC spawning closer than this to the home of an
// existing controller of its archetype is a duplicate.
const DefaultDedupRadius = 1.0

// World is the part of the host the registry needs.
type World interface {
	FindAllOfKind(kind model.NpcKind) []*model.Npc
	Subscribe(h world.EventHandler) (unsubscribe func())
	Destroy(e model.Entity) bool
}

// Scheduler drives controller ticks. Implemented by *ai.TickManager.
type Scheduler interface {
	Register(objectID uint32, controller ai.Controller, cadence ai.Cadence) bool
	Unregister(objectID uint32)
}

// Archetype tells the registry how to control NPCs of one kind.
type Archetype struct {
	Kind    model.NpcKind
	Cadence ai.Cadence
	New     func(npc *model.Npc) ai.Controller
}

// DefaultArchetypes returns the roamer (slow cadence) and guard (physics
// rate) archetypes bound to host.
func DefaultArchetypes(host ai.Host, opts ai.Options) []Archetype {
	return []Archetype{
		{
			Kind:    model.KindRoamer,
			Cadence: ai.CadenceSlow,
			New:     func(npc *model.Npc) ai.Controller { return ai.NewRoamerAI(npc, host, opts) },
		},
		{
			Kind:    model.KindGuard,
			Cadence: ai.CadenceFast,
			New:     func(npc *model.Npc) ai.Controller { return ai.NewGuardAI(npc, host, opts) },
		},
	}
}

// Registry owns one controller per live NPC of the supported archetypes.
// Each archetype has its own map; the dedup guard only compares within it.
type Registry struct {
	world       World
	sched       Scheduler
	dedupRadius float64
	archetypes  []Archetype
	byKind      map[model.NpcKind]Archetype

	mu          sync.Mutex
	controllers map[model.NpcKind]map[uint32]ai.Controller
	unsubscribe func()
}

var _ world.EventHandler = (*Registry)(nil)

// NewRegistry creates an empty registry. Non-positive dedupRadius uses the default.
func NewRegistry(w World, sched Scheduler, dedupRadius float64, archetypes ...Archetype) *Registry {
	if dedupRadius <= 0 {
		dedupRadius = DefaultDedupRadius
	}
	r := &Registry{
		world:       w,
		sched:       sched,
		dedupRadius: dedupRadius,
		archetypes:  archetypes,
		byKind:      make(map[model.NpcKind]Archetype, len(archetypes)),
		controllers: make(map[model.NpcKind]map[uint32]ai.Controller, len(archetypes)),
	}
	for _, a := range archetypes {
		r.byKind[a.Kind] = a
		r.controllers[a.Kind] = make(map[uint32]ai.Controller)
	}
	return r
}

// OnSpawn attaches a controller to a newly spawned NPC.
// Unsupported, destroyed or already controlled NPCs are ignored; a duplicate
// of an existing home is destroyed instead.
func (r *Registry) OnSpawn(npc *model.Npc) {
	if npc == nil || npc.IsDestroyed() {
		return
	}
	arch, ok := r.byKind[npc.Kind()]
	if !ok {
		return
	}

	id := npc.ObjectID()
	loc := npc.Location()

	r.mu.Lock()
	defer r.mu.Unlock()

	controllers := r.controllers[arch.Kind]
	if _, exists := controllers[id]; exists {
		slog.Debug("npc already controlled", "objectID", id)
		return
	}

	for otherID, ctrl := range controllers {
		if ctrl.Home().Distance(loc) < r.dedupRadius {
			r.world.Destroy(npc)
			slog.Info("duplicate npc destroyed",
				"objectID", id,
				"kind", arch.Kind,
				"existing", otherID,
				"location", loc)
			return
		}
	}

	ctrl := arch.New(npc)
	controllers[id] = ctrl
	r.sched.Register(id, ctrl, arch.Cadence)

	slog.Debug("npc controlled", "objectID", id, "kind", arch.Kind, "home", loc)
}

// OnKill releases the controller of a destroyed NPC. Unknown NPCs are ignored.
// Once OnKill returns the controller is never ticked again.
func (r *Registry) OnKill(npc *model.Npc) {
	if npc == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	controllers, ok := r.controllers[npc.Kind()]
	if !ok {
		return
	}
	id := npc.ObjectID()
	if _, ok := controllers[id]; !ok {
		return
	}
	delete(controllers, id)
	r.sched.Unregister(id)

	slog.Debug("npc released", "objectID", id, "kind", npc.Kind())
}

// CatchUp attaches controllers to NPCs already in the world, then
// subscribes to spawn/kill events. Calling it again is a no-op.
func (r *Registry) CatchUp() {
	r.mu.Lock()
	subscribed := r.unsubscribe != nil
	r.mu.Unlock()
	if subscribed {
		return
	}

	for _, arch := range r.archetypes {
		for _, npc := range r.world.FindAllOfKind(arch.Kind) {
			r.OnSpawn(npc)
		}
	}

	unsubscribe := r.world.Subscribe(r)
	r.mu.Lock()
	r.unsubscribe = unsubscribe
	r.mu.Unlock()

	slog.Info("npc registry ready", "controllers", r.Count())
}

// Teardown unsubscribes and releases every controller. Safe to call repeatedly.
func (r *Registry) Teardown() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.unsubscribe != nil {
		r.unsubscribe()
		r.unsubscribe = nil
	}

	released := 0
	for _, controllers := range r.controllers {
		for id := range controllers {
			r.sched.Unregister(id)
			delete(controllers, id)
			released++
		}
	}

	if released > 0 {
		slog.Info("npc registry torn down", "released", released)
	}
}

// Count returns the number of controlled NPCs.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, controllers := range r.controllers {
		n += len(controllers)
	}
	return n
}

// CountKind returns the number of controlled NPCs of one archetype.
func (r *Registry) CountKind(kind model.NpcKind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.controllers[kind])
}

// Controller returns the controller of an NPC.
func (r *Registry) Controller(objectID uint32) (ai.Controller, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, controllers := range r.controllers {
		if ctrl, ok := controllers[objectID]; ok {
			return ctrl, true
		}
	}
	return nil, false
}
