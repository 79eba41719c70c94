package world

import (
	"cmp"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/udisondev/npcwarden/internal/game/geo"
	"github.com/udisondev/npcwarden/internal/game/zone"
	"github.com/udisondev/npcwarden/internal/model"
)

// Config describes the world area and perception defaults.
type Config struct {
	OriginX    float64
	OriginY    float64
	Width      float64
	Height     float64
	RegionSize float64
	SenseRange float64
}

// DefaultSenseRange is how far NPCs perceive other entities.
const DefaultSenseRange = 30.0

// EventHandler receives NPC lifecycle events.
// Handlers run from DispatchEvents, never from inside Spawn/Destroy.
type EventHandler interface {
	OnSpawn(npc *model.Npc)
	OnKill(npc *model.Npc)
}

type eventKind int8

const (
	eventSpawn eventKind = iota
	eventKill
)

type event struct {
	kind eventKind
	npc  *model.Npc
}

// World is the in-memory host: entity store, region grid, navigation,
// perception, physics queries and world effects.
type World struct {
	cfg   Config
	grid  grid
	geo   *geo.Engine
	zones *zone.Manager
	ids   *ObjectIDGenerator

	regions [][]*Region // [regionsX][regionsY]

	objects  sync.Map // map[uint32]model.Entity, objectID → entity
	npcs     sync.Map // map[uint32]*model.Npc
	regionOf sync.Map // map[uint32]*Region, where the entity is indexed
	navs     sync.Map // map[uint32]*Navigator, npcID → navigator
	weapons  sync.Map // map[uint32]*model.MeleeWeapon

	evMu        sync.Mutex
	pending     []event
	handlers    map[int]EventHandler
	nextHandler int

	stats stats
}

// New creates a world over a navigation engine. A nil zone manager means no safe zones.
func New(cfg Config, engine *geo.Engine, zones *zone.Manager) *World {
	if cfg.SenseRange <= 0 {
		cfg.SenseRange = DefaultSenseRange
	}
	if zones == nil {
		zones = zone.NewManager()
	}

	w := &World{
		cfg:      cfg,
		grid:     newGrid(cfg),
		geo:      engine,
		zones:    zones,
		ids:      NewObjectIDGenerator(),
		handlers: make(map[int]EventHandler),
	}

	w.regions = make([][]*Region, w.grid.regionsX)
	for rx := range w.grid.regionsX {
		w.regions[rx] = make([]*Region, w.grid.regionsY)
		for ry := range w.grid.regionsY {
			w.regions[rx][ry] = NewRegion(rx, ry)
		}
	}
	return w
}

// IDs returns the object ID generator of this world.
func (w *World) IDs() *ObjectIDGenerator { return w.ids }

// Geo returns the navigation engine.
func (w *World) Geo() *geo.Engine { return w.geo }

// Zones returns the zone manager.
func (w *World) Zones() *zone.Manager { return w.zones }

// SenseRange returns the perception radius shared by all NPCs.
func (w *World) SenseRange(uint32) float64 { return w.cfg.SenseRange }

// HeightAt returns ground height.
func (w *World) HeightAt(x, y float64) float64 { return w.geo.HeightAt(x, y) }

// regionAt returns region at world coordinates, nil when out of bounds.
func (w *World) regionAt(loc model.Location) *Region {
	rx, ry := w.grid.regionIndex(loc.X, loc.Y)
	if !w.grid.valid(rx, ry) {
		return nil
	}
	return w.regions[rx][ry]
}

// Spawn adds an entity to the world. Spawning an NPC queues a spawn event.
func (w *World) Spawn(e model.Entity) error {
	loc := e.Location()
	region := w.regionAt(loc)
	if region == nil {
		return fmt.Errorf("invalid coordinates for object %d: (%.1f, %.1f)", e.ObjectID(), loc.X, loc.Y)
	}
	if _, loaded := w.objects.LoadOrStore(e.ObjectID(), e); loaded {
		return fmt.Errorf("object %d already spawned", e.ObjectID())
	}

	region.Add(e)
	w.regionOf.Store(e.ObjectID(), region)

	if npc, ok := e.(*model.Npc); ok {
		w.npcs.Store(npc.ObjectID(), npc)
		w.navs.Store(npc.ObjectID(), newNavigator(w, npc))
		w.queue(event{kind: eventSpawn, npc: npc})
	}
	return nil
}

type destroyable interface {
	MarkDestroyed() bool
}

// Destroy removes an entity from the world. Destroying an NPC queues a kill event.
// Returns false when the entity was already destroyed.
func (w *World) Destroy(e model.Entity) bool {
	if d, ok := e.(destroyable); ok && !d.MarkDestroyed() {
		return false
	}

	id := e.ObjectID()
	w.objects.Delete(id)
	if value, ok := w.regionOf.LoadAndDelete(id); ok {
		value.(*Region).Remove(id)
	}

	if npc, ok := e.(*model.Npc); ok {
		w.npcs.Delete(id)
		w.navs.Delete(id)
		w.queue(event{kind: eventKill, npc: npc})
	}
	return true
}

// Move relocates an entity and updates its region membership.
func (w *World) Move(e model.Entity, to model.Location) {
	mover, ok := e.(interface{ SetLocation(model.Location) })
	if !ok {
		return
	}
	mover.SetLocation(to)

	id := e.ObjectID()
	next := w.regionAt(to)
	value, indexed := w.regionOf.Load(id)
	if !indexed {
		return
	}
	prev := value.(*Region)
	if next == nil || next == prev {
		return
	}
	prev.Remove(id)
	next.Add(e)
	w.regionOf.Store(id, next)
}

// Entity returns a live entity by ID.
func (w *World) Entity(objectID uint32) (model.Entity, bool) {
	value, ok := w.objects.Load(objectID)
	if !ok {
		return nil, false
	}
	return value.(model.Entity), true
}

// Npc returns a live NPC by ID.
func (w *World) Npc(objectID uint32) (*model.Npc, bool) {
	value, ok := w.npcs.Load(objectID)
	if !ok {
		return nil, false
	}
	return value.(*model.Npc), true
}

// Player returns a live player by ID.
func (w *World) Player(objectID uint32) (*model.Player, bool) {
	e, ok := w.Entity(objectID)
	if !ok {
		return nil, false
	}
	p, ok := e.(*model.Player)
	return p, ok
}

// FindAllOfKind returns live NPCs of an archetype ordered by object ID.
func (w *World) FindAllOfKind(kind model.NpcKind) []*model.Npc {
	var result []*model.Npc
	w.npcs.Range(func(_, value any) bool {
		npc := value.(*model.Npc)
		if npc.Kind() == kind && !npc.IsDestroyed() {
			result = append(result, npc)
		}
		return true
	})
	slices.SortFunc(result, func(a, b *model.Npc) int {
		return cmp.Compare(a.ObjectID(), b.ObjectID())
	})
	return result
}

// ForEachInRange calls fn for every entity within radius (3D) of loc.
// If fn returns false, iteration stops.
func (w *World) ForEachInRange(loc model.Location, radius float64, fn func(model.Entity) bool) {
	minRX, minRY := w.grid.clamp(w.grid.regionIndex(loc.X-radius, loc.Y-radius))
	maxRX, maxRY := w.grid.clamp(w.grid.regionIndex(loc.X+radius, loc.Y+radius))
	radiusSq := radius * radius

	for rx := minRX; rx <= maxRX; rx++ {
		for ry := minRY; ry <= maxRY; ry++ {
			cont := true
			w.regions[rx][ry].ForEach(func(e model.Entity) bool {
				if e.IsDestroyed() || e.Location().DistanceSquared(loc) > radiusSq {
					return true
				}
				cont = fn(e)
				return cont
			})
			if !cont {
				return
			}
		}
	}
}

// ObjectCount returns total number of objects in world (O(N))
func (w *World) ObjectCount() int {
	count := 0
	w.objects.Range(func(_, _ any) bool {
		count++
		return true
	})
	return count
}

// Subscribe registers an event handler and returns its unsubscribe func.
func (w *World) Subscribe(h EventHandler) (unsubscribe func()) {
	w.evMu.Lock()
	id := w.nextHandler
	w.nextHandler++
	w.handlers[id] = h
	w.evMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			w.evMu.Lock()
			delete(w.handlers, id)
			w.evMu.Unlock()
		})
	}
}

func (w *World) queue(ev event) {
	w.evMu.Lock()
	w.pending = append(w.pending, ev)
	w.evMu.Unlock()
}

// DispatchEvents delivers queued spawn/kill events to subscribers in order
// and returns how many events were delivered. Events queued by handlers are
// delivered on the next call.
func (w *World) DispatchEvents() int {
	w.evMu.Lock()
	events := w.pending
	w.pending = nil
	handlers := make([]EventHandler, 0, len(w.handlers))
	ids := make([]int, 0, len(w.handlers))
	for id := range w.handlers {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		handlers = append(handlers, w.handlers[id])
	}
	w.evMu.Unlock()

	for _, ev := range events {
		for _, h := range handlers {
			switch ev.kind {
			case eventSpawn:
				h.OnSpawn(ev.npc)
			case eventKill:
				h.OnKill(ev.npc)
			}
		}
	}

	if len(events) > 0 {
		slog.Debug("world events dispatched", "events", len(events), "handlers", len(handlers))
	}
	return len(events)
}
