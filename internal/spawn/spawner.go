package spawn

import (
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/udisondev/npcwarden/internal/model"
	"github.com/udisondev/npcwarden/internal/world"
)

// Slots of one spawn point are laid out on a sunflower spiral so NPCs of a
// point never land within the dedup radius of each other.
const (
	spreadRadius = 2.0
	goldenAngle  = 2.399963229728653 // π(3 - √5)
)

// Point is a spawn location for NPCs of one archetype.
type Point struct {
	ID           int64
	Kind         model.NpcKind
	Species      string
	Location     model.Location
	Count        int
	MaxHealth    float64
	RespawnDelay time.Duration // 0 = never respawn
	Weapon       *model.MeleeWeaponTemplate
}

// Spawner places NPCs of spawn points into the world and schedules their
// respawn when they are killed.
type Spawner struct {
	world   *world.World
	points  []Point
	respawn *RespawnTaskManager

	mu     sync.Mutex
	origin map[uint32]*Point // npcID → spawn point
	slots  map[uint32]int    // npcID → slot inside the point
}

var _ world.EventHandler = (*Spawner)(nil)

// NewSpawner creates a spawner for points.
func NewSpawner(w *world.World, points []Point) *Spawner {
	s := &Spawner{
		world:  w,
		points: points,
		origin: make(map[uint32]*Point),
		slots:  make(map[uint32]int),
	}
	s.respawn = NewRespawnTaskManager(s)
	return s
}

// Respawns returns the respawn scheduler.
func (s *Spawner) Respawns() *RespawnTaskManager { return s.respawn }

// SpawnAll spawns Count NPCs for every point.
func (s *Spawner) SpawnAll() error {
	total := 0
	for i := range s.points {
		p := &s.points[i]
		for slot := range p.Count {
			if _, err := s.DoSpawn(p, slot); err != nil {
				return fmt.Errorf("spawn point %d: %w", p.ID, err)
			}
			total++
		}
	}
	slog.Info("npcs spawned", "points", len(s.points), "npcs", total)
	return nil
}

// slotLocation returns where a slot of a point spawns. Slot 0 is the point itself.
func (s *Spawner) slotLocation(p *Point, slot int) model.Location {
	loc := p.Location
	if slot > 0 {
		r := spreadRadius * math.Sqrt(float64(slot))
		angle := goldenAngle * float64(slot)
		loc.X += r * math.Cos(angle)
		loc.Y += r * math.Sin(angle)
	}
	loc.Z = s.world.HeightAt(loc.X, loc.Y)
	return loc
}

// DoSpawn spawns one NPC in a slot of a point.
func (s *Spawner) DoSpawn(p *Point, slot int) (*model.Npc, error) {
	npc := model.NewNpc(s.world.IDs().NextNpcID(), p.Kind, p.Species, s.slotLocation(p, slot), p.MaxHealth)
	if p.Weapon != nil {
		s.world.Equip(npc, model.NewMeleeWeapon(s.world.IDs().NextItemID(), *p.Weapon))
	}

	if err := s.world.Spawn(npc); err != nil {
		return nil, fmt.Errorf("spawning npc: %w", err)
	}

	s.mu.Lock()
	s.origin[npc.ObjectID()] = p
	s.slots[npc.ObjectID()] = slot
	s.mu.Unlock()

	slog.Debug("npc spawned",
		"objectID", npc.ObjectID(),
		"kind", p.Kind,
		"spawnID", p.ID,
		"location", npc.Location())
	return npc, nil
}

// OnSpawn is a no-op: the spawner only cares about kills.
func (s *Spawner) OnSpawn(*model.Npc) {}

// OnKill schedules a respawn of the killed NPC's slot.
func (s *Spawner) OnKill(npc *model.Npc) {
	s.mu.Lock()
	p, ok := s.origin[npc.ObjectID()]
	slot := s.slots[npc.ObjectID()]
	delete(s.origin, npc.ObjectID())
	delete(s.slots, npc.ObjectID())
	s.mu.Unlock()

	if !ok || p.RespawnDelay <= 0 {
		return
	}
	s.respawn.ScheduleRespawn(p, slot, p.RespawnDelay)
}

// Tracked returns the number of live NPCs spawned by this spawner.
func (s *Spawner) Tracked() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.origin)
}
