package world

import (
	"log/slog"
	"sync"
	"time"

	"github.com/udisondev/npcwarden/internal/ai"
	"github.com/udisondev/npcwarden/internal/game/geo"
	"github.com/udisondev/npcwarden/internal/model"
)

// arriveEpsilon is the distance at which a corner counts as reached.
const arriveEpsilon = 0.05

// speedPresets maps navigator speeds to units per second.
var speedPresets = map[model.NavSpeed]float64{
	model.NavSpeedSlowest: 1.2,
	model.NavSpeedSlow:    2.0,
	model.NavSpeedNormal:  3.5,
	model.NavSpeedFast:    6.0,
}

// Navigator moves one NPC along grid paths.
type Navigator struct {
	w   *World
	npc *model.Npc

	mu          sync.Mutex
	destination model.Location
	corners     []model.Location
	speed       model.NavSpeed
	facing      uint32 // objectID to face, 0 = face movement direction
}

var _ ai.Navigator = (*Navigator)(nil)

func newNavigator(w *World, npc *model.Npc) *Navigator {
	return &Navigator{w: w, npc: npc, speed: model.NavSpeedNormal}
}

// Navigator returns the navigator of a live NPC.
func (w *World) Navigator(npcID uint32) (ai.Navigator, bool) {
	nav, ok := w.navigator(npcID)
	if !ok {
		return nil, false
	}
	return nav, true
}

func (w *World) navigator(npcID uint32) (*Navigator, bool) {
	value, ok := w.navs.Load(npcID)
	if !ok {
		return nil, false
	}
	return value.(*Navigator), true
}

// SetDestination plans a path to loc. An unreachable goal moves to the
// closest reachable point; an invalid start stops the NPC.
func (n *Navigator) SetDestination(loc model.Location, speed model.NavSpeed) {
	path := n.w.geo.ComputePath(n.npc.Location(), loc, n.npc.AreaMask())

	n.mu.Lock()
	defer n.mu.Unlock()

	n.speed = speed
	n.destination = loc
	if path.Status == geo.PathInvalid || len(path.Corners) == 0 {
		n.corners = nil
		slog.Debug("navigator: no path", "npc", n.npc.ObjectID(), "to", loc)
		return
	}
	n.corners = path.Corners[1:]
}

// SetSpeed changes the speed preset without replanning.
func (n *Navigator) SetSpeed(speed model.NavSpeed) {
	n.mu.Lock()
	n.speed = speed
	n.mu.Unlock()
}

// ClearFacingOverride makes the NPC face its movement direction.
func (n *Navigator) ClearFacingOverride() {
	n.mu.Lock()
	n.facing = 0
	n.mu.Unlock()
}

// SetFacingTowards keeps the NPC turned to an entity.
func (n *Navigator) SetFacingTowards(objectID uint32) {
	n.mu.Lock()
	n.facing = objectID
	n.mu.Unlock()
}

// IsMoving reports whether corners remain on the current path.
func (n *Navigator) IsMoving() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.corners) > 0
}

// Destination returns the last requested destination.
func (n *Navigator) Destination() model.Location {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.destination
}

// Speed returns the current speed preset.
func (n *Navigator) Speed() model.NavSpeed {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.speed
}

// step advances the NPC along its path by dt.
func (n *Navigator) step(dt time.Duration) {
	n.mu.Lock()
	budget := speedPresets[n.speed] * dt.Seconds()
	facing := n.facing
	loc := n.npc.Location()
	heading := n.npc.Heading()

	for budget > 0 && len(n.corners) > 0 {
		next := n.corners[0]
		dist := loc.Distance(next)
		if dist > arriveEpsilon {
			heading = loc.HeadingTowards(next)
		}
		if dist <= budget {
			loc = next
			budget -= dist
			n.corners = n.corners[1:]
			continue
		}
		loc = loc.Add(next.Sub(loc).Scale(budget / dist))
		budget = 0
	}
	n.mu.Unlock()

	if facing != 0 {
		if target, ok := n.w.Entity(facing); ok {
			heading = loc.HeadingTowards(target.Location())
		}
	}

	n.npc.SetHeading(heading)
	if loc != n.npc.Location() {
		n.w.Move(n.npc, loc)
	}
}

// StepNavigators advances every NPC by dt.
func (w *World) StepNavigators(dt time.Duration) {
	w.navs.Range(func(_, value any) bool {
		value.(*Navigator).step(dt)
		return true
	})
}
