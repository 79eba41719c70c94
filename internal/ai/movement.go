package ai

import (
	"log/slog"
	"math"
	"math/rand/v2"

	"github.com/udisondev/npcwarden/internal/game/geo"
	"github.com/udisondev/npcwarden/internal/model"
)

const (
	// DefaultRoamRange is the leash radius around home.
	DefaultRoamRange = 25.0

	// roamMargin keeps random roam points this far inside the leash.
	roamMargin = 5.0

	// navSnapRadius is the search radius for snapping roam points onto the navmesh.
	navSnapRadius = 5.0
)

// MovementPlanner chooses patrol and return destinations around a fixed home.
type MovementPlanner struct {
	home      model.Location
	roamRange float64
	terrain   Terrain
	nav       NavMesh
	rng       *rand.Rand
}

// NewMovementPlanner creates a planner. A nil rng uses the global source.
func NewMovementPlanner(home model.Location, roamRange float64, terrain Terrain, nav NavMesh, rng *rand.Rand) *MovementPlanner {
	if roamRange <= 0 {
		roamRange = DefaultRoamRange
	}
	return &MovementPlanner{
		home:      home,
		roamRange: roamRange,
		terrain:   terrain,
		nav:       nav,
		rng:       rng,
	}
}

// Home returns the leash anchor.
func (p *MovementPlanner) Home() model.Location { return p.home }

// RoamRange returns the leash radius.
func (p *MovementPlanner) RoamRange() float64 { return p.roamRange }

// BeyondLeash reports whether loc is farther than roamRange from home.
func (p *MovementPlanner) BeyondLeash(loc model.Location) bool {
	return loc.Distance(p.home) > p.roamRange
}

// ReturnDestination is where a leashed NPC heads.
func (p *MovementPlanner) ReturnDestination() model.Location {
	return p.home
}

// RandomRoamPoint returns a uniform random point in the disk of radius
// roamRange-5 around home, with Z taken from the terrain.
func (p *MovementPlanner) RandomRoamPoint() model.Location {
	radius := max(p.roamRange-roamMargin, 0)

	// sqrt keeps the distribution uniform over the disk area
	r := radius * math.Sqrt(p.float64())
	theta := 2 * math.Pi * p.float64()

	x := p.home.X + r*math.Cos(theta)
	y := p.home.Y + r*math.Sin(theta)
	return model.NewLocation(x, y, p.terrain.HeightAt(x, y))
}

// RoamDestination picks a reachable patrol point for npc.
// Navigation failures fall back to home or the last reachable corner.
func (p *MovementPlanner) RoamDestination(npc *model.Npc) model.Location {
	point := p.RandomRoamPoint()
	mask := npc.AreaMask()

	snapped, ok := p.nav.SampleNavigable(point, navSnapRadius, mask)
	if !ok {
		if IsDebugEnabled() {
			slog.Debug("roam point off navmesh, going home", "npc", npc.ObjectID(), "point", point)
		}
		return p.home
	}

	path := p.nav.ComputePath(npc.Location(), snapped, mask)
	switch path.Status {
	case geo.PathComplete:
		return snapped
	case geo.PathPartial:
		if last, ok := path.Last(); ok {
			return last
		}
		return p.home
	default:
		if IsDebugEnabled() {
			slog.Debug("no path to roam point, going home", "npc", npc.ObjectID(), "point", snapped)
		}
		return p.home
	}
}

func (p *MovementPlanner) float64() float64 {
	if p.rng != nil {
		return p.rng.Float64()
	}
	return rand.Float64()
}
