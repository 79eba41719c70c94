package ai

import (
	"log/slog"
	"time"

	"github.com/udisondev/npcwarden/internal/model"
)

// RoamerAI is the ranged roamer controller, ticked on the slow cadence.
// It only owns leash and patrol movement; engaging targets is left to the
// host's own brain.
type RoamerAI struct {
	baseAI

	host    Host
	planner *MovementPlanner
}

var _ Controller = (*RoamerAI)(nil)

// NewRoamerAI creates a roamer controller. Home is the NPC's current location.
func NewRoamerAI(npc *model.Npc, host Host, opts Options) *RoamerAI {
	r := &RoamerAI{host: host}
	r.attach(npc, "roamer")
	r.planner = NewMovementPlanner(r.home, opts.RoamRange, host.Terrain, host.NavMesh, opts.Rand)
	return r
}

// Tick performs one roamer decision step.
func (r *RoamerAI) Tick(_ time.Time) {
	if !r.canThink() {
		return
	}

	id := r.npc.ObjectID()
	nav, ok := r.host.Navigators.Navigator(id)
	if !ok {
		if IsDebugEnabled() {
			slog.Debug("roamer has no navigator", "objectID", id)
		}
		return
	}

	if r.planner.BeyondLeash(r.npc.Location()) {
		nav.SetDestination(r.planner.ReturnDestination(), model.NavSpeedFast)
		r.SetIntention(model.IntentionReturning)
		return
	}

	if r.host.Senses.HasHostileTarget(id) {
		r.SetIntention(model.IntentionPursuing)
		return
	}

	if !nav.IsMoving() {
		nav.SetDestination(r.planner.RoamDestination(r.npc), model.NavSpeedSlowest)
	}
	r.SetIntention(model.IntentionPatrol)
}
