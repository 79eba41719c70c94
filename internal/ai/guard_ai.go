package ai

import (
	"log/slog"
	"time"

	"github.com/udisondev/npcwarden/internal/model"
)

// GuardAI is the melee guard controller, ticked at the physics rate.
//
// Priorities per tick: leash (return home fast) > attack a ready target in
// reach, otherwise pursue it > slow patrol around home.
type GuardAI struct {
	baseAI

	host     Host
	planner  *MovementPlanner
	selector *TargetSelector
	attacker *AttackExecutor

	// weapon is re-validated every tick: it may be dropped or destroyed externally.
	weapon *model.MeleeWeapon
}

var _ Controller = (*GuardAI)(nil)

// NewGuardAI creates a guard controller. Home is the NPC's current location.
func NewGuardAI(npc *model.Npc, host Host, opts Options) *GuardAI {
	g := &GuardAI{
		host:     host,
		selector: NewTargetSelector(host.Senses, host.SafeZones),
		attacker: NewAttackExecutor(host.Physics, host.Effects, host.Hits, opts.SkipSpecies),
	}
	g.attach(npc, "guard")
	g.planner = NewMovementPlanner(g.home, opts.RoamRange, host.Terrain, host.NavMesh, opts.Rand)
	return g
}

// Tick performs one guard decision step.
func (g *GuardAI) Tick(now time.Time) {
	if !g.canThink() {
		return
	}

	nav, ok := g.host.Navigators.Navigator(g.npc.ObjectID())
	if !ok {
		if IsDebugEnabled() {
			slog.Debug("guard has no navigator", "objectID", g.npc.ObjectID())
		}
		return
	}

	target, hasTarget := g.selector.SelectBestTarget(g.npc)

	if g.planner.BeyondLeash(g.npc.Location()) {
		nav.ClearFacingOverride()
		nav.SetDestination(g.planner.ReturnDestination(), model.NavSpeedFast)
		g.SetIntention(model.IntentionReturning)
		return
	}

	if !hasTarget {
		nav.ClearFacingOverride()
		nav.SetSpeed(model.NavSpeedSlowest)
		if !nav.IsMoving() {
			nav.SetDestination(g.planner.RoamDestination(g.npc), model.NavSpeedSlowest)
		}
		g.SetIntention(model.IntentionPatrol)
		return
	}

	nav.SetFacingTowards(target.Player.ObjectID())

	weapon := g.heldWeapon()
	if weapon != nil && InRange(g.npc, target.Player, weapon) && !weapon.HasAttackCooldown(now) {
		g.attacker.TryAttack(now, g.npc, target.Player, weapon)
		g.SetIntention(model.IntentionAttacking)
		return
	}

	// Out of range, empty-handed or cooling down: close in.

	nav.SetDestination(target.Player.Location(), model.NavSpeedFast)
	g.SetIntention(model.IntentionPursuing)
}

// heldWeapon returns the cached weapon, re-acquiring it when stale.
func (g *GuardAI) heldWeapon() *model.MeleeWeapon {
	w := g.weapon
	if w != nil && !w.IsDestroyed() && w.ObjectID() == g.npc.HeldWeaponID() {
		return w
	}

	g.weapon = nil
	if g.host.Weapons != nil {
		g.weapon = g.host.Weapons.HeldWeapon(g.npc)
	}

	if IsDebugEnabled() {
		slog.Debug("guard weapon re-acquired",
			"objectID", g.npc.ObjectID(),
			"found", g.weapon != nil)
	}
	return g.weapon
}
