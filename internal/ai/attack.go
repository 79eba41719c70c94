package ai

import (
	"log/slog"
	"time"

	"github.com/udisondev/npcwarden/internal/game/combat"
	"github.com/udisondev/npcwarden/internal/model"
)

// Melee hit-scan geometry.
const (
	// meleeReachBonus extends the scan past the weapon's effective range.
	meleeReachBonus = 0.2
	// meleePullback moves the swept-sphere origin behind the eyes so targets
	// hugging the attacker are still caught.
	meleePullback = 0.2
	// meleePasses: pass 0 is a thin ray, pass 1 a sphere of AttackRadius.
	meleePasses = 2
)

// DefaultSkipSpecies lists species a guard never strikes.
var DefaultSkipSpecies = []string{"scientist"}

// AttackExecutor performs cooldown-gated melee strikes.
type AttackExecutor struct {
	physics     Physics
	effects     Effects
	hits        HitRecorder
	skipSpecies map[string]struct{}
}

// NewAttackExecutor creates an executor. hits may be nil.
func NewAttackExecutor(physics Physics, effects Effects, hits HitRecorder, skipSpecies []string) *AttackExecutor {
	skip := make(map[string]struct{}, len(skipSpecies))
	for _, s := range skipSpecies {
		skip[s] = struct{}{}
	}
	return &AttackExecutor{
		physics:     physics,
		effects:     effects,
		hits:        hits,
		skipSpecies: skip,
	}
}

// InRange reports whether target is strictly closer than the weapon's effective range.
func InRange(npc *model.Npc, target model.Entity, weapon *model.MeleeWeapon) bool {
	return npc.Location().Distance(target.Location()) < weapon.EffectiveRange
}

// TryAttack swings weapon at target when it is in range and off cooldown.
// Returns whether the attack was executed; a refused attack changes nothing.
func (x *AttackExecutor) TryAttack(now time.Time, npc *model.Npc, target model.Entity, weapon *model.MeleeWeapon) bool {
	if npc == nil || target == nil || weapon == nil {
		return false
	}
	if !InRange(npc, target, weapon) {
		return false
	}
	if weapon.HasAttackCooldown(now) {
		return false
	}

	weapon.StartAttackCooldown(now, 2*weapon.RepeatDelay)
	x.effects.BroadcastSignal(npc, model.SignalAttack)
	// Held weapons carry no transform, so the swing plays from the eyes
	// along the body forward and is broadcast rather than sent to one client.
	if weapon.HasSwingEffect() {
		x.effects.PlayEffect(weapon.SwingEffect, npc.EyePosition(), npc.BodyForward(), npc)
	}

	hits := x.resolve(now, npc, weapon)

	if IsDebugEnabled() {
		slog.Debug("melee attack",
			"npc", npc.ObjectID(),
			"target", target.ObjectID(),
			"weapon", weapon.MeleeWeaponTemplate.Name,
			"hits", hits)
	}
	return true
}

// ResolveMeleeDamage runs the hit-scan passes of a swing and applies damage.
// Returns the number of entities hit.
func (x *AttackExecutor) ResolveMeleeDamage(npc *model.Npc, weapon *model.MeleeWeapon) int {
	return x.resolve(time.Now(), npc, weapon)
}

func (x *AttackExecutor) resolve(now time.Time, npc *model.Npc, weapon *model.MeleeWeapon) int {
	eyes := npc.EyePosition()
	forward := npc.BodyForward()
	maxDistance := weapon.EffectiveRange + meleeReachBonus
	damage := weapon.TotalDamage() * weapon.NpcDamageScale

	hits := 0
	for pass := range meleePasses {
		ray := model.Ray{Origin: eyes, Direction: forward}
		radius := 0.0
		if pass == 1 {
			ray.Origin = eyes.Sub(forward.Scale(meleePullback))
			radius = weapon.AttackRadius
		}

		for _, hit := range x.physics.RaycastAll(ray, radius, maxDistance, MeleeLayerMask) {
			e := hit.Entity
			if e == nil || e.IsDestroyed() {
				continue
			}
			if e.ObjectID() == npc.ObjectID() {
				continue
			}
			if other, ok := e.(*model.Npc); ok && x.isKin(npc, other) {
				continue
			}

			killed := x.effects.ApplyDamage(e, damage, model.DamageSlash, npc)
			material := impactMaterial(e, hit.Material)
			x.effects.ImpactEffect(hit.Point, forward.Scale(-1), material)
			x.record(now, npc, weapon, e, hit, pass, damage, material, killed)
			hits++

			if e.BlocksProjectiles() {
				break
			}
		}

		if hits > 0 {
			break
		}
	}
	return hits
}

// isKin reports whether other belongs to a species the attacker never strikes.
func (x *AttackExecutor) isKin(npc, other *model.Npc) bool {
	if other.Species() == npc.Species() {
		return true
	}
	_, skip := x.skipSpecies[other.Species()]
	return skip
}

func impactMaterial(e model.Entity, surface string) string {
	switch v := e.(type) {
	case *model.Player, *model.Npc:
		return model.MaterialFlesh
	case *model.Prop:
		if surface != "" {
			return surface
		}
		if v.Material() != "" {
			return v.Material()
		}
	default:
		if surface != "" {
			return surface
		}
	}
	return model.MaterialGeneric
}

func (x *AttackExecutor) record(now time.Time, npc *model.Npc, weapon *model.MeleeWeapon, e model.Entity, hit RaycastHit, pass int, damage float64, material string, killed bool) {
	if x.hits == nil {
		return
	}
	x.hits.RecordHit(combat.HitRecord{
		AttackerID:   npc.ObjectID(),
		AttackerKind: npc.Kind(),
		TargetID:     e.ObjectID(),
		TargetName:   e.Name(),
		Weapon:       weapon.MeleeWeaponTemplate.Name,
		DamageType:   model.DamageSlash,
		Damage:       damage,
		Material:     material,
		Point:        hit.Point,
		Pass:         pass,
		Killed:       killed,
		At:           now,
	})
}
