package ai

import (
	"math"
	"testing"
	"time"

	"github.com/udisondev/npcwarden/internal/model"
)

func newExecutor(h *testHost) *AttackExecutor {
	return NewAttackExecutor(h.physics, h.effects, h.hits, DefaultSkipSpecies)
}

func TestTryAttack_OnCooldownIsNoop(t *testing.T) {
	h := newTestHost()
	npc := newTestGuard(1, model.NewLocation(0, 0, 0))
	target := newTestPlayer(10, model.NewLocation(1, 0, 0))
	weapon := newTestWeapon(50)
	h.physics.passes = [][]RaycastHit{{{Entity: target, Point: target.Location()}}}

	now := time.Unix(1000, 0)
	weapon.StartAttackCooldown(now, 10*time.Second)
	until := weapon.CooldownUntil()

	if newExecutor(h).TryAttack(now.Add(time.Second), npc, target, weapon) {
		t.Fatal("TryAttack() on cooldown = true, want false")
	}
	if !weapon.CooldownUntil().Equal(until) {
		t.Errorf("cooldown restarted: %v, want %v", weapon.CooldownUntil(), until)
	}
	if len(h.effects.damage) != 0 || len(h.effects.signals) != 0 || len(h.physics.calls) != 0 {
		t.Errorf("attack on cooldown had side effects: damage=%v signals=%v raycasts=%d",
			h.effects.damage, h.effects.signals, len(h.physics.calls))
	}
}

func TestTryAttack_StartsDoubleRepeatDelayCooldown(t *testing.T) {
	h := newTestHost()
	npc := newTestGuard(1, model.NewLocation(0, 0, 0))
	target := newTestPlayer(10, model.NewLocation(1.5, 0, 0))
	weapon := newTestWeapon(50)
	h.physics.passes = [][]RaycastHit{{{Entity: target, Point: target.Location()}}}

	now := time.Unix(1000, 0)
	if !newExecutor(h).TryAttack(now, npc, target, weapon) {
		t.Fatal("TryAttack() = false, want true")
	}

	want := now.Add(2 * weapon.RepeatDelay)
	if !weapon.CooldownUntil().Equal(want) {
		t.Errorf("CooldownUntil() = %v, want %v", weapon.CooldownUntil(), want)
	}
	if len(h.effects.signals) != 1 || h.effects.signals[0] != model.SignalAttack {
		t.Errorf("signals = %v, want [ATTACK]", h.effects.signals)
	}
	if len(h.effects.played) != 1 || h.effects.played[0] != weapon.SwingEffect {
		t.Errorf("played effects = %v, want swing effect", h.effects.played)
	}
	if got := h.effects.damage[10]; got != 50 {
		t.Errorf("damage = %v, want 50 (25 x npc scale 2)", got)
	}
}

func TestTryAttack_Refused(t *testing.T) {
	npc := newTestGuard(1, model.NewLocation(0, 0, 0))
	now := time.Unix(1000, 0)

	t.Run("out of range", func(t *testing.T) {
		h := newTestHost()
		weapon := newTestWeapon(50)
		target := newTestPlayer(10, model.NewLocation(2, 0, 0)) // range is exclusive
		if newExecutor(h).TryAttack(now, npc, target, weapon) {
			t.Error("TryAttack() = true, want false")
		}
		if !weapon.CooldownUntil().IsZero() {
			t.Error("cooldown started for refused attack")
		}
	})

	t.Run("no weapon", func(t *testing.T) {
		h := newTestHost()
		if newExecutor(h).TryAttack(now, npc, newTestPlayer(10, model.NewLocation(1, 0, 0)), nil) {
			t.Error("TryAttack() = true, want false")
		}
	})

	t.Run("no target", func(t *testing.T) {
		h := newTestHost()
		if newExecutor(h).TryAttack(now, npc, nil, newTestWeapon(50)) {
			t.Error("TryAttack() = true, want false")
		}
	})
}

func TestTryAttack_NoSwingEffect(t *testing.T) {
	h := newTestHost()
	npc := newTestGuard(1, model.NewLocation(0, 0, 0))
	target := newTestPlayer(10, model.NewLocation(1, 0, 0))
	weapon := newTestWeapon(50)
	weapon.SwingEffect = ""

	if !newExecutor(h).TryAttack(time.Unix(1000, 0), npc, target, weapon) {
		t.Fatal("TryAttack() = false, want true")
	}
	if len(h.effects.played) != 0 {
		t.Errorf("played effects = %v, want none", h.effects.played)
	}
}

func TestResolveMeleeDamage_SkipsSelfAndKin(t *testing.T) {
	h := newTestHost()
	npc := newTestGuard(1, model.NewLocation(0, 0, 0))
	kin := newTestGuard(2, model.NewLocation(0.5, 0, 0))
	scientist := newTestRoamer(3, model.NewLocation(0.7, 0, 0))
	enemy := newTestPlayer(10, model.NewLocation(1, 0, 0))

	h.physics.passes = [][]RaycastHit{{
		{Entity: npc, Point: model.NewLocation(0, 0, 1.6)},
		{Entity: kin, Point: model.NewLocation(0.5, 0, 1.6)},
		{Entity: scientist, Point: model.NewLocation(0.7, 0, 1.6)},
		{Entity: enemy, Point: model.NewLocation(1, 0, 1.6)},
	}}

	hits := newExecutor(h).ResolveMeleeDamage(npc, newTestWeapon(50))

	if hits != 1 {
		t.Fatalf("ResolveMeleeDamage() = %d, want 1", hits)
	}
	if len(h.effects.damage) != 1 || h.effects.damage[10] != 50 {
		t.Errorf("damage = %v, want only player 10 with 50", h.effects.damage)
	}
	if len(h.effects.impacts) != 1 || h.effects.impacts[0].material != model.MaterialFlesh {
		t.Errorf("impacts = %+v, want one Flesh impact", h.effects.impacts)
	}
	if n := h.effects.impacts[0].normal; math.Abs(n.X+1) > 1e-9 || math.Abs(n.Y) > 1e-9 {
		t.Errorf("impact normal = %+v, want -forward", n)
	}
	if len(h.physics.calls) != 1 {
		t.Errorf("raycast passes = %d, want 1 after a hit", len(h.physics.calls))
	}
	if len(h.hits.hits) != 1 || h.hits.hits[0].TargetID != 10 || h.hits.hits[0].Pass != 0 {
		t.Fatalf("recorded hits = %+v, want one pass-0 hit on 10", h.hits.hits)
	}
	if rec := h.hits.hits[0]; rec.Weapon != "pitchfork" || rec.TargetName != "player" || rec.AttackerKind != model.KindGuard {
		t.Errorf("recorded weapon=%q target=%q kind=%q, want pitchfork/player/guard", rec.Weapon, rec.TargetName, rec.AttackerKind)
	}
}

func TestResolveMeleeDamage_BlockingHitStopsPass(t *testing.T) {
	h := newTestHost()
	npc := newTestGuard(1, model.NewLocation(0, 0, 0))
	crate := model.NewProp(30, "crate", "Wood", model.NewLocation(0.5, 0, 0), 0.5, true)
	enemy := newTestPlayer(10, model.NewLocation(1, 0, 0))

	h.physics.passes = [][]RaycastHit{{
		{Entity: crate, Point: model.NewLocation(0.5, 0, 1.6)},
		{Entity: enemy, Point: model.NewLocation(1, 0, 1.6)},
	}}

	hits := newExecutor(h).ResolveMeleeDamage(npc, newTestWeapon(50))

	if hits != 1 {
		t.Fatalf("ResolveMeleeDamage() = %d, want 1", hits)
	}
	if _, ok := h.effects.damage[10]; ok {
		t.Error("player behind a blocking prop was hit")
	}
	if len(h.effects.impacts) != 1 || h.effects.impacts[0].material != "Wood" {
		t.Errorf("impacts = %+v, want one Wood impact", h.effects.impacts)
	}
}

func TestResolveMeleeDamage_NonBlockingHitContinues(t *testing.T) {
	h := newTestHost()
	npc := newTestGuard(1, model.NewLocation(0, 0, 0))
	bush := model.NewProp(31, "bush", "", model.NewLocation(0.5, 0, 0), 0.5, false)
	enemy := newTestPlayer(10, model.NewLocation(1, 0, 0))

	h.physics.passes = [][]RaycastHit{{
		{Entity: bush, Point: model.NewLocation(0.5, 0, 1.6)},
		{Entity: enemy, Point: model.NewLocation(1, 0, 1.6)},
	}}

	if hits := newExecutor(h).ResolveMeleeDamage(npc, newTestWeapon(50)); hits != 2 {
		t.Fatalf("ResolveMeleeDamage() = %d, want 2", hits)
	}
	if h.effects.impacts[0].material != model.MaterialGeneric {
		t.Errorf("bush impact material = %q, want %q", h.effects.impacts[0].material, model.MaterialGeneric)
	}
}

func TestResolveMeleeDamage_SecondPassSweeps(t *testing.T) {
	h := newTestHost()
	npc := newTestGuard(1, model.NewLocation(0, 0, 0))
	enemy := newTestPlayer(10, model.NewLocation(0.3, 0.3, 0))
	weapon := newTestWeapon(50)

	h.physics.passes = [][]RaycastHit{
		nil,
		{{Entity: enemy, Point: model.NewLocation(0.3, 0.3, 1.6)}},
	}

	if hits := newExecutor(h).ResolveMeleeDamage(npc, weapon); hits != 1 {
		t.Fatalf("ResolveMeleeDamage() = %d, want 1", hits)
	}
	if len(h.physics.calls) != 2 {
		t.Fatalf("raycast passes = %d, want 2", len(h.physics.calls))
	}

	thin, swept := h.physics.calls[0], h.physics.calls[1]
	eyes := npc.EyePosition()
	if thin.radius != 0 || thin.ray.Origin != eyes {
		t.Errorf("pass 0 = %+v, want radius 0 from eyes", thin)
	}
	if swept.radius != weapon.AttackRadius {
		t.Errorf("pass 1 radius = %v, want %v", swept.radius, weapon.AttackRadius)
	}
	if math.Abs(swept.ray.Origin.X-(eyes.X-0.2)) > 1e-9 {
		t.Errorf("pass 1 origin = %+v, want pulled back 0.2", swept.ray.Origin)
	}
	for _, c := range h.physics.calls {
		if math.Abs(c.maxDistance-2.2) > 1e-9 {
			t.Errorf("max distance = %v, want 2.2", c.maxDistance)
		}
	}
	if h.hits.hits[0].Pass != 1 {
		t.Errorf("recorded pass = %d, want 1", h.hits.hits[0].Pass)
	}
}

func TestResolveMeleeDamage_NothingHit(t *testing.T) {
	h := newTestHost()
	npc := newTestGuard(1, model.NewLocation(0, 0, 0))

	if hits := newExecutor(h).ResolveMeleeDamage(npc, newTestWeapon(50)); hits != 0 {
		t.Errorf("ResolveMeleeDamage() = %d, want 0", hits)
	}
	if len(h.physics.calls) != 2 {
		t.Errorf("raycast passes = %d, want 2", len(h.physics.calls))
	}
}
