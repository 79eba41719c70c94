package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/npcwarden/internal/model"
)

func TestApplyDamage(t *testing.T) {
	w := newTestWorld(t)
	h := &recordingHandler{}
	w.Subscribe(h)

	attacker := newGuard(w, model.NewLocation(0, 0, 0))
	victim := newRoamer(w, model.NewLocation(1, 0, 0))
	p := newPlayer(w, model.NewLocation(-1, 0, 0))
	crate := model.NewProp(w.IDs().NextItemID(), "crate", "Wood", model.NewLocation(0, 1, 0), 0.5, true)
	for _, e := range []model.Entity{attacker, victim, p, crate} {
		require.NoError(t, w.Spawn(e))
	}
	w.DispatchEvents()

	assert.False(t, w.ApplyDamage(p, 40, model.DamageSlash, attacker))
	assert.Equal(t, 60.0, p.Health())

	assert.False(t, w.ApplyDamage(crate, 1000, model.DamageSlash, attacker), "props are indestructible")
	assert.False(t, crate.IsDestroyed())

	assert.True(t, w.ApplyDamage(victim, 1000, model.DamageSlash, attacker))
	assert.True(t, victim.IsDestroyed())
	assert.Equal(t, 1, w.DispatchEvents())
	assert.Equal(t, []uint32{victim.ObjectID()}, h.killed)

	stats := w.Stats()
	assert.Equal(t, int64(2), stats.Damage)
	assert.Equal(t, int64(1), stats.Kills)
}

func TestEffectCounters(t *testing.T) {
	w := newTestWorld(t)
	npc := newGuard(w, model.NewLocation(0, 0, 0))

	w.PlayEffect("effects/swing", npc.EyePosition(), npc.BodyForward(), npc)
	w.BroadcastSignal(npc, model.SignalAttack)
	w.ImpactEffect(model.Location{}, model.Location{X: -1}, model.MaterialFlesh)

	stats := w.Stats()
	assert.Equal(t, int64(1), stats.Effects)
	assert.Equal(t, int64(1), stats.Signals)
	assert.Equal(t, int64(1), stats.Impacts)
}
