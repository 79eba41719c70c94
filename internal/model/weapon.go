package model

import (
	"sync"
	"time"
)

// DamageAmount is one configured damage component of a weapon.
type DamageAmount struct {
	Type   DamageType
	Amount float64
}

// MeleeWeaponTemplate holds the static stats of a melee weapon.
type MeleeWeaponTemplate struct {
	Name           string
	EffectiveRange float64
	AttackRadius   float64
	RepeatDelay    time.Duration
	Damage         []DamageAmount
	NpcDamageScale float64
	SwingEffect    string // effect resource path, "" when the weapon has none
}

// MeleeWeapon is a held melee weapon instance.
// The cooldown lives on the weapon, not on the wielder: the AI only checks and starts it.
type MeleeWeapon struct {
	*WorldObject
	MeleeWeaponTemplate

	mu            sync.Mutex
	cooldownUntil time.Time
}

// NewMeleeWeapon creates a weapon instance from a template.
func NewMeleeWeapon(objectID uint32, tmpl MeleeWeaponTemplate) *MeleeWeapon {
	return &MeleeWeapon{
		WorldObject:         NewWorldObject(objectID, tmpl.Name, Location{}),
		MeleeWeaponTemplate: tmpl,
	}
}

// BlocksProjectiles reports false: held weapons never stop rays.
func (w *MeleeWeapon) BlocksProjectiles() bool {
	return false
}

// TotalDamage returns the sum of all damage components.
func (w *MeleeWeapon) TotalDamage() float64 {
	var sum float64
	for _, d := range w.Damage {
		sum += d.Amount
	}
	return sum
}

// HasSwingEffect reports whether a swing effect is configured.
func (w *MeleeWeapon) HasSwingEffect() bool {
	return w.SwingEffect != ""
}

// HasAttackCooldown reports whether the weapon is still cooling down at now.
func (w *MeleeWeapon) HasAttackCooldown(now time.Time) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return now.Before(w.cooldownUntil)
}

// StartAttackCooldown blocks attacks until now + d.
func (w *MeleeWeapon) StartAttackCooldown(now time.Time, d time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.cooldownUntil = now.Add(d)
}

// CooldownUntil returns the time the current cooldown ends.
func (w *MeleeWeapon) CooldownUntil() time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.cooldownUntil
}
