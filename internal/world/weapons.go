package world

import "github.com/udisondev/npcwarden/internal/model"

// AddWeapon registers a weapon instance so NPCs can hold it.
func (w *World) AddWeapon(weapon *model.MeleeWeapon) {
	w.weapons.Store(weapon.ObjectID(), weapon)
}

// Equip puts a registered weapon into the NPC's hands.
func (w *World) Equip(npc *model.Npc, weapon *model.MeleeWeapon) {
	w.AddWeapon(weapon)
	npc.SetHeldWeaponID(weapon.ObjectID())
}

// DestroyWeapon removes a weapon; whoever held it becomes empty-handed.
func (w *World) DestroyWeapon(weapon *model.MeleeWeapon) {
	weapon.MarkDestroyed()
	w.weapons.Delete(weapon.ObjectID())
}

// HeldWeapon returns the live weapon held by npc, nil when empty-handed.
func (w *World) HeldWeapon(npc *model.Npc) *model.MeleeWeapon {
	id := npc.HeldWeaponID()
	if id == 0 {
		return nil
	}
	value, ok := w.weapons.Load(id)
	if !ok {
		return nil
	}
	weapon := value.(*model.MeleeWeapon)
	if weapon.IsDestroyed() {
		return nil
	}
	return weapon
}
