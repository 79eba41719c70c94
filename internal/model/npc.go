package model

import "sync/atomic"

// DefaultEyeHeight is the eye offset above the NPC's feet.
const DefaultEyeHeight = 1.6

// AllAreas is the navigation area mask that allows every nav area.
const AllAreas int32 = -1

// Npc is a server-controlled creature.
// The AI core never owns it: it only attaches a controller and reads/writes
// through the host interfaces.
type Npc struct {
	*Character

	kind      NpcKind
	eyeHeight float64
	areaMask  int32

	// heldWeaponID is the objectID of the currently held melee weapon (0 = none).
	heldWeaponID atomic.Uint32

	// hostileTargetID is set by the host's own targeting system (roamer brain).
	hostileTargetID atomic.Uint32
}

// NewNpc creates an NPC of the given archetype.
func NewNpc(objectID uint32, kind NpcKind, species string, loc Location, maxHealth float64) *Npc {
	return &Npc{
		Character: NewCharacter(objectID, kind.String(), species, loc, maxHealth),
		kind:      kind,
		eyeHeight: DefaultEyeHeight,
		areaMask:  AllAreas,
	}
}

// Kind returns the NPC archetype tag.
func (n *Npc) Kind() NpcKind {
	return n.kind
}

// AreaMask returns the navigation area mask.
func (n *Npc) AreaMask() int32 {
	return n.areaMask
}

// SetAreaMask sets the navigation area mask. Call before spawning.
func (n *Npc) SetAreaMask(mask int32) {
	n.areaMask = mask
}

// EyePosition returns the world position of the NPC's eyes.
func (n *Npc) EyePosition() Location {
	loc := n.Location()
	loc.Z += n.eyeHeight
	return loc
}

// BodyForward returns the planar unit facing vector.
func (n *Npc) BodyForward() Location {
	return DirectionFromHeading(n.Heading())
}

// HeldWeaponID returns the objectID of the held weapon, 0 if empty-handed.
func (n *Npc) HeldWeaponID() uint32 {
	return n.heldWeaponID.Load()
}

// SetHeldWeaponID equips the weapon with the given objectID (0 to unequip).
func (n *Npc) SetHeldWeaponID(id uint32) {
	n.heldWeaponID.Store(id)
}

// HostileTargetID returns the target picked by the host's targeting, 0 if none.
func (n *Npc) HostileTargetID() uint32 {
	return n.hostileTargetID.Load()
}

// SetHostileTargetID records the host targeting result.
func (n *Npc) SetHostileTargetID(id uint32) {
	n.hostileTargetID.Store(id)
}
