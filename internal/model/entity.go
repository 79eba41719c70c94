package model

// Entity is anything that lives in the world and can be hit, sensed, or targeted.
// Implemented by *Npc, *Player and *Prop.
type Entity interface {
	ObjectID() uint32
	Name() string
	Location() Location
	IsDestroyed() bool

	// BlocksProjectiles reports whether a ray that struck this entity
	// must stop scanning further hits.
	BlocksProjectiles() bool
}

// NpcKind is the host archetype tag of an NPC (prefab short name).
type NpcKind string

const (
	// KindRoamer is the ranged patrolling NPC.
	KindRoamer NpcKind = "scientistnpc_roam"
	// KindGuard is the melee guard NPC.
	KindGuard NpcKind = "scarecrow"
)

// String returns the prefab tag.
func (k NpcKind) String() string {
	return string(k)
}

// NavSpeed selects one of the navigator speed presets.
type NavSpeed int32

const (
	NavSpeedSlowest NavSpeed = iota
	NavSpeedSlow
	NavSpeedNormal
	NavSpeedFast
)

// String returns human-readable speed name
func (s NavSpeed) String() string {
	switch s {
	case NavSpeedSlowest:
		return "SLOWEST"
	case NavSpeedSlow:
		return "SLOW"
	case NavSpeedNormal:
		return "NORMAL"
	case NavSpeedFast:
		return "FAST"
	default:
		return "UNKNOWN"
	}
}

// Signal is a one-shot entity signal broadcast to observers (animation triggers).
type Signal int32

const (
	SignalAttack Signal = iota + 1
	SignalReload
	SignalFlinch
)

// String returns human-readable signal name
func (s Signal) String() string {
	switch s {
	case SignalAttack:
		return "ATTACK"
	case SignalReload:
		return "RELOAD"
	case SignalFlinch:
		return "FLINCH"
	default:
		return "UNKNOWN"
	}
}

// DamageType classifies applied damage.
type DamageType int32

const (
	DamageGeneric DamageType = iota
	DamageSlash
	DamageBlunt
	DamageStab
	DamageBullet
)

// String returns human-readable damage type name
func (d DamageType) String() string {
	switch d {
	case DamageGeneric:
		return "generic"
	case DamageSlash:
		return "slash"
	case DamageBlunt:
		return "blunt"
	case DamageStab:
		return "stab"
	case DamageBullet:
		return "bullet"
	default:
		return "unknown"
	}
}

// ParseDamageType parses a config name into a DamageType. Unknown names map to DamageGeneric.
func ParseDamageType(name string) DamageType {
	switch name {
	case "slash":
		return DamageSlash
	case "blunt":
		return DamageBlunt
	case "stab":
		return DamageStab
	case "bullet":
		return DamageBullet
	default:
		return DamageGeneric
	}
}

// MaterialFlesh is the impact material for organic targets.
const MaterialFlesh = "Flesh"

// MaterialGeneric is the impact material used when the struck surface has none.
const MaterialGeneric = "generic"

// Collision layers used by hit-scan queries.
const (
	LayerTerrain      int32 = 1 << 0
	LayerDeployed     int32 = 1 << 8 // props
	LayerCharacter    int32 = 1 << 17
	LayerConstruction int32 = 1 << 21 // static walls
)

// LayerOf returns the collision layer of an entity.
func LayerOf(e Entity) int32 {
	switch e.(type) {
	case *Player, *Npc:
		return LayerCharacter
	case *Prop:
		return LayerDeployed
	default:
		return LayerTerrain
	}
}
