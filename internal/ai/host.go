package ai

import (
	"github.com/udisondev/npcwarden/internal/game/combat"
	"github.com/udisondev/npcwarden/internal/game/geo"
	"github.com/udisondev/npcwarden/internal/model"
)

// Host interfaces. The AI core reads the world and issues commands only
// through these; internal/world provides the reference implementation.

// Terrain answers ground height queries.
type Terrain interface {
	HeightAt(x, y float64) float64
}

// NavMesh snaps points onto the walkable surface and plans paths.
type NavMesh interface {
	SampleNavigable(loc model.Location, radius float64, mask int32) (model.Location, bool)
	ComputePath(from, to model.Location, mask int32) geo.Path
}

// RaycastHit is one entity struck by a ray or swept sphere.
type RaycastHit struct {
	Entity   model.Entity // nil when the ray struck static geometry
	Point    model.Location
	Distance float64
	Material string // surface material, "" when unknown
}

// Physics performs hit-scan queries. Hits are ordered by distance.
type Physics interface {
	RaycastAll(ray model.Ray, radius, maxDistance float64, layerMask int32) []RaycastHit
}

// MeleeLayerMask selects the collision layers a melee swing can strike.
const MeleeLayerMask = model.LayerTerrain | model.LayerDeployed | model.LayerCharacter | model.LayerConstruction

// Navigator drives movement of a single NPC.
type Navigator interface {
	SetDestination(loc model.Location, speed model.NavSpeed)
	SetSpeed(speed model.NavSpeed)
	ClearFacingOverride()
	SetFacingTowards(objectID uint32)
	IsMoving() bool
}

// NavigatorSource resolves the navigator of an NPC.
type NavigatorSource interface {
	Navigator(npcID uint32) (Navigator, bool)
}

// Senses exposes the perception memory of an NPC.
type Senses interface {
	// Targets returns the entities currently sensed. May include non-players.
	Targets(npcID uint32) []model.Entity
	LineOfSight(npcID, targetID uint32) bool
	SenseRange(npcID uint32) float64

	// HasHostileTarget reports whether the host's own targeting has picked a target.
	HasHostileTarget(npcID uint32) bool
}

// Effects mutates the world on behalf of controllers.
type Effects interface {
	// ApplyDamage damages target and reports whether the hit was a killing blow.
	ApplyDamage(target model.Entity, amount float64, dmgType model.DamageType, attacker *model.Npc) bool
	PlayEffect(path string, pos, forward model.Location, owner *model.Npc)
	BroadcastSignal(npc *model.Npc, signal model.Signal)
	ImpactEffect(point, normal model.Location, material string)
}

// WeaponSource resolves the melee weapon currently held by an NPC.
type WeaponSource interface {
	HeldWeapon(npc *model.Npc) *model.MeleeWeapon
}

// SafeZones answers whether a location is protected from NPC aggression.
type SafeZones interface {
	InSafeZone(loc model.Location) bool
}

// HitRecorder receives resolved melee hits.
type HitRecorder interface {
	RecordHit(rec combat.HitRecord)
}

// Host bundles every host service used by controllers.
type Host struct {
	Terrain    Terrain
	NavMesh    NavMesh
	Physics    Physics
	Navigators NavigatorSource
	Senses     Senses
	Effects    Effects
	Weapons    WeaponSource
	SafeZones  SafeZones
	Hits       HitRecorder // optional
}
