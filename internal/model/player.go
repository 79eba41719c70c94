package model

import "sync/atomic"

// Persistent account IDs are 64-bit individual-account identifiers
// (universe 1, type 1, instance 1). Anything outside this window is a bot,
// an NPC-driven player or an ephemeral connection.
const (
	persistentIDMin uint64 = 76561197960265728
	persistentIDMax uint64 = 76561202255233023
)

// IsPersistentID reports whether id is a valid persistent player identity.
func IsPersistentID(id uint64) bool {
	return id >= persistentIDMin && id < persistentIDMax
}

// Player is a connected (or NPC-driven) human actor.
type Player struct {
	*Character

	accountID uint64

	flying   atomic.Bool
	sleeping atomic.Bool
	wounded  atomic.Bool
}

// NewPlayer creates a player with full health.
func NewPlayer(objectID uint32, accountID uint64, name string, loc Location, maxHealth float64) *Player {
	return &Player{
		Character: NewCharacter(objectID, name, "human", loc, maxHealth),
		accountID: accountID,
	}
}

// AccountID returns the persistent account identifier.
func (p *Player) AccountID() uint64 {
	return p.accountID
}

// HasPersistentID reports whether the player is backed by a real account.
func (p *Player) HasPersistentID() bool {
	return IsPersistentID(p.accountID)
}

func (p *Player) IsFlying() bool     { return p.flying.Load() }
func (p *Player) SetFlying(v bool)   { p.flying.Store(v) }
func (p *Player) IsSleeping() bool   { return p.sleeping.Load() }
func (p *Player) SetSleeping(v bool) { p.sleeping.Store(v) }
func (p *Player) IsWounded() bool    { return p.wounded.Load() }
func (p *Player) SetWounded(v bool)  { p.wounded.Store(v) }
