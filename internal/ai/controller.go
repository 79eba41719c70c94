package ai

import (
	"time"

	"github.com/udisondev/npcwarden/internal/model"
)

// Controller represents AI controller interface for NPCs
type Controller interface {
	// Start starts AI controller
	Start()

	// Stop stops AI controller. Ticks after Stop are no-ops.
	Stop()

	// SetIntention sets AI intention
	SetIntention(intention model.Intention)

	// CurrentIntention returns current AI intention
	CurrentIntention() model.Intention

	// Tick performs one decision step at time now
	Tick(now time.Time)

	// Npc returns the controlled NPC
	Npc() *model.Npc

	// Home returns the position captured at attach time
	Home() model.Location
}
