package ai

import (
	"log/slog"
	"math/rand/v2"
	"sync/atomic"

	"github.com/udisondev/npcwarden/internal/model"
)

// Options tune controllers created for a registry.
type Options struct {
	RoamRange   float64
	SkipSpecies []string
	Rand        *rand.Rand // nil uses the global source
}

// DefaultOptions returns controller defaults.
func DefaultOptions() Options {
	return Options{
		RoamRange:   DefaultRoamRange,
		SkipSpecies: DefaultSkipSpecies,
	}
}

// baseAI holds the state shared by all controllers: the NPC, its home,
// running flag and intention.
type baseAI struct {
	npc       *model.Npc
	home      model.Location
	isRunning atomic.Bool
	intention atomic.Int32
	kind      string
}

// attach binds the controller to npc and captures its home.
func (ai *baseAI) attach(npc *model.Npc, kind string) {
	ai.npc = npc
	ai.home = npc.Location()
	ai.kind = kind
}

// Start starts AI controller
func (ai *baseAI) Start() {
	ai.isRunning.Store(true)
	ai.SetIntention(model.IntentionPatrol)
	if IsDebugEnabled() {
		slog.Debug(ai.kind+" AI started",
			"npc", ai.npc.Name(),
			"objectID", ai.npc.ObjectID(),
			"home", ai.home)
	}
}

// Stop stops AI controller
func (ai *baseAI) Stop() {
	ai.isRunning.Store(false)
	ai.SetIntention(model.IntentionIdle)
	if IsDebugEnabled() {
		slog.Debug(ai.kind+" AI stopped",
			"npc", ai.npc.Name(),
			"objectID", ai.npc.ObjectID())
	}
}

// SetIntention sets AI intention
func (ai *baseAI) SetIntention(intention model.Intention) {
	old := model.Intention(ai.intention.Swap(int32(intention)))

	if old != intention && IsDebugEnabled() {
		slog.Debug("AI intention changed",
			"npc", ai.npc.Name(),
			"objectID", ai.npc.ObjectID(),
			"from", old,
			"to", intention)
	}
}

// CurrentIntention returns current AI intention
func (ai *baseAI) CurrentIntention() model.Intention {
	return model.Intention(ai.intention.Load())
}

// Npc returns the controlled NPC.
func (ai *baseAI) Npc() *model.Npc { return ai.npc }

// Home returns the position captured at attach time.
func (ai *baseAI) Home() model.Location { return ai.home }

// canThink reports whether a tick should do anything.
func (ai *baseAI) canThink() bool {
	return ai.isRunning.Load() && !ai.npc.IsDead() && !ai.npc.IsDestroyed()
}
