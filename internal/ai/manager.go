package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// ErrControllerNotFound is returned when no controller is registered for an objectID.
var ErrControllerNotFound = errors.New("controller not found")

// Cadence selects how often a controller is ticked.
type Cadence int32

const (
	// CadenceSlow is the fixed repeating timer used by roamers.
	CadenceSlow Cadence = iota
	// CadenceFast is the physics rate used by guards.
	CadenceFast
)

// String returns human-readable cadence name
func (c Cadence) String() string {
	switch c {
	case CadenceSlow:
		return "slow"
	case CadenceFast:
		return "fast"
	default:
		return "unknown"
	}
}

// Default tick intervals.
const (
	DefaultSlowTick = 1 * time.Second
	DefaultFastTick = 50 * time.Millisecond
)

type registration struct {
	controller Controller
	cadence    Cadence
}

// TickManager manages AI ticks for all registered NPCs.
//
// A tick pass holds mu for its whole duration and Unregister takes mu too,
// so once Unregister returns the controller is never ticked again.
// Controllers must not call Register/Unregister from inside Tick.
type TickManager struct {
	mu          sync.Mutex
	controllers map[uint32]registration // objectID → controller

	slowInterval time.Duration
	fastInterval time.Duration
}

// NewTickManager creates new AI tick manager. Non-positive intervals use defaults.
func NewTickManager(slow, fast time.Duration) *TickManager {
	if slow <= 0 {
		slow = DefaultSlowTick
	}
	if fast <= 0 {
		fast = DefaultFastTick
	}
	return &TickManager{
		controllers:  make(map[uint32]registration),
		slowInterval: slow,
		fastInterval: fast,
	}
}

// Register registers and starts the controller of an NPC.
// Returns false when objectID is already registered.
func (m *TickManager) Register(objectID uint32, controller Controller, cadence Cadence) bool {
	m.mu.Lock()
	if _, exists := m.controllers[objectID]; exists {
		m.mu.Unlock()
		if IsDebugEnabled() {
			slog.Debug("AI controller already registered", "objectID", objectID)
		}
		return false
	}
	m.controllers[objectID] = registration{controller: controller, cadence: cadence}
	m.mu.Unlock()

	controller.Start()

	slog.Debug("AI controller registered",
		"objectID", objectID,
		"cadence", cadence,
		"intention", controller.CurrentIntention())
	return true
}

// Unregister removes and stops the controller of an NPC.
// Waits for an in-flight tick pass; no-op when objectID is unknown.
func (m *TickManager) Unregister(objectID uint32) {
	m.mu.Lock()
	reg, ok := m.controllers[objectID]
	delete(m.controllers, objectID)
	m.mu.Unlock()

	if !ok {
		return
	}
	reg.controller.Stop()

	slog.Debug("AI controller unregistered", "objectID", objectID)
}

// Start runs both tick cadences (blocks until context is canceled)
func (m *TickManager) Start(ctx context.Context) error {
	slow := time.NewTicker(m.slowInterval)
	defer slow.Stop()
	fast := time.NewTicker(m.fastInterval)
	defer fast.Stop()

	slog.Info("AI tick manager started", "slow", m.slowInterval, "fast", m.fastInterval)

	for {
		select {
		case <-ctx.Done():
			slog.Info("AI tick manager stopping")
			return ctx.Err()

		case now := <-slow.C:
			m.TickPass(CadenceSlow, now)

		case now := <-fast.C:
			m.TickPass(CadenceFast, now)
		}
	}
}

// TickPass ticks every controller registered on cadence and returns how many were ticked.
func (m *TickManager) TickPass(cadence Cadence, now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := 0
	for _, reg := range m.controllers {
		if reg.cadence != cadence {
			continue
		}
		reg.controller.Tick(now)
		count++
	}

	if count > 0 && IsDebugEnabled() {
		slog.Debug("AI tick completed", "cadence", cadence, "controllers", count)
	}
	return count
}

// Count returns number of registered controllers
func (m *TickManager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.controllers)
}

// Controller returns controller for NPC
func (m *TickManager) Controller(objectID uint32) (Controller, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	reg, ok := m.controllers[objectID]
	if !ok {
		return nil, fmt.Errorf("objectID %d: %w", objectID, ErrControllerNotFound)
	}
	return reg.controller, nil
}
