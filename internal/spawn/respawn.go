package spawn

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// RespawnTask represents a scheduled respawn task
type RespawnTask struct {
	Point       *Point
	Slot        int
	RespawnTime time.Time
}

type taskKey struct {
	spawnID int64
	slot    int
}

// RespawnTaskManager manages scheduled respawns
type RespawnTaskManager struct {
	spawner *Spawner
	now     func() time.Time

	mu    sync.RWMutex
	tasks map[taskKey]*RespawnTask
}

// NewRespawnTaskManager creates new respawn task manager
func NewRespawnTaskManager(spawner *Spawner) *RespawnTaskManager {
	return &RespawnTaskManager{
		spawner: spawner,
		now:     time.Now,
		tasks:   make(map[taskKey]*RespawnTask),
	}
}

// Start starts respawn task manager (blocks until context is canceled)
func (m *RespawnTaskManager) Start(ctx context.Context) error {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	slog.Info("respawn task manager started", "interval", "1s")

	for {
		select {
		case <-ctx.Done():
			slog.Info("respawn task manager stopping")
			return ctx.Err()

		case now := <-ticker.C:
			m.ProcessTasks(now)
		}
	}
}

// ScheduleRespawn schedules respawn of a point slot after delay
func (m *RespawnTaskManager) ScheduleRespawn(p *Point, slot int, delay time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	respawnTime := m.now().Add(delay)
	m.tasks[taskKey{p.ID, slot}] = &RespawnTask{
		Point:       p,
		Slot:        slot,
		RespawnTime: respawnTime,
	}

	slog.Debug("respawn scheduled",
		"spawnID", p.ID,
		"slot", slot,
		"delay", delay,
		"respawnTime", respawnTime.Format(time.RFC3339))
}

// CancelRespawn cancels scheduled respawn
func (m *RespawnTaskManager) CancelRespawn(spawnID int64, slot int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.tasks, taskKey{spawnID, slot})

	slog.Debug("respawn cancelled", "spawnID", spawnID, "slot", slot)
}

// ProcessTasks respawns every task due at now and returns how many succeeded.
func (m *RespawnTaskManager) ProcessTasks(now time.Time) int {
	m.mu.Lock()
	var due []*RespawnTask
	for key, task := range m.tasks {
		if !now.Before(task.RespawnTime) {
			due = append(due, task)
			delete(m.tasks, key)
		}
	}
	m.mu.Unlock()

	done := 0
	for _, task := range due {
		npc, err := m.spawner.DoSpawn(task.Point, task.Slot)
		if err != nil {
			slog.Error("respawn failed",
				"spawnID", task.Point.ID,
				"slot", task.Slot,
				"error", err)
			continue
		}
		done++

		slog.Info("NPC respawned",
			"objectID", npc.ObjectID(),
			"kind", npc.Kind(),
			"spawnID", task.Point.ID)
	}
	return done
}

// TaskCount returns number of scheduled respawn tasks
func (m *RespawnTaskManager) TaskCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.tasks)
}

// Task returns the respawn task of a point slot (for testing)
func (m *RespawnTaskManager) Task(spawnID int64, slot int) (*RespawnTask, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	task, ok := m.tasks[taskKey{spawnID, slot}]
	return task, ok
}
