package model

import (
	"sync"
	"sync/atomic"
)

// WorldObject: базовый класс для всех игровых объектов в мире.
// Все объекты имеют ObjectID, Name, Location и направление взгляда.
type WorldObject struct {
	objectID uint32
	name     string
	location Location
	heading  float64 // radians, 0 = +X

	destroyed atomic.Bool

	mu sync.RWMutex
}

// NewWorldObject создаёт новый объект в игровом мире.
func NewWorldObject(objectID uint32, name string, loc Location) *WorldObject {
	return &WorldObject{
		objectID: objectID,
		name:     name,
		location: loc,
	}
}

// ObjectID возвращает уникальный ID объекта (immutable после создания).
func (w *WorldObject) ObjectID() uint32 {
	return w.objectID
}

// Name возвращает имя объекта.
func (w *WorldObject) Name() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.name
}

// Location возвращает копию координат объекта (value type).
func (w *WorldObject) Location() Location {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.location
}

// SetLocation устанавливает новые координаты объекта.
func (w *WorldObject) SetLocation(loc Location) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.location = loc
}

// Heading возвращает направление в радианах.
func (w *WorldObject) Heading() float64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.heading
}

// SetHeading устанавливает направление в радианах.
func (w *WorldObject) SetHeading(heading float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.heading = heading
}

// IsDestroyed reports whether the object was removed from the world.
// Destroyed objects must not be acted upon; holders re-validate every tick.
func (w *WorldObject) IsDestroyed() bool {
	return w.destroyed.Load()
}

// MarkDestroyed flags the object as destroyed. Returns true for the first caller only.
func (w *WorldObject) MarkDestroyed() bool {
	return w.destroyed.CompareAndSwap(false, true)
}
