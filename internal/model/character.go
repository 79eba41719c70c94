package model

import "sync/atomic"

// Character: базовый класс для живых существ (Player, Npc).
// Добавляет здоровье и вид (species) к WorldObject.
type Character struct {
	*WorldObject // embedded

	health    float64
	maxHealth float64
	species   string

	dead atomic.Bool
}

// NewCharacter создаёт существо с полным здоровьем.
func NewCharacter(objectID uint32, name, species string, loc Location, maxHealth float64) *Character {
	if maxHealth <= 0 {
		maxHealth = 1
	}
	return &Character{
		WorldObject: NewWorldObject(objectID, name, loc),
		health:      maxHealth,
		maxHealth:   maxHealth,
		species:     species,
	}
}

// Health возвращает текущее здоровье.
func (c *Character) Health() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.health
}

// MaxHealth возвращает максимальное здоровье.
func (c *Character) MaxHealth() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.maxHealth
}

// SetHealth устанавливает здоровье с валидацией (clamp 0..maxHealth).
func (c *Character) SetHealth(hp float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.health = min(max(hp, 0), c.maxHealth)
}

// Species returns the creature species tag (e.g. "scarecrow", "human").
func (c *Character) Species() string {
	return c.species
}

// ReduceHealth reduces health by amount (minimum 0).
// Returns true if this call brought the character to zero health (killing blow).
//
// Thread-safe: acquires write lock.
func (c *Character) ReduceHealth(amount float64) bool {
	c.mu.Lock()
	before := c.health
	c.health = max(c.health-amount, 0)
	after := c.health
	c.mu.Unlock()

	if before > 0 && after <= 0 {
		return c.dead.CompareAndSwap(false, true)
	}
	return false
}

// IsDead проверяет мёртв ли персонаж.
func (c *Character) IsDead() bool {
	return c.dead.Load() || c.Health() <= 0
}

// BlocksProjectiles: живые существа останавливают лучи.
func (c *Character) BlocksProjectiles() bool {
	return !c.IsDead()
}
