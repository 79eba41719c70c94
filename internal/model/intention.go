package model

// Intention represents the behavior state of an NPC controller.
type Intention int32

const (
	// IntentionIdle - controller is not running
	IntentionIdle Intention = iota
	// IntentionPatrol - wandering around home inside the leash
	IntentionPatrol
	// IntentionReturning - beyond the leash, heading home at fast speed
	IntentionReturning
	// IntentionPursuing - moving toward a target
	IntentionPursuing
	// IntentionAttacking - striking a target in weapon range
	IntentionAttacking
)

// String returns human-readable intention name
func (i Intention) String() string {
	switch i {
	case IntentionIdle:
		return "IDLE"
	case IntentionPatrol:
		return "PATROL"
	case IntentionReturning:
		return "RETURNING"
	case IntentionPursuing:
		return "PURSUING"
	case IntentionAttacking:
		return "ATTACKING"
	default:
		return "UNKNOWN"
	}
}
