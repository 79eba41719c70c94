package zone

// SafeZone is an area where NPCs never pick players as targets.
type SafeZone struct {
	*BaseZone
}

// NewSafeZone wraps base geometry into a SafeZone.
func NewSafeZone(base *BaseZone) *SafeZone {
	return &SafeZone{BaseZone: base}
}

// IsSafe reports true for safe zones.
func (z *SafeZone) IsSafe() bool { return true }
