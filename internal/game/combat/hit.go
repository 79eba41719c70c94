package combat

import (
	"time"

	"github.com/udisondev/npcwarden/internal/model"
)

// HitRecord is one resolved melee hit.
type HitRecord struct {
	AttackerID   uint32
	AttackerKind model.NpcKind
	TargetID     uint32
	TargetName   string
	Weapon       string
	DamageType   model.DamageType
	Damage       float64
	Material     string
	Point        model.Location
	Pass         int // hit-scan pass that produced the hit (0 = thin ray, 1 = swept sphere)
	Killed       bool
	At           time.Time
}
