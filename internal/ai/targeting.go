package ai

import (
	"log/slog"

	"github.com/udisondev/npcwarden/internal/model"
)

// losBonus is added to the score of a target in line of sight.
const losBonus = 2.0

// TargetCandidate is a scored eligible target. Computed per tick, never stored.
type TargetCandidate struct {
	Player *model.Player
	Score  float64
}

// TargetSelector picks the best player to engage among sensed entities.
type TargetSelector struct {
	senses Senses
	zones  SafeZones
}

// NewTargetSelector creates a selector. zones may be nil (no safe zones).
func NewTargetSelector(senses Senses, zones SafeZones) *TargetSelector {
	return &TargetSelector{senses: senses, zones: zones}
}

// CanTarget reports whether p may be engaged at all.
func (s *TargetSelector) CanTarget(p *model.Player) bool {
	if p == nil || p.IsDestroyed() {
		return false
	}
	if p.Health() <= 0 || p.IsDead() {
		return false
	}
	if p.IsFlying() || p.IsSleeping() || p.IsWounded() {
		return false
	}
	if !p.HasPersistentID() {
		return false
	}
	if s.zones != nil && s.zones.InSafeZone(p.Location()) {
		return false
	}
	return true
}

// ScoreTarget scores a target: closer is better (1 at distance 1, 0 at
// senseRange) and line of sight adds a flat bonus.
func ScoreTarget(distance, senseRange float64, los bool) float64 {
	score := 1 - model.InverseLerp(1, senseRange, distance)
	if los {
		score += losBonus
	}
	return score
}

// SelectBestTarget returns the highest-scoring eligible player sensed by npc.
// Equal scores resolve to the lowest object ID. ok is false when nothing is eligible.
func (s *TargetSelector) SelectBestTarget(npc *model.Npc) (best TargetCandidate, ok bool) {
	npcID := npc.ObjectID()
	senseRange := s.senses.SenseRange(npcID)
	from := npc.Location()

	for _, e := range s.senses.Targets(npcID) {
		p, isPlayer := e.(*model.Player)
		if !isPlayer || !s.CanTarget(p) {
			continue
		}

		score := ScoreTarget(from.Distance(p.Location()), senseRange, s.senses.LineOfSight(npcID, p.ObjectID()))
		if !ok || score > best.Score || (score == best.Score && p.ObjectID() < best.Player.ObjectID()) {
			best = TargetCandidate{Player: p, Score: score}
			ok = true
		}
	}

	if ok && IsDebugEnabled() {
		slog.Debug("target selected",
			"npc", npcID,
			"target", best.Player.ObjectID(),
			"score", best.Score)
	}
	return best, ok
}
