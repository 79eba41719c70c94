package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/npcwarden/internal/game/combat"
	"github.com/udisondev/npcwarden/internal/model"
)

var hitColumns = []string{
	"attacker_id", "attacker_kind", "target_id", "target_name", "weapon",
	"damage_type", "damage", "material", "x", "y", "z", "pass", "killed", "hit_at",
}

// HitRepository stores resolved melee hits.
type HitRepository struct {
	pool *pgxpool.Pool
}

var _ combat.Store = (*HitRepository)(nil)

// NewHitRepository creates a new hit repository
func NewHitRepository(pool *pgxpool.Pool) *HitRepository {
	return &HitRepository{pool: pool}
}

// InsertHits writes a batch of hits via COPY.
func (r *HitRepository) InsertHits(ctx context.Context, hits []combat.HitRecord) error {
	if len(hits) == 0 {
		return nil
	}

	rows := make([][]any, 0, len(hits))
	for _, h := range hits {
		rows = append(rows, []any{
			int64(h.AttackerID), string(h.AttackerKind), int64(h.TargetID), h.TargetName, h.Weapon,
			int16(h.DamageType), h.Damage, h.Material, h.Point.X, h.Point.Y, h.Point.Z,
			int16(h.Pass), h.Killed, h.At,
		})
	}

	n, err := r.pool.CopyFrom(ctx, pgx.Identifier{"npc_hits"}, hitColumns, pgx.CopyFromRows(rows))
	if err != nil {
		return fmt.Errorf("inserting %d hits: %w", len(hits), err)
	}
	if int(n) != len(hits) {
		return fmt.Errorf("inserting hits: copied %d of %d rows", n, len(hits))
	}
	return nil
}

// LoadByAttacker returns hits dealt by an NPC, oldest first, at most limit rows.
func (r *HitRepository) LoadByAttacker(ctx context.Context, attackerID uint32, limit int) ([]combat.HitRecord, error) {
	query := `
		SELECT attacker_id, attacker_kind, target_id, target_name, weapon,
		       damage_type, damage, material, x, y, z, pass, killed, hit_at
		FROM npc_hits
		WHERE attacker_id = $1
		ORDER BY hit_at, id
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, int64(attackerID), limit)
	if err != nil {
		return nil, fmt.Errorf("loading hits of attacker %d: %w", attackerID, err)
	}
	defer rows.Close()

	var hits []combat.HitRecord
	for rows.Next() {
		var (
			attacker, target int64
			kind             string
			damageType, pass int16
			at               time.Time
			h                combat.HitRecord
		)
		if err := rows.Scan(
			&attacker, &kind, &target, &h.TargetName, &h.Weapon,
			&damageType, &h.Damage, &h.Material, &h.Point.X, &h.Point.Y, &h.Point.Z,
			&pass, &h.Killed, &at,
		); err != nil {
			return nil, fmt.Errorf("scanning hit row: %w", err)
		}
		h.AttackerID = uint32(attacker)
		h.AttackerKind = model.NpcKind(kind)
		h.TargetID = uint32(target)
		h.DamageType = model.DamageType(damageType)
		h.Pass = int(pass)
		h.At = at
		hits = append(hits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating hit rows: %w", err)
	}
	return hits, nil
}

// CountByTarget returns how many hits a target received and how many of them were lethal.
func (r *HitRepository) CountByTarget(ctx context.Context, targetID uint32) (hits, kills int64, err error) {
	err = r.pool.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE killed) FROM npc_hits WHERE target_id = $1`,
		int64(targetID),
	).Scan(&hits, &kills)
	if err != nil {
		return 0, 0, fmt.Errorf("counting hits of target %d: %w", targetID, err)
	}
	return hits, kills, nil
}
