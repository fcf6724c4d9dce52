package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/averyk/lifequest/internal/domain"
	"github.com/averyk/lifequest/internal/repository"
)

type skillRepository struct {
	pool *pgxpool.Pool
}

// NewSkillRepository creates a new Postgres-backed skill repository
func NewSkillRepository(pool *pgxpool.Pool) repository.Skill {
	return &skillRepository{pool: pool}
}

func (r *skillRepository) GetSkillByCode(ctx context.Context, code string) (*domain.Skill, error) {
	var s domain.Skill
	var requirementsJSON []byte
	err := r.pool.QueryRow(ctx, `
		SELECT s.id, s.code, s.name, COALESCE(s.description, ''),
		       COALESCE(n.code, ''), s.stat_requirements
		FROM skills s
		LEFT JOIN stat_nodes n ON n.id = s.required_node_id
		WHERE s.code = $1 AND s.is_active = TRUE`, code,
	).Scan(&s.ID, &s.Code, &s.Name, &s.Description, &s.UnlockNodeCode, &requirementsJSON)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get skill: %w", err)
	}

	if len(requirementsJSON) > 0 {
		if err := json.Unmarshal(requirementsJSON, &s.StatRequirements); err != nil {
			return nil, fmt.Errorf("failed to unmarshal stat requirements: %w", err)
		}
	}
	return &s, nil
}

func (r *skillRepository) GetUnlockedSkillCodes(ctx context.Context, characterID uuid.UUID) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT s.code
		FROM character_skills cs
		JOIN skills s ON s.id = cs.skill_id
		WHERE cs.character_id = $1
		ORDER BY cs.unlocked_at`, characterID)
	if err != nil {
		return nil, fmt.Errorf("failed to query unlocked skills: %w", err)
	}
	defer rows.Close()

	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("failed to scan skill code: %w", err)
		}
		codes = append(codes, code)
	}
	return codes, rows.Err()
}

func (r *skillRepository) IncrementSkillUsage(ctx context.Context, characterID uuid.UUID, skillCode string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE character_skills cs
		SET times_used = cs.times_used + 1
		FROM skills s
		WHERE s.id = cs.skill_id AND cs.character_id = $1 AND s.code = $2`,
		characterID, skillCode)
	if err != nil {
		return fmt.Errorf("failed to increment skill usage: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrSkillNotFound, skillCode)
	}
	return nil
}

func (r *skillRepository) GetActiveDerivedStats(ctx context.Context) ([]domain.DerivedStat, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT code, name, formula, is_active
		FROM derived_stats
		WHERE is_active = TRUE
		ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("failed to query derived stats: %w", err)
	}
	defer rows.Close()

	var stats []domain.DerivedStat
	for rows.Next() {
		var d domain.DerivedStat
		if err := rows.Scan(&d.Code, &d.Name, &d.Formula, &d.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan derived stat: %w", err)
		}
		stats = append(stats, d)
	}
	return stats, rows.Err()
}
