package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/averyk/lifequest/internal/domain"
	"github.com/averyk/lifequest/internal/repository"
)

type characterRepository struct {
	pool *pgxpool.Pool
}

// NewCharacterRepository creates a new Postgres-backed character repository
func NewCharacterRepository(pool *pgxpool.Pool) repository.Character {
	return &characterRepository{pool: pool}
}

const characterColumns = `id, user_id, name, level, total_xp, stat_points, respec_tokens, created_at, updated_at`

func scanCharacter(row pgx.Row) (*domain.Character, error) {
	var c domain.Character
	err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.Level, &c.TotalXP,
		&c.StatPoints, &c.RespecTokens, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan character: %w", err)
	}
	return &c, nil
}

func (r *characterRepository) CreateCharacter(ctx context.Context, character *domain.Character) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO characters (id, user_id, name, level, total_xp, stat_points, respec_tokens)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`,
		character.ID, character.UserID, character.Name, character.Level,
		character.TotalXP, character.StatPoints, character.RespecTokens,
	).Scan(&character.CreatedAt, &character.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == PgErrorCodeUniqueViolation {
			return fmt.Errorf("%w: user %s", domain.ErrCharacterExists, character.UserID)
		}
		return fmt.Errorf("failed to insert character: %w", err)
	}
	return nil
}

func (r *characterRepository) CreateCharacterStats(ctx context.Context, characterID uuid.UUID, statCodes []string) error {
	batch := &pgx.Batch{}
	for _, code := range statCodes {
		batch.Queue(`
			INSERT INTO character_stats (character_id, stat_code, base_value, stat_xp, allocated_bonus)
			VALUES ($1, $2, $3, 0, 0)`,
			characterID, code, domain.StartingStatValue)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for range statCodes {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to insert character stats: %w", err)
		}
	}
	return nil
}

func (r *characterRepository) GetCharacterByID(ctx context.Context, id uuid.UUID) (*domain.Character, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+characterColumns+` FROM characters WHERE id = $1`, id)
	return scanCharacter(row)
}

func (r *characterRepository) GetCharacterByUserID(ctx context.Context, userID uuid.UUID) (*domain.Character, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+characterColumns+` FROM characters WHERE user_id = $1`, userID)
	return scanCharacter(row)
}

func (r *characterRepository) GetCharacterStats(ctx context.Context, characterID uuid.UUID) ([]domain.CharacterStat, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT character_id, stat_code, base_value, stat_xp, allocated_bonus
		FROM character_stats
		WHERE character_id = $1`, characterID)
	if err != nil {
		return nil, fmt.Errorf("failed to query character stats: %w", err)
	}
	defer rows.Close()

	var stats []domain.CharacterStat
	for rows.Next() {
		var s domain.CharacterStat
		if err := rows.Scan(&s.CharacterID, &s.StatCode, &s.BaseValue, &s.StatXP, &s.AllocatedBonus); err != nil {
			return nil, fmt.Errorf("failed to scan character stat: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

func (r *characterRepository) UpdateCharacterName(ctx context.Context, id uuid.UUID, name string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE characters SET name = $2, updated_at = NOW() WHERE id = $1`, id, name)
	if err != nil {
		return fmt.Errorf("failed to update character name: %w", err)
	}
	return nil
}

func (r *characterRepository) AddStatPoints(ctx context.Context, id uuid.UUID, points int) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE characters SET stat_points = stat_points + $2, updated_at = NOW() WHERE id = $1`, id, points)
	if err != nil {
		return fmt.Errorf("failed to add stat points: %w", err)
	}
	return nil
}

func (r *characterRepository) CountAllocatedNodes(ctx context.Context, characterID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM character_nodes WHERE character_id = $1`, characterID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count allocated nodes: %w", err)
	}
	return count, nil
}

func (r *characterRepository) CountUnlockedSkills(ctx context.Context, characterID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM character_skills WHERE character_id = $1`, characterID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unlocked skills: %w", err)
	}
	return count, nil
}

func (r *characterRepository) GetAllocatedNodeCodes(ctx context.Context, characterID uuid.UUID) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT n.code
		FROM character_nodes cn
		JOIN stat_nodes n ON n.id = cn.node_id
		WHERE cn.character_id = $1
		ORDER BY cn.allocated_at`, characterID)
	if err != nil {
		return nil, fmt.Errorf("failed to query allocated node codes: %w", err)
	}
	defer rows.Close()

	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("failed to scan node code: %w", err)
		}
		codes = append(codes, code)
	}
	return codes, rows.Err()
}
