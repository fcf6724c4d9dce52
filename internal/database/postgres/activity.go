package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/averyk/lifequest/internal/domain"
	"github.com/averyk/lifequest/internal/repository"
)

type activityRepository struct {
	pool *pgxpool.Pool
}

// NewActivityRepository creates a new Postgres-backed activity repository
func NewActivityRepository(pool *pgxpool.Pool) repository.Activity {
	return &activityRepository{pool: pool}
}

const activityColumns = `id, character_id, activity_type, activity_data, source,
	COALESCE(source_ref, ''), xp_grants, activity_time, logged_at`

func scanActivity(row pgx.Row) (*domain.ActivityLog, error) {
	var a domain.ActivityLog
	var dataJSON, grantsJSON []byte
	err := row.Scan(&a.ID, &a.CharacterID, &a.ActivityType, &dataJSON, &a.Source,
		&a.SourceRef, &grantsJSON, &a.ActivityTime, &a.LoggedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan activity: %w", err)
	}

	if a.ActivityData, err = unmarshalData(dataJSON); err != nil {
		return nil, err
	}
	if a.XPGrants, err = unmarshalGrants(grantsJSON); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *activityRepository) GetActivity(ctx context.Context, id uuid.UUID) (*domain.ActivityLog, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+activityColumns+` FROM activity_log WHERE id = $1`, id)
	return scanActivity(row)
}

func (r *activityRepository) GetRecentActivities(ctx context.Context, characterID uuid.UUID, limit, offset int) ([]domain.ActivityLog, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+activityColumns+`
		FROM activity_log
		WHERE character_id = $1
		ORDER BY activity_time DESC
		LIMIT $2 OFFSET $3`, characterID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent activities: %w", err)
	}
	defer rows.Close()

	return collectActivities(rows)
}

func (r *activityRepository) GetActivitiesByDateRange(ctx context.Context, characterID uuid.UUID, start, end time.Time) ([]domain.ActivityLog, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+activityColumns+`
		FROM activity_log
		WHERE character_id = $1 AND activity_time >= $2 AND activity_time <= $3
		ORDER BY activity_time DESC`, characterID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query activities by range: %w", err)
	}
	defer rows.Close()

	return collectActivities(rows)
}

func collectActivities(rows pgx.Rows) ([]domain.ActivityLog, error) {
	var activities []domain.ActivityLog
	for rows.Next() {
		activity, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		activities = append(activities, *activity)
	}
	return activities, rows.Err()
}

func (r *activityRepository) BeginTx(ctx context.Context) (repository.ActivityTx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &activityTx{tx: tx}, nil
}

// activityTx implements repository.ActivityTx over one pgx transaction.
type activityTx struct {
	tx pgx.Tx
}

// GetCharacterByUserForUpdate locks the character row so concurrent XP
// grants for the same character serialize.
func (t *activityTx) GetCharacterByUserForUpdate(ctx context.Context, userID uuid.UUID) (*domain.Character, error) {
	row := t.tx.QueryRow(ctx,
		`SELECT `+characterColumns+` FROM characters WHERE user_id = $1 FOR UPDATE`, userID)
	return scanCharacter(row)
}

func (t *activityTx) GetStat(ctx context.Context, characterID uuid.UUID, statCode string) (*domain.CharacterStat, error) {
	var s domain.CharacterStat
	err := t.tx.QueryRow(ctx, `
		SELECT character_id, stat_code, base_value, stat_xp, allocated_bonus
		FROM character_stats
		WHERE character_id = $1 AND stat_code = $2`, characterID, statCode,
	).Scan(&s.CharacterID, &s.StatCode, &s.BaseValue, &s.StatXP, &s.AllocatedBonus)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get stat: %w", err)
	}
	return &s, nil
}

func (t *activityTx) UpdateStatXP(ctx context.Context, characterID uuid.UUID, statCode string, statXP int64, baseValue int) error {
	_, err := t.tx.Exec(ctx, `
		UPDATE character_stats SET stat_xp = $3, base_value = $4
		WHERE character_id = $1 AND stat_code = $2`,
		characterID, statCode, statXP, baseValue)
	if err != nil {
		return fmt.Errorf("failed to update stat xp: %w", err)
	}
	return nil
}

func (t *activityTx) UpdateCharacterProgress(ctx context.Context, characterID uuid.UUID, totalXP int64, level, statPoints int) error {
	_, err := t.tx.Exec(ctx, `
		UPDATE characters SET total_xp = $2, level = $3, stat_points = $4, updated_at = NOW()
		WHERE id = $1`, characterID, totalXP, level, statPoints)
	if err != nil {
		return fmt.Errorf("failed to update character progress: %w", err)
	}
	return nil
}

func (t *activityTx) InsertActivityLog(ctx context.Context, log *domain.ActivityLog) error {
	dataJSON, err := marshalJSON(log.ActivityData)
	if err != nil {
		return err
	}
	grantsJSON, err := marshalJSON(log.XPGrants)
	if err != nil {
		return err
	}

	_, err = t.tx.Exec(ctx, `
		INSERT INTO activity_log (id, character_id, activity_type, activity_data, source, source_ref, xp_grants, activity_time, logged_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, $9)`,
		log.ID, log.CharacterID, log.ActivityType, dataJSON, log.Source,
		log.SourceRef, grantsJSON, log.ActivityTime, log.LoggedAt)
	if err != nil {
		return fmt.Errorf("failed to insert activity log: %w", err)
	}
	return nil
}

func (t *activityTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *activityTx) Rollback(ctx context.Context) error {
	if err := t.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return err
	}
	return nil
}
