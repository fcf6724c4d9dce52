package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/averyk/lifequest/internal/domain"
)

// Activity defines store operations for the append-only activity log
// and the XP application that accompanies each logged activity.
type Activity interface {
	GetActivity(ctx context.Context, id uuid.UUID) (*domain.ActivityLog, error)
	GetRecentActivities(ctx context.Context, characterID uuid.UUID, limit, offset int) ([]domain.ActivityLog, error)
	GetActivitiesByDateRange(ctx context.Context, characterID uuid.UUID, start, end time.Time) ([]domain.ActivityLog, error)

	// BeginTx opens a transaction for logging an activity and applying
	// its XP grants. The character row is locked for the duration so XP
	// application serializes with allocate/respec for the same character.
	BeginTx(ctx context.Context) (ActivityTx, error)
}

// ActivityTx is the transactional surface for one activity grant.
type ActivityTx interface {
	GetCharacterByUserForUpdate(ctx context.Context, userID uuid.UUID) (*domain.Character, error)
	GetStat(ctx context.Context, characterID uuid.UUID, statCode string) (*domain.CharacterStat, error)
	UpdateStatXP(ctx context.Context, characterID uuid.UUID, statCode string, statXP int64, baseValue int) error
	UpdateCharacterProgress(ctx context.Context, characterID uuid.UUID, totalXP int64, level, statPoints int) error
	InsertActivityLog(ctx context.Context, log *domain.ActivityLog) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
