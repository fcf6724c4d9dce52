package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/averyk/lifequest/internal/domain"
)

// Skill defines store operations for skills, per-character skill
// ownership, and derived-stat formula configuration.
type Skill interface {
	GetSkillByCode(ctx context.Context, code string) (*domain.Skill, error)
	GetUnlockedSkillCodes(ctx context.Context, characterID uuid.UUID) ([]string, error)
	IncrementSkillUsage(ctx context.Context, characterID uuid.UUID, skillCode string) error
	GetActiveDerivedStats(ctx context.Context) ([]domain.DerivedStat, error)
}
