package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/averyk/lifequest/internal/domain"
)

// Character defines store operations for character profiles and their
// core attribute rows.
type Character interface {
	CreateCharacter(ctx context.Context, character *domain.Character) error
	CreateCharacterStats(ctx context.Context, characterID uuid.UUID, statCodes []string) error
	GetCharacterByID(ctx context.Context, id uuid.UUID) (*domain.Character, error)
	GetCharacterByUserID(ctx context.Context, userID uuid.UUID) (*domain.Character, error)
	GetCharacterStats(ctx context.Context, characterID uuid.UUID) ([]domain.CharacterStat, error)
	UpdateCharacterName(ctx context.Context, id uuid.UUID, name string) error
	AddStatPoints(ctx context.Context, id uuid.UUID, points int) error
	CountAllocatedNodes(ctx context.Context, characterID uuid.UUID) (int, error)
	CountUnlockedSkills(ctx context.Context, characterID uuid.UUID) (int, error)
	GetAllocatedNodeCodes(ctx context.Context, characterID uuid.UUID) ([]string, error)
}
