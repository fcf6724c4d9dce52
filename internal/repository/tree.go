package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/averyk/lifequest/internal/domain"
)

// Tree defines store operations for skill-tree configuration and
// per-character allocation state.
//
// Node and edge rows are configuration: small, rarely changed, safe to
// cache. Allocation rows are per-character state and must be read
// fresh inside a transaction for every mutating operation.
type Tree interface {
	GetAllNodes(ctx context.Context) ([]domain.StatNode, error)
	GetAllEdges(ctx context.Context) ([]domain.StatNodeEdge, error)
	GetAllocatedNodeIDs(ctx context.Context, characterID uuid.UUID) ([]uuid.UUID, error)

	// BeginTx opens a transaction for allocate/respec. Implementations
	// must lock the character row so concurrent mutations for the same
	// character serialize instead of both passing a stale points check.
	BeginTx(ctx context.Context) (TreeTx, error)
}

// TreeTx is the transactional surface for allocation and respec.
type TreeTx interface {
	GetCharacterForUpdate(ctx context.Context, characterID uuid.UUID) (*domain.Character, error)
	GetStats(ctx context.Context, characterID uuid.UUID) (map[string]*domain.CharacterStat, error)
	GetAllocatedNodeIDs(ctx context.Context, characterID uuid.UUID) (map[uuid.UUID]bool, error)
	InsertAllocation(ctx context.Context, characterID, nodeID uuid.UUID) error
	DeleteAllocations(ctx context.Context, characterID uuid.UUID) (int, error)
	UpdateCharacterPoints(ctx context.Context, characterID uuid.UUID, statPoints, respecTokens int) error
	UpdateStatBonus(ctx context.Context, characterID uuid.UUID, statCode string, allocatedBonus int) error
	ZeroAllocatedBonuses(ctx context.Context, characterID uuid.UUID) error
	UnlockSkill(ctx context.Context, characterID uuid.UUID, skillCode string) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
