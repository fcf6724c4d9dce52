package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/averyk/lifequest/internal/domain"
	"github.com/averyk/lifequest/internal/repository"
)

type treeRepository struct {
	pool *pgxpool.Pool
}

// NewTreeRepository creates a new Postgres-backed tree repository
func NewTreeRepository(pool *pgxpool.Pool) repository.Tree {
	return &treeRepository{pool: pool}
}

func (r *treeRepository) GetAllNodes(ctx context.Context) ([]domain.StatNode, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, code, name, COALESCE(description, ''), node_type,
		       COALESCE(tree_branch, ''), position_x, position_y,
		       required_points, effects, COALESCE(icon, '')
		FROM stat_nodes
		WHERE is_active = TRUE`)
	if err != nil {
		return nil, fmt.Errorf("failed to query tree nodes: %w", err)
	}
	defer rows.Close()

	var nodes []domain.StatNode
	for rows.Next() {
		var n domain.StatNode
		var effectsJSON []byte
		err := rows.Scan(&n.ID, &n.Code, &n.Name, &n.Description, &n.NodeType,
			&n.TreeBranch, &n.PositionX, &n.PositionY,
			&n.RequiredPoints, &effectsJSON, &n.Icon)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tree node: %w", err)
		}
		if n.Effects, err = unmarshalEffects(effectsJSON); err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, rows.Err()
}

func (r *treeRepository) GetAllEdges(ctx context.Context) ([]domain.StatNodeEdge, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT from_node_id, to_node_id, bidirectional FROM stat_node_edges`)
	if err != nil {
		return nil, fmt.Errorf("failed to query tree edges: %w", err)
	}
	defer rows.Close()

	var edges []domain.StatNodeEdge
	for rows.Next() {
		var e domain.StatNodeEdge
		if err := rows.Scan(&e.FromNodeID, &e.ToNodeID, &e.Bidirectional); err != nil {
			return nil, fmt.Errorf("failed to scan tree edge: %w", err)
		}
		edges = append(edges, e)
	}
	return edges, rows.Err()
}

func (r *treeRepository) GetAllocatedNodeIDs(ctx context.Context, characterID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT node_id FROM character_nodes WHERE character_id = $1`, characterID)
	if err != nil {
		return nil, fmt.Errorf("failed to query allocations: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan allocation: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *treeRepository) BeginTx(ctx context.Context) (repository.TreeTx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &treeTx{tx: tx}, nil
}

// treeTx implements repository.TreeTx over one pgx transaction.
type treeTx struct {
	tx pgx.Tx
}

// GetCharacterForUpdate locks the character row for the remainder of
// the transaction. Concurrent allocate/respec calls for the same
// character queue on this lock.
func (t *treeTx) GetCharacterForUpdate(ctx context.Context, characterID uuid.UUID) (*domain.Character, error) {
	row := t.tx.QueryRow(ctx,
		`SELECT `+characterColumns+` FROM characters WHERE id = $1 FOR UPDATE`, characterID)
	return scanCharacter(row)
}

func (t *treeTx) GetStats(ctx context.Context, characterID uuid.UUID) (map[string]*domain.CharacterStat, error) {
	rows, err := t.tx.Query(ctx, `
		SELECT character_id, stat_code, base_value, stat_xp, allocated_bonus
		FROM character_stats
		WHERE character_id = $1`, characterID)
	if err != nil {
		return nil, fmt.Errorf("failed to query character stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*domain.CharacterStat)
	for rows.Next() {
		var s domain.CharacterStat
		if err := rows.Scan(&s.CharacterID, &s.StatCode, &s.BaseValue, &s.StatXP, &s.AllocatedBonus); err != nil {
			return nil, fmt.Errorf("failed to scan character stat: %w", err)
		}
		stats[s.StatCode] = &s
	}
	return stats, rows.Err()
}

func (t *treeTx) GetAllocatedNodeIDs(ctx context.Context, characterID uuid.UUID) (map[uuid.UUID]bool, error) {
	rows, err := t.tx.Query(ctx,
		`SELECT node_id FROM character_nodes WHERE character_id = $1`, characterID)
	if err != nil {
		return nil, fmt.Errorf("failed to query allocations: %w", err)
	}
	defer rows.Close()

	allocated := make(map[uuid.UUID]bool)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan allocation: %w", err)
		}
		allocated[id] = true
	}
	return allocated, rows.Err()
}

func (t *treeTx) InsertAllocation(ctx context.Context, characterID, nodeID uuid.UUID) error {
	_, err := t.tx.Exec(ctx, `
		INSERT INTO character_nodes (character_id, node_id) VALUES ($1, $2)`,
		characterID, nodeID)
	if err != nil {
		return fmt.Errorf("failed to insert allocation: %w", err)
	}
	return nil
}

func (t *treeTx) DeleteAllocations(ctx context.Context, characterID uuid.UUID) (int, error) {
	tag, err := t.tx.Exec(ctx,
		`DELETE FROM character_nodes WHERE character_id = $1`, characterID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete allocations: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func (t *treeTx) UpdateCharacterPoints(ctx context.Context, characterID uuid.UUID, statPoints, respecTokens int) error {
	_, err := t.tx.Exec(ctx, `
		UPDATE characters SET stat_points = $2, respec_tokens = $3, updated_at = NOW()
		WHERE id = $1`, characterID, statPoints, respecTokens)
	if err != nil {
		return fmt.Errorf("failed to update character points: %w", err)
	}
	return nil
}

func (t *treeTx) UpdateStatBonus(ctx context.Context, characterID uuid.UUID, statCode string, allocatedBonus int) error {
	_, err := t.tx.Exec(ctx, `
		UPDATE character_stats SET allocated_bonus = $3
		WHERE character_id = $1 AND stat_code = $2`, characterID, statCode, allocatedBonus)
	if err != nil {
		return fmt.Errorf("failed to update stat bonus: %w", err)
	}
	return nil
}

func (t *treeTx) ZeroAllocatedBonuses(ctx context.Context, characterID uuid.UUID) error {
	_, err := t.tx.Exec(ctx, `
		UPDATE character_stats SET allocated_bonus = 0 WHERE character_id = $1`, characterID)
	if err != nil {
		return fmt.Errorf("failed to zero allocated bonuses: %w", err)
	}
	return nil
}

func (t *treeTx) UnlockSkill(ctx context.Context, characterID uuid.UUID, skillCode string) error {
	// ON CONFLICT keeps re-unlocks idempotent; an unknown skill code
	// inserts nothing.
	_, err := t.tx.Exec(ctx, `
		INSERT INTO character_skills (character_id, skill_id)
		SELECT $1, id FROM skills WHERE code = $2 AND is_active = TRUE
		ON CONFLICT DO NOTHING`, characterID, skillCode)
	if err != nil {
		return fmt.Errorf("failed to unlock skill: %w", err)
	}
	return nil
}

func (t *treeTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *treeTx) Rollback(ctx context.Context) error {
	if err := t.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return err
	}
	return nil
}
