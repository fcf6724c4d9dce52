package tree

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/averyk/lifequest/internal/domain"
	"github.com/averyk/lifequest/internal/event"
	"github.com/averyk/lifequest/internal/logger"
	"github.com/averyk/lifequest/internal/repository"
)

// Service defines skill-tree operations.
type Service interface {
	// GetTree returns the full tree. Pass uuid.Nil to omit allocation flags.
	GetTree(ctx context.Context, characterID uuid.UUID) (*domain.TreeView, error)
	GetNode(ctx context.Context, code string) (*domain.StatNode, error)
	GetReachableNodes(ctx context.Context, characterID uuid.UUID) ([]string, error)
	CanAllocate(ctx context.Context, characterID uuid.UUID, nodeCode string) error
	Allocate(ctx context.Context, characterID uuid.UUID, nodeCodes []string) (*domain.AllocationResult, error)
	Respec(ctx context.Context, characterID uuid.UUID) (*domain.RespecResult, error)

	// InvalidateCache drops cached tree configuration after config changes.
	InvalidateCache()
}

type service struct {
	repo  repository.Tree
	chars repository.Character
	cache *Cache
	bus   event.Bus
}

// NewService creates a new tree service.
func NewService(repo repository.Tree, chars repository.Character, bus event.Bus) Service {
	return &service{
		repo:  repo,
		chars: chars,
		cache: NewCache(repo),
		bus:   bus,
	}
}

func (s *service) InvalidateCache() {
	s.cache.Invalidate()
}

// GetTree returns every node and edge, with allocation flags when a
// character is given, plus branch groupings.
func (s *service) GetTree(ctx context.Context, characterID uuid.UUID) (*domain.TreeView, error) {
	snap, err := s.cache.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	allocated := make(map[uuid.UUID]bool)
	if characterID != uuid.Nil {
		ids, err := s.repo.GetAllocatedNodeIDs(ctx, characterID)
		if err != nil {
			return nil, fmt.Errorf("failed to get allocations: %w", err)
		}
		for _, id := range ids {
			allocated[id] = true
		}
	}

	view := &domain.TreeView{
		Branches: make(map[string][]string),
	}

	for _, node := range snap.Nodes() {
		n := *node
		n.IsAllocated = allocated[n.ID]
		view.Nodes = append(view.Nodes, n)
		if n.TreeBranch != "" {
			view.Branches[n.TreeBranch] = append(view.Branches[n.TreeBranch], n.Code)
		}
	}

	// Edge list as code pairs, deduplicated for bidirectional edges.
	seen := make(map[[2]string]bool)
	for _, edge := range snap.Edges() {
		from := snap.NodeByID(edge.FromNodeID)
		to := snap.NodeByID(edge.ToNodeID)
		if from == nil || to == nil {
			continue
		}
		key := [2]string{from.Code, to.Code}
		if key[0] > key[1] {
			key[0], key[1] = key[1], key[0]
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		view.Edges = append(view.Edges, [2]string{from.Code, to.Code})
	}

	return view, nil
}

// GetNode returns a single node by code.
func (s *service) GetNode(ctx context.Context, code string) (*domain.StatNode, error) {
	snap, err := s.cache.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	node := snap.NodeByCode(code)
	if node == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrNodeNotFound, code)
	}
	n := *node
	return &n, nil
}

// GetReachableNodes returns the codes of every node the character
// could allocate next (the unallocated frontier).
func (s *service) GetReachableNodes(ctx context.Context, characterID uuid.UUID) ([]string, error) {
	snap, err := s.cache.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	ids, err := s.repo.GetAllocatedNodeIDs(ctx, characterID)
	if err != nil {
		return nil, fmt.Errorf("failed to get allocations: %w", err)
	}
	allocated := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		allocated[id] = true
	}

	reachable := make(map[string]bool)
	if len(allocated) == 0 {
		for _, origin := range snap.Origins() {
			reachable[origin.Code] = true
		}
	} else {
		for id := range allocated {
			for _, neighbor := range snap.Adjacent(id) {
				if allocated[neighbor] {
					continue
				}
				if node := snap.NodeByID(neighbor); node != nil {
					reachable[node.Code] = true
				}
			}
		}
	}

	codes := make([]string, 0, len(reachable))
	for code := range reachable {
		codes = append(codes, code)
	}
	return codes, nil
}

// CanAllocate checks whether the character could allocate the node
// right now. Read-only preview of the checks Allocate performs.
func (s *service) CanAllocate(ctx context.Context, characterID uuid.UUID, nodeCode string) error {
	snap, err := s.cache.Snapshot(ctx)
	if err != nil {
		return err
	}

	character, err := s.chars.GetCharacterByID(ctx, characterID)
	if err != nil {
		return err
	}
	if character == nil {
		return domain.ErrCharacterNotFound
	}

	ids, err := s.repo.GetAllocatedNodeIDs(ctx, characterID)
	if err != nil {
		return fmt.Errorf("failed to get allocations: %w", err)
	}
	allocated := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		allocated[id] = true
	}

	return validateAllocation(snap, nodeCode, character.StatPoints, allocated)
}

// validateAllocation applies the allocation rules against the given
// state. Order matters: existence, points, duplication, reachability.
func validateAllocation(snap *Snapshot, nodeCode string, statPoints int, allocated map[uuid.UUID]bool) error {
	node := snap.NodeByCode(nodeCode)
	if node == nil {
		return fmt.Errorf("%w: %s", domain.ErrNodeNotFound, nodeCode)
	}
	if statPoints < node.RequiredPoints {
		return fmt.Errorf("%w: need %d", domain.ErrInsufficientPoints, node.RequiredPoints)
	}
	if allocated[node.ID] {
		return fmt.Errorf("%w: %s", domain.ErrAlreadyAllocated, nodeCode)
	}
	if !snap.IsReachable(node.ID, allocated) {
		return fmt.Errorf("%w: %s", domain.ErrNodeUnreachable, nodeCode)
	}
	return nil
}

// Allocate processes the node codes in order inside one per-character
// transaction. Each node is validated against the mutating state, so a
// node can become allocatable because an earlier node in the same
// batch was just added. Invalid nodes are reported and skipped;
// success means at least one node was allocated.
func (s *service) Allocate(ctx context.Context, characterID uuid.UUID, nodeCodes []string) (*domain.AllocationResult, error) {
	log := logger.FromContext(ctx)

	snap, err := s.cache.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin allocation: %w", err)
	}
	defer tx.Rollback(ctx)

	character, err := tx.GetCharacterForUpdate(ctx, characterID)
	if err != nil {
		return nil, err
	}
	if character == nil {
		return nil, domain.ErrCharacterNotFound
	}

	stats, err := tx.GetStats(ctx, characterID)
	if err != nil {
		return nil, err
	}

	allocated, err := tx.GetAllocatedNodeIDs(ctx, characterID)
	if err != nil {
		return nil, err
	}

	before := make(map[string]int, len(stats))
	for code, stat := range stats {
		before[code] = stat.Total()
	}

	result := &domain.AllocationResult{
		StatChanges: make(map[string]domain.StatChange),
	}

	for _, code := range nodeCodes {
		if err := validateAllocation(snap, code, character.StatPoints, allocated); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", code, err))
			continue
		}

		node := snap.NodeByCode(code)
		character.StatPoints -= node.RequiredPoints
		result.PointsSpent += node.RequiredPoints
		allocated[node.ID] = true

		if err := tx.InsertAllocation(ctx, characterID, node.ID); err != nil {
			return nil, fmt.Errorf("failed to insert allocation for %s: %w", code, err)
		}
		result.NodesAllocated = append(result.NodesAllocated, code)

		for _, effect := range node.Effects {
			result.NewEffects = append(result.NewEffects, effect)

			switch effect.Type {
			case domain.EffectStatBonus:
				stat, ok := stats[effect.Stat]
				if !ok {
					continue
				}
				stat.AllocatedBonus += int(effect.Value)
				if err := tx.UpdateStatBonus(ctx, characterID, effect.Stat, stat.AllocatedBonus); err != nil {
					return nil, fmt.Errorf("failed to update %s bonus: %w", effect.Stat, err)
				}
			case domain.EffectUnlockSkill:
				if effect.SkillCode == "" {
					continue
				}
				if err := tx.UnlockSkill(ctx, characterID, effect.SkillCode); err != nil {
					return nil, fmt.Errorf("failed to unlock skill %s: %w", effect.SkillCode, err)
				}
				result.SkillsUnlocked = append(result.SkillsUnlocked, effect.SkillCode)
			}
		}
	}

	result.Success = len(result.NodesAllocated) > 0
	result.PointsRemaining = character.StatPoints

	for code, stat := range stats {
		if stat.Total() != before[code] {
			result.StatChanges[code] = domain.StatChange{Before: before[code], After: stat.Total()}
		}
	}

	if !result.Success {
		// Nothing changed; roll back via the deferred Rollback.
		return result, nil
	}

	if err := tx.UpdateCharacterPoints(ctx, characterID, character.StatPoints, character.RespecTokens); err != nil {
		return nil, fmt.Errorf("failed to update points: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit allocation: %w", err)
	}

	if err := s.bus.Publish(ctx, event.NewNodesAllocatedEvent(characterID.String(), result.NodesAllocated, result.PointsSpent)); err != nil {
		log.Warn("Failed to publish allocation event", "error", err, "character_id", characterID)
	}

	log.Info("Nodes allocated",
		"character_id", characterID,
		"allocated", len(result.NodesAllocated),
		"points_spent", result.PointsSpent,
		"errors", len(result.Errors))

	return result, nil
}

// Respec clears every allocation for the character in exchange for one
// respec token, refunding every spent point. All-or-nothing: any
// failure aborts before mutation is visible.
func (s *service) Respec(ctx context.Context, characterID uuid.UUID) (*domain.RespecResult, error) {
	log := logger.FromContext(ctx)

	snap, err := s.cache.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin respec: %w", err)
	}
	defer tx.Rollback(ctx)

	character, err := tx.GetCharacterForUpdate(ctx, characterID)
	if err != nil {
		return nil, err
	}
	if character == nil {
		return nil, domain.ErrCharacterNotFound
	}

	if character.RespecTokens <= 0 {
		return nil, domain.ErrNoRespecTokens
	}

	allocated, err := tx.GetAllocatedNodeIDs(ctx, characterID)
	if err != nil {
		return nil, err
	}

	refund := 0
	for id := range allocated {
		if node := snap.NodeByID(id); node != nil {
			refund += node.RequiredPoints
		}
	}

	removed, err := tx.DeleteAllocations(ctx, characterID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete allocations: %w", err)
	}

	if err := tx.ZeroAllocatedBonuses(ctx, characterID); err != nil {
		return nil, fmt.Errorf("failed to zero bonuses: %w", err)
	}

	character.StatPoints += refund
	character.RespecTokens--
	if err := tx.UpdateCharacterPoints(ctx, characterID, character.StatPoints, character.RespecTokens); err != nil {
		return nil, fmt.Errorf("failed to update points: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit respec: %w", err)
	}

	if err := s.bus.Publish(ctx, event.NewRespecCompletedEvent(characterID.String(), removed, refund)); err != nil {
		log.Warn("Failed to publish respec event", "error", err, "character_id", characterID)
	}

	log.Info("Respec completed",
		"character_id", characterID,
		"nodes_removed", removed,
		"points_refunded", refund)

	return &domain.RespecResult{
		Success:               true,
		NodesRemoved:          removed,
		PointsRefunded:        refund,
		RespecTokensRemaining: character.RespecTokens,
	}, nil
}
