package tree

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/averyk/lifequest/internal/domain"
	"github.com/averyk/lifequest/internal/repository"
)

// Snapshot is an immutable in-memory view of the tree configuration:
// every node indexed both ways (id and code) plus the adjacency map.
// Built once per cache load; never mutated afterwards, so it is safe
// to read without locking once obtained.
type Snapshot struct {
	byID      map[uuid.UUID]*domain.StatNode
	byCode    map[string]*domain.StatNode
	adjacency map[uuid.UUID][]uuid.UUID
	origins   []*domain.StatNode
	edges     []domain.StatNodeEdge
}

// NodeByCode returns the node with the given code, or nil.
func (s *Snapshot) NodeByCode(code string) *domain.StatNode {
	return s.byCode[code]
}

// NodeByID returns the node with the given id, or nil.
func (s *Snapshot) NodeByID(id uuid.UUID) *domain.StatNode {
	return s.byID[id]
}

// Adjacent returns the node ids traversable from the given node.
func (s *Snapshot) Adjacent(id uuid.UUID) []uuid.UUID {
	return s.adjacency[id]
}

// Origins returns the origin-type nodes.
func (s *Snapshot) Origins() []*domain.StatNode {
	return s.origins
}

// Nodes returns every node in the snapshot.
func (s *Snapshot) Nodes() []*domain.StatNode {
	nodes := make([]*domain.StatNode, 0, len(s.byID))
	for _, n := range s.byID {
		nodes = append(nodes, n)
	}
	return nodes
}

// Edges returns every configured edge.
func (s *Snapshot) Edges() []domain.StatNodeEdge {
	return s.edges
}

// IsReachable reports whether target may be allocated given the set of
// already-allocated node ids. With no allocations only origin nodes
// are reachable; otherwise the target must be adjacent to an owned node.
func (s *Snapshot) IsReachable(target uuid.UUID, allocated map[uuid.UUID]bool) bool {
	if len(allocated) == 0 {
		node := s.byID[target]
		return node != nil && node.NodeType == domain.NodeTypeOrigin
	}

	for id := range allocated {
		for _, neighbor := range s.adjacency[id] {
			if neighbor == target {
				return true
			}
		}
	}
	return false
}

// Cache holds the current tree configuration snapshot. Configuration
// changes are rare; Invalidate forces a reload on the next read.
// Per-character allocation state is never cached here.
type Cache struct {
	repo repository.Tree

	mu   sync.RWMutex
	snap *Snapshot
}

// NewCache creates a tree configuration cache over the given repository.
func NewCache(repo repository.Tree) *Cache {
	return &Cache{repo: repo}
}

// Snapshot returns the cached configuration, loading it on first use.
func (c *Cache) Snapshot(ctx context.Context) (*Snapshot, error) {
	c.mu.RLock()
	snap := c.snap
	c.mu.RUnlock()
	if snap != nil {
		return snap, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.snap != nil {
		return c.snap, nil
	}

	snap, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	c.snap = snap
	return snap, nil
}

// Invalidate drops the snapshot so the next read reloads configuration.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snap = nil
}

func (c *Cache) load(ctx context.Context) (*Snapshot, error) {
	nodes, err := c.repo.GetAllNodes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tree nodes: %w", err)
	}

	edges, err := c.repo.GetAllEdges(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tree edges: %w", err)
	}

	snap := &Snapshot{
		byID:      make(map[uuid.UUID]*domain.StatNode, len(nodes)),
		byCode:    make(map[string]*domain.StatNode, len(nodes)),
		adjacency: make(map[uuid.UUID][]uuid.UUID),
		edges:     edges,
	}

	for i := range nodes {
		node := &nodes[i]
		snap.byID[node.ID] = node
		snap.byCode[node.Code] = node
		if node.NodeType == domain.NodeTypeOrigin {
			snap.origins = append(snap.origins, node)
		}
	}

	for _, edge := range edges {
		snap.adjacency[edge.FromNodeID] = append(snap.adjacency[edge.FromNodeID], edge.ToNodeID)
		if edge.Bidirectional {
			snap.adjacency[edge.ToNodeID] = append(snap.adjacency[edge.ToNodeID], edge.FromNodeID)
		}
	}

	return snap, nil
}
