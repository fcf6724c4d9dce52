package domain

import (
	"time"

	"github.com/google/uuid"
)

// Node types in the skill tree.
const (
	NodeTypeOrigin   = "origin"   // starting node, reachable with no allocations
	NodeTypeMinor    = "minor"    // small bonus (+1 stat, +2%)
	NodeTypeNotable  = "notable"  // named node with a larger bonus
	NodeTypeKeystone = "keystone" // major effect with trade-offs
	NodeTypeSkill    = "skill"    // unlocks an ability
)

// Effect types a node may carry.
const (
	EffectStatBonus    = "stat_bonus"
	EffectStatPercent  = "stat_percent"
	EffectDerivedBonus = "derived_bonus"
	EffectXPMultiplier = "xp_multiplier"
	EffectUnlockSkill  = "unlock_skill"
	EffectSpecial      = "special"
)

// NodeEffect is one effect applied when a node is allocated.
type NodeEffect struct {
	Type         string  `json:"type"`
	Stat         string  `json:"stat,omitempty"`
	Derived      string  `json:"derived,omitempty"`
	SkillCode    string  `json:"skill_code,omitempty"`
	Value        float64 `json:"value,omitempty"`
	ValuePercent float64 `json:"value_percent,omitempty"`
	Domain       string  `json:"domain,omitempty"`
	Code         string  `json:"code,omitempty"`
	Description  string  `json:"description,omitempty"`
}

// StatNode is one vertex in the skill tree. Node content is
// configuration and never mutated by allocation.
type StatNode struct {
	ID             uuid.UUID    `json:"id"`
	Code           string       `json:"code"`
	Name           string       `json:"name"`
	Description    string       `json:"description,omitempty"`
	NodeType       string       `json:"node_type"`
	TreeBranch     string       `json:"tree_branch,omitempty"`
	PositionX      float64      `json:"position_x"`
	PositionY      float64      `json:"position_y"`
	RequiredPoints int          `json:"required_points"`
	Effects        []NodeEffect `json:"effects"`
	Icon           string       `json:"icon,omitempty"`
	IsAllocated    bool         `json:"is_allocated"`
}

// StatNodeEdge connects two nodes. Bidirectional edges are traversable
// both ways when computing reachability.
type StatNodeEdge struct {
	FromNodeID    uuid.UUID `json:"from_node_id"`
	ToNodeID      uuid.UUID `json:"to_node_id"`
	Bidirectional bool      `json:"bidirectional"`
}

// CharacterNode records one allocated node for a character.
type CharacterNode struct {
	CharacterID uuid.UUID `json:"character_id"`
	NodeID      uuid.UUID `json:"node_id"`
	AllocatedAt time.Time `json:"allocated_at"`
}

// StatChange reports an attribute total before and after allocation.
type StatChange struct {
	Before int `json:"before"`
	After  int `json:"after"`
}

// TreeView is the full tree structure with allocation flags.
type TreeView struct {
	Nodes    []StatNode          `json:"nodes"`
	Edges    [][2]string         `json:"edges"`
	Branches map[string][]string `json:"branches"`
}

// AllocationResult reports the outcome of an allocation batch.
// Success means at least one node was allocated; individual failures
// are listed in Errors.
type AllocationResult struct {
	Success         bool                  `json:"success"`
	PointsSpent     int                   `json:"points_spent"`
	PointsRemaining int                   `json:"points_remaining"`
	NodesAllocated  []string              `json:"nodes_allocated"`
	StatChanges     map[string]StatChange `json:"stat_changes"`
	NewEffects      []NodeEffect          `json:"new_effects"`
	SkillsUnlocked  []string              `json:"skills_unlocked,omitempty"`
	Errors          []string              `json:"errors"`
}

// RespecResult reports the outcome of a full tree reset.
type RespecResult struct {
	Success               bool `json:"success"`
	NodesRemoved          int  `json:"nodes_removed"`
	PointsRefunded        int  `json:"points_refunded"`
	RespecTokensRemaining int  `json:"respec_tokens_remaining"`
}
