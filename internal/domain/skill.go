package domain

import (
	"time"

	"github.com/google/uuid"
)

// Skill is an unlockable ability, gated by a tree node and/or
// attribute thresholds.
type Skill struct {
	ID               uuid.UUID      `json:"id"`
	Code             string         `json:"code"`
	Name             string         `json:"name"`
	Description      string         `json:"description,omitempty"`
	UnlockNodeCode   string         `json:"unlock_node_code,omitempty"`
	StatRequirements map[string]int `json:"stat_requirements,omitempty"`
}

// CharacterSkill tracks one unlocked skill with its usage counter.
type CharacterSkill struct {
	CharacterID uuid.UUID `json:"character_id"`
	SkillID     uuid.UUID `json:"skill_id"`
	UnlockedAt  time.Time `json:"unlocked_at"`
	TimesUsed   int       `json:"times_used"`
}

// DerivedStat is a named formula over core attributes, computed on
// read and never persisted per character.
type DerivedStat struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Formula  string `json:"formula"`
	IsActive bool   `json:"is_active"`
}
