package domain

import (
	"time"

	"github.com/google/uuid"
)

// Character is the RPG profile for one end user. One character per user.
type Character struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	Name         string    `json:"name"`
	Level        int       `json:"level"`
	TotalXP      int64     `json:"total_xp"`
	StatPoints   int       `json:"stat_points"`
	RespecTokens int       `json:"respec_tokens"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CharacterStat holds one core attribute row for a character.
// BaseValue is always a recomputation of StatXP through the attribute
// curve; AllocatedBonus only changes through tree allocation/respec.
type CharacterStat struct {
	CharacterID    uuid.UUID `json:"character_id"`
	StatCode       string    `json:"stat_code"`
	BaseValue      int       `json:"base_value"`
	StatXP         int64     `json:"stat_xp"`
	AllocatedBonus int       `json:"allocated_bonus"`
}

// Total returns the effective attribute value (base + tree bonus).
func (s CharacterStat) Total() int {
	return s.BaseValue + s.AllocatedBonus
}

// StatDetail is the per-attribute read view.
type StatDetail struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	Base      int    `json:"base"`
	Allocated int    `json:"allocated"`
	Total     int    `json:"total"`
	XP        int64  `json:"xp"`
	XPToNext  int64  `json:"xp_to_next"`
	Level     int    `json:"level"`
}

// CharacterSummary is the compact character view.
type CharacterSummary struct {
	ID                  uuid.UUID      `json:"id"`
	UserID              uuid.UUID      `json:"user_id"`
	Name                string         `json:"name"`
	Level               int            `json:"level"`
	TotalXP             int64          `json:"total_xp"`
	XPToNextLevel       int64          `json:"xp_to_next_level"`
	LevelProgress       float64        `json:"level_progress"`
	StatPoints          int            `json:"stat_points"`
	RespecTokens        int            `json:"respec_tokens"`
	Stats               map[string]int `json:"stats"`
	AllocatedNodesCount int            `json:"allocated_nodes_count"`
	UnlockedSkillsCount int            `json:"unlocked_skills_count"`
	CreatedAt           time.Time      `json:"created_at"`
}

// CharacterFull is the summary plus per-stat detail, tree state, skills
// and derived stats.
type CharacterFull struct {
	CharacterSummary
	StatsDetail        map[string]StatDetail `json:"stats_detail"`
	AllocatedNodeCodes []string              `json:"allocated_node_codes"`
	UnlockedSkillCodes []string              `json:"unlocked_skill_codes"`
	DerivedStats       map[string]float64    `json:"derived_stats"`
}
