package domain

import (
	"time"

	"github.com/google/uuid"
)

// ActivityLog is an append-only record of a logged real-world event.
// XPGrants snapshots the resolved grant so the log is the audit trail
// for all XP changes even if the resolution table changes later.
type ActivityLog struct {
	ID           uuid.UUID              `json:"id"`
	CharacterID  uuid.UUID              `json:"character_id"`
	ActivityType string                 `json:"activity_type"`
	ActivityData map[string]interface{} `json:"activity_data,omitempty"`
	Source       string                 `json:"source"`
	SourceRef    string                 `json:"source_ref,omitempty"`
	XPGrants     map[string]int         `json:"xp_grants"`
	ActivityTime time.Time              `json:"activity_time"`
	LoggedAt     time.Time              `json:"logged_at"`
}

// ActivityInput carries one "log activity" request.
// CustomXP, when non-empty, bypasses resolution entirely.
type ActivityInput struct {
	UserID       uuid.UUID              `json:"user_id"`
	ActivityType string                 `json:"activity_type"`
	ActivityData map[string]interface{} `json:"activity_data,omitempty"`
	Source       string                 `json:"source"`
	SourceRef    string                 `json:"source_ref,omitempty"`
	ActivityTime time.Time              `json:"activity_time"`
	CustomXP     map[string]int         `json:"custom_xp,omitempty"`
}

// ActivityResult acknowledges one logged activity.
type ActivityResult struct {
	Success          bool           `json:"success"`
	ActivityID       uuid.UUID      `json:"activity_id"`
	XPGranted        map[string]int `json:"xp_granted"`
	StatLevelUps     []string       `json:"stat_level_ups"`
	CharacterLevelUp bool           `json:"character_level_up"`
	NewLevel         int            `json:"new_level,omitempty"`
	Message          string         `json:"message"`
}

// ActivityBatchResult aggregates a batch of logged activities.
// Processing continues past per-item failures.
type ActivityBatchResult struct {
	Success          bool           `json:"success"`
	Processed        int            `json:"processed"`
	TotalXP          map[string]int `json:"total_xp"`
	StatLevelUps     []string       `json:"stat_level_ups"`
	CharacterLevelUp bool           `json:"character_level_up"`
}
