package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgInvalidUUIDParam  = "Invalid %s parameter"
	ErrMsgInvalidLimit      = "Invalid limit parameter"
	ErrMsgInvalidOffset     = "Invalid offset parameter"
	ErrMsgInvalidTimeParam  = "Invalid %s parameter, expected RFC 3339 timestamp"

	// Character operation error messages
	ErrMsgCreateCharacterFailed = "Failed to create character"
	ErrMsgGetCharacterFailed    = "Failed to get character"
	ErrMsgUpdateNameFailed      = "Failed to update character name"
	ErrMsgUseSkillFailed        = "Failed to use skill"

	// Activity operation error messages
	ErrMsgLogActivityFailed   = "Failed to log activity"
	ErrMsgGetActivitiesFailed = "Failed to get activities"

	// Tree operation error messages
	ErrMsgGetTreeFailed  = "Failed to get skill tree"
	ErrMsgAllocateFailed = "Failed to allocate nodes"
	ErrMsgRespecFailed   = "Failed to respec"
)

// Success messages for API responses
const (
	MsgCharacterCreatedSuccess = "Character created successfully"
	MsgNameUpdatedSuccess      = "Name updated successfully"
	MsgSkillUsedSuccess        = "Skill used successfully"
	MsgStatPointsAddedSuccess  = "Stat points added successfully"
	MsgTreeCacheInvalidated    = "Tree cache invalidated successfully"
)
