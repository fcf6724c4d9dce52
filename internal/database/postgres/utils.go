package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/averyk/lifequest/internal/domain"
	"github.com/averyk/lifequest/internal/logger"
)

// SafeRollback rolls back a transaction and logs any error that isn't ErrTxClosed
func SafeRollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
	}
}

// unmarshalEffects decodes a JSONB effects column. A NULL or empty
// column maps to no effects.
func unmarshalEffects(data []byte) ([]domain.NodeEffect, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var effects []domain.NodeEffect
	if err := json.Unmarshal(data, &effects); err != nil {
		return nil, fmt.Errorf("failed to unmarshal effects: %w", err)
	}
	return effects, nil
}

// unmarshalGrants decodes a JSONB xp_grants column.
func unmarshalGrants(data []byte) (map[string]int, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var grants map[string]int
	if err := json.Unmarshal(data, &grants); err != nil {
		return nil, fmt.Errorf("failed to unmarshal xp grants: %w", err)
	}
	return grants, nil
}

// unmarshalData decodes a JSONB activity_data column.
func unmarshalData(data []byte) (map[string]interface{}, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var out map[string]interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal activity data: %w", err)
	}
	return out, nil
}

// marshalJSON encodes a value for a JSONB column, mapping nil to SQL NULL.
func marshalJSON(v interface{}) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal json column: %w", err)
	}
	return data, nil
}
