package activity

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/averyk/lifequest/internal/domain"
	"github.com/averyk/lifequest/internal/event"
	"github.com/averyk/lifequest/internal/logger"
	"github.com/averyk/lifequest/internal/progression"
	"github.com/averyk/lifequest/internal/repository"
)

// Query limits for activity history reads.
const (
	DefaultRecentLimit = 20
	MaxRecentLimit     = 100
)

// Service defines activity logging and history operations.
type Service interface {
	LogActivity(ctx context.Context, input domain.ActivityInput) (*domain.ActivityResult, error)
	LogBatch(ctx context.Context, inputs []domain.ActivityInput) (*domain.ActivityBatchResult, error)
	GetActivity(ctx context.Context, id uuid.UUID) (*domain.ActivityLog, error)
	GetRecentActivities(ctx context.Context, characterID uuid.UUID, limit, offset int) ([]domain.ActivityLog, error)
	GetActivitiesByDateRange(ctx context.Context, characterID uuid.UUID, start, end time.Time) ([]domain.ActivityLog, error)
}

type service struct {
	repo repository.Activity
	bus  event.Bus
}

// NewService creates a new activity service.
func NewService(repo repository.Activity, bus event.Bus) Service {
	return &service{
		repo: repo,
		bus:  bus,
	}
}

// LogActivity records one activity and applies its XP grant inside a
// single transaction. The character row is locked for the duration, so
// concurrent grants for the same character serialize.
func (s *service) LogActivity(ctx context.Context, input domain.ActivityInput) (*domain.ActivityResult, error) {
	log := logger.FromContext(ctx)

	if input.ActivityType == "" {
		return nil, fmt.Errorf("%w: activity_type is required", domain.ErrInvalidInput)
	}
	for stat := range input.CustomXP {
		if !domain.IsCoreStat(stat) {
			return nil, fmt.Errorf("%w: %s", domain.ErrInvalidStatCode, stat)
		}
	}

	grants := input.CustomXP
	if len(grants) == 0 {
		grants = ResolveXP(input.ActivityType, input.ActivityData)
	}

	activityTime := input.ActivityTime
	if activityTime.IsZero() {
		activityTime = time.Now().UTC()
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin activity log: %w", err)
	}
	defer tx.Rollback(ctx)

	character, err := tx.GetCharacterByUserForUpdate(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if character == nil {
		return nil, fmt.Errorf("%w: user %s", domain.ErrCharacterNotFound, input.UserID)
	}

	record := &domain.ActivityLog{
		ID:           uuid.New(),
		CharacterID:  character.ID,
		ActivityType: input.ActivityType,
		ActivityData: input.ActivityData,
		Source:       input.Source,
		SourceRef:    input.SourceRef,
		XPGrants:     grants,
		ActivityTime: activityTime,
		LoggedAt:     time.Now().UTC(),
	}
	if err := tx.InsertActivityLog(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to insert activity log: %w", err)
	}

	var statLevelUps []string
	var statEvents []event.Event
	totalGained := int64(0)

	// Fixed attribute order keeps grant application deterministic.
	for _, statCode := range domain.CoreStats {
		xp, ok := grants[statCode]
		if !ok || xp <= 0 {
			continue
		}

		totalGained += int64(xp)

		stat, err := tx.GetStat(ctx, character.ID, statCode)
		if err != nil {
			return nil, err
		}
		if stat == nil {
			continue
		}

		oldXP := stat.StatXP
		newXP := oldXP + int64(xp)

		oldLevel, newLevel, leveled := progression.CalculateStatLevelUps(oldXP, newXP)
		baseValue := stat.BaseValue
		if leveled {
			baseValue = newLevel
			statLevelUps = append(statLevelUps, statCode)
			statEvents = append(statEvents, event.NewStatLevelUpEvent(character.ID.String(), statCode, oldLevel, newLevel))
		}

		if err := tx.UpdateStatXP(ctx, character.ID, statCode, newXP, baseValue); err != nil {
			return nil, fmt.Errorf("failed to update %s xp: %w", statCode, err)
		}
	}

	oldTotalXP := character.TotalXP
	newTotalXP := oldTotalXP + totalGained

	oldLevel, newLevel, statPoints := progression.CalculateLevelUps(oldTotalXP, newTotalXP)
	characterLevelUp := newLevel > oldLevel

	level := character.Level
	points := character.StatPoints
	if characterLevelUp {
		level = newLevel
		points += statPoints
	}
	if err := tx.UpdateCharacterProgress(ctx, character.ID, newTotalXP, level, points); err != nil {
		return nil, fmt.Errorf("failed to update character progress: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit activity log: %w", err)
	}

	if err := s.bus.Publish(ctx, event.NewActivityLoggedEvent(character.ID.String(), input.ActivityType, grants)); err != nil {
		log.Warn("Failed to publish activity event", "error", err, "character_id", character.ID)
	}
	for _, evt := range statEvents {
		if err := s.bus.Publish(ctx, evt); err != nil {
			log.Warn("Failed to publish stat level-up event", "error", err, "character_id", character.ID)
		}
	}
	if characterLevelUp {
		if err := s.bus.Publish(ctx, event.NewCharacterLevelUpEvent(character.ID.String(), oldLevel, newLevel, statPoints)); err != nil {
			log.Warn("Failed to publish level-up event", "error", err, "character_id", character.ID)
		}
	}

	log.Info("Activity logged",
		"character_id", character.ID,
		"activity_type", input.ActivityType,
		"xp_total", totalGained,
		"level_up", characterLevelUp)

	result := &domain.ActivityResult{
		Success:          true,
		ActivityID:       record.ID,
		XPGranted:        grants,
		StatLevelUps:     statLevelUps,
		CharacterLevelUp: characterLevelUp,
		Message:          buildMessage(grants, statLevelUps, characterLevelUp, newLevel, statPoints),
	}
	if characterLevelUp {
		result.NewLevel = newLevel
	}
	return result, nil
}

// buildMessage picks the most notable outcome for the acknowledgement.
func buildMessage(grants map[string]int, statLevelUps []string, levelUp bool, newLevel, statPoints int) string {
	if levelUp {
		return fmt.Sprintf("Level up! You are now level %d. Gained %d stat points!", newLevel, statPoints)
	}
	if len(statLevelUps) > 0 {
		return fmt.Sprintf("Stats improved: %s", strings.Join(statLevelUps, ", "))
	}

	parts := make([]string, 0, len(grants))
	for _, stat := range domain.CoreStats {
		if xp, ok := grants[stat]; ok && xp > 0 {
			parts = append(parts, fmt.Sprintf("%s+%d", stat, xp))
		}
	}
	return fmt.Sprintf("Gained XP: %s", strings.Join(parts, ", "))
}

// LogBatch logs each input independently and aggregates the outcomes.
// Per-item failures are skipped; success means at least one processed.
func (s *service) LogBatch(ctx context.Context, inputs []domain.ActivityInput) (*domain.ActivityBatchResult, error) {
	log := logger.FromContext(ctx)

	result := &domain.ActivityBatchResult{
		TotalXP: make(map[string]int),
	}
	levelUpStats := make(map[string]bool)

	for _, input := range inputs {
		res, err := s.LogActivity(ctx, input)
		if err != nil {
			log.Warn("Batch item failed", "error", err, "activity_type", input.ActivityType)
			continue
		}
		result.Processed++

		for stat, xp := range res.XPGranted {
			result.TotalXP[stat] += xp
		}
		for _, stat := range res.StatLevelUps {
			levelUpStats[stat] = true
		}
		if res.CharacterLevelUp {
			result.CharacterLevelUp = true
		}
	}

	for _, stat := range domain.CoreStats {
		if levelUpStats[stat] {
			result.StatLevelUps = append(result.StatLevelUps, stat)
		}
	}

	result.Success = result.Processed > 0
	return result, nil
}

// GetActivity returns a single logged activity by ID.
func (s *service) GetActivity(ctx context.Context, id uuid.UUID) (*domain.ActivityLog, error) {
	record, err := s.repo.GetActivity(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrActivityNotFound, id)
	}
	return record, nil
}

// GetRecentActivities returns a character's activity log page, newest
// first. The limit is clamped to [1, MaxRecentLimit].
func (s *service) GetRecentActivities(ctx context.Context, characterID uuid.UUID, limit, offset int) ([]domain.ActivityLog, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	if limit > MaxRecentLimit {
		limit = MaxRecentLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.GetRecentActivities(ctx, characterID, limit, offset)
}

// GetActivitiesByDateRange returns activities whose activity time falls
// within [start, end], newest first.
func (s *service) GetActivitiesByDateRange(ctx context.Context, characterID uuid.UUID, start, end time.Time) ([]domain.ActivityLog, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end before start", domain.ErrInvalidInput)
	}
	return s.repo.GetActivitiesByDateRange(ctx, characterID, start, end)
}
