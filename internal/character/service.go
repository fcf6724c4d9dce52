package character

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/averyk/lifequest/internal/domain"
	"github.com/averyk/lifequest/internal/logger"
	"github.com/averyk/lifequest/internal/progression"
	"github.com/averyk/lifequest/internal/repository"
)

// MaxNameLength bounds character names.
const MaxNameLength = 50

// Derived-stat formula cache sizing. Formulas change rarely; the TTL
// only bounds how long an edited formula keeps its stale parse.
const (
	formulaCacheSize = 128
	formulaCacheTTL  = 5 * time.Minute
)

// Service defines character profile operations.
type Service interface {
	Create(ctx context.Context, userID uuid.UUID, name string) (*domain.CharacterSummary, error)
	GetSummary(ctx context.Context, characterID uuid.UUID) (*domain.CharacterSummary, error)
	GetSummaryByUser(ctx context.Context, userID uuid.UUID) (*domain.CharacterSummary, error)
	GetFull(ctx context.Context, characterID uuid.UUID) (*domain.CharacterFull, error)
	GetStats(ctx context.Context, characterID uuid.UUID) (map[string]domain.StatDetail, error)
	UpdateName(ctx context.Context, characterID uuid.UUID, name string) (*domain.CharacterSummary, error)
	AddStatPoints(ctx context.Context, characterID uuid.UUID, points int) error
	UseSkill(ctx context.Context, characterID uuid.UUID, skillCode string) error
}

type service struct {
	repo     repository.Character
	skills   repository.Skill
	formulas *progression.FormulaCache
}

// NewService creates a new character service.
func NewService(repo repository.Character, skills repository.Skill) Service {
	return &service{
		repo:     repo,
		skills:   skills,
		formulas: progression.NewFormulaCache(formulaCacheSize, formulaCacheTTL),
	}
}

// Create makes a new character for a user with all six attributes at
// their starting value. One character per user.
func (s *service) Create(ctx context.Context, userID uuid.UUID, name string) (*domain.CharacterSummary, error) {
	log := logger.FromContext(ctx)

	name = strings.TrimSpace(name)
	if name == "" {
		name = domain.DefaultCharacterName
	}
	if len(name) > MaxNameLength {
		return nil, fmt.Errorf("%w: name too long", domain.ErrInvalidInput)
	}

	existing, err := s.repo.GetCharacterByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: user %s", domain.ErrCharacterExists, userID)
	}

	character := &domain.Character{
		ID:           uuid.New(),
		UserID:       userID,
		Name:         name,
		Level:        domain.StartingLevel,
		TotalXP:      0,
		StatPoints:   domain.StartingStatPoints,
		RespecTokens: domain.StartingRespecCount,
	}
	if err := s.repo.CreateCharacter(ctx, character); err != nil {
		return nil, fmt.Errorf("failed to create character: %w", err)
	}
	if err := s.repo.CreateCharacterStats(ctx, character.ID, domain.CoreStats); err != nil {
		return nil, fmt.Errorf("failed to create character stats: %w", err)
	}

	log.Info("Character created", "character_id", character.ID, "user_id", userID, "name", name)

	return s.GetSummary(ctx, character.ID)
}

// GetSummary returns the compact character view.
func (s *service) GetSummary(ctx context.Context, characterID uuid.UUID) (*domain.CharacterSummary, error) {
	character, err := s.repo.GetCharacterByID(ctx, characterID)
	if err != nil {
		return nil, err
	}
	if character == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrCharacterNotFound, characterID)
	}
	return s.buildSummary(ctx, character)
}

// GetSummaryByUser returns the compact view looked up by user.
func (s *service) GetSummaryByUser(ctx context.Context, userID uuid.UUID) (*domain.CharacterSummary, error) {
	character, err := s.repo.GetCharacterByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if character == nil {
		return nil, fmt.Errorf("%w: user %s", domain.ErrCharacterNotFound, userID)
	}
	return s.buildSummary(ctx, character)
}

func (s *service) buildSummary(ctx context.Context, character *domain.Character) (*domain.CharacterSummary, error) {
	stats, err := s.repo.GetCharacterStats(ctx, character.ID)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]int, len(stats))
	for _, stat := range stats {
		totals[stat.StatCode] = stat.Total()
	}

	nodesCount, err := s.repo.CountAllocatedNodes(ctx, character.ID)
	if err != nil {
		return nil, err
	}
	skillsCount, err := s.repo.CountUnlockedSkills(ctx, character.ID)
	if err != nil {
		return nil, err
	}

	xpToNext := progression.XPForNextLevel(character.Level) - character.TotalXP
	if xpToNext < 0 {
		xpToNext = 0
	}

	return &domain.CharacterSummary{
		ID:                  character.ID,
		UserID:              character.UserID,
		Name:                character.Name,
		Level:               character.Level,
		TotalXP:             character.TotalXP,
		XPToNextLevel:       xpToNext,
		LevelProgress:       progression.LevelProgress(character.TotalXP, character.Level),
		StatPoints:          character.StatPoints,
		RespecTokens:        character.RespecTokens,
		Stats:               totals,
		AllocatedNodesCount: nodesCount,
		UnlockedSkillsCount: skillsCount,
		CreatedAt:           character.CreatedAt,
	}, nil
}

// GetFull returns the summary plus per-attribute detail, tree state,
// unlocked skills and derived stats.
func (s *service) GetFull(ctx context.Context, characterID uuid.UUID) (*domain.CharacterFull, error) {
	summary, err := s.GetSummary(ctx, characterID)
	if err != nil {
		return nil, err
	}

	detail, err := s.GetStats(ctx, characterID)
	if err != nil {
		return nil, err
	}

	nodeCodes, err := s.repo.GetAllocatedNodeCodes(ctx, characterID)
	if err != nil {
		return nil, err
	}
	skillCodes, err := s.skills.GetUnlockedSkillCodes(ctx, characterID)
	if err != nil {
		return nil, err
	}

	derived, err := s.calculateDerivedStats(ctx, summary.Stats)
	if err != nil {
		return nil, err
	}

	return &domain.CharacterFull{
		CharacterSummary:   *summary,
		StatsDetail:        detail,
		AllocatedNodeCodes: nodeCodes,
		UnlockedSkillCodes: skillCodes,
		DerivedStats:       derived,
	}, nil
}

// GetStats returns per-attribute detail for a character.
func (s *service) GetStats(ctx context.Context, characterID uuid.UUID) (map[string]domain.StatDetail, error) {
	stats, err := s.repo.GetCharacterStats(ctx, characterID)
	if err != nil {
		return nil, err
	}
	if len(stats) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrCharacterNotFound, characterID)
	}

	detail := make(map[string]domain.StatDetail, len(stats))
	for _, stat := range stats {
		level := progression.StatLevelFromXP(stat.StatXP)
		xpToNext := progression.StatXPForNextLevel(level) - stat.StatXP
		if xpToNext < 0 {
			xpToNext = 0
		}

		detail[stat.StatCode] = domain.StatDetail{
			Code:      stat.StatCode,
			Name:      domain.StatNames[stat.StatCode],
			Base:      stat.BaseValue,
			Allocated: stat.AllocatedBonus,
			Total:     stat.Total(),
			XP:        stat.StatXP,
			XPToNext:  xpToNext,
			Level:     level,
		}
	}
	return detail, nil
}

// calculateDerivedStats evaluates every active derived-stat formula
// against the attribute totals. A formula that fails to evaluate
// reports 0 rather than failing the whole read.
func (s *service) calculateDerivedStats(ctx context.Context, totals map[string]int) (map[string]float64, error) {
	log := logger.FromContext(ctx)

	defs, err := s.skills.GetActiveDerivedStats(ctx)
	if err != nil {
		return nil, err
	}

	derived := make(map[string]float64, len(defs))
	for _, def := range defs {
		value, err := s.formulas.Evaluate(def.Formula, totals)
		if err != nil {
			log.Warn("Derived stat formula failed", "code", def.Code, "error", err)
			derived[def.Code] = 0
			continue
		}
		derived[def.Code] = math.Round(value*100) / 100
	}
	return derived, nil
}

// UpdateName renames a character.
func (s *service) UpdateName(ctx context.Context, characterID uuid.UUID, name string) (*domain.CharacterSummary, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > MaxNameLength {
		return nil, fmt.Errorf("%w: name must be 1-%d characters", domain.ErrInvalidInput, MaxNameLength)
	}

	character, err := s.repo.GetCharacterByID(ctx, characterID)
	if err != nil {
		return nil, err
	}
	if character == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrCharacterNotFound, characterID)
	}

	if err := s.repo.UpdateCharacterName(ctx, characterID, name); err != nil {
		return nil, fmt.Errorf("failed to update name: %w", err)
	}

	return s.GetSummary(ctx, characterID)
}

// AddStatPoints grants unspent points outside the level curve, for
// quest rewards or manual adjustment.
func (s *service) AddStatPoints(ctx context.Context, characterID uuid.UUID, points int) error {
	if points <= 0 {
		return fmt.Errorf("%w: points must be positive", domain.ErrInvalidInput)
	}

	character, err := s.repo.GetCharacterByID(ctx, characterID)
	if err != nil {
		return err
	}
	if character == nil {
		return fmt.Errorf("%w: %s", domain.ErrCharacterNotFound, characterID)
	}

	return s.repo.AddStatPoints(ctx, characterID, points)
}

// UseSkill records one use of an unlocked skill.
func (s *service) UseSkill(ctx context.Context, characterID uuid.UUID, skillCode string) error {
	skill, err := s.skills.GetSkillByCode(ctx, skillCode)
	if err != nil {
		return err
	}
	if skill == nil {
		return fmt.Errorf("%w: %s", domain.ErrSkillNotFound, skillCode)
	}

	unlocked, err := s.skills.GetUnlockedSkillCodes(ctx, characterID)
	if err != nil {
		return err
	}
	for _, code := range unlocked {
		if code == skillCode {
			return s.skills.IncrementSkillUsage(ctx, characterID, skillCode)
		}
	}
	return fmt.Errorf("%w: %s not unlocked", domain.ErrSkillNotFound, skillCode)
}
