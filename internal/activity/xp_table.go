package activity

import "github.com/averyk/lifequest/internal/domain"

// activityXPTable maps activity types to their base XP grants per
// attribute. Values are per-occurrence before any modifier is applied.
var activityXPTable = map[string]map[string]int{
	// Fitness
	"gym_session":       {domain.StatSTR: 75, domain.StatSTA: 30},
	"strength_training": {domain.StatSTR: 100, domain.StatSTA: 20},
	"cardio_session":    {domain.StatSTA: 80, domain.StatSTR: 20},
	"sports_activity":   {domain.StatSTR: 50, domain.StatSTA: 50, domain.StatCHA: 20},
	"yoga_session":      {domain.StatWIS: 40, domain.StatSTA: 30, domain.StatSTR: 20},

	// Sleep and recovery
	"sleep_tracked":   {domain.StatSTA: 30},
	"quality_sleep":   {domain.StatSTA: 50, domain.StatWIS: 20},
	"excellent_sleep": {domain.StatSTA: 75, domain.StatWIS: 30, domain.StatLCK: 10},
	"early_rise":      {domain.StatSTA: 25, domain.StatWIS: 25},

	// Mental and learning
	"learning_session": {domain.StatINT: 60, domain.StatWIS: 20},
	"reading_session":  {domain.StatINT: 40, domain.StatWIS: 30},
	"meditation":       {domain.StatWIS: 50, domain.StatSTA: 20},
	"problem_solved":   {domain.StatINT: 80, domain.StatWIS: 40},
	"skill_practiced":  {domain.StatINT: 50},

	// Work
	"work_completed":    {domain.StatINT: 30},
	"project_milestone": {domain.StatINT: 60, domain.StatWIS: 30},
	"productive_day":    {domain.StatINT: 40, domain.StatSTA: 20},

	// Social
	"social_event":    {domain.StatCHA: 60, domain.StatLCK: 20},
	"networking":      {domain.StatCHA: 50, domain.StatINT: 20},
	"helped_someone":  {domain.StatCHA: 40, domain.StatWIS: 30},
	"public_speaking": {domain.StatCHA: 80, domain.StatINT: 20},

	// Habits and streaks
	"habit_completed":   {domain.StatWIS: 20},
	"streak_maintained": {domain.StatWIS: 40, domain.StatSTA: 20},
	"perfect_day": {
		domain.StatSTR: 20, domain.StatINT: 20, domain.StatWIS: 20,
		domain.StatSTA: 20, domain.StatCHA: 20, domain.StatLCK: 20,
	},

	// Achievements
	"achievement_bronze":   {domain.StatLCK: 30},
	"achievement_silver":   {domain.StatLCK: 50},
	"achievement_gold":     {domain.StatLCK: 80},
	"achievement_platinum": {domain.StatLCK: 120},
	"achievement_diamond":  {domain.StatLCK: 200},

	// Life score bonuses
	"life_score_70": {domain.StatWIS: 10},
	"life_score_80": {domain.StatWIS: 20, domain.StatSTA: 10},
	"life_score_90": {
		domain.StatSTR: 15, domain.StatINT: 15, domain.StatWIS: 15,
		domain.StatSTA: 15, domain.StatCHA: 15, domain.StatLCK: 15,
	},

	// Random and luck
	"lucky_event":     {domain.StatLCK: 50},
	"new_opportunity": {domain.StatLCK: 40, domain.StatCHA: 20},
}

// unknownActivityXP is the consolation grant for unrecognized types.
// Unknown activities still get logged; they just pay a token amount.
var unknownActivityXP = map[string]int{domain.StatLCK: 5}

// intensityMultipliers scales XP by the reported effort level.
var intensityMultipliers = map[string]float64{
	"low":     0.7,
	"normal":  1.0,
	"high":    1.3,
	"extreme": 1.5,
}

// BaseXP returns a copy of the base grant for an activity type, and
// whether the type is known.
func BaseXP(activityType string) (map[string]int, bool) {
	base, ok := activityXPTable[activityType]
	if !ok {
		return nil, false
	}
	xp := make(map[string]int, len(base))
	for stat, amount := range base {
		xp[stat] = amount
	}
	return xp, true
}

// KnownActivityTypes returns every activity type with a base grant.
func KnownActivityTypes() []string {
	types := make([]string, 0, len(activityXPTable))
	for activityType := range activityXPTable {
		types = append(types, activityType)
	}
	return types
}
