package progression

import "math"

// Level curve constants.
// Character XP formula: 100 * (level-1)^1.8
// Attribute XP formula: 50 * (level-10)^1.5
const (
	MaxLevel     = 100
	MaxStatLevel = 100

	levelXPBase     = 100.0
	levelXPExponent = 1.8

	statXPBase     = 50.0
	statXPExponent = 1.5
	statBaseLevel  = 10
)

// Stat point rewards per level-up. Milestone levels pay more.
const (
	pointsRegularLevel = 1
	pointsNotableLevel = 2 // every 5th level
	pointsMajorLevel   = 3 // every 10th level
)

// XPForLevel returns the cumulative XP required to reach a character level.
func XPForLevel(level int) int64 {
	if level <= 1 {
		return 0
	}
	return int64(levelXPBase * math.Pow(float64(level-1), levelXPExponent))
}

// XPForNextLevel returns the XP threshold for the level after current.
func XPForNextLevel(currentLevel int) int64 {
	return XPForLevel(currentLevel + 1)
}

// LevelFromXP returns the character level for a cumulative XP total.
// The closed-form estimate is corrected by scanning because the float
// inverse is not exact against the integer-truncated thresholds.
func LevelFromXP(xp int64) int {
	if xp <= 0 {
		return 1
	}

	level := int(math.Pow(float64(xp)/levelXPBase, 1/levelXPExponent) + 1)
	if level < 1 {
		level = 1
	}
	for level > 1 && XPForLevel(level) > xp {
		level--
	}
	for XPForLevel(level+1) <= xp {
		level++
	}

	if level > MaxLevel {
		return MaxLevel
	}
	return level
}

// LevelProgress returns the percentage progress toward the next level
// threshold, clamped to [0, 100]. At or past the level cap there is no
// next threshold to progress toward, so the answer is always 100.
func LevelProgress(xp int64, level int) float64 {
	if level >= MaxLevel {
		return 100.0
	}

	current := XPForLevel(level)
	next := XPForLevel(level + 1)

	if next <= current {
		return 100.0
	}

	progress := float64(xp-current) / float64(next-current) * 100
	progress = math.Min(math.Max(progress, 0), 100)
	return math.Round(progress*100) / 100
}

// StatPointsForLevel returns the stat points granted on reaching a level.
func StatPointsForLevel(level int) int {
	switch {
	case level%10 == 0:
		return pointsMajorLevel
	case level%5 == 0:
		return pointsNotableLevel
	default:
		return pointsRegularLevel
	}
}

// StatXPForLevel returns the cumulative attribute XP required to reach
// a stat level. Levels at or below the base of 10 cost nothing.
func StatXPForLevel(level int) int64 {
	if level <= statBaseLevel {
		return 0
	}
	return int64(statXPBase * math.Pow(float64(level-statBaseLevel), statXPExponent))
}

// StatXPForNextLevel returns the attribute XP threshold for the level
// after current.
func StatXPForNextLevel(currentLevel int) int64 {
	return StatXPForLevel(currentLevel + 1)
}

// StatLevelFromXP returns the attribute base value for a cumulative
// attribute XP total. Same estimate-then-correct approach as LevelFromXP.
func StatLevelFromXP(xp int64) int {
	if xp <= 0 {
		return statBaseLevel
	}

	level := int(math.Pow(float64(xp)/statXPBase, 1/statXPExponent) + statBaseLevel)
	if level < statBaseLevel {
		level = statBaseLevel
	}
	for level > statBaseLevel && StatXPForLevel(level) > xp {
		level--
	}
	for StatXPForLevel(level+1) <= xp {
		level++
	}

	if level > MaxStatLevel {
		return MaxStatLevel
	}
	return level
}

// CalculateLevelUps resolves a character XP change into level movement
// and the stat points earned. Points are summed per crossed level so a
// single large grant that jumps several levels pays every milestone.
func CalculateLevelUps(oldXP, newXP int64) (oldLevel, newLevel, statPoints int) {
	oldLevel = LevelFromXP(oldXP)
	newLevel = LevelFromXP(newXP)

	for level := oldLevel + 1; level <= newLevel; level++ {
		statPoints += StatPointsForLevel(level)
	}

	return oldLevel, newLevel, statPoints
}

// CalculateStatLevelUps resolves an attribute XP change. The new level
// is a direct recomputation from XP, never an increment, so replaying
// the same delta is idempotent.
func CalculateStatLevelUps(oldXP, newXP int64) (oldLevel, newLevel int, leveled bool) {
	oldLevel = StatLevelFromXP(oldXP)
	newLevel = StatLevelFromXP(newXP)
	return oldLevel, newLevel, newLevel > oldLevel
}
