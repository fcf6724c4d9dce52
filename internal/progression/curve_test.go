package progression

import (
	"math"
	"testing"
)

func TestXPForLevel(t *testing.T) {
	tests := []struct {
		name  string
		level int
		want  int64
	}{
		{"level 0", 0, 0},
		{"level 1", 1, 0},
		{"level 2", 2, 100},
		{"level 3", 3, 348}, // int(100 * 2^1.8)
		{"level 10", 10, int64(100 * math.Pow(9, 1.8))},
		{"level 100", 100, int64(100 * math.Pow(99, 1.8))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := XPForLevel(tt.level); got != tt.want {
				t.Errorf("XPForLevel(%d) = %d, want %d", tt.level, got, tt.want)
			}
		})
	}
}

func TestLevelFromXP(t *testing.T) {
	tests := []struct {
		name string
		xp   int64
		want int
	}{
		{"zero xp", 0, 1},
		{"negative xp", -50, 1},
		{"just below level 2", 99, 1},
		{"exactly level 2", 100, 2},
		{"just below level 3", 347, 2},
		{"exactly level 3", 348, 3},
		{"level cap", XPForLevel(100) * 10, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LevelFromXP(tt.xp); got != tt.want {
				t.Errorf("LevelFromXP(%d) = %d, want %d", tt.xp, got, tt.want)
			}
		})
	}
}

// The curve and its inverse must agree exactly on every threshold:
// XPForLevel(LevelFromXP(x)) <= x < XPForLevel(LevelFromXP(x)+1).
func TestLevelCurveInverseConsistency(t *testing.T) {
	for xp := int64(0); xp < 200_000; xp += 37 {
		level := LevelFromXP(xp)
		if XPForLevel(level) > xp {
			t.Fatalf("xp=%d: XPForLevel(%d)=%d exceeds xp", xp, level, XPForLevel(level))
		}
		if level < MaxLevel && XPForLevel(level+1) <= xp {
			t.Fatalf("xp=%d: next threshold %d not above xp", xp, XPForLevel(level+1))
		}
	}

	// Exact boundaries
	for level := 2; level <= MaxLevel; level++ {
		threshold := XPForLevel(level)
		if got := LevelFromXP(threshold); got != level {
			t.Errorf("LevelFromXP(threshold %d) = %d, want %d", threshold, got, level)
		}
		if got := LevelFromXP(threshold - 1); got != level-1 {
			t.Errorf("LevelFromXP(threshold-1 %d) = %d, want %d", threshold-1, got, level-1)
		}
	}
}

func TestStatCurveInverseConsistency(t *testing.T) {
	for xp := int64(0); xp < 100_000; xp += 29 {
		level := StatLevelFromXP(xp)
		if StatXPForLevel(level) > xp {
			t.Fatalf("xp=%d: StatXPForLevel(%d)=%d exceeds xp", xp, level, StatXPForLevel(level))
		}
		if level < MaxStatLevel && StatXPForLevel(level+1) <= xp {
			t.Fatalf("xp=%d: next threshold %d not above xp", xp, StatXPForLevel(level+1))
		}
	}

	for level := 11; level <= MaxStatLevel; level++ {
		threshold := StatXPForLevel(level)
		if got := StatLevelFromXP(threshold); got != level {
			t.Errorf("StatLevelFromXP(threshold %d) = %d, want %d", threshold, got, level)
		}
	}
}

func TestStatLevelFromXP(t *testing.T) {
	tests := []struct {
		name string
		xp   int64
		want int
	}{
		{"zero xp is base", 0, 10},
		{"negative xp is base", -10, 10},
		{"just below level 11", StatXPForLevel(11) - 1, 10},
		{"exactly level 11", StatXPForLevel(11), 11},
		{"cap", StatXPForLevel(100) * 10, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatLevelFromXP(tt.xp); got != tt.want {
				t.Errorf("StatLevelFromXP(%d) = %d, want %d", tt.xp, got, tt.want)
			}
		})
	}
}

func TestLevelProgress(t *testing.T) {
	tests := []struct {
		name  string
		xp    int64
		level int
		want  float64
	}{
		{"at threshold", 100, 2, 0},
		{"midway to level 2", 50, 1, 50},
		{"at cap", XPForLevel(100), 100, 100},
		{"past cap", XPForLevel(100) * 2, 120, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LevelProgress(tt.xp, tt.level); got != tt.want {
				t.Errorf("LevelProgress(%d, %d) = %v, want %v", tt.xp, tt.level, got, tt.want)
			}
		})
	}
}

func TestStatPointsForLevel(t *testing.T) {
	tests := []struct {
		level int
		want  int
	}{
		{2, 1}, {3, 1}, {4, 1},
		{5, 2}, {15, 2}, {25, 2},
		{10, 3}, {20, 3}, {100, 3},
	}

	for _, tt := range tests {
		if got := StatPointsForLevel(tt.level); got != tt.want {
			t.Errorf("StatPointsForLevel(%d) = %d, want %d", tt.level, got, tt.want)
		}
	}
}

func TestCalculateLevelUps(t *testing.T) {
	tests := []struct {
		name       string
		oldXP      int64
		newXP      int64
		wantOld    int
		wantNew    int
		wantPoints int
	}{
		{"no level change", 0, 50, 1, 1, 0},
		{"single level", 0, 100, 1, 2, 1},
		{"cross milestone 5", XPForLevel(4), XPForLevel(5), 4, 5, 2},
		// Jumping straight to level 10 pays every level: 1+1+1+2+1+1+1+1+3
		{"jump to level 10", 0, int64(100 * math.Pow(9, 1.8)), 1, 10, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldLevel, newLevel, points := CalculateLevelUps(tt.oldXP, tt.newXP)
			if oldLevel != tt.wantOld || newLevel != tt.wantNew || points != tt.wantPoints {
				t.Errorf("CalculateLevelUps(%d, %d) = (%d, %d, %d), want (%d, %d, %d)",
					tt.oldXP, tt.newXP, oldLevel, newLevel, points, tt.wantOld, tt.wantNew, tt.wantPoints)
			}
		})
	}
}

func TestCalculateLevelUpsMilestoneOnly(t *testing.T) {
	// Crossing only level 10 from level 9 yields exactly the milestone bonus.
	oldLevel, newLevel, points := CalculateLevelUps(XPForLevel(9), XPForLevel(10))
	if oldLevel != 9 || newLevel != 10 || points != 3 {
		t.Errorf("got (%d, %d, %d), want (9, 10, 3)", oldLevel, newLevel, points)
	}
}

// Replaying the same XP delta from the same starting point must yield
// the same level both times - base value is a recomputation, not an
// increment.
func TestCalculateStatLevelUpsIdempotent(t *testing.T) {
	oldXP := int64(40)
	newXP := oldXP + 100

	_, first, _ := CalculateStatLevelUps(oldXP, newXP)
	_, second, _ := CalculateStatLevelUps(oldXP, newXP)

	if first != second {
		t.Errorf("replay produced different levels: %d then %d", first, second)
	}
}

func TestCalculateStatLevelUps(t *testing.T) {
	tests := []struct {
		name       string
		oldXP      int64
		newXP      int64
		wantLevel  int
		wantLevels bool
	}{
		{"no movement", 0, 10, 10, false},
		{"cross first stat level", 0, StatXPForLevel(11), 11, true},
		{"multi level", 0, StatXPForLevel(14), 14, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, newLevel, leveled := CalculateStatLevelUps(tt.oldXP, tt.newXP)
			if newLevel != tt.wantLevel || leveled != tt.wantLevels {
				t.Errorf("CalculateStatLevelUps(%d, %d) = (level %d, %v), want (level %d, %v)",
					tt.oldXP, tt.newXP, newLevel, leveled, tt.wantLevel, tt.wantLevels)
			}
		})
	}
}
