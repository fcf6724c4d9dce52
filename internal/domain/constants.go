package domain

// Core attribute codes. The set is fixed; every character carries
// exactly one CharacterStat row per code.
const (
	StatSTR = "STR"
	StatINT = "INT"
	StatWIS = "WIS"
	StatSTA = "STA"
	StatCHA = "CHA"
	StatLCK = "LCK"
)

// CoreStats lists the attribute codes in display order.
var CoreStats = []string{StatSTR, StatINT, StatWIS, StatSTA, StatCHA, StatLCK}

// StatNames maps attribute codes to display names.
var StatNames = map[string]string{
	StatSTR: "Strength",
	StatINT: "Intelligence",
	StatWIS: "Wisdom",
	StatSTA: "Stamina",
	StatCHA: "Charisma",
	StatLCK: "Luck",
}

// IsCoreStat reports whether code is one of the six fixed attributes.
func IsCoreStat(code string) bool {
	_, ok := StatNames[code]
	return ok
}

// Activity log sources.
const (
	SourceManual      = "manual"
	SourceIntegration = "integration"
)

// Starting values for a freshly created character.
const (
	StartingStatValue    = 10
	StartingLevel        = 1
	StartingStatPoints   = 0
	StartingRespecCount  = 1
	DefaultCharacterName = "Adventurer"
)
