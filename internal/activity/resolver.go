package activity

// Modifier keys recognized in activity data.
const (
	dataKeyMultiplier = "multiplier"
	dataKeyDuration   = "duration_minutes"
	dataKeyIntensity  = "intensity"
	dataKeyQuality    = "quality"
)

const maxDurationMultiplier = 2.0

// ResolveXP computes the XP grant for an activity. Base values come
// from the activity table; modifiers from activity data are applied in
// a fixed order (duration, intensity, quality, multiplier) with integer
// truncation after each stage. The stage order is load-bearing: the
// truncation points are part of the observable grant values.
func ResolveXP(activityType string, activityData map[string]interface{}) map[string]int {
	xp, known := BaseXP(activityType)
	if !known {
		grant := make(map[string]int, len(unknownActivityXP))
		for stat, amount := range unknownActivityXP {
			grant[stat] = amount
		}
		return grant
	}

	duration := floatValue(activityData, dataKeyDuration, 0)
	if duration > 0 {
		durationMult := duration / 60
		if durationMult > maxDurationMultiplier {
			durationMult = maxDurationMultiplier
		}
		applyMultiplier(xp, durationMult)
	}

	intensity, _ := activityData[dataKeyIntensity].(string)
	if intensityMult, ok := intensityMultipliers[intensity]; ok {
		applyMultiplier(xp, intensityMult)
	}

	applyMultiplier(xp, floatValue(activityData, dataKeyQuality, 1.0))
	applyMultiplier(xp, floatValue(activityData, dataKeyMultiplier, 1.0))

	return xp
}

func applyMultiplier(xp map[string]int, mult float64) {
	for stat := range xp {
		xp[stat] = int(float64(xp[stat]) * mult)
	}
}

// floatValue reads a numeric field from activity data. JSON decoding
// yields float64, but callers constructing maps directly may use ints.
func floatValue(data map[string]interface{}, key string, def float64) float64 {
	raw, ok := data[key]
	if !ok {
		return def
	}
	switch v := raw.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return def
	}
}
