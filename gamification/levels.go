package gamification

// LevelThresholds is the ordered table of cumulative XP needed to hold each
// level. Index i is the minimum XP for level i+1.
var LevelThresholds = []int{0, 100, 250, 500, 1000, 2000, 3500, 5500, 8000, 11000}

// MaxLevel is the highest reachable level.
var MaxLevel = len(LevelThresholds)

// LevelForXP returns the level an XP total corresponds to in the table.
func LevelForXP(xp int) int {
	level := 1
	for i, threshold := range LevelThresholds {
		if xp >= threshold {
			level = i + 1
		} else {
			break
		}
	}
	return level
}

// NextThreshold returns the XP needed for the next level, or false when
// already at the top of the table.
func NextThreshold(level int) (int, bool) {
	if level < 1 || level >= MaxLevel {
		return 0, false
	}
	return LevelThresholds[level], true
}

// AwardAmounts maps a history category to the XP granted per logged entry.
var AwardAmounts = map[string]int{
	"bmi":      10,
	"tdee":     10,
	"food":     15,
	"water":    5,
	"calorie":  10,
	"activity": 20,
	"sleep":    10,
	"mood":     5,
	"habit":    10,
	"social":   5,
}

// DailyCaps limits how many times per local calendar day a category can
// award XP. Categories absent from the map are uncapped.
var DailyCaps = map[string]int{
	"bmi":      3,
	"tdee":     3,
	"food":     5,
	"water":    8,
	"calorie":  5,
	"activity": 5,
	"sleep":    2,
	"mood":     3,
	"habit":    10,
	"social":   5,
}
