package gamification

// Stats is the snapshot a badge rule is evaluated against.
type Stats struct {
	XP                int
	Level             int
	EntriesByCategory map[string]int
	StreakDays        int
	Redemptions       int
}

// Badge is one unlockable achievement. Unlocked badges are never revoked.
type Badge struct {
	ID     string
	Name   string
	Unlock func(s Stats) bool
}

var Badges = []Badge{
	{ID: "first_step", Name: "ก้าวแรก", Unlock: func(s Stats) bool {
		return totalEntries(s) >= 1
	}},
	{ID: "committed", Name: "มุ่งมั่น", Unlock: func(s Stats) bool {
		return totalEntries(s) >= 50
	}},
	{ID: "streak_7", Name: "7 วันติด", Unlock: func(s Stats) bool {
		return s.StreakDays >= 7
	}},
	{ID: "level_5", Name: "เลเวล 5", Unlock: func(s Stats) bool {
		return s.Level >= 5
	}},
	{ID: "hydrated", Name: "ดื่มน้ำครบ", Unlock: func(s Stats) bool {
		return s.EntriesByCategory["water"] >= 30
	}},
	{ID: "mover", Name: "สายออกกำลัง", Unlock: func(s Stats) bool {
		return s.EntriesByCategory["activity"] >= 20
	}},
	{ID: "social_butterfly", Name: "สายสังคม", Unlock: func(s Stats) bool {
		return s.EntriesByCategory["social"] >= 10
	}},
	{ID: "first_reward", Name: "แลกรางวัลแรก", Unlock: func(s Stats) bool {
		return s.Redemptions >= 1
	}},
}

// NewlyUnlocked evaluates every badge rule and returns the ids that are
// unlocked now but absent from already.
func NewlyUnlocked(s Stats, already []string) []string {
	have := make(map[string]bool, len(already))
	for _, id := range already {
		have[id] = true
	}
	var unlocked []string
	for _, b := range Badges {
		if have[b.ID] {
			continue
		}
		if b.Unlock(s) {
			unlocked = append(unlocked, b.ID)
		}
	}
	return unlocked
}

func totalEntries(s Stats) int {
	total := 0
	for _, n := range s.EntriesByCategory {
		total += n
	}
	return total
}
