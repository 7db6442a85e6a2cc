package state

import (
	"time"

	"vita-server/client/store"
	"vita-server/entities"
	"vita-server/gamification"
)

// GainResult reports what one XP award did.
type GainResult struct {
	Awarded   int
	XP        int
	Level     int
	LeveledUp bool
	Capped    bool
	NewBadges []string
}

// Engine is the client-side gamification engine: XP awards, daily caps,
// level-ups and badge unlocks, all against the local store. The daily-cap
// counter key encodes the client's local date string; that boundary is as
// weak as the local clock, and deliberately so.
type Engine struct {
	store *store.Store
	now   func() time.Time
}

func NewEngine(st *store.Store) *Engine {
	return &Engine{store: st, now: time.Now}
}

// GainXP awards the category's XP amount to username's profile. At the
// per-category daily cap the call is a no-op. A single call increments
// the level at most once, even when the award overshoots more than one
// threshold.
func (e *Engine) GainXP(username, category string) GainResult {
	amount := gamification.AwardAmounts[category]
	if amount <= 0 {
		return GainResult{}
	}

	countKey := awardCountKey(username, category, e.localDate())
	var count int
	e.store.Get(countKey, &count)
	if limit, capped := gamification.DailyCaps[category]; capped && count >= limit {
		profile := e.loadProfile(username)
		return GainResult{XP: profile.XP, Level: profile.Level, Capped: true}
	}

	profile := e.loadProfile(username)
	profile.XP += amount

	result := GainResult{Awarded: amount, XP: profile.XP}
	if next, ok := gamification.NextThreshold(profile.Level); ok && profile.XP >= next {
		profile.Level++
		result.LeveledUp = true
	}
	result.Level = profile.Level

	result.NewBadges = e.checkBadges(username, profile)

	_ = e.store.Set(countKey, count+1)
	_ = e.store.Set(profileKey, profile)
	return result
}

// AllowDailyUse checks-and-increments a generic local-date counter, used
// for the per-user AI usage caps. Same weak day boundary as XP caps.
func (e *Engine) AllowDailyUse(username, kind string, maxPerDay int) bool {
	key := usageCountKey(username, kind, e.localDate())
	var count int
	e.store.Get(key, &count)
	if maxPerDay > 0 && count >= maxPerDay {
		return false
	}
	_ = e.store.Set(key, count+1)
	return true
}

func (e *Engine) loadProfile(username string) *entities.UserProfile {
	profile := &entities.UserProfile{Username: username, Level: 1}
	e.store.Get(profileKey, profile)
	if profile.Level < 1 {
		profile.Level = 1
	}
	return profile
}

func (e *Engine) checkBadges(username string, profile *entities.UserProfile) []string {
	stats := gamification.Stats{
		XP:                profile.XP,
		Level:             profile.Level,
		EntriesByCategory: e.entryCounts(),
		StreakDays:        e.streakDays(),
	}
	unlocked := gamification.NewlyUnlocked(stats, profile.BadgeList())
	profile.AddBadges(unlocked)
	return unlocked
}

func (e *Engine) entryCounts() map[string]int {
	counts := make(map[string]int, len(entities.Categories))
	for _, cat := range entities.Categories {
		var list []entities.HistoryEntry
		e.store.Get(historyKey(cat), &list)
		counts[cat] = len(list)
	}
	return counts
}

// streakDays counts consecutive local days, ending today, with at least
// one entry in any category.
func (e *Engine) streakDays() int {
	days := make(map[string]bool)
	for _, cat := range entities.Categories {
		var list []entities.HistoryEntry
		e.store.Get(historyKey(cat), &list)
		for _, entry := range list {
			if t, err := time.Parse(time.RFC3339, entry.Timestamp); err == nil {
				days[t.Local().Format("2006-01-02")] = true
			}
		}
	}
	streak := 0
	day := e.now()
	for {
		if !days[day.Format("2006-01-02")] {
			break
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

func (e *Engine) localDate() string {
	return e.now().Format("2006-01-02")
}
