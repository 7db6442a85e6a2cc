package gamification

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewlyUnlockedFirstEntry(t *testing.T) {
	stats := Stats{
		XP:                15,
		Level:             1,
		EntriesByCategory: map[string]int{"food": 1},
	}
	unlocked := NewlyUnlocked(stats, nil)
	assert.Equal(t, []string{"first_step"}, unlocked)
}

func TestNewlyUnlockedSkipsOwned(t *testing.T) {
	stats := Stats{
		Level:             5,
		EntriesByCategory: map[string]int{"water": 30},
	}
	unlocked := NewlyUnlocked(stats, []string{"first_step", "hydrated"})
	assert.Equal(t, []string{"level_5"}, unlocked)
}

func TestNewlyUnlockedStreakAndRedemption(t *testing.T) {
	stats := Stats{
		EntriesByCategory: map[string]int{"mood": 2},
		StreakDays:        7,
		Redemptions:       1,
	}
	unlocked := NewlyUnlocked(stats, []string{"first_step"})
	assert.ElementsMatch(t, []string{"streak_7", "first_reward"}, unlocked)
}

func TestNewlyUnlockedNothing(t *testing.T) {
	assert.Empty(t, NewlyUnlocked(Stats{}, nil))
}
