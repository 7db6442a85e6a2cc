package cache

import (
	"sort"
	"sync"
	"time"
)

// Score is one cached leaderboard row.
type Score struct {
	Username  string
	XP        int
	UpdatedAt time.Time
}

// ScoreCache is the in-memory leaderboard used when Redis is not
// configured. It mirrors profile XP and answers top-N queries.
type ScoreCache struct {
	mu     sync.RWMutex
	scores map[string]Score // username -> score
}

func NewScoreCache() *ScoreCache {
	return &ScoreCache{scores: make(map[string]Score)}
}

// Set records the current XP for a user, replacing any previous value.
func (sc *ScoreCache) Set(username string, xp int) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.scores[username] = Score{Username: username, XP: xp, UpdatedAt: time.Now()}
}

// TopN returns the highest-XP users, ties broken by username for a stable order.
func (sc *ScoreCache) TopN(n int) []Score {
	sc.mu.RLock()
	all := make([]Score, 0, len(sc.scores))
	for _, s := range sc.scores {
		all = append(all, s)
	}
	sc.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if all[i].XP != all[j].XP {
			return all[i].XP > all[j].XP
		}
		return all[i].Username < all[j].Username
	})
	if n > 0 && len(all) > n {
		all = all[:n]
	}
	return all
}

// Replace swaps the whole cache contents, used by periodic rebuilds.
func (sc *ScoreCache) Replace(scores []Score) {
	next := make(map[string]Score, len(scores))
	for _, s := range scores {
		next[s.Username] = s
	}
	sc.mu.Lock()
	sc.scores = next
	sc.mu.Unlock()
}

// Stats reports cache size for the ops endpoints.
func (sc *ScoreCache) Stats() map[string]interface{} {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return map[string]interface{}{
		"users": len(sc.scores),
	}
}
