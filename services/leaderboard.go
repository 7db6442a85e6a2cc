package services

import (
	"context"
	"strconv"
	"time"

	"vita-server/cache"
	"vita-server/logger"
	"vita-server/repositories"

	"github.com/redis/go-redis/v9"
)

const leaderboardKey = "leaderboard:xp"

// LeaderboardService keeps a ranked view of profile XP. With Redis it uses
// a sorted set; otherwise it falls back to an in-memory score cache. Either
// way the ranking is rebuilt from the database on an interval so restarts
// and out-of-band writes converge.
type LeaderboardService struct {
	rdb      *redis.Client
	scores   *cache.ScoreCache
	profiles repositories.ProfileRepository
	log      *logger.Logger
	interval time.Duration
}

func NewLeaderboardService(redisURL string, profiles repositories.ProfileRepository, log *logger.Logger) *LeaderboardService {
	svc := &LeaderboardService{
		scores:   cache.NewScoreCache(),
		profiles: profiles,
		log:      log,
		interval: 5 * time.Minute,
	}
	if redisURL != "" {
		opt, err := redis.ParseURL(redisURL)
		if err != nil {
			log.Warn("invalid REDIS_URL, falling back to in-memory leaderboard", "error", err)
			return svc
		}
		rdb := redis.NewClient(opt)
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Warn("redis unreachable, falling back to in-memory leaderboard", "error", err)
			return svc
		}
		svc.rdb = rdb
	}
	return svc
}

// Start launches the periodic rebuild loop.
func (s *LeaderboardService) Start() {
	s.Rebuild()
	ticker := time.NewTicker(s.interval)
	go func() {
		for range ticker.C {
			s.Rebuild()
		}
	}()
}

// Update records the current XP for a user.
func (s *LeaderboardService) Update(username string, xp int) {
	if s.rdb != nil {
		err := s.rdb.ZAdd(context.Background(), leaderboardKey, redis.Z{
			Score:  float64(xp),
			Member: username,
		}).Err()
		if err != nil {
			s.log.Warn("leaderboard redis update failed", "username", username, "error", err)
		}
		return
	}
	s.scores.Set(username, xp)
}

// Top returns the highest-XP usernames with their scores.
func (s *LeaderboardService) Top(limit int) []cache.Score {
	if limit <= 0 {
		limit = 10
	}
	if s.rdb != nil {
		zs, err := s.rdb.ZRevRangeWithScores(context.Background(), leaderboardKey, 0, int64(limit-1)).Result()
		if err != nil {
			s.log.Warn("leaderboard redis query failed, using cache", "error", err)
			return s.scores.TopN(limit)
		}
		top := make([]cache.Score, 0, len(zs))
		for _, z := range zs {
			name, _ := z.Member.(string)
			top = append(top, cache.Score{Username: name, XP: int(z.Score)})
		}
		return top
	}
	return s.scores.TopN(limit)
}

// Rebuild reloads every profile's XP from the database.
func (s *LeaderboardService) Rebuild() {
	profiles, err := s.profiles.GetAll()
	if err != nil {
		s.log.Warn("leaderboard rebuild failed", "error", err)
		return
	}
	if s.rdb != nil {
		ctx := context.Background()
		pipe := s.rdb.Pipeline()
		pipe.Del(ctx, leaderboardKey)
		for _, p := range profiles {
			pipe.ZAdd(ctx, leaderboardKey, redis.Z{Score: float64(p.XP), Member: p.Username})
		}
		if _, err := pipe.Exec(ctx); err != nil {
			s.log.Warn("leaderboard redis rebuild failed", "error", err)
		}
		return
	}
	scores := make([]cache.Score, 0, len(profiles))
	for _, p := range profiles {
		scores = append(scores, cache.Score{Username: p.Username, XP: p.XP})
	}
	s.scores.Replace(scores)
	s.log.Debug("leaderboard rebuilt", "users", strconv.Itoa(len(profiles)))
}

// Stats reports backend and size for the ops endpoints.
func (s *LeaderboardService) Stats() map[string]interface{} {
	backend := "memory"
	if s.rdb != nil {
		backend = "redis"
	}
	stats := s.scores.Stats()
	stats["backend"] = backend
	return stats
}
