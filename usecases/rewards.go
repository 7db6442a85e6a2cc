package usecases

import (
	"errors"

	"vita-server/entities"
	"vita-server/gamification"
	"vita-server/repositories"
	"vita-server/services"
)

var ErrInsufficientXP = errors.New("not enough XP for this reward")

type RewardUseCase struct {
	Rewards     repositories.RewardRepository
	Profiles    repositories.ProfileRepository
	Leaderboard *services.LeaderboardService
}

func NewRewardUseCase(rewards repositories.RewardRepository, profiles repositories.ProfileRepository, leaderboard *services.LeaderboardService) *RewardUseCase {
	return &RewardUseCase{Rewards: rewards, Profiles: profiles, Leaderboard: leaderboard}
}

// List returns the active catalog.
func (uc *RewardUseCase) List() ([]entities.Reward, error) {
	return uc.Rewards.ListActive()
}

// Redeem exchanges profile XP for a reward: checks balance, decrements XP
// and stock, and appends a ledger entry. There is no cross-store
// transaction; the ledger write is last so a failure never leaves a ledger
// entry without the XP deduction.
func (uc *RewardUseCase) Redeem(username, rewardID string) (*entities.RedemptionEntry, error) {
	if username == "" || rewardID == "" {
		return nil, errors.New("username and reward id are required")
	}
	reward, err := uc.Rewards.GetByID(rewardID)
	if err != nil {
		return nil, errors.New("reward not found")
	}
	if !reward.Active {
		return nil, errors.New("reward is not available")
	}
	profile, err := uc.Profiles.GetByUsername(username)
	if err != nil {
		return nil, errors.New("profile not found")
	}
	if profile.XP < reward.CostXP {
		return nil, ErrInsufficientXP
	}
	if err := uc.Rewards.DecrementStock(rewardID); err != nil {
		return nil, err
	}
	profile.XP -= reward.CostXP

	// Redemption badges unlock here, not in the client engine, which
	// never sees the ledger. Counting the in-flight redemption keeps the
	// badge and the XP deduction in the same profile write.
	if prior, err := uc.Rewards.CountRedemptions(username); err == nil {
		stats := gamification.Stats{
			XP:          profile.XP,
			Level:       profile.Level,
			Redemptions: int(prior) + 1,
		}
		profile.AddBadges(gamification.NewlyUnlocked(stats, profile.BadgeList()))
	}

	if err := uc.Profiles.Upsert(profile); err != nil {
		return nil, err
	}
	if uc.Leaderboard != nil {
		uc.Leaderboard.Update(username, profile.XP)
	}
	entry := &entities.RedemptionEntry{
		Username:   username,
		RewardID:   reward.ID,
		RewardName: reward.Name,
		CostXP:     reward.CostXP,
	}
	if err := uc.Rewards.AppendRedemption(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// History returns the user's redemption ledger, newest first.
func (uc *RewardUseCase) History(username string) ([]entities.RedemptionEntry, error) {
	if username == "" {
		return nil, errors.New("username is required")
	}
	return uc.Rewards.RedemptionsByUser(username)
}

// SeedDefaults inserts a starter catalog when none exists yet.
func (uc *RewardUseCase) SeedDefaults() error {
	existing, err := uc.Rewards.ListActive()
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	defaults := []entities.Reward{
		{Name: "สติกเกอร์สุขภาพดี", CostXP: 100, Stock: -1, Active: true},
		{Name: "ขวดน้ำรักษ์โลก", CostXP: 500, Stock: 50, Active: true},
		{Name: "เสื้อยืดทีมสุขภาพ", CostXP: 1500, Stock: 20, Active: true},
	}
	for i := range defaults {
		if err := uc.Rewards.Create(&defaults[i]); err != nil {
			return err
		}
	}
	return nil
}
