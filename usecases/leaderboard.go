package usecases

import (
	"errors"

	"vita-server/gamification"
	"vita-server/repositories"
	"vita-server/services"
)

// LeaderboardRow is one ranked row, enriched with profile fields.
type LeaderboardRow struct {
	Rank        int    `json:"rank"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url"`
	XP          int    `json:"xp"`
	Level       int    `json:"level"`
}

type LeaderboardUseCase struct {
	Service  *services.LeaderboardService
	Users    repositories.UserRepository
	Profiles repositories.ProfileRepository
	Groups   repositories.GroupRepository
}

func NewLeaderboardUseCase(service *services.LeaderboardService, users repositories.UserRepository, profiles repositories.ProfileRepository, groups repositories.GroupRepository) *LeaderboardUseCase {
	return &LeaderboardUseCase{Service: service, Users: users, Profiles: profiles, Groups: groups}
}

// Top returns the global leaderboard. An empty ranked view (Redis and
// cache not yet populated) falls through to SQL.
func (uc *LeaderboardUseCase) Top(limit int) ([]LeaderboardRow, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	scores := uc.Service.Top(limit)
	if len(scores) == 0 {
		profiles, err := uc.Profiles.TopByXP(limit)
		if err != nil {
			return nil, err
		}
		rows := make([]LeaderboardRow, 0, len(profiles))
		for i, p := range profiles {
			rows = append(rows, uc.enrich(i+1, p.Username, p.XP))
		}
		return rows, nil
	}
	rows := make([]LeaderboardRow, 0, len(scores))
	for i, s := range scores {
		rows = append(rows, uc.enrich(i+1, s.Username, s.XP))
	}
	return rows, nil
}

// GroupTop ranks only the members of one group, straight from SQL.
func (uc *LeaderboardUseCase) GroupTop(groupID, requester string, limit int) ([]LeaderboardRow, error) {
	if groupID == "" {
		return nil, errors.New("group id is required")
	}
	member, err := uc.Groups.IsMember(groupID, requester)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, errors.New("not a member of this group")
	}
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	members, err := uc.Groups.Members(groupID)
	if err != nil {
		return nil, err
	}
	usernames := make([]string, 0, len(members))
	for _, m := range members {
		usernames = append(usernames, m.Username)
	}
	profiles, err := uc.Profiles.TopByXPIn(usernames, limit)
	if err != nil {
		return nil, err
	}
	rows := make([]LeaderboardRow, 0, len(profiles))
	for i, p := range profiles {
		rows = append(rows, uc.enrich(i+1, p.Username, p.XP))
	}
	return rows, nil
}

func (uc *LeaderboardUseCase) enrich(rank int, username string, xp int) LeaderboardRow {
	row := LeaderboardRow{
		Rank:     rank,
		Username: username,
		XP:       xp,
		Level:    gamification.LevelForXP(xp),
	}
	if user, err := uc.Users.GetByUsername(username); err == nil {
		row.DisplayName = user.DisplayName
		row.AvatarURL = user.AvatarURL
	}
	return row
}
