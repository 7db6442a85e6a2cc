package usecases

import (
	"errors"

	"vita-server/entities"
	"vita-server/repositories"
	"vita-server/services"
)

// ErrDuplicateImage rejects a second submission of identical image bytes in
// the same category. Callers surface this with a specific message, not the
// generic failure.
var ErrDuplicateImage = errors.New("duplicate image content")

// Notifier pushes realtime events to connected clients. Best effort.
type Notifier interface {
	NotifyLevelUp(username string, level int)
}

// AllData is the bulk-fetch payload: everything one user owns.
type AllData struct {
	Profile *entities.UserProfile              `json:"profile"`
	History map[string][]entities.HistoryEntry `json:"history"`
	Goals   []entities.Goal                    `json:"goals"`
	Groups  []entities.HealthGroup             `json:"groups"`
}

type SyncUseCase struct {
	Profiles    repositories.ProfileRepository
	History     repositories.HistoryRepository
	Goals       repositories.GoalRepository
	Groups      repositories.GroupRepository
	Leaderboard *services.LeaderboardService
	Events      Notifier
}

func NewSyncUseCase(
	profiles repositories.ProfileRepository,
	history repositories.HistoryRepository,
	goals repositories.GoalRepository,
	groups repositories.GroupRepository,
	leaderboard *services.LeaderboardService,
	events Notifier,
) *SyncUseCase {
	return &SyncUseCase{
		Profiles:    profiles,
		History:     history,
		Goals:       goals,
		Groups:      groups,
		Leaderboard: leaderboard,
		Events:      events,
	}
}

// FetchAll returns the complete state for one user. A missing profile is
// not an error; the client treats an empty payload as a fresh account.
func (uc *SyncUseCase) FetchAll(username string) (*AllData, error) {
	if username == "" {
		return nil, errors.New("username is required")
	}
	all := &AllData{History: make(map[string][]entities.HistoryEntry)}

	if profile, err := uc.Profiles.GetByUsername(username); err == nil {
		all.Profile = profile
	}
	entries, err := uc.History.GetByUser(username)
	if err != nil {
		return nil, err
	}
	for _, cat := range entities.Categories {
		all.History[cat] = []entities.HistoryEntry{}
	}
	for _, e := range entries {
		all.History[e.Category] = append(all.History[e.Category], e)
	}
	if goals, err := uc.Goals.GetByUser(username); err == nil {
		all.Goals = goals
	}
	if groups, err := uc.Groups.GetByUsername(username); err == nil {
		all.Groups = groups
	}
	return all, nil
}

// SaveProfile overwrites the user's profile. When the stored level rises,
// a single celebration event is pushed and the leaderboard updated.
func (uc *SyncUseCase) SaveProfile(profile *entities.UserProfile) error {
	if profile.Username == "" {
		return errors.New("username is required")
	}
	var previousLevel int
	if existing, err := uc.Profiles.GetByUsername(profile.Username); err == nil {
		previousLevel = existing.Level
	}
	if err := uc.Profiles.Upsert(profile); err != nil {
		return err
	}
	if uc.Leaderboard != nil {
		uc.Leaderboard.Update(profile.Username, profile.XP)
	}
	if uc.Events != nil && profile.Level > previousLevel && previousLevel > 0 {
		uc.Events.NotifyLevelUp(profile.Username, profile.Level)
	}
	return nil
}

// SaveHistory appends one entry, enforcing the category cap and the
// duplicate-image guard.
func (uc *SyncUseCase) SaveHistory(entry *entities.HistoryEntry) error {
	if entry.Username == "" {
		return errors.New("username is required")
	}
	if !entities.ValidCategory(entry.Category) {
		return errors.New("unknown history category")
	}
	if entry.ImageHash != "" {
		dup, err := uc.History.HasImageHash(entry.Username, entry.Category, entry.ImageHash)
		if err != nil {
			return err
		}
		if dup {
			return ErrDuplicateImage
		}
	}
	return uc.History.Append(entry)
}

// ClearHistory wipes one category for a user.
func (uc *SyncUseCase) ClearHistory(username, category string) error {
	if username == "" {
		return errors.New("username is required")
	}
	if !entities.ValidCategory(category) {
		return errors.New("unknown history category")
	}
	return uc.History.Clear(username, category)
}

// SaveGoal upserts one goal by id.
func (uc *SyncUseCase) SaveGoal(goal *entities.Goal) error {
	if goal.Username == "" {
		return errors.New("username is required")
	}
	if goal.Type == "" {
		return errors.New("goal type is required")
	}
	return uc.Goals.Upsert(goal)
}

// DeleteGoal removes a goal by id.
func (uc *SyncUseCase) DeleteGoal(id string) error {
	if id == "" {
		return errors.New("goal id is required")
	}
	return uc.Goals.Delete(id)
}
