package usecases

import (
	"vita-server/entities"
	"vita-server/repositories"
)

// DashboardRow is one user summary on the admin dashboard.
type DashboardRow struct {
	User    entities.User         `json:"user"`
	Profile *entities.UserProfile `json:"profile,omitempty"`
	Entries map[string]int        `json:"entries"`
}

type AdminUseCase struct {
	Users    repositories.UserRepository
	Profiles repositories.ProfileRepository
	History  repositories.HistoryRepository
}

func NewAdminUseCase(users repositories.UserRepository, profiles repositories.ProfileRepository, history repositories.HistoryRepository) *AdminUseCase {
	return &AdminUseCase{Users: users, Profiles: profiles, History: history}
}

// Dashboard bulk-fetches every user with profile and per-category counts.
func (uc *AdminUseCase) Dashboard() ([]DashboardRow, error) {
	users, err := uc.Users.GetAll()
	if err != nil {
		return nil, err
	}
	rows := make([]DashboardRow, 0, len(users))
	for _, u := range users {
		row := DashboardRow{User: u, Entries: map[string]int{}}
		if profile, err := uc.Profiles.GetByUsername(u.Username); err == nil {
			row.Profile = profile
		}
		if counts, err := uc.History.CountByCategory(u.Username); err == nil {
			row.Entries = counts
		}
		rows = append(rows, row)
	}
	return rows, nil
}
