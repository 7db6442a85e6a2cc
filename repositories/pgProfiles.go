package repositories

import (
	"time"

	"vita-server/db"
	"vita-server/entities"
)

type profilePgRepository struct {
	db db.Database
}

func NewProfilePgRepository(database db.Database) ProfileRepository {
	return &profilePgRepository{db: database}
}

// Upsert overwrites the existing profile row for the username, or creates one.
func (r *profilePgRepository) Upsert(profile *entities.UserProfile) error {
	var existing entities.UserProfile
	err := r.db.GetDB().Where("username = ?", profile.Username).First(&existing).Error
	if err != nil {
		return r.db.GetDB().Create(profile).Error
	}
	profile.ID = existing.ID
	profile.CreatedAt = existing.CreatedAt
	profile.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	return r.db.GetDB().Save(profile).Error
}

func (r *profilePgRepository) GetByUsername(username string) (*entities.UserProfile, error) {
	var profile entities.UserProfile
	err := r.db.GetDB().Where("username = ?", username).First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profilePgRepository) GetAll() ([]entities.UserProfile, error) {
	var profiles []entities.UserProfile
	err := r.db.GetDB().Find(&profiles).Error
	return profiles, err
}

func (r *profilePgRepository) TopByXP(limit int) ([]entities.UserProfile, error) {
	var profiles []entities.UserProfile
	err := r.db.GetDB().Order("xp DESC").Limit(limit).Find(&profiles).Error
	return profiles, err
}

func (r *profilePgRepository) TopByXPIn(usernames []string, limit int) ([]entities.UserProfile, error) {
	var profiles []entities.UserProfile
	err := r.db.GetDB().Where("username IN ?", usernames).Order("xp DESC").Limit(limit).Find(&profiles).Error
	return profiles, err
}
