package repositories

import (
	"time"

	"vita-server/db"
	"vita-server/entities"
)

type goalPgRepository struct {
	db db.Database
}

func NewGoalPgRepository(database db.Database) GoalRepository {
	return &goalPgRepository{db: database}
}

// Upsert creates the goal or overwrites the row with the same id.
func (r *goalPgRepository) Upsert(goal *entities.Goal) error {
	if goal.ID == "" {
		return r.db.GetDB().Create(goal).Error
	}
	var existing entities.Goal
	err := r.db.GetDB().Where("id = ?", goal.ID).First(&existing).Error
	if err != nil {
		return r.db.GetDB().Create(goal).Error
	}
	goal.CreatedAt = existing.CreatedAt
	goal.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	return r.db.GetDB().Save(goal).Error
}

func (r *goalPgRepository) GetByUser(username string) ([]entities.Goal, error) {
	var goals []entities.Goal
	err := r.db.GetDB().Where("username = ?", username).Order("created_at DESC").Find(&goals).Error
	return goals, err
}

func (r *goalPgRepository) Delete(id string) error {
	return r.db.GetDB().Where("id = ?", id).Delete(&entities.Goal{}).Error
}
