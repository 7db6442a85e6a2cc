package repositories

import (
	"errors"

	"vita-server/db"
	"vita-server/entities"

	"gorm.io/gorm"
)

type rewardPgRepository struct {
	db db.Database
}

func NewRewardPgRepository(database db.Database) RewardRepository {
	return &rewardPgRepository{db: database}
}

func (r *rewardPgRepository) Create(reward *entities.Reward) error {
	return r.db.GetDB().Create(reward).Error
}

func (r *rewardPgRepository) GetByID(id string) (*entities.Reward, error) {
	var reward entities.Reward
	err := r.db.GetDB().Where("id = ?", id).First(&reward).Error
	if err != nil {
		return nil, err
	}
	return &reward, nil
}

func (r *rewardPgRepository) ListActive() ([]entities.Reward, error) {
	var rewards []entities.Reward
	err := r.db.GetDB().Where("active = ?", true).Order("cost_xp ASC").Find(&rewards).Error
	return rewards, err
}

// DecrementStock lowers stock by one; unlimited (-1) rows are untouched.
func (r *rewardPgRepository) DecrementStock(id string) error {
	result := r.db.GetDB().Model(&entities.Reward{}).
		Where("id = ? AND stock > 0", id).
		UpdateColumn("stock", gorm.Expr("stock - 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var reward entities.Reward
		if err := r.db.GetDB().Where("id = ?", id).First(&reward).Error; err != nil {
			return err
		}
		if reward.Stock != -1 {
			return errors.New("reward out of stock")
		}
	}
	return nil
}

func (r *rewardPgRepository) AppendRedemption(entry *entities.RedemptionEntry) error {
	return r.db.GetDB().Create(entry).Error
}

func (r *rewardPgRepository) RedemptionsByUser(username string) ([]entities.RedemptionEntry, error) {
	var entries []entities.RedemptionEntry
	err := r.db.GetDB().Where("username = ?", username).Order("timestamp DESC").Find(&entries).Error
	return entries, err
}

func (r *rewardPgRepository) CountRedemptions(username string) (int64, error) {
	var count int64
	err := r.db.GetDB().Model(&entities.RedemptionEntry{}).
		Where("username = ?", username).Count(&count).Error
	return count, err
}
