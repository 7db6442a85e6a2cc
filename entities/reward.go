package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Reward is one redeemable item in the catalog.
type Reward struct {
	ID        string `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name      string `gorm:"not null" json:"name"`
	CostXP    int    `json:"cost_xp"`
	Stock     int    `json:"stock"` // -1 means unlimited
	Active    bool   `json:"active"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func (r *Reward) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	now := time.Now().UTC().Format(time.RFC3339)
	r.CreatedAt = now
	r.UpdatedAt = now
	return nil
}

// RedemptionEntry is one line in the append-only reward-for-XP ledger.
type RedemptionEntry struct {
	ID         string `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Username   string `gorm:"index;not null" json:"username"`
	RewardID   string `gorm:"index;type:varchar(36)" json:"reward_id"`
	RewardName string `json:"reward_name"`
	CostXP     int    `json:"cost_xp"`
	Timestamp  string `gorm:"type:varchar(64)" json:"timestamp"`
	CreatedAt  string `json:"created_at"`
}

func (r *RedemptionEntry) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	now := time.Now().UTC().Format(time.RFC3339)
	r.CreatedAt = now
	if r.Timestamp == "" {
		r.Timestamp = now
	}
	return nil
}
