package entities

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserProfile holds the mutable biometric and gamification record for one user.
// There is exactly one row per username; saves overwrite it in place.
type UserProfile struct {
	ID            string  `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Username      string  `gorm:"uniqueIndex;not null" json:"username"`
	Age           int     `json:"age"`
	Gender        string  `gorm:"type:varchar(16)" json:"gender"` // male, female
	WeightKg      float64 `json:"weight_kg"`
	HeightCm      float64 `json:"height_cm"`
	WaistCm       float64 `json:"waist_cm"`
	HipCm         float64 `json:"hip_cm"`
	ActivityLevel float64 `json:"activity_level"` // 1.2 - 1.9 multiplier
	Conditions    string  `gorm:"type:text" json:"conditions"` // JSON array of condition names
	XP            int     `json:"xp"`
	Level         int     `json:"level"`
	Badges        string  `gorm:"type:text" json:"badges"` // JSON array of badge ids
	CustomPrompt  string  `gorm:"type:text" json:"custom_prompt"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

// BadgeList decodes the badge-id array. An empty or malformed column
// reads as no badges.
func (p *UserProfile) BadgeList() []string {
	var badges []string
	if p.Badges == "" {
		return badges
	}
	_ = json.Unmarshal([]byte(p.Badges), &badges)
	return badges
}

// AddBadges appends ids to the badge array. Callers dedupe; unlocked
// badges are never revoked.
func (p *UserProfile) AddBadges(ids []string) {
	if len(ids) == 0 {
		return
	}
	merged := append(p.BadgeList(), ids...)
	raw, err := json.Marshal(merged)
	if err != nil {
		return
	}
	p.Badges = string(raw)
}

func (p *UserProfile) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now().UTC().Format(time.RFC3339)
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Level == 0 {
		p.Level = 1
	}
	if p.Conditions == "" {
		p.Conditions = "[]"
	}
	if p.Badges == "" {
		p.Badges = "[]"
	}
	return nil
}
