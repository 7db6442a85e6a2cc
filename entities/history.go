package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// History categories. Each category is an independent newest-first list.
const (
	CategoryBMI      = "bmi"
	CategoryTDEE     = "tdee"
	CategoryFood     = "food"
	CategoryWater    = "water"
	CategoryCalorie  = "calorie"
	CategoryActivity = "activity"
	CategorySleep    = "sleep"
	CategoryMood     = "mood"
	CategoryHabit    = "habit"
	CategorySocial   = "social"
)

// MaxHistoryPerCategory caps each per-user per-category list; oldest
// entries beyond the cap are dropped silently.
const MaxHistoryPerCategory = 100

// Categories lists every known history category.
var Categories = []string{
	CategoryBMI, CategoryTDEE, CategoryFood, CategoryWater, CategoryCalorie,
	CategoryActivity, CategorySleep, CategoryMood, CategoryHabit, CategorySocial,
}

// ValidCategory reports whether c is a known history category.
func ValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// HistoryEntry is one append-only, timestamped record in a category list.
// Payload carries the category-specific fields as a JSON object.
type HistoryEntry struct {
	ID        string         `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Username  string         `gorm:"index;not null" json:"username"`
	Category  string         `gorm:"index;type:varchar(16);not null" json:"category"`
	Timestamp string         `gorm:"type:varchar(64)" json:"timestamp"`
	Payload   string         `gorm:"type:text" json:"payload"`
	ImageHash string         `gorm:"index;type:varchar(64)" json:"image_hash,omitempty"`
	CreatedAt string         `json:"created_at"`
	UpdatedAt string         `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (h *HistoryEntry) BeforeCreate(tx *gorm.DB) (err error) {
	if h.ID == "" {
		h.ID = uuid.New().String()
	}
	now := time.Now().UTC().Format(time.RFC3339)
	h.CreatedAt = now
	h.UpdatedAt = now
	if h.Timestamp == "" {
		h.Timestamp = now
	}
	return nil
}
