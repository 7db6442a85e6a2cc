package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Goal is a user-defined target, upserted by id.
type Goal struct {
	ID        string         `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Username  string         `gorm:"index;not null" json:"username"`
	Type      string         `gorm:"type:varchar(32)" json:"type"` // weight, water, steps, sleep, ...
	Target    float64        `json:"target"`
	CreatedAt string         `json:"created_at"`
	UpdatedAt string         `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (g *Goal) BeforeCreate(tx *gorm.DB) (err error) {
	if g.ID == "" {
		g.ID = uuid.New().String()
	}
	now := time.Now().UTC().Format(time.RFC3339)
	g.CreatedAt = now
	g.UpdatedAt = now
	return nil
}
