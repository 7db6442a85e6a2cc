package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HealthGroup is a named cohort joined by code. Membership lives in
// GroupMember and is resolved server-side only.
type HealthGroup struct {
	ID        string         `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name      string         `gorm:"not null" json:"name"`
	JoinCode  string         `gorm:"uniqueIndex;type:varchar(8)" json:"join_code"`
	CreatedBy string         `gorm:"index" json:"created_by"`
	CreatedAt string         `json:"created_at"`
	UpdatedAt string         `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (g *HealthGroup) BeforeCreate(tx *gorm.DB) (err error) {
	if g.ID == "" {
		g.ID = uuid.New().String()
	}
	now := time.Now().UTC().Format(time.RFC3339)
	g.CreatedAt = now
	g.UpdatedAt = now
	return nil
}

type GroupMember struct {
	ID       string `gorm:"primaryKey;type:varchar(36)" json:"id"`
	GroupID  string `gorm:"index;type:varchar(36);not null" json:"group_id"`
	Username string `gorm:"index;not null" json:"username"`
	JoinedAt string `json:"joined_at"`
}

func (m *GroupMember) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.JoinedAt == "" {
		m.JoinedAt = time.Now().UTC().Format(time.RFC3339)
	}
	return nil
}
