package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
	RoleGuest = "guest"
)

// Auth providers
const (
	ProviderPassword = "password"
	ProviderLine     = "line"
	ProviderTelegram = "telegram"
	ProviderGuest    = "guest"
)

type User struct {
	ID           string `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Username     string `gorm:"uniqueIndex;not null" json:"username"`
	DisplayName  string `json:"display_name"`
	AvatarURL    string `json:"avatar_url"`
	Role         string `gorm:"type:varchar(16)" json:"role"`     // user, admin, guest
	Provider     string `gorm:"type:varchar(16)" json:"provider"` // password, line, telegram, guest
	Organization string `json:"organization"`
	PasswordHash string `gorm:"type:varchar(64)" json:"-"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	now := time.Now().UTC().Format(time.RFC3339)
	u.CreatedAt = now
	u.UpdatedAt = now
	if u.Role == "" {
		u.Role = RoleUser
	}
	if u.Provider == "" {
		u.Provider = ProviderPassword
	}
	return nil
}
