package repositories

import "vita-server/entities"

type UserRepository interface {
	Create(user *entities.User) error
	GetByUsername(username string) (*entities.User, error)
	GetAll() ([]entities.User, error)
	Update(user *entities.User) error
}

type ProfileRepository interface {
	Upsert(profile *entities.UserProfile) error
	GetByUsername(username string) (*entities.UserProfile, error)
	GetAll() ([]entities.UserProfile, error)
	TopByXP(limit int) ([]entities.UserProfile, error)
	TopByXPIn(usernames []string, limit int) ([]entities.UserProfile, error)
}

type HistoryRepository interface {
	Append(entry *entities.HistoryEntry) error
	GetByUser(username string) ([]entities.HistoryEntry, error)
	GetByUserCategory(username, category string) ([]entities.HistoryEntry, error)
	Clear(username, category string) error
	HasImageHash(username, category, hash string) (bool, error)
	CountByCategory(username string) (map[string]int, error)
}

type GoalRepository interface {
	Upsert(goal *entities.Goal) error
	GetByUser(username string) ([]entities.Goal, error)
	Delete(id string) error
}

type GroupRepository interface {
	Create(group *entities.HealthGroup) error
	GetByID(id string) (*entities.HealthGroup, error)
	GetByJoinCode(code string) (*entities.HealthGroup, error)
	GetByUsername(username string) ([]entities.HealthGroup, error)
	AddMember(member *entities.GroupMember) error
	RemoveMember(groupID, username string) error
	IsMember(groupID, username string) (bool, error)
	Members(groupID string) ([]entities.GroupMember, error)
}

type RewardRepository interface {
	Create(reward *entities.Reward) error
	GetByID(id string) (*entities.Reward, error)
	ListActive() ([]entities.Reward, error)
	DecrementStock(id string) error
	AppendRedemption(entry *entities.RedemptionEntry) error
	RedemptionsByUser(username string) ([]entities.RedemptionEntry, error)
	CountRedemptions(username string) (int64, error)
}
