package repositories

import (
	"vita-server/db"
	"vita-server/entities"
)

type groupPgRepository struct {
	db db.Database
}

func NewGroupPgRepository(database db.Database) GroupRepository {
	return &groupPgRepository{db: database}
}

func (r *groupPgRepository) Create(group *entities.HealthGroup) error {
	return r.db.GetDB().Create(group).Error
}

func (r *groupPgRepository) GetByID(id string) (*entities.HealthGroup, error) {
	var group entities.HealthGroup
	err := r.db.GetDB().Where("id = ?", id).First(&group).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *groupPgRepository) GetByJoinCode(code string) (*entities.HealthGroup, error) {
	var group entities.HealthGroup
	err := r.db.GetDB().Where("join_code = ?", code).First(&group).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *groupPgRepository) GetByUsername(username string) ([]entities.HealthGroup, error) {
	var groups []entities.HealthGroup
	err := r.db.GetDB().
		Joins("JOIN group_members ON group_members.group_id = health_groups.id").
		Where("group_members.username = ?", username).
		Find(&groups).Error
	return groups, err
}

func (r *groupPgRepository) AddMember(member *entities.GroupMember) error {
	return r.db.GetDB().Create(member).Error
}

func (r *groupPgRepository) RemoveMember(groupID, username string) error {
	return r.db.GetDB().Where("group_id = ? AND username = ?", groupID, username).
		Delete(&entities.GroupMember{}).Error
}

func (r *groupPgRepository) IsMember(groupID, username string) (bool, error) {
	var count int64
	err := r.db.GetDB().Model(&entities.GroupMember{}).
		Where("group_id = ? AND username = ?", groupID, username).
		Count(&count).Error
	return count > 0, err
}

func (r *groupPgRepository) Members(groupID string) ([]entities.GroupMember, error) {
	var members []entities.GroupMember
	err := r.db.GetDB().Where("group_id = ?", groupID).Order("joined_at ASC").Find(&members).Error
	return members, err
}
