package usecases

import (
	"crypto/rand"
	"errors"

	"vita-server/entities"
	"vita-server/repositories"
)

type GroupUseCase struct {
	Groups repositories.GroupRepository
}

func NewGroupUseCase(groups repositories.GroupRepository) *GroupUseCase {
	return &GroupUseCase{Groups: groups}
}

// join codes avoid 0/O and 1/I confusion
const joinCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func newJoinCode() string {
	b := make([]byte, 6)
	_, _ = rand.Read(b)
	for i := range b {
		b[i] = joinCodeAlphabet[int(b[i])%len(joinCodeAlphabet)]
	}
	return string(b)
}

// Create makes a group with a fresh join code and adds the creator.
func (uc *GroupUseCase) Create(name, creator string) (*entities.HealthGroup, error) {
	if name == "" {
		return nil, errors.New("group name is required")
	}
	if creator == "" {
		return nil, errors.New("creator username is required")
	}
	group := &entities.HealthGroup{
		Name:      name,
		JoinCode:  newJoinCode(),
		CreatedBy: creator,
	}
	if err := uc.Groups.Create(group); err != nil {
		return nil, err
	}
	member := &entities.GroupMember{GroupID: group.ID, Username: creator}
	if err := uc.Groups.AddMember(member); err != nil {
		return nil, err
	}
	return group, nil
}

// Join adds a user to the group behind a join code.
func (uc *GroupUseCase) Join(joinCode, username string) (*entities.HealthGroup, error) {
	if joinCode == "" || username == "" {
		return nil, errors.New("join code and username are required")
	}
	group, err := uc.Groups.GetByJoinCode(joinCode)
	if err != nil {
		return nil, errors.New("group not found")
	}
	already, err := uc.Groups.IsMember(group.ID, username)
	if err != nil {
		return nil, err
	}
	if already {
		return nil, errors.New("already a member of this group")
	}
	member := &entities.GroupMember{GroupID: group.ID, Username: username}
	if err := uc.Groups.AddMember(member); err != nil {
		return nil, err
	}
	return group, nil
}

// Leave removes a user from a group.
func (uc *GroupUseCase) Leave(groupID, username string) error {
	if groupID == "" || username == "" {
		return errors.New("group id and username are required")
	}
	member, err := uc.Groups.IsMember(groupID, username)
	if err != nil {
		return err
	}
	if !member {
		return errors.New("not a member of this group")
	}
	return uc.Groups.RemoveMember(groupID, username)
}

// MyGroups lists the groups a user belongs to.
func (uc *GroupUseCase) MyGroups(username string) ([]entities.HealthGroup, error) {
	if username == "" {
		return nil, errors.New("username is required")
	}
	return uc.Groups.GetByUsername(username)
}

// Members lists a group's membership; only members may ask.
func (uc *GroupUseCase) Members(groupID, requester string) ([]entities.GroupMember, error) {
	if groupID == "" {
		return nil, errors.New("group id is required")
	}
	member, err := uc.Groups.IsMember(groupID, requester)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, errors.New("not a member of this group")
	}
	return uc.Groups.Members(groupID)
}
