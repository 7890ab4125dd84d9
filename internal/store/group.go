package store

import (
	"context"
	"errors"

	"resource-portal/internal/apperr"
	"resource-portal/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type GroupStore struct {
	db     *gorm.DB
	logger *zap.Logger
}

func (s *GroupStore) Create(ctx context.Context, group *models.Group) error {
	if err := s.db.WithContext(ctx).Create(group).Error; err != nil {
		return apperr.Store("create group", err)
	}
	return nil
}

func (s *GroupStore) ByID(ctx context.Context, id string) (*models.Group, error) {
	var group models.Group
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&group).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, apperr.Store("get group", err)
	}
	return &group, nil
}

// ListWorkgroups returns every workgroup, newest first. Other group types
// do not participate in sharing.
func (s *GroupStore) ListWorkgroups(ctx context.Context) ([]models.Group, error) {
	var groups []models.Group
	err := s.db.WithContext(ctx).
		Where("type = ?", models.GroupTypeWorkgroup).
		Order("created_at DESC").
		Find(&groups).Error
	if err != nil {
		return nil, apperr.Store("list workgroups", err)
	}
	return groups, nil
}

func (s *GroupStore) Update(ctx context.Context, id string, updates map[string]interface{}) error {
	if err := s.db.WithContext(ctx).Model(&models.Group{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return apperr.Store("update group", err)
	}
	return nil
}

func (s *GroupStore) Delete(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Group{}).Error; err != nil {
		return apperr.Store("delete group", err)
	}
	return nil
}

// MembersOf returns the current membership rows of the given groups. This
// is the snapshot the fan-out engine copies into Share rows.
func (s *GroupStore) MembersOf(ctx context.Context, groupIDs []string) ([]models.GroupMembership, error) {
	if len(groupIDs) == 0 {
		return nil, nil
	}
	var members []models.GroupMembership
	if err := s.db.WithContext(ctx).Where("group_id IN ?", groupIDs).Find(&members).Error; err != nil {
		return nil, apperr.Store("list group members", err)
	}
	return members, nil
}

// GroupIDsForUser returns the ids of every group the user belongs to.
func (s *GroupStore) GroupIDsForUser(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := s.db.WithContext(ctx).Model(&models.GroupMembership{}).
		Where("user_id = ?", userID).
		Pluck("group_id", &ids).Error
	if err != nil {
		return nil, apperr.Store("list groups for user", err)
	}
	return ids, nil
}

func (s *GroupStore) InsertMembers(ctx context.Context, members []models.GroupMembership) error {
	if len(members) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).Create(&members).Error; err != nil {
		return apperr.Store("insert group members", err)
	}
	return nil
}

func (s *GroupStore) DeleteMembers(ctx context.Context, groupID string) error {
	if err := s.db.WithContext(ctx).Where("group_id = ?", groupID).Delete(&models.GroupMembership{}).Error; err != nil {
		return apperr.Store("delete group members", err)
	}
	return nil
}
