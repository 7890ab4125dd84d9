package store

import (
	"context"
	"errors"

	"resource-portal/internal/apperr"
	"resource-portal/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ResourceStore struct {
	db     *gorm.DB
	logger *zap.Logger
}

func (s *ResourceStore) Create(ctx context.Context, res *models.Resource) error {
	if err := s.db.WithContext(ctx).Create(res).Error; err != nil {
		return apperr.Store("create resource", err)
	}
	return nil
}

func (s *ResourceStore) ByID(ctx context.Context, id string) (*models.Resource, error) {
	var res models.Resource
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&res).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, apperr.Store("get resource", err)
	}
	return &res, nil
}

// ListOwnedOrPublic returns resources the viewer created plus every public
// resource, newest first.
func (s *ResourceStore) ListOwnedOrPublic(ctx context.Context, viewerID string) ([]models.Resource, error) {
	var resources []models.Resource
	err := s.db.WithContext(ctx).
		Where("created_by = ? OR is_public = ?", viewerID, true).
		Order("created_at DESC, id ASC").
		Find(&resources).Error
	if err != nil {
		return nil, apperr.Store("list owned or public resources", err)
	}
	return resources, nil
}

func (s *ResourceStore) ListOwnedBy(ctx context.Context, userID string) ([]models.Resource, error) {
	var resources []models.Resource
	err := s.db.WithContext(ctx).
		Where("created_by = ?", userID).
		Order("created_at DESC, id ASC").
		Find(&resources).Error
	if err != nil {
		return nil, apperr.Store("list owned resources", err)
	}
	return resources, nil
}

// ListSharedWith returns resources granted to the user through direct
// Share rows.
func (s *ResourceStore) ListSharedWith(ctx context.Context, userID string) ([]models.Resource, error) {
	var resources []models.Resource
	err := s.db.WithContext(ctx).
		Joins("JOIN resource_shares ON resource_shares.resource_id = resources.id").
		Where("resource_shares.user_id = ?", userID).
		Where("resources.deleted_at IS NULL").
		Order("resources.created_at DESC, resources.id ASC").
		Find(&resources).Error
	if err != nil {
		return nil, apperr.Store("list direct-shared resources", err)
	}
	return resources, nil
}

// ListSharedWithGroups returns resources shared with any of the given
// groups. Callers skip the query entirely when the id set is empty.
func (s *ResourceStore) ListSharedWithGroups(ctx context.Context, groupIDs []string) ([]models.Resource, error) {
	if len(groupIDs) == 0 {
		return nil, nil
	}
	var resources []models.Resource
	err := s.db.WithContext(ctx).
		Joins("JOIN resource_group_shares ON resource_group_shares.resource_id = resources.id").
		Where("resource_group_shares.group_id IN ?", groupIDs).
		Where("resources.deleted_at IS NULL").
		Order("resources.created_at DESC, resources.id ASC").
		Find(&resources).Error
	if err != nil {
		return nil, apperr.Store("list group-shared resources", err)
	}
	return resources, nil
}

func (s *ResourceStore) Update(ctx context.Context, id string, updates map[string]interface{}) error {
	if err := s.db.WithContext(ctx).Model(&models.Resource{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return apperr.Store("update resource", err)
	}
	return nil
}

func (s *ResourceStore) Delete(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Resource{}).Error; err != nil {
		return apperr.Store("delete resource", err)
	}
	return nil
}

func (s *ResourceStore) IncrementDownloads(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Model(&models.Resource{}).
		Where("id = ?", id).
		UpdateColumn("downloads", gorm.Expr("downloads + 1")).Error
	if err != nil {
		return apperr.Store("increment downloads", err)
	}
	return nil
}

// CountInFolder reports how many live resources sit directly in a folder.
func (s *ResourceStore) CountInFolder(ctx context.Context, folderID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Resource{}).
		Where("folder_id = ?", folderID).
		Count(&count).Error
	if err != nil {
		return 0, apperr.Store("count resources in folder", err)
	}
	return count, nil
}
