package store

import (
	"context"
	"errors"

	"resource-portal/internal/apperr"
	"resource-portal/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type FolderStore struct {
	db     *gorm.DB
	logger *zap.Logger
}

func (s *FolderStore) Create(ctx context.Context, folder *models.Folder) error {
	if err := s.db.WithContext(ctx).Create(folder).Error; err != nil {
		return apperr.Store("create folder", err)
	}
	return nil
}

func (s *FolderStore) ByID(ctx context.Context, id string) (*models.Folder, error) {
	var folder models.Folder
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&folder).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, apperr.Store("get folder", err)
	}
	return &folder, nil
}

// ListAll returns every folder, for contexts that filter in memory with the
// scope resolver.
func (s *FolderStore) ListAll(ctx context.Context) ([]models.Folder, error) {
	var folders []models.Folder
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&folders).Error; err != nil {
		return nil, apperr.Store("list folders", err)
	}
	return folders, nil
}

// ListPrivate returns the user's private silo: is_global=false and no
// category label.
func (s *FolderStore) ListPrivate(ctx context.Context, userID string) ([]models.Folder, error) {
	var folders []models.Folder
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND is_global = ? AND category IS NULL", userID, false).
		Order("name ASC").
		Find(&folders).Error
	if err != nil {
		return nil, apperr.Store("list private folders", err)
	}
	return folders, nil
}

// ListByCategory returns the user's folders in one synthetic or named silo.
func (s *FolderStore) ListByCategory(ctx context.Context, userID, category string) ([]models.Folder, error) {
	var folders []models.Folder
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND category = ?", userID, category).
		Order("name ASC").
		Find(&folders).Error
	if err != nil {
		return nil, apperr.Store("list folders by category", err)
	}
	return folders, nil
}

func (s *FolderStore) Rename(ctx context.Context, id, name string) error {
	if err := s.db.WithContext(ctx).Model(&models.Folder{}).Where("id = ?", id).Update("name", name).Error; err != nil {
		return apperr.Store("rename folder", err)
	}
	return nil
}

func (s *FolderStore) Delete(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Folder{}).Error; err != nil {
		return apperr.Store("delete folder", err)
	}
	return nil
}

// CountChildren reports how many folders have the given folder as parent.
func (s *FolderStore) CountChildren(ctx context.Context, id string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Folder{}).
		Where("parent_id = ?", id).
		Count(&count).Error
	if err != nil {
		return 0, apperr.Store("count child folders", err)
	}
	return count, nil
}
