package store

import (
	"context"
	"errors"

	"resource-portal/internal/apperr"
	"resource-portal/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type FavoriteStore struct {
	db     *gorm.DB
	logger *zap.Logger
}

// Get returns the favorite row for the pair, or nil when absent.
func (s *FavoriteStore) Get(ctx context.Context, userID, resourceID string) (*models.Favorite, error) {
	var fav models.Favorite
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND resource_id = ?", userID, resourceID).
		First(&fav).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Store("get favorite", err)
	}
	return &fav, nil
}

func (s *FavoriteStore) Insert(ctx context.Context, userID, resourceID string) error {
	fav := models.Favorite{UserID: userID, ResourceID: resourceID}
	if err := s.db.WithContext(ctx).Create(&fav).Error; err != nil {
		return apperr.Store("insert favorite", err)
	}
	return nil
}

func (s *FavoriteStore) Delete(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Favorite{}).Error; err != nil {
		return apperr.Store("delete favorite", err)
	}
	return nil
}

// ResourceIDsForUser returns the set of resource ids the user favorited,
// used as the is_favorite overlay during aggregation.
func (s *FavoriteStore) ResourceIDsForUser(ctx context.Context, userID string) (map[string]struct{}, error) {
	var ids []string
	err := s.db.WithContext(ctx).Model(&models.Favorite{}).
		Where("user_id = ?", userID).
		Pluck("resource_id", &ids).Error
	if err != nil {
		return nil, apperr.Store("list favorite ids", err)
	}
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}

// ListResourcesFor returns the live resources the user has favorited,
// newest first.
func (s *FavoriteStore) ListResourcesFor(ctx context.Context, userID string) ([]models.Resource, error) {
	var resources []models.Resource
	err := s.db.WithContext(ctx).Model(&models.Resource{}).
		Joins("JOIN favorites ON favorites.resource_id = resources.id").
		Where("favorites.user_id = ?", userID).
		Where("resources.deleted_at IS NULL").
		Order("resources.created_at DESC, resources.id ASC").
		Find(&resources).Error
	if err != nil {
		return nil, apperr.Store("list favorite resources", err)
	}
	return resources, nil
}
