package store

import (
	"context"

	"resource-portal/internal/apperr"
	"resource-portal/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ShareStore struct {
	db     *gorm.DB
	logger *zap.Logger
}

func (s *ShareStore) ListForResource(ctx context.Context, resourceID string) ([]models.Share, error) {
	var shares []models.Share
	if err := s.db.WithContext(ctx).Where("resource_id = ?", resourceID).Find(&shares).Error; err != nil {
		return nil, apperr.Store("list shares for resource", err)
	}
	return shares, nil
}

func (s *ShareStore) ListForUser(ctx context.Context, userID string) ([]models.Share, error) {
	var shares []models.Share
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&shares).Error; err != nil {
		return nil, apperr.Store("list shares for user", err)
	}
	return shares, nil
}

func (s *ShareStore) Insert(ctx context.Context, shares []models.Share) error {
	if len(shares) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).Create(&shares).Error; err != nil {
		return apperr.Store("insert shares", err)
	}
	return nil
}

func (s *ShareStore) DeleteForResource(ctx context.Context, resourceID string) error {
	if err := s.db.WithContext(ctx).Where("resource_id = ?", resourceID).Delete(&models.Share{}).Error; err != nil {
		return apperr.Store("delete shares for resource", err)
	}
	return nil
}

func (s *ShareStore) ListGroupSharesForResource(ctx context.Context, resourceID string) ([]models.GroupShare, error) {
	var shares []models.GroupShare
	if err := s.db.WithContext(ctx).Where("resource_id = ?", resourceID).Find(&shares).Error; err != nil {
		return nil, apperr.Store("list group shares for resource", err)
	}
	return shares, nil
}

func (s *ShareStore) InsertGroupShares(ctx context.Context, shares []models.GroupShare) error {
	if len(shares) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).Create(&shares).Error; err != nil {
		return apperr.Store("insert group shares", err)
	}
	return nil
}

func (s *ShareStore) DeleteGroupSharesForResource(ctx context.Context, resourceID string) error {
	if err := s.db.WithContext(ctx).Where("resource_id = ?", resourceID).Delete(&models.GroupShare{}).Error; err != nil {
		return apperr.Store("delete group shares for resource", err)
	}
	return nil
}
