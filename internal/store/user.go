package store

import (
	"context"
	"errors"

	"resource-portal/internal/apperr"
	"resource-portal/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type UserStore struct {
	db     *gorm.DB
	logger *zap.Logger
}

func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return apperr.Store("create user", err)
	}
	return nil
}

func (s *UserStore) ByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, apperr.Store("get user", err)
	}
	return &user, nil
}

func (s *UserStore) ByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, apperr.Store("get user by email", err)
	}
	return &user, nil
}

// Search finds users by email or full name substring, capped for the
// member-picker UI.
func (s *UserStore) Search(ctx context.Context, query string, limit int) ([]models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).
		Where("email ILIKE ? OR full_name ILIKE ?", "%"+query+"%", "%"+query+"%").
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, apperr.Store("search users", err)
	}
	return users, nil
}

// IDsByEmails resolves known emails to user ids; unknown emails are
// silently dropped, matching the member-invite flow.
func (s *UserStore) IDsByEmails(ctx context.Context, emails []string) ([]string, error) {
	if len(emails) == 0 {
		return nil, nil
	}
	var ids []string
	err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("email IN ?", emails).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, apperr.Store("resolve user emails", err)
	}
	return ids, nil
}

func (s *UserStore) Update(ctx context.Context, id string, updates map[string]interface{}) error {
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return apperr.Store("update user", err)
	}
	return nil
}
