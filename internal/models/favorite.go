package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Favorite is a toggle relation: the row's existence means the user has
// favorited the resource. The unique index is the real guard against
// concurrent double-toggles.
type Favorite struct {
	ID         string    `json:"id" gorm:"type:uuid;primaryKey"`
	UserID     string    `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_favorite_user_resource"`
	ResourceID string    `json:"resource_id" gorm:"type:uuid;not null;uniqueIndex:idx_favorite_user_resource"`
	CreatedAt  time.Time `json:"created_at"`
}

func (f *Favorite) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	return nil
}

func (Favorite) TableName() string {
	return "favorites"
}
