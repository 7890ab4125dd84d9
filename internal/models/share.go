package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Share grants one user access to one resource. Rows are written wholesale
// by the fan-out engine: an edit deletes every row for the resource and
// reinserts the new grant set, never diffs.
type Share struct {
	ID         string    `json:"id" gorm:"type:uuid;primaryKey"`
	ResourceID string    `json:"resource_id" gorm:"type:uuid;not null;uniqueIndex:idx_share_resource_user"`
	UserID     string    `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_share_resource_user"`
	CreatedAt  time.Time `json:"created_at"`
}

func (s *Share) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}

func (Share) TableName() string {
	return "resource_shares"
}

// GroupShare records that a resource was shared with a group. It is an
// audit row for display; access itself comes from the Share rows produced
// by expanding the group's membership at share time. Later membership
// changes do not touch already-granted shares.
type GroupShare struct {
	ID         string    `json:"id" gorm:"type:uuid;primaryKey"`
	ResourceID string    `json:"resource_id" gorm:"type:uuid;not null;uniqueIndex:idx_group_share_resource_group"`
	GroupID    string    `json:"group_id" gorm:"type:uuid;not null;uniqueIndex:idx_group_share_resource_group"`
	CreatedAt  time.Time `json:"created_at"`
}

func (s *GroupShare) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}

func (GroupShare) TableName() string {
	return "resource_group_shares"
}
