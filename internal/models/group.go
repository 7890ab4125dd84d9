package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GroupTypeWorkgroup is the only group type the sharing engine handles.
const GroupTypeWorkgroup = "workgroup"

type Group struct {
	ID          string    `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	Type        string    `json:"type" gorm:"default:workgroup;index"`
	CreatedBy   string    `json:"created_by" gorm:"type:uuid;not null"`
	CreatedAt   time.Time `json:"created_at"`
}

func (g *Group) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.New().String()
	}
	return nil
}

func (Group) TableName() string {
	return "groups"
}

// GroupMembership joins a user to a group, one row per pair. Editing a
// group replaces the full membership set, always re-adding the acting user.
type GroupMembership struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	GroupID   string    `json:"group_id" gorm:"type:uuid;not null;uniqueIndex:idx_group_member"`
	UserID    string    `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_group_member"`
	CreatedAt time.Time `json:"created_at"`
}

func (m *GroupMembership) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}

func (GroupMembership) TableName() string {
	return "group_members"
}
