package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Folder is a node in one of the portal's folder silos. The (Category,
// IsGlobal) pair decides the silo: global root (is_global=true,
// category=nil), a named system category (is_global=false, category set),
// a user-private tree (is_global=false, category=nil) or a synthetic
// per-view silo (category "favorites_view" or "shared_view"). Parent and
// child must live in the same silo.
type Folder struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	ParentID  *string   `json:"parent_id" gorm:"type:uuid;index"`
	UserID    string    `json:"user_id" gorm:"type:uuid;not null;index"`
	IsGlobal  bool      `json:"is_global"`
	Category  *string   `json:"category" gorm:"index"`
	CreatedAt time.Time `json:"created_at"`
}

func (f *Folder) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	return nil
}

func (Folder) TableName() string {
	return "folders"
}
