package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Resource is a shared file or link. Visibility is either public
// (is_public=true, derived once at creation) or governed by Share and
// GroupShare rows. is_public is never recomputed when shares change later.
type Resource struct {
	ID            string         `json:"id" gorm:"type:uuid;primaryKey"`
	Title         string         `json:"title" gorm:"not null"`
	Description   string         `json:"description"`
	Category      string         `json:"category" gorm:"index"`
	Tags          StringList     `json:"tags" gorm:"type:text"`
	FileURL       string         `json:"file_url"`
	FilePath      string         `json:"file_path"`
	FileType      string         `json:"file_type"`
	FileSize      int64          `json:"file_size"`
	DominantColor string         `json:"dominant_color"`
	CreatedBy     string         `json:"created_by" gorm:"type:uuid;not null;index"`
	IsPublic      bool           `json:"is_public"`
	FolderID      *string        `json:"folder_id" gorm:"type:uuid;index"`
	Version       int            `json:"version" gorm:"default:1"`
	Downloads     int64          `json:"downloads" gorm:"default:0"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`
}

func (r *Resource) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for the Resource model
func (Resource) TableName() string {
	return "resources"
}

// StringList stores an ordered list of strings as a JSON column so the same
// model works on postgres and sqlite.
type StringList []string

// Scan implements the sql.Scanner interface
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan StringList value")
	}

	if len(bytes) == 0 {
		*l = nil
		return nil
	}

	var result []string
	if err := json.Unmarshal(bytes, &result); err != nil {
		return fmt.Errorf("unmarshal StringList: %w", err)
	}
	*l = result
	return nil
}

// Value implements the driver.Valuer interface
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}
