// Package store is the entity store adapter: typed repositories over gorm
// for the five portal entities plus users. All join normalization happens
// here so the core packages only ever see strict single values or slices.
package store

import (
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Store struct {
	Resources *ResourceStore
	Folders   *FolderStore
	Shares    *ShareStore
	Groups    *GroupStore
	Favorites *FavoriteStore
	Users     *UserStore
}

func New(db *gorm.DB, log *zap.Logger) *Store {
	return &Store{
		Resources: &ResourceStore{db: db, logger: log},
		Folders:   &FolderStore{db: db, logger: log},
		Shares:    &ShareStore{db: db, logger: log},
		Groups:    &GroupStore{db: db, logger: log},
		Favorites: &FavoriteStore{db: db, logger: log},
		Users:     &UserStore{db: db, logger: log},
	}
}
