package database

import (
	"resource-portal/internal/config"
	"resource-portal/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Initialize(cfg *config.Config) error {
	var err error
	DB, err = gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		return err
	}
	return Migrate(DB)
}

// Migrate creates or updates the schema for every portal entity.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Resource{},
		&models.Folder{},
		&models.Share{},
		&models.GroupShare{},
		&models.Group{},
		&models.GroupMembership{},
		&models.Favorite{},
	)
}

func GetDB() *gorm.DB {
	return DB
}
