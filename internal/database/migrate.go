package database

import (
	"github.com/screenroom/backend/internal/models"
	"gorm.io/gorm"
)

// RunMigrations applies the schema for all domain models.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Film{},
		&models.CastCrew{},
		&models.Feedback{},
		&models.Review{},
		&models.Comment{},
		&models.WatchLog{},
	)
}
