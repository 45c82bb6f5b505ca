package service

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/screenroom/backend/internal/models"
)

// setupTestDB opens an isolated in-memory database and migrates the
// full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Film{},
		&models.CastCrew{},
		&models.Feedback{},
		&models.Review{},
		&models.Comment{},
		&models.WatchLog{},
	))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := models.User{
		Name:         "Test " + username,
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "not-a-real-hash",
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createTestFilm(t *testing.T, db *gorm.DB, creatorID uuid.UUID, duration int, mode models.FeedbackMode) *models.Film {
	t.Helper()

	film := models.Film{
		Title:        "Test Film",
		Duration:     duration,
		VideoURL:     "https://media.example.com/films/test.mp4",
		VideoKey:     "uploads/test/test.mp4",
		ThumbnailKey: "uploads/test/test.jpg",
		IsPublic:     true,
		FeedbackMode: mode,
		CreatorID:    creatorID,
	}
	require.NoError(t, db.Create(&film).Error)
	return &film
}
