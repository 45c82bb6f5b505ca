package service

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/screenroom/backend/internal/models"
	"github.com/screenroom/backend/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ObjectStorage is the slice of object-store behavior the film service
// needs for media cleanup.
type ObjectStorage interface {
	DeleteObject(ctx context.Context, objectKey string) error
}

// FilmService handles film record operations
type FilmService struct {
	db      *gorm.DB
	storage ObjectStorage
}

// NewFilmService creates a new FilmService instance. storage may be nil
// when no object store is configured; deletion then skips media cleanup.
func NewFilmService(db *gorm.DB, storage ObjectStorage) *FilmService {
	return &FilmService{
		db:      db,
		storage: storage,
	}
}

// CreateFilm persists a new film and its cast and crew entries.
func (s *FilmService) CreateFilm(ctx context.Context, req *types.CreateFilmRequest, creatorID uuid.UUID) (*models.Film, error) {
	mode := req.FeedbackMode
	if mode == "" {
		mode = models.FeedbackModeOpen
	}
	if !models.ValidFeedbackMode(mode) {
		return nil, validationError("unknown feedback mode %q", mode)
	}

	film := models.Film{
		Title:        req.Title,
		Description:  req.Description,
		Genre:        req.Genre,
		Duration:     req.Duration,
		VideoURL:     req.VideoURL,
		VideoKey:     req.VideoKey,
		ThumbnailURL: req.ThumbnailURL,
		ThumbnailKey: req.ThumbnailKey,
		Tags:         models.JSONBStringArray(req.Tags),
		IsPublic:     true,
		FeedbackMode: mode,
		CreatorNote:  req.CreatorNote,
		CreatorID:    creatorID,
	}
	if err := s.db.WithContext(ctx).Create(&film).Error; err != nil {
		return nil, err
	}

	for _, person := range req.CastCrew {
		entry := models.CastCrew{
			FilmID: film.ID,
			Name:   person.Name,
			Role:   person.Role,
		}
		if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
			return nil, err
		}
	}

	if err := s.db.WithContext(ctx).Preload("Creator").First(&film, "id = ?", film.ID).Error; err != nil {
		return nil, err
	}
	return &film, nil
}

// GetFilm retrieves a film with its creator.
func (s *FilmService) GetFilm(ctx context.Context, id uuid.UUID) (*models.Film, error) {
	var film models.Film
	if err := s.db.WithContext(ctx).Preload("Creator").First(&film, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &film, nil
}

// ListByCreator returns all films owned by a creator, newest first.
func (s *FilmService) ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]*models.Film, error) {
	var films []*models.Film
	err := s.db.WithContext(ctx).
		Preload("Creator").
		Where("creator_id = ?", creatorID).
		Order("created_at DESC").
		Find(&films).Error
	if err != nil {
		return nil, err
	}
	return films, nil
}

// DeleteFilm removes a film and all dependent records. Only the creator
// may delete. Media objects are removed from storage best-effort:
// storage failures are logged and never block the database deletion.
func (s *FilmService) DeleteFilm(ctx context.Context, id, requesterID uuid.UUID) (*types.DeletedCounts, error) {
	var film models.Film
	if err := s.db.WithContext(ctx).First(&film, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if film.CreatorID != requesterID {
		return nil, ErrPermissionDenied
	}

	counts := &types.DeletedCounts{}
	db := s.db.WithContext(ctx)
	if err := db.Model(&models.Feedback{}).Where("film_id = ?", id).Count(&counts.Feedback).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Review{}).Where("film_id = ?", id).Count(&counts.Reviews).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Comment{}).Where("film_id = ?", id).Count(&counts.Comments).Error; err != nil {
		return nil, err
	}

	// Storage cleanup first, intentionally outside the transaction.
	if s.storage != nil {
		for _, key := range []string{film.VideoKey, film.ThumbnailKey} {
			if key == "" {
				continue
			}
			if err := s.storage.DeleteObject(ctx, key); err != nil {
				log.Printf("[FilmService] failed to delete object %s: %v", key, err)
			}
		}
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{
			&models.Feedback{}, &models.Review{}, &models.Comment{},
			&models.WatchLog{}, &models.CastCrew{},
		} {
			if err := tx.Unscoped().Where("film_id = ?", id).Delete(model).Error; err != nil {
				return err
			}
		}
		return tx.Unscoped().Delete(&models.Film{}, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}

	return counts, nil
}

// RecordView appends a watch log entry for the film.
func (s *FilmService) RecordView(ctx context.Context, filmID uuid.UUID, userID *uuid.UUID) error {
	if _, err := s.GetFilm(ctx, filmID); err != nil {
		return err
	}
	entry := models.WatchLog{
		FilmID: filmID,
		UserID: userID,
	}
	return s.db.WithContext(ctx).Create(&entry).Error
}

// SubmitReview records a rating for a film, one per (user, film) pair;
// resubmitting replaces the previous rating.
func (s *FilmService) SubmitReview(ctx context.Context, filmID, userID uuid.UUID, rating int, content string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, validationError("rating must be between 1 and 5, got %d", rating)
	}
	if _, err := s.GetFilm(ctx, filmID); err != nil {
		return nil, err
	}

	review := models.Review{
		FilmID:  filmID,
		UserID:  userID,
		Rating:  rating,
		Content: content,
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "film_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"rating", "content", "updated_at"}),
	}).Create(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}
