package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/screenroom/backend/internal/models"
	"github.com/screenroom/backend/internal/types"
	"gorm.io/gorm"
)

// StatsService computes film statistics at read time from the source
// tables. There are no stored counters and no cache, so results are
// consistent with the tables at the instant of the read.
type StatsService struct {
	db *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{db: db}
}

// StatsForFilm returns view, review, feedback and comment counts plus
// the mean review rating. AverageRating is nil when there are no
// reviews; it is never coerced to zero.
func (s *StatsService) StatsForFilm(ctx context.Context, filmID uuid.UUID) (*types.FilmStats, error) {
	var film models.Film
	if err := s.db.WithContext(ctx).First(&film, "id = ?", filmID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	db := s.db.WithContext(ctx)
	stats := &types.FilmStats{}

	if err := db.Model(&models.WatchLog{}).Where("film_id = ?", filmID).Count(&stats.Views).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Review{}).Where("film_id = ?", filmID).Count(&stats.ReviewCount).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Feedback{}).Where("film_id = ?", filmID).Count(&stats.FeedbackCount).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Comment{}).Where("film_id = ?", filmID).Count(&stats.CommentCount).Error; err != nil {
		return nil, err
	}

	if stats.ReviewCount > 0 {
		var avg float64
		err := db.Model(&models.Review{}).
			Where("film_id = ?", filmID).
			Select("AVG(rating)").
			Scan(&avg).Error
		if err != nil {
			return nil, err
		}
		stats.AverageRating = &avg
	}

	return stats, nil
}
