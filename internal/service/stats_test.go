package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/screenroom/backend/internal/models"
	"github.com/screenroom/backend/internal/types"
)

func TestStatsForFilmEmpty(t *testing.T) {
	db := setupTestDB(t)
	svc := NewStatsService(db)
	creator := createTestUser(t, db, "creator")
	film := createTestFilm(t, db, creator.ID, 300, models.FeedbackModeOpen)

	stats, err := svc.StatsForFilm(context.Background(), film.ID)
	require.NoError(t, err)

	assert.Nil(t, stats.AverageRating, "no reviews means nil, not zero")
	assert.EqualValues(t, 0, stats.Views)
	assert.EqualValues(t, 0, stats.ReviewCount)
	assert.EqualValues(t, 0, stats.FeedbackCount)
	assert.EqualValues(t, 0, stats.CommentCount)
}

func TestStatsForFilmAverageRating(t *testing.T) {
	db := setupTestDB(t)
	svc := NewStatsService(db)
	filmSvc := NewFilmService(db, nil)
	creator := createTestUser(t, db, "creator")
	film := createTestFilm(t, db, creator.ID, 300, models.FeedbackModeOpen)

	raterA := createTestUser(t, db, "rater_a")
	raterB := createTestUser(t, db, "rater_b")
	_, err := filmSvc.SubmitReview(context.Background(), film.ID, raterA.ID, 4, "")
	require.NoError(t, err)
	_, err = filmSvc.SubmitReview(context.Background(), film.ID, raterB.ID, 5, "")
	require.NoError(t, err)

	stats, err := svc.StatsForFilm(context.Background(), film.ID)
	require.NoError(t, err)
	require.NotNil(t, stats.AverageRating)
	assert.InDelta(t, 4.5, *stats.AverageRating, 1e-9)
	assert.EqualValues(t, 2, stats.ReviewCount)
}

func TestStatsForFilmCounts(t *testing.T) {
	db := setupTestDB(t)
	svc := NewStatsService(db)
	filmSvc := NewFilmService(db, nil)
	feedbackSvc := NewFeedbackService(db)
	creator := createTestUser(t, db, "creator")
	viewer := createTestUser(t, db, "viewer")
	film := createTestFilm(t, db, creator.ID, 300, models.FeedbackModeOpen)

	_, err := feedbackSvc.CreateFeedback(context.Background(), &types.CreateFeedbackRequest{
		FilmID:     film.ID,
		Content:    "counted",
		PromptType: models.PromptLiked,
	}, viewer.ID)
	require.NoError(t, err)

	// Private feedback still counts toward the aggregate.
	_, err = feedbackSvc.CreateFeedback(context.Background(), &types.CreateFeedbackRequest{
		FilmID:     film.ID,
		Content:    "also counted",
		PromptType: models.PromptSuggestion,
		IsPrivate:  true,
	}, viewer.ID)
	require.NoError(t, err)

	require.NoError(t, db.Create(&models.Comment{FilmID: film.ID, UserID: viewer.ID, Content: "hi"}).Error)
	require.NoError(t, filmSvc.RecordView(context.Background(), film.ID, &viewer.ID))
	require.NoError(t, filmSvc.RecordView(context.Background(), film.ID, nil))

	stats, err := svc.StatsForFilm(context.Background(), film.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.FeedbackCount)
	assert.EqualValues(t, 1, stats.CommentCount)
	assert.EqualValues(t, 2, stats.Views)
}

func TestStatsForFilmNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewStatsService(db)

	_, err := svc.StatsForFilm(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}
