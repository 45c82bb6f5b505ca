package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/screenroom/backend/internal/models"
	"github.com/screenroom/backend/internal/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, name, username, email, password string) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (*models.User, error)
}

// IFilmService defines the interface for film record operations
type IFilmService interface {
	CreateFilm(ctx context.Context, req *types.CreateFilmRequest, creatorID uuid.UUID) (*models.Film, error)
	GetFilm(ctx context.Context, id uuid.UUID) (*models.Film, error)
	ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]*models.Film, error)
	DeleteFilm(ctx context.Context, id, requesterID uuid.UUID) (*types.DeletedCounts, error)
	RecordView(ctx context.Context, filmID uuid.UUID, userID *uuid.UUID) error
	SubmitReview(ctx context.Context, filmID, userID uuid.UUID, rating int, content string) (*models.Review, error)
}

// IFeedbackService defines the interface for feedback record operations
type IFeedbackService interface {
	CreateFeedback(ctx context.Context, req *types.CreateFeedbackRequest, authorID uuid.UUID) (*models.Feedback, error)
	ListByFilm(ctx context.Context, filmID uuid.UUID, opts types.ListFeedbackOptions) ([]*models.Feedback, error)
}

// IStatsService computes read-time aggregate statistics for a film.
type IStatsService interface {
	StatsForFilm(ctx context.Context, filmID uuid.UUID) (*types.FilmStats, error)
}

// IUploadService issues presigned upload URLs for media files.
type IUploadService interface {
	PresignUpload(ctx context.Context, req *types.UploadRequest, uploader *models.User) (*types.UploadResponse, error)
}
