package types

import (
	"time"

	"github.com/google/uuid"
	"github.com/screenroom/backend/internal/models"
)

// CreateFilmRequest represents the request body for creating a film
type CreateFilmRequest struct {
	Title        string              `json:"title" binding:"required"`
	Description  string              `json:"description"`
	Genre        string              `json:"genre"`
	Duration     int                 `json:"duration" binding:"min=0"`
	VideoURL     string              `json:"videoUrl" binding:"required"`
	VideoKey     string              `json:"videoKey"`
	ThumbnailURL string              `json:"thumbnailUrl"`
	ThumbnailKey string              `json:"thumbnailKey"`
	Tags         []string            `json:"tags"`
	FeedbackMode models.FeedbackMode `json:"feedbackMode"`
	CreatorNote  string              `json:"creatorNote"`
	CastCrew     []CastCrewEntry     `json:"castCrew"`
}

// CastCrewEntry is one credited person on a film create request.
type CastCrewEntry struct {
	Name string `json:"name" binding:"required"`
	Role string `json:"role"`
}

// CreateFeedbackRequest represents the request body for submitting
// feedback. Type is derived from PromptType server-side and never read
// from the client.
type CreateFeedbackRequest struct {
	FilmID      uuid.UUID         `json:"filmId" binding:"required"`
	Content     string            `json:"content" binding:"required,max=500"`
	PromptType  models.PromptType `json:"promptType" binding:"required"`
	Timestamp   *int              `json:"timestamp"`
	IsPrivate   bool              `json:"isPrivate"`
	IsAnonymous bool              `json:"isAnonymous"`
	ClientToken string            `json:"clientToken"`
}

// ListFeedbackOptions controls feedback listing. IncludePrivate is only
// honored when RequesterID is the film creator.
type ListFeedbackOptions struct {
	IncludePrivate bool
	RequesterID    *uuid.UUID
}

// FeedbackResponse is a feedback entry as exposed to readers. Author is
// omitted for anonymous entries.
type FeedbackResponse struct {
	ID          uuid.UUID           `json:"id"`
	FilmID      uuid.UUID           `json:"film_id"`
	Content     string              `json:"content"`
	Type        models.FeedbackType `json:"type"`
	PromptType  models.PromptType   `json:"prompt_type"`
	Timestamp   *int                `json:"timestamp,omitempty"`
	IsPrivate   bool                `json:"is_private"`
	IsAnonymous bool                `json:"is_anonymous"`
	Author      *models.PublicUser  `json:"author,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
}

// FilmStats are the read-time aggregates for one film. AverageRating is
// nil when the film has no reviews.
type FilmStats struct {
	Views         int64    `json:"views"`
	AverageRating *float64 `json:"average_rating"`
	ReviewCount   int64    `json:"review_count"`
	FeedbackCount int64    `json:"feedback_count"`
	CommentCount  int64    `json:"comment_count"`
}

// DeletedCounts reports dependent records removed by a film deletion.
type DeletedCounts struct {
	Feedback int64 `json:"feedback"`
	Reviews  int64 `json:"reviews"`
	Comments int64 `json:"comments"`
}

// UploadRequest asks for a presigned upload URL.
type UploadRequest struct {
	FileName string `json:"fileName" binding:"required"`
	FileType string `json:"fileType" binding:"required"`
	FileSize int64  `json:"fileSize" binding:"required,min=1"`
}

// UploadResponse carries the presigned URL and where the object will be
// retrievable once uploaded.
type UploadResponse struct {
	UploadURL string `json:"uploadUrl"`
	Key       string `json:"key"`
	PublicURL string `json:"publicUrl"`
}

// SubmitReviewRequest records a 1-5 rating with optional text.
type SubmitReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Content string `json:"content"`
}
