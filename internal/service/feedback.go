package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/screenroom/backend/internal/models"
	"github.com/screenroom/backend/internal/types"
	"gorm.io/gorm"
)

// FeedbackService handles durable persistence and retrieval of feedback
// entries scoped to a film. Feedback is immutable once submitted; there
// is deliberately no update path.
type FeedbackService struct {
	db *gorm.DB
}

func NewFeedbackService(db *gorm.DB) *FeedbackService {
	return &FeedbackService{db: db}
}

// CreateFeedback validates and persists one feedback entry. The stored
// type is derived from the prompt via the fixed mapping. A replayed
// client token returns the previously created record instead of
// inserting a duplicate.
func (s *FeedbackService) CreateFeedback(ctx context.Context, req *types.CreateFeedbackRequest, authorID uuid.UUID) (*models.Feedback, error) {
	feedbackType, ok := models.TypeForPrompt(req.PromptType)
	if !ok {
		return nil, validationError("unknown prompt type %q", req.PromptType)
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, validationError("content must not be empty")
	}

	var film models.Film
	if err := s.db.WithContext(ctx).First(&film, "id = ?", req.FilmID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, validationError("film %s does not exist", req.FilmID)
		}
		return nil, err
	}

	if req.Timestamp != nil {
		t := *req.Timestamp
		if t < 0 || t > film.Duration {
			return nil, validationError("timestamp %d outside film duration %d", t, film.Duration)
		}
	}

	if req.ClientToken != "" {
		existing, err := s.findByToken(ctx, req.ClientToken, authorID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return s.redact(existing), nil
		}
	}

	isPrivate := req.IsPrivate
	if film.FeedbackMode == models.FeedbackModePrivate {
		// Creator solicited private feedback only; nothing submitted to
		// this film is ever publicly listed.
		isPrivate = true
	}

	// The author reference is stored even for anonymous feedback so
	// moderation stays possible; it is redacted in every read path.
	author := authorID
	feedback := models.Feedback{
		FilmID:      film.ID,
		AuthorID:    &author,
		Content:     content,
		Type:        feedbackType,
		PromptType:  req.PromptType,
		Timestamp:   req.Timestamp,
		IsPrivate:   isPrivate,
		IsAnonymous: req.IsAnonymous,
	}
	if req.ClientToken != "" {
		token := req.ClientToken
		feedback.ClientToken = &token
	}

	if err := s.db.WithContext(ctx).Create(&feedback).Error; err != nil {
		// A concurrent replay can slip past the lookup; the unique index
		// on client_token settles the race and the loser re-fetches.
		if errors.Is(err, gorm.ErrDuplicatedKey) && req.ClientToken != "" {
			existing, lookupErr := s.findByToken(ctx, req.ClientToken, authorID)
			if lookupErr != nil {
				return nil, lookupErr
			}
			if existing != nil {
				return s.redact(existing), nil
			}
			return nil, validationError("client token already in use")
		}
		return nil, err
	}
	return s.redact(&feedback), nil
}

// findByToken looks up a prior submission by idempotency token. The
// lookup is scoped to the author so one client's token can never
// resolve to another author's record.
func (s *FeedbackService) findByToken(ctx context.Context, token string, authorID uuid.UUID) (*models.Feedback, error) {
	var existing models.Feedback
	err := s.db.WithContext(ctx).
		First(&existing, "client_token = ? AND author_id = ?", token, authorID).Error
	if err == nil {
		return &existing, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return nil, err
}

// ListByFilm returns feedback ordered by creation time descending.
// IncludePrivate is honored only when the requester is the film's
// creator; anonymous entries always leave this method redacted.
func (s *FeedbackService) ListByFilm(ctx context.Context, filmID uuid.UUID, opts types.ListFeedbackOptions) ([]*models.Feedback, error) {
	var film models.Film
	if err := s.db.WithContext(ctx).First(&film, "id = ?", filmID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	query := s.db.WithContext(ctx).Preload("Author").Where("film_id = ?", filmID)

	includePrivate := opts.IncludePrivate &&
		opts.RequesterID != nil && *opts.RequesterID == film.CreatorID
	if !includePrivate {
		query = query.Where("is_private = ?", false)
	}

	var feedback []*models.Feedback
	if err := query.Order("created_at DESC").Find(&feedback).Error; err != nil {
		return nil, err
	}

	for i, entry := range feedback {
		feedback[i] = s.redact(entry)
	}
	return feedback, nil
}

// redact strips the author reference from anonymous feedback before it
// leaves the store layer. No caller capability bypasses this.
func (s *FeedbackService) redact(f *models.Feedback) *models.Feedback {
	if f.IsAnonymous {
		f.AuthorID = nil
		f.Author = nil
	}
	return f
}
