package workflow

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/screenroom/backend/internal/models"
	"github.com/screenroom/backend/internal/types"
)

type fakeSubmitter struct {
	requests []*types.CreateFeedbackRequest
	err      error
}

func (f *fakeSubmitter) CreateFeedback(ctx context.Context, req *types.CreateFeedbackRequest, authorID uuid.UUID) (*models.Feedback, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	feedbackType, _ := models.TypeForPrompt(req.PromptType)
	return &models.Feedback{
		ID:         uuid.New(),
		FilmID:     req.FilmID,
		Content:    req.Content,
		PromptType: req.PromptType,
		Type:       feedbackType,
	}, nil
}

func intPtr(v int) *int { return &v }

func TestSessionLinearFlow(t *testing.T) {
	s := NewSession(uuid.New(), uuid.New(), intPtr(95))
	assert.Equal(t, StateSelectPrompt, s.State())

	require.NoError(t, s.SelectPrompt(models.PromptConfused))
	assert.Equal(t, StateWriteContent, s.State())

	require.NoError(t, s.SetContent("What motivated the cut at the bridge?"))
	assert.Equal(t, StateConfigureOptions, s.State())

	require.NoError(t, s.SetOptions(Options{LinkTimestamp: true}))
	assert.Equal(t, StateConfigureOptions, s.State())
}

func TestSessionRejectsOutOfOrderSteps(t *testing.T) {
	s := NewSession(uuid.New(), uuid.New(), nil)

	assert.ErrorIs(t, s.SetContent("too early"), ErrInvalidTransition)
	assert.ErrorIs(t, s.SetOptions(Options{}), ErrInvalidTransition)
	_, err := s.Submit(context.Background(), &fakeSubmitter{})
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.ErrorIs(t, s.Back(), ErrInvalidTransition)

	require.NoError(t, s.SelectPrompt(models.PromptLiked))
	assert.ErrorIs(t, s.SelectPrompt(models.PromptLiked), ErrInvalidTransition)
}

func TestSessionRejectsUnknownPrompt(t *testing.T) {
	s := NewSession(uuid.New(), uuid.New(), nil)

	assert.ErrorIs(t, s.SelectPrompt("insightful"), ErrUnknownPrompt)
	assert.Equal(t, StateSelectPrompt, s.State())
}

func TestSessionBlocksEmptyContent(t *testing.T) {
	s := NewSession(uuid.New(), uuid.New(), nil)
	require.NoError(t, s.SelectPrompt(models.PromptLiked))

	assert.ErrorIs(t, s.SetContent(""), ErrEmptyContent)
	assert.ErrorIs(t, s.SetContent("   \n\t"), ErrEmptyContent)
	assert.Equal(t, StateWriteContent, s.State())
}

func TestSessionBackKeepsInput(t *testing.T) {
	submitter := &fakeSubmitter{}
	s := NewSession(uuid.New(), uuid.New(), nil)

	require.NoError(t, s.SelectPrompt(models.PromptMemorable))
	require.NoError(t, s.SetContent("The ferry scene stayed with me."))
	require.NoError(t, s.Back())
	assert.Equal(t, StateWriteContent, s.State())
	require.NoError(t, s.Back())
	assert.Equal(t, StateSelectPrompt, s.State())

	// Walk forward again and submit; earlier inputs were kept.
	require.NoError(t, s.SelectPrompt(models.PromptMemorable))
	require.NoError(t, s.SetContent("The ferry scene stayed with me."))
	require.NoError(t, s.SetOptions(Options{}))
	_, err := s.Submit(context.Background(), submitter)
	require.NoError(t, err)
	require.Len(t, submitter.requests, 1)
	assert.Equal(t, "The ferry scene stayed with me.", submitter.requests[0].Content)
}

func TestSessionLinkTimestampRequiresPlaybackTime(t *testing.T) {
	s := NewSession(uuid.New(), uuid.New(), nil)
	require.NoError(t, s.SelectPrompt(models.PromptEmotional))
	require.NoError(t, s.SetContent("That reveal landed hard."))

	assert.ErrorIs(t, s.SetOptions(Options{LinkTimestamp: true}), ErrNoPlaybackTime)
	require.NoError(t, s.SetOptions(Options{}))
}

func TestSessionSubmitsCapturedTimestamp(t *testing.T) {
	submitter := &fakeSubmitter{}
	filmID := uuid.New()
	s := NewSession(filmID, uuid.New(), intPtr(125))

	require.NoError(t, s.SelectPrompt(models.PromptSuggestion))
	require.NoError(t, s.SetContent("Try a tighter edit here."))
	require.NoError(t, s.SetOptions(Options{LinkTimestamp: true, IsAnonymous: true}))

	_, err := s.Submit(context.Background(), submitter)
	require.NoError(t, err)

	require.Len(t, submitter.requests, 1)
	req := submitter.requests[0]
	assert.Equal(t, filmID, req.FilmID)
	require.NotNil(t, req.Timestamp)
	assert.Equal(t, 125, *req.Timestamp)
	assert.True(t, req.IsAnonymous)
	assert.NotEmpty(t, req.ClientToken)
}

func TestSessionSubmitWithoutLinkOmitsTimestamp(t *testing.T) {
	submitter := &fakeSubmitter{}
	s := NewSession(uuid.New(), uuid.New(), intPtr(42))

	require.NoError(t, s.SelectPrompt(models.PromptLiked))
	require.NoError(t, s.SetContent("Great sound design."))
	require.NoError(t, s.SetOptions(Options{}))

	_, err := s.Submit(context.Background(), submitter)
	require.NoError(t, err)
	require.Len(t, submitter.requests, 1)
	assert.Nil(t, submitter.requests[0].Timestamp)
}

func TestSessionResetsAfterSubmit(t *testing.T) {
	submitter := &fakeSubmitter{}
	s := NewSession(uuid.New(), uuid.New(), nil)

	require.NoError(t, s.SelectPrompt(models.PromptLiked))
	require.NoError(t, s.SetContent("first entry"))
	require.NoError(t, s.SetOptions(Options{}))
	_, err := s.Submit(context.Background(), submitter)
	require.NoError(t, err)
	assert.Equal(t, StateSelectPrompt, s.State())

	require.NoError(t, s.SelectPrompt(models.PromptConfused))
	require.NoError(t, s.SetContent("second entry"))
	require.NoError(t, s.SetOptions(Options{}))
	_, err = s.Submit(context.Background(), submitter)
	require.NoError(t, err)

	require.Len(t, submitter.requests, 2)
	assert.NotEqual(t, submitter.requests[0].ClientToken, submitter.requests[1].ClientToken,
		"each attempt carries its own token so distinct submissions are never deduplicated")
}

func TestSessionConcurrentSubmitsYieldOneFeedback(t *testing.T) {
	submitter := &fakeSubmitter{}
	s := NewSession(uuid.New(), uuid.New(), nil)
	require.NoError(t, s.SelectPrompt(models.PromptLiked))
	require.NoError(t, s.SetContent("double clicked"))
	require.NoError(t, s.SetOptions(Options{}))

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Submit(context.Background(), submitter)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var succeeded, rejected int
	for err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, ErrInvalidTransition)
		rejected++
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, rejected)
	require.Len(t, submitter.requests, 1)
	assert.Equal(t, StateSelectPrompt, s.State())
}

func TestSessionKeepsStateOnFailedSubmit(t *testing.T) {
	submitter := &fakeSubmitter{err: errors.New("db down")}
	s := NewSession(uuid.New(), uuid.New(), nil)

	require.NoError(t, s.SelectPrompt(models.PromptLiked))
	require.NoError(t, s.SetContent("keep me"))
	require.NoError(t, s.SetOptions(Options{IsPrivate: true}))

	_, err := s.Submit(context.Background(), submitter)
	require.Error(t, err)
	assert.Equal(t, StateConfigureOptions, s.State())

	// The retry reuses the same token, so a submit that actually landed
	// server-side is recognized as a replay.
	submitter.err = nil
	_, err = s.Submit(context.Background(), submitter)
	require.NoError(t, err)
	require.Len(t, submitter.requests, 2)
	assert.Equal(t, submitter.requests[0].ClientToken, submitter.requests[1].ClientToken)
	assert.True(t, submitter.requests[1].IsPrivate)
}
