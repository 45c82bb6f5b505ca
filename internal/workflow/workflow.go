// Package workflow implements the guided feedback submission flow: a
// strictly linear three-step state machine that collects one feedback
// entry and hands it to the feedback store on submit.
package workflow

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/screenroom/backend/internal/models"
	"github.com/screenroom/backend/internal/types"
)

// State is the current step of a submission session.
type State string

const (
	StateSelectPrompt     State = "SELECT_PROMPT"
	StateWriteContent     State = "WRITE_CONTENT"
	StateConfigureOptions State = "CONFIGURE_OPTIONS"
)

var (
	ErrInvalidTransition = errors.New("operation not valid in current workflow state")
	ErrUnknownPrompt     = errors.New("unknown prompt type")
	ErrEmptyContent      = errors.New("content must not be empty")
	ErrNoPlaybackTime    = errors.New("no playback time was captured when the session opened")
)

// Submitter persists a completed feedback entry. Satisfied by the
// feedback service.
type Submitter interface {
	CreateFeedback(ctx context.Context, req *types.CreateFeedbackRequest, authorID uuid.UUID) (*models.Feedback, error)
}

// Options are the visibility settings configured in the final step.
type Options struct {
	IsPrivate     bool `json:"isPrivate"`
	IsAnonymous   bool `json:"isAnonymous"`
	LinkTimestamp bool `json:"linkTimestamp"`
}

// Session holds one viewer's in-progress feedback submission. The
// playback time is captured once, when the session opens; enabling
// LinkTimestamp later submits that captured value, never a re-sample.
type Session struct {
	ID           uuid.UUID
	FilmID       uuid.UUID
	AuthorID     uuid.UUID
	PlaybackTime *int

	// mu guards every field below. Concurrent requests can hold the
	// same session, a double-clicked submit being the common case.
	mu      sync.Mutex
	state   State
	prompt  models.PromptType
	content string
	options Options

	// clientToken deduplicates a re-issued submit of the same attempt
	// (double click, retry after timeout). A fresh token is drawn after
	// each successful submit.
	clientToken uuid.UUID
}

// NewSession opens a session for one viewer and film. playbackTime is
// the player position at the moment the workflow was invoked, or nil
// when the workflow was opened outside playback.
func NewSession(filmID, authorID uuid.UUID, playbackTime *int) *Session {
	return &Session{
		ID:           uuid.New(),
		FilmID:       filmID,
		AuthorID:     authorID,
		PlaybackTime: playbackTime,
		state:        StateSelectPrompt,
		clientToken:  uuid.New(),
	}
}

// State returns the current step.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SelectPrompt picks one of the five fixed prompts and advances to the
// writing step. Rejected for unrecognized prompts.
func (s *Session) SelectPrompt(prompt models.PromptType) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateSelectPrompt {
		return ErrInvalidTransition
	}
	if _, ok := models.TypeForPrompt(prompt); !ok {
		return ErrUnknownPrompt
	}
	s.prompt = prompt
	s.state = StateWriteContent
	return nil
}

// SetContent records the feedback text and advances to the options
// step. Progression is blocked while the text is empty after trimming.
func (s *Session) SetContent(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateWriteContent {
		return ErrInvalidTransition
	}
	if strings.TrimSpace(text) == "" {
		return ErrEmptyContent
	}
	s.content = text
	s.state = StateConfigureOptions
	return nil
}

// SetOptions records visibility settings. LinkTimestamp is only
// selectable when a playback time was captured at open.
func (s *Session) SetOptions(opts Options) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateConfigureOptions {
		return ErrInvalidTransition
	}
	if opts.LinkTimestamp && s.PlaybackTime == nil {
		return ErrNoPlaybackTime
	}
	s.options = opts
	return nil
}

// Back returns to the previous step, keeping all input.
func (s *Session) Back() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.state {
	case StateWriteContent:
		s.state = StateSelectPrompt
	case StateConfigureOptions:
		s.state = StateWriteContent
	default:
		return ErrInvalidTransition
	}
	return nil
}

// Submit builds the feedback record and persists it through the
// submitter. On success the session resets to its initial state; on
// failure it stays in CONFIGURE_OPTIONS so no input is lost. There are
// no retries; resubmission is an explicit caller action. Submits are
// serialized: of two concurrent calls, the second sees the reset
// session and is rejected as an invalid transition.
func (s *Session) Submit(ctx context.Context, submitter Submitter) (*models.Feedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateConfigureOptions {
		return nil, ErrInvalidTransition
	}

	req := &types.CreateFeedbackRequest{
		FilmID:      s.FilmID,
		Content:     s.content,
		PromptType:  s.prompt,
		IsPrivate:   s.options.IsPrivate,
		IsAnonymous: s.options.IsAnonymous,
		ClientToken: s.clientToken.String(),
	}
	if s.options.LinkTimestamp {
		req.Timestamp = s.PlaybackTime
	}

	feedback, err := submitter.CreateFeedback(ctx, req, s.AuthorID)
	if err != nil {
		return nil, err
	}

	s.reset()
	return feedback, nil
}

func (s *Session) reset() {
	s.state = StateSelectPrompt
	s.prompt = ""
	s.content = ""
	s.options = Options{}
	s.clientToken = uuid.New()
}
