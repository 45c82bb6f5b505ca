package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FeedbackType classifies a feedback entry.
type FeedbackType string

const (
	FeedbackPositive     FeedbackType = "POSITIVE"
	FeedbackConstructive FeedbackType = "CONSTRUCTIVE"
	FeedbackQuestion     FeedbackType = "QUESTION"
	FeedbackSuggestion   FeedbackType = "SUGGESTION"
	FeedbackTechnical    FeedbackType = "TECHNICAL"
)

// PromptType is one of the five fixed guided-feedback categories.
type PromptType string

const (
	PromptLiked      PromptType = "liked"
	PromptEmotional  PromptType = "emotional"
	PromptMemorable  PromptType = "memorable"
	PromptConfused   PromptType = "confused"
	PromptSuggestion PromptType = "suggestion"
)

// promptTypeMap is the fixed prompt-to-type mapping. The stored type is
// always derived from the prompt, never taken from the client.
var promptTypeMap = map[PromptType]FeedbackType{
	PromptLiked:      FeedbackPositive,
	PromptEmotional:  FeedbackPositive,
	PromptMemorable:  FeedbackPositive,
	PromptConfused:   FeedbackQuestion,
	PromptSuggestion: FeedbackSuggestion,
}

// TypeForPrompt returns the feedback type implied by a prompt, or false
// if the prompt is not one of the fixed five.
func TypeForPrompt(p PromptType) (FeedbackType, bool) {
	t, ok := promptTypeMap[p]
	return t, ok
}

type Feedback struct {
	ID          uuid.UUID      `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	FilmID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"film_id"`
	AuthorID    *uuid.UUID     `gorm:"type:uuid" json:"author_id,omitempty"`
	Author      *User          `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Content     string         `gorm:"type:text;not null" json:"content"`
	Type        FeedbackType   `gorm:"size:20;not null" json:"type"`
	PromptType  PromptType     `gorm:"size:20;not null" json:"prompt_type"`
	Timestamp   *int           `json:"timestamp,omitempty"`
	IsPrivate   bool           `gorm:"not null;default:false" json:"is_private"`
	IsAnonymous bool           `gorm:"not null;default:false" json:"is_anonymous"`
	// ClientToken deduplicates replayed submissions (double click, retry
	// after timeout). Unique when present.
	ClientToken *string `gorm:"size:64;uniqueIndex" json:"-"`
}

func (f *Feedback) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Feedback model
func (Feedback) TableName() string {
	return "feedback"
}
