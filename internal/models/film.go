package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FeedbackMode governs what kind of feedback a creator is soliciting.
type FeedbackMode string

const (
	FeedbackModeOpen          FeedbackMode = "OPEN"
	FeedbackModeReactions     FeedbackMode = "REACTIONS"
	FeedbackModePrivate       FeedbackMode = "PRIVATE"
	FeedbackModeCollaborators FeedbackMode = "COLLABORATORS"
)

// ValidFeedbackMode reports whether m is one of the four supported modes.
func ValidFeedbackMode(m FeedbackMode) bool {
	switch m {
	case FeedbackModeOpen, FeedbackModeReactions, FeedbackModePrivate, FeedbackModeCollaborators:
		return true
	}
	return false
}

// JSONBStringArray is a custom type for handling string arrays in JSONB.
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

type Film struct {
	ID           uuid.UUID        `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
	DeletedAt    gorm.DeletedAt   `gorm:"index" json:"-"`
	Title        string           `gorm:"size:255;not null" json:"title"`
	Description  string           `gorm:"type:text" json:"description,omitempty"`
	Genre        string           `gorm:"size:50" json:"genre,omitempty"`
	Duration     int              `json:"duration"`
	VideoURL     string           `gorm:"size:512;not null" json:"video_url"`
	VideoKey     string           `gorm:"size:512" json:"video_key,omitempty"`
	ThumbnailURL string           `gorm:"size:512" json:"thumbnail_url,omitempty"`
	ThumbnailKey string           `gorm:"size:512" json:"thumbnail_key,omitempty"`
	Tags         JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"tags"`
	IsPublic     bool             `gorm:"not null;default:true" json:"is_public"`
	FeedbackMode FeedbackMode     `gorm:"size:20;not null;default:'OPEN'" json:"feedback_mode"`
	CreatorNote  string           `gorm:"type:text" json:"creator_note,omitempty"`
	CreatorID    uuid.UUID        `gorm:"type:uuid;not null;index" json:"creator_id"`
	Creator      *User            `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
}

func (f *Film) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// CastCrew records a person credited on a film. UserID is nil when the
// person is not on the platform.
type CastCrew struct {
	ID        uuid.UUID  `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time  `json:"created_at"`
	FilmID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"film_id"`
	Name      string     `gorm:"size:255;not null" json:"name"`
	Role      string     `gorm:"size:100" json:"role"`
	UserID    *uuid.UUID `gorm:"type:uuid" json:"user_id,omitempty"`
}

func (c *CastCrew) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (CastCrew) TableName() string {
	return "cast_crew"
}
