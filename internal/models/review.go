package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review is a numeric rating (1-5) with optional text, one per
// (user, film) pair.
type Review struct {
	ID        uuid.UUID      `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	FilmID    uuid.UUID      `gorm:"type:uuid;not null;index:idx_reviews_film_user,unique" json:"film_id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index:idx_reviews_film_user,unique" json:"user_id"`
	Rating    int            `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Content   string         `gorm:"type:text" json:"content,omitempty"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

type Comment struct {
	ID        uuid.UUID      `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	FilmID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"film_id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null" json:"user_id"`
	Content   string         `gorm:"type:text;not null" json:"content"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// WatchLog records a single view of a film. The view count in film
// stats is the number of watch log rows.
type WatchLog struct {
	ID        uuid.UUID  `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time  `json:"created_at"`
	FilmID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"film_id"`
	UserID    *uuid.UUID `gorm:"type:uuid" json:"user_id,omitempty"`
}

func (w *WatchLog) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}

func (WatchLog) TableName() string {
	return "watchlogs"
}
