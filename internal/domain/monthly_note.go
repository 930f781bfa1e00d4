package domain

import (
	"time"

	"github.com/google/uuid"
)

// MonthlyNote is free-form text attached to one month. One row per
// (user, year, month) — writes are upserts on that key.
type MonthlyNote struct {
	ID        int32     `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	Year      int       `json:"year"`
	Month     int       `json:"month"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type MonthlyNoteRepository interface {
	Upsert(note *MonthlyNote) (*MonthlyNote, error)
	GetAllByUser(userID uuid.UUID) ([]*MonthlyNote, error)
	Delete(userID uuid.UUID, year, month int) error
}
