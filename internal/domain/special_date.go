package domain

import (
	"time"

	"github.com/google/uuid"
)

// SpecialDate is a tracked date (birthday, renewal, deadline). It never
// interacts with balances.
type SpecialDate struct {
	ID          int32     `json:"id"`
	UserID      uuid.UUID `json:"userId"`
	Name        string    `json:"name"`
	Date        time.Time `json:"date"`
	Description *string   `json:"description,omitempty"`
	IsRecurring bool      `json:"isRecurring"`
	IsCompleted bool      `json:"isCompleted"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// SpecialDateUpdate carries the changed fields of a partial update.
type SpecialDateUpdate struct {
	Name        *string
	Date        *time.Time
	Description *string
	IsRecurring *bool
	IsCompleted *bool
}

type SpecialDateRepository interface {
	Create(date *SpecialDate) (*SpecialDate, error)
	GetAllByUser(userID uuid.UUID) ([]*SpecialDate, error)
	Update(userID uuid.UUID, id int32, update *SpecialDateUpdate) error
	Delete(userID uuid.UUID, id int32) error
}
