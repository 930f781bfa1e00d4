package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is the internal identity behind an authenticated session. Every other
// entity is scoped by User.ID; the auth middleware resolves the JWT subject to
// this record on each request.
type User struct {
	ID        uuid.UUID `json:"id"`
	AuthID    string    `json:"authId"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type UserRepository interface {
	GetByAuthID(authID string) (*User, error)
	CreateOrGetByAuthID(authID, email string) (*User, error)
}
