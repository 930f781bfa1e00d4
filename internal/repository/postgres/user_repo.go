package postgres

import (
	"errors"

	"github.com/haldorr/pennywise-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepository implements domain.UserRepository using PostgreSQL
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// GetByAuthID retrieves a user by the identity provider subject
func (r *UserRepository) GetByAuthID(authID string) (*domain.User, error) {
	ctx, cancel := queryCtx()
	defer cancel()

	const query = `
		SELECT id, auth_id, email, created_at, updated_at
		FROM users
		WHERE auth_id = $1`

	var u domain.User
	err := r.pool.QueryRow(ctx, query, authID).Scan(&u.ID, &u.AuthID, &u.Email, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// CreateOrGetByAuthID creates the user on first sign-in or returns the
// existing record
func (r *UserRepository) CreateOrGetByAuthID(authID, email string) (*domain.User, error) {
	ctx, cancel := queryCtx()
	defer cancel()

	const query = `
		INSERT INTO users (auth_id, email)
		VALUES ($1, $2)
		ON CONFLICT (auth_id) DO UPDATE SET email = EXCLUDED.email
		RETURNING id, auth_id, email, created_at, updated_at`

	var u domain.User
	err := r.pool.QueryRow(ctx, query, authID, email).Scan(&u.ID, &u.AuthID, &u.Email, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
