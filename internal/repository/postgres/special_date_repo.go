package postgres

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/haldorr/pennywise-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SpecialDateRepository implements domain.SpecialDateRepository using PostgreSQL
type SpecialDateRepository struct {
	pool *pgxpool.Pool
}

// NewSpecialDateRepository creates a new SpecialDateRepository
func NewSpecialDateRepository(pool *pgxpool.Pool) *SpecialDateRepository {
	return &SpecialDateRepository{pool: pool}
}

const specialDateColumns = `id, user_id, name, event_date, description, is_recurring, is_completed, created_at, updated_at`

// Create inserts a new special date and returns the stored row
func (r *SpecialDateRepository) Create(date *domain.SpecialDate) (*domain.SpecialDate, error) {
	ctx, cancel := queryCtx()
	defer cancel()

	const query = `
		INSERT INTO special_dates (user_id, name, event_date, description, is_recurring, is_completed)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + specialDateColumns

	row := r.pool.QueryRow(ctx, query, date.UserID, date.Name, date.Date, date.Description, date.IsRecurring, date.IsCompleted)
	return scanSpecialDate(row)
}

// GetAllByUser retrieves every special date owned by the user
func (r *SpecialDateRepository) GetAllByUser(userID uuid.UUID) ([]*domain.SpecialDate, error) {
	ctx, cancel := queryCtx()
	defer cancel()

	const query = `
		SELECT ` + specialDateColumns + `
		FROM special_dates
		WHERE user_id = $1
		ORDER BY event_date, id`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dates []*domain.SpecialDate
	for rows.Next() {
		date, err := scanSpecialDate(rows)
		if err != nil {
			return nil, err
		}
		dates = append(dates, date)
	}
	return dates, rows.Err()
}

// Update applies the changed fields to a special date
func (r *SpecialDateRepository) Update(userID uuid.UUID, id int32, update *domain.SpecialDateUpdate) error {
	ctx, cancel := queryCtx()
	defer cancel()

	var (
		set  []string
		args []any
	)
	if update.Name != nil {
		args = append(args, *update.Name)
		set = append(set, fmt.Sprintf("name = $%d", len(args)))
	}
	if update.Date != nil {
		args = append(args, *update.Date)
		set = append(set, fmt.Sprintf("event_date = $%d", len(args)))
	}
	if update.Description != nil {
		args = append(args, *update.Description)
		set = append(set, fmt.Sprintf("description = $%d", len(args)))
	}
	if update.IsRecurring != nil {
		args = append(args, *update.IsRecurring)
		set = append(set, fmt.Sprintf("is_recurring = $%d", len(args)))
	}
	if update.IsCompleted != nil {
		args = append(args, *update.IsCompleted)
		set = append(set, fmt.Sprintf("is_completed = $%d", len(args)))
	}
	if len(set) == 0 {
		return nil
	}

	args = append(args, userID, id)
	query := fmt.Sprintf(`UPDATE special_dates SET %s, updated_at = now() WHERE user_id = $%d AND id = $%d`,
		strings.Join(set, ", "), len(args)-1, len(args))

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSpecialDateNotFound
	}
	return nil
}

// Delete removes a special date
func (r *SpecialDateRepository) Delete(userID uuid.UUID, id int32) error {
	ctx, cancel := queryCtx()
	defer cancel()

	const query = `DELETE FROM special_dates WHERE user_id = $1 AND id = $2`

	tag, err := r.pool.Exec(ctx, query, userID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSpecialDateNotFound
	}
	return nil
}

func scanSpecialDate(row rowScanner) (*domain.SpecialDate, error) {
	var (
		d           domain.SpecialDate
		description pgtype.Text
	)
	err := row.Scan(&d.ID, &d.UserID, &d.Name, &d.Date, &description, &d.IsRecurring, &d.IsCompleted, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrSpecialDateNotFound
		}
		return nil, err
	}
	d.Description = pgTextToStringPtr(description)
	return &d, nil
}
