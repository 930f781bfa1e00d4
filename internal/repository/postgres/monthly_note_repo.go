package postgres

import (
	"github.com/google/uuid"
	"github.com/haldorr/pennywise-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MonthlyNoteRepository implements domain.MonthlyNoteRepository using
// PostgreSQL. Writes are upserts on the (user, year, month) key.
type MonthlyNoteRepository struct {
	pool *pgxpool.Pool
}

// NewMonthlyNoteRepository creates a new MonthlyNoteRepository
func NewMonthlyNoteRepository(pool *pgxpool.Pool) *MonthlyNoteRepository {
	return &MonthlyNoteRepository{pool: pool}
}

const monthlyNoteColumns = `id, user_id, year, month, content, created_at, updated_at`

// Upsert inserts or replaces the note for one (year, month)
func (r *MonthlyNoteRepository) Upsert(note *domain.MonthlyNote) (*domain.MonthlyNote, error) {
	ctx, cancel := queryCtx()
	defer cancel()

	const query = `
		INSERT INTO monthly_notes (user_id, year, month, content)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, year, month) DO UPDATE SET
			content = EXCLUDED.content,
			updated_at = now()
		RETURNING ` + monthlyNoteColumns

	row := r.pool.QueryRow(ctx, query, note.UserID, note.Year, note.Month, note.Content)
	return scanMonthlyNote(row)
}

// GetAllByUser retrieves every monthly note owned by the user
func (r *MonthlyNoteRepository) GetAllByUser(userID uuid.UUID) ([]*domain.MonthlyNote, error) {
	ctx, cancel := queryCtx()
	defer cancel()

	const query = `
		SELECT ` + monthlyNoteColumns + `
		FROM monthly_notes
		WHERE user_id = $1
		ORDER BY year, month`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []*domain.MonthlyNote
	for rows.Next() {
		note, err := scanMonthlyNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	return notes, rows.Err()
}

// Delete removes the note for one (year, month)
func (r *MonthlyNoteRepository) Delete(userID uuid.UUID, year, month int) error {
	ctx, cancel := queryCtx()
	defer cancel()

	const query = `DELETE FROM monthly_notes WHERE user_id = $1 AND year = $2 AND month = $3`

	tag, err := r.pool.Exec(ctx, query, userID, year, month)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMonthlyNoteNotFound
	}
	return nil
}

func scanMonthlyNote(row rowScanner) (*domain.MonthlyNote, error) {
	var n domain.MonthlyNote
	err := row.Scan(&n.ID, &n.UserID, &n.Year, &n.Month, &n.Content, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrMonthlyNoteNotFound
		}
		return nil, err
	}
	return &n, nil
}
