package postgres

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/haldorr/pennywise-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// WeeklyGoalRepository implements domain.WeeklyGoalRepository using
// PostgreSQL. Writes are upserts on the (user, year, month, category) key.
type WeeklyGoalRepository struct {
	pool *pgxpool.Pool
}

// NewWeeklyGoalRepository creates a new WeeklyGoalRepository
func NewWeeklyGoalRepository(pool *pgxpool.Pool) *WeeklyGoalRepository {
	return &WeeklyGoalRepository{pool: pool}
}

const weeklyGoalColumns = `id, user_id, category_id, year, month, week1, week2, week3, week4, week5, monthly_amount, created_at, updated_at`

// Upsert inserts or replaces the plan for one (year, month, category)
func (r *WeeklyGoalRepository) Upsert(goal *domain.WeeklyGoal) (*domain.WeeklyGoal, error) {
	ctx, cancel := queryCtx()
	defer cancel()

	weeks := make([]pgtype.Numeric, domain.WeekGroupCount)
	for i, w := range goal.Weeks {
		num, err := decimalPtrToPgNumeric(w)
		if err != nil {
			return nil, fmt.Errorf("invalid week %d amount: %w", i+1, err)
		}
		weeks[i] = num
	}
	monthly, err := decimalPtrToPgNumeric(goal.MonthlyAmount)
	if err != nil {
		return nil, fmt.Errorf("invalid monthly amount: %w", err)
	}

	const query = `
		INSERT INTO weekly_goals (user_id, category_id, year, month, week1, week2, week3, week4, week5, monthly_amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (user_id, year, month, category_id) DO UPDATE SET
			week1 = EXCLUDED.week1,
			week2 = EXCLUDED.week2,
			week3 = EXCLUDED.week3,
			week4 = EXCLUDED.week4,
			week5 = EXCLUDED.week5,
			monthly_amount = EXCLUDED.monthly_amount,
			updated_at = now()
		RETURNING ` + weeklyGoalColumns

	row := r.pool.QueryRow(ctx, query,
		goal.UserID, goal.CategoryID, goal.Year, goal.Month,
		weeks[0], weeks[1], weeks[2], weeks[3], weeks[4], monthly)
	return scanWeeklyGoal(row)
}

// GetAllByUser retrieves every weekly goal owned by the user
func (r *WeeklyGoalRepository) GetAllByUser(userID uuid.UUID) ([]*domain.WeeklyGoal, error) {
	ctx, cancel := queryCtx()
	defer cancel()

	const query = `
		SELECT ` + weeklyGoalColumns + `
		FROM weekly_goals
		WHERE user_id = $1
		ORDER BY year, month, category_id`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []*domain.WeeklyGoal
	for rows.Next() {
		goal, err := scanWeeklyGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, goal)
	}
	return goals, rows.Err()
}

// Delete removes the plan for one (year, month, category)
func (r *WeeklyGoalRepository) Delete(userID uuid.UUID, year, month int, categoryID int32) error {
	ctx, cancel := queryCtx()
	defer cancel()

	const query = `DELETE FROM weekly_goals WHERE user_id = $1 AND year = $2 AND month = $3 AND category_id = $4`

	tag, err := r.pool.Exec(ctx, query, userID, year, month, categoryID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrWeeklyGoalNotFound
	}
	return nil
}

func scanWeeklyGoal(row rowScanner) (*domain.WeeklyGoal, error) {
	var (
		g       domain.WeeklyGoal
		weeks   [domain.WeekGroupCount]pgtype.Numeric
		monthly pgtype.Numeric
	)
	err := row.Scan(&g.ID, &g.UserID, &g.CategoryID, &g.Year, &g.Month,
		&weeks[0], &weeks[1], &weeks[2], &weeks[3], &weeks[4], &monthly, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrWeeklyGoalNotFound
		}
		return nil, err
	}
	for i := range weeks {
		g.Weeks[i] = pgNumericToDecimalPtr(weeks[i])
	}
	g.MonthlyAmount = pgNumericToDecimalPtr(monthly)
	return &g, nil
}
