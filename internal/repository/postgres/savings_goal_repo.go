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

// SavingsGoalRepository implements domain.SavingsGoalRepository using PostgreSQL
type SavingsGoalRepository struct {
	pool *pgxpool.Pool
}

// NewSavingsGoalRepository creates a new SavingsGoalRepository
func NewSavingsGoalRepository(pool *pgxpool.Pool) *SavingsGoalRepository {
	return &SavingsGoalRepository{pool: pool}
}

const savingsGoalColumns = `id, user_id, name, target_amount, current_amount, target_date, created_at, updated_at`

// Create inserts a new savings goal and returns the stored row
func (r *SavingsGoalRepository) Create(goal *domain.SavingsGoal) (*domain.SavingsGoal, error) {
	ctx, cancel := queryCtx()
	defer cancel()

	target, err := decimalToPgNumeric(goal.TargetAmount)
	if err != nil {
		return nil, fmt.Errorf("invalid target amount: %w", err)
	}
	current, err := decimalToPgNumeric(goal.CurrentAmount)
	if err != nil {
		return nil, fmt.Errorf("invalid current amount: %w", err)
	}

	const query = `
		INSERT INTO savings_goals (user_id, name, target_amount, current_amount, target_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + savingsGoalColumns

	row := r.pool.QueryRow(ctx, query, goal.UserID, goal.Name, target, current, goal.TargetDate)
	return scanSavingsGoal(row)
}

// GetAllByUser retrieves every savings goal owned by the user
func (r *SavingsGoalRepository) GetAllByUser(userID uuid.UUID) ([]*domain.SavingsGoal, error) {
	ctx, cancel := queryCtx()
	defer cancel()

	const query = `
		SELECT ` + savingsGoalColumns + `
		FROM savings_goals
		WHERE user_id = $1
		ORDER BY id`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []*domain.SavingsGoal
	for rows.Next() {
		goal, err := scanSavingsGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, goal)
	}
	return goals, rows.Err()
}

// Update applies the changed fields to a savings goal
func (r *SavingsGoalRepository) Update(userID uuid.UUID, id int32, update *domain.SavingsGoalUpdate) error {
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
	if update.TargetAmount != nil {
		target, err := decimalToPgNumeric(*update.TargetAmount)
		if err != nil {
			return fmt.Errorf("invalid target amount: %w", err)
		}
		args = append(args, target)
		set = append(set, fmt.Sprintf("target_amount = $%d", len(args)))
	}
	if update.TargetDate != nil {
		args = append(args, *update.TargetDate)
		set = append(set, fmt.Sprintf("target_date = $%d", len(args)))
	}
	if len(set) == 0 {
		return nil
	}

	args = append(args, userID, id)
	query := fmt.Sprintf(`UPDATE savings_goals SET %s, updated_at = now() WHERE user_id = $%d AND id = $%d`,
		strings.Join(set, ", "), len(args)-1, len(args))

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSavingsGoalNotFound
	}
	return nil
}

// Delete removes a savings goal (its movements cascade)
func (r *SavingsGoalRepository) Delete(userID uuid.UUID, id int32) error {
	ctx, cancel := queryCtx()
	defer cancel()

	const query = `DELETE FROM savings_goals WHERE user_id = $1 AND id = $2`

	tag, err := r.pool.Exec(ctx, query, userID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSavingsGoalNotFound
	}
	return nil
}

func scanSavingsGoal(row rowScanner) (*domain.SavingsGoal, error) {
	var (
		g          domain.SavingsGoal
		target     pgtype.Numeric
		current    pgtype.Numeric
		targetDate pgtype.Timestamptz
	)
	err := row.Scan(&g.ID, &g.UserID, &g.Name, &target, &current, &targetDate, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrSavingsGoalNotFound
		}
		return nil, err
	}
	g.TargetAmount = pgNumericToDecimal(target)
	g.CurrentAmount = pgNumericToDecimal(current)
	g.TargetDate = pgTimestampToTimePtr(targetDate)
	return &g, nil
}
