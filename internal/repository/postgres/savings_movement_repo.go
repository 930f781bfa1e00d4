package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/haldorr/pennywise-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SavingsMovementRepository implements domain.SavingsMovementRepository using
// PostgreSQL. Like the transaction repository, every mutation persists the
// movement row, the goal totals and the account balances in one database
// transaction.
type SavingsMovementRepository struct {
	pool *pgxpool.Pool
}

// NewSavingsMovementRepository creates a new SavingsMovementRepository
func NewSavingsMovementRepository(pool *pgxpool.Pool) *SavingsMovementRepository {
	return &SavingsMovementRepository{pool: pool}
}

const movementColumns = `id, user_id, goal_id, account_id, movement_type, amount, movement_date, note, created_at, updated_at`

// GetAllByUser retrieves every savings movement owned by the user
func (r *SavingsMovementRepository) GetAllByUser(userID uuid.UUID) ([]*domain.SavingsMovement, error) {
	ctx, cancel := queryCtx()
	defer cancel()

	const query = `
		SELECT ` + movementColumns + `
		FROM savings_movements
		WHERE user_id = $1
		ORDER BY movement_date, id`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var movements []*domain.SavingsMovement
	for rows.Next() {
		movement, err := scanMovement(rows)
		if err != nil {
			return nil, err
		}
		movements = append(movements, movement)
	}
	return movements, rows.Err()
}

// CreateWithEffects inserts the movement and persists the adjusted goal
// totals and account balances atomically
func (r *SavingsMovementRepository) CreateWithEffects(movement *domain.SavingsMovement, goals []domain.GoalAmountWrite, balances []domain.BalanceWrite) (*domain.SavingsMovement, error) {
	ctx, cancel := queryCtx()
	defer cancel()

	amount, err := decimalToPgNumeric(movement.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const query = `
		INSERT INTO savings_movements (user_id, goal_id, account_id, movement_type, amount, movement_date, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + movementColumns

	row := tx.QueryRow(ctx, query,
		movement.UserID, movement.GoalID, movement.AccountID, string(movement.Type),
		amount, movement.Date, movement.Note)
	created, err := scanMovement(row)
	if err != nil {
		return nil, err
	}

	if err := writeGoalAmounts(ctx, tx, movement.UserID, goals); err != nil {
		return nil, err
	}
	if err := writeBalances(ctx, tx, movement.UserID, balances); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateWithEffects applies the partial update and persists the reconciled
// goal totals and account balances atomically
func (r *SavingsMovementRepository) UpdateWithEffects(userID uuid.UUID, id int32, update *domain.SavingsMovementUpdate, goals []domain.GoalAmountWrite, balances []domain.BalanceWrite) error {
	ctx, cancel := queryCtx()
	defer cancel()

	var (
		set  []string
		args []any
	)
	if update.GoalID != nil {
		args = append(args, *update.GoalID)
		set = append(set, fmt.Sprintf("goal_id = $%d", len(args)))
	}
	if update.AccountID != nil {
		args = append(args, *update.AccountID)
		set = append(set, fmt.Sprintf("account_id = $%d", len(args)))
	}
	if update.Type != nil {
		args = append(args, string(*update.Type))
		set = append(set, fmt.Sprintf("movement_type = $%d", len(args)))
	}
	if update.Amount != nil {
		amount, err := decimalToPgNumeric(*update.Amount)
		if err != nil {
			return fmt.Errorf("invalid amount: %w", err)
		}
		args = append(args, amount)
		set = append(set, fmt.Sprintf("amount = $%d", len(args)))
	}
	if update.Date != nil {
		args = append(args, *update.Date)
		set = append(set, fmt.Sprintf("movement_date = $%d", len(args)))
	}
	if update.Note != nil {
		args = append(args, *update.Note)
		set = append(set, fmt.Sprintf("note = $%d", len(args)))
	}
	if len(set) == 0 && len(goals) == 0 && len(balances) == 0 {
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if len(set) > 0 {
		args = append(args, userID, id)
		query := fmt.Sprintf(`UPDATE savings_movements SET %s, updated_at = now() WHERE user_id = $%d AND id = $%d`,
			strings.Join(set, ", "), len(args)-1, len(args))

		tag, err := tx.Exec(ctx, query, args...)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrSavingsMovementNotFound
		}
	}

	if err := writeGoalAmounts(ctx, tx, userID, goals); err != nil {
		return err
	}
	if err := writeBalances(ctx, tx, userID, balances); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// DeleteWithEffects removes the movement and persists the reversed goal
// totals and account balances atomically
func (r *SavingsMovementRepository) DeleteWithEffects(userID uuid.UUID, id int32, goals []domain.GoalAmountWrite, balances []domain.BalanceWrite) error {
	ctx, cancel := queryCtx()
	defer cancel()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const query = `DELETE FROM savings_movements WHERE user_id = $1 AND id = $2`

	tag, err := tx.Exec(ctx, query, userID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSavingsMovementNotFound
	}

	if err := writeGoalAmounts(ctx, tx, userID, goals); err != nil {
		return err
	}
	if err := writeBalances(ctx, tx, userID, balances); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// writeGoalAmounts persists goal current-amount values inside an open
// database transaction
func writeGoalAmounts(ctx context.Context, tx pgx.Tx, userID uuid.UUID, goals []domain.GoalAmountWrite) error {
	const query = `UPDATE savings_goals SET current_amount = $1, updated_at = now() WHERE user_id = $2 AND id = $3`

	for _, gw := range goals {
		current, err := decimalToPgNumeric(gw.CurrentAmount)
		if err != nil {
			return fmt.Errorf("invalid current amount: %w", err)
		}
		tag, err := tx.Exec(ctx, query, current, userID, gw.GoalID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrSavingsGoalNotFound
		}
	}
	return nil
}

func scanMovement(row rowScanner) (*domain.SavingsMovement, error) {
	var (
		m      domain.SavingsMovement
		amount pgtype.Numeric
		note   pgtype.Text
	)
	err := row.Scan(&m.ID, &m.UserID, &m.GoalID, &m.AccountID, &m.Type, &amount, &m.Date, &note, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrSavingsMovementNotFound
		}
		return nil, err
	}
	m.Amount = pgNumericToDecimal(amount)
	m.Note = pgTextToStringPtr(note)
	return &m, nil
}
