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

// TransactionRepository implements domain.TransactionRepository using
// PostgreSQL. Every mutation that moves an account balance runs the row write
// and the balance writes inside one database transaction, so a crash between
// the two can never leave the stored balance stale relative to the ledger.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

const transactionColumns = `id, user_id, account_id, category_id, description, amount, transaction_type, transaction_date, payment_type, created_at, updated_at`

// GetAllByUser retrieves every transaction owned by the user
func (r *TransactionRepository) GetAllByUser(userID uuid.UUID) ([]*domain.Transaction, error) {
	ctx, cancel := queryCtx()
	defer cancel()

	const query = `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE user_id = $1
		ORDER BY transaction_date, id`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []*domain.Transaction
	for rows.Next() {
		transaction, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, transaction)
	}
	return transactions, rows.Err()
}

// CreateWithBalances inserts the transaction and persists the adjusted
// account balances atomically
func (r *TransactionRepository) CreateWithBalances(transaction *domain.Transaction, balances []domain.BalanceWrite) (*domain.Transaction, error) {
	ctx, cancel := queryCtx()
	defer cancel()

	amount, err := decimalToPgNumeric(transaction.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const query = `
		INSERT INTO transactions (user_id, account_id, category_id, description, amount, transaction_type, transaction_date, payment_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + transactionColumns

	row := tx.QueryRow(ctx, query,
		transaction.UserID, transaction.AccountID, transaction.CategoryID, transaction.Description,
		amount, string(transaction.Type), transaction.Date, paymentTypeArg(transaction.PaymentType))
	created, err := scanTransaction(row)
	if err != nil {
		return nil, err
	}

	if err := writeBalances(ctx, tx, transaction.UserID, balances); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateWithBalances applies the partial update and persists the reconciled
// account balances atomically
func (r *TransactionRepository) UpdateWithBalances(userID uuid.UUID, id int32, update *domain.TransactionUpdate, balances []domain.BalanceWrite) error {
	ctx, cancel := queryCtx()
	defer cancel()

	var (
		set  []string
		args []any
	)
	if update.Description != nil {
		args = append(args, *update.Description)
		set = append(set, fmt.Sprintf("description = $%d", len(args)))
	}
	if update.Amount != nil {
		amount, err := decimalToPgNumeric(*update.Amount)
		if err != nil {
			return fmt.Errorf("invalid amount: %w", err)
		}
		args = append(args, amount)
		set = append(set, fmt.Sprintf("amount = $%d", len(args)))
	}
	if update.Type != nil {
		args = append(args, string(*update.Type))
		set = append(set, fmt.Sprintf("transaction_type = $%d", len(args)))
	}
	if update.Date != nil {
		args = append(args, *update.Date)
		set = append(set, fmt.Sprintf("transaction_date = $%d", len(args)))
	}
	if update.AccountID != nil {
		args = append(args, *update.AccountID)
		set = append(set, fmt.Sprintf("account_id = $%d", len(args)))
	}
	if update.CategoryID != nil {
		args = append(args, *update.CategoryID)
		set = append(set, fmt.Sprintf("category_id = $%d", len(args)))
	}
	if update.PaymentType != nil {
		args = append(args, string(*update.PaymentType))
		set = append(set, fmt.Sprintf("payment_type = $%d", len(args)))
	}
	if len(set) == 0 && len(balances) == 0 {
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if len(set) > 0 {
		args = append(args, userID, id)
		query := fmt.Sprintf(`UPDATE transactions SET %s, updated_at = now() WHERE user_id = $%d AND id = $%d`,
			strings.Join(set, ", "), len(args)-1, len(args))

		tag, err := tx.Exec(ctx, query, args...)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrTransactionNotFound
		}
	}

	if err := writeBalances(ctx, tx, userID, balances); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// DeleteWithBalances removes the transaction and persists the reversed
// account balance atomically
func (r *TransactionRepository) DeleteWithBalances(userID uuid.UUID, id int32, balances []domain.BalanceWrite) error {
	ctx, cancel := queryCtx()
	defer cancel()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const query = `DELETE FROM transactions WHERE user_id = $1 AND id = $2`

	tag, err := tx.Exec(ctx, query, userID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}

	if err := writeBalances(ctx, tx, userID, balances); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// writeBalances persists account balance values inside an open database
// transaction
func writeBalances(ctx context.Context, tx pgx.Tx, userID uuid.UUID, balances []domain.BalanceWrite) error {
	const query = `UPDATE accounts SET balance = $1, updated_at = now() WHERE user_id = $2 AND id = $3`

	for _, bw := range balances {
		balance, err := decimalToPgNumeric(bw.Balance)
		if err != nil {
			return fmt.Errorf("invalid balance: %w", err)
		}
		tag, err := tx.Exec(ctx, query, balance, userID, bw.AccountID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrAccountNotFound
		}
	}
	return nil
}

func scanTransaction(row rowScanner) (*domain.Transaction, error) {
	var (
		t           domain.Transaction
		amount      pgtype.Numeric
		paymentType pgtype.Text
	)
	err := row.Scan(&t.ID, &t.UserID, &t.AccountID, &t.CategoryID, &t.Description,
		&amount, &t.Type, &t.Date, &paymentType, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}
	t.Amount = pgNumericToDecimal(amount)
	if paymentType.Valid {
		pt := domain.PaymentType(paymentType.String)
		t.PaymentType = &pt
	}
	return &t, nil
}

func paymentTypeArg(t *domain.PaymentType) any {
	if t == nil {
		return nil
	}
	return string(*t)
}
