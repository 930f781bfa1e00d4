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

// AccountRepository implements domain.AccountRepository using PostgreSQL
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

// Create inserts a new account and returns the stored row
func (r *AccountRepository) Create(account *domain.Account) (*domain.Account, error) {
	ctx, cancel := queryCtx()
	defer cancel()

	balance, err := decimalToPgNumeric(account.Balance)
	if err != nil {
		return nil, fmt.Errorf("invalid balance: %w", err)
	}

	const query = `
		INSERT INTO accounts (user_id, name, account_type, balance)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, name, account_type, balance, created_at, updated_at`

	row := r.pool.QueryRow(ctx, query, account.UserID, account.Name, string(account.Type), balance)
	return scanAccount(row)
}

// GetAllByUser retrieves every account owned by the user
func (r *AccountRepository) GetAllByUser(userID uuid.UUID) ([]*domain.Account, error) {
	ctx, cancel := queryCtx()
	defer cancel()

	const query = `
		SELECT id, user_id, name, account_type, balance, created_at, updated_at
		FROM accounts
		WHERE user_id = $1
		ORDER BY id`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

// Update applies the changed fields to an account
func (r *AccountRepository) Update(userID uuid.UUID, id int32, update *domain.AccountUpdate) error {
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
	if update.Type != nil {
		args = append(args, string(*update.Type))
		set = append(set, fmt.Sprintf("account_type = $%d", len(args)))
	}
	if len(set) == 0 {
		return nil
	}

	args = append(args, userID, id)
	query := fmt.Sprintf(`UPDATE accounts SET %s, updated_at = now() WHERE user_id = $%d AND id = $%d`,
		strings.Join(set, ", "), len(args)-1, len(args))

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

// Delete removes an account (rows referencing it cascade)
func (r *AccountRepository) Delete(userID uuid.UUID, id int32) error {
	ctx, cancel := queryCtx()
	defer cancel()

	const query = `DELETE FROM accounts WHERE user_id = $1 AND id = $2`

	tag, err := r.pool.Exec(ctx, query, userID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*domain.Account, error) {
	var (
		a       domain.Account
		balance pgtype.Numeric
	)
	err := row.Scan(&a.ID, &a.UserID, &a.Name, &a.Type, &balance, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	a.Balance = pgNumericToDecimal(balance)
	return &a, nil
}
