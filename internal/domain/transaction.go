package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// ValidTransactionType reports whether t is one of the known transaction types.
func ValidTransactionType(t TransactionType) bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// PaymentType classifies an expense as a one-off, a month-bucketed charge or a
// recurring charge. It controls which reporting bucket the expense lands in:
// monthly and recurring expenses are excluded from weekly buckets.
type PaymentType string

const (
	PaymentTypeSingle    PaymentType = "single"
	PaymentTypeMonthly   PaymentType = "monthly"
	PaymentTypeRecurring PaymentType = "recurring"
)

// ValidPaymentType reports whether t is one of the known payment types.
func ValidPaymentType(t PaymentType) bool {
	switch t {
	case PaymentTypeSingle, PaymentTypeMonthly, PaymentTypeRecurring:
		return true
	}
	return false
}

type Transaction struct {
	ID          int32           `json:"id"`
	UserID      uuid.UUID       `json:"userId"`
	AccountID   int32           `json:"accountId"`
	CategoryID  int32           `json:"categoryId"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Type        TransactionType `json:"type"`
	Date        time.Time       `json:"date"`
	PaymentType *PaymentType    `json:"paymentType,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// Effect is the signed contribution of the transaction to its account's
// balance: +amount for income, -amount for expense.
func (t *Transaction) Effect() decimal.Decimal {
	if t.Type == TransactionTypeIncome {
		return t.Amount
	}
	return t.Amount.Neg()
}

// TransactionUpdate carries the changed fields of a partial transaction
// update. Amount, type and account changes feed the balance reconciliation in
// the store.
type TransactionUpdate struct {
	Description *string
	Amount      *decimal.Decimal
	Type        *TransactionType
	Date        *time.Time
	AccountID   *int32
	CategoryID  *int32
	PaymentType *PaymentType
}

// BalanceWrite is one account-balance value to persist alongside a coupled
// transaction or movement write.
type BalanceWrite struct {
	AccountID int32
	Balance   decimal.Decimal
}

type TransactionRepository interface {
	GetAllByUser(userID uuid.UUID) ([]*Transaction, error)
	// CreateWithBalances inserts the transaction and writes the given account
	// balances in a single database transaction.
	CreateWithBalances(transaction *Transaction, balances []BalanceWrite) (*Transaction, error)
	// UpdateWithBalances applies the partial update and writes the given
	// account balances in a single database transaction.
	UpdateWithBalances(userID uuid.UUID, id int32, update *TransactionUpdate, balances []BalanceWrite) error
	// DeleteWithBalances deletes the transaction and writes the given account
	// balances in a single database transaction.
	DeleteWithBalances(userID uuid.UUID, id int32, balances []BalanceWrite) error
}
