package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AccountType string

const (
	AccountTypeChecking AccountType = "checking"
	AccountTypeSavings  AccountType = "savings"
	AccountTypeCredit   AccountType = "credit"
)

// ValidAccountType reports whether t is one of the known account types.
func ValidAccountType(t AccountType) bool {
	switch t {
	case AccountTypeChecking, AccountTypeSavings, AccountTypeCredit:
		return true
	}
	return false
}

// Account holds a stored running balance. The balance is only ever adjusted by
// the store as a side effect of transaction and savings-movement mutations;
// the invariant is that it equals the sum of signed effects applied since
// creation.
type Account struct {
	ID        int32           `json:"id"`
	UserID    uuid.UUID       `json:"userId"`
	Name      string          `json:"name"`
	Type      AccountType     `json:"type"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// AccountUpdate carries the changed fields of a partial account update.
// Balance is deliberately absent: balances move only through coupled writes.
type AccountUpdate struct {
	Name *string
	Type *AccountType
}

type AccountRepository interface {
	Create(account *Account) (*Account, error)
	GetAllByUser(userID uuid.UUID) ([]*Account, error)
	Update(userID uuid.UUID, id int32, update *AccountUpdate) error
	Delete(userID uuid.UUID, id int32) error
}
