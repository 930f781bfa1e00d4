package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type MovementType string

const (
	MovementTypeDeposit  MovementType = "deposit"
	MovementTypeWithdraw MovementType = "withdraw"
)

// ValidMovementType reports whether t is one of the known movement types.
func ValidMovementType(t MovementType) bool {
	return t == MovementTypeDeposit || t == MovementTypeWithdraw
}

// SavingsMovement transfers value between an account's balance and a savings
// goal's tracked total. A deposit moves money from the account into the goal;
// a withdrawal moves it back.
type SavingsMovement struct {
	ID        int32           `json:"id"`
	UserID    uuid.UUID       `json:"userId"`
	GoalID    int32           `json:"goalId"`
	AccountID int32           `json:"accountId"`
	Type      MovementType    `json:"type"`
	Amount    decimal.Decimal `json:"amount"`
	Date      time.Time       `json:"date"`
	Note      *string         `json:"note,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// GoalEffect is the signed contribution of the movement to its goal's current
// amount: +amount for deposits, -amount for withdrawals.
func (m *SavingsMovement) GoalEffect() decimal.Decimal {
	if m.Type == MovementTypeDeposit {
		return m.Amount
	}
	return m.Amount.Neg()
}

// AccountEffect is the signed contribution of the movement to its account's
// balance: the mirror of GoalEffect.
func (m *SavingsMovement) AccountEffect() decimal.Decimal {
	return m.GoalEffect().Neg()
}

// SavingsMovementUpdate carries the changed fields of a partial update.
type SavingsMovementUpdate struct {
	GoalID    *int32
	AccountID *int32
	Type      *MovementType
	Amount    *decimal.Decimal
	Date      *time.Time
	Note      *string
}

// GoalAmountWrite is one goal current-amount value to persist alongside a
// coupled movement write.
type GoalAmountWrite struct {
	GoalID        int32
	CurrentAmount decimal.Decimal
}

type SavingsMovementRepository interface {
	GetAllByUser(userID uuid.UUID) ([]*SavingsMovement, error)
	// CreateWithEffects inserts the movement and writes the given goal totals
	// and account balances in a single database transaction.
	CreateWithEffects(movement *SavingsMovement, goals []GoalAmountWrite, balances []BalanceWrite) (*SavingsMovement, error)
	// UpdateWithEffects applies the partial update and writes the given goal
	// totals and account balances in a single database transaction.
	UpdateWithEffects(userID uuid.UUID, id int32, update *SavingsMovementUpdate, goals []GoalAmountWrite, balances []BalanceWrite) error
	// DeleteWithEffects deletes the movement and writes the given goal totals
	// and account balances in a single database transaction.
	DeleteWithEffects(userID uuid.UUID, id int32, goals []GoalAmountWrite, balances []BalanceWrite) error
}
