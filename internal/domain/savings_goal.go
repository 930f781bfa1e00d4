package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SavingsGoal tracks progress toward a target amount. CurrentAmount is a
// running total adjusted only by the store when movements against the goal are
// mutated; the invariant is that it equals the net sum of deposits minus
// withdrawals.
type SavingsGoal struct {
	ID            int32           `json:"id"`
	UserID        uuid.UUID       `json:"userId"`
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	TargetDate    *time.Time      `json:"targetDate,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// SavingsGoalUpdate carries the changed fields of a partial update.
// CurrentAmount is absent on purpose: it moves only through coupled
// movement writes.
type SavingsGoalUpdate struct {
	Name         *string
	TargetAmount *decimal.Decimal
	TargetDate   *time.Time
}

type SavingsGoalRepository interface {
	Create(goal *SavingsGoal) (*SavingsGoal, error)
	GetAllByUser(userID uuid.UUID) ([]*SavingsGoal, error)
	Update(userID uuid.UUID, id int32, update *SavingsGoalUpdate) error
	Delete(userID uuid.UUID, id int32) error
}
