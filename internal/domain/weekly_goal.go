package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WeekGroupCount is the maximum number of week groups a month report carries;
// months spanning more Monday boundaries collapse into the last group.
const WeekGroupCount = 5

// WeeklyGoal is the planned budget for one category in one month: up to five
// per-week amounts (unset entries mean "no plan for that week") plus an
// optional whole-month amount for monthly/recurring charges. One row per
// (user, year, month, category) — writes are upserts on that key.
type WeeklyGoal struct {
	ID            int32                            `json:"id"`
	UserID        uuid.UUID                        `json:"userId"`
	CategoryID    int32                            `json:"categoryId"`
	Year          int                              `json:"year"`
	Month         int                              `json:"month"`
	Weeks         [WeekGroupCount]*decimal.Decimal `json:"weeks"`
	MonthlyAmount *decimal.Decimal                 `json:"monthlyAmount,omitempty"`
	CreatedAt     time.Time                        `json:"createdAt"`
	UpdatedAt     time.Time                        `json:"updatedAt"`
}

type WeeklyGoalRepository interface {
	Upsert(goal *WeeklyGoal) (*WeeklyGoal, error)
	GetAllByUser(userID uuid.UUID) ([]*WeeklyGoal, error)
	Delete(userID uuid.UUID, year, month int, categoryID int32) error
}
