package report

import (
	"github.com/shopspring/decimal"

	"github.com/haldorr/pennywise-backend/internal/domain"
)

// CategoryComparison pairs one expense category's planned amounts against its
// actual spend. Difference is planned minus actual, so overspending shows as
// a negative remainder.
type CategoryComparison struct {
	CategoryID     int32                                  `json:"categoryId"`
	CategoryName   string                                 `json:"categoryName"`
	PlannedWeeks   [domain.WeekGroupCount]decimal.Decimal `json:"plannedWeeks"`
	PlannedMonthly decimal.Decimal                        `json:"plannedMonthly"`
	PlannedTotal   decimal.Decimal                        `json:"plannedTotal"`
	ActualWeeks    [domain.WeekGroupCount]decimal.Decimal `json:"actualWeeks"`
	ActualMonthly  decimal.Decimal                        `json:"actualMonthly"`
	ActualTotal    decimal.Decimal                        `json:"actualTotal"`
	Difference     decimal.Decimal                        `json:"difference"`
}

// Comparison is the plan-vs-actual table for one month.
type Comparison struct {
	Year         int                   `json:"year"`
	Month        int                   `json:"month"`
	Categories   []*CategoryComparison `json:"categories"`
	PlannedTotal decimal.Decimal       `json:"plannedTotal"`
	ActualTotal  decimal.Decimal       `json:"actualTotal"`
	Difference   decimal.Decimal       `json:"difference"`
}

// Compare builds the plan-vs-actual view for the report's month. Every
// expense category appears, whether it carries a plan, actual spend, both or
// neither, so the table shape is stable as plans are filled in.
func Compare(report *MonthlyReport, goals []*domain.WeeklyGoal, categories []*domain.Category) *Comparison {
	comparison := &Comparison{
		Year:         report.Year,
		Month:        report.Month,
		PlannedTotal: decimal.Zero,
		ActualTotal:  decimal.Zero,
	}

	actuals := make(map[int32]*CategoryTotals, len(report.Categories))
	for _, ct := range report.Categories {
		actuals[ct.CategoryID] = ct
	}
	plans := make(map[int32]*domain.WeeklyGoal, len(goals))
	for _, g := range goals {
		if g.Year == report.Year && g.Month == report.Month {
			plans[g.CategoryID] = g
		}
	}

	for _, category := range categories {
		if category.Type != domain.CategoryTypeExpense {
			continue
		}
		row := &CategoryComparison{
			CategoryID:     category.ID,
			CategoryName:   category.Name,
			PlannedMonthly: decimal.Zero,
			PlannedTotal:   decimal.Zero,
			ActualMonthly:  decimal.Zero,
			ActualTotal:    decimal.Zero,
		}
		for i := range row.PlannedWeeks {
			row.PlannedWeeks[i] = decimal.Zero
			row.ActualWeeks[i] = decimal.Zero
		}

		if plan, ok := plans[category.ID]; ok {
			for i, amount := range plan.Weeks {
				if amount == nil {
					continue
				}
				row.PlannedWeeks[i] = *amount
				row.PlannedTotal = row.PlannedTotal.Add(*amount)
			}
			if plan.MonthlyAmount != nil {
				row.PlannedMonthly = *plan.MonthlyAmount
				row.PlannedTotal = row.PlannedTotal.Add(*plan.MonthlyAmount)
			}
		}
		if actual, ok := actuals[category.ID]; ok {
			row.ActualWeeks = actual.Weeks
			row.ActualMonthly = actual.Monthly
			row.ActualTotal = actual.Total
		}

		row.Difference = row.PlannedTotal.Sub(row.ActualTotal)
		comparison.PlannedTotal = comparison.PlannedTotal.Add(row.PlannedTotal)
		comparison.ActualTotal = comparison.ActualTotal.Add(row.ActualTotal)
		comparison.Categories = append(comparison.Categories, row)
	}

	comparison.Difference = comparison.PlannedTotal.Sub(comparison.ActualTotal)
	return comparison
}
