// Package report computes derived views over store snapshots. Every function
// is pure: it reads the slices it is given and allocates its own results, so
// reports can be recomputed per request without touching the store.
package report

import (
	"github.com/shopspring/decimal"

	"github.com/haldorr/pennywise-backend/internal/domain"
)

// MonthSummary is one month's totals within an annual summary. A month is
// active when at least one transaction landed in it.
type MonthSummary struct {
	Month            int             `json:"month"`
	Income           decimal.Decimal `json:"income"`
	Expense          decimal.Decimal `json:"expense"`
	TransactionCount int             `json:"transactionCount"`
	Active           bool            `json:"active"`
}

// AnnualSummary is the 12-tile year overview.
type AnnualSummary struct {
	Year         int              `json:"year"`
	Months       [12]MonthSummary `json:"months"`
	TotalIncome  decimal.Decimal  `json:"totalIncome"`
	TotalExpense decimal.Decimal  `json:"totalExpense"`
}

// Annual buckets the user's transactions into calendar months for the given
// year. Transactions dated in other years are ignored; a year with no
// transactions yields twelve zero months.
func Annual(transactions []*domain.Transaction, year int) (*AnnualSummary, error) {
	if year < domain.MinReportYear || year > domain.MaxReportYear {
		return nil, domain.ErrInvalidYearMonth
	}

	summary := &AnnualSummary{
		Year:         year,
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
	}
	for i := range summary.Months {
		summary.Months[i] = MonthSummary{
			Month:   i + 1,
			Income:  decimal.Zero,
			Expense: decimal.Zero,
		}
	}

	for _, tx := range transactions {
		if tx.Date.Year() != year {
			continue
		}
		m := &summary.Months[int(tx.Date.Month())-1]
		m.TransactionCount++
		m.Active = true
		switch tx.Type {
		case domain.TransactionTypeIncome:
			m.Income = m.Income.Add(tx.Amount)
			summary.TotalIncome = summary.TotalIncome.Add(tx.Amount)
		case domain.TransactionTypeExpense:
			m.Expense = m.Expense.Add(tx.Amount)
			summary.TotalExpense = summary.TotalExpense.Add(tx.Amount)
		}
	}
	return summary, nil
}
