package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/haldorr/pennywise-backend/internal/domain"
	"github.com/haldorr/pennywise-backend/internal/util"
)

// WeekGroup is one contiguous run of days treated as a single reporting
// bucket. Groups start on Mondays; the first group starts on day 1 regardless
// of weekday, and overflow past the fifth group is absorbed by the fifth.
type WeekGroup struct {
	Index    int `json:"index"`
	FirstDay int `json:"firstDay"`
	LastDay  int `json:"lastDay"`
}

// CategoryTotals is one expense category's actual spend within a month:
// single-payment amounts per week group plus a whole-month column for
// monthly and recurring payments.
type CategoryTotals struct {
	CategoryID int32                            `json:"categoryId"`
	Weeks      [domain.WeekGroupCount]decimal.Decimal `json:"weeks"`
	Monthly    decimal.Decimal                  `json:"monthly"`
	Total      decimal.Decimal                  `json:"total"`
}

// MonthlyReport is the weekly-bucketed expense view of one month. A month
// with no transactions still carries its full week-group grid.
type MonthlyReport struct {
	Year         int               `json:"year"`
	Month        int               `json:"month"`
	Groups       []WeekGroup       `json:"groups"`
	Categories   []*CategoryTotals `json:"categories"`
	WeekTotals   [domain.WeekGroupCount]decimal.Decimal `json:"weekTotals"`
	MonthlyTotal decimal.Decimal   `json:"monthlyTotal"`
	TotalExpense decimal.Decimal   `json:"totalExpense"`
	TotalIncome  decimal.Decimal   `json:"totalIncome"`
}

// weekGroups partitions the days of a month into Monday-start groups. A naive
// partition can yield six groups; days past the fifth fold into it.
func weekGroups(year, month int) []WeekGroup {
	days := util.DaysInMonth(year, month)
	first := util.FirstOfMonth(year, month)

	var groups []WeekGroup
	for day := 1; day <= days; day++ {
		weekday := first.AddDate(0, 0, day-1).Weekday()
		if day == 1 || (weekday == time.Monday && len(groups) < domain.WeekGroupCount) {
			groups = append(groups, WeekGroup{Index: len(groups), FirstDay: day, LastDay: day})
			continue
		}
		groups[len(groups)-1].LastDay = day
	}
	return groups
}

// groupForDay returns the index of the week group containing the day.
func groupForDay(groups []WeekGroup, day int) int {
	for _, g := range groups {
		if day >= g.FirstDay && day <= g.LastDay {
			return g.Index
		}
	}
	return len(groups) - 1
}

// bucketDate normalizes a stored date before bucketing. Date-only values live
// at UTC midnight and render a day early west of UTC, so the original report
// grouped by date plus one day; the shift is kept so dates near month
// boundaries land in the same buckets.
func bucketDate(date time.Time) time.Time {
	return date.AddDate(0, 0, 1)
}

// Monthly buckets one month's expenses into Monday-start week groups.
// Single-payment expenses land in the group containing their normalized
// date; monthly and recurring expenses bypass the grid and sum into the
// whole-month column per category.
func Monthly(transactions []*domain.Transaction, year, month int) (*MonthlyReport, error) {
	if !util.ValidYearMonth(year, month) {
		return nil, domain.ErrInvalidYearMonth
	}

	report := &MonthlyReport{
		Year:         year,
		Month:        month,
		Groups:       weekGroups(year, month),
		MonthlyTotal: decimal.Zero,
		TotalExpense: decimal.Zero,
		TotalIncome:  decimal.Zero,
	}
	for i := range report.WeekTotals {
		report.WeekTotals[i] = decimal.Zero
	}

	byCategory := make(map[int32]*CategoryTotals)
	totals := func(categoryID int32) *CategoryTotals {
		if ct, ok := byCategory[categoryID]; ok {
			return ct
		}
		ct := &CategoryTotals{
			CategoryID: categoryID,
			Monthly:    decimal.Zero,
			Total:      decimal.Zero,
		}
		for i := range ct.Weeks {
			ct.Weeks[i] = decimal.Zero
		}
		byCategory[categoryID] = ct
		report.Categories = append(report.Categories, ct)
		return ct
	}

	for _, tx := range transactions {
		date := bucketDate(tx.Date)
		if date.Year() != year || int(date.Month()) != month {
			continue
		}
		if tx.Type == domain.TransactionTypeIncome {
			report.TotalIncome = report.TotalIncome.Add(tx.Amount)
			continue
		}

		ct := totals(tx.CategoryID)
		ct.Total = ct.Total.Add(tx.Amount)
		report.TotalExpense = report.TotalExpense.Add(tx.Amount)

		if tx.PaymentType != nil && *tx.PaymentType != domain.PaymentTypeSingle {
			ct.Monthly = ct.Monthly.Add(tx.Amount)
			report.MonthlyTotal = report.MonthlyTotal.Add(tx.Amount)
			continue
		}
		week := groupForDay(report.Groups, date.Day())
		ct.Weeks[week] = ct.Weeks[week].Add(tx.Amount)
		report.WeekTotals[week] = report.WeekTotals[week].Add(tx.Amount)
	}
	return report, nil
}
