package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/haldorr/pennywise-backend/internal/domain"
	"github.com/haldorr/pennywise-backend/internal/report"
	"github.com/haldorr/pennywise-backend/internal/store"
	"github.com/haldorr/pennywise-backend/internal/util"
)

// BudgetHandler handles weekly goal, monthly note and plan-vs-actual requests
type BudgetHandler struct {
	storeAccessor
}

// NewBudgetHandler creates a new BudgetHandler
func NewBudgetHandler(stores *store.Manager) *BudgetHandler {
	return &BudgetHandler{storeAccessor{stores: stores}}
}

// UpsertWeeklyGoalRequest represents the weekly goal upsert request body
type UpsertWeeklyGoalRequest struct {
	Weeks         []*string `json:"weeks"`
	MonthlyAmount *string   `json:"monthlyAmount"`
}

// UpsertMonthlyNoteRequest represents the monthly note upsert request body
type UpsertMonthlyNoteRequest struct {
	Content string `json:"content"`
}

// parseYearMonth reads and validates the :year/:month path parameters.
func parseYearMonth(c echo.Context) (int, int, bool) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		return 0, 0, false
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		return 0, 0, false
	}
	if !util.ValidYearMonth(year, month) {
		return 0, 0, false
	}
	return year, month, true
}

// GetWeeklyGoals handles GET /api/v1/budgets/:year/:month/goals
func (h *BudgetHandler) GetWeeklyGoals(c echo.Context) error {
	s, err := h.userStore(c)
	if s == nil {
		return err
	}

	year, month, ok := parseYearMonth(c)
	if !ok {
		return NewValidationError(c, "Invalid year or month", nil)
	}

	goals := make([]*domain.WeeklyGoal, 0)
	for _, g := range s.WeeklyGoals() {
		if g.Year == year && g.Month == month {
			goals = append(goals, g)
		}
	}
	return c.JSON(http.StatusOK, goals)
}

// UpsertWeeklyGoal handles PUT /api/v1/budgets/:year/:month/goals/:categoryId
func (h *BudgetHandler) UpsertWeeklyGoal(c echo.Context) error {
	s, err := h.userStore(c)
	if s == nil {
		return err
	}

	year, month, ok := parseYearMonth(c)
	if !ok {
		return NewValidationError(c, "Invalid year or month", nil)
	}
	categoryID, err := strconv.Atoi(c.Param("categoryId"))
	if err != nil {
		return NewValidationError(c, "Invalid category ID", nil)
	}

	category := categoryByID(s, int32(categoryID))
	if category == nil {
		return NewNotFoundError(c, "Category not found")
	}
	if category.Type != domain.CategoryTypeExpense {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "categoryId", Message: "Budget goals apply to expense categories only"},
		})
	}

	var req UpsertWeeklyGoalRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if len(req.Weeks) > domain.WeekGroupCount {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "weeks", Message: "At most 5 week amounts are allowed"},
		})
	}

	goal := &domain.WeeklyGoal{
		CategoryID: int32(categoryID),
		Year:       year,
		Month:      month,
	}
	for i, raw := range req.Weeks {
		if raw == nil || *raw == "" {
			continue
		}
		amount, err := decimal.NewFromString(*raw)
		if err != nil || amount.IsNegative() {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "weeks", Message: "Week amounts must be non-negative decimal numbers"},
			})
		}
		goal.Weeks[i] = &amount
	}
	if req.MonthlyAmount != nil && *req.MonthlyAmount != "" {
		amount, err := decimal.NewFromString(*req.MonthlyAmount)
		if err != nil || amount.IsNegative() {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "monthlyAmount", Message: "Monthly amount must be a non-negative decimal number"},
			})
		}
		goal.MonthlyAmount = &amount
	}

	saved, err := s.UpsertWeeklyGoal(goal)
	if err != nil {
		log.Error().Err(err).Stringer("user_id", s.UserID()).Int("category_id", categoryID).Msg("Failed to upsert weekly goal")
		return NewInternalError(c, "Failed to save budget goal")
	}

	return c.JSON(http.StatusOK, saved)
}

// DeleteWeeklyGoal handles DELETE /api/v1/budgets/:year/:month/goals/:categoryId
func (h *BudgetHandler) DeleteWeeklyGoal(c echo.Context) error {
	s, err := h.userStore(c)
	if s == nil {
		return err
	}

	year, month, ok := parseYearMonth(c)
	if !ok {
		return NewValidationError(c, "Invalid year or month", nil)
	}
	categoryID, err := strconv.Atoi(c.Param("categoryId"))
	if err != nil {
		return NewValidationError(c, "Invalid category ID", nil)
	}

	if err := s.RemoveWeeklyGoal(year, month, int32(categoryID)); err != nil {
		if errors.Is(err, domain.ErrWeeklyGoalNotFound) {
			return NewNotFoundError(c, "Budget goal not found")
		}
		log.Error().Err(err).Stringer("user_id", s.UserID()).Int("category_id", categoryID).Msg("Failed to delete weekly goal")
		return NewInternalError(c, "Failed to delete budget goal")
	}

	return c.NoContent(http.StatusNoContent)
}

// GetMonthlyNote handles GET /api/v1/budgets/:year/:month/note
func (h *BudgetHandler) GetMonthlyNote(c echo.Context) error {
	s, err := h.userStore(c)
	if s == nil {
		return err
	}

	year, month, ok := parseYearMonth(c)
	if !ok {
		return NewValidationError(c, "Invalid year or month", nil)
	}

	for _, note := range s.MonthlyNotes() {
		if note.Year == year && note.Month == month {
			return c.JSON(http.StatusOK, note)
		}
	}
	return NewNotFoundError(c, "Monthly note not found")
}

// UpsertMonthlyNote handles PUT /api/v1/budgets/:year/:month/note
func (h *BudgetHandler) UpsertMonthlyNote(c echo.Context) error {
	s, err := h.userStore(c)
	if s == nil {
		return err
	}

	year, month, ok := parseYearMonth(c)
	if !ok {
		return NewValidationError(c, "Invalid year or month", nil)
	}

	var req UpsertMonthlyNoteRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if len(req.Content) > domain.MaxNoteLength {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "content", Message: "Note must be 2000 characters or less"},
		})
	}

	note, err := s.UpsertMonthlyNote(&domain.MonthlyNote{
		Year:    year,
		Month:   month,
		Content: req.Content,
	})
	if err != nil {
		log.Error().Err(err).Stringer("user_id", s.UserID()).Int("year", year).Int("month", month).Msg("Failed to upsert monthly note")
		return NewInternalError(c, "Failed to save monthly note")
	}

	return c.JSON(http.StatusOK, note)
}

// DeleteMonthlyNote handles DELETE /api/v1/budgets/:year/:month/note
func (h *BudgetHandler) DeleteMonthlyNote(c echo.Context) error {
	s, err := h.userStore(c)
	if s == nil {
		return err
	}

	year, month, ok := parseYearMonth(c)
	if !ok {
		return NewValidationError(c, "Invalid year or month", nil)
	}

	if err := s.RemoveMonthlyNote(year, month); err != nil {
		if errors.Is(err, domain.ErrMonthlyNoteNotFound) {
			return NewNotFoundError(c, "Monthly note not found")
		}
		log.Error().Err(err).Stringer("user_id", s.UserID()).Int("year", year).Int("month", month).Msg("Failed to delete monthly note")
		return NewInternalError(c, "Failed to delete monthly note")
	}

	return c.NoContent(http.StatusNoContent)
}

// GetComparison handles GET /api/v1/budgets/:year/:month/comparison
func (h *BudgetHandler) GetComparison(c echo.Context) error {
	s, err := h.userStore(c)
	if s == nil {
		return err
	}

	year, month, ok := parseYearMonth(c)
	if !ok {
		return NewValidationError(c, "Invalid year or month", nil)
	}

	monthly, err := report.Monthly(s.Transactions(), year, month)
	if err != nil {
		return NewValidationError(c, "Invalid year or month", nil)
	}

	comparison := report.Compare(monthly, s.WeeklyGoals(), s.Categories())
	return c.JSON(http.StatusOK, comparison)
}
