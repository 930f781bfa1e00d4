package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/haldorr/pennywise-backend/internal/domain"
	"github.com/haldorr/pennywise-backend/internal/store"
)

// SavingsHandler handles savings goal and movement HTTP requests
type SavingsHandler struct {
	storeAccessor
}

// NewSavingsHandler creates a new SavingsHandler
func NewSavingsHandler(stores *store.Manager) *SavingsHandler {
	return &SavingsHandler{storeAccessor{stores: stores}}
}

// CreateSavingsGoalRequest represents the create savings goal request body
type CreateSavingsGoalRequest struct {
	Name         string  `json:"name"`
	TargetAmount string  `json:"targetAmount"`
	TargetDate   *string `json:"targetDate"`
}

// UpdateSavingsGoalRequest represents the update savings goal request body
type UpdateSavingsGoalRequest struct {
	Name         *string `json:"name"`
	TargetAmount *string `json:"targetAmount"`
	TargetDate   *string `json:"targetDate"`
}

// CreateMovementRequest represents the create savings movement request body
type CreateMovementRequest struct {
	GoalID    int32   `json:"goalId"`
	AccountID int32   `json:"accountId"`
	Type      string  `json:"type"`
	Amount    string  `json:"amount"`
	Date      string  `json:"date"`
	Note      *string `json:"note"`
}

// UpdateMovementRequest represents the update savings movement request body
type UpdateMovementRequest struct {
	GoalID    *int32  `json:"goalId"`
	AccountID *int32  `json:"accountId"`
	Type      *string `json:"type"`
	Amount    *string `json:"amount"`
	Date      *string `json:"date"`
	Note      *string `json:"note"`
}

// CreateGoal handles POST /api/v1/savings/goals
func (h *SavingsHandler) CreateGoal(c echo.Context) error {
	s, err := h.userStore(c)
	if s == nil {
		return err
	}

	var req CreateSavingsGoalRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	if req.Name == "" {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "name", Message: "Name is required"},
		})
	}
	targetAmount, err := decimal.NewFromString(req.TargetAmount)
	if err != nil || !targetAmount.IsPositive() {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "targetAmount", Message: "Target amount must be a positive decimal number"},
		})
	}

	var targetDate *time.Time
	if req.TargetDate != nil && *req.TargetDate != "" {
		d, err := time.Parse(dateLayout, *req.TargetDate)
		if err != nil {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "targetDate", Message: "Date must be in YYYY-MM-DD format"},
			})
		}
		targetDate = &d
	}

	goal, err := s.AddSavingsGoal(&domain.SavingsGoal{
		Name:         req.Name,
		TargetAmount: targetAmount,
		TargetDate:   targetDate,
	})
	if err != nil {
		log.Error().Err(err).Stringer("user_id", s.UserID()).Msg("Failed to create savings goal")
		return NewInternalError(c, "Failed to create savings goal")
	}

	log.Info().Stringer("user_id", s.UserID()).Int32("goal_id", goal.ID).Str("name", goal.Name).Msg("Savings goal created")
	return c.JSON(http.StatusCreated, goal)
}

// GetGoals handles GET /api/v1/savings/goals
func (h *SavingsHandler) GetGoals(c echo.Context) error {
	s, err := h.userStore(c)
	if s == nil {
		return err
	}
	return c.JSON(http.StatusOK, s.SavingsGoals())
}

// UpdateGoal handles PUT /api/v1/savings/goals/:id
func (h *SavingsHandler) UpdateGoal(c echo.Context) error {
	s, err := h.userStore(c)
	if s == nil {
		return err
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid savings goal ID", nil)
	}

	var req UpdateSavingsGoalRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	if req.Name != nil && *req.Name == "" {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "name", Message: "Name is required"},
		})
	}

	update := &domain.SavingsGoalUpdate{Name: req.Name}
	if req.TargetAmount != nil {
		targetAmount, err := decimal.NewFromString(*req.TargetAmount)
		if err != nil || !targetAmount.IsPositive() {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "targetAmount", Message: "Target amount must be a positive decimal number"},
			})
		}
		update.TargetAmount = &targetAmount
	}
	if req.TargetDate != nil {
		d, err := time.Parse(dateLayout, *req.TargetDate)
		if err != nil {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "targetDate", Message: "Date must be in YYYY-MM-DD format"},
			})
		}
		update.TargetDate = &d
	}

	if err := s.UpdateSavingsGoal(int32(id), update); err != nil {
		if errors.Is(err, domain.ErrSavingsGoalNotFound) {
			return NewNotFoundError(c, "Savings goal not found")
		}
		log.Error().Err(err).Stringer("user_id", s.UserID()).Int("goal_id", id).Msg("Failed to update savings goal")
		return NewInternalError(c, "Failed to update savings goal")
	}

	return c.JSON(http.StatusOK, savingsGoalByID(s, int32(id)))
}

// DeleteGoal handles DELETE /api/v1/savings/goals/:id
func (h *SavingsHandler) DeleteGoal(c echo.Context) error {
	s, err := h.userStore(c)
	if s == nil {
		return err
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid savings goal ID", nil)
	}

	if err := s.RemoveSavingsGoal(int32(id)); err != nil {
		if errors.Is(err, domain.ErrSavingsGoalNotFound) {
			return NewNotFoundError(c, "Savings goal not found")
		}
		log.Error().Err(err).Stringer("user_id", s.UserID()).Int("goal_id", id).Msg("Failed to delete savings goal")
		return NewInternalError(c, "Failed to delete savings goal")
	}

	log.Info().Stringer("user_id", s.UserID()).Int("goal_id", id).Msg("Savings goal deleted")
	return c.NoContent(http.StatusNoContent)
}

// CreateMovement handles POST /api/v1/savings/movements
func (h *SavingsHandler) CreateMovement(c echo.Context) error {
	s, err := h.userStore(c)
	if s == nil {
		return err
	}

	var req CreateMovementRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	if !domain.ValidMovementType(domain.MovementType(req.Type)) {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "type", Message: "Type must be one of: deposit, withdraw"},
		})
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || !amount.IsPositive() {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "amount", Message: "Amount must be a positive decimal number"},
		})
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "date", Message: "Date must be in YYYY-MM-DD format"},
		})
	}

	movement, err := s.AddMovement(&domain.SavingsMovement{
		GoalID:    req.GoalID,
		AccountID: req.AccountID,
		Type:      domain.MovementType(req.Type),
		Amount:    amount,
		Date:      date,
		Note:      req.Note,
	})
	if err != nil {
		if isNotFound(err) {
			return NewNotFoundError(c, "Savings goal or account not found")
		}
		if errors.Is(err, domain.ErrInsufficientFunds) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "amount", Message: "Withdrawal exceeds the goal's saved amount"},
			})
		}
		log.Error().Err(err).Stringer("user_id", s.UserID()).Msg("Failed to create savings movement")
		return NewInternalError(c, "Failed to create savings movement")
	}

	log.Info().Stringer("user_id", s.UserID()).Int32("movement_id", movement.ID).Str("type", string(movement.Type)).Msg("Savings movement created")
	return c.JSON(http.StatusCreated, movement)
}

// GetMovements handles GET /api/v1/savings/movements
//
// The optional goalId query parameter narrows the list to one goal.
func (h *SavingsHandler) GetMovements(c echo.Context) error {
	s, err := h.userStore(c)
	if s == nil {
		return err
	}

	movements := s.SavingsMovements()
	if v := c.QueryParam("goalId"); v != "" {
		goalID, err := strconv.Atoi(v)
		if err != nil {
			return NewValidationError(c, "Invalid goalId filter", nil)
		}
		filtered := make([]*domain.SavingsMovement, 0, len(movements))
		for _, m := range movements {
			if m.GoalID == int32(goalID) {
				filtered = append(filtered, m)
			}
		}
		movements = filtered
	}

	return c.JSON(http.StatusOK, movements)
}

// UpdateMovement handles PUT /api/v1/savings/movements/:id
func (h *SavingsHandler) UpdateMovement(c echo.Context) error {
	s, err := h.userStore(c)
	if s == nil {
		return err
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid savings movement ID", nil)
	}

	var req UpdateMovementRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	update := &domain.SavingsMovementUpdate{
		GoalID:    req.GoalID,
		AccountID: req.AccountID,
		Note:      req.Note,
	}
	if req.Type != nil {
		movementType := domain.MovementType(*req.Type)
		if !domain.ValidMovementType(movementType) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "type", Message: "Type must be one of: deposit, withdraw"},
			})
		}
		update.Type = &movementType
	}
	if req.Amount != nil {
		amount, err := decimal.NewFromString(*req.Amount)
		if err != nil || !amount.IsPositive() {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "amount", Message: "Amount must be a positive decimal number"},
			})
		}
		update.Amount = &amount
	}
	if req.Date != nil {
		date, err := time.Parse(dateLayout, *req.Date)
		if err != nil {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "date", Message: "Date must be in YYYY-MM-DD format"},
			})
		}
		update.Date = &date
	}

	if err := s.UpdateMovement(int32(id), update); err != nil {
		if isNotFound(err) {
			return NewNotFoundError(c, "Savings movement, goal or account not found")
		}
		if errors.Is(err, domain.ErrInsufficientFunds) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "amount", Message: "Update would overdraw a goal's saved amount"},
			})
		}
		log.Error().Err(err).Stringer("user_id", s.UserID()).Int("movement_id", id).Msg("Failed to update savings movement")
		return NewInternalError(c, "Failed to update savings movement")
	}

	return c.JSON(http.StatusOK, movementByID(s, int32(id)))
}

// DeleteMovement handles DELETE /api/v1/savings/movements/:id
func (h *SavingsHandler) DeleteMovement(c echo.Context) error {
	s, err := h.userStore(c)
	if s == nil {
		return err
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid savings movement ID", nil)
	}

	if err := s.RemoveMovement(int32(id)); err != nil {
		if errors.Is(err, domain.ErrSavingsMovementNotFound) {
			return NewNotFoundError(c, "Savings movement not found")
		}
		if errors.Is(err, domain.ErrInsufficientFunds) {
			return NewConflictError(c, "Removing this movement would overdraw the goal")
		}
		log.Error().Err(err).Stringer("user_id", s.UserID()).Int("movement_id", id).Msg("Failed to delete savings movement")
		return NewInternalError(c, "Failed to delete savings movement")
	}

	log.Info().Stringer("user_id", s.UserID()).Int("movement_id", id).Msg("Savings movement deleted")
	return c.NoContent(http.StatusNoContent)
}
