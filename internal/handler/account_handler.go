package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/haldorr/pennywise-backend/internal/domain"
	"github.com/haldorr/pennywise-backend/internal/store"
)

// AccountHandler handles account-related HTTP requests
type AccountHandler struct {
	storeAccessor
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(stores *store.Manager) *AccountHandler {
	return &AccountHandler{storeAccessor{stores: stores}}
}

// CreateAccountRequest represents the create account request body
type CreateAccountRequest struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Balance string `json:"balance,omitempty"`
}

// UpdateAccountRequest represents the update account request body
type UpdateAccountRequest struct {
	Name *string `json:"name"`
	Type *string `json:"type"`
}

// CreateAccount handles POST /api/v1/accounts
func (h *AccountHandler) CreateAccount(c echo.Context) error {
	s, err := h.userStore(c)
	if s == nil {
		return err
	}

	var req CreateAccountRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	if req.Name == "" {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "name", Message: "Name is required"},
		})
	}
	if len(req.Name) > domain.MaxNameLength {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "name", Message: "Name must be 255 characters or less"},
		})
	}
	if !domain.ValidAccountType(domain.AccountType(req.Type)) {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "type", Message: "Type must be one of: checking, savings, credit"},
		})
	}

	balance := decimal.Zero
	if req.Balance != "" {
		balance, err = decimal.NewFromString(req.Balance)
		if err != nil {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "balance", Message: "Must be a valid decimal number"},
			})
		}
	}

	account, err := s.AddAccount(&domain.Account{
		Name:    req.Name,
		Type:    domain.AccountType(req.Type),
		Balance: balance,
	})
	if err != nil {
		log.Error().Err(err).Stringer("user_id", s.UserID()).Msg("Failed to create account")
		return NewInternalError(c, "Failed to create account")
	}

	log.Info().Stringer("user_id", s.UserID()).Int32("account_id", account.ID).Str("name", account.Name).Msg("Account created")
	return c.JSON(http.StatusCreated, account)
}

// GetAccounts handles GET /api/v1/accounts
func (h *AccountHandler) GetAccounts(c echo.Context) error {
	s, err := h.userStore(c)
	if s == nil {
		return err
	}
	return c.JSON(http.StatusOK, s.Accounts())
}

// UpdateAccount handles PUT /api/v1/accounts/:id
func (h *AccountHandler) UpdateAccount(c echo.Context) error {
	s, err := h.userStore(c)
	if s == nil {
		return err
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid account ID", nil)
	}

	var req UpdateAccountRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	update := &domain.AccountUpdate{Name: req.Name}
	if req.Name != nil {
		if *req.Name == "" {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "name", Message: "Name is required"},
			})
		}
		if len(*req.Name) > domain.MaxNameLength {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "name", Message: "Name must be 255 characters or less"},
			})
		}
	}
	if req.Type != nil {
		accountType := domain.AccountType(*req.Type)
		if !domain.ValidAccountType(accountType) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "type", Message: "Type must be one of: checking, savings, credit"},
			})
		}
		update.Type = &accountType
	}

	if err := s.UpdateAccount(int32(id), update); err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return NewNotFoundError(c, "Account not found")
		}
		log.Error().Err(err).Stringer("user_id", s.UserID()).Int("account_id", id).Msg("Failed to update account")
		return NewInternalError(c, "Failed to update account")
	}

	return c.JSON(http.StatusOK, accountByID(s, int32(id)))
}

// DeleteAccount handles DELETE /api/v1/accounts/:id
func (h *AccountHandler) DeleteAccount(c echo.Context) error {
	s, err := h.userStore(c)
	if s == nil {
		return err
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid account ID", nil)
	}

	if err := s.RemoveAccount(int32(id)); err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return NewNotFoundError(c, "Account not found")
		}
		log.Error().Err(err).Stringer("user_id", s.UserID()).Int("account_id", id).Msg("Failed to delete account")
		return NewInternalError(c, "Failed to delete account")
	}

	log.Info().Stringer("user_id", s.UserID()).Int("account_id", id).Msg("Account deleted")
	return c.NoContent(http.StatusNoContent)
}
