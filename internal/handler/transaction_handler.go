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

const (
	dateLayout       = "2006-01-02"
	defaultPageLimit = 50
	maxPageLimit     = 500
)

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	storeAccessor
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(stores *store.Manager) *TransactionHandler {
	return &TransactionHandler{storeAccessor{stores: stores}}
}

// CreateTransactionRequest represents the create transaction request body
type CreateTransactionRequest struct {
	AccountID   int32   `json:"accountId"`
	CategoryID  int32   `json:"categoryId"`
	Description string  `json:"description"`
	Amount      string  `json:"amount"`
	Type        string  `json:"type"`
	Date        string  `json:"date"`
	PaymentType *string `json:"paymentType"`
}

// UpdateTransactionRequest represents the update transaction request body
type UpdateTransactionRequest struct {
	AccountID   *int32  `json:"accountId"`
	CategoryID  *int32  `json:"categoryId"`
	Description *string `json:"description"`
	Amount      *string `json:"amount"`
	Type        *string `json:"type"`
	Date        *string `json:"date"`
	PaymentType *string `json:"paymentType"`
}

// TransactionListResponse is a paginated transaction list
type TransactionListResponse struct {
	Transactions []*domain.Transaction `json:"transactions"`
	Total        int                   `json:"total"`
	Limit        int                   `json:"limit"`
	Offset       int                   `json:"offset"`
}

// CreateTransaction handles POST /api/v1/transactions
func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	s, err := h.userStore(c)
	if s == nil {
		return err
	}

	var req CreateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	if req.Description == "" {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "description", Message: "Description is required"},
		})
	}
	if !domain.ValidTransactionType(domain.TransactionType(req.Type)) {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "type", Message: "Type must be one of: income, expense"},
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

	var paymentType *domain.PaymentType
	if req.PaymentType != nil && *req.PaymentType != "" {
		pt := domain.PaymentType(*req.PaymentType)
		if !domain.ValidPaymentType(pt) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "paymentType", Message: "Payment type must be one of: single, monthly, recurring"},
			})
		}
		paymentType = &pt
	}

	transaction, err := s.AddTransaction(&domain.Transaction{
		AccountID:   req.AccountID,
		CategoryID:  req.CategoryID,
		Description: req.Description,
		Amount:      amount,
		Type:        domain.TransactionType(req.Type),
		Date:        date,
		PaymentType: paymentType,
	})
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return NewNotFoundError(c, "Account not found")
		}
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return NewNotFoundError(c, "Category not found")
		}
		if errors.Is(err, domain.ErrCategoryTypeMismatch) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "categoryId", Message: "Category type must match the transaction type"},
			})
		}
		log.Error().Err(err).Stringer("user_id", s.UserID()).Msg("Failed to create transaction")
		return NewInternalError(c, "Failed to create transaction")
	}

	log.Info().Stringer("user_id", s.UserID()).Int32("transaction_id", transaction.ID).Str("type", string(transaction.Type)).Msg("Transaction created")
	return c.JSON(http.StatusCreated, transaction)
}

// GetTransactions handles GET /api/v1/transactions
//
// Supported query parameters: type, accountId, categoryId, from, to
// (inclusive date bounds), limit and offset.
func (h *TransactionHandler) GetTransactions(c echo.Context) error {
	s, err := h.userStore(c)
	if s == nil {
		return err
	}

	transactions := s.Transactions()
	filtered := make([]*domain.Transaction, 0, len(transactions))

	var (
		txType     = c.QueryParam("type")
		accountID  int32
		categoryID int32
		from, to   *time.Time
	)

	if txType != "" && !domain.ValidTransactionType(domain.TransactionType(txType)) {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "type", Message: "Type must be one of: income, expense"},
		})
	}
	if v := c.QueryParam("accountId"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			return NewValidationError(c, "Invalid accountId filter", nil)
		}
		accountID = int32(id)
	}
	if v := c.QueryParam("categoryId"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			return NewValidationError(c, "Invalid categoryId filter", nil)
		}
		categoryID = int32(id)
	}
	if v := c.QueryParam("from"); v != "" {
		d, err := time.Parse(dateLayout, v)
		if err != nil {
			return NewValidationError(c, "Invalid from date", nil)
		}
		from = &d
	}
	if v := c.QueryParam("to"); v != "" {
		d, err := time.Parse(dateLayout, v)
		if err != nil {
			return NewValidationError(c, "Invalid to date", nil)
		}
		to = &d
	}

	for _, tx := range transactions {
		if txType != "" && string(tx.Type) != txType {
			continue
		}
		if accountID != 0 && tx.AccountID != accountID {
			continue
		}
		if categoryID != 0 && tx.CategoryID != categoryID {
			continue
		}
		if from != nil && tx.Date.Before(*from) {
			continue
		}
		if to != nil && tx.Date.After(*to) {
			continue
		}
		filtered = append(filtered, tx)
	}

	limit := defaultPageLimit
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return NewValidationError(c, "Invalid limit", nil)
		}
		if n > maxPageLimit {
			n = maxPageLimit
		}
		limit = n
	}
	offset := 0
	if v := c.QueryParam("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return NewValidationError(c, "Invalid offset", nil)
		}
		offset = n
	}

	total := len(filtered)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}

	return c.JSON(http.StatusOK, TransactionListResponse{
		Transactions: filtered[offset:end],
		Total:        total,
		Limit:        limit,
		Offset:       offset,
	})
}

// UpdateTransaction handles PUT /api/v1/transactions/:id
func (h *TransactionHandler) UpdateTransaction(c echo.Context) error {
	s, err := h.userStore(c)
	if s == nil {
		return err
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid transaction ID", nil)
	}

	var req UpdateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	update := &domain.TransactionUpdate{
		AccountID:  req.AccountID,
		CategoryID: req.CategoryID,
	}
	if req.Description != nil {
		if *req.Description == "" {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "description", Message: "Description is required"},
			})
		}
		update.Description = req.Description
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
	if req.Type != nil {
		txType := domain.TransactionType(*req.Type)
		if !domain.ValidTransactionType(txType) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "type", Message: "Type must be one of: income, expense"},
			})
		}
		update.Type = &txType
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
	if req.PaymentType != nil {
		pt := domain.PaymentType(*req.PaymentType)
		if !domain.ValidPaymentType(pt) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "paymentType", Message: "Payment type must be one of: single, monthly, recurring"},
			})
		}
		update.PaymentType = &pt
	}

	if err := s.UpdateTransaction(int32(id), update); err != nil {
		if isNotFound(err) {
			return NewNotFoundError(c, "Transaction not found")
		}
		if errors.Is(err, domain.ErrCategoryTypeMismatch) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "categoryId", Message: "Category type must match the transaction type"},
			})
		}
		log.Error().Err(err).Stringer("user_id", s.UserID()).Int("transaction_id", id).Msg("Failed to update transaction")
		return NewInternalError(c, "Failed to update transaction")
	}

	return c.JSON(http.StatusOK, transactionByID(s, int32(id)))
}

// DeleteTransaction handles DELETE /api/v1/transactions/:id
func (h *TransactionHandler) DeleteTransaction(c echo.Context) error {
	s, err := h.userStore(c)
	if s == nil {
		return err
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid transaction ID", nil)
	}

	if err := s.RemoveTransaction(int32(id)); err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			return NewNotFoundError(c, "Transaction not found")
		}
		log.Error().Err(err).Stringer("user_id", s.UserID()).Int("transaction_id", id).Msg("Failed to delete transaction")
		return NewInternalError(c, "Failed to delete transaction")
	}

	log.Info().Stringer("user_id", s.UserID()).Int("transaction_id", id).Msg("Transaction deleted")
	return c.NoContent(http.StatusNoContent)
}
