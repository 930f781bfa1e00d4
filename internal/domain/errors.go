package domain

import "errors"

// Domain errors
var (
	ErrNotFound                = errors.New("resource not found")
	ErrAlreadyExists           = errors.New("resource already exists")
	ErrInvalidInput            = errors.New("invalid input")
	ErrUnauthorized            = errors.New("unauthorized")
	ErrInternalError           = errors.New("internal error")
	ErrUserNotFound            = errors.New("user not found")
	ErrAccountNotFound         = errors.New("account not found")
	ErrCategoryNotFound        = errors.New("category not found")
	ErrTransactionNotFound     = errors.New("transaction not found")
	ErrSpecialDateNotFound     = errors.New("special date not found")
	ErrSavingsGoalNotFound     = errors.New("savings goal not found")
	ErrSavingsMovementNotFound = errors.New("savings movement not found")
	ErrMonthlyNoteNotFound     = errors.New("monthly note not found")
	ErrWeeklyGoalNotFound      = errors.New("weekly goal not found")
	ErrNameRequired            = errors.New("name is required")
	ErrNameTooLong             = errors.New("name exceeds maximum length")
	ErrDescriptionRequired     = errors.New("description is required")
	ErrInvalidAmount           = errors.New("amount must be positive")
	ErrInvalidAccountType      = errors.New("invalid account type")
	ErrInvalidCategoryType     = errors.New("invalid category type")
	ErrInvalidTransactionType  = errors.New("invalid transaction type")
	ErrInvalidPaymentType      = errors.New("invalid payment type")
	ErrInvalidMovementType     = errors.New("invalid movement type")
	ErrCategoryTypeMismatch    = errors.New("transaction type does not match category type")
	ErrCategoryInUse           = errors.New("category is referenced by transactions")
	ErrInsufficientFunds       = errors.New("insufficient funds for withdrawal")
	ErrInvalidYearMonth        = errors.New("invalid year or month")
)

// Validation constants
const (
	MaxNameLength        = 255
	MaxDescriptionLength = 255
	MaxNoteLength        = 2000
	MinReportYear        = 1970
	MaxReportYear        = 2200
)
