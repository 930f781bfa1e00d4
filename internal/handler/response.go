package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/haldorr/pennywise-backend/internal/domain"
)

// ProblemDetails represents an RFC 7807 Problem Details response
type ProblemDetails struct {
	Type     string            `json:"type"`
	Title    string            `json:"title"`
	Status   int               `json:"status"`
	Detail   string            `json:"detail,omitempty"`
	Instance string            `json:"instance,omitempty"`
	Errors   []ValidationError `json:"errors,omitempty"`
}

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error types
const (
	ErrorTypeValidation   = "https://pennywise.app/errors/validation"
	ErrorTypeNotFound     = "https://pennywise.app/errors/not-found"
	ErrorTypeUnauthorized = "https://pennywise.app/errors/unauthorized"
	ErrorTypeConflict     = "https://pennywise.app/errors/conflict"
	ErrorTypeInternal     = "https://pennywise.app/errors/internal"
)

// NewValidationError creates a validation error response
func NewValidationError(c echo.Context, detail string, errors []ValidationError) error {
	return c.JSON(http.StatusBadRequest, ProblemDetails{
		Type:     ErrorTypeValidation,
		Title:    "Validation Error",
		Status:   http.StatusBadRequest,
		Detail:   detail,
		Instance: c.Request().URL.Path,
		Errors:   errors,
	})
}

// NewNotFoundError creates a not found error response
func NewNotFoundError(c echo.Context, detail string) error {
	return c.JSON(http.StatusNotFound, ProblemDetails{
		Type:     ErrorTypeNotFound,
		Title:    "Not Found",
		Status:   http.StatusNotFound,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewUnauthorizedError creates an unauthorized error response
func NewUnauthorizedError(c echo.Context, detail string) error {
	return c.JSON(http.StatusUnauthorized, ProblemDetails{
		Type:     ErrorTypeUnauthorized,
		Title:    "Unauthorized",
		Status:   http.StatusUnauthorized,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewConflictError creates a conflict error response
func NewConflictError(c echo.Context, detail string) error {
	return c.JSON(http.StatusConflict, ProblemDetails{
		Type:     ErrorTypeConflict,
		Title:    "Conflict",
		Status:   http.StatusConflict,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewInternalError creates an internal error response
func NewInternalError(c echo.Context, detail string) error {
	return c.JSON(http.StatusInternalServerError, ProblemDetails{
		Type:     ErrorTypeInternal,
		Title:    "Internal Server Error",
		Status:   http.StatusInternalServerError,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// notFoundSentinels are the domain errors every handler maps to 404.
var notFoundSentinels = []error{
	domain.ErrNotFound,
	domain.ErrAccountNotFound,
	domain.ErrCategoryNotFound,
	domain.ErrTransactionNotFound,
	domain.ErrSpecialDateNotFound,
	domain.ErrSavingsGoalNotFound,
	domain.ErrSavingsMovementNotFound,
	domain.ErrMonthlyNoteNotFound,
	domain.ErrWeeklyGoalNotFound,
}

// isNotFound reports whether err is one of the domain not-found sentinels.
func isNotFound(err error) bool {
	for _, sentinel := range notFoundSentinels {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
