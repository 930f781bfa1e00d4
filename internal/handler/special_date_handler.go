package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/haldorr/pennywise-backend/internal/domain"
	"github.com/haldorr/pennywise-backend/internal/store"
)

// SpecialDateHandler handles special-date HTTP requests
type SpecialDateHandler struct {
	storeAccessor
}

// NewSpecialDateHandler creates a new SpecialDateHandler
func NewSpecialDateHandler(stores *store.Manager) *SpecialDateHandler {
	return &SpecialDateHandler{storeAccessor{stores: stores}}
}

// CreateSpecialDateRequest represents the create special date request body
type CreateSpecialDateRequest struct {
	Name        string  `json:"name"`
	Date        string  `json:"date"`
	Description *string `json:"description"`
	IsRecurring bool    `json:"isRecurring"`
}

// UpdateSpecialDateRequest represents the update special date request body
type UpdateSpecialDateRequest struct {
	Name        *string `json:"name"`
	Date        *string `json:"date"`
	Description *string `json:"description"`
	IsRecurring *bool   `json:"isRecurring"`
	IsCompleted *bool   `json:"isCompleted"`
}

// CreateSpecialDate handles POST /api/v1/special-dates
func (h *SpecialDateHandler) CreateSpecialDate(c echo.Context) error {
	s, err := h.userStore(c)
	if s == nil {
		return err
	}

	var req CreateSpecialDateRequest
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
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "date", Message: "Date must be in YYYY-MM-DD format"},
		})
	}

	specialDate, err := s.AddSpecialDate(&domain.SpecialDate{
		Name:        req.Name,
		Date:        date,
		Description: req.Description,
		IsRecurring: req.IsRecurring,
	})
	if err != nil {
		log.Error().Err(err).Stringer("user_id", s.UserID()).Msg("Failed to create special date")
		return NewInternalError(c, "Failed to create special date")
	}

	return c.JSON(http.StatusCreated, specialDate)
}

// GetSpecialDates handles GET /api/v1/special-dates
func (h *SpecialDateHandler) GetSpecialDates(c echo.Context) error {
	s, err := h.userStore(c)
	if s == nil {
		return err
	}
	return c.JSON(http.StatusOK, s.SpecialDates())
}

// UpdateSpecialDate handles PUT /api/v1/special-dates/:id
func (h *SpecialDateHandler) UpdateSpecialDate(c echo.Context) error {
	s, err := h.userStore(c)
	if s == nil {
		return err
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid special date ID", nil)
	}

	var req UpdateSpecialDateRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	if req.Name != nil && *req.Name == "" {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "name", Message: "Name is required"},
		})
	}

	update := &domain.SpecialDateUpdate{
		Name:        req.Name,
		Description: req.Description,
		IsRecurring: req.IsRecurring,
		IsCompleted: req.IsCompleted,
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

	if err := s.UpdateSpecialDate(int32(id), update); err != nil {
		if errors.Is(err, domain.ErrSpecialDateNotFound) {
			return NewNotFoundError(c, "Special date not found")
		}
		log.Error().Err(err).Stringer("user_id", s.UserID()).Int("special_date_id", id).Msg("Failed to update special date")
		return NewInternalError(c, "Failed to update special date")
	}

	return c.JSON(http.StatusOK, specialDateByID(s, int32(id)))
}

// ToggleCompleted handles PATCH /api/v1/special-dates/:id/toggle-completed
func (h *SpecialDateHandler) ToggleCompleted(c echo.Context) error {
	s, err := h.userStore(c)
	if s == nil {
		return err
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid special date ID", nil)
	}

	current := specialDateByID(s, int32(id))
	if current == nil {
		return NewNotFoundError(c, "Special date not found")
	}

	toggled := !current.IsCompleted
	update := &domain.SpecialDateUpdate{IsCompleted: &toggled}
	if err := s.UpdateSpecialDate(int32(id), update); err != nil {
		if errors.Is(err, domain.ErrSpecialDateNotFound) {
			return NewNotFoundError(c, "Special date not found")
		}
		log.Error().Err(err).Stringer("user_id", s.UserID()).Int("special_date_id", id).Msg("Failed to toggle special date")
		return NewInternalError(c, "Failed to toggle special date")
	}

	return c.JSON(http.StatusOK, specialDateByID(s, int32(id)))
}

// DeleteSpecialDate handles DELETE /api/v1/special-dates/:id
func (h *SpecialDateHandler) DeleteSpecialDate(c echo.Context) error {
	s, err := h.userStore(c)
	if s == nil {
		return err
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid special date ID", nil)
	}

	if err := s.RemoveSpecialDate(int32(id)); err != nil {
		if errors.Is(err, domain.ErrSpecialDateNotFound) {
			return NewNotFoundError(c, "Special date not found")
		}
		log.Error().Err(err).Stringer("user_id", s.UserID()).Int("special_date_id", id).Msg("Failed to delete special date")
		return NewInternalError(c, "Failed to delete special date")
	}

	return c.NoContent(http.StatusNoContent)
}
