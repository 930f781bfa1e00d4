package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/haldorr/pennywise-backend/internal/domain"
	"github.com/haldorr/pennywise-backend/internal/store"
)

// CategoryHandler handles category-related HTTP requests
type CategoryHandler struct {
	storeAccessor
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(stores *store.Manager) *CategoryHandler {
	return &CategoryHandler{storeAccessor{stores: stores}}
}

// CreateCategoryRequest represents the create category request body
type CreateCategoryRequest struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Color string `json:"color,omitempty"`
}

// UpdateCategoryRequest represents the update category request body
type UpdateCategoryRequest struct {
	Name  *string `json:"name"`
	Type  *string `json:"type"`
	Color *string `json:"color"`
}

// CreateCategory handles POST /api/v1/categories
func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	s, err := h.userStore(c)
	if s == nil {
		return err
	}

	var req CreateCategoryRequest
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
	if !domain.ValidCategoryType(domain.CategoryType(req.Type)) {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "type", Message: "Type must be one of: income, expense"},
		})
	}

	category, err := s.AddCategory(&domain.Category{
		Name:  req.Name,
		Type:  domain.CategoryType(req.Type),
		Color: req.Color,
	})
	if err != nil {
		log.Error().Err(err).Stringer("user_id", s.UserID()).Msg("Failed to create category")
		return NewInternalError(c, "Failed to create category")
	}

	log.Info().Stringer("user_id", s.UserID()).Int32("category_id", category.ID).Str("name", category.Name).Msg("Category created")
	return c.JSON(http.StatusCreated, category)
}

// GetCategories handles GET /api/v1/categories
func (h *CategoryHandler) GetCategories(c echo.Context) error {
	s, err := h.userStore(c)
	if s == nil {
		return err
	}

	categories := s.Categories()

	// Optional type filter
	if t := c.QueryParam("type"); t != "" {
		if !domain.ValidCategoryType(domain.CategoryType(t)) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "type", Message: "Type must be one of: income, expense"},
			})
		}
		filtered := make([]*domain.Category, 0, len(categories))
		for _, cat := range categories {
			if cat.Type == domain.CategoryType(t) {
				filtered = append(filtered, cat)
			}
		}
		categories = filtered
	}

	return c.JSON(http.StatusOK, categories)
}

// UpdateCategory handles PUT /api/v1/categories/:id
func (h *CategoryHandler) UpdateCategory(c echo.Context) error {
	s, err := h.userStore(c)
	if s == nil {
		return err
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid category ID", nil)
	}

	var req UpdateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	update := &domain.CategoryUpdate{Name: req.Name, Color: req.Color}
	if req.Name != nil && *req.Name == "" {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "name", Message: "Name is required"},
		})
	}
	if req.Type != nil {
		categoryType := domain.CategoryType(*req.Type)
		if !domain.ValidCategoryType(categoryType) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "type", Message: "Type must be one of: income, expense"},
			})
		}
		// Changing the type of a referenced category would orphan its
		// transactions' type pairing.
		if current := categoryByID(s, int32(id)); current != nil && current.Type != categoryType {
			for _, tx := range s.Transactions() {
				if tx.CategoryID == int32(id) {
					return NewConflictError(c, "Category type cannot change while transactions reference it")
				}
			}
		}
		update.Type = &categoryType
	}

	if err := s.UpdateCategory(int32(id), update); err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return NewNotFoundError(c, "Category not found")
		}
		log.Error().Err(err).Stringer("user_id", s.UserID()).Int("category_id", id).Msg("Failed to update category")
		return NewInternalError(c, "Failed to update category")
	}

	return c.JSON(http.StatusOK, categoryByID(s, int32(id)))
}

// DeleteCategory handles DELETE /api/v1/categories/:id
func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	s, err := h.userStore(c)
	if s == nil {
		return err
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid category ID", nil)
	}

	if err := s.RemoveCategory(int32(id)); err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return NewNotFoundError(c, "Category not found")
		}
		if errors.Is(err, domain.ErrCategoryInUse) {
			return NewConflictError(c, "Category is referenced by transactions")
		}
		log.Error().Err(err).Stringer("user_id", s.UserID()).Int("category_id", id).Msg("Failed to delete category")
		return NewInternalError(c, "Failed to delete category")
	}

	log.Info().Stringer("user_id", s.UserID()).Int("category_id", id).Msg("Category deleted")
	return c.NoContent(http.StatusNoContent)
}
