package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/haldorr/pennywise-backend/internal/report"
	"github.com/haldorr/pennywise-backend/internal/store"
)

// ReportHandler serves the derived reporting views
type ReportHandler struct {
	storeAccessor
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(stores *store.Manager) *ReportHandler {
	return &ReportHandler{storeAccessor{stores: stores}}
}

// GetAnnual handles GET /api/v1/reports/annual/:year
func (h *ReportHandler) GetAnnual(c echo.Context) error {
	s, err := h.userStore(c)
	if s == nil {
		return err
	}

	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		return NewValidationError(c, "Invalid year", nil)
	}

	summary, err := report.Annual(s.Transactions(), year)
	if err != nil {
		return NewValidationError(c, "Invalid year", nil)
	}
	return c.JSON(http.StatusOK, summary)
}

// GetMonthly handles GET /api/v1/reports/monthly/:year/:month
func (h *ReportHandler) GetMonthly(c echo.Context) error {
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
	return c.JSON(http.StatusOK, monthly)
}
