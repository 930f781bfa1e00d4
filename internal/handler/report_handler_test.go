package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/haldorr/pennywise-backend/internal/domain"
	"github.com/haldorr/pennywise-backend/internal/report"
)

func TestGetAnnual_SumsYear(t *testing.T) {
	env := newHandlerEnv(t)
	handler := NewReportHandler(env.stores)

	s := env.userStore(t)
	account, category := seedAccountAndCategories(t, s)

	_, err := s.AddTransaction(&domain.Transaction{
		AccountID:   account.ID,
		CategoryID:  category.ID,
		Description: "March spend",
		Amount:      decimal.NewFromInt(120),
		Type:        domain.TransactionTypeExpense,
		Date:        time.Date(2021, time.March, 10, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Failed to add transaction: %v", err)
	}

	c, rec := env.newContext(http.MethodGet, "/api/v1/reports/annual/2021", "")
	c.SetParamNames("year")
	c.SetParamValues("2021")

	if err := handler.GetAnnual(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var summary report.AnnualSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if summary.Year != 2021 {
		t.Errorf("Expected year 2021, got %d", summary.Year)
	}
	march := summary.Months[2]
	if !march.Active || march.Expense.StringFixed(2) != "120.00" {
		t.Errorf("Expected active March with expense 120.00, got active=%v expense=%s", march.Active, march.Expense.StringFixed(2))
	}
	if summary.Months[0].Active {
		t.Error("Expected January to be inactive")
	}
}

func TestGetAnnual_InvalidYear(t *testing.T) {
	env := newHandlerEnv(t)
	handler := NewReportHandler(env.stores)

	c, rec := env.newContext(http.MethodGet, "/api/v1/reports/annual/1800", "")
	c.SetParamNames("year")
	c.SetParamValues("1800")

	if err := handler.GetAnnual(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestGetMonthly_ProducesGrid(t *testing.T) {
	env := newHandlerEnv(t)
	handler := NewReportHandler(env.stores)

	c, rec := env.newContext(http.MethodGet, "/api/v1/reports/monthly/2021/2", "")
	c.SetParamNames("year", "month")
	c.SetParamValues("2021", "2")

	if err := handler.GetMonthly(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var monthly report.MonthlyReport
	if err := json.Unmarshal(rec.Body.Bytes(), &monthly); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	// February 2021 starts on a Monday and has exactly four week groups.
	if len(monthly.Groups) != 4 {
		t.Errorf("Expected 4 week groups, got %d", len(monthly.Groups))
	}
}

func TestGetMonthly_InvalidMonth(t *testing.T) {
	env := newHandlerEnv(t)
	handler := NewReportHandler(env.stores)

	c, rec := env.newContext(http.MethodGet, "/api/v1/reports/monthly/2021/0", "")
	c.SetParamNames("year", "month")
	c.SetParamValues("2021", "0")

	if err := handler.GetMonthly(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}
