package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/haldorr/pennywise-backend/internal/domain"
	"github.com/haldorr/pennywise-backend/internal/report"
)

// budgetContext builds a context with :year/:month (and optional :categoryId)
// path parameters set.
func budgetContext(env *handlerEnv, method, path, body string, year, month int, categoryID *int32) (echo.Context, *httptest.ResponseRecorder) {
	ctx, r := env.newContext(method, path, body)
	if categoryID != nil {
		ctx.SetParamNames("year", "month", "categoryId")
		ctx.SetParamValues(strconv.Itoa(year), strconv.Itoa(month), strconv.Itoa(int(*categoryID)))
	} else {
		ctx.SetParamNames("year", "month")
		ctx.SetParamValues(strconv.Itoa(year), strconv.Itoa(month))
	}
	return ctx, r
}

func TestUpsertWeeklyGoal_Success(t *testing.T) {
	env := newHandlerEnv(t)
	handler := NewBudgetHandler(env.stores)

	s := env.userStore(t)
	_, category := seedAccountAndCategories(t, s)

	body := `{"weeks": ["100", "150", null, "80", "70"], "monthlyAmount": "300"}`
	c, rec := budgetContext(env, http.MethodPut, "/api/v1/budgets/2021/8/goals/2", body, 2021, 8, &category.ID)

	if err := handler.UpsertWeeklyGoal(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var goal domain.WeeklyGoal
	if err := json.Unmarshal(rec.Body.Bytes(), &goal); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if goal.Weeks[0] == nil || goal.Weeks[0].StringFixed(2) != "100.00" {
		t.Errorf("Expected first week amount 100.00, got %v", goal.Weeks[0])
	}
	if goal.Weeks[2] != nil {
		t.Errorf("Expected third week to stay unset, got %v", goal.Weeks[2])
	}
	if goal.MonthlyAmount == nil || goal.MonthlyAmount.StringFixed(2) != "300.00" {
		t.Errorf("Expected monthly amount 300.00, got %v", goal.MonthlyAmount)
	}
}

func TestUpsertWeeklyGoal_RejectsIncomeCategory(t *testing.T) {
	env := newHandlerEnv(t)
	handler := NewBudgetHandler(env.stores)

	s := env.userStore(t)
	var income *domain.Category
	for _, cat := range s.Categories() {
		if cat.Type == domain.CategoryTypeIncome {
			income = cat
			break
		}
	}
	if income == nil {
		t.Fatal("Expected a seeded income category")
	}

	c, rec := budgetContext(env, http.MethodPut, "/api/v1/budgets/2021/8/goals/1", `{"weeks": ["100"]}`, 2021, 8, &income.ID)

	if err := handler.UpsertWeeklyGoal(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestUpsertWeeklyGoal_InvalidMonth(t *testing.T) {
	env := newHandlerEnv(t)
	handler := NewBudgetHandler(env.stores)

	s := env.userStore(t)
	_, category := seedAccountAndCategories(t, s)

	c, rec := budgetContext(env, http.MethodPut, "/api/v1/budgets/2021/13/goals/2", `{"weeks": ["100"]}`, 2021, 13, &category.ID)

	if err := handler.UpsertWeeklyGoal(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestMonthlyNote_UpsertThenGet(t *testing.T) {
	env := newHandlerEnv(t)
	handler := NewBudgetHandler(env.stores)

	c, rec := budgetContext(env, http.MethodPut, "/api/v1/budgets/2021/8/note", `{"content": "Tight month"}`, 2021, 8, nil)
	if err := handler.UpsertMonthlyNote(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	c, rec = budgetContext(env, http.MethodGet, "/api/v1/budgets/2021/8/note", "", 2021, 8, nil)
	if err := handler.GetMonthlyNote(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var note domain.MonthlyNote
	if err := json.Unmarshal(rec.Body.Bytes(), &note); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if note.Content != "Tight month" {
		t.Errorf("Expected content 'Tight month', got %q", note.Content)
	}
}

func TestGetMonthlyNote_Missing(t *testing.T) {
	env := newHandlerEnv(t)
	handler := NewBudgetHandler(env.stores)

	c, rec := budgetContext(env, http.MethodGet, "/api/v1/budgets/2021/9/note", "", 2021, 9, nil)
	if err := handler.GetMonthlyNote(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

func TestGetComparison_PlanAgainstSpend(t *testing.T) {
	env := newHandlerEnv(t)
	handler := NewBudgetHandler(env.stores)

	s := env.userStore(t)
	account, category := seedAccountAndCategories(t, s)

	_, err := s.AddTransaction(&domain.Transaction{
		AccountID:   account.ID,
		CategoryID:  category.ID,
		Description: "Groceries run",
		Amount:      decimal.NewFromInt(80),
		Type:        domain.TransactionTypeExpense,
		Date:        time.Date(2021, time.August, 3, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Failed to add transaction: %v", err)
	}

	hundred := decimal.NewFromInt(100)
	goal := &domain.WeeklyGoal{CategoryID: category.ID, Year: 2021, Month: 8}
	goal.Weeks[1] = &hundred
	if _, err := s.UpsertWeeklyGoal(goal); err != nil {
		t.Fatalf("Failed to upsert weekly goal: %v", err)
	}

	c, rec := budgetContext(env, http.MethodGet, "/api/v1/budgets/2021/8/comparison", "", 2021, 8, nil)
	if err := handler.GetComparison(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var comparison report.Comparison
	if err := json.Unmarshal(rec.Body.Bytes(), &comparison); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if comparison.PlannedTotal.StringFixed(2) != "100.00" {
		t.Errorf("Expected planned total 100.00, got %s", comparison.PlannedTotal.StringFixed(2))
	}
	if comparison.ActualTotal.StringFixed(2) != "80.00" {
		t.Errorf("Expected actual total 80.00, got %s", comparison.ActualTotal.StringFixed(2))
	}
	if comparison.Difference.StringFixed(2) != "20.00" {
		t.Errorf("Expected difference 20.00, got %s", comparison.Difference.StringFixed(2))
	}

	var entry *report.CategoryComparison
	for _, cc := range comparison.Categories {
		if cc.CategoryID == category.ID {
			entry = cc
			break
		}
	}
	if entry == nil {
		t.Fatalf("Expected a comparison entry for category %d", category.ID)
	}
	if entry.CategoryName != category.Name {
		t.Errorf("Expected category name %q, got %q", category.Name, entry.CategoryName)
	}
}
