package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/haldorr/pennywise-backend/internal/domain"
	"github.com/haldorr/pennywise-backend/internal/store"
)

// seedAccountAndCategories adds one checking account and returns it together
// with an expense category from the seeded defaults.
func seedAccountAndCategories(t *testing.T, s *store.Store) (*domain.Account, *domain.Category) {
	t.Helper()

	account, err := s.AddAccount(&domain.Account{
		Name:    "Main",
		Type:    domain.AccountTypeChecking,
		Balance: decimal.NewFromInt(1000),
	})
	if err != nil {
		t.Fatalf("Failed to add account: %v", err)
	}

	for _, cat := range s.Categories() {
		if cat.Type == domain.CategoryTypeExpense {
			return account, cat
		}
	}
	t.Fatal("Expected a seeded expense category")
	return nil, nil
}

func TestCreateTransaction_ExpenseAdjustsBalance(t *testing.T) {
	env := newHandlerEnv(t)
	handler := NewTransactionHandler(env.stores)

	s := env.userStore(t)
	account, category := seedAccountAndCategories(t, s)

	body := fmt.Sprintf(`{"accountId": %d, "categoryId": %d, "description": "Weekly shop", "amount": "200", "type": "expense", "date": "2021-08-07"}`, account.ID, category.ID)
	c, rec := env.newContext(http.MethodPost, "/api/v1/transactions", body)

	if err := handler.CreateTransaction(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var created domain.Transaction
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if created.Description != "Weekly shop" {
		t.Errorf("Expected description 'Weekly shop', got %s", created.Description)
	}

	updated := accountByID(s, account.ID)
	if updated.Balance.StringFixed(2) != "800.00" {
		t.Errorf("Expected balance 800.00 after expense, got %s", updated.Balance.StringFixed(2))
	}
}

func TestCreateTransaction_CategoryTypeMismatch(t *testing.T) {
	env := newHandlerEnv(t)
	handler := NewTransactionHandler(env.stores)

	s := env.userStore(t)
	account, expenseCategory := seedAccountAndCategories(t, s)

	body := fmt.Sprintf(`{"accountId": %d, "categoryId": %d, "description": "Paycheck", "amount": "2500", "type": "income", "date": "2021-08-01"}`, account.ID, expenseCategory.ID)
	c, rec := env.newContext(http.MethodPost, "/api/v1/transactions", body)

	if err := handler.CreateTransaction(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestCreateTransaction_NegativeAmount(t *testing.T) {
	env := newHandlerEnv(t)
	handler := NewTransactionHandler(env.stores)

	s := env.userStore(t)
	account, category := seedAccountAndCategories(t, s)

	body := fmt.Sprintf(`{"accountId": %d, "categoryId": %d, "description": "Bad", "amount": "-5", "type": "expense", "date": "2021-08-01"}`, account.ID, category.ID)
	c, rec := env.newContext(http.MethodPost, "/api/v1/transactions", body)

	if err := handler.CreateTransaction(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestGetTransactions_FiltersAndPaginates(t *testing.T) {
	env := newHandlerEnv(t)
	handler := NewTransactionHandler(env.stores)

	s := env.userStore(t)
	account, category := seedAccountAndCategories(t, s)

	for day := 1; day <= 6; day++ {
		_, err := s.AddTransaction(&domain.Transaction{
			AccountID:   account.ID,
			CategoryID:  category.ID,
			Description: fmt.Sprintf("Expense %d", day),
			Amount:      decimal.NewFromInt(10),
			Type:        domain.TransactionTypeExpense,
			Date:        time.Date(2021, time.August, day, 0, 0, 0, 0, time.UTC),
		})
		if err != nil {
			t.Fatalf("Failed to add transaction: %v", err)
		}
	}

	c, rec := env.newContext(http.MethodGet, "/api/v1/transactions?type=expense&from=2021-08-02&to=2021-08-05&limit=2&offset=1", "")
	if err := handler.GetTransactions(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var response TransactionListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Total != 4 {
		t.Errorf("Expected 4 transactions in the date window, got %d", response.Total)
	}
	if len(response.Transactions) != 2 {
		t.Errorf("Expected a page of 2 transactions, got %d", len(response.Transactions))
	}
	if response.Offset != 1 || response.Limit != 2 {
		t.Errorf("Expected offset 1 and limit 2, got %d and %d", response.Offset, response.Limit)
	}
}

func TestUpdateTransaction_NotFound(t *testing.T) {
	env := newHandlerEnv(t)
	handler := NewTransactionHandler(env.stores)

	c, rec := env.newContext(http.MethodPut, "/api/v1/transactions/42", `{"amount": "50"}`)
	c.SetParamNames("id")
	c.SetParamValues("42")

	if err := handler.UpdateTransaction(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

func TestDeleteTransaction_RestoresBalance(t *testing.T) {
	env := newHandlerEnv(t)
	handler := NewTransactionHandler(env.stores)

	s := env.userStore(t)
	account, category := seedAccountAndCategories(t, s)

	tx, err := s.AddTransaction(&domain.Transaction{
		AccountID:   account.ID,
		CategoryID:  category.ID,
		Description: "Refundable",
		Amount:      decimal.NewFromInt(200),
		Type:        domain.TransactionTypeExpense,
		Date:        time.Date(2021, time.August, 7, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Failed to add transaction: %v", err)
	}

	c, rec := env.newContext(http.MethodDelete, "/api/v1/transactions/1", "")
	c.SetParamNames("id")
	c.SetParamValues(strconv.Itoa(int(tx.ID)))

	if err := handler.DeleteTransaction(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", rec.Code)
	}

	updated := accountByID(s, account.ID)
	if updated.Balance.StringFixed(2) != "1000.00" {
		t.Errorf("Expected balance restored to 1000.00, got %s", updated.Balance.StringFixed(2))
	}
}
