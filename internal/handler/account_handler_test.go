package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"testing"

	"github.com/haldorr/pennywise-backend/internal/domain"
)

func TestCreateAccount_Success(t *testing.T) {
	env := newHandlerEnv(t)
	handler := NewAccountHandler(env.stores)

	c, rec := env.newContext(http.MethodPost, "/api/v1/accounts", `{"name": "Main Checking", "type": "checking", "balance": "1000.50"}`)

	if err := handler.CreateAccount(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d", rec.Code)
	}

	var response domain.Account
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Name != "Main Checking" {
		t.Errorf("Expected name 'Main Checking', got %s", response.Name)
	}
	if response.Type != domain.AccountTypeChecking {
		t.Errorf("Expected type 'checking', got %s", response.Type)
	}
	if response.Balance.StringFixed(2) != "1000.50" {
		t.Errorf("Expected balance '1000.50', got %s", response.Balance.StringFixed(2))
	}
	if response.ID == 0 {
		t.Error("Expected a non-zero account ID")
	}
}

func TestCreateAccount_InvalidType(t *testing.T) {
	env := newHandlerEnv(t)
	handler := NewAccountHandler(env.stores)

	c, rec := env.newContext(http.MethodPost, "/api/v1/accounts", `{"name": "Wallet", "type": "cash"}`)

	if err := handler.CreateAccount(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}

	var problem ProblemDetails
	if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
		t.Fatalf("Failed to unmarshal problem details: %v", err)
	}
	if problem.Type != ErrorTypeValidation {
		t.Errorf("Expected validation problem type, got %s", problem.Type)
	}
}

func TestCreateAccount_Unauthenticated(t *testing.T) {
	env := newHandlerEnv(t)
	handler := NewAccountHandler(env.stores)

	c, rec := env.newAnonymousContext(http.MethodPost, "/api/v1/accounts")

	if err := handler.CreateAccount(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rec.Code)
	}
}

func TestGetAccounts_ReturnsCreated(t *testing.T) {
	env := newHandlerEnv(t)
	handler := NewAccountHandler(env.stores)

	s := env.userStore(t)
	if _, err := s.AddAccount(&domain.Account{Name: "Main", Type: domain.AccountTypeChecking}); err != nil {
		t.Fatalf("Failed to add account: %v", err)
	}

	c, rec := env.newContext(http.MethodGet, "/api/v1/accounts", "")
	if err := handler.GetAccounts(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var accounts []*domain.Account
	if err := json.Unmarshal(rec.Body.Bytes(), &accounts); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(accounts) != 1 {
		t.Fatalf("Expected 1 account, got %d", len(accounts))
	}
	if accounts[0].Name != "Main" {
		t.Errorf("Expected name 'Main', got %s", accounts[0].Name)
	}
}

func TestUpdateAccount_NotFound(t *testing.T) {
	env := newHandlerEnv(t)
	handler := NewAccountHandler(env.stores)

	c, rec := env.newContext(http.MethodPut, "/api/v1/accounts/99", `{"name": "Renamed"}`)
	c.SetParamNames("id")
	c.SetParamValues("99")

	if err := handler.UpdateAccount(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

func TestDeleteAccount_Success(t *testing.T) {
	env := newHandlerEnv(t)
	handler := NewAccountHandler(env.stores)

	s := env.userStore(t)
	account, err := s.AddAccount(&domain.Account{Name: "Old", Type: domain.AccountTypeSavings})
	if err != nil {
		t.Fatalf("Failed to add account: %v", err)
	}

	c, rec := env.newContext(http.MethodDelete, "/api/v1/accounts/1", "")
	c.SetParamNames("id")
	c.SetParamValues(strconv.Itoa(int(account.ID)))

	if err := handler.DeleteAccount(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", rec.Code)
	}
	if len(s.Accounts()) != 0 {
		t.Errorf("Expected no accounts left, got %d", len(s.Accounts()))
	}
}
