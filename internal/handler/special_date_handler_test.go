package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/haldorr/pennywise-backend/internal/domain"
)

func TestCreateSpecialDate_Success(t *testing.T) {
	env := newHandlerEnv(t)
	handler := NewSpecialDateHandler(env.stores)

	c, rec := env.newContext(http.MethodPost, "/api/v1/special-dates", `{"name": "Car insurance renewal", "date": "2026-11-15", "isRecurring": true}`)

	if err := handler.CreateSpecialDate(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var date domain.SpecialDate
	if err := json.Unmarshal(rec.Body.Bytes(), &date); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if date.Name != "Car insurance renewal" {
		t.Errorf("Expected name 'Car insurance renewal', got %s", date.Name)
	}
	if !date.IsRecurring {
		t.Error("Expected a recurring date")
	}
	if date.IsCompleted {
		t.Error("Expected a new date to start incomplete")
	}
}

func TestCreateSpecialDate_BadDate(t *testing.T) {
	env := newHandlerEnv(t)
	handler := NewSpecialDateHandler(env.stores)

	c, rec := env.newContext(http.MethodPost, "/api/v1/special-dates", `{"name": "Broken", "date": "15/11/2026"}`)

	if err := handler.CreateSpecialDate(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestToggleCompleted_FlipsBothWays(t *testing.T) {
	env := newHandlerEnv(t)
	handler := NewSpecialDateHandler(env.stores)

	s := env.userStore(t)
	created, err := s.AddSpecialDate(&domain.SpecialDate{
		Name: "Tax deadline",
		Date: time.Date(2026, time.April, 30, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Failed to add special date: %v", err)
	}

	toggle := func() *domain.SpecialDate {
		c, rec := env.newContext(http.MethodPatch, "/api/v1/special-dates/1/toggle-completed", "")
		c.SetParamNames("id")
		c.SetParamValues(strconv.Itoa(int(created.ID)))
		if err := handler.ToggleCompleted(c); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", rec.Code)
		}
		var date domain.SpecialDate
		if err := json.Unmarshal(rec.Body.Bytes(), &date); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		return &date
	}

	if first := toggle(); !first.IsCompleted {
		t.Error("Expected first toggle to mark the date completed")
	}
	if second := toggle(); second.IsCompleted {
		t.Error("Expected second toggle to mark the date incomplete again")
	}
}

func TestToggleCompleted_NotFound(t *testing.T) {
	env := newHandlerEnv(t)
	handler := NewSpecialDateHandler(env.stores)

	c, rec := env.newContext(http.MethodPatch, "/api/v1/special-dates/7/toggle-completed", "")
	c.SetParamNames("id")
	c.SetParamValues("7")

	if err := handler.ToggleCompleted(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}
