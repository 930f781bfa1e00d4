package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func TestGetAuthID(t *testing.T) {
	e := echo.New()

	tests := []struct {
		name     string
		setup    func(c echo.Context)
		expected string
	}{
		{
			name: "returns auth id when present",
			setup: func(c echo.Context) {
				ctx := context.WithValue(c.Request().Context(), AuthIDKey, "auth0|12345")
				c.SetRequest(c.Request().WithContext(ctx))
			},
			expected: "auth0|12345",
		},
		{
			name:     "returns empty string when not present",
			setup:    func(c echo.Context) {},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			tt.setup(c)

			result := GetAuthID(c)
			if result != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestGetClaims(t *testing.T) {
	e := echo.New()

	t.Run("returns claims when present", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		claims := &validator.ValidatedClaims{
			RegisteredClaims: validator.RegisteredClaims{
				Subject: "auth0|test",
			},
		}
		ctx := context.WithValue(c.Request().Context(), ClaimsKey, claims)
		c.SetRequest(c.Request().WithContext(ctx))

		result := GetClaims(c)
		if result == nil {
			t.Fatal("Expected claims, got nil")
		}
		if result.RegisteredClaims.Subject != "auth0|test" {
			t.Errorf("Expected subject 'auth0|test', got %q", result.RegisteredClaims.Subject)
		}
	})

	t.Run("returns nil when not present", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		result := GetClaims(c)
		if result != nil {
			t.Error("Expected nil, got claims")
		}
	})
}

func TestGetUserID(t *testing.T) {
	e := echo.New()

	t.Run("returns user id when present", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		userID := uuid.New()
		ctx := context.WithValue(c.Request().Context(), UserIDKey, userID)
		c.SetRequest(c.Request().WithContext(ctx))

		if got := GetUserID(c); got != userID {
			t.Errorf("Expected %s, got %s", userID, got)
		}
	})

	t.Run("returns nil uuid when not present", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		if got := GetUserID(c); got != uuid.Nil {
			t.Errorf("Expected nil uuid, got %s", got)
		}
	})
}

func TestCustomClaims_Validate(t *testing.T) {
	claims := &CustomClaims{Email: "test@example.com"}
	if err := claims.Validate(context.Background()); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
}

func TestAuthenticate_RejectsBadHeaders(t *testing.T) {
	e := echo.New()
	m := &AuthMiddleware{}

	handler := func(c echo.Context) error {
		t.Error("Handler should not be called")
		return nil
	}

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "not bearer", header: "Basic dXNlcjpwYXNz"},
		{name: "bearer without token", header: "Bearer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			err := m.Authenticate()(handler)(c)
			if err != nil {
				t.Fatalf("Expected problem-details response, got error %v", err)
			}
			if rec.Code != http.StatusUnauthorized {
				t.Errorf("Expected 401, got %d", rec.Code)
			}

			var problem problemDetails
			if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
				t.Fatalf("Expected problem-details body, got %q", rec.Body.String())
			}
			if problem.Type != errorTypeUnauthorized {
				t.Errorf("Expected type %q, got %q", errorTypeUnauthorized, problem.Type)
			}
			if problem.Instance != "/api/v1/accounts" {
				t.Errorf("Expected instance '/api/v1/accounts', got %q", problem.Instance)
			}
		})
	}
}
