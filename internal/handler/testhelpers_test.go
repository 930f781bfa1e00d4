package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/haldorr/pennywise-backend/internal/middleware"
	"github.com/haldorr/pennywise-backend/internal/store"
	"github.com/haldorr/pennywise-backend/internal/testutil"
)

// handlerEnv wires a store manager over mock repositories for handler tests.
type handlerEnv struct {
	e      *echo.Echo
	stores *store.Manager
	userID uuid.UUID

	accounts     *testutil.MockAccountRepository
	categories   *testutil.MockCategoryRepository
	transactions *testutil.MockTransactionRepository
	specialDates *testutil.MockSpecialDateRepository
	goals        *testutil.MockSavingsGoalRepository
	movements    *testutil.MockSavingsMovementRepository
	weeklyGoals  *testutil.MockWeeklyGoalRepository
	monthlyNotes *testutil.MockMonthlyNoteRepository
}

func newHandlerEnv(t *testing.T) *handlerEnv {
	t.Helper()

	env := &handlerEnv{
		e:            echo.New(),
		userID:       uuid.New(),
		accounts:     testutil.NewMockAccountRepository(),
		categories:   testutil.NewMockCategoryRepository(),
		transactions: testutil.NewMockTransactionRepository(),
		specialDates: testutil.NewMockSpecialDateRepository(),
		goals:        testutil.NewMockSavingsGoalRepository(),
		movements:    testutil.NewMockSavingsMovementRepository(),
		weeklyGoals:  testutil.NewMockWeeklyGoalRepository(),
		monthlyNotes: testutil.NewMockMonthlyNoteRepository(),
	}

	repos := store.Repositories{
		Accounts:         env.accounts,
		Categories:       env.categories,
		Transactions:     env.transactions,
		SpecialDates:     env.specialDates,
		SavingsGoals:     env.goals,
		SavingsMovements: env.movements,
		WeeklyGoals:      env.weeklyGoals,
		MonthlyNotes:     env.monthlyNotes,
	}
	env.stores = store.NewManager(repos, zerolog.Nop(), store.DefaultIdleTTL)
	t.Cleanup(env.stores.Stop)

	return env
}

// userStore returns the loaded store for the environment's user.
func (env *handlerEnv) userStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := env.stores.ForUser(env.userID)
	if err != nil {
		t.Fatalf("Failed to load store: %v", err)
	}
	return s
}

// newContext builds an authenticated echo context for the environment's user.
func (env *handlerEnv) newContext(method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	ctx := context.WithValue(req.Context(), middleware.UserIDKey, env.userID)
	rec := httptest.NewRecorder()
	return env.e.NewContext(req.WithContext(ctx), rec), rec
}

// contextWithUser attaches the environment's user ID to a request context.
func contextWithUser(ctx context.Context, env *handlerEnv) context.Context {
	return context.WithValue(ctx, middleware.UserIDKey, env.userID)
}

// newAnonymousContext builds a context without an authenticated user.
func (env *handlerEnv) newAnonymousContext(method, path string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	return env.e.NewContext(req, rec), rec
}
