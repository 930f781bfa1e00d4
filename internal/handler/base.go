package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/haldorr/pennywise-backend/internal/domain"
	"github.com/haldorr/pennywise-backend/internal/middleware"
	"github.com/haldorr/pennywise-backend/internal/store"
)

// storeAccessor resolves the authenticated user's store for a request. It is
// embedded by every handler; when the returned store is nil the accompanying
// error response has already been written.
type storeAccessor struct {
	stores *store.Manager
}

func (a storeAccessor) userStore(c echo.Context) (*store.Store, error) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return nil, NewUnauthorizedError(c, "Authentication required")
	}

	s, err := a.stores.ForUser(userID)
	if err != nil {
		log.Error().Err(err).Stringer("user_id", userID).Msg("Failed to load user store")
		return nil, NewInternalError(c, "Failed to load financial data")
	}
	return s, nil
}

// Snapshot lookups used by handlers to echo the post-mutation state back.

func accountByID(s *store.Store, id int32) *domain.Account {
	for _, a := range s.Accounts() {
		if a.ID == id {
			return a
		}
	}
	return nil
}

func categoryByID(s *store.Store, id int32) *domain.Category {
	for _, cat := range s.Categories() {
		if cat.ID == id {
			return cat
		}
	}
	return nil
}

func transactionByID(s *store.Store, id int32) *domain.Transaction {
	for _, tx := range s.Transactions() {
		if tx.ID == id {
			return tx
		}
	}
	return nil
}

func specialDateByID(s *store.Store, id int32) *domain.SpecialDate {
	for _, d := range s.SpecialDates() {
		if d.ID == id {
			return d
		}
	}
	return nil
}

func savingsGoalByID(s *store.Store, id int32) *domain.SavingsGoal {
	for _, g := range s.SavingsGoals() {
		if g.ID == id {
			return g
		}
	}
	return nil
}

func movementByID(s *store.Store, id int32) *domain.SavingsMovement {
	for _, m := range s.SavingsMovements() {
		if m.ID == id {
			return m
		}
	}
	return nil
}
