package store

import (
	"sync"

	"github.com/google/uuid"
	"github.com/haldorr/pennywise-backend/internal/domain"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Repositories bundles the gateway repositories the store mutates through.
type Repositories struct {
	Accounts         domain.AccountRepository
	Categories       domain.CategoryRepository
	Transactions     domain.TransactionRepository
	SpecialDates     domain.SpecialDateRepository
	SavingsGoals     domain.SavingsGoalRepository
	SavingsMovements domain.SavingsMovementRepository
	WeeklyGoals      domain.WeeklyGoalRepository
	MonthlyNotes     domain.MonthlyNoteRepository
}

// Store is the authoritative in-memory projection of one user's financial
// data. It is the only component allowed to mutate Account.Balance or
// SavingsGoal.CurrentAmount as a side effect of other mutations.
//
// Every mutation persists first and only then touches memory; a gateway error
// leaves the projection exactly as it was. A single mutex serializes all
// operations, so the store can never race against itself.
type Store struct {
	userID uuid.UUID
	repos  Repositories
	logger zerolog.Logger

	mu               sync.Mutex
	loaded           bool
	accounts         []*domain.Account
	categories       []*domain.Category
	transactions     []*domain.Transaction
	specialDates     []*domain.SpecialDate
	savingsGoals     []*domain.SavingsGoal
	savingsMovements []*domain.SavingsMovement
	weeklyGoals      []*domain.WeeklyGoal
	monthlyNotes     []*domain.MonthlyNote
}

// New creates a Store for one user. The projection is empty until LoadAll.
func New(userID uuid.UUID, repos Repositories, logger zerolog.Logger) *Store {
	return &Store{
		userID: userID,
		repos:  repos,
		logger: logger.With().Str("component", "store").Stringer("user_id", userID).Logger(),
	}
}

// UserID returns the owning user's identifier.
func (s *Store) UserID() uuid.UUID {
	return s.userID
}

// Loaded reports whether LoadAll has completed successfully.
func (s *Store) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// LoadAll fetches every table for the user in parallel and atomically
// replaces the projection. If the user has no categories at all, the default
// starter set is seeded before the snapshot is published, so observers never
// see a partially initialized state.
func (s *Store) LoadAll() error {
	var (
		accounts     []*domain.Account
		categories   []*domain.Category
		transactions []*domain.Transaction
		specialDates []*domain.SpecialDate
		goals        []*domain.SavingsGoal
		movements    []*domain.SavingsMovement
		weeklyGoals  []*domain.WeeklyGoal
		monthlyNotes []*domain.MonthlyNote
	)

	var g errgroup.Group
	g.Go(func() (err error) { accounts, err = s.repos.Accounts.GetAllByUser(s.userID); return })
	g.Go(func() (err error) { categories, err = s.repos.Categories.GetAllByUser(s.userID); return })
	g.Go(func() (err error) { transactions, err = s.repos.Transactions.GetAllByUser(s.userID); return })
	g.Go(func() (err error) { specialDates, err = s.repos.SpecialDates.GetAllByUser(s.userID); return })
	g.Go(func() (err error) { goals, err = s.repos.SavingsGoals.GetAllByUser(s.userID); return })
	g.Go(func() (err error) { movements, err = s.repos.SavingsMovements.GetAllByUser(s.userID); return })
	g.Go(func() (err error) { weeklyGoals, err = s.repos.WeeklyGoals.GetAllByUser(s.userID); return })
	g.Go(func() (err error) { monthlyNotes, err = s.repos.MonthlyNotes.GetAllByUser(s.userID); return })
	if err := g.Wait(); err != nil {
		return err
	}

	if len(categories) == 0 {
		seeded, err := s.repos.Categories.CreateBatch(domain.DefaultCategories(s.userID))
		if err != nil {
			return err
		}
		categories = seeded
		s.logger.Info().Int("count", len(seeded)).Msg("Seeded default categories")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts = accounts
	s.categories = categories
	s.transactions = transactions
	s.specialDates = specialDates
	s.savingsGoals = goals
	s.savingsMovements = movements
	s.weeklyGoals = weeklyGoals
	s.monthlyNotes = monthlyNotes
	s.loaded = true

	s.logger.Info().
		Int("accounts", len(accounts)).
		Int("categories", len(categories)).
		Int("transactions", len(transactions)).
		Msg("Projection loaded")
	return nil
}

// snapshot returns an independent copy of a projection slice so callers can
// never mutate store-owned state.
func snapshot[T any](in []*T) []*T {
	out := make([]*T, len(in))
	for i, v := range in {
		c := *v
		out[i] = &c
	}
	return out
}

// Accounts returns a read-only snapshot of the user's accounts.
func (s *Store) Accounts() []*domain.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot(s.accounts)
}

// Categories returns a read-only snapshot of the user's categories.
func (s *Store) Categories() []*domain.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot(s.categories)
}

// Transactions returns a read-only snapshot of the user's transactions.
func (s *Store) Transactions() []*domain.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot(s.transactions)
}

// SpecialDates returns a read-only snapshot of the user's special dates.
func (s *Store) SpecialDates() []*domain.SpecialDate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot(s.specialDates)
}

// SavingsGoals returns a read-only snapshot of the user's savings goals.
func (s *Store) SavingsGoals() []*domain.SavingsGoal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot(s.savingsGoals)
}

// SavingsMovements returns a read-only snapshot of the user's savings movements.
func (s *Store) SavingsMovements() []*domain.SavingsMovement {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot(s.savingsMovements)
}

// WeeklyGoals returns a read-only snapshot of the user's weekly goals.
func (s *Store) WeeklyGoals() []*domain.WeeklyGoal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot(s.weeklyGoals)
}

// MonthlyNotes returns a read-only snapshot of the user's monthly notes.
func (s *Store) MonthlyNotes() []*domain.MonthlyNote {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot(s.monthlyNotes)
}

func (s *Store) findAccount(id int32) *domain.Account {
	for _, a := range s.accounts {
		if a.ID == id {
			return a
		}
	}
	return nil
}

func (s *Store) findCategory(id int32) *domain.Category {
	for _, c := range s.categories {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func (s *Store) findTransaction(id int32) *domain.Transaction {
	for _, t := range s.transactions {
		if t.ID == id {
			return t
		}
	}
	return nil
}

func (s *Store) findSavingsGoal(id int32) *domain.SavingsGoal {
	for _, g := range s.savingsGoals {
		if g.ID == id {
			return g
		}
	}
	return nil
}

func (s *Store) findMovement(id int32) *domain.SavingsMovement {
	for _, m := range s.savingsMovements {
		if m.ID == id {
			return m
		}
	}
	return nil
}
