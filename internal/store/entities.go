package store

import (
	"github.com/haldorr/pennywise-backend/internal/domain"
)

// Entity operations that carry no balance coupling. The pattern is uniform:
// persist via the gateway, and only merge into the projection once the
// persist succeeded. Update merges are no-ops when the identifier is absent.

// AddAccount persists a new account and appends it to the projection.
func (s *Store) AddAccount(account *domain.Account) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account.UserID = s.userID
	created, err := s.repos.Accounts.Create(account)
	if err != nil {
		return nil, err
	}
	s.accounts = append(s.accounts, created)

	s.logger.Info().Int32("account_id", created.ID).Str("name", created.Name).Msg("Account added")
	c := *created
	return &c, nil
}

// UpdateAccount persists the changed fields and merges them by identifier.
func (s *Store) UpdateAccount(id int32, update *domain.AccountUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repos.Accounts.Update(s.userID, id, update); err != nil {
		return err
	}

	account := s.findAccount(id)
	if account == nil {
		return nil
	}
	if update.Name != nil {
		account.Name = *update.Name
	}
	if update.Type != nil {
		account.Type = *update.Type
	}
	return nil
}

// RemoveAccount persists the deletion and filters the account out of the
// projection, along with the transactions and movements that cascade with it.
func (s *Store) RemoveAccount(id int32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repos.Accounts.Delete(s.userID, id); err != nil {
		return err
	}

	s.accounts = filter(s.accounts, func(a *domain.Account) bool { return a.ID != id })
	s.transactions = filter(s.transactions, func(t *domain.Transaction) bool { return t.AccountID != id })
	s.savingsMovements = filter(s.savingsMovements, func(m *domain.SavingsMovement) bool { return m.AccountID != id })

	s.logger.Info().Int32("account_id", id).Msg("Account removed")
	return nil
}

// AddCategory persists a new category and appends it to the projection.
func (s *Store) AddCategory(category *domain.Category) (*domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	category.UserID = s.userID
	created, err := s.repos.Categories.Create(category)
	if err != nil {
		return nil, err
	}
	s.categories = append(s.categories, created)

	s.logger.Info().Int32("category_id", created.ID).Str("name", created.Name).Msg("Category added")
	c := *created
	return &c, nil
}

// UpdateCategory persists the changed fields and merges them by identifier.
func (s *Store) UpdateCategory(id int32, update *domain.CategoryUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repos.Categories.Update(s.userID, id, update); err != nil {
		return err
	}

	category := s.findCategory(id)
	if category == nil {
		return nil
	}
	if update.Name != nil {
		category.Name = *update.Name
	}
	if update.Type != nil {
		category.Type = *update.Type
	}
	if update.Color != nil {
		category.Color = *update.Color
	}
	return nil
}

// RemoveCategory persists the deletion and filters the category out of the
// projection. Categories still referenced by transactions cannot be removed.
func (s *Store) RemoveCategory(id int32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.transactions {
		if t.CategoryID == id {
			return domain.ErrCategoryInUse
		}
	}

	if err := s.repos.Categories.Delete(s.userID, id); err != nil {
		return err
	}

	s.categories = filter(s.categories, func(c *domain.Category) bool { return c.ID != id })
	s.weeklyGoals = filter(s.weeklyGoals, func(g *domain.WeeklyGoal) bool { return g.CategoryID != id })

	s.logger.Info().Int32("category_id", id).Msg("Category removed")
	return nil
}

// AddSpecialDate persists a new special date and appends it to the projection.
func (s *Store) AddSpecialDate(date *domain.SpecialDate) (*domain.SpecialDate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	date.UserID = s.userID
	created, err := s.repos.SpecialDates.Create(date)
	if err != nil {
		return nil, err
	}
	s.specialDates = append(s.specialDates, created)
	c := *created
	return &c, nil
}

// UpdateSpecialDate persists the changed fields and merges them by identifier.
func (s *Store) UpdateSpecialDate(id int32, update *domain.SpecialDateUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repos.SpecialDates.Update(s.userID, id, update); err != nil {
		return err
	}

	for _, d := range s.specialDates {
		if d.ID != id {
			continue
		}
		if update.Name != nil {
			d.Name = *update.Name
		}
		if update.Date != nil {
			d.Date = *update.Date
		}
		if update.Description != nil {
			d.Description = update.Description
		}
		if update.IsRecurring != nil {
			d.IsRecurring = *update.IsRecurring
		}
		if update.IsCompleted != nil {
			d.IsCompleted = *update.IsCompleted
		}
		break
	}
	return nil
}

// RemoveSpecialDate persists the deletion and filters it out of the projection.
func (s *Store) RemoveSpecialDate(id int32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repos.SpecialDates.Delete(s.userID, id); err != nil {
		return err
	}
	s.specialDates = filter(s.specialDates, func(d *domain.SpecialDate) bool { return d.ID != id })
	return nil
}

// AddSavingsGoal persists a new savings goal and appends it to the projection.
func (s *Store) AddSavingsGoal(goal *domain.SavingsGoal) (*domain.SavingsGoal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	goal.UserID = s.userID
	created, err := s.repos.SavingsGoals.Create(goal)
	if err != nil {
		return nil, err
	}
	s.savingsGoals = append(s.savingsGoals, created)

	s.logger.Info().Int32("goal_id", created.ID).Str("name", created.Name).Msg("Savings goal added")
	c := *created
	return &c, nil
}

// UpdateSavingsGoal persists the changed fields and merges them by
// identifier. CurrentAmount is not part of the update surface; it moves only
// through movement mutations.
func (s *Store) UpdateSavingsGoal(id int32, update *domain.SavingsGoalUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repos.SavingsGoals.Update(s.userID, id, update); err != nil {
		return err
	}

	goal := s.findSavingsGoal(id)
	if goal == nil {
		return nil
	}
	if update.Name != nil {
		goal.Name = *update.Name
	}
	if update.TargetAmount != nil {
		goal.TargetAmount = *update.TargetAmount
	}
	if update.TargetDate != nil {
		goal.TargetDate = update.TargetDate
	}
	return nil
}

// RemoveSavingsGoal persists the deletion and filters the goal and its
// movements out of the projection.
func (s *Store) RemoveSavingsGoal(id int32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repos.SavingsGoals.Delete(s.userID, id); err != nil {
		return err
	}
	s.savingsGoals = filter(s.savingsGoals, func(g *domain.SavingsGoal) bool { return g.ID != id })
	s.savingsMovements = filter(s.savingsMovements, func(m *domain.SavingsMovement) bool { return m.GoalID != id })

	s.logger.Info().Int32("goal_id", id).Msg("Savings goal removed")
	return nil
}

// UpsertWeeklyGoal persists the plan for one (year, month, category) and
// replaces or appends it in the projection.
func (s *Store) UpsertWeeklyGoal(goal *domain.WeeklyGoal) (*domain.WeeklyGoal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	goal.UserID = s.userID
	stored, err := s.repos.WeeklyGoals.Upsert(goal)
	if err != nil {
		return nil, err
	}

	replaced := false
	for i, g := range s.weeklyGoals {
		if g.Year == stored.Year && g.Month == stored.Month && g.CategoryID == stored.CategoryID {
			s.weeklyGoals[i] = stored
			replaced = true
			break
		}
	}
	if !replaced {
		s.weeklyGoals = append(s.weeklyGoals, stored)
	}
	c := *stored
	return &c, nil
}

// RemoveWeeklyGoal persists the deletion and filters it out of the projection.
func (s *Store) RemoveWeeklyGoal(year, month int, categoryID int32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repos.WeeklyGoals.Delete(s.userID, year, month, categoryID); err != nil {
		return err
	}
	s.weeklyGoals = filter(s.weeklyGoals, func(g *domain.WeeklyGoal) bool {
		return g.Year != year || g.Month != month || g.CategoryID != categoryID
	})
	return nil
}

// UpsertMonthlyNote persists the note for one (year, month) and replaces or
// appends it in the projection.
func (s *Store) UpsertMonthlyNote(note *domain.MonthlyNote) (*domain.MonthlyNote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	note.UserID = s.userID
	stored, err := s.repos.MonthlyNotes.Upsert(note)
	if err != nil {
		return nil, err
	}

	replaced := false
	for i, n := range s.monthlyNotes {
		if n.Year == stored.Year && n.Month == stored.Month {
			s.monthlyNotes[i] = stored
			replaced = true
			break
		}
	}
	if !replaced {
		s.monthlyNotes = append(s.monthlyNotes, stored)
	}
	c := *stored
	return &c, nil
}

// RemoveMonthlyNote persists the deletion and filters it out of the projection.
func (s *Store) RemoveMonthlyNote(year, month int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repos.MonthlyNotes.Delete(s.userID, year, month); err != nil {
		return err
	}
	s.monthlyNotes = filter(s.monthlyNotes, func(n *domain.MonthlyNote) bool {
		return n.Year != year || n.Month != month
	})
	return nil
}

// filter keeps the elements for which keep returns true.
func filter[T any](in []*T, keep func(*T) bool) []*T {
	out := in[:0:0]
	for _, v := range in {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}
