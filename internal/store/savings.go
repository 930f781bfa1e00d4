package store

import (
	"github.com/haldorr/pennywise-backend/internal/domain"
)

// Savings movements mirror the transaction contract across two running
// totals: a deposit adds to the goal's current amount and subtracts from the
// account's balance, a withdrawal does the reverse. SavingsGoal.CurrentAmount
// always equals the net sum of the movements against that goal.

// AddMovement persists the movement together with the adjusted goal total and
// account balance, then applies all three to the projection.
func (s *Store) AddMovement(movement *domain.SavingsMovement) (*domain.SavingsMovement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	goal := s.findSavingsGoal(movement.GoalID)
	if goal == nil {
		return nil, domain.ErrSavingsGoalNotFound
	}
	account := s.findAccount(movement.AccountID)
	if account == nil {
		return nil, domain.ErrAccountNotFound
	}

	newGoalAmount := goal.CurrentAmount.Add(movement.GoalEffect())
	if newGoalAmount.IsNegative() {
		return nil, domain.ErrInsufficientFunds
	}
	newBalance := account.Balance.Add(movement.AccountEffect())

	movement.UserID = s.userID
	created, err := s.repos.SavingsMovements.CreateWithEffects(movement,
		[]domain.GoalAmountWrite{{GoalID: goal.ID, CurrentAmount: newGoalAmount}},
		[]domain.BalanceWrite{{AccountID: account.ID, Balance: newBalance}})
	if err != nil {
		return nil, err
	}

	s.savingsMovements = append(s.savingsMovements, created)
	goal.CurrentAmount = newGoalAmount
	account.Balance = newBalance

	s.logger.Info().
		Int32("movement_id", created.ID).
		Int32("goal_id", goal.ID).
		Str("type", string(created.Type)).
		Str("amount", created.Amount.StringFixed(2)).
		Msg("Savings movement added")
	c := *created
	return &c, nil
}

// UpdateMovement reconciles the goal totals and account balances for any
// combination of amount, type, goal and account changes in one call, using
// the same merged-view rule as transaction updates.
func (s *Store) UpdateMovement(id int32, update *domain.SavingsMovementUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	oldMv := s.findMovement(id)
	if oldMv == nil {
		return domain.ErrSavingsMovementNotFound
	}

	merged := *oldMv
	if update.GoalID != nil {
		merged.GoalID = *update.GoalID
	}
	if update.AccountID != nil {
		merged.AccountID = *update.AccountID
	}
	if update.Type != nil {
		merged.Type = *update.Type
	}
	if update.Amount != nil {
		merged.Amount = *update.Amount
	}
	if update.Date != nil {
		merged.Date = *update.Date
	}
	if update.Note != nil {
		merged.Note = update.Note
	}

	newGoal := s.findSavingsGoal(merged.GoalID)
	if newGoal == nil {
		return domain.ErrSavingsGoalNotFound
	}
	newAccount := s.findAccount(merged.AccountID)
	if newAccount == nil {
		return domain.ErrAccountNotFound
	}

	var goals []domain.GoalAmountWrite
	if merged.GoalID == oldMv.GoalID {
		amount := newGoal.CurrentAmount.Sub(oldMv.GoalEffect()).Add(merged.GoalEffect())
		if amount.IsNegative() {
			return domain.ErrInsufficientFunds
		}
		goals = []domain.GoalAmountWrite{{GoalID: newGoal.ID, CurrentAmount: amount}}
	} else {
		oldGoal := s.findSavingsGoal(oldMv.GoalID)
		if oldGoal == nil {
			return domain.ErrSavingsGoalNotFound
		}
		oldAmount := oldGoal.CurrentAmount.Sub(oldMv.GoalEffect())
		newAmount := newGoal.CurrentAmount.Add(merged.GoalEffect())
		if oldAmount.IsNegative() || newAmount.IsNegative() {
			return domain.ErrInsufficientFunds
		}
		goals = []domain.GoalAmountWrite{
			{GoalID: oldGoal.ID, CurrentAmount: oldAmount},
			{GoalID: newGoal.ID, CurrentAmount: newAmount},
		}
	}

	var balances []domain.BalanceWrite
	if merged.AccountID == oldMv.AccountID {
		balances = []domain.BalanceWrite{
			{AccountID: newAccount.ID, Balance: newAccount.Balance.Sub(oldMv.AccountEffect()).Add(merged.AccountEffect())},
		}
	} else {
		oldAccount := s.findAccount(oldMv.AccountID)
		if oldAccount == nil {
			return domain.ErrAccountNotFound
		}
		balances = []domain.BalanceWrite{
			{AccountID: oldAccount.ID, Balance: oldAccount.Balance.Sub(oldMv.AccountEffect())},
			{AccountID: newAccount.ID, Balance: newAccount.Balance.Add(merged.AccountEffect())},
		}
	}

	if err := s.repos.SavingsMovements.UpdateWithEffects(s.userID, id, update, goals, balances); err != nil {
		return err
	}

	*oldMv = merged
	s.applyGoalAmounts(goals)
	s.applyBalances(balances)

	s.logger.Info().Int32("movement_id", id).Msg("Savings movement updated")
	return nil
}

// RemoveMovement reverses the movement's effects, persists the deletion with
// the reversed totals, and drops it from the projection.
func (s *Store) RemoveMovement(id int32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	movement := s.findMovement(id)
	if movement == nil {
		return domain.ErrSavingsMovementNotFound
	}

	var goals []domain.GoalAmountWrite
	if goal := s.findSavingsGoal(movement.GoalID); goal != nil {
		amount := goal.CurrentAmount.Sub(movement.GoalEffect())
		if amount.IsNegative() {
			return domain.ErrInsufficientFunds
		}
		goals = []domain.GoalAmountWrite{{GoalID: goal.ID, CurrentAmount: amount}}
	}
	var balances []domain.BalanceWrite
	if account := s.findAccount(movement.AccountID); account != nil {
		balances = []domain.BalanceWrite{
			{AccountID: account.ID, Balance: account.Balance.Sub(movement.AccountEffect())},
		}
	}

	if err := s.repos.SavingsMovements.DeleteWithEffects(s.userID, id, goals, balances); err != nil {
		return err
	}

	s.savingsMovements = filter(s.savingsMovements, func(m *domain.SavingsMovement) bool { return m.ID != id })
	s.applyGoalAmounts(goals)
	s.applyBalances(balances)

	s.logger.Info().Int32("movement_id", id).Msg("Savings movement removed")
	return nil
}

// applyGoalAmounts writes already-persisted goal totals into the projection.
func (s *Store) applyGoalAmounts(goals []domain.GoalAmountWrite) {
	for _, gw := range goals {
		if goal := s.findSavingsGoal(gw.GoalID); goal != nil {
			goal.CurrentAmount = gw.CurrentAmount
		}
	}
}
