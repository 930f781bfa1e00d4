package store

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haldorr/pennywise-backend/internal/domain"
)

func (f *storeFixture) addGoal(t *testing.T, name string, target decimal.Decimal) *domain.SavingsGoal {
	goal, err := f.store.AddSavingsGoal(&domain.SavingsGoal{
		Name:         name,
		TargetAmount: target,
	})
	require.NoError(t, err)
	return goal
}

func (f *storeFixture) goalByID(t *testing.T, id int32) *domain.SavingsGoal {
	for _, g := range f.store.SavingsGoals() {
		if g.ID == id {
			return g
		}
	}
	t.Fatalf("goal %d not in projection", id)
	return nil
}

func (f *storeFixture) accountByID(t *testing.T, id int32) *domain.Account {
	for _, a := range f.store.Accounts() {
		if a.ID == id {
			return a
		}
	}
	t.Fatalf("account %d not in projection", id)
	return nil
}

func TestAddMovement_DepositMovesFundsIntoGoal(t *testing.T) {
	f := newLoadedFixture(t)
	account := f.addAccount(t, "Checking", decimal.NewFromInt(1000))
	goal := f.addGoal(t, "Vacation", decimal.NewFromInt(2000))

	created, err := f.store.AddMovement(&domain.SavingsMovement{
		GoalID:    goal.ID,
		AccountID: account.ID,
		Type:      domain.MovementTypeDeposit,
		Amount:    decimal.NewFromInt(200),
	})
	require.NoError(t, err)

	assert.NotZero(t, created.ID)
	assert.True(t, f.goalByID(t, goal.ID).CurrentAmount.Equal(decimal.NewFromInt(200)))
	assert.True(t, f.accountByID(t, account.ID).Balance.Equal(decimal.NewFromInt(800)))
}

func TestAddMovement_WithdrawReturnsFunds(t *testing.T) {
	f := newLoadedFixture(t)
	account := f.addAccount(t, "Checking", decimal.NewFromInt(1000))
	goal := f.addGoal(t, "Vacation", decimal.NewFromInt(2000))

	_, err := f.store.AddMovement(&domain.SavingsMovement{
		GoalID:    goal.ID,
		AccountID: account.ID,
		Type:      domain.MovementTypeDeposit,
		Amount:    decimal.NewFromInt(500),
	})
	require.NoError(t, err)

	_, err = f.store.AddMovement(&domain.SavingsMovement{
		GoalID:    goal.ID,
		AccountID: account.ID,
		Type:      domain.MovementTypeWithdraw,
		Amount:    decimal.NewFromInt(150),
	})
	require.NoError(t, err)

	assert.True(t, f.goalByID(t, goal.ID).CurrentAmount.Equal(decimal.NewFromInt(350)))
	assert.True(t, f.accountByID(t, account.ID).Balance.Equal(decimal.NewFromInt(650)))
}

func TestAddMovement_WithdrawBeyondSavedFunds(t *testing.T) {
	f := newLoadedFixture(t)
	account := f.addAccount(t, "Checking", decimal.NewFromInt(1000))
	goal := f.addGoal(t, "Vacation", decimal.NewFromInt(2000))

	_, err := f.store.AddMovement(&domain.SavingsMovement{
		GoalID:    goal.ID,
		AccountID: account.ID,
		Type:      domain.MovementTypeWithdraw,
		Amount:    decimal.NewFromInt(50),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	assert.True(t, f.goalByID(t, goal.ID).CurrentAmount.IsZero())
	assert.True(t, f.accountByID(t, account.ID).Balance.Equal(decimal.NewFromInt(1000)))
}

func TestUpdateMovement_AmountOnly(t *testing.T) {
	f := newLoadedFixture(t)
	account := f.addAccount(t, "Checking", decimal.NewFromInt(1000))
	goal := f.addGoal(t, "Vacation", decimal.NewFromInt(2000))

	created, err := f.store.AddMovement(&domain.SavingsMovement{
		GoalID:    goal.ID,
		AccountID: account.ID,
		Type:      domain.MovementTypeDeposit,
		Amount:    decimal.NewFromInt(200),
	})
	require.NoError(t, err)

	amount := decimal.NewFromInt(350)
	require.NoError(t, f.store.UpdateMovement(created.ID, &domain.SavingsMovementUpdate{Amount: &amount}))

	assert.True(t, f.goalByID(t, goal.ID).CurrentAmount.Equal(decimal.NewFromInt(350)))
	assert.True(t, f.accountByID(t, account.ID).Balance.Equal(decimal.NewFromInt(650)))
}

func TestUpdateMovement_MoveBetweenGoals(t *testing.T) {
	f := newLoadedFixture(t)
	account := f.addAccount(t, "Checking", decimal.NewFromInt(1000))
	vacation := f.addGoal(t, "Vacation", decimal.NewFromInt(2000))
	car := f.addGoal(t, "Car", decimal.NewFromInt(5000))

	created, err := f.store.AddMovement(&domain.SavingsMovement{
		GoalID:    vacation.ID,
		AccountID: account.ID,
		Type:      domain.MovementTypeDeposit,
		Amount:    decimal.NewFromInt(300),
	})
	require.NoError(t, err)

	require.NoError(t, f.store.UpdateMovement(created.ID, &domain.SavingsMovementUpdate{GoalID: &car.ID}))

	assert.True(t, f.goalByID(t, vacation.ID).CurrentAmount.IsZero())
	assert.True(t, f.goalByID(t, car.ID).CurrentAmount.Equal(decimal.NewFromInt(300)))
	assert.True(t, f.accountByID(t, account.ID).Balance.Equal(decimal.NewFromInt(700)))
}

func TestUpdateMovement_MoveWouldOverdrawOldGoal(t *testing.T) {
	f := newLoadedFixture(t)
	account := f.addAccount(t, "Checking", decimal.NewFromInt(1000))
	vacation := f.addGoal(t, "Vacation", decimal.NewFromInt(2000))
	car := f.addGoal(t, "Car", decimal.NewFromInt(5000))

	_, err := f.store.AddMovement(&domain.SavingsMovement{
		GoalID:    car.ID,
		AccountID: account.ID,
		Type:      domain.MovementTypeDeposit,
		Amount:    decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	withdraw, err := f.store.AddMovement(&domain.SavingsMovement{
		GoalID:    car.ID,
		AccountID: account.ID,
		Type:      domain.MovementTypeWithdraw,
		Amount:    decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	// Re-pointing the withdrawal at a goal with no deposits would push that
	// goal's total negative.
	err = f.store.UpdateMovement(withdraw.ID, &domain.SavingsMovementUpdate{GoalID: &vacation.ID})
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	assert.True(t, f.goalByID(t, vacation.ID).CurrentAmount.IsZero())
	assert.True(t, f.goalByID(t, car.ID).CurrentAmount.IsZero())
}

func TestRemoveMovement_RestoresBothTotals(t *testing.T) {
	f := newLoadedFixture(t)
	account := f.addAccount(t, "Checking", decimal.NewFromInt(1000))
	goal := f.addGoal(t, "Vacation", decimal.NewFromInt(2000))

	created, err := f.store.AddMovement(&domain.SavingsMovement{
		GoalID:    goal.ID,
		AccountID: account.ID,
		Type:      domain.MovementTypeDeposit,
		Amount:    decimal.NewFromInt(200),
	})
	require.NoError(t, err)

	require.NoError(t, f.store.RemoveMovement(created.ID))

	assert.Empty(t, f.store.SavingsMovements())
	assert.True(t, f.goalByID(t, goal.ID).CurrentAmount.IsZero())
	assert.True(t, f.accountByID(t, account.ID).Balance.Equal(decimal.NewFromInt(1000)))
}

func TestAddMovement_PersistErrorLeavesProjection(t *testing.T) {
	f := newLoadedFixture(t)
	account := f.addAccount(t, "Checking", decimal.NewFromInt(1000))
	goal := f.addGoal(t, "Vacation", decimal.NewFromInt(2000))
	f.movements.CreateFn = func(movement *domain.SavingsMovement, goals []domain.GoalAmountWrite, balances []domain.BalanceWrite) (*domain.SavingsMovement, error) {
		return nil, errors.New("connection refused")
	}

	_, err := f.store.AddMovement(&domain.SavingsMovement{
		GoalID:    goal.ID,
		AccountID: account.ID,
		Type:      domain.MovementTypeDeposit,
		Amount:    decimal.NewFromInt(200),
	})
	require.Error(t, err)
	assert.True(t, f.goalByID(t, goal.ID).CurrentAmount.IsZero())
	assert.True(t, f.accountByID(t, account.ID).Balance.Equal(decimal.NewFromInt(1000)))
	assert.Empty(t, f.store.SavingsMovements())
}

func TestRemoveSavingsGoal_CascadesMovements(t *testing.T) {
	f := newLoadedFixture(t)
	account := f.addAccount(t, "Checking", decimal.NewFromInt(1000))
	goal := f.addGoal(t, "Vacation", decimal.NewFromInt(2000))

	_, err := f.store.AddMovement(&domain.SavingsMovement{
		GoalID:    goal.ID,
		AccountID: account.ID,
		Type:      domain.MovementTypeDeposit,
		Amount:    decimal.NewFromInt(200),
	})
	require.NoError(t, err)

	require.NoError(t, f.store.RemoveSavingsGoal(goal.ID))

	assert.Empty(t, f.store.SavingsGoals())
	assert.Empty(t, f.store.SavingsMovements())
}
