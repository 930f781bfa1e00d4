package store

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haldorr/pennywise-backend/internal/domain"
	"github.com/haldorr/pennywise-backend/internal/testutil"
)

type storeFixture struct {
	userID       uuid.UUID
	accounts     *testutil.MockAccountRepository
	categories   *testutil.MockCategoryRepository
	transactions *testutil.MockTransactionRepository
	specialDates *testutil.MockSpecialDateRepository
	goals        *testutil.MockSavingsGoalRepository
	movements    *testutil.MockSavingsMovementRepository
	weeklyGoals  *testutil.MockWeeklyGoalRepository
	notes        *testutil.MockMonthlyNoteRepository
	store        *Store
}

func newFixture() *storeFixture {
	f := &storeFixture{
		userID:       uuid.New(),
		accounts:     testutil.NewMockAccountRepository(),
		categories:   testutil.NewMockCategoryRepository(),
		transactions: testutil.NewMockTransactionRepository(),
		specialDates: testutil.NewMockSpecialDateRepository(),
		goals:        testutil.NewMockSavingsGoalRepository(),
		movements:    testutil.NewMockSavingsMovementRepository(),
		weeklyGoals:  testutil.NewMockWeeklyGoalRepository(),
		notes:        testutil.NewMockMonthlyNoteRepository(),
	}
	f.store = New(f.userID, f.repositories(), zerolog.Nop())
	return f
}

func (f *storeFixture) repositories() Repositories {
	return Repositories{
		Accounts:         f.accounts,
		Categories:       f.categories,
		Transactions:     f.transactions,
		SpecialDates:     f.specialDates,
		SavingsGoals:     f.goals,
		SavingsMovements: f.movements,
		WeeklyGoals:      f.weeklyGoals,
		MonthlyNotes:     f.notes,
	}
}

func newLoadedFixture(t *testing.T) *storeFixture {
	f := newFixture()
	require.NoError(t, f.store.LoadAll())
	return f
}

func (f *storeFixture) addAccount(t *testing.T, name string, balance decimal.Decimal) *domain.Account {
	account, err := f.store.AddAccount(&domain.Account{
		Name:    name,
		Type:    domain.AccountTypeChecking,
		Balance: balance,
	})
	require.NoError(t, err)
	return account
}

func (f *storeFixture) categoryByType(t *testing.T, categoryType domain.CategoryType) *domain.Category {
	for _, c := range f.store.Categories() {
		if c.Type == categoryType {
			return c
		}
	}
	t.Fatalf("no seeded category of type %s", categoryType)
	return nil
}

func TestLoadAll_SeedsDefaultCategories(t *testing.T) {
	f := newFixture()

	require.NoError(t, f.store.LoadAll())

	categories := f.store.Categories()
	require.Len(t, categories, 5)
	for _, c := range categories {
		assert.NotZero(t, c.ID)
		assert.Equal(t, f.userID, c.UserID)
	}
	assert.Len(t, f.categories.Categories, 5)
	assert.True(t, f.store.Loaded())
}

func TestLoadAll_KeepsExistingCategories(t *testing.T) {
	f := newFixture()
	f.categories.AddCategory(&domain.Category{
		ID:     1,
		UserID: f.userID,
		Name:   "Rent",
		Type:   domain.CategoryTypeExpense,
	})

	require.NoError(t, f.store.LoadAll())

	categories := f.store.Categories()
	require.Len(t, categories, 1)
	assert.Equal(t, "Rent", categories[0].Name)
}

func TestLoadAll_SeedFailureLeavesStoreUnloaded(t *testing.T) {
	f := newFixture()
	f.categories.CreateBatchFn = func(categories []*domain.Category) ([]*domain.Category, error) {
		return nil, errors.New("connection refused")
	}

	err := f.store.LoadAll()
	require.Error(t, err)
	assert.False(t, f.store.Loaded())
	assert.Empty(t, f.store.Categories())
}

func TestAddAccount(t *testing.T) {
	f := newLoadedFixture(t)

	account := f.addAccount(t, "Checking", decimal.NewFromInt(1000))

	assert.Equal(t, int32(1), account.ID)
	assert.Equal(t, f.userID, account.UserID)
	require.Len(t, f.store.Accounts(), 1)
	assert.True(t, f.store.Accounts()[0].Balance.Equal(decimal.NewFromInt(1000)))
}

func TestAddAccount_PersistErrorLeavesProjection(t *testing.T) {
	f := newLoadedFixture(t)
	f.accounts.CreateFn = func(account *domain.Account) (*domain.Account, error) {
		return nil, errors.New("connection refused")
	}

	_, err := f.store.AddAccount(&domain.Account{Name: "Checking", Type: domain.AccountTypeChecking})
	require.Error(t, err)
	assert.Empty(t, f.store.Accounts())
}

func TestUpdateAccount(t *testing.T) {
	f := newLoadedFixture(t)
	account := f.addAccount(t, "Checking", decimal.Zero)

	name := "Everyday"
	accountType := domain.AccountTypeSavings
	require.NoError(t, f.store.UpdateAccount(account.ID, &domain.AccountUpdate{
		Name: &name,
		Type: &accountType,
	}))

	got := f.store.Accounts()[0]
	assert.Equal(t, "Everyday", got.Name)
	assert.Equal(t, domain.AccountTypeSavings, got.Type)
}

func TestRemoveAccount_CascadesTransactionsAndMovements(t *testing.T) {
	f := newLoadedFixture(t)
	account := f.addAccount(t, "Checking", decimal.NewFromInt(1000))
	other := f.addAccount(t, "Wallet", decimal.NewFromInt(50))
	expense := f.categoryByType(t, domain.CategoryTypeExpense)

	_, err := f.store.AddTransaction(&domain.Transaction{
		AccountID:   account.ID,
		CategoryID:  expense.ID,
		Description: "Groceries",
		Amount:      decimal.NewFromInt(40),
		Type:        domain.TransactionTypeExpense,
	})
	require.NoError(t, err)
	_, err = f.store.AddTransaction(&domain.Transaction{
		AccountID:   other.ID,
		CategoryID:  expense.ID,
		Description: "Coffee",
		Amount:      decimal.NewFromInt(5),
		Type:        domain.TransactionTypeExpense,
	})
	require.NoError(t, err)

	require.NoError(t, f.store.RemoveAccount(account.ID))

	require.Len(t, f.store.Accounts(), 1)
	assert.Equal(t, other.ID, f.store.Accounts()[0].ID)
	require.Len(t, f.store.Transactions(), 1)
	assert.Equal(t, other.ID, f.store.Transactions()[0].AccountID)
}

func TestRemoveCategory_InUse(t *testing.T) {
	f := newLoadedFixture(t)
	account := f.addAccount(t, "Checking", decimal.NewFromInt(100))
	expense := f.categoryByType(t, domain.CategoryTypeExpense)

	_, err := f.store.AddTransaction(&domain.Transaction{
		AccountID:   account.ID,
		CategoryID:  expense.ID,
		Description: "Groceries",
		Amount:      decimal.NewFromInt(10),
		Type:        domain.TransactionTypeExpense,
	})
	require.NoError(t, err)

	err = f.store.RemoveCategory(expense.ID)
	assert.ErrorIs(t, err, domain.ErrCategoryInUse)
	assert.Len(t, f.store.Categories(), 5)
}

func TestRemoveCategory_DropsWeeklyGoals(t *testing.T) {
	f := newLoadedFixture(t)
	expense := f.categoryByType(t, domain.CategoryTypeExpense)

	amount := decimal.NewFromInt(50)
	_, err := f.store.UpsertWeeklyGoal(&domain.WeeklyGoal{
		CategoryID: expense.ID,
		Year:       2025,
		Month:      3,
		Weeks:      [domain.WeekGroupCount]*decimal.Decimal{&amount},
	})
	require.NoError(t, err)

	require.NoError(t, f.store.RemoveCategory(expense.ID))
	assert.Empty(t, f.store.WeeklyGoals())
}

func TestUpsertWeeklyGoal_ReplacesExistingRow(t *testing.T) {
	f := newLoadedFixture(t)
	expense := f.categoryByType(t, domain.CategoryTypeExpense)

	first := decimal.NewFromInt(50)
	_, err := f.store.UpsertWeeklyGoal(&domain.WeeklyGoal{
		CategoryID: expense.ID,
		Year:       2025,
		Month:      3,
		Weeks:      [domain.WeekGroupCount]*decimal.Decimal{&first},
	})
	require.NoError(t, err)

	second := decimal.NewFromInt(75)
	updated, err := f.store.UpsertWeeklyGoal(&domain.WeeklyGoal{
		CategoryID: expense.ID,
		Year:       2025,
		Month:      3,
		Weeks:      [domain.WeekGroupCount]*decimal.Decimal{&second},
	})
	require.NoError(t, err)

	goals := f.store.WeeklyGoals()
	require.Len(t, goals, 1)
	assert.Equal(t, updated.ID, goals[0].ID)
	require.NotNil(t, goals[0].Weeks[0])
	assert.True(t, goals[0].Weeks[0].Equal(second))
}

func TestUpsertMonthlyNote_ReplacesExistingNote(t *testing.T) {
	f := newLoadedFixture(t)

	_, err := f.store.UpsertMonthlyNote(&domain.MonthlyNote{Year: 2025, Month: 3, Content: "tight month"})
	require.NoError(t, err)
	_, err = f.store.UpsertMonthlyNote(&domain.MonthlyNote{Year: 2025, Month: 3, Content: "bonus arrived"})
	require.NoError(t, err)

	notes := f.store.MonthlyNotes()
	require.Len(t, notes, 1)
	assert.Equal(t, "bonus arrived", notes[0].Content)
}

func TestRemoveMonthlyNote(t *testing.T) {
	f := newLoadedFixture(t)

	_, err := f.store.UpsertMonthlyNote(&domain.MonthlyNote{Year: 2025, Month: 3, Content: "note"})
	require.NoError(t, err)

	require.NoError(t, f.store.RemoveMonthlyNote(2025, 3))
	assert.Empty(t, f.store.MonthlyNotes())

	err = f.store.RemoveMonthlyNote(2025, 3)
	assert.ErrorIs(t, err, domain.ErrMonthlyNoteNotFound)
}

func TestSnapshots_AreCopies(t *testing.T) {
	f := newLoadedFixture(t)
	f.addAccount(t, "Checking", decimal.NewFromInt(100))

	snap := f.store.Accounts()
	snap[0].Balance = decimal.NewFromInt(9999)

	assert.True(t, f.store.Accounts()[0].Balance.Equal(decimal.NewFromInt(100)))
}
