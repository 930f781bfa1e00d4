package porting

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haldorr/pennywise-backend/internal/domain"
	"github.com/haldorr/pennywise-backend/internal/store"
	"github.com/haldorr/pennywise-backend/internal/testutil"
)

func newTestStore(t *testing.T) *store.Store {
	s := store.New(uuid.New(), store.Repositories{
		Accounts:         testutil.NewMockAccountRepository(),
		Categories:       testutil.NewMockCategoryRepository(),
		Transactions:     testutil.NewMockTransactionRepository(),
		SpecialDates:     testutil.NewMockSpecialDateRepository(),
		SavingsGoals:     testutil.NewMockSavingsGoalRepository(),
		SavingsMovements: testutil.NewMockSavingsMovementRepository(),
		WeeklyGoals:      testutil.NewMockWeeklyGoalRepository(),
		MonthlyNotes:     testutil.NewMockMonthlyNoteRepository(),
	}, zerolog.Nop())
	require.NoError(t, s.LoadAll())
	return s
}

func TestImport_ResolvesAndCreates(t *testing.T) {
	s := newTestStore(t)
	_, err := s.AddAccount(&domain.Account{Name: "Checking", Type: domain.AccountTypeChecking, Balance: decimal.NewFromInt(1000)})
	require.NoError(t, err)

	input := strings.Join([]string{
		"description,amount,date,type,category,account,payment_type",
		"Weekly shop,54.20,2025-03-03,expense,groceries,checking,single",
		"March salary,2500.00,2025-03-01,income,Salary,Checking,",
		"Gym,29.90,2025-03-05,expense,Fitness,Wallet,monthly",
	}, "\n")

	importer := NewImporter(s, zerolog.Nop())
	summary, err := importer.Import(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Imported)
	assert.Equal(t, 0, summary.Skipped)
	// "Fitness" is new; "groceries" and "Salary" resolve case-insensitively
	// against the seeded defaults.
	assert.Equal(t, 1, summary.CreatedCategories)
	// "Wallet" is new; "checking" resolves against the existing account.
	assert.Equal(t, 1, summary.CreatedAccounts)

	assert.Len(t, s.Transactions(), 3)
	assert.Len(t, s.Accounts(), 2)
	assert.Len(t, s.Categories(), 6)
}

func TestImport_AppliesBalanceEffects(t *testing.T) {
	s := newTestStore(t)
	_, err := s.AddAccount(&domain.Account{Name: "Checking", Type: domain.AccountTypeChecking, Balance: decimal.NewFromInt(1000)})
	require.NoError(t, err)

	input := strings.Join([]string{
		"description,amount,date,type,category,account,payment_type",
		"Weekly shop,200.00,2025-03-03,expense,Groceries,Checking,single",
	}, "\n")

	importer := NewImporter(s, zerolog.Nop())
	_, err = importer.Import(strings.NewReader(input))
	require.NoError(t, err)

	assert.True(t, s.Accounts()[0].Balance.Equal(decimal.NewFromInt(800)))
}

func TestImport_SkipsInvalidRows(t *testing.T) {
	s := newTestStore(t)

	input := strings.Join([]string{
		"description,amount,date,type,category,account,payment_type",
		",10.00,2025-03-03,expense,Groceries,Checking,",
		"Bad amount,-5.00,2025-03-03,expense,Groceries,Checking,",
		"Bad date,10.00,03/03/2025,expense,Groceries,Checking,",
		"Bad type,10.00,2025-03-03,transfer,Groceries,Checking,",
		"Bad payment,10.00,2025-03-03,expense,Groceries,Checking,weekly",
		"Good row,10.00,2025-03-03,expense,Groceries,Checking,",
	}, "\n")

	importer := NewImporter(s, zerolog.Nop())
	summary, err := importer.Import(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Imported)
	assert.Equal(t, 5, summary.Skipped)
	assert.Len(t, s.Transactions(), 1)
}

func TestImport_MalformedStreamFails(t *testing.T) {
	s := newTestStore(t)

	importer := NewImporter(s, zerolog.Nop())
	_, err := importer.Import(strings.NewReader("only,three,columns\n"))
	assert.Error(t, err)
}

func TestExport_RoundTripsAndLabelsUnknowns(t *testing.T) {
	s := newTestStore(t)
	account, err := s.AddAccount(&domain.Account{Name: "Checking", Type: domain.AccountTypeChecking, Balance: decimal.NewFromInt(1000)})
	require.NoError(t, err)

	input := strings.Join([]string{
		"description,amount,date,type,category,account,payment_type",
		"Weekly shop,54.20,2025-03-03,expense,Groceries,Checking,single",
	}, "\n")
	importer := NewImporter(s, zerolog.Nop())
	_, err = importer.Import(strings.NewReader(input))
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, Export(&out, s.Transactions(), s.Accounts(), s.Categories()))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "description,amount,date,type,category,account,payment_type", lines[0])
	assert.Equal(t, "Weekly shop,54.20,2025-03-03,expense,Groceries,Checking,single", lines[1])

	// A transaction pointing at a deleted account exports with a placeholder.
	orphan := []*domain.Transaction{{
		AccountID:   account.ID + 99,
		CategoryID:  999,
		Description: "Orphan",
		Amount:      decimal.NewFromInt(5),
		Type:        domain.TransactionTypeExpense,
		Date:        s.Transactions()[0].Date,
	}}
	out.Reset()
	require.NoError(t, Export(&out, orphan, s.Accounts(), s.Categories()))
	assert.Contains(t, out.String(), unknownAccountLabel)
	assert.Contains(t, out.String(), unknownCategoryLabel)
}
