package testutil

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/haldorr/pennywise-backend/internal/domain"
)

// MockUserRepository is a mock implementation of domain.UserRepository
type MockUserRepository struct {
	Users    map[string]*domain.User
	CreateFn func(authID, email string) (*domain.User, error)
}

// NewMockUserRepository creates a new MockUserRepository
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{Users: make(map[string]*domain.User)}
}

// GetByAuthID retrieves a user by identity-provider subject
func (m *MockUserRepository) GetByAuthID(authID string) (*domain.User, error) {
	if user, ok := m.Users[authID]; ok {
		return user, nil
	}
	return nil, domain.ErrNotFound
}

// CreateOrGetByAuthID creates or retrieves a user by identity-provider subject
func (m *MockUserRepository) CreateOrGetByAuthID(authID, email string) (*domain.User, error) {
	if m.CreateFn != nil {
		return m.CreateFn(authID, email)
	}
	if user, ok := m.Users[authID]; ok {
		return user, nil
	}
	user := &domain.User{ID: uuid.New(), AuthID: authID, Email: email}
	m.Users[authID] = user
	return user, nil
}

// AddUser adds a user to the mock repository (helper for tests)
func (m *MockUserRepository) AddUser(user *domain.User) {
	m.Users[user.AuthID] = user
}

// MockAccountRepository is a mock implementation of domain.AccountRepository
type MockAccountRepository struct {
	Accounts map[int32]*domain.Account
	ByUser   map[uuid.UUID][]*domain.Account
	NextID   int32
	CreateFn func(account *domain.Account) (*domain.Account, error)
	UpdateFn func(userID uuid.UUID, id int32, update *domain.AccountUpdate) error
	DeleteFn func(userID uuid.UUID, id int32) error
}

// NewMockAccountRepository creates a new MockAccountRepository
func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		Accounts: make(map[int32]*domain.Account),
		ByUser:   make(map[uuid.UUID][]*domain.Account),
		NextID:   1,
	}
}

// Create creates a new account
func (m *MockAccountRepository) Create(account *domain.Account) (*domain.Account, error) {
	if m.CreateFn != nil {
		return m.CreateFn(account)
	}
	stored := *account
	stored.ID = m.NextID
	m.NextID++
	m.Accounts[stored.ID] = &stored
	m.ByUser[stored.UserID] = append(m.ByUser[stored.UserID], &stored)
	return &stored, nil
}

// GetAllByUser retrieves all accounts for a user
func (m *MockAccountRepository) GetAllByUser(userID uuid.UUID) ([]*domain.Account, error) {
	accounts := m.ByUser[userID]
	if accounts == nil {
		return []*domain.Account{}, nil
	}
	return accounts, nil
}

// Update applies a partial account update
func (m *MockAccountRepository) Update(userID uuid.UUID, id int32, update *domain.AccountUpdate) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(userID, id, update)
	}
	account, ok := m.Accounts[id]
	if !ok || account.UserID != userID {
		return domain.ErrAccountNotFound
	}
	if update.Name != nil {
		account.Name = *update.Name
	}
	if update.Type != nil {
		account.Type = *update.Type
	}
	return nil
}

// Delete deletes an account by ID
func (m *MockAccountRepository) Delete(userID uuid.UUID, id int32) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(userID, id)
	}
	account, ok := m.Accounts[id]
	if !ok || account.UserID != userID {
		return domain.ErrAccountNotFound
	}
	delete(m.Accounts, id)
	accounts := m.ByUser[userID]
	for i, acc := range accounts {
		if acc.ID == id {
			m.ByUser[userID] = append(accounts[:i], accounts[i+1:]...)
			break
		}
	}
	return nil
}

// AddAccount adds an account to the mock repository (helper for tests)
func (m *MockAccountRepository) AddAccount(account *domain.Account) {
	m.Accounts[account.ID] = account
	m.ByUser[account.UserID] = append(m.ByUser[account.UserID], account)
	if account.ID >= m.NextID {
		m.NextID = account.ID + 1
	}
}

// MockCategoryRepository is a mock implementation of domain.CategoryRepository
type MockCategoryRepository struct {
	Categories    map[int32]*domain.Category
	ByUser        map[uuid.UUID][]*domain.Category
	NextID        int32
	CreateFn      func(category *domain.Category) (*domain.Category, error)
	CreateBatchFn func(categories []*domain.Category) ([]*domain.Category, error)
	UpdateFn      func(userID uuid.UUID, id int32, update *domain.CategoryUpdate) error
	DeleteFn      func(userID uuid.UUID, id int32) error
}

// NewMockCategoryRepository creates a new MockCategoryRepository
func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{
		Categories: make(map[int32]*domain.Category),
		ByUser:     make(map[uuid.UUID][]*domain.Category),
		NextID:     1,
	}
}

// Create creates a new category
func (m *MockCategoryRepository) Create(category *domain.Category) (*domain.Category, error) {
	if m.CreateFn != nil {
		return m.CreateFn(category)
	}
	stored := *category
	stored.ID = m.NextID
	m.NextID++
	m.Categories[stored.ID] = &stored
	m.ByUser[stored.UserID] = append(m.ByUser[stored.UserID], &stored)
	return &stored, nil
}

// CreateBatch creates several categories at once
func (m *MockCategoryRepository) CreateBatch(categories []*domain.Category) ([]*domain.Category, error) {
	if m.CreateBatchFn != nil {
		return m.CreateBatchFn(categories)
	}
	created := make([]*domain.Category, 0, len(categories))
	for _, c := range categories {
		stored, err := m.Create(c)
		if err != nil {
			return nil, err
		}
		created = append(created, stored)
	}
	return created, nil
}

// GetAllByUser retrieves all categories for a user
func (m *MockCategoryRepository) GetAllByUser(userID uuid.UUID) ([]*domain.Category, error) {
	categories := m.ByUser[userID]
	if categories == nil {
		return []*domain.Category{}, nil
	}
	return categories, nil
}

// Update applies a partial category update
func (m *MockCategoryRepository) Update(userID uuid.UUID, id int32, update *domain.CategoryUpdate) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(userID, id, update)
	}
	category, ok := m.Categories[id]
	if !ok || category.UserID != userID {
		return domain.ErrCategoryNotFound
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

// Delete deletes a category by ID
func (m *MockCategoryRepository) Delete(userID uuid.UUID, id int32) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(userID, id)
	}
	category, ok := m.Categories[id]
	if !ok || category.UserID != userID {
		return domain.ErrCategoryNotFound
	}
	delete(m.Categories, id)
	categories := m.ByUser[userID]
	for i, c := range categories {
		if c.ID == id {
			m.ByUser[userID] = append(categories[:i], categories[i+1:]...)
			break
		}
	}
	return nil
}

// AddCategory adds a category to the mock repository (helper for tests)
func (m *MockCategoryRepository) AddCategory(category *domain.Category) {
	m.Categories[category.ID] = category
	m.ByUser[category.UserID] = append(m.ByUser[category.UserID], category)
	if category.ID >= m.NextID {
		m.NextID = category.ID + 1
	}
}

// MockTransactionRepository is a mock implementation of
// domain.TransactionRepository. Coupled balance writes are recorded in
// LastBalances so tests can assert what would have been persisted.
type MockTransactionRepository struct {
	Transactions map[int32]*domain.Transaction
	ByUser       map[uuid.UUID][]*domain.Transaction
	NextID       int32
	LastBalances []domain.BalanceWrite
	CreateFn     func(transaction *domain.Transaction, balances []domain.BalanceWrite) (*domain.Transaction, error)
	UpdateFn     func(userID uuid.UUID, id int32, update *domain.TransactionUpdate, balances []domain.BalanceWrite) error
	DeleteFn     func(userID uuid.UUID, id int32, balances []domain.BalanceWrite) error
}

// NewMockTransactionRepository creates a new MockTransactionRepository
func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{
		Transactions: make(map[int32]*domain.Transaction),
		ByUser:       make(map[uuid.UUID][]*domain.Transaction),
		NextID:       1,
	}
}

// GetAllByUser retrieves all transactions for a user
func (m *MockTransactionRepository) GetAllByUser(userID uuid.UUID) ([]*domain.Transaction, error) {
	transactions := m.ByUser[userID]
	if transactions == nil {
		return []*domain.Transaction{}, nil
	}
	return transactions, nil
}

// CreateWithBalances inserts a transaction together with its balance writes
func (m *MockTransactionRepository) CreateWithBalances(transaction *domain.Transaction, balances []domain.BalanceWrite) (*domain.Transaction, error) {
	if m.CreateFn != nil {
		return m.CreateFn(transaction, balances)
	}
	stored := *transaction
	stored.ID = m.NextID
	m.NextID++
	m.Transactions[stored.ID] = &stored
	m.ByUser[stored.UserID] = append(m.ByUser[stored.UserID], &stored)
	m.LastBalances = balances
	return &stored, nil
}

// UpdateWithBalances applies a partial update together with its balance writes
func (m *MockTransactionRepository) UpdateWithBalances(userID uuid.UUID, id int32, update *domain.TransactionUpdate, balances []domain.BalanceWrite) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(userID, id, update, balances)
	}
	transaction, ok := m.Transactions[id]
	if !ok || transaction.UserID != userID {
		return domain.ErrTransactionNotFound
	}
	if update.Description != nil {
		transaction.Description = *update.Description
	}
	if update.Amount != nil {
		transaction.Amount = *update.Amount
	}
	if update.Type != nil {
		transaction.Type = *update.Type
	}
	if update.Date != nil {
		transaction.Date = *update.Date
	}
	if update.AccountID != nil {
		transaction.AccountID = *update.AccountID
	}
	if update.CategoryID != nil {
		transaction.CategoryID = *update.CategoryID
	}
	if update.PaymentType != nil {
		transaction.PaymentType = update.PaymentType
	}
	m.LastBalances = balances
	return nil
}

// DeleteWithBalances deletes a transaction together with its balance writes
func (m *MockTransactionRepository) DeleteWithBalances(userID uuid.UUID, id int32, balances []domain.BalanceWrite) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(userID, id, balances)
	}
	transaction, ok := m.Transactions[id]
	if !ok || transaction.UserID != userID {
		return domain.ErrTransactionNotFound
	}
	delete(m.Transactions, id)
	transactions := m.ByUser[userID]
	for i, t := range transactions {
		if t.ID == id {
			m.ByUser[userID] = append(transactions[:i], transactions[i+1:]...)
			break
		}
	}
	m.LastBalances = balances
	return nil
}

// AddTransaction adds a transaction to the mock repository (helper for tests)
func (m *MockTransactionRepository) AddTransaction(transaction *domain.Transaction) {
	m.Transactions[transaction.ID] = transaction
	m.ByUser[transaction.UserID] = append(m.ByUser[transaction.UserID], transaction)
	if transaction.ID >= m.NextID {
		m.NextID = transaction.ID + 1
	}
}

// MockSpecialDateRepository is a mock implementation of domain.SpecialDateRepository
type MockSpecialDateRepository struct {
	Dates    map[int32]*domain.SpecialDate
	ByUser   map[uuid.UUID][]*domain.SpecialDate
	NextID   int32
	CreateFn func(date *domain.SpecialDate) (*domain.SpecialDate, error)
	UpdateFn func(userID uuid.UUID, id int32, update *domain.SpecialDateUpdate) error
	DeleteFn func(userID uuid.UUID, id int32) error
}

// NewMockSpecialDateRepository creates a new MockSpecialDateRepository
func NewMockSpecialDateRepository() *MockSpecialDateRepository {
	return &MockSpecialDateRepository{
		Dates:  make(map[int32]*domain.SpecialDate),
		ByUser: make(map[uuid.UUID][]*domain.SpecialDate),
		NextID: 1,
	}
}

// Create creates a new special date
func (m *MockSpecialDateRepository) Create(date *domain.SpecialDate) (*domain.SpecialDate, error) {
	if m.CreateFn != nil {
		return m.CreateFn(date)
	}
	stored := *date
	stored.ID = m.NextID
	m.NextID++
	m.Dates[stored.ID] = &stored
	m.ByUser[stored.UserID] = append(m.ByUser[stored.UserID], &stored)
	return &stored, nil
}

// GetAllByUser retrieves all special dates for a user
func (m *MockSpecialDateRepository) GetAllByUser(userID uuid.UUID) ([]*domain.SpecialDate, error) {
	dates := m.ByUser[userID]
	if dates == nil {
		return []*domain.SpecialDate{}, nil
	}
	return dates, nil
}

// Update applies a partial special date update
func (m *MockSpecialDateRepository) Update(userID uuid.UUID, id int32, update *domain.SpecialDateUpdate) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(userID, id, update)
	}
	date, ok := m.Dates[id]
	if !ok || date.UserID != userID {
		return domain.ErrSpecialDateNotFound
	}
	if update.Name != nil {
		date.Name = *update.Name
	}
	if update.Date != nil {
		date.Date = *update.Date
	}
	if update.Description != nil {
		date.Description = update.Description
	}
	if update.IsRecurring != nil {
		date.IsRecurring = *update.IsRecurring
	}
	if update.IsCompleted != nil {
		date.IsCompleted = *update.IsCompleted
	}
	return nil
}

// Delete deletes a special date by ID
func (m *MockSpecialDateRepository) Delete(userID uuid.UUID, id int32) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(userID, id)
	}
	date, ok := m.Dates[id]
	if !ok || date.UserID != userID {
		return domain.ErrSpecialDateNotFound
	}
	delete(m.Dates, id)
	dates := m.ByUser[userID]
	for i, d := range dates {
		if d.ID == id {
			m.ByUser[userID] = append(dates[:i], dates[i+1:]...)
			break
		}
	}
	return nil
}

// MockSavingsGoalRepository is a mock implementation of domain.SavingsGoalRepository
type MockSavingsGoalRepository struct {
	Goals    map[int32]*domain.SavingsGoal
	ByUser   map[uuid.UUID][]*domain.SavingsGoal
	NextID   int32
	CreateFn func(goal *domain.SavingsGoal) (*domain.SavingsGoal, error)
	UpdateFn func(userID uuid.UUID, id int32, update *domain.SavingsGoalUpdate) error
	DeleteFn func(userID uuid.UUID, id int32) error
}

// NewMockSavingsGoalRepository creates a new MockSavingsGoalRepository
func NewMockSavingsGoalRepository() *MockSavingsGoalRepository {
	return &MockSavingsGoalRepository{
		Goals:  make(map[int32]*domain.SavingsGoal),
		ByUser: make(map[uuid.UUID][]*domain.SavingsGoal),
		NextID: 1,
	}
}

// Create creates a new savings goal
func (m *MockSavingsGoalRepository) Create(goal *domain.SavingsGoal) (*domain.SavingsGoal, error) {
	if m.CreateFn != nil {
		return m.CreateFn(goal)
	}
	stored := *goal
	stored.ID = m.NextID
	m.NextID++
	m.Goals[stored.ID] = &stored
	m.ByUser[stored.UserID] = append(m.ByUser[stored.UserID], &stored)
	return &stored, nil
}

// GetAllByUser retrieves all savings goals for a user
func (m *MockSavingsGoalRepository) GetAllByUser(userID uuid.UUID) ([]*domain.SavingsGoal, error) {
	goals := m.ByUser[userID]
	if goals == nil {
		return []*domain.SavingsGoal{}, nil
	}
	return goals, nil
}

// Update applies a partial savings goal update
func (m *MockSavingsGoalRepository) Update(userID uuid.UUID, id int32, update *domain.SavingsGoalUpdate) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(userID, id, update)
	}
	goal, ok := m.Goals[id]
	if !ok || goal.UserID != userID {
		return domain.ErrSavingsGoalNotFound
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

// Delete deletes a savings goal by ID
func (m *MockSavingsGoalRepository) Delete(userID uuid.UUID, id int32) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(userID, id)
	}
	goal, ok := m.Goals[id]
	if !ok || goal.UserID != userID {
		return domain.ErrSavingsGoalNotFound
	}
	delete(m.Goals, id)
	goals := m.ByUser[userID]
	for i, g := range goals {
		if g.ID == id {
			m.ByUser[userID] = append(goals[:i], goals[i+1:]...)
			break
		}
	}
	return nil
}

// AddGoal adds a savings goal to the mock repository (helper for tests)
func (m *MockSavingsGoalRepository) AddGoal(goal *domain.SavingsGoal) {
	m.Goals[goal.ID] = goal
	m.ByUser[goal.UserID] = append(m.ByUser[goal.UserID], goal)
	if goal.ID >= m.NextID {
		m.NextID = goal.ID + 1
	}
}

// MockSavingsMovementRepository is a mock implementation of
// domain.SavingsMovementRepository. Coupled goal and balance writes are
// recorded in LastGoals and LastBalances.
type MockSavingsMovementRepository struct {
	Movements    map[int32]*domain.SavingsMovement
	ByUser       map[uuid.UUID][]*domain.SavingsMovement
	NextID       int32
	LastGoals    []domain.GoalAmountWrite
	LastBalances []domain.BalanceWrite
	CreateFn     func(movement *domain.SavingsMovement, goals []domain.GoalAmountWrite, balances []domain.BalanceWrite) (*domain.SavingsMovement, error)
	UpdateFn     func(userID uuid.UUID, id int32, update *domain.SavingsMovementUpdate, goals []domain.GoalAmountWrite, balances []domain.BalanceWrite) error
	DeleteFn     func(userID uuid.UUID, id int32, goals []domain.GoalAmountWrite, balances []domain.BalanceWrite) error
}

// NewMockSavingsMovementRepository creates a new MockSavingsMovementRepository
func NewMockSavingsMovementRepository() *MockSavingsMovementRepository {
	return &MockSavingsMovementRepository{
		Movements: make(map[int32]*domain.SavingsMovement),
		ByUser:    make(map[uuid.UUID][]*domain.SavingsMovement),
		NextID:    1,
	}
}

// GetAllByUser retrieves all savings movements for a user
func (m *MockSavingsMovementRepository) GetAllByUser(userID uuid.UUID) ([]*domain.SavingsMovement, error) {
	movements := m.ByUser[userID]
	if movements == nil {
		return []*domain.SavingsMovement{}, nil
	}
	return movements, nil
}

// CreateWithEffects inserts a movement together with its coupled writes
func (m *MockSavingsMovementRepository) CreateWithEffects(movement *domain.SavingsMovement, goals []domain.GoalAmountWrite, balances []domain.BalanceWrite) (*domain.SavingsMovement, error) {
	if m.CreateFn != nil {
		return m.CreateFn(movement, goals, balances)
	}
	stored := *movement
	stored.ID = m.NextID
	m.NextID++
	m.Movements[stored.ID] = &stored
	m.ByUser[stored.UserID] = append(m.ByUser[stored.UserID], &stored)
	m.LastGoals = goals
	m.LastBalances = balances
	return &stored, nil
}

// UpdateWithEffects applies a partial update together with its coupled writes
func (m *MockSavingsMovementRepository) UpdateWithEffects(userID uuid.UUID, id int32, update *domain.SavingsMovementUpdate, goals []domain.GoalAmountWrite, balances []domain.BalanceWrite) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(userID, id, update, goals, balances)
	}
	movement, ok := m.Movements[id]
	if !ok || movement.UserID != userID {
		return domain.ErrSavingsMovementNotFound
	}
	if update.GoalID != nil {
		movement.GoalID = *update.GoalID
	}
	if update.AccountID != nil {
		movement.AccountID = *update.AccountID
	}
	if update.Type != nil {
		movement.Type = *update.Type
	}
	if update.Amount != nil {
		movement.Amount = *update.Amount
	}
	if update.Date != nil {
		movement.Date = *update.Date
	}
	if update.Note != nil {
		movement.Note = update.Note
	}
	m.LastGoals = goals
	m.LastBalances = balances
	return nil
}

// DeleteWithEffects deletes a movement together with its coupled writes
func (m *MockSavingsMovementRepository) DeleteWithEffects(userID uuid.UUID, id int32, goals []domain.GoalAmountWrite, balances []domain.BalanceWrite) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(userID, id, goals, balances)
	}
	movement, ok := m.Movements[id]
	if !ok || movement.UserID != userID {
		return domain.ErrSavingsMovementNotFound
	}
	delete(m.Movements, id)
	movements := m.ByUser[userID]
	for i, mv := range movements {
		if mv.ID == id {
			m.ByUser[userID] = append(movements[:i], movements[i+1:]...)
			break
		}
	}
	m.LastGoals = goals
	m.LastBalances = balances
	return nil
}

// MockWeeklyGoalRepository is a mock implementation of domain.WeeklyGoalRepository
type MockWeeklyGoalRepository struct {
	Goals    map[string]*domain.WeeklyGoal
	NextID   int32
	UpsertFn func(goal *domain.WeeklyGoal) (*domain.WeeklyGoal, error)
	DeleteFn func(userID uuid.UUID, year, month int, categoryID int32) error
}

// NewMockWeeklyGoalRepository creates a new MockWeeklyGoalRepository
func NewMockWeeklyGoalRepository() *MockWeeklyGoalRepository {
	return &MockWeeklyGoalRepository{
		Goals:  make(map[string]*domain.WeeklyGoal),
		NextID: 1,
	}
}

func weeklyGoalKey(userID uuid.UUID, year, month int, categoryID int32) string {
	return fmt.Sprintf("%s-%d-%d-%d", userID, year, month, categoryID)
}

// Upsert creates or replaces a weekly goal row
func (m *MockWeeklyGoalRepository) Upsert(goal *domain.WeeklyGoal) (*domain.WeeklyGoal, error) {
	if m.UpsertFn != nil {
		return m.UpsertFn(goal)
	}
	key := weeklyGoalKey(goal.UserID, goal.Year, goal.Month, goal.CategoryID)
	stored := *goal
	if existing, ok := m.Goals[key]; ok {
		stored.ID = existing.ID
	} else {
		stored.ID = m.NextID
		m.NextID++
	}
	m.Goals[key] = &stored
	return &stored, nil
}

// GetAllByUser retrieves all weekly goals for a user
func (m *MockWeeklyGoalRepository) GetAllByUser(userID uuid.UUID) ([]*domain.WeeklyGoal, error) {
	goals := []*domain.WeeklyGoal{}
	for _, g := range m.Goals {
		if g.UserID == userID {
			goals = append(goals, g)
		}
	}
	return goals, nil
}

// Delete removes a weekly goal row
func (m *MockWeeklyGoalRepository) Delete(userID uuid.UUID, year, month int, categoryID int32) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(userID, year, month, categoryID)
	}
	key := weeklyGoalKey(userID, year, month, categoryID)
	if _, ok := m.Goals[key]; !ok {
		return domain.ErrWeeklyGoalNotFound
	}
	delete(m.Goals, key)
	return nil
}

// MockMonthlyNoteRepository is a mock implementation of domain.MonthlyNoteRepository
type MockMonthlyNoteRepository struct {
	Notes    map[string]*domain.MonthlyNote
	NextID   int32
	UpsertFn func(note *domain.MonthlyNote) (*domain.MonthlyNote, error)
	DeleteFn func(userID uuid.UUID, year, month int) error
}

// NewMockMonthlyNoteRepository creates a new MockMonthlyNoteRepository
func NewMockMonthlyNoteRepository() *MockMonthlyNoteRepository {
	return &MockMonthlyNoteRepository{
		Notes:  make(map[string]*domain.MonthlyNote),
		NextID: 1,
	}
}

func monthlyNoteKey(userID uuid.UUID, year, month int) string {
	return fmt.Sprintf("%s-%d-%d", userID, year, month)
}

// Upsert creates or replaces a monthly note
func (m *MockMonthlyNoteRepository) Upsert(note *domain.MonthlyNote) (*domain.MonthlyNote, error) {
	if m.UpsertFn != nil {
		return m.UpsertFn(note)
	}
	key := monthlyNoteKey(note.UserID, note.Year, note.Month)
	stored := *note
	if existing, ok := m.Notes[key]; ok {
		stored.ID = existing.ID
	} else {
		stored.ID = m.NextID
		m.NextID++
	}
	m.Notes[key] = &stored
	return &stored, nil
}

// GetAllByUser retrieves all monthly notes for a user
func (m *MockMonthlyNoteRepository) GetAllByUser(userID uuid.UUID) ([]*domain.MonthlyNote, error) {
	notes := []*domain.MonthlyNote{}
	for _, n := range m.Notes {
		if n.UserID == userID {
			notes = append(notes, n)
		}
	}
	return notes, nil
}

// Delete removes a monthly note
func (m *MockMonthlyNoteRepository) Delete(userID uuid.UUID, year, month int) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(userID, year, month)
	}
	key := monthlyNoteKey(userID, year, month)
	if _, ok := m.Notes[key]; !ok {
		return domain.ErrMonthlyNoteNotFound
	}
	delete(m.Notes, key)
	return nil
}
