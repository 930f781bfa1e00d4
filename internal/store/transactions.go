package store

import (
	"github.com/haldorr/pennywise-backend/internal/domain"
)

// Transaction mutations carry the balance-consistency contract: after every
// call, each account's balance equals its starting balance plus the sum of
// signed effects of the transactions currently attributed to it.

// AddTransaction persists the transaction together with the adjusted account
// balance, then applies both to the projection.
func (s *Store) AddTransaction(transaction *domain.Transaction) (*domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account := s.findAccount(transaction.AccountID)
	if account == nil {
		return nil, domain.ErrAccountNotFound
	}
	if err := s.checkCategory(transaction.CategoryID, transaction.Type); err != nil {
		return nil, err
	}

	transaction.UserID = s.userID
	newBalance := account.Balance.Add(transaction.Effect())

	created, err := s.repos.Transactions.CreateWithBalances(transaction, []domain.BalanceWrite{
		{AccountID: account.ID, Balance: newBalance},
	})
	if err != nil {
		return nil, err
	}

	s.transactions = append(s.transactions, created)
	account.Balance = newBalance

	s.logger.Info().
		Int32("transaction_id", created.ID).
		Int32("account_id", account.ID).
		Str("type", string(created.Type)).
		Str("amount", created.Amount.StringFixed(2)).
		Msg("Transaction added")
	c := *created
	return &c, nil
}

// UpdateTransaction reconciles account balances for any combination of
// amount, type and account changes arriving in one call. The deltas are
// computed from a single merged view of the transaction, never as three
// separate corrections:
//
//	oldEffect = reversal of the original effect
//	newEffect = effect of the merged (partial-over-old) transaction
//
// Same account: oldEffect + newEffect applies to it. Account changed:
// oldEffect applies to the old account, newEffect to the new one.
func (s *Store) UpdateTransaction(id int32, update *domain.TransactionUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	oldTx := s.findTransaction(id)
	if oldTx == nil {
		return domain.ErrTransactionNotFound
	}

	merged := *oldTx
	if update.Description != nil {
		merged.Description = *update.Description
	}
	if update.Amount != nil {
		merged.Amount = *update.Amount
	}
	if update.Type != nil {
		merged.Type = *update.Type
	}
	if update.Date != nil {
		merged.Date = *update.Date
	}
	if update.AccountID != nil {
		merged.AccountID = *update.AccountID
	}
	if update.CategoryID != nil {
		merged.CategoryID = *update.CategoryID
	}
	if update.PaymentType != nil {
		merged.PaymentType = update.PaymentType
	}

	newAccount := s.findAccount(merged.AccountID)
	if newAccount == nil {
		return domain.ErrAccountNotFound
	}
	if err := s.checkCategory(merged.CategoryID, merged.Type); err != nil {
		return err
	}

	oldEffect := oldTx.Effect().Neg()
	newEffect := merged.Effect()

	var balances []domain.BalanceWrite
	oldAccount := s.findAccount(oldTx.AccountID)
	if merged.AccountID == oldTx.AccountID {
		balances = []domain.BalanceWrite{
			{AccountID: newAccount.ID, Balance: newAccount.Balance.Add(oldEffect).Add(newEffect)},
		}
	} else {
		if oldAccount == nil {
			return domain.ErrAccountNotFound
		}
		balances = []domain.BalanceWrite{
			{AccountID: oldAccount.ID, Balance: oldAccount.Balance.Add(oldEffect)},
			{AccountID: newAccount.ID, Balance: newAccount.Balance.Add(newEffect)},
		}
	}

	if err := s.repos.Transactions.UpdateWithBalances(s.userID, id, update, balances); err != nil {
		return err
	}

	*oldTx = merged
	s.applyBalances(balances)

	s.logger.Info().
		Int32("transaction_id", id).
		Int32("account_id", merged.AccountID).
		Str("amount", merged.Amount.StringFixed(2)).
		Msg("Transaction updated")
	return nil
}

// RemoveTransaction reverses the transaction's effect on its account,
// persists the deletion with the reversed balance, and drops it from the
// projection.
func (s *Store) RemoveTransaction(id int32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	transaction := s.findTransaction(id)
	if transaction == nil {
		return domain.ErrTransactionNotFound
	}

	var balances []domain.BalanceWrite
	account := s.findAccount(transaction.AccountID)
	if account != nil {
		balances = []domain.BalanceWrite{
			{AccountID: account.ID, Balance: account.Balance.Sub(transaction.Effect())},
		}
	}

	if err := s.repos.Transactions.DeleteWithBalances(s.userID, id, balances); err != nil {
		return err
	}

	s.transactions = filter(s.transactions, func(t *domain.Transaction) bool { return t.ID != id })
	s.applyBalances(balances)

	s.logger.Info().Int32("transaction_id", id).Msg("Transaction removed")
	return nil
}

// checkCategory verifies the referenced category exists and that its type
// agrees with the transaction type.
func (s *Store) checkCategory(categoryID int32, txType domain.TransactionType) error {
	category := s.findCategory(categoryID)
	if category == nil {
		return domain.ErrCategoryNotFound
	}
	if string(category.Type) != string(txType) {
		return domain.ErrCategoryTypeMismatch
	}
	return nil
}

// applyBalances writes already-persisted balance values into the projection.
func (s *Store) applyBalances(balances []domain.BalanceWrite) {
	for _, bw := range balances {
		if account := s.findAccount(bw.AccountID); account != nil {
			account.Balance = bw.Balance
		}
	}
}
