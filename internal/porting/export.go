package porting

import (
	"encoding/csv"
	"io"

	"github.com/haldorr/pennywise-backend/internal/domain"
)

// Placeholder labels for references that no longer resolve, so an export
// never fails on a dangling ID.
const (
	unknownCategoryLabel = "(unknown category)"
	unknownAccountLabel  = "(unknown account)"
)

// Export writes the transactions in the interchange format, resolving
// category and account names from the given snapshots.
func Export(w io.Writer, transactions []*domain.Transaction, accounts []*domain.Account, categories []*domain.Category) error {
	accountNames := make(map[int32]string, len(accounts))
	for _, a := range accounts {
		accountNames[a.ID] = a.Name
	}
	categoryNames := make(map[int32]string, len(categories))
	for _, c := range categories {
		categoryNames[c.ID] = c.Name
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, tx := range transactions {
		categoryName, ok := categoryNames[tx.CategoryID]
		if !ok {
			categoryName = unknownCategoryLabel
		}
		accountName, ok := accountNames[tx.AccountID]
		if !ok {
			accountName = unknownAccountLabel
		}
		paymentType := ""
		if tx.PaymentType != nil {
			paymentType = string(*tx.PaymentType)
		}

		record := []string{
			tx.Description,
			tx.Amount.StringFixed(2),
			tx.Date.Format(dateLayout),
			string(tx.Type),
			categoryName,
			accountName,
			paymentType,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
