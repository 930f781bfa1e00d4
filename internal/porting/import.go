// Package porting reads and writes the CSV interchange format for
// transactions: description, amount, date, type, category, account, payment
// type. Names are matched case-insensitively; import creates accounts and
// categories it cannot resolve.
package porting

import (
	"encoding/csv"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/haldorr/pennywise-backend/internal/domain"
	"github.com/haldorr/pennywise-backend/internal/store"
)

const dateLayout = "2006-01-02"

// header is the fixed column order of the interchange format.
var header = []string{"description", "amount", "date", "type", "category", "account", "payment_type"}

// createdCategoryColor marks categories materialized during import so they
// stand out until the user recolors them.
const createdCategoryColor = "#9e9e9e"

// ImportSummary reports what an import run did.
type ImportSummary struct {
	Imported          int `json:"imported"`
	Skipped           int `json:"skipped"`
	CreatedAccounts   int `json:"createdAccounts"`
	CreatedCategories int `json:"createdCategories"`
}

// Importer feeds CSV rows through a user's store.
type Importer struct {
	store  *store.Store
	logger zerolog.Logger
}

// NewImporter creates an Importer bound to one user's store.
func NewImporter(s *store.Store, logger zerolog.Logger) *Importer {
	return &Importer{
		store:  s,
		logger: logger.With().Str("component", "importer").Logger(),
	}
}

// Import reads the CSV stream and adds one transaction per valid row. Rows
// that fail to parse or persist are counted as skipped, not fatal; only a
// broken stream aborts the run.
func (i *Importer) Import(r io.Reader) (*ImportSummary, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(header)
	reader.TrimLeadingSpace = true

	summary := &ImportSummary{}
	first := true
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if first {
			first = false
			if isHeaderRow(record) {
				continue
			}
		}
		if err := i.importRow(record, summary); err != nil {
			summary.Skipped++
			i.logger.Warn().Err(err).Str("description", record[0]).Msg("Skipped import row")
			continue
		}
		summary.Imported++
	}

	i.logger.Info().
		Int("imported", summary.Imported).
		Int("skipped", summary.Skipped).
		Int("created_accounts", summary.CreatedAccounts).
		Int("created_categories", summary.CreatedCategories).
		Msg("Import finished")
	return summary, nil
}

func isHeaderRow(record []string) bool {
	return strings.EqualFold(strings.TrimSpace(record[0]), header[0])
}

func (i *Importer) importRow(record []string, summary *ImportSummary) error {
	description := strings.TrimSpace(record[0])
	if description == "" {
		return domain.ErrDescriptionRequired
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(record[1]))
	if err != nil || !amount.IsPositive() {
		return domain.ErrInvalidAmount
	}

	date, err := time.Parse(dateLayout, strings.TrimSpace(record[2]))
	if err != nil {
		return err
	}

	txType := domain.TransactionType(strings.ToLower(strings.TrimSpace(record[3])))
	if !domain.ValidTransactionType(txType) {
		return domain.ErrInvalidTransactionType
	}

	var paymentType *domain.PaymentType
	if raw := strings.ToLower(strings.TrimSpace(record[6])); raw != "" {
		pt := domain.PaymentType(raw)
		if !domain.ValidPaymentType(pt) {
			return domain.ErrInvalidPaymentType
		}
		paymentType = &pt
	}

	category, err := i.resolveCategory(strings.TrimSpace(record[4]), txType, summary)
	if err != nil {
		return err
	}
	account, err := i.resolveAccount(strings.TrimSpace(record[5]), summary)
	if err != nil {
		return err
	}

	_, err = i.store.AddTransaction(&domain.Transaction{
		AccountID:   account.ID,
		CategoryID:  category.ID,
		Description: description,
		Amount:      amount,
		Type:        txType,
		Date:        date,
		PaymentType: paymentType,
	})
	return err
}

func (i *Importer) resolveCategory(name string, txType domain.TransactionType, summary *ImportSummary) (*domain.Category, error) {
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	for _, c := range i.store.Categories() {
		if strings.EqualFold(c.Name, name) && string(c.Type) == string(txType) {
			return c, nil
		}
	}
	created, err := i.store.AddCategory(&domain.Category{
		Name:  name,
		Type:  domain.CategoryType(txType),
		Color: createdCategoryColor,
	})
	if err != nil {
		return nil, err
	}
	summary.CreatedCategories++
	return created, nil
}

func (i *Importer) resolveAccount(name string, summary *ImportSummary) (*domain.Account, error) {
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	for _, a := range i.store.Accounts() {
		if strings.EqualFold(a.Name, name) {
			return a, nil
		}
	}
	created, err := i.store.AddAccount(&domain.Account{
		Name:    name,
		Type:    domain.AccountTypeChecking,
		Balance: decimal.Zero,
	})
	if err != nil {
		return nil, err
	}
	summary.CreatedAccounts++
	return created, nil
}
