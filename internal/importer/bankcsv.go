package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/olex-green/family-budget/internal/model"
)

// BankCSVParser parses the bank's CSV export: one transaction per row, no
// header, columns date (dd/mm/yyyy), amount, description, running balance.
// The balance column is ignored.
type BankCSVParser struct {
	// Now supplies the import timestamp used to derive candidate ids.
	Now func() time.Time
}

const (
	bankDateFormat = "02/01/2006"
	bankColDate    = 0
	bankColAmount  = 1
	bankColDesc    = 2
)

// NewBankCSVParser creates a parser using the wall clock for ids.
func NewBankCSVParser() *BankCSVParser {
	return &BankCSVParser{Now: time.Now}
}

// Format returns the parser name.
func (p *BankCSVParser) Format() string { return "csv" }

// Parse reads the export and returns candidate transactions. A row with an
// unparsable date fails the whole batch: the caller never sees a partially
// parsed statement.
func (p *BankCSVParser) Parse(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // exports carry 3 or 4 columns
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading bank CSV: %w", err)
	}

	now := time.Now()
	if p.Now != nil {
		now = p.Now()
	}
	batch := now.UnixMilli()

	var txns []model.Transaction
	for i, rec := range records {
		txn, err := parseBankRow(rec, batch, i)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

// parseBankRow normalizes one row. Missing trailing columns read as empty,
// so the amount and description defaults cover them; only the date decides
// whether the row (and with it the batch) parses.
func parseBankRow(rec []string, batch int64, index int) (model.Transaction, error) {
	rawDate := bankField(rec, bankColDate)
	raw, err := time.Parse(bankDateFormat, strings.TrimSpace(rawDate))
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing date %q: %w", rawDate, err)
	}

	desc := strings.TrimSpace(bankField(rec, bankColDesc))
	if desc == "" {
		desc = "Unknown"
	}

	return model.Transaction{
		ID:          fmt.Sprintf("tx-%d-%d", batch, index),
		Date:        model.NewDate(raw.Year(), raw.Month(), raw.Day()),
		Amount:      parseBankAmount(bankField(rec, bankColAmount)),
		Description: desc,
		Category:    model.Uncategorized,
		SourceLine:  strings.Join(rec, ","),
	}, nil
}

func bankField(rec []string, i int) string {
	if i < len(rec) {
		return rec[i]
	}
	return ""
}

// parseBankAmount strips thousands separators and parses the remainder.
// Empty or non-numeric amounts parse to zero.
func parseBankAmount(s string) decimal.Decimal {
	cleaned := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if cleaned == "" {
		return decimal.Zero
	}
	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return amount
}
