package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Transaction is a single ledger entry. Amounts are signed: positive means
// money in, negative means money out.
type Transaction struct {
	ID          string          `json:"id"`
	Date        Date            `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Category    Category        `json:"category"`
	SourceLine  string          `json:"sourceLine,omitempty"` // raw import row; empty = manually entered
}

// Imported reports whether the transaction came from a statement import.
func (t Transaction) Imported() bool {
	return t.SourceLine != ""
}

// Fingerprint identifies a transaction by content rather than id. Rows from
// separate imports carry different ids but equal fingerprints, which is what
// duplicate detection keys on.
func (t Transaction) Fingerprint() string {
	return fmt.Sprintf("%s|%s|%s", t.Date, t.Amount.StringFixed(2), t.Description)
}
