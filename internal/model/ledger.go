package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ledger is the full data set for one budget year: transactions, the ordered
// categorization rules, and settings. It is a plain value; operations in the
// ledger package take a Ledger in and return the updated Ledger.
type Ledger struct {
	Transactions   []Transaction   `json:"transactions"`
	CategoryRules  []CategoryRule  `json:"categoryRules"`
	InitialCapital decimal.Decimal `json:"initialCapital"`
	ActiveYear     int             `json:"activeYear"`
	LastUpdated    time.Time       `json:"lastUpdated"`
}

// NewLedger returns an empty ledger tracking the year of now.
func NewLedger(now time.Time) Ledger {
	return Ledger{ActiveYear: now.Year(), LastUpdated: now.UTC()}
}

// Touched returns a copy with LastUpdated set to now. Every mutating ledger
// operation ends with a Touched call.
func (l Ledger) Touched(now time.Time) Ledger {
	l.LastUpdated = now.UTC()
	return l
}

// Normalize applies forward-compatible defaults for fields older documents
// may lack: the current year when activeYear is missing, "any" for rules
// without a type, and Uncategorized for transactions without a category.
// InitialCapital and CategoryRules already default to zero and empty.
func (l Ledger) Normalize(now time.Time) Ledger {
	if l.ActiveYear == 0 {
		l.ActiveYear = now.Year()
	}
	if l.LastUpdated.IsZero() {
		l.LastUpdated = now.UTC()
	}
	for i, r := range l.CategoryRules {
		if r.Type == "" {
			l.CategoryRules[i].Type = RuleAny
		}
	}
	for i, t := range l.Transactions {
		if t.Category == "" {
			l.Transactions[i].Category = Uncategorized
		}
	}
	return l
}
