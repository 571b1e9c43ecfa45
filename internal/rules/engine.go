// Package rules implements the keyword-based categorization engine: an
// ordered rule list evaluated first-match-wins against a transaction's
// description and amount sign.
package rules

import (
	"github.com/shopspring/decimal"

	"github.com/olex-green/family-budget/internal/model"
)

// Classify returns the category for a transaction under the given ordered
// rules. The first rule whose keyword appears in the description
// (case-insensitive) and whose type allows the amount's sign wins. With no
// match the result is Uncategorized.
//
// Classify is pure: identical inputs always produce identical output, so
// re-classification is deterministic.
func Classify(description string, amount decimal.Decimal, ruleList []model.CategoryRule) model.Category {
	for _, r := range ruleList {
		if r.Matches(description, amount) {
			return r.Category
		}
	}
	return model.Uncategorized
}

// ApplyRetroactive re-categorizes the transactions a newly added rule
// matches. Only currently Uncategorized transactions compatible with the
// rule's type are touched; entries that already carry a category keep it
// until the user re-categorizes them explicitly. Returns the updated slice
// and the number of transactions changed.
func ApplyRetroactive(txns []model.Transaction, rule model.CategoryRule) ([]model.Transaction, int) {
	updated := make([]model.Transaction, len(txns))
	copy(updated, txns)

	count := 0
	for i, t := range updated {
		if t.Category != model.Uncategorized {
			continue
		}
		if rule.Matches(t.Description, t.Amount) {
			updated[i].Category = rule.Category
			count++
		}
	}
	return updated, count
}
