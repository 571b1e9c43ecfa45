// Package ledger implements the operations on the in-memory ledger value:
// merging import batches, editing transactions, purging months, and
// maintaining the categorization rules. Every operation takes a Ledger in
// and returns the updated Ledger; callers own the single current snapshot.
package ledger

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/olex-green/family-budget/internal/model"
	"github.com/olex-green/family-budget/internal/rules"
)

// MergeResult reports the outcome of merging an import batch.
type MergeResult struct {
	Added             []model.Transaction
	SkippedDuplicates int
}

// Merge appends the candidates that are not already present, using the
// (date, amount, description) content fingerprint for duplicate detection.
// Ids play no part: the same file parsed twice produces different ids but
// identical fingerprints, so a repeated import adds nothing.
func Merge(l model.Ledger, candidates []model.Transaction, now time.Time) (model.Ledger, MergeResult) {
	existing := make(map[string]bool, len(l.Transactions))
	for _, t := range l.Transactions {
		existing[t.Fingerprint()] = true
	}

	var res MergeResult
	txns := append([]model.Transaction(nil), l.Transactions...)
	for _, c := range candidates {
		fp := c.Fingerprint()
		if existing[fp] {
			res.SkippedDuplicates++
			continue
		}
		existing[fp] = true
		txns = append(txns, c)
		res.Added = append(res.Added, c)
	}

	if len(res.Added) == 0 {
		return l, res
	}
	l.Transactions = txns
	return l.Touched(now), res
}

// TransactionPatch holds the fields an update may replace. Nil fields are
// left unchanged.
type TransactionPatch struct {
	Date        *model.Date
	Amount      *decimal.Decimal
	Description *string
	Category    *model.Category
}

// UpdateTransaction applies the patch to the transaction with the given id.
// An unknown id is a no-op, reported through the bool return; callers must
// not rely on it for validation.
func UpdateTransaction(l model.Ledger, id string, patch TransactionPatch, now time.Time) (model.Ledger, bool, error) {
	if patch.Category != nil && !model.ValidCategory(*patch.Category) {
		return l, false, fmt.Errorf("unknown category %q", *patch.Category)
	}

	for i, t := range l.Transactions {
		if t.ID != id {
			continue
		}
		txns := append([]model.Transaction(nil), l.Transactions...)
		if patch.Date != nil {
			txns[i].Date = *patch.Date
		}
		if patch.Amount != nil {
			txns[i].Amount = *patch.Amount
		}
		if patch.Description != nil {
			txns[i].Description = *patch.Description
		}
		if patch.Category != nil {
			txns[i].Category = *patch.Category
		}
		l.Transactions = txns
		return l.Touched(now), true, nil
	}
	return l, false, nil
}

// AddTransaction appends a manually entered transaction. Manual entries have
// no source line and carry a fresh uuid.
func AddTransaction(l model.Ledger, date model.Date, amount decimal.Decimal, description string, category model.Category, now time.Time) (model.Ledger, model.Transaction, error) {
	if category == "" {
		category = model.Uncategorized
	}
	if !model.ValidCategory(category) {
		return l, model.Transaction{}, fmt.Errorf("unknown category %q", category)
	}
	if strings.TrimSpace(description) == "" {
		description = "Unknown"
	}

	txn := model.Transaction{
		ID:          uuid.NewString(),
		Date:        date,
		Amount:      amount,
		Description: description,
		Category:    category,
	}
	l.Transactions = append(append([]model.Transaction(nil), l.Transactions...), txn)
	return l.Touched(now), txn, nil
}

// PurgeMonth removes every transaction dated in the given year and month.
// A month with no matches removes nothing and reports zero; that is a valid
// outcome, not an error.
func PurgeMonth(l model.Ledger, year int, month time.Month, now time.Time) (model.Ledger, int) {
	var kept []model.Transaction
	removed := 0
	for _, t := range l.Transactions {
		if t.Date.In(year, month) {
			removed++
			continue
		}
		kept = append(kept, t)
	}

	if removed == 0 {
		return l, 0
	}
	l.Transactions = kept
	return l.Touched(now), removed
}

// AddRule validates and appends a rule, then retroactively categorizes the
// Uncategorized transactions it matches. Returns the number recategorized.
func AddRule(l model.Ledger, rule model.CategoryRule, now time.Time) (model.Ledger, int, error) {
	if strings.TrimSpace(rule.Keyword) == "" {
		return l, 0, errors.New("rule keyword must not be empty")
	}
	if rule.Type == "" {
		rule.Type = model.RuleAny
	}
	if !rule.Type.Valid() {
		return l, 0, fmt.Errorf("unknown rule type %q", rule.Type)
	}
	if !model.ValidFor(rule.Category, rule.Type) {
		return l, 0, fmt.Errorf("category %q is not valid for %s rules", rule.Category, rule.Type)
	}
	if rule.ID == "" {
		rule.ID = uuid.NewString()
	}

	txns, updated := rules.ApplyRetroactive(l.Transactions, rule)
	l.Transactions = txns
	l.CategoryRules = append(append([]model.CategoryRule(nil), l.CategoryRules...), rule)
	return l.Touched(now), updated, nil
}

// DeleteRule removes the rule with the given id. Transactions the rule
// previously categorized keep their category: deletion is never retroactive.
// An unknown id is a no-op, reported through the bool return.
func DeleteRule(l model.Ledger, id string, now time.Time) (model.Ledger, bool) {
	for i, r := range l.CategoryRules {
		if r.ID != id {
			continue
		}
		kept := append([]model.CategoryRule(nil), l.CategoryRules[:i]...)
		kept = append(kept, l.CategoryRules[i+1:]...)
		l.CategoryRules = kept
		return l.Touched(now), true
	}
	return l, false
}

// SetInitialCapital records the opening balance for the active year.
func SetInitialCapital(l model.Ledger, capital decimal.Decimal, now time.Time) model.Ledger {
	l.InitialCapital = capital
	return l.Touched(now)
}

// SetActiveYear switches the calendar year the ledger tracks.
func SetActiveYear(l model.Ledger, year int, now time.Time) (model.Ledger, error) {
	if year < 1970 || year > 9999 {
		return l, fmt.Errorf("implausible year %d", year)
	}
	l.ActiveYear = year
	return l.Touched(now), nil
}
