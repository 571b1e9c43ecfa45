package pipeline

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/olex-green/family-budget/internal/ai"
	"github.com/olex-green/family-budget/internal/model"
)

// classifyConcurrency caps in-flight model calls.
const classifyConcurrency = 4

// Suggest asks the classifier about every Uncategorized transaction and
// applies the suggestions it accepts. One transaction failing to classify is
// logged and skipped; it never aborts the rest of the batch.
func Suggest(ctx context.Context, l model.Ledger, clf ai.Classifier, log zerolog.Logger, now time.Time) (model.Ledger, int) {
	var indexes []int
	for i, t := range l.Transactions {
		if t.Category == model.Uncategorized {
			indexes = append(indexes, i)
		}
	}
	if len(indexes) == 0 {
		return l, 0
	}

	txns := append([]model.Transaction(nil), l.Transactions...)
	suggestions := make([]model.Category, len(indexes))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(classifyConcurrency)
	for slot, idx := range indexes {
		g.Go(func() error {
			t := txns[idx]
			s, err := clf.Classify(ctx, t.Description, candidatesFor(t))
			if err != nil {
				log.Warn().Err(err).Str("id", t.ID).Str("description", t.Description).
					Msg("classification failed, leaving uncategorized")
				return nil
			}
			suggestions[slot] = s.Category
			return nil
		})
	}
	g.Wait()

	applied := 0
	for slot, idx := range indexes {
		c := suggestions[slot]
		if c == "" || c == model.Uncategorized {
			continue
		}
		txns[idx].Category = c
		applied++
	}

	if applied == 0 {
		return l, 0
	}
	l.Transactions = txns
	return l.Touched(now), applied
}

// candidatesFor returns the categories the classifier may pick from: the
// side matching the amount's sign, minus the ones only a human should assign.
func candidatesFor(t model.Transaction) []model.Category {
	source := model.IncomeCategories
	if t.Amount.IsNegative() {
		source = model.ExpenseCategories
	}

	candidates := make([]model.Category, 0, len(source))
	for _, c := range source {
		if c == model.Uncategorized || c == model.InternalTransfer {
			continue
		}
		candidates = append(candidates, c)
	}
	return candidates
}
