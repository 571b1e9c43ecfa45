package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olex-green/family-budget/internal/model"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func txn(id, date, amount, desc string, category model.Category) model.Transaction {
	d, err := model.ParseDate(date)
	if err != nil {
		panic(err)
	}
	return model.Transaction{ID: id, Date: d, Amount: dec(amount), Description: desc, Category: category}
}

func TestMerge_AddsUniqueOnly(t *testing.T) {
	l := model.Ledger{ActiveYear: 2024}
	l.Transactions = []model.Transaction{txn("old-1", "2024-02-01", "-20.00", "Coffee", model.Uncategorized)}

	batch := []model.Transaction{
		txn("new-1", "2024-02-01", "-20.00", "Coffee", model.Uncategorized), // same content, different id
		txn("new-2", "2024-02-03", "-5.00", "Snack", model.Uncategorized),
	}

	merged, res := Merge(l, batch, testNow)

	assert.Len(t, res.Added, 1)
	assert.Equal(t, 1, res.SkippedDuplicates)
	require.Len(t, merged.Transactions, 2)
	assert.Equal(t, "new-2", merged.Transactions[1].ID)
	assert.Equal(t, testNow, merged.LastUpdated)
}

func TestMerge_Idempotent(t *testing.T) {
	l := model.Ledger{ActiveYear: 2024}
	batch := []model.Transaction{
		txn("a-0", "2024-02-01", "-20.00", "Coffee", model.Uncategorized),
		txn("a-1", "2024-02-03", "-5.00", "Snack", model.Uncategorized),
	}

	l, first := Merge(l, batch, testNow)
	require.Len(t, first.Added, 2)

	// Same file parsed again: new ids, same content.
	again := []model.Transaction{
		txn("b-0", "2024-02-01", "-20.00", "Coffee", model.Uncategorized),
		txn("b-1", "2024-02-03", "-5.00", "Snack", model.Uncategorized),
	}
	merged, second := Merge(l, again, testNow.Add(time.Hour))

	assert.Empty(t, second.Added)
	assert.Equal(t, 2, second.SkippedDuplicates)
	assert.Len(t, merged.Transactions, 2)
	// No mutation happened, so lastUpdated is untouched.
	assert.Equal(t, l.LastUpdated, merged.LastUpdated)
}

func TestMerge_DuplicatesWithinBatch(t *testing.T) {
	l := model.Ledger{ActiveYear: 2024}
	batch := []model.Transaction{
		txn("a-0", "2024-02-01", "-20.00", "Coffee", model.Uncategorized),
		txn("a-1", "2024-02-01", "-20.00", "Coffee", model.Uncategorized),
	}

	_, res := Merge(l, batch, testNow)
	assert.Len(t, res.Added, 1)
	assert.Equal(t, 1, res.SkippedDuplicates)
}

func TestUpdateTransaction(t *testing.T) {
	l := model.Ledger{ActiveYear: 2024}
	l.Transactions = []model.Transaction{
		txn("t1", "2024-02-01", "-20.00", "Coffee", model.Uncategorized),
		txn("t2", "2024-02-03", "-5.00", "Snack", model.Uncategorized),
	}

	category := model.Category("Eating Out")
	updated, found, err := UpdateTransaction(l, "t1", TransactionPatch{Category: &category}, testNow)
	require.NoError(t, err)
	require.True(t, found)

	assert.Equal(t, category, updated.Transactions[0].Category)
	// The other entry is unaffected, as is the input value.
	assert.Equal(t, model.Uncategorized, updated.Transactions[1].Category)
	assert.Equal(t, model.Uncategorized, l.Transactions[0].Category)
}

func TestUpdateTransaction_UnknownID(t *testing.T) {
	l := model.Ledger{ActiveYear: 2024, LastUpdated: testNow}
	l.Transactions = []model.Transaction{txn("t1", "2024-02-01", "-20.00", "Coffee", model.Uncategorized)}

	category := model.Category("Eating Out")
	updated, found, err := UpdateTransaction(l, "missing", TransactionPatch{Category: &category}, testNow.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, l, updated, "unknown id must be a no-op")
}

func TestUpdateTransaction_InvalidCategory(t *testing.T) {
	l := model.Ledger{ActiveYear: 2024}
	l.Transactions = []model.Transaction{txn("t1", "2024-02-01", "-20.00", "Coffee", model.Uncategorized)}

	category := model.Category("Lottery")
	_, _, err := UpdateTransaction(l, "t1", TransactionPatch{Category: &category}, testNow)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Lottery")
}

func TestAddTransaction_Manual(t *testing.T) {
	l := model.Ledger{ActiveYear: 2024}

	updated, created, err := AddTransaction(l, model.NewDate(2024, 3, 1), dec("-42.00"), "Farmers market", "Groceries", testNow)
	require.NoError(t, err)

	require.Len(t, updated.Transactions, 1)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.Imported(), "manual entries carry no source line")
	assert.Equal(t, model.Category("Groceries"), created.Category)
}

func TestPurgeMonth(t *testing.T) {
	l := model.Ledger{ActiveYear: 2024}
	l.Transactions = []model.Transaction{
		txn("feb", "2024-02-29", "-10.00", "Leap day", model.Uncategorized),
		txn("mar1", "2024-03-01", "-20.00", "First", model.Uncategorized),
		txn("mar31", "2024-03-31", "-30.00", "Last", model.Uncategorized),
		txn("apr", "2024-04-01", "-40.00", "Next", model.Uncategorized),
		txn("mar23", "2023-03-15", "-50.00", "Other year", model.Uncategorized),
	}

	updated, removed := PurgeMonth(l, 2024, time.March, testNow)

	assert.Equal(t, 2, removed)
	require.Len(t, updated.Transactions, 3)
	for _, tr := range updated.Transactions {
		assert.False(t, tr.Date.In(2024, time.March), "transaction %s survived the purge", tr.ID)
	}
}

func TestPurgeMonth_NoMatches(t *testing.T) {
	l := model.Ledger{ActiveYear: 2024, LastUpdated: testNow}
	l.Transactions = []model.Transaction{txn("feb", "2024-02-29", "-10.00", "Leap day", model.Uncategorized)}

	updated, removed := PurgeMonth(l, 2024, time.July, testNow.Add(time.Hour))

	assert.Zero(t, removed)
	assert.Equal(t, l, updated, "purging an empty month leaves the ledger unchanged")
}

func TestAddRule_Retroactive(t *testing.T) {
	l := model.Ledger{ActiveYear: 2024}
	l.Transactions = []model.Transaction{txn("t1", "2024-01-10", "-50.00", "Uber ride", model.Uncategorized)}

	rule := model.CategoryRule{Keyword: "uber", Category: "Transportation", Type: model.RuleExpense}
	updated, count, err := AddRule(l, rule, testNow)
	require.NoError(t, err)

	assert.Equal(t, 1, count)
	assert.Equal(t, model.Category("Transportation"), updated.Transactions[0].Category)
	require.Len(t, updated.CategoryRules, 1)
	assert.NotEmpty(t, updated.CategoryRules[0].ID)
}

func TestAddRule_Validation(t *testing.T) {
	l := model.Ledger{ActiveYear: 2024}

	_, _, err := AddRule(l, model.CategoryRule{Keyword: " ", Category: "Groceries", Type: model.RuleExpense}, testNow)
	require.Error(t, err)

	_, _, err = AddRule(l, model.CategoryRule{Keyword: "x", Category: "Groceries", Type: "weekly"}, testNow)
	require.Error(t, err)

	// Expense-side category on an income rule.
	_, _, err = AddRule(l, model.CategoryRule{Keyword: "x", Category: "Groceries", Type: model.RuleIncome}, testNow)
	require.Error(t, err)
}

func TestAddRule_DefaultsTypeToAny(t *testing.T) {
	l := model.Ledger{ActiveYear: 2024}

	updated, _, err := AddRule(l, model.CategoryRule{Keyword: "transfer", Category: model.InternalTransfer}, testNow)
	require.NoError(t, err)
	assert.Equal(t, model.RuleAny, updated.CategoryRules[0].Type)
}

func TestDeleteRule_NeverRecategorizes(t *testing.T) {
	l := model.Ledger{ActiveYear: 2024}
	l.Transactions = []model.Transaction{txn("t1", "2024-01-10", "-50.00", "Uber ride", model.Uncategorized)}

	l, _, err := AddRule(l, model.CategoryRule{ID: "r1", Keyword: "uber", Category: "Transportation", Type: model.RuleExpense}, testNow)
	require.NoError(t, err)
	require.Equal(t, model.Category("Transportation"), l.Transactions[0].Category)

	updated, found := DeleteRule(l, "r1", testNow)
	require.True(t, found)
	assert.Empty(t, updated.CategoryRules)
	// The transaction keeps the category the deleted rule assigned.
	assert.Equal(t, model.Category("Transportation"), updated.Transactions[0].Category)
}

func TestDeleteRule_UnknownID(t *testing.T) {
	l := model.Ledger{ActiveYear: 2024, LastUpdated: testNow}

	updated, found := DeleteRule(l, "missing", testNow.Add(time.Hour))
	assert.False(t, found)
	assert.Equal(t, l, updated)
}

func TestDeleteAllRules_KeepsCategories(t *testing.T) {
	l := model.Ledger{ActiveYear: 2024}
	l.Transactions = []model.Transaction{txn("t1", "2024-01-10", "-50.00", "Uber ride", model.Uncategorized)}

	l, _, err := AddRule(l, model.CategoryRule{ID: "r1", Keyword: "uber", Category: "Transportation", Type: model.RuleExpense}, testNow)
	require.NoError(t, err)
	l, _, err = AddRule(l, model.CategoryRule{ID: "r2", Keyword: "coffee", Category: "Eating Out", Type: model.RuleExpense}, testNow)
	require.NoError(t, err)

	before := l.Transactions
	for _, id := range []string{"r1", "r2"} {
		var found bool
		l, found = DeleteRule(l, id, testNow)
		require.True(t, found)
	}

	assert.Empty(t, l.CategoryRules)
	assert.Equal(t, before, l.Transactions)
}

func TestSettings(t *testing.T) {
	l := model.Ledger{ActiveYear: 2024}

	l = SetInitialCapital(l, dec("1500.50"), testNow)
	assert.True(t, l.InitialCapital.Equal(dec("1500.50")))
	assert.Equal(t, testNow, l.LastUpdated)

	l, err := SetActiveYear(l, 2025, testNow)
	require.NoError(t, err)
	assert.Equal(t, 2025, l.ActiveYear)

	_, err = SetActiveYear(l, 25, testNow)
	require.Error(t, err)
}
