package ledger

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olex-green/family-budget/internal/model"
	"github.com/olex-green/family-budget/internal/storage"
)

func fixedClock() func() time.Time {
	return func() time.Time { return testNow }
}

func newTestSession(t *testing.T) (*Session, storage.Store) {
	t.Helper()
	store := storage.NewFileStore(filepath.Join(t.TempDir(), "budget_data.json"))
	s, err := NewSession(store, fixedClock())
	require.NoError(t, err)
	return s, store
}

func TestSession_MutationsPersist(t *testing.T) {
	s, store := newTestSession(t)

	created, err := s.AddTransaction(model.NewDate(2024, 3, 1), dec("-42.00"), "Farmers market", "Groceries")
	require.NoError(t, err)

	count, err := s.AddRule(model.CategoryRule{Keyword: "market", Category: "Groceries", Type: model.RuleExpense})
	require.NoError(t, err)
	assert.Zero(t, count, "already-categorized entries are not retouched")

	// A fresh load sees everything the session committed.
	reloaded, err := store.Load()
	require.NoError(t, err)
	require.Len(t, reloaded.Transactions, 1)
	assert.Equal(t, created.ID, reloaded.Transactions[0].ID)
	require.Len(t, reloaded.CategoryRules, 1)
	assert.Equal(t, "market", reloaded.CategoryRules[0].Keyword)
	assert.True(t, reloaded.LastUpdated.Equal(testNow))
}

func TestSession_UpdateTransaction(t *testing.T) {
	s, _ := newTestSession(t)

	created, err := s.AddTransaction(model.NewDate(2024, 3, 1), dec("-42.00"), "Farmers market", "")
	require.NoError(t, err)
	assert.Equal(t, model.Uncategorized, created.Category)

	category := model.Category("Groceries")
	found, err := s.UpdateTransaction(created.ID, TransactionPatch{Category: &category})
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, category, s.Ledger().Transactions[0].Category)

	found, err = s.UpdateTransaction("missing", TransactionPatch{Category: &category})
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSession_PurgeEmptyMonthDoesNotCommit(t *testing.T) {
	store := &countingStore{}
	s, err := NewSession(store, fixedClock())
	require.NoError(t, err)

	removed, err := s.PurgeMonth(time.July)
	require.NoError(t, err)
	assert.Zero(t, removed)
	assert.Zero(t, store.saves)
}

func TestSession_PurgeUsesActiveYear(t *testing.T) {
	s, _ := newTestSession(t)

	_, err := s.AddTransaction(model.NewDate(2024, 3, 5), dec("-10.00"), "Bus", "Transportation")
	require.NoError(t, err)
	_, err = s.AddTransaction(model.NewDate(2023, 3, 5), dec("-10.00"), "Bus", "Transportation")
	require.NoError(t, err)

	require.NoError(t, s.SetActiveYear(2024))

	removed, err := s.PurgeMonth(time.March)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	require.Len(t, s.Ledger().Transactions, 1)
	assert.Equal(t, 2023, s.Ledger().Transactions[0].Date.Year())
}

func TestSession_DeleteRule(t *testing.T) {
	s, _ := newTestSession(t)

	_, err := s.AddRule(model.CategoryRule{ID: "r1", Keyword: "uber", Category: "Transportation", Type: model.RuleExpense})
	require.NoError(t, err)

	found, err := s.DeleteRule("r1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Empty(t, s.Ledger().CategoryRules)

	found, err = s.DeleteRule("r1")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSession_SaveFailureKeepsSnapshot(t *testing.T) {
	store := &countingStore{saveErr: errors.New("disk full")}
	s, err := NewSession(store, fixedClock())
	require.NoError(t, err)

	_, err = s.AddTransaction(model.NewDate(2024, 3, 1), dec("-42.00"), "Farmers market", "Groceries")
	require.Error(t, err)
	// The mutation survives in memory so the user can retry the save.
	assert.Len(t, s.Ledger().Transactions, 1)
}

// countingStore tracks Save calls for tests that assert on persistence.
type countingStore struct {
	saves   int
	saveErr error
}

func (c *countingStore) Load() (model.Ledger, error) {
	return model.NewLedger(testNow), nil
}

func (c *countingStore) Save(model.Ledger) error {
	c.saves++
	return c.saveErr
}
