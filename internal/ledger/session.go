package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/olex-green/family-budget/internal/model"
	"github.com/olex-green/family-budget/internal/storage"
)

// Session owns the in-memory ledger for one interactive run. The snapshot is
// the source of truth for the session; every mutation is written through the
// store before the call returns. A crash between mutation and write loses at
// most the last change.
type Session struct {
	store storage.Store
	now   func() time.Time
	data  model.Ledger
}

// NewSession loads the ledger from the store. A nil clock means wall time.
func NewSession(store storage.Store, now func() time.Time) (*Session, error) {
	if now == nil {
		now = time.Now
	}
	data, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("loading ledger: %w", err)
	}
	return &Session{store: store, now: now, data: data}, nil
}

// Ledger returns the current snapshot.
func (s *Session) Ledger() model.Ledger {
	return s.data
}

// Now returns the session clock's current time.
func (s *Session) Now() time.Time {
	return s.now()
}

// Commit replaces the snapshot and persists it. The in-memory state is
// updated even when the save fails; the error is propagated for the caller
// to surface.
func (s *Session) Commit(l model.Ledger) error {
	s.data = l
	if err := s.store.Save(l); err != nil {
		return fmt.Errorf("saving ledger: %w", err)
	}
	return nil
}

// UpdateTransaction patches one transaction by id and persists.
func (s *Session) UpdateTransaction(id string, patch TransactionPatch) (bool, error) {
	l, found, err := UpdateTransaction(s.data, id, patch, s.now())
	if err != nil {
		return false, err
	}
	if !found {
		return false, nil
	}
	return true, s.Commit(l)
}

// AddTransaction appends a manual entry and persists.
func (s *Session) AddTransaction(date model.Date, amount decimal.Decimal, description string, category model.Category) (model.Transaction, error) {
	l, txn, err := AddTransaction(s.data, date, amount, description, category, s.now())
	if err != nil {
		return model.Transaction{}, err
	}
	return txn, s.Commit(l)
}

// PurgeMonth removes the given month of the active year and persists.
func (s *Session) PurgeMonth(month time.Month) (int, error) {
	l, removed := PurgeMonth(s.data, s.data.ActiveYear, month, s.now())
	if removed == 0 {
		return 0, nil
	}
	return removed, s.Commit(l)
}

// AddRule appends a rule, applies it retroactively, and persists.
func (s *Session) AddRule(rule model.CategoryRule) (int, error) {
	l, updated, err := AddRule(s.data, rule, s.now())
	if err != nil {
		return 0, err
	}
	return updated, s.Commit(l)
}

// DeleteRule removes a rule by id and persists.
func (s *Session) DeleteRule(id string) (bool, error) {
	l, found := DeleteRule(s.data, id, s.now())
	if !found {
		return false, nil
	}
	return true, s.Commit(l)
}

// SetInitialCapital updates the opening balance and persists.
func (s *Session) SetInitialCapital(capital decimal.Decimal) error {
	return s.Commit(SetInitialCapital(s.data, capital, s.now()))
}

// SetActiveYear updates the tracked year and persists.
func (s *Session) SetActiveYear(year int) error {
	l, err := SetActiveYear(s.data, year, s.now())
	if err != nil {
		return err
	}
	return s.Commit(l)
}
