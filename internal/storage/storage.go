// Package storage persists the ledger document. Two backends exist: a
// single human-readable JSON file and an embedded SQLite database.
package storage

import (
	"fmt"

	"github.com/olex-green/family-budget/internal/model"
)

// Backend names accepted by Open.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Store loads and saves the ledger document. Load falls back to a default
// empty ledger on a missing or corrupt document so the app always starts;
// Save errors are propagated to the caller.
type Store interface {
	Load() (model.Ledger, error)
	Save(model.Ledger) error
}

// Open creates the store for the configured backend.
func Open(backend, path string) (Store, error) {
	switch backend {
	case BackendJSON, "":
		return NewFileStore(path), nil
	case BackendSQLite:
		return OpenSQLite(path)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}
