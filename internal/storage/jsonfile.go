package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/olex-green/family-budget/internal/model"
)

// FileStore persists the ledger as one JSON document.
type FileStore struct {
	path string
	now  func() time.Time
}

// NewFileStore creates a store writing to path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path, now: time.Now}
}

// Load reads the document. A missing or corrupt file yields a default empty
// ledger for the current year; only unexpected I/O failures are errors.
func (s *FileStore) Load() (model.Ledger, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return model.NewLedger(s.now()), nil
	}
	if err != nil {
		return model.NewLedger(s.now()), fmt.Errorf("reading ledger file: %w", err)
	}

	var l model.Ledger
	if err := json.Unmarshal(data, &l); err != nil {
		return model.NewLedger(s.now()), nil
	}
	return l.Normalize(s.now()), nil
}

// Save writes the document, creating parent directories as needed.
func (s *FileStore) Save(l model.Ledger) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating data dir: %w", err)
		}
	}

	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling ledger: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("writing ledger file: %w", err)
	}
	return nil
}
