package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olex-green/family-budget/internal/config"
	"github.com/olex-green/family-budget/internal/storage"
)

func TestRunInit_CreatesStructure(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, runInit(dir, storage.BackendJSON))

	for _, d := range []string{"import", filepath.Join("import", "processed")} {
		info, err := os.Stat(filepath.Join(dir, d))
		require.NoError(t, err, "directory %s should exist", d)
		assert.True(t, info.IsDir())
	}

	cfg, err := config.Load(filepath.Join(dir, "budget.yaml"))
	require.NoError(t, err)
	assert.Equal(t, storage.BackendJSON, cfg.Data.Backend)
	assert.Equal(t, filepath.Join(dir, "budget_data.json"), cfg.Data.Path)

	// The empty ledger file exists and loads cleanly.
	store, err := storage.Open(cfg.Data.Backend, cfg.Data.Path)
	require.NoError(t, err)
	l, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, l.Transactions)
}

func TestRunInit_SQLiteBackend(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, runInit(dir, storage.BackendSQLite))

	cfg, err := config.Load(filepath.Join(dir, "budget.yaml"))
	require.NoError(t, err)
	assert.Equal(t, storage.BackendSQLite, cfg.Data.Backend)
	assert.Equal(t, filepath.Join(dir, "budget.db"), cfg.Data.Path)

	_, err = os.Stat(cfg.Data.Path)
	require.NoError(t, err)
}

func TestRunInit_UnknownBackend(t *testing.T) {
	require.Error(t, runInit(t.TempDir(), "bolt"))
}
