package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()

	assert.NotNil(t, r.Get("csv"))
	assert.NotNil(t, r.Get("CSV"), "lookup is case-insensitive")
	assert.NotNil(t, r.Get("ofx"))
	assert.Nil(t, r.Get("camt053"))
	assert.Equal(t, []string{"csv", "ofx"}, r.Formats())
}

func TestRegistry_DuplicatePanics(t *testing.T) {
	r := NewRegistry()
	r.Register(NewBankCSVParser())
	assert.Panics(t, func() { r.Register(NewBankCSVParser()) })
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "feb.csv"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "jan.qfx"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "processed"), 0o755))

	files, err := Scan(dir)
	require.NoError(t, err)
	require.Len(t, files, 2)

	names := []string{files[0].Name, files[1].Name}
	assert.Contains(t, names, "feb.csv")
	assert.Contains(t, names, "jan.qfx")
}

func TestScan_MissingDir(t *testing.T) {
	files, err := Scan(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestMarkProcessed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "feb.csv"), []byte("x"), 0o644))

	require.NoError(t, MarkProcessed(dir, "feb.csv"))

	_, err := os.Stat(filepath.Join(dir, "feb.csv"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "processed", "feb.csv"))
	require.NoError(t, err)
}
