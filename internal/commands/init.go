package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/olex-green/family-budget/internal/config"
	"github.com/olex-green/family-budget/internal/storage"
)

func newInitCommand() *cobra.Command {
	var backend string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new budget project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			if err := runInit(absDir, backend); err != nil {
				return err
			}
			cmd.Printf("Initialized budget project at %s\n", absDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&backend, "backend", storage.BackendJSON, "ledger backend (json or sqlite)")

	return cmd
}

func runInit(dir, backend string) error {
	dirs := []string{
		"import",
		filepath.Join("import", "processed"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	cfg := config.Default()
	cfg.Data.Backend = backend
	if backend == storage.BackendSQLite {
		cfg.Data.Path = "budget.db"
	}
	cfg.Data.Path = filepath.Join(dir, cfg.Data.Path)
	cfg.Import.Dir = filepath.Join(dir, "import")
	if err := config.Save(filepath.Join(dir, "budget.yaml"), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Create the empty ledger so the first command after init has a file
	// to load.
	store, err := storage.Open(cfg.Data.Backend, cfg.Data.Path)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	l, err := store.Load()
	if err != nil {
		return fmt.Errorf("loading ledger: %w", err)
	}
	if err := store.Save(l); err != nil {
		return fmt.Errorf("writing ledger: %w", err)
	}
	if c, ok := store.(interface{ Close() error }); ok {
		c.Close()
	}
	return nil
}
