package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/olex-green/family-budget/internal/ai"
	"github.com/olex-green/family-budget/internal/importer"
	"github.com/olex-green/family-budget/internal/ledger"
	"github.com/olex-green/family-budget/internal/logger"
	"github.com/olex-green/family-budget/internal/pipeline"
)

func newImportCommand(configPath *string) *cobra.Command {
	var format string
	var month string
	var classify bool

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import bank statements into the ledger",
		Long: "Import a statement file, or every statement waiting in the " +
			"import directory when no file is given. Files imported from the " +
			"directory are moved to import/processed afterwards.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			session, closeStore, err := openSession(cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			opts := pipeline.Options{}
			if month != "" {
				m, err := parseMonth(month)
				if err != nil {
					return err
				}
				opts.Month = m
			}

			registry := importer.DefaultRegistry()

			if len(args) == 1 {
				if err := importFile(cmd, session, registry, args[0], format, cfg.Import.Format, opts); err != nil {
					return err
				}
			} else {
				if err := importDirectory(cmd, session, registry, cfg.Import.Dir, format, cfg.Import.Format, opts); err != nil {
					return err
				}
			}

			if classify || cfg.Classifier.Enabled {
				return suggestCategories(cmd, session, cfg.Classifier.Model, cfg.Classifier.MinConfidence)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "statement format (csv or ofx); default follows the file extension")
	cmd.Flags().StringVar(&month, "month", "", "only import transactions from this month")
	cmd.Flags().BoolVar(&classify, "classify", false, "ask the model to categorize new transactions")

	return cmd
}

func importFile(cmd *cobra.Command, session *ledger.Session, registry *importer.Registry, path, format, fallback string, opts pipeline.Options) error {
	parser, err := parserFor(registry, path, format, fallback)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening statement: %w", err)
	}
	defer f.Close()

	l, res, err := pipeline.Import(f, parser, session.Ledger(), opts, session.Now())
	if err != nil {
		return err
	}

	reportImport(cmd, filepath.Base(path), res)
	if res.AddedCount() == 0 {
		return nil
	}
	return session.Commit(l)
}

func importDirectory(cmd *cobra.Command, session *ledger.Session, registry *importer.Registry, dir, format, fallback string, opts pipeline.Options) error {
	files, err := importer.Scan(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		cmd.Printf("No statements waiting in %s\n", dir)
		return nil
	}

	for _, file := range files {
		if err := importFile(cmd, session, registry, file.Path, format, fallback, opts); err != nil {
			return fmt.Errorf("%s: %w", file.Name, err)
		}
		if err := importer.MarkProcessed(dir, file.Name); err != nil {
			return err
		}
	}
	return nil
}

// parserFor picks a parser. An explicitly requested format always wins;
// otherwise the file extension decides, with the configured default format
// covering unknown extensions.
func parserFor(registry *importer.Registry, path, format, fallback string) (importer.Parser, error) {
	if format != "" {
		if p := registry.Get(format); p != nil {
			return p, nil
		}
		return nil, fmt.Errorf("unknown format %q; supported formats: %s", format, strings.Join(registry.Formats(), ", "))
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if ext == "qfx" {
		ext = "ofx"
	}
	if p := registry.Get(ext); p != nil {
		return p, nil
	}
	if p := registry.Get(fallback); p != nil {
		return p, nil
	}
	return nil, fmt.Errorf("no parser for %q; supported formats: %s", path, strings.Join(registry.Formats(), ", "))
}

func reportImport(cmd *cobra.Command, name string, res pipeline.Result) {
	switch {
	case res.NothingToImport():
		if res.Parsed == 0 {
			cmd.Printf("%s: no transactions found\n", name)
		} else {
			cmd.Printf("%s: nothing to import (%d outside the active period)\n", name, res.Parsed)
		}
	case res.NothingNew():
		cmd.Printf("%s: nothing new (%d duplicates, %d outside the active period)\n",
			name, res.SkippedDuplicates, res.SkippedYearMismatch+res.SkippedMonthMismatch)
	default:
		cmd.Printf("%s: added %d of %d transactions\n", name, res.AddedCount(), res.Parsed)
	}
}

func suggestCategories(cmd *cobra.Command, session *ledger.Session, model string, minConfidence float64) error {
	ctx := cmd.Context()
	clf, err := ai.NewGeminiClassifier(ctx, model, minConfidence)
	if err != nil {
		return fmt.Errorf("starting classifier: %w", err)
	}

	log := logger.New(zerolog.InfoLevel)
	l, applied := pipeline.Suggest(ctx, session.Ledger(), clf, log, session.Now())
	if applied == 0 {
		cmd.Println("Classifier suggested no categories")
		return nil
	}
	cmd.Printf("Classifier categorized %d transactions\n", applied)
	return session.Commit(l)
}
