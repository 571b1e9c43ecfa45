package commands

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/olex-green/family-budget/internal/config"
	"github.com/olex-green/family-budget/internal/ledger"
	"github.com/olex-green/family-budget/internal/storage"
)

// loadConfig reads the project configuration. A missing file falls back to
// the defaults so the tool works without an explicit init.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// openSession opens the configured store and loads a session from it. The
// returned closer releases the store handle when it holds one.
func openSession(cfg *config.Config) (*ledger.Session, func(), error) {
	store, err := storage.Open(cfg.Data.Backend, cfg.Data.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening store: %w", err)
	}

	closer := func() {}
	if c, ok := store.(io.Closer); ok {
		closer = func() { c.Close() }
	}

	session, err := ledger.NewSession(store, nil)
	if err != nil {
		closer()
		return nil, nil, err
	}
	return session, closer, nil
}

// parseMonth accepts a month number ("3") or an English name ("March",
// "mar").
func parseMonth(s string) (time.Month, error) {
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > 12 {
			return 0, fmt.Errorf("month %d out of range", n)
		}
		return time.Month(n), nil
	}

	name := strings.ToLower(s)
	for m := time.January; m <= time.December; m++ {
		full := strings.ToLower(m.String())
		if name == full || name == full[:3] {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unrecognized month %q", s)
}
