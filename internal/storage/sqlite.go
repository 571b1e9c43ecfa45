package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/olex-green/family-budget/internal/model"
)

// SQLiteStore persists the ledger in an embedded SQLite database. Save
// replaces the whole document inside one transaction; there is exactly one
// writer, so a full sync keeps the schema trivial.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// Amounts are stored as TEXT so decimals round-trip exactly.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS transactions (
	id          TEXT PRIMARY KEY,
	date        TEXT NOT NULL,
	amount      TEXT NOT NULL,
	description TEXT NOT NULL,
	category    TEXT NOT NULL,
	source_line TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS category_rules (
	id        TEXT PRIMARY KEY,
	keyword   TEXT NOT NULL,
	category  TEXT NOT NULL,
	rule_type TEXT NOT NULL DEFAULT 'any',
	position  INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS settings (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);`

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	return &SQLiteStore{db: db, now: time.Now}, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load reads the full document. Missing settings fall back to the same
// defaults as an empty JSON document.
func (s *SQLiteStore) Load() (model.Ledger, error) {
	l := model.NewLedger(s.now())

	rows, err := s.db.Query(`SELECT id, date, amount, description, category, source_line FROM transactions ORDER BY rowid`)
	if err != nil {
		return l, fmt.Errorf("querying transactions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, dateStr, amountStr, desc, category, sourceLine string
		if err := rows.Scan(&id, &dateStr, &amountStr, &desc, &category, &sourceLine); err != nil {
			return l, fmt.Errorf("scanning transaction: %w", err)
		}
		date, err := model.ParseDate(dateStr)
		if err != nil {
			return l, fmt.Errorf("transaction %s: parsing date %q: %w", id, dateStr, err)
		}
		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			return l, fmt.Errorf("transaction %s: parsing amount %q: %w", id, amountStr, err)
		}
		l.Transactions = append(l.Transactions, model.Transaction{
			ID:          id,
			Date:        date,
			Amount:      amount,
			Description: desc,
			Category:    model.Category(category),
			SourceLine:  sourceLine,
		})
	}
	if err := rows.Err(); err != nil {
		return l, fmt.Errorf("reading transactions: %w", err)
	}

	ruleRows, err := s.db.Query(`SELECT id, keyword, category, rule_type FROM category_rules ORDER BY position`)
	if err != nil {
		return l, fmt.Errorf("querying rules: %w", err)
	}
	defer ruleRows.Close()

	for ruleRows.Next() {
		var id, keyword, category, ruleType string
		if err := ruleRows.Scan(&id, &keyword, &category, &ruleType); err != nil {
			return l, fmt.Errorf("scanning rule: %w", err)
		}
		l.CategoryRules = append(l.CategoryRules, model.CategoryRule{
			ID:       id,
			Keyword:  keyword,
			Category: model.Category(category),
			Type:     model.RuleType(ruleType),
		})
	}
	if err := ruleRows.Err(); err != nil {
		return l, fmt.Errorf("reading rules: %w", err)
	}

	if v, ok, err := s.setting("initialCapital"); err != nil {
		return l, err
	} else if ok {
		capital, err := decimal.NewFromString(v)
		if err != nil {
			return l, fmt.Errorf("parsing initialCapital %q: %w", v, err)
		}
		l.InitialCapital = capital
	}

	if v, ok, err := s.setting("activeYear"); err != nil {
		return l, err
	} else if ok {
		if _, err := fmt.Sscanf(v, "%d", &l.ActiveYear); err != nil {
			return l, fmt.Errorf("parsing activeYear %q: %w", v, err)
		}
	}

	if v, ok, err := s.setting("lastUpdated"); err != nil {
		return l, err
	} else if ok {
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return l, fmt.Errorf("parsing lastUpdated %q: %w", v, err)
		}
		l.LastUpdated = ts
	}

	return l.Normalize(s.now()), nil
}

func (s *SQLiteStore) setting(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading setting %s: %w", key, err)
	}
	return value, true, nil
}

// Save replaces the full document in one transaction.
func (s *SQLiteStore) Save(l model.Ledger) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM transactions`); err != nil {
		return fmt.Errorf("clearing transactions: %w", err)
	}
	for _, t := range l.Transactions {
		_, err := tx.Exec(
			`INSERT INTO transactions (id, date, amount, description, category, source_line) VALUES (?, ?, ?, ?, ?, ?)`,
			t.ID, t.Date.String(), t.Amount.String(), t.Description, string(t.Category), t.SourceLine,
		)
		if err != nil {
			return fmt.Errorf("inserting transaction %s: %w", t.ID, err)
		}
	}

	if _, err := tx.Exec(`DELETE FROM category_rules`); err != nil {
		return fmt.Errorf("clearing rules: %w", err)
	}
	for i, r := range l.CategoryRules {
		_, err := tx.Exec(
			`INSERT INTO category_rules (id, keyword, category, rule_type, position) VALUES (?, ?, ?, ?, ?)`,
			r.ID, r.Keyword, string(r.Category), string(r.Type), i,
		)
		if err != nil {
			return fmt.Errorf("inserting rule %s: %w", r.ID, err)
		}
	}

	settings := map[string]string{
		"initialCapital": l.InitialCapital.String(),
		"activeYear":     fmt.Sprintf("%d", l.ActiveYear),
		"lastUpdated":    l.LastUpdated.Format(time.RFC3339),
	}
	for key, value := range settings {
		if _, err := tx.Exec(`INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)`, key, value); err != nil {
			return fmt.Errorf("saving setting %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing save: %w", err)
	}
	return nil
}
