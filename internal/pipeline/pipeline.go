// Package pipeline runs a statement through parse, categorize, filter and
// merge, producing an updated ledger plus a report of what happened to every
// parsed row.
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/olex-green/family-budget/internal/importer"
	"github.com/olex-green/family-budget/internal/ledger"
	"github.com/olex-green/family-budget/internal/model"
	"github.com/olex-green/family-budget/internal/rules"
)

// Result summarizes one import run. Every parsed transaction lands in
// exactly one bucket: added, duplicate, or filtered out.
type Result struct {
	Parsed               int
	Added                []model.Transaction
	SkippedDuplicates    int
	SkippedYearMismatch  int
	SkippedMonthMismatch int
}

// AddedCount returns how many transactions the run added.
func (r Result) AddedCount() int {
	return len(r.Added)
}

// NothingToImport reports that no row was eligible: the statement was empty
// or the year/month filter dropped everything before dedup.
func (r Result) NothingToImport() bool {
	return r.Parsed == r.SkippedYearMismatch+r.SkippedMonthMismatch
}

// NothingNew reports that eligible rows existed but all were duplicates.
func (r Result) NothingNew() bool {
	return len(r.Added) == 0 && r.SkippedDuplicates > 0
}

// Options narrows an import run. A zero Month admits the whole active year.
type Options struct {
	Month time.Month
}

// Import parses the statement, categorizes each transaction with the
// ledger's keyword rules, drops entries outside the active year (and month,
// when one is given), and merges the rest. A parse failure imports nothing.
func Import(r io.Reader, parser importer.Parser, l model.Ledger, opts Options, now time.Time) (model.Ledger, Result, error) {
	parsed, err := parser.Parse(r)
	if err != nil {
		return l, Result{}, fmt.Errorf("parsing %s statement: %w", parser.Format(), err)
	}

	res := Result{Parsed: len(parsed)}
	candidates := make([]model.Transaction, 0, len(parsed))
	for _, t := range parsed {
		if t.Date.Year() != l.ActiveYear {
			res.SkippedYearMismatch++
			continue
		}
		if opts.Month != 0 && t.Date.Month() != opts.Month {
			res.SkippedMonthMismatch++
			continue
		}
		t.Category = rules.Classify(t.Description, t.Amount, l.CategoryRules)
		candidates = append(candidates, t)
	}

	merged, mr := ledger.Merge(l, candidates, now)
	res.Added = mr.Added
	res.SkippedDuplicates = mr.SkippedDuplicates
	return merged, res, nil
}
