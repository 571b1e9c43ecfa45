// Package report computes the read-side aggregates: yearly totals, monthly
// breakdowns, per-category spending, and the year-end projection. Everything
// operates on the active year's transactions and excludes internal transfers,
// which move money between the user's own accounts without changing wealth.
package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/olex-green/family-budget/internal/model"
)

// Summary holds the active year's headline figures.
type Summary struct {
	TotalIncome    decimal.Decimal
	TotalExpense   decimal.Decimal
	NetSavings     decimal.Decimal
	CurrentBalance decimal.Decimal
}

// Summarize totals the active year. TotalExpense is reported as a positive
// magnitude; NetSavings is income minus expense and may be negative.
func Summarize(l model.Ledger) Summary {
	var income, expense decimal.Decimal
	for _, t := range activeYear(l) {
		if t.Category == model.InternalTransfer {
			continue
		}
		if t.Amount.IsPositive() {
			income = income.Add(t.Amount)
		} else {
			expense = expense.Add(t.Amount.Abs())
		}
	}

	net := income.Sub(expense)
	return Summary{
		TotalIncome:    income,
		TotalExpense:   expense,
		NetSavings:     net,
		CurrentBalance: l.InitialCapital.Add(net),
	}
}

// MonthTotal is one month's slice of the yearly summary.
type MonthTotal struct {
	Month   time.Month
	Income  decimal.Decimal
	Expense decimal.Decimal
	Net     decimal.Decimal
}

// MonthlyTotals breaks the active year down by month, in calendar order.
// Months without transactions are omitted.
func MonthlyTotals(l model.Ledger) []MonthTotal {
	byMonth := make(map[time.Month]*MonthTotal)
	for _, t := range activeYear(l) {
		if t.Category == model.InternalTransfer {
			continue
		}
		m := t.Date.Month()
		mt, ok := byMonth[m]
		if !ok {
			mt = &MonthTotal{Month: m}
			byMonth[m] = mt
		}
		if t.Amount.IsPositive() {
			mt.Income = mt.Income.Add(t.Amount)
		} else {
			mt.Expense = mt.Expense.Add(t.Amount.Abs())
		}
	}

	var totals []MonthTotal
	for m := time.January; m <= time.December; m++ {
		if mt, ok := byMonth[m]; ok {
			mt.Net = mt.Income.Sub(mt.Expense)
			totals = append(totals, *mt)
		}
	}
	return totals
}

// CategoryTotal is one category's spending for the year.
type CategoryTotal struct {
	Category model.Category
	Total    decimal.Decimal
}

// ExpensesByCategory totals the active year's outflows per category, largest
// first. Ties break alphabetically so the order is stable.
func ExpensesByCategory(l model.Ledger) []CategoryTotal {
	byCategory := make(map[model.Category]decimal.Decimal)
	for _, t := range activeYear(l) {
		if t.Category == model.InternalTransfer || !t.Amount.IsNegative() {
			continue
		}
		byCategory[t.Category] = byCategory[t.Category].Add(t.Amount.Abs())
	}

	totals := make([]CategoryTotal, 0, len(byCategory))
	for c, total := range byCategory {
		totals = append(totals, CategoryTotal{Category: c, Total: total})
	}
	sort.Slice(totals, func(i, j int) bool {
		if !totals[i].Total.Equal(totals[j].Total) {
			return totals[i].Total.GreaterThan(totals[j].Total)
		}
		return totals[i].Category < totals[j].Category
	})
	return totals
}

// Projection estimates the year-end balance from the savings rate so far.
type Projection struct {
	ActiveMonths      int
	RemainingMonths   int
	AvgMonthlySavings decimal.Decimal
	ProjectedYearEnd  decimal.Decimal
}

// Project extrapolates the current balance to year end: the average monthly
// net savings over the months that have transactions, applied to the months
// still ahead of now. With no active months the projection is just the
// current balance.
func Project(l model.Ledger, now time.Time) Projection {
	summary := Summarize(l)

	months := make(map[time.Month]bool)
	for _, t := range activeYear(l) {
		if t.Category == model.InternalTransfer {
			continue
		}
		months[t.Date.Month()] = true
	}

	p := Projection{
		ActiveMonths:     len(months),
		ProjectedYearEnd: summary.CurrentBalance,
	}

	switch {
	case now.Year() > l.ActiveYear:
		p.RemainingMonths = 0
	case now.Year() < l.ActiveYear:
		p.RemainingMonths = 12
	default:
		p.RemainingMonths = 12 - int(now.Month())
	}

	if p.ActiveMonths == 0 {
		return p
	}

	p.AvgMonthlySavings = summary.NetSavings.Div(decimal.NewFromInt(int64(p.ActiveMonths)))
	p.ProjectedYearEnd = summary.CurrentBalance.Add(
		p.AvgMonthlySavings.Mul(decimal.NewFromInt(int64(p.RemainingMonths))))
	return p
}

func activeYear(l model.Ledger) []model.Transaction {
	var txns []model.Transaction
	for _, t := range l.Transactions {
		if t.Date.Year() == l.ActiveYear {
			txns = append(txns, t)
		}
	}
	return txns
}
