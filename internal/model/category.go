package model

import "sort"

// Category is one of the closed set of spending and income categories.
type Category string

const (
	// Uncategorized is the default for transactions no rule or classifier
	// has matched.
	Uncategorized Category = "Uncategorized"
	// InternalTransfer marks money moved between the user's own accounts.
	// Aggregates exclude it so transfers never inflate income or expenses.
	InternalTransfer Category = "Internal Transfer"
)

// IncomeCategories lists the categories valid for inflows.
var IncomeCategories = []Category{
	"Family Transfer",
	"Government & Tax",
	InternalTransfer,
	"Investment Income",
	"Other Income",
	"Refunds",
	"Salary",
	"Selling Items",
	"Transfers In",
	Uncategorized,
}

// ExpenseCategories lists the categories valid for outflows.
var ExpenseCategories = []Category{
	"Eating Out",
	"Education",
	"Entertainment",
	"Family Transfer",
	"General",
	"Gifts & Donations",
	"Groceries",
	"Health",
	"Hobby",
	"Housing",
	InternalTransfer,
	"Investments",
	"Shopping",
	"Subscriptions",
	"Transportation",
	"Travel",
	Uncategorized,
	"Utilities",
}

// Categories returns the sorted union of the income and expense sets.
func Categories() []Category {
	seen := make(map[Category]bool)
	var all []Category
	for _, c := range IncomeCategories {
		if !seen[c] {
			seen[c] = true
			all = append(all, c)
		}
	}
	for _, c := range ExpenseCategories {
		if !seen[c] {
			seen[c] = true
			all = append(all, c)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i] < all[j] })
	return all
}

// ValidCategory reports whether c belongs to the closed category set.
func ValidCategory(c Category) bool {
	return contains(IncomeCategories, c) || contains(ExpenseCategories, c)
}

// ValidFor reports whether c is usable for the given rule type: income rules
// must target an income-side category, expense rules an expense-side one.
func ValidFor(c Category, rt RuleType) bool {
	switch rt {
	case RuleIncome:
		return contains(IncomeCategories, c)
	case RuleExpense:
		return contains(ExpenseCategories, c)
	default:
		return ValidCategory(c)
	}
}

func contains(set []Category, c Category) bool {
	for _, s := range set {
		if s == c {
			return true
		}
	}
	return false
}
