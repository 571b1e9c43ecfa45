package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// RuleType constrains which transactions a categorization rule may affect.
type RuleType string

const (
	RuleAny     RuleType = "any"
	RuleIncome  RuleType = "income"
	RuleExpense RuleType = "expense"
)

// Valid reports whether rt is a known rule type.
func (rt RuleType) Valid() bool {
	switch rt {
	case RuleAny, RuleIncome, RuleExpense:
		return true
	}
	return false
}

// Allows reports whether an amount's sign is compatible with the rule type.
// Income rules match amounts >= 0, expense rules amounts < 0.
func (rt RuleType) Allows(amount decimal.Decimal) bool {
	switch rt {
	case RuleIncome:
		return !amount.IsNegative()
	case RuleExpense:
		return amount.IsNegative()
	default:
		return true
	}
}

// CategoryRule assigns a category to transactions whose description contains
// the keyword. Rules are evaluated in stored order; the first match wins.
type CategoryRule struct {
	ID       string   `json:"id"`
	Keyword  string   `json:"keyword"`
	Category Category `json:"category"`
	Type     RuleType `json:"ruleType"`
}

// Matches reports whether the rule applies to a transaction with the given
// description and amount. The keyword test is a case-insensitive substring
// match.
func (r CategoryRule) Matches(description string, amount decimal.Decimal) bool {
	if !r.Type.Allows(amount) {
		return false
	}
	return strings.Contains(strings.ToLower(description), strings.ToLower(r.Keyword))
}
