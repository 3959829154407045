package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TypeFilter restricts a transaction listing to one type, or none.
type TypeFilter string

const (
	FilterAll     TypeFilter = "all"
	FilterIncome  TypeFilter = "income"
	FilterExpense TypeFilter = "expense"
)

// DateRange bounds transaction dates. A nil bound is not applied; both
// bounds are inclusive.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// AmountRange bounds absolute transaction amounts. A nil bound is not
// applied; both bounds are inclusive.
type AmountRange struct {
	Min *decimal.Decimal
	Max *decimal.Decimal
}

// FilterCriteria is a composite, request-scoped transaction filter. Active
// clauses combine with logical AND; within Categories, membership is enough.
type FilterCriteria struct {
	SearchTerm  string
	DateRange   DateRange
	Categories  []string
	AmountRange AmountRange
	Type        TypeFilter
}

// Matches reports whether the transaction satisfies every active clause.
func (c FilterCriteria) Matches(t *Transaction) bool {
	if c.Type != "" && c.Type != FilterAll && string(c.Type) != string(t.Type) {
		return false
	}

	if c.SearchTerm != "" {
		if !strings.Contains(strings.ToLower(t.Description), strings.ToLower(c.SearchTerm)) {
			return false
		}
	}

	if c.DateRange.Start != nil && t.Date.Before(*c.DateRange.Start) {
		return false
	}
	if c.DateRange.End != nil && t.Date.After(*c.DateRange.End) {
		return false
	}

	if len(c.Categories) > 0 {
		found := false
		for _, cat := range c.Categories {
			if cat == t.Category {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	amount := t.Amount.Abs()
	if c.AmountRange.Min != nil && amount.LessThan(*c.AmountRange.Min) {
		return false
	}
	if c.AmountRange.Max != nil && amount.GreaterThan(*c.AmountRange.Max) {
		return false
	}

	return true
}

// ApplyFilters returns the transactions satisfying every active clause of the
// criteria, preserving the relative order of the input.
func ApplyFilters(transactions []*Transaction, criteria FilterCriteria) []*Transaction {
	result := make([]*Transaction, 0, len(transactions))
	for _, t := range transactions {
		if criteria.Matches(t) {
			result = append(result, t)
		}
	}
	return result
}

// ActiveCount counts the active advanced filter groups: search term, date
// range, categories, amount range. The type filter is not counted.
func (c FilterCriteria) ActiveCount() int {
	count := 0
	if c.SearchTerm != "" {
		count++
	}
	if c.DateRange.Start != nil || c.DateRange.End != nil {
		count++
	}
	if len(c.Categories) > 0 {
		count++
	}
	if c.AmountRange.Min != nil || c.AmountRange.Max != nil {
		count++
	}
	return count
}
