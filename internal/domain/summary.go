package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// MonthTotal holds the income and expense sums for one calendar month.
type MonthTotal struct {
	Income   decimal.Decimal
	Expenses decimal.Decimal
}

// Net returns income minus expenses.
func (m MonthTotal) Net() decimal.Decimal {
	return m.Income.Sub(m.Expenses)
}

// MonthKey formats a time as the "YYYY-MM" grouping key.
func MonthKey(t time.Time) string {
	return fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))
}

// MonthlyTotals groups transactions by calendar month and sums income and
// expenses per group. Keys exist only for months with at least one
// transaction.
func MonthlyTotals(transactions []*Transaction) map[string]MonthTotal {
	totals := make(map[string]MonthTotal)

	for _, t := range transactions {
		key := MonthKey(t.Date)
		total := totals[key]

		switch t.Type {
		case TypeIncome:
			total.Income = total.Income.Add(t.Amount)
		case TypeExpense:
			total.Expenses = total.Expenses.Add(t.Amount)
		}

		totals[key] = total
	}

	return totals
}

// CategoryTotals sums amounts per category for transactions of the given
// type dated within the given month and year.
func CategoryTotals(transactions []*Transaction, month time.Month, year int, txType TransactionType) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)

	for _, t := range transactions {
		if t.Type != txType {
			continue
		}
		if t.Date.Month() != month || t.Date.Year() != year {
			continue
		}
		totals[t.Category] = totals[t.Category].Add(t.Amount)
	}

	return totals
}

// TrendPoint is one month of a spending trend series.
type TrendPoint struct {
	Year     int
	Month    time.Month
	Income   decimal.Decimal
	Expenses decimal.Decimal
}

// Key returns the "YYYY-MM" key for the point's month.
func (p TrendPoint) Key() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// MonthlySeries returns totals for the last months calendar months ending at
// ref's month, oldest first. Months without transactions appear with zero
// totals. The reference time is explicit so callers control "now".
func MonthlySeries(transactions []*Transaction, ref time.Time, months int) []TrendPoint {
	if months <= 0 {
		return nil
	}

	totals := MonthlyTotals(transactions)
	series := make([]TrendPoint, 0, months)

	for i := months - 1; i >= 0; i-- {
		anchor := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -i, 0)
		point := TrendPoint{Year: anchor.Year(), Month: anchor.Month()}

		if total, ok := totals[MonthKey(anchor)]; ok {
			point.Income = total.Income
			point.Expenses = total.Expenses
		}

		series = append(series, point)
	}

	return series
}
