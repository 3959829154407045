package domain

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Budget is a spending ceiling for one category in one calendar month.
// Month is stored as a zero-padded two-digit string ("01".."12"). At most one
// budget per (category, month, year) is the caller's responsibility.
type Budget struct {
	CategoryID string
	Month      string
	Amount     decimal.Decimal
	ID         int64
	Year       int
}

// Validate checks that a budget conforms to the data model.
func (b *Budget) Validate() error {
	if b.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if !IsValidCategory(b.CategoryID) {
		return ErrInvalidCategory
	}

	if _, err := ParseMonth(b.Month); err != nil {
		return err
	}

	return nil
}

// MonthTime returns the first day of the budget's month in UTC.
func (b *Budget) MonthTime() (time.Time, error) {
	month, err := ParseMonth(b.Month)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(b.Year, month, 1, 0, 0, 0, 0, time.UTC), nil
}

// ParseMonth parses a two-digit month string into a time.Month.
func ParseMonth(s string) (time.Month, error) {
	if len(s) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMonth, s)
	}

	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 12 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMonth, s)
	}

	return time.Month(n), nil
}

// FormatMonth formats a time.Month as a zero-padded two-digit string.
func FormatMonth(m time.Month) string {
	return fmt.Sprintf("%02d", int(m))
}
