package usecase

import (
	"fmt"
	"strconv"
	"time"
)

const (
	// DefaultTxTimeout is the maximum duration for a store transaction.
	DefaultTxTimeout = 10 * time.Second

	// DefaultTrendMonths is how many months a trend series spans when the
	// caller does not say.
	DefaultTrendMonths = 6

	// MaxTrendMonths bounds trend series length.
	MaxTrendMonths = 24

	// RecentTransactionCount is how many transactions the dashboard summary
	// carries.
	RecentTransactionCount = 5
)

// reportCacheKey builds the cache key for a monthly summary.
func reportCacheKey(monthKey string) string {
	return "report:summary:" + monthKey
}

// monthKey builds the "YYYY-MM" grouping key from a budget's month and
// year fields. It matches domain.MonthKey for the same calendar month.
func monthKey(month string, year int) string {
	return fmt.Sprintf("%04d-%s", year, month)
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
