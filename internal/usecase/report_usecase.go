package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/apper-canvas/pennywise/internal/domain"
	"github.com/apper-canvas/pennywise/internal/infrastructure/metrics"
)

// ReportUseCase derives summary statistics from transaction and budget
// snapshots. Every operation takes the reference time explicitly; the engine
// never reads a wall clock.
type ReportUseCase struct {
	transactionRepo TransactionRepository
	budgetRepo      BudgetRepository
	cache           Cache
	cacheTTL        time.Duration
}

// NewReportUseCase creates a new ReportUseCase. Cache may be nil; results
// are deterministic and the cache is purely an optimization.
func NewReportUseCase(transactionRepo TransactionRepository, budgetRepo BudgetRepository, cache Cache, cacheTTL time.Duration) *ReportUseCase {
	return &ReportUseCase{
		transactionRepo: transactionRepo,
		budgetRepo:      budgetRepo,
		cache:           cache,
		cacheTTL:        cacheTTL,
	}
}

// MonthlySummary is the dashboard view of one calendar month.
type MonthlySummary struct {
	Month              string                `json:"month"`
	Income             decimal.Decimal       `json:"income"`
	Expenses           decimal.Decimal       `json:"expenses"`
	Net                decimal.Decimal       `json:"net"`
	TotalBudget        decimal.Decimal       `json:"total_budget"`
	BudgetRemaining    decimal.Decimal       `json:"budget_remaining"`
	RecentTransactions []*domain.Transaction `json:"recent_transactions"`
}

// GetMonthlySummary computes income, expenses, and budget consumption for
// ref's calendar month.
func (uc *ReportUseCase) GetMonthlySummary(ctx context.Context, ref time.Time) (*MonthlySummary, error) {
	key := reportCacheKey(domain.MonthKey(ref))

	if uc.cache != nil {
		if data, err := uc.cache.Get(ctx, key); err == nil && data != nil {
			var cached MonthlySummary
			if err := json.Unmarshal(data, &cached); err == nil {
				metrics.ReportCacheHit()
				return &cached, nil
			}
		}
	}

	transactions, err := uc.transactionRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	budgets, err := uc.budgetRepo.ListByMonth(ctx, domain.FormatMonth(ref.Month()), ref.Year())
	if err != nil {
		return nil, err
	}

	totals := domain.MonthlyTotals(transactions)
	monthTotal := totals[domain.MonthKey(ref)]

	totalBudget := decimal.Zero
	for _, b := range budgets {
		totalBudget = totalBudget.Add(b.Amount)
	}

	remaining := totalBudget.Sub(monthTotal.Expenses)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	recent := transactions
	if len(recent) > RecentTransactionCount {
		recent = recent[:RecentTransactionCount]
	}

	summary := &MonthlySummary{
		Month:              domain.MonthKey(ref),
		Income:             monthTotal.Income,
		Expenses:           monthTotal.Expenses,
		Net:                monthTotal.Net(),
		TotalBudget:        totalBudget,
		BudgetRemaining:    remaining,
		RecentTransactions: recent,
	}

	if uc.cache != nil {
		metrics.ReportCacheMiss()
		if data, err := json.Marshal(summary); err == nil {
			_ = uc.cache.Set(ctx, key, data, uc.cacheTTL)
		}
	}

	return summary, nil
}

// GetMonthlyBreakdown returns income and expense totals for every month with
// at least one transaction.
func (uc *ReportUseCase) GetMonthlyBreakdown(ctx context.Context) (map[string]domain.MonthTotal, error) {
	transactions, err := uc.transactionRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	return domain.MonthlyTotals(transactions), nil
}

// GetCategoryBreakdown returns per-category spending for one month.
func (uc *ReportUseCase) GetCategoryBreakdown(ctx context.Context, month time.Month, year int) (map[string]decimal.Decimal, error) {
	transactions, err := uc.transactionRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	return domain.CategoryTotals(transactions, month, year, domain.TypeExpense), nil
}

// GetTrends returns a zero-filled series of the last months calendar months
// ending at ref's month, oldest first.
func (uc *ReportUseCase) GetTrends(ctx context.Context, ref time.Time, months int) ([]domain.TrendPoint, error) {
	if months <= 0 {
		months = DefaultTrendMonths
	}
	if months > MaxTrendMonths {
		months = MaxTrendMonths
	}

	transactions, err := uc.transactionRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	return domain.MonthlySeries(transactions, ref, months), nil
}
