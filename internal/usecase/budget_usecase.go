package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/apper-canvas/pennywise/internal/domain"
	"github.com/apper-canvas/pennywise/internal/infrastructure/metrics"
)

// BudgetUseCase handles budget business logic.
type BudgetUseCase struct {
	budgetRepo      BudgetRepository
	transactionRepo TransactionRepository
	auditRepo       AuditRepository
	cache           Cache
	idGen           IDGenerator
}

// NewBudgetUseCase creates a new BudgetUseCase. Cache may be nil when
// report caching is disabled.
func NewBudgetUseCase(budgetRepo BudgetRepository, transactionRepo TransactionRepository, auditRepo AuditRepository, cache Cache, idGen IDGenerator) *BudgetUseCase {
	return &BudgetUseCase{
		budgetRepo:      budgetRepo,
		transactionRepo: transactionRepo,
		auditRepo:       auditRepo,
		cache:           cache,
		idGen:           idGen,
	}
}

// CreateBudgetInput represents input for creating a budget.
type CreateBudgetInput struct {
	CategoryID string
	Amount     decimal.Decimal
	Month      string
	Year       int
}

// CreateBudget validates and stores a new budget. Uniqueness per
// (category, month, year) is the caller's responsibility.
func (uc *BudgetUseCase) CreateBudget(ctx context.Context, input CreateBudgetInput) (*domain.Budget, error) {
	budget := &domain.Budget{
		CategoryID: input.CategoryID,
		Amount:     input.Amount,
		Month:      input.Month,
		Year:       input.Year,
	}

	if err := budget.Validate(); err != nil {
		return nil, err
	}

	if err := uc.budgetRepo.Create(ctx, budget); err != nil {
		return nil, err
	}

	uc.audit(ctx, domain.AuditActionBudgetCreate, budget.ID, nil, budget)

	metrics.BudgetEvent("create")
	uc.invalidateReports(ctx, budget.Month, budget.Year)

	return budget, nil
}

// GetBudget retrieves a budget by ID.
func (uc *BudgetUseCase) GetBudget(ctx context.Context, id int64) (*domain.Budget, error) {
	return uc.budgetRepo.GetByID(ctx, id)
}

// ListBudgets lists all budgets.
func (uc *BudgetUseCase) ListBudgets(ctx context.Context) ([]*domain.Budget, error) {
	return uc.budgetRepo.List(ctx)
}

// UpdateBudget replaces the mutable fields of an existing budget.
func (uc *BudgetUseCase) UpdateBudget(ctx context.Context, id int64, input CreateBudgetInput) (*domain.Budget, error) {
	existing, err := uc.budgetRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := &domain.Budget{
		ID:         existing.ID,
		CategoryID: input.CategoryID,
		Amount:     input.Amount,
		Month:      input.Month,
		Year:       input.Year,
	}

	if err := updated.Validate(); err != nil {
		return nil, err
	}

	if err := uc.budgetRepo.Update(ctx, updated); err != nil {
		return nil, err
	}

	uc.audit(ctx, domain.AuditActionBudgetUpdate, id, existing, updated)

	metrics.BudgetEvent("update")

	// Both the old and the new month may change budget totals.
	uc.invalidateReports(ctx, existing.Month, existing.Year)
	uc.invalidateReports(ctx, updated.Month, updated.Year)

	return updated, nil
}

// DeleteBudget removes a budget.
func (uc *BudgetUseCase) DeleteBudget(ctx context.Context, id int64) error {
	existing, err := uc.budgetRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := uc.budgetRepo.Delete(ctx, id); err != nil {
		return err
	}

	uc.audit(ctx, domain.AuditActionBudgetDelete, id, existing, nil)

	metrics.BudgetEvent("delete")
	uc.invalidateReports(ctx, existing.Month, existing.Year)

	return nil
}

// BudgetOverview joins one month's budgets with actual spending.
type BudgetOverview struct {
	Statuses        []domain.BudgetStatus
	TotalBudget     decimal.Decimal
	TotalSpent      decimal.Decimal
	TotalRemaining  decimal.Decimal
	OverBudgetCount int
}

// Overview derives budget consumption for a month from the transaction
// snapshot.
func (uc *BudgetUseCase) Overview(ctx context.Context, month string, year int) (*BudgetOverview, error) {
	parsedMonth, err := domain.ParseMonth(month)
	if err != nil {
		return nil, err
	}

	budgets, err := uc.budgetRepo.ListByMonth(ctx, month, year)
	if err != nil {
		return nil, err
	}

	transactions, err := uc.transactionRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	spent := domain.CategoryTotals(transactions, parsedMonth, year, domain.TypeExpense)

	overview := &BudgetOverview{
		Statuses: make([]domain.BudgetStatus, 0, len(budgets)),
	}

	for _, budget := range budgets {
		status := domain.BudgetProgress(budget, spent)
		overview.Statuses = append(overview.Statuses, status)

		overview.TotalBudget = overview.TotalBudget.Add(budget.Amount)
		overview.TotalSpent = overview.TotalSpent.Add(status.Spent)
		if status.OverBudget {
			overview.OverBudgetCount++
		}
	}

	overview.TotalRemaining = overview.TotalBudget.Sub(overview.TotalSpent)

	return overview, nil
}

// audit records the operation after the store write has succeeded. The
// write is best-effort; a failed audit entry never undoes the mutation.
func (uc *BudgetUseCase) audit(ctx context.Context, action domain.AuditAction, id int64, before, after any) {
	_ = uc.auditRepo.Create(ctx, &domain.AuditLog{
		ID:           uc.idGen.Generate(),
		Action:       string(action),
		ResourceType: "budget",
		ResourceID:   formatID(id),
		BeforeState:  domain.MarshalState(before),
		AfterState:   domain.MarshalState(after),
		Status:       string(domain.AuditStatusSuccess),
		CreatedAt:    time.Now().UTC(),
	})
}

// invalidateReports drops cached report data for the budget's month. The
// monthly summary embeds budget totals, so a budget change must evict it the
// same way a transaction change does.
func (uc *BudgetUseCase) invalidateReports(ctx context.Context, month string, year int) {
	if uc.cache == nil {
		return
	}
	_ = uc.cache.Delete(ctx, reportCacheKey(monthKey(month, year)))
}
