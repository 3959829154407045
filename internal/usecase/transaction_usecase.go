package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/apper-canvas/pennywise/internal/domain"
	"github.com/apper-canvas/pennywise/internal/infrastructure/metrics"
)

// TransactionUseCase handles transaction business logic.
type TransactionUseCase struct {
	transactionRepo TransactionRepository
	auditRepo       AuditRepository
	cache           Cache
	idGen           IDGenerator
}

// NewTransactionUseCase creates a new TransactionUseCase. Cache may be nil
// when report caching is disabled.
func NewTransactionUseCase(transactionRepo TransactionRepository, auditRepo AuditRepository, cache Cache, idGen IDGenerator) *TransactionUseCase {
	return &TransactionUseCase{
		transactionRepo: transactionRepo,
		auditRepo:       auditRepo,
		cache:           cache,
		idGen:           idGen,
	}
}

// CreateTransactionInput represents input for creating a transaction.
type CreateTransactionInput struct {
	Amount      decimal.Decimal
	Type        domain.TransactionType
	Category    string
	Description string
	Date        time.Time
}

// CreateTransaction validates and stores a new transaction. The store
// assigns the ID.
func (uc *TransactionUseCase) CreateTransaction(ctx context.Context, input CreateTransactionInput) (*domain.Transaction, error) {
	transaction := &domain.Transaction{
		Amount:      input.Amount,
		Type:        input.Type,
		Category:    input.Category,
		Description: input.Description,
		Date:        input.Date,
		CreatedAt:   time.Now().UTC(),
	}

	if err := transaction.Validate(); err != nil {
		return nil, err
	}

	if err := uc.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, err
	}

	uc.audit(ctx, domain.AuditActionTransactionCreate, transaction.ID, nil, transaction)

	metrics.TransactionEvent("create")
	uc.invalidateReports(ctx, transaction.Date)

	return transaction, nil
}

// GetTransaction retrieves a transaction by ID.
func (uc *TransactionUseCase) GetTransaction(ctx context.Context, id int64) (*domain.Transaction, error) {
	return uc.transactionRepo.GetByID(ctx, id)
}

// ListTransactionsInput represents input for listing transactions.
type ListTransactionsInput struct {
	Criteria domain.FilterCriteria
	Limit    int
	Offset   int
}

// ListTransactionsOutput carries a filtered page plus collection counts.
type ListTransactionsOutput struct {
	Transactions  []*domain.Transaction
	Total         int
	ActiveFilters int
}

// ListTransactions lists transactions date-descending, applies the filter
// criteria to the snapshot, and pages the result.
func (uc *TransactionUseCase) ListTransactions(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	transactions, err := uc.transactionRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	filtered := domain.ApplyFilters(transactions, input.Criteria)

	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	page := filtered
	if offset < len(filtered) {
		page = filtered[offset:]
	} else {
		page = nil
	}
	if len(page) > limit {
		page = page[:limit]
	}

	return &ListTransactionsOutput{
		Transactions:  page,
		Total:         len(filtered),
		ActiveFilters: input.Criteria.ActiveCount(),
	}, nil
}

// UpdateTransactionInput represents input for updating a transaction.
type UpdateTransactionInput struct {
	Amount      decimal.Decimal
	Type        domain.TransactionType
	Category    string
	Description string
	Date        time.Time
}

// UpdateTransaction replaces the mutable fields of an existing transaction.
func (uc *TransactionUseCase) UpdateTransaction(ctx context.Context, id int64, input UpdateTransactionInput) (*domain.Transaction, error) {
	existing, err := uc.transactionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := &domain.Transaction{
		ID:          existing.ID,
		Amount:      input.Amount,
		Type:        input.Type,
		Category:    input.Category,
		Description: input.Description,
		Date:        input.Date,
		CreatedAt:   existing.CreatedAt,
	}

	if err := updated.Validate(); err != nil {
		return nil, err
	}

	if err := uc.transactionRepo.Update(ctx, updated); err != nil {
		return nil, err
	}

	uc.audit(ctx, domain.AuditActionTransactionUpdate, id, existing, updated)

	metrics.TransactionEvent("update")

	// Both the old and the new month may change totals.
	uc.invalidateReports(ctx, existing.Date)
	uc.invalidateReports(ctx, updated.Date)

	return updated, nil
}

// DeleteTransaction removes a transaction.
func (uc *TransactionUseCase) DeleteTransaction(ctx context.Context, id int64) error {
	existing, err := uc.transactionRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := uc.transactionRepo.Delete(ctx, id); err != nil {
		return err
	}

	uc.audit(ctx, domain.AuditActionTransactionDelete, id, existing, nil)

	metrics.TransactionEvent("delete")
	uc.invalidateReports(ctx, existing.Date)

	return nil
}

// audit records the operation after the store write has succeeded. The
// write is best-effort; a failed audit entry never undoes the mutation.
func (uc *TransactionUseCase) audit(ctx context.Context, action domain.AuditAction, id int64, before, after any) {
	_ = uc.auditRepo.Create(ctx, &domain.AuditLog{
		ID:           uc.idGen.Generate(),
		Action:       string(action),
		ResourceType: "transaction",
		ResourceID:   formatID(id),
		BeforeState:  domain.MarshalState(before),
		AfterState:   domain.MarshalState(after),
		Status:       string(domain.AuditStatusSuccess),
		CreatedAt:    time.Now().UTC(),
	})
}

// invalidateReports drops cached report data for the transaction's month.
// Recomputation is deterministic, so a miss here is harmless.
func (uc *TransactionUseCase) invalidateReports(ctx context.Context, date time.Time) {
	if uc.cache == nil {
		return
	}
	_ = uc.cache.Delete(ctx, reportCacheKey(domain.MonthKey(date)))
}
