package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/apper-canvas/pennywise/internal/domain"
)

// TransactionRepository defines data access for transactions. List returns
// the full collection ordered by date descending; the store assigns IDs on
// Create.
type TransactionRepository interface {
	Create(ctx context.Context, transaction *domain.Transaction) error
	GetByID(ctx context.Context, id int64) (*domain.Transaction, error)
	List(ctx context.Context) ([]*domain.Transaction, error)
	Update(ctx context.Context, transaction *domain.Transaction) error
	Delete(ctx context.Context, id int64) error
}

// BudgetRepository defines data access for budgets.
type BudgetRepository interface {
	Create(ctx context.Context, budget *domain.Budget) error
	GetByID(ctx context.Context, id int64) (*domain.Budget, error)
	List(ctx context.Context) ([]*domain.Budget, error)
	ListByMonth(ctx context.Context, month string, year int) ([]*domain.Budget, error)
	Update(ctx context.Context, budget *domain.Budget) error
	Delete(ctx context.Context, id int64) error
}

// GoalRepository defines data access for savings goals.
type GoalRepository interface {
	Create(ctx context.Context, goal *domain.Goal) error
	GetByID(ctx context.Context, id int64) (*domain.Goal, error)
	GetByIDForUpdate(ctx context.Context, tx StoreTx, id int64) (*domain.Goal, error)
	List(ctx context.Context) ([]*domain.Goal, error)
	Update(ctx context.Context, goal *domain.Goal) error
	UpdateCurrentAmount(ctx context.Context, tx StoreTx, id int64, amount decimal.Decimal) error
	Delete(ctx context.Context, id int64) error
}

// AccountRepository defines data access for bank accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.BankAccount) error
	GetByID(ctx context.Context, id int64) (*domain.BankAccount, error)
	List(ctx context.Context) ([]*domain.BankAccount, error)
	Update(ctx context.Context, account *domain.BankAccount) error
	Delete(ctx context.Context, id int64) error
}

// AuditRepository defines data access for audit logs. CreateTx writes the
// entry inside an open store transaction so it commits or rolls back with
// the mutation it records.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
	CreateTx(ctx context.Context, tx StoreTx, log *domain.AuditLog) error
	List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error)
}

// StoreTx represents a database transaction.
type StoreTx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TxManager handles transaction lifecycle.
type TxManager interface {
	Begin(ctx context.Context) (StoreTx, error)
}

// Retrier retries an operation on transient store failures.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs for audit entries.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations for derived report data.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
