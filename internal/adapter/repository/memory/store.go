package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/apper-canvas/pennywise/internal/domain"
	"github.com/apper-canvas/pennywise/internal/usecase"
)

// Store is an in-memory implementation of the repository interfaces. It
// backs local development and tests where no database is available. All
// methods are safe for concurrent use.
type Store struct {
	mu sync.RWMutex

	transactions map[int64]domain.Transaction
	budgets      map[int64]domain.Budget
	goals        map[int64]domain.Goal
	accounts     map[int64]domain.BankAccount
	auditLogs    []domain.AuditLog

	nextID int64
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		transactions: make(map[int64]domain.Transaction),
		budgets:      make(map[int64]domain.Budget),
		goals:        make(map[int64]domain.Goal),
		accounts:     make(map[int64]domain.BankAccount),
	}
}

// allocID must be called with the write lock held.
func (s *Store) allocID() int64 {
	s.nextID++
	return s.nextID
}

// --- usecase.TransactionRepository ---

func (s *Store) Create(ctx context.Context, transaction *domain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	transaction.ID = s.allocID()
	s.transactions[transaction.ID] = *transaction

	return nil
}

func (s *Store) GetByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.transactions[id]
	if !ok {
		return nil, domain.ErrTransactionNotFound
	}

	return &t, nil
}

func (s *Store) List(ctx context.Context) ([]*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	transactions := make([]*domain.Transaction, 0, len(s.transactions))
	for _, t := range s.transactions {
		t := t
		transactions = append(transactions, &t)
	}

	// Newest first, matching the SQL ordering.
	sort.Slice(transactions, func(i, j int) bool {
		if !transactions[i].Date.Equal(transactions[j].Date) {
			return transactions[i].Date.After(transactions[j].Date)
		}
		return transactions[i].ID > transactions[j].ID
	})

	return transactions, nil
}

func (s *Store) Update(ctx context.Context, transaction *domain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.transactions[transaction.ID]; !ok {
		return domain.ErrTransactionNotFound
	}
	s.transactions[transaction.ID] = *transaction

	return nil
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.transactions[id]; !ok {
		return domain.ErrTransactionNotFound
	}
	delete(s.transactions, id)

	return nil
}

// --- usecase.BudgetRepository ---

// BudgetStore adapts Store to usecase.BudgetRepository. Separate adapter
// types keep the method sets of the shared Store from colliding.
type BudgetStore struct {
	store *Store
}

// NewBudgetStore creates a budget view over store.
func NewBudgetStore(store *Store) *BudgetStore {
	return &BudgetStore{store: store}
}

func (s *BudgetStore) Create(ctx context.Context, budget *domain.Budget) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	budget.ID = s.store.allocID()
	s.store.budgets[budget.ID] = *budget

	return nil
}

func (s *BudgetStore) GetByID(ctx context.Context, id int64) (*domain.Budget, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	b, ok := s.store.budgets[id]
	if !ok {
		return nil, domain.ErrBudgetNotFound
	}

	return &b, nil
}

func (s *BudgetStore) List(ctx context.Context) ([]*domain.Budget, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	budgets := make([]*domain.Budget, 0, len(s.store.budgets))
	for _, b := range s.store.budgets {
		b := b
		budgets = append(budgets, &b)
	}
	sort.Slice(budgets, func(i, j int) bool { return budgets[i].ID < budgets[j].ID })

	return budgets, nil
}

func (s *BudgetStore) ListByMonth(ctx context.Context, month string, year int) ([]*domain.Budget, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	var budgets []*domain.Budget
	for _, b := range s.store.budgets {
		if b.Month == month && b.Year == year {
			b := b
			budgets = append(budgets, &b)
		}
	}
	sort.Slice(budgets, func(i, j int) bool { return budgets[i].ID < budgets[j].ID })

	return budgets, nil
}

func (s *BudgetStore) Update(ctx context.Context, budget *domain.Budget) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if _, ok := s.store.budgets[budget.ID]; !ok {
		return domain.ErrBudgetNotFound
	}
	s.store.budgets[budget.ID] = *budget

	return nil
}

func (s *BudgetStore) Delete(ctx context.Context, id int64) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if _, ok := s.store.budgets[id]; !ok {
		return domain.ErrBudgetNotFound
	}
	delete(s.store.budgets, id)

	return nil
}

// --- usecase.GoalRepository ---

// GoalStore adapts Store to usecase.GoalRepository.
type GoalStore struct {
	store *Store
}

// NewGoalStore creates a goal view over store.
func NewGoalStore(store *Store) *GoalStore {
	return &GoalStore{store: store}
}

func (s *GoalStore) Create(ctx context.Context, goal *domain.Goal) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	goal.ID = s.store.allocID()
	s.store.goals[goal.ID] = *goal

	return nil
}

func (s *GoalStore) GetByID(ctx context.Context, id int64) (*domain.Goal, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	g, ok := s.store.goals[id]
	if !ok {
		return nil, domain.ErrGoalNotFound
	}

	return &g, nil
}

// GetByIDForUpdate has the same semantics as GetByID. The store mutex is the
// only lock; there are no row locks to take.
func (s *GoalStore) GetByIDForUpdate(ctx context.Context, tx usecase.StoreTx, id int64) (*domain.Goal, error) {
	return s.GetByID(ctx, id)
}

func (s *GoalStore) List(ctx context.Context) ([]*domain.Goal, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	goals := make([]*domain.Goal, 0, len(s.store.goals))
	for _, g := range s.store.goals {
		g := g
		goals = append(goals, &g)
	}
	sort.Slice(goals, func(i, j int) bool {
		if !goals[i].Deadline.Equal(goals[j].Deadline) {
			return goals[i].Deadline.Before(goals[j].Deadline)
		}
		return goals[i].ID < goals[j].ID
	})

	return goals, nil
}

func (s *GoalStore) Update(ctx context.Context, goal *domain.Goal) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	existing, ok := s.store.goals[goal.ID]
	if !ok {
		return domain.ErrGoalNotFound
	}

	existing.Name = goal.Name
	existing.TargetAmount = goal.TargetAmount
	existing.Deadline = goal.Deadline
	s.store.goals[goal.ID] = existing

	return nil
}

func (s *GoalStore) UpdateCurrentAmount(ctx context.Context, tx usecase.StoreTx, id int64, amount decimal.Decimal) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	g, ok := s.store.goals[id]
	if !ok {
		return domain.ErrGoalNotFound
	}
	g.CurrentAmount = amount
	s.store.goals[id] = g

	return nil
}

func (s *GoalStore) Delete(ctx context.Context, id int64) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if _, ok := s.store.goals[id]; !ok {
		return domain.ErrGoalNotFound
	}
	delete(s.store.goals, id)

	return nil
}

// --- usecase.AccountRepository ---

// AccountStore adapts Store to usecase.AccountRepository.
type AccountStore struct {
	store *Store
}

// NewAccountStore creates a bank account view over store.
func NewAccountStore(store *Store) *AccountStore {
	return &AccountStore{store: store}
}

func (s *AccountStore) Create(ctx context.Context, account *domain.BankAccount) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	account.ID = s.store.allocID()
	s.store.accounts[account.ID] = *account

	return nil
}

func (s *AccountStore) GetByID(ctx context.Context, id int64) (*domain.BankAccount, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	a, ok := s.store.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}

	return &a, nil
}

func (s *AccountStore) List(ctx context.Context) ([]*domain.BankAccount, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	accounts := make([]*domain.BankAccount, 0, len(s.store.accounts))
	for _, a := range s.store.accounts {
		a := a
		accounts = append(accounts, &a)
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].ID < accounts[j].ID })

	return accounts, nil
}

func (s *AccountStore) Update(ctx context.Context, account *domain.BankAccount) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if _, ok := s.store.accounts[account.ID]; !ok {
		return domain.ErrAccountNotFound
	}
	s.store.accounts[account.ID] = *account

	return nil
}

func (s *AccountStore) Delete(ctx context.Context, id int64) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if _, ok := s.store.accounts[id]; !ok {
		return domain.ErrAccountNotFound
	}
	delete(s.store.accounts, id)

	return nil
}

// --- usecase.AuditRepository ---

// AuditStore adapts Store to usecase.AuditRepository.
type AuditStore struct {
	store *Store
}

// NewAuditStore creates an audit log view over store.
func NewAuditStore(store *Store) *AuditStore {
	return &AuditStore{store: store}
}

func (s *AuditStore) Create(ctx context.Context, log *domain.AuditLog) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	s.store.auditLogs = append(s.store.auditLogs, *log)

	return nil
}

// CreateTx appends an audit log entry. The no-op transaction never rolls
// back, so this is the same as Create.
func (s *AuditStore) CreateTx(ctx context.Context, tx usecase.StoreTx, log *domain.AuditLog) error {
	return s.Create(ctx, log)
}

func (s *AuditStore) List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	var logs []*domain.AuditLog
	for i := len(s.store.auditLogs) - 1; i >= 0; i-- {
		log := s.store.auditLogs[i]

		if filter.Action != "" && log.Action != filter.Action {
			continue
		}
		if filter.ResourceType != "" && log.ResourceType != filter.ResourceType {
			continue
		}
		if filter.ResourceID != "" && log.ResourceID != filter.ResourceID {
			continue
		}
		if filter.StartDate != nil && log.CreatedAt.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && log.CreatedAt.After(*filter.EndDate) {
			continue
		}

		logs = append(logs, &log)
	}

	if filter.Offset > 0 {
		if filter.Offset >= len(logs) {
			return nil, nil
		}
		logs = logs[filter.Offset:]
	}
	if filter.Limit > 0 && len(logs) > filter.Limit {
		logs = logs[:filter.Limit]
	}

	return logs, nil
}

// --- usecase.TxManager ---

// TxManager is a no-op transaction manager. The store mutex already
// serializes every mutation.
type TxManager struct{}

// NewTxManager creates a no-op TxManager.
func NewTxManager() *TxManager {
	return &TxManager{}
}

func (m *TxManager) Begin(ctx context.Context) (usecase.StoreTx, error) {
	return noopTx{}, nil
}

type noopTx struct{}

func (noopTx) Commit(ctx context.Context) error   { return nil }
func (noopTx) Rollback(ctx context.Context) error { return nil }

// --- usecase.Retrier ---

// Retrier runs the operation once. In-memory operations have no transient
// failure modes worth retrying.
type Retrier struct{}

// NewRetrier creates a single-shot Retrier.
func NewRetrier() *Retrier {
	return &Retrier{}
}

func (r *Retrier) Retry(ctx context.Context, operation func() error) error {
	return operation()
}
