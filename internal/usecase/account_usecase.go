package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/apper-canvas/pennywise/internal/domain"
	"github.com/apper-canvas/pennywise/internal/infrastructure/metrics"
)

// AccountUseCase handles bank account business logic.
type AccountUseCase struct {
	accountRepo AccountRepository
	auditRepo   AuditRepository
	idGen       IDGenerator
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(accountRepo AccountRepository, auditRepo AuditRepository, idGen IDGenerator) *AccountUseCase {
	return &AccountUseCase{
		accountRepo: accountRepo,
		auditRepo:   auditRepo,
		idGen:       idGen,
	}
}

// CreateAccountInput represents input for creating a bank account.
type CreateAccountInput struct {
	AccountName     string
	InstitutionName string
	AccountNumber   string
	Balance         decimal.Decimal
}

// CreateAccount validates and stores a new bank account.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.BankAccount, error) {
	account := &domain.BankAccount{
		AccountName:     input.AccountName,
		InstitutionName: input.InstitutionName,
		AccountNumber:   input.AccountNumber,
		Balance:         input.Balance,
	}

	if err := account.Validate(); err != nil {
		return nil, err
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	uc.audit(ctx, domain.AuditActionAccountCreate, account.ID, nil, account)

	metrics.AccountEvent("create")

	return account, nil
}

// GetAccount retrieves a bank account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id int64) (*domain.BankAccount, error) {
	return uc.accountRepo.GetByID(ctx, id)
}

// ListAccounts lists all bank accounts.
func (uc *AccountUseCase) ListAccounts(ctx context.Context) ([]*domain.BankAccount, error) {
	return uc.accountRepo.List(ctx)
}

// UpdateAccount replaces the mutable fields of an existing bank account.
func (uc *AccountUseCase) UpdateAccount(ctx context.Context, id int64, input CreateAccountInput) (*domain.BankAccount, error) {
	existing, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := &domain.BankAccount{
		ID:              existing.ID,
		AccountName:     input.AccountName,
		InstitutionName: input.InstitutionName,
		AccountNumber:   input.AccountNumber,
		Balance:         input.Balance,
	}

	if err := updated.Validate(); err != nil {
		return nil, err
	}

	if err := uc.accountRepo.Update(ctx, updated); err != nil {
		return nil, err
	}

	uc.audit(ctx, domain.AuditActionAccountUpdate, id, existing, updated)

	metrics.AccountEvent("update")

	return updated, nil
}

// DeleteAccount removes a bank account.
func (uc *AccountUseCase) DeleteAccount(ctx context.Context, id int64) error {
	existing, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := uc.accountRepo.Delete(ctx, id); err != nil {
		return err
	}

	uc.audit(ctx, domain.AuditActionAccountDelete, id, existing, nil)

	metrics.AccountEvent("delete")

	return nil
}

// Stats aggregates balances across all bank accounts.
func (uc *AccountUseCase) Stats(ctx context.Context) (*domain.AccountStats, error) {
	accounts, err := uc.accountRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	stats := domain.SummarizeAccounts(accounts)

	return &stats, nil
}

// audit records the operation after the store write has succeeded. The
// write is best-effort; a failed audit entry never undoes the mutation.
func (uc *AccountUseCase) audit(ctx context.Context, action domain.AuditAction, id int64, before, after any) {
	_ = uc.auditRepo.Create(ctx, &domain.AuditLog{
		ID:           uc.idGen.Generate(),
		Action:       string(action),
		ResourceType: "account",
		ResourceID:   formatID(id),
		BeforeState:  domain.MarshalState(before),
		AfterState:   domain.MarshalState(after),
		Status:       string(domain.AuditStatusSuccess),
		CreatedAt:    time.Now().UTC(),
	})
}
