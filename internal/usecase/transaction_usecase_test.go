package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/apper-canvas/pennywise/internal/domain"
	"github.com/apper-canvas/pennywise/internal/usecase"
	"github.com/apper-canvas/pennywise/internal/usecase/mocks"
)

func newTransactionUseCase(txRepo *mocks.MockTransactionRepository, auditRepo *mocks.MockAuditRepository) *usecase.TransactionUseCase {
	return usecase.NewTransactionUseCase(txRepo, auditRepo, nil, mocks.NewMockIDGenerator())
}

func TestCreateTransaction(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		input   usecase.CreateTransactionInput
		wantErr error
	}{
		{
			name: "valid expense",
			input: usecase.CreateTransactionInput{
				Amount:      decimal.NewFromFloat(42.50),
				Type:        domain.TypeExpense,
				Category:    "Food & Dining",
				Description: "Groceries",
				Date:        time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
			},
		},
		{
			name: "zero amount",
			input: usecase.CreateTransactionInput{
				Amount:      decimal.Zero,
				Type:        domain.TypeExpense,
				Category:    "Food & Dining",
				Description: "Groceries",
				Date:        time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
			},
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name: "unknown category",
			input: usecase.CreateTransactionInput{
				Amount:      decimal.NewFromInt(10),
				Type:        domain.TypeExpense,
				Category:    "Gambling",
				Description: "Chips",
				Date:        time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
			},
			wantErr: domain.ErrInvalidCategory,
		},
		{
			name: "bad type",
			input: usecase.CreateTransactionInput{
				Amount:      decimal.NewFromInt(10),
				Type:        domain.TransactionType("transfer"),
				Category:    "Other",
				Description: "Misc",
				Date:        time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
			},
			wantErr: domain.ErrInvalidType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txRepo := mocks.NewMockTransactionRepository()
			auditRepo := mocks.NewMockAuditRepository()
			uc := newTransactionUseCase(txRepo, auditRepo)

			got, err := uc.CreateTransaction(ctx, tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("CreateTransaction() error = %v, want %v", err, tt.wantErr)
				}
				if len(auditRepo.Logs) != 0 {
					t.Errorf("audit log written for rejected input")
				}
				return
			}
			if err != nil {
				t.Fatalf("CreateTransaction() error = %v", err)
			}
			if got.ID == 0 {
				t.Errorf("CreateTransaction() did not assign an ID")
			}
			if len(auditRepo.Logs) != 1 {
				t.Fatalf("audit logs = %d, want 1", len(auditRepo.Logs))
			}
			if auditRepo.Logs[0].Action != string(domain.AuditActionTransactionCreate) {
				t.Errorf("audit action = %q", auditRepo.Logs[0].Action)
			}
		})
	}
}

func TestListTransactions_Filtering(t *testing.T) {
	ctx := context.Background()
	txRepo := mocks.NewMockTransactionRepository()
	uc := newTransactionUseCase(txRepo, mocks.NewMockAuditRepository())

	seed := []usecase.CreateTransactionInput{
		{Amount: decimal.NewFromInt(3000), Type: domain.TypeIncome, Category: "Investments", Description: "March salary", Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{Amount: decimal.NewFromFloat(4.50), Type: domain.TypeExpense, Category: "Food & Dining", Description: "Morning coffee", Date: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
		{Amount: decimal.NewFromInt(60), Type: domain.TypeExpense, Category: "Transportation", Description: "Fuel", Date: time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC)},
	}
	for _, in := range seed {
		if _, err := uc.CreateTransaction(ctx, in); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	out, err := uc.ListTransactions(ctx, usecase.ListTransactionsInput{
		Criteria: domain.FilterCriteria{SearchTerm: "COFFEE"},
	})
	if err != nil {
		t.Fatalf("ListTransactions() error = %v", err)
	}
	if out.Total != 1 || len(out.Transactions) != 1 {
		t.Fatalf("total = %d, page = %d, want 1/1", out.Total, len(out.Transactions))
	}
	if out.Transactions[0].Description != "Morning coffee" {
		t.Errorf("matched %q", out.Transactions[0].Description)
	}
	if out.ActiveFilters != 1 {
		t.Errorf("ActiveFilters = %d, want 1", out.ActiveFilters)
	}
}

func TestListTransactions_Pagination(t *testing.T) {
	ctx := context.Background()
	txRepo := mocks.NewMockTransactionRepository()
	uc := newTransactionUseCase(txRepo, mocks.NewMockAuditRepository())

	for i := 0; i < 7; i++ {
		_, err := uc.CreateTransaction(ctx, usecase.CreateTransactionInput{
			Amount:      decimal.NewFromInt(int64(i + 1)),
			Type:        domain.TypeExpense,
			Category:    "Other",
			Description: "Item",
			Date:        time.Date(2024, 3, i+1, 0, 0, 0, 0, time.UTC),
		})
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	out, err := uc.ListTransactions(ctx, usecase.ListTransactionsInput{Limit: 3, Offset: 5})
	if err != nil {
		t.Fatalf("ListTransactions() error = %v", err)
	}
	if out.Total != 7 {
		t.Errorf("Total = %d, want 7", out.Total)
	}
	if len(out.Transactions) != 2 {
		t.Errorf("page size = %d, want 2", len(out.Transactions))
	}

	out, err = uc.ListTransactions(ctx, usecase.ListTransactionsInput{Limit: 3, Offset: 100})
	if err != nil {
		t.Fatalf("ListTransactions() error = %v", err)
	}
	if len(out.Transactions) != 0 {
		t.Errorf("page size past end = %d, want 0", len(out.Transactions))
	}
}

func TestUpdateTransaction(t *testing.T) {
	ctx := context.Background()
	txRepo := mocks.NewMockTransactionRepository()
	auditRepo := mocks.NewMockAuditRepository()
	uc := newTransactionUseCase(txRepo, auditRepo)

	created, err := uc.CreateTransaction(ctx, usecase.CreateTransactionInput{
		Amount:      decimal.NewFromInt(20),
		Type:        domain.TypeExpense,
		Category:    "Food & Dining",
		Description: "Lunch",
		Date:        time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	updated, err := uc.UpdateTransaction(ctx, created.ID, usecase.UpdateTransactionInput{
		Amount:      decimal.NewFromInt(25),
		Type:        domain.TypeExpense,
		Category:    "Food & Dining",
		Description: "Lunch with tip",
		Date:        created.Date,
	})
	if err != nil {
		t.Fatalf("UpdateTransaction() error = %v", err)
	}
	if !updated.Amount.Equal(decimal.NewFromInt(25)) {
		t.Errorf("Amount = %s, want 25", updated.Amount)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("CreatedAt changed on update")
	}

	if _, err := uc.UpdateTransaction(ctx, 999, usecase.UpdateTransactionInput{
		Amount:   decimal.NewFromInt(1),
		Type:     domain.TypeExpense,
		Category: "Other", Description: "x",
		Date: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
	}); !errors.Is(err, domain.ErrTransactionNotFound) {
		t.Errorf("UpdateTransaction(missing) error = %v, want ErrTransactionNotFound", err)
	}
}

func TestDeleteTransaction(t *testing.T) {
	ctx := context.Background()
	txRepo := mocks.NewMockTransactionRepository()
	auditRepo := mocks.NewMockAuditRepository()
	uc := newTransactionUseCase(txRepo, auditRepo)

	created, err := uc.CreateTransaction(ctx, usecase.CreateTransactionInput{
		Amount:      decimal.NewFromInt(20),
		Type:        domain.TypeExpense,
		Category:    "Food & Dining",
		Description: "Lunch",
		Date:        time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	if err := uc.DeleteTransaction(ctx, created.ID); err != nil {
		t.Fatalf("DeleteTransaction() error = %v", err)
	}
	if _, err := uc.GetTransaction(ctx, created.ID); !errors.Is(err, domain.ErrTransactionNotFound) {
		t.Errorf("GetTransaction(deleted) error = %v, want ErrTransactionNotFound", err)
	}
	if err := uc.DeleteTransaction(ctx, created.ID); !errors.Is(err, domain.ErrTransactionNotFound) {
		t.Errorf("DeleteTransaction(deleted) error = %v, want ErrTransactionNotFound", err)
	}
}

func TestCreateTransaction_AuditFailureDoesNotFailCreate(t *testing.T) {
	ctx := context.Background()
	txRepo := mocks.NewMockTransactionRepository()
	auditRepo := mocks.NewMockAuditRepository()
	auditRepo.CreateFunc = func(ctx context.Context, log *domain.AuditLog) error {
		return errors.New("audit store down")
	}
	uc := newTransactionUseCase(txRepo, auditRepo)

	created, err := uc.CreateTransaction(ctx, usecase.CreateTransactionInput{
		Amount:      decimal.NewFromInt(10),
		Type:        domain.TypeExpense,
		Category:    "Other",
		Description: "Misc",
		Date:        time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("CreateTransaction() error = %v", err)
	}

	// The transaction persisted; the caller must not see a failure it
	// would retry.
	if _, err := uc.GetTransaction(ctx, created.ID); err != nil {
		t.Errorf("GetTransaction() error = %v", err)
	}
}

func TestDeleteTransaction_AuditFailureDoesNotFailDelete(t *testing.T) {
	ctx := context.Background()
	txRepo := mocks.NewMockTransactionRepository()
	auditRepo := mocks.NewMockAuditRepository()
	uc := newTransactionUseCase(txRepo, auditRepo)

	created, err := uc.CreateTransaction(ctx, usecase.CreateTransactionInput{
		Amount:      decimal.NewFromInt(10),
		Type:        domain.TypeExpense,
		Category:    "Other",
		Description: "Misc",
		Date:        time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	auditRepo.CreateFunc = func(ctx context.Context, log *domain.AuditLog) error {
		return errors.New("audit store down")
	}

	if err := uc.DeleteTransaction(ctx, created.ID); err != nil {
		t.Fatalf("DeleteTransaction() error = %v", err)
	}
	if _, err := uc.GetTransaction(ctx, created.ID); !errors.Is(err, domain.ErrTransactionNotFound) {
		t.Errorf("GetTransaction(deleted) error = %v, want ErrTransactionNotFound", err)
	}
}

func TestCreateTransaction_RepositoryError(t *testing.T) {
	ctx := context.Background()
	txRepo := mocks.NewMockTransactionRepository()
	repoErr := errors.New("connection reset")
	txRepo.CreateFunc = func(ctx context.Context, transaction *domain.Transaction) error {
		return repoErr
	}
	uc := newTransactionUseCase(txRepo, mocks.NewMockAuditRepository())

	_, err := uc.CreateTransaction(ctx, usecase.CreateTransactionInput{
		Amount:      decimal.NewFromInt(10),
		Type:        domain.TypeExpense,
		Category:    "Other",
		Description: "Misc",
		Date:        time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, repoErr) {
		t.Fatalf("CreateTransaction() error = %v, want %v", err, repoErr)
	}
}
