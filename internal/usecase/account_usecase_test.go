package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/apper-canvas/pennywise/internal/domain"
	"github.com/apper-canvas/pennywise/internal/usecase"
	"github.com/apper-canvas/pennywise/internal/usecase/mocks"
)

func TestCreateAccount(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		input   usecase.CreateAccountInput
		wantErr error
	}{
		{
			name:  "valid",
			input: usecase.CreateAccountInput{AccountName: "Everyday", InstitutionName: "First Bank", Balance: decimal.NewFromInt(1200)},
		},
		{
			name:    "empty account name",
			input:   usecase.CreateAccountInput{AccountName: "", InstitutionName: "First Bank"},
			wantErr: domain.ErrInvalidAccountField,
		},
		{
			name:    "empty institution",
			input:   usecase.CreateAccountInput{AccountName: "Everyday", InstitutionName: ""},
			wantErr: domain.ErrInvalidAccountField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := usecase.NewAccountUseCase(mocks.NewMockAccountRepository(), mocks.NewMockAuditRepository(), mocks.NewMockIDGenerator())

			got, err := uc.CreateAccount(ctx, tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("CreateAccount() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("CreateAccount() error = %v", err)
			}
			if got.ID == 0 {
				t.Errorf("CreateAccount() did not assign an ID")
			}
		})
	}
}

func TestUpdateAccount_AuditFailureDoesNotFailUpdate(t *testing.T) {
	ctx := context.Background()
	accountRepo := mocks.NewMockAccountRepository()
	auditRepo := mocks.NewMockAuditRepository()
	uc := usecase.NewAccountUseCase(accountRepo, auditRepo, mocks.NewMockIDGenerator())

	created, err := uc.CreateAccount(ctx, usecase.CreateAccountInput{
		AccountName: "Everyday", InstitutionName: "First Bank", Balance: decimal.NewFromInt(100),
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	auditRepo.CreateFunc = func(ctx context.Context, log *domain.AuditLog) error {
		return errors.New("audit store down")
	}

	updated, err := uc.UpdateAccount(ctx, created.ID, usecase.CreateAccountInput{
		AccountName: "Everyday", InstitutionName: "First Bank", Balance: decimal.NewFromInt(250),
	})
	if err != nil {
		t.Fatalf("UpdateAccount() error = %v", err)
	}
	if !updated.Balance.Equal(decimal.NewFromInt(250)) {
		t.Errorf("Balance = %s, want 250", updated.Balance)
	}

	stored, err := uc.GetAccount(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetAccount() error = %v", err)
	}
	if !stored.Balance.Equal(decimal.NewFromInt(250)) {
		t.Errorf("stored Balance = %s, want 250", stored.Balance)
	}
}

func TestAccountStats(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewAccountUseCase(mocks.NewMockAccountRepository(), mocks.NewMockAuditRepository(), mocks.NewMockIDGenerator())

	seed := []usecase.CreateAccountInput{
		{AccountName: "Everyday", InstitutionName: "First Bank", Balance: decimal.NewFromInt(1200)},
		{AccountName: "Savings", InstitutionName: "First Bank", Balance: decimal.NewFromInt(800)},
	}
	for _, in := range seed {
		if _, err := uc.CreateAccount(ctx, in); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	stats, err := uc.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.Count != 2 {
		t.Errorf("Count = %d, want 2", stats.Count)
	}
	if !stats.TotalBalance.Equal(decimal.NewFromInt(2000)) {
		t.Errorf("TotalBalance = %s, want 2000", stats.TotalBalance)
	}
}
