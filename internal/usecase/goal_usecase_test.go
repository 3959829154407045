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

func newGoalUseCase(goalRepo *mocks.MockGoalRepository) *usecase.GoalUseCase {
	return usecase.NewGoalUseCase(goalRepo, mocks.NewMockAuditRepository(), mocks.NewMockTxManager(), mocks.NewMockRetrier(), mocks.NewMockIDGenerator())
}

func futureDeadline() time.Time {
	return time.Now().UTC().AddDate(1, 0, 0)
}

func TestCreateGoal(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		input   usecase.CreateGoalInput
		wantErr error
	}{
		{
			name:  "valid",
			input: usecase.CreateGoalInput{Name: "Emergency fund", TargetAmount: decimal.NewFromInt(5000), Deadline: futureDeadline()},
		},
		{
			name:    "empty name",
			input:   usecase.CreateGoalInput{Name: "", TargetAmount: decimal.NewFromInt(5000), Deadline: futureDeadline()},
			wantErr: domain.ErrInvalidGoalName,
		},
		{
			name:    "zero target",
			input:   usecase.CreateGoalInput{Name: "Emergency fund", TargetAmount: decimal.Zero, Deadline: futureDeadline()},
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name:    "negative starting amount",
			input:   usecase.CreateGoalInput{Name: "Emergency fund", TargetAmount: decimal.NewFromInt(5000), CurrentAmount: decimal.NewFromInt(-10), Deadline: futureDeadline()},
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name:    "past deadline",
			input:   usecase.CreateGoalInput{Name: "Emergency fund", TargetAmount: decimal.NewFromInt(5000), Deadline: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)},
			wantErr: domain.ErrPastDeadline,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newGoalUseCase(mocks.NewMockGoalRepository())

			got, err := uc.CreateGoal(ctx, tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("CreateGoal() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("CreateGoal() error = %v", err)
			}
			if got.ID == 0 {
				t.Errorf("CreateGoal() did not assign an ID")
			}
		})
	}
}

func TestUpdateProgress(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		current int64
		delta   int64
		want    int64
	}{
		{"contribution", 100, 50, 150},
		{"withdrawal", 100, -30, 70},
		{"over withdrawal clamps to zero", 30, -50, 0},
		{"past the target is allowed", 90, 500, 590},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			goalRepo := mocks.NewMockGoalRepository()
			uc := newGoalUseCase(goalRepo)

			created, err := uc.CreateGoal(ctx, usecase.CreateGoalInput{
				Name:          "Vacation",
				TargetAmount:  decimal.NewFromInt(1000),
				CurrentAmount: decimal.NewFromInt(tt.current),
				Deadline:      futureDeadline(),
			})
			if err != nil {
				t.Fatalf("seed: %v", err)
			}

			updated, err := uc.UpdateProgress(ctx, created.ID, decimal.NewFromInt(tt.delta))
			if err != nil {
				t.Fatalf("UpdateProgress() error = %v", err)
			}
			if !updated.CurrentAmount.Equal(decimal.NewFromInt(tt.want)) {
				t.Errorf("CurrentAmount = %s, want %d", updated.CurrentAmount, tt.want)
			}

			stored, err := uc.GetGoal(ctx, created.ID)
			if err != nil {
				t.Fatalf("GetGoal() error = %v", err)
			}
			if !stored.CurrentAmount.Equal(decimal.NewFromInt(tt.want)) {
				t.Errorf("stored CurrentAmount = %s, want %d", stored.CurrentAmount, tt.want)
			}
		})
	}
}

func TestUpdateProgress_RetriesTransientFailure(t *testing.T) {
	ctx := context.Background()
	goalRepo := mocks.NewMockGoalRepository()

	transient := errors.New("deadlock detected")
	attempts := 0
	goalRepo.GetByIDForUpdateFunc = func(ctx context.Context, tx usecase.StoreTx, id int64) (*domain.Goal, error) {
		attempts++
		if attempts == 1 {
			return nil, transient
		}
		return goalRepo.GetByID(ctx, id)
	}

	retrier := mocks.NewMockRetrier()
	retrier.RetryFunc = func(ctx context.Context, operation func() error) error {
		var err error
		for i := 0; i < 3; i++ {
			if err = operation(); err == nil {
				return nil
			}
		}
		return err
	}

	uc := usecase.NewGoalUseCase(goalRepo, mocks.NewMockAuditRepository(), mocks.NewMockTxManager(), retrier, mocks.NewMockIDGenerator())

	created, err := uc.CreateGoal(ctx, usecase.CreateGoalInput{
		Name:         "Laptop",
		TargetAmount: decimal.NewFromInt(2000),
		Deadline:     futureDeadline(),
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	updated, err := uc.UpdateProgress(ctx, created.ID, decimal.NewFromInt(100))
	if err != nil {
		t.Fatalf("UpdateProgress() error = %v", err)
	}
	if attempts != 2 {
		t.Errorf("attempts = %d, want 2", attempts)
	}
	if !updated.CurrentAmount.Equal(decimal.NewFromInt(100)) {
		t.Errorf("CurrentAmount = %s, want 100", updated.CurrentAmount)
	}
}

func TestUpdateProgress_AuditFailureRollsBack(t *testing.T) {
	ctx := context.Background()
	goalRepo := mocks.NewMockGoalRepository()

	auditErr := errors.New("audit insert failed")
	auditRepo := mocks.NewMockAuditRepository()
	auditRepo.CreateTxFunc = func(ctx context.Context, tx usecase.StoreTx, log *domain.AuditLog) error {
		return auditErr
	}

	var committed, rolledBack bool
	txManager := mocks.NewMockTxManager()
	txManager.BeginFunc = func(ctx context.Context) (usecase.StoreTx, error) {
		return &mocks.MockStoreTx{
			CommitFunc:   func(ctx context.Context) error { committed = true; return nil },
			RollbackFunc: func(ctx context.Context) error { rolledBack = true; return nil },
		}, nil
	}

	uc := usecase.NewGoalUseCase(goalRepo, auditRepo, txManager, mocks.NewMockRetrier(), mocks.NewMockIDGenerator())

	created, err := uc.CreateGoal(ctx, usecase.CreateGoalInput{
		Name:         "Bike",
		TargetAmount: decimal.NewFromInt(800),
		Deadline:     futureDeadline(),
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	if _, err := uc.UpdateProgress(ctx, created.ID, decimal.NewFromInt(25)); !errors.Is(err, auditErr) {
		t.Fatalf("UpdateProgress() error = %v, want %v", err, auditErr)
	}
	if committed {
		t.Errorf("transaction committed after failed audit write")
	}
	if !rolledBack {
		t.Errorf("transaction not rolled back")
	}
}

func TestUpdateProgress_RecordsAuditEntry(t *testing.T) {
	ctx := context.Background()
	goalRepo := mocks.NewMockGoalRepository()
	auditRepo := mocks.NewMockAuditRepository()
	uc := usecase.NewGoalUseCase(goalRepo, auditRepo, mocks.NewMockTxManager(), mocks.NewMockRetrier(), mocks.NewMockIDGenerator())

	created, err := uc.CreateGoal(ctx, usecase.CreateGoalInput{
		Name:         "Bike",
		TargetAmount: decimal.NewFromInt(800),
		Deadline:     futureDeadline(),
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	if _, err := uc.UpdateProgress(ctx, created.ID, decimal.NewFromInt(25)); err != nil {
		t.Fatalf("UpdateProgress() error = %v", err)
	}

	if len(auditRepo.Logs) != 2 {
		t.Fatalf("audit logs = %d, want 2", len(auditRepo.Logs))
	}
	last := auditRepo.Logs[len(auditRepo.Logs)-1]
	if last.Action != string(domain.AuditActionGoalProgress) {
		t.Errorf("audit action = %q", last.Action)
	}
}

func TestUpdateProgress_NotFound(t *testing.T) {
	uc := newGoalUseCase(mocks.NewMockGoalRepository())

	_, err := uc.UpdateProgress(context.Background(), 7, decimal.NewFromInt(10))
	if !errors.Is(err, domain.ErrGoalNotFound) {
		t.Errorf("UpdateProgress(missing) error = %v, want ErrGoalNotFound", err)
	}
}

func TestUpdateGoal_PreservesCurrentAmount(t *testing.T) {
	ctx := context.Background()
	uc := newGoalUseCase(mocks.NewMockGoalRepository())

	created, err := uc.CreateGoal(ctx, usecase.CreateGoalInput{
		Name:          "House deposit",
		TargetAmount:  decimal.NewFromInt(20000),
		CurrentAmount: decimal.NewFromInt(1500),
		Deadline:      futureDeadline(),
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	updated, err := uc.UpdateGoal(ctx, created.ID, usecase.UpdateGoalInput{
		Name:         "House deposit (revised)",
		TargetAmount: decimal.NewFromInt(25000),
		Deadline:     created.Deadline,
	})
	if err != nil {
		t.Fatalf("UpdateGoal() error = %v", err)
	}
	if !updated.CurrentAmount.Equal(decimal.NewFromInt(1500)) {
		t.Errorf("CurrentAmount = %s, want 1500", updated.CurrentAmount)
	}
	if updated.Name != "House deposit (revised)" {
		t.Errorf("Name = %q", updated.Name)
	}
}

func TestGoalStats(t *testing.T) {
	ctx := context.Background()
	uc := newGoalUseCase(mocks.NewMockGoalRepository())

	seed := []usecase.CreateGoalInput{
		{Name: "A", TargetAmount: decimal.NewFromInt(100), CurrentAmount: decimal.NewFromInt(100), Deadline: futureDeadline()},
		{Name: "B", TargetAmount: decimal.NewFromInt(200), CurrentAmount: decimal.NewFromInt(50), Deadline: futureDeadline()},
	}
	for _, in := range seed {
		if _, err := uc.CreateGoal(ctx, in); err != nil {
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
	if !stats.TotalSaved.Equal(decimal.NewFromInt(150)) {
		t.Errorf("TotalSaved = %s, want 150", stats.TotalSaved)
	}
	if !stats.TotalTarget.Equal(decimal.NewFromInt(300)) {
		t.Errorf("TotalTarget = %s, want 300", stats.TotalTarget)
	}
	if !stats.Progress.Equal(decimal.NewFromInt(50)) {
		t.Errorf("Progress = %s, want 50", stats.Progress)
	}
}
