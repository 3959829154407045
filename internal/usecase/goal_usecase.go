package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/apper-canvas/pennywise/internal/domain"
	"github.com/apper-canvas/pennywise/internal/infrastructure/metrics"
)

// GoalUseCase handles savings goal business logic.
type GoalUseCase struct {
	goalRepo  GoalRepository
	auditRepo AuditRepository
	txManager TxManager
	retrier   Retrier
	idGen     IDGenerator
}

// NewGoalUseCase creates a new GoalUseCase.
func NewGoalUseCase(goalRepo GoalRepository, auditRepo AuditRepository, txManager TxManager, retrier Retrier, idGen IDGenerator) *GoalUseCase {
	return &GoalUseCase{
		goalRepo:  goalRepo,
		auditRepo: auditRepo,
		txManager: txManager,
		retrier:   retrier,
		idGen:     idGen,
	}
}

// CreateGoalInput represents input for creating a goal.
type CreateGoalInput struct {
	Name          string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	Deadline      time.Time
}

// CreateGoal validates and stores a new goal. The deadline must be in the
// future at creation.
func (uc *GoalUseCase) CreateGoal(ctx context.Context, input CreateGoalInput) (*domain.Goal, error) {
	now := time.Now().UTC()

	goal := &domain.Goal{
		Name:          input.Name,
		TargetAmount:  input.TargetAmount,
		CurrentAmount: input.CurrentAmount,
		Deadline:      input.Deadline,
		CreatedAt:     now,
	}

	if goal.CurrentAmount.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}

	if err := goal.Validate(now); err != nil {
		return nil, err
	}

	if err := uc.goalRepo.Create(ctx, goal); err != nil {
		return nil, err
	}

	uc.audit(ctx, domain.AuditActionGoalCreate, goal.ID, nil, goal)

	metrics.GoalEvent("create")

	return goal, nil
}

// GetGoal retrieves a goal by ID.
func (uc *GoalUseCase) GetGoal(ctx context.Context, id int64) (*domain.Goal, error) {
	return uc.goalRepo.GetByID(ctx, id)
}

// ListGoals lists all goals.
func (uc *GoalUseCase) ListGoals(ctx context.Context) ([]*domain.Goal, error) {
	return uc.goalRepo.List(ctx)
}

// UpdateGoalInput represents input for updating a goal. CurrentAmount is not
// part of it; progress changes go through UpdateProgress.
type UpdateGoalInput struct {
	Name         string
	TargetAmount decimal.Decimal
	Deadline     time.Time
}

// UpdateGoal replaces the mutable fields of an existing goal. The deadline
// of an existing goal may already have passed, so only the target and name
// are re-validated here.
func (uc *GoalUseCase) UpdateGoal(ctx context.Context, id int64, input UpdateGoalInput) (*domain.Goal, error) {
	existing, err := uc.goalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := &domain.Goal{
		ID:            existing.ID,
		Name:          input.Name,
		TargetAmount:  input.TargetAmount,
		CurrentAmount: existing.CurrentAmount,
		Deadline:      input.Deadline,
		CreatedAt:     existing.CreatedAt,
	}

	if updated.Name == "" {
		return nil, domain.ErrInvalidGoalName
	}
	if updated.TargetAmount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}

	if err := uc.goalRepo.Update(ctx, updated); err != nil {
		return nil, err
	}

	uc.audit(ctx, domain.AuditActionGoalUpdate, id, existing, updated)

	metrics.GoalEvent("update")

	return updated, nil
}

// DeleteGoal removes a goal.
func (uc *GoalUseCase) DeleteGoal(ctx context.Context, id int64) error {
	existing, err := uc.goalRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := uc.goalRepo.Delete(ctx, id); err != nil {
		return err
	}

	uc.audit(ctx, domain.AuditActionGoalDelete, id, existing, nil)

	metrics.GoalEvent("delete")

	return nil
}

// UpdateProgress applies a contribution (positive delta) or withdrawal
// (negative delta) to a goal's saved amount. The balance clamps at zero; an
// over-withdrawal is not an error. The read-modify-write runs under a row
// lock and retries on transient store failures.
func (uc *GoalUseCase) UpdateProgress(ctx context.Context, id int64, delta decimal.Decimal) (*domain.Goal, error) {
	var updated *domain.Goal

	err := uc.retrier.Retry(ctx, func() error {
		txCtx, cancel := context.WithTimeout(ctx, DefaultTxTimeout)
		defer cancel()

		tx, err := uc.txManager.Begin(txCtx)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback(txCtx) }()

		goal, err := uc.goalRepo.GetByIDForUpdate(txCtx, tx, id)
		if err != nil {
			return err
		}

		next := goal.ApplyProgressDelta(delta)
		if err := uc.goalRepo.UpdateCurrentAmount(txCtx, tx, id, next); err != nil {
			return err
		}

		after := *goal
		after.CurrentAmount = next

		// The audit entry rides the same transaction as the balance
		// change; neither lands without the other.
		if err := uc.auditTx(txCtx, tx, domain.AuditActionGoalProgress, id, goal, &after); err != nil {
			return err
		}

		if err := tx.Commit(txCtx); err != nil {
			return err
		}

		updated = &after

		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.GoalEvent("progress")

	return updated, nil
}

// Stats aggregates savings progress across all goals.
func (uc *GoalUseCase) Stats(ctx context.Context) (*domain.GoalStats, error) {
	goals, err := uc.goalRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	stats := domain.SummarizeGoals(goals)

	return &stats, nil
}

// audit records the operation after the store write has succeeded. The
// write is best-effort; a failed audit entry never undoes the mutation.
func (uc *GoalUseCase) audit(ctx context.Context, action domain.AuditAction, id int64, before, after any) {
	_ = uc.auditRepo.Create(ctx, uc.auditLog(action, id, before, after))
}

// auditTx records the operation inside an open store transaction.
func (uc *GoalUseCase) auditTx(ctx context.Context, tx StoreTx, action domain.AuditAction, id int64, before, after any) error {
	return uc.auditRepo.CreateTx(ctx, tx, uc.auditLog(action, id, before, after))
}

func (uc *GoalUseCase) auditLog(action domain.AuditAction, id int64, before, after any) *domain.AuditLog {
	return &domain.AuditLog{
		ID:           uc.idGen.Generate(),
		Action:       string(action),
		ResourceType: "goal",
		ResourceID:   formatID(id),
		BeforeState:  domain.MarshalState(before),
		AfterState:   domain.MarshalState(after),
		Status:       string(domain.AuditStatusSuccess),
		CreatedAt:    time.Now().UTC(),
	}
}
