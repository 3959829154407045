package memory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apper-canvas/pennywise/internal/domain"
)

func TestStoreTransactionCRUD(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	transaction := &domain.Transaction{
		Amount:      decimal.NewFromFloat(12.34),
		Type:        domain.TypeExpense,
		Category:    "Food & Dining",
		Description: "Lunch",
		Date:        time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		CreatedAt:   time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC),
	}

	require.NoError(t, store.Create(ctx, transaction))
	require.NotZero(t, transaction.ID)

	got, err := store.GetByID(ctx, transaction.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lunch", got.Description)
	assert.True(t, got.Amount.Equal(decimal.NewFromFloat(12.34)))

	got.Description = "Lunch with tip"
	require.NoError(t, store.Update(ctx, got))

	updated, err := store.GetByID(ctx, transaction.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lunch with tip", updated.Description)

	require.NoError(t, store.Delete(ctx, transaction.ID))

	_, err = store.GetByID(ctx, transaction.ID)
	assert.ErrorIs(t, err, domain.ErrTransactionNotFound)
	assert.ErrorIs(t, store.Delete(ctx, transaction.ID), domain.ErrTransactionNotFound)
}

func TestStoreListOrdersNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	dates := []time.Time{
		time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
	}
	for _, d := range dates {
		require.NoError(t, store.Create(ctx, &domain.Transaction{
			Amount: decimal.NewFromInt(1), Type: domain.TypeExpense,
			Category: "Other", Description: "x", Date: d, CreatedAt: d,
		}))
	}

	transactions, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, transactions, 3)
	assert.Equal(t, dates[1], transactions[0].Date)
	assert.Equal(t, dates[2], transactions[1].Date)
	assert.Equal(t, dates[0], transactions[2].Date)
}

func TestStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	transaction := &domain.Transaction{
		Amount: decimal.NewFromInt(10), Type: domain.TypeExpense,
		Category: "Other", Description: "original",
		Date:      time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		CreatedAt: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.Create(ctx, transaction))

	got, err := store.GetByID(ctx, transaction.ID)
	require.NoError(t, err)
	got.Description = "mutated"

	again, err := store.GetByID(ctx, transaction.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", again.Description)
}

func TestGoalStoreUpdateCurrentAmount(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	goals := NewGoalStore(store)

	goal := &domain.Goal{
		Name:          "Vacation",
		TargetAmount:  decimal.NewFromInt(1000),
		CurrentAmount: decimal.NewFromInt(100),
		Deadline:      time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
		CreatedAt:     time.Now().UTC(),
	}
	require.NoError(t, goals.Create(ctx, goal))

	tx, err := NewTxManager().Begin(ctx)
	require.NoError(t, err)

	require.NoError(t, goals.UpdateCurrentAmount(ctx, tx, goal.ID, decimal.NewFromInt(250)))
	require.NoError(t, tx.Commit(ctx))

	got, err := goals.GetByID(ctx, goal.ID)
	require.NoError(t, err)
	assert.True(t, got.CurrentAmount.Equal(decimal.NewFromInt(250)))
}

func TestGoalStoreUpdatePreservesProgress(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	goals := NewGoalStore(store)

	goal := &domain.Goal{
		Name:          "Car",
		TargetAmount:  decimal.NewFromInt(5000),
		CurrentAmount: decimal.NewFromInt(750),
		Deadline:      time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
		CreatedAt:     time.Now().UTC(),
	}
	require.NoError(t, goals.Create(ctx, goal))

	require.NoError(t, goals.Update(ctx, &domain.Goal{
		ID:           goal.ID,
		Name:         "New car",
		TargetAmount: decimal.NewFromInt(6000),
		Deadline:     time.Date(2031, 1, 1, 0, 0, 0, 0, time.UTC),
	}))

	got, err := goals.GetByID(ctx, goal.ID)
	require.NoError(t, err)
	assert.Equal(t, "New car", got.Name)
	assert.True(t, got.CurrentAmount.Equal(decimal.NewFromInt(750)))
}

func TestBudgetStoreListByMonth(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	budgets := NewBudgetStore(store)

	seed := []*domain.Budget{
		{CategoryID: "Food & Dining", Amount: decimal.NewFromInt(500), Month: "03", Year: 2024},
		{CategoryID: "Transportation", Amount: decimal.NewFromInt(200), Month: "03", Year: 2024},
		{CategoryID: "Food & Dining", Amount: decimal.NewFromInt(550), Month: "04", Year: 2024},
	}
	for _, b := range seed {
		require.NoError(t, budgets.Create(ctx, b))
	}

	march, err := budgets.ListByMonth(ctx, "03", 2024)
	require.NoError(t, err)
	assert.Len(t, march, 2)

	april, err := budgets.ListByMonth(ctx, "04", 2024)
	require.NoError(t, err)
	assert.Len(t, april, 1)
}

func TestAuditStoreFilters(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	audits := NewAuditStore(store)

	logs := []*domain.AuditLog{
		{ID: "a", Action: "transaction.create", ResourceType: "transaction", ResourceID: "1", CreatedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "b", Action: "transaction.delete", ResourceType: "transaction", ResourceID: "1", CreatedAt: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)},
		{ID: "c", Action: "goal.create", ResourceType: "goal", ResourceID: "2", CreatedAt: time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC)},
	}
	for _, l := range logs {
		require.NoError(t, audits.Create(ctx, l))
	}

	all, err := audits.List(ctx, domain.AuditFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	// Newest first.
	assert.Equal(t, "c", all[0].ID)

	transactionsOnly, err := audits.List(ctx, domain.AuditFilter{ResourceType: "transaction"})
	require.NoError(t, err)
	assert.Len(t, transactionsOnly, 2)

	limited, err := audits.List(ctx, domain.AuditFilter{Limit: 1})
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "c", limited[0].ID)
}
