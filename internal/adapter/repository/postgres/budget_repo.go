package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/apper-canvas/pennywise/internal/domain"
)

// BudgetRepository implements usecase.BudgetRepository.
type BudgetRepository struct {
	pool *pgxpool.Pool
}

// NewBudgetRepository creates a new BudgetRepository.
func NewBudgetRepository(pool *pgxpool.Pool) *BudgetRepository {
	return &BudgetRepository{pool: pool}
}

// Create inserts a budget. The database assigns the ID.
func (r *BudgetRepository) Create(ctx context.Context, budget *domain.Budget) error {
	query := `
		INSERT INTO budgets (category_id, amount, month, year)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	return r.pool.QueryRow(ctx, query,
		budget.CategoryID,
		decimalToNumeric(budget.Amount),
		budget.Month,
		budget.Year,
	).Scan(&budget.ID)
}

// GetByID retrieves a budget by ID.
func (r *BudgetRepository) GetByID(ctx context.Context, id int64) (*domain.Budget, error) {
	query := `
		SELECT id, category_id, amount, month, year
		FROM budgets
		WHERE id = $1
	`

	budget, err := scanBudget(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBudgetNotFound
		}
		return nil, err
	}

	return budget, nil
}

// List retrieves all budgets.
func (r *BudgetRepository) List(ctx context.Context) ([]*domain.Budget, error) {
	query := `
		SELECT id, category_id, amount, month, year
		FROM budgets
		ORDER BY year DESC, month DESC, category_id
	`

	return r.queryBudgets(ctx, query)
}

// ListByMonth retrieves all budgets for one calendar month.
func (r *BudgetRepository) ListByMonth(ctx context.Context, month string, year int) ([]*domain.Budget, error) {
	query := `
		SELECT id, category_id, amount, month, year
		FROM budgets
		WHERE month = $1 AND year = $2
		ORDER BY category_id
	`

	return r.queryBudgets(ctx, query, month, year)
}

// Update replaces a budget's mutable fields.
func (r *BudgetRepository) Update(ctx context.Context, budget *domain.Budget) error {
	query := `
		UPDATE budgets
		SET category_id = $2, amount = $3, month = $4, year = $5
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		budget.ID,
		budget.CategoryID,
		decimalToNumeric(budget.Amount),
		budget.Month,
		budget.Year,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBudgetNotFound
	}

	return nil
}

// Delete removes a budget.
func (r *BudgetRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM budgets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBudgetNotFound
	}

	return nil
}

func (r *BudgetRepository) queryBudgets(ctx context.Context, query string, args ...any) ([]*domain.Budget, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var budgets []*domain.Budget
	for rows.Next() {
		budget, err := scanBudget(rows)
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, budget)
	}

	return budgets, rows.Err()
}

func scanBudget(row pgx.Row) (*domain.Budget, error) {
	var (
		budget domain.Budget
		amount pgtype.Numeric
	)

	err := row.Scan(&budget.ID, &budget.CategoryID, &amount, &budget.Month, &budget.Year)
	if err != nil {
		return nil, err
	}

	budget.Amount = numericToDecimal(amount)

	return &budget, nil
}
