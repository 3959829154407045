package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/apper-canvas/pennywise/internal/domain"
	"github.com/apper-canvas/pennywise/internal/usecase"
)

// GoalRepository implements usecase.GoalRepository.
type GoalRepository struct {
	pool *pgxpool.Pool
}

// NewGoalRepository creates a new GoalRepository.
func NewGoalRepository(pool *pgxpool.Pool) *GoalRepository {
	return &GoalRepository{pool: pool}
}

// Create inserts a goal. The database assigns the ID.
func (r *GoalRepository) Create(ctx context.Context, goal *domain.Goal) error {
	query := `
		INSERT INTO goals (name, target_amount, current_amount, deadline, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	return r.pool.QueryRow(ctx, query,
		goal.Name,
		decimalToNumeric(goal.TargetAmount),
		decimalToNumeric(goal.CurrentAmount),
		timeToPgDate(goal.Deadline),
		timeToPgTimestamptz(goal.CreatedAt),
	).Scan(&goal.ID)
}

// GetByID retrieves a goal by ID.
func (r *GoalRepository) GetByID(ctx context.Context, id int64) (*domain.Goal, error) {
	query := `
		SELECT id, name, target_amount, current_amount, deadline, created_at
		FROM goals
		WHERE id = $1
	`

	goal, err := scanGoal(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrGoalNotFound
		}
		return nil, err
	}

	return goal, nil
}

// GetByIDForUpdate retrieves a goal under a row lock inside tx.
func (r *GoalRepository) GetByIDForUpdate(ctx context.Context, tx usecase.StoreTx, id int64) (*domain.Goal, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		SELECT id, name, target_amount, current_amount, deadline, created_at
		FROM goals
		WHERE id = $1
		FOR UPDATE
	`

	goal, err := scanGoal(pgxTx.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrGoalNotFound
		}
		return nil, err
	}

	return goal, nil
}

// List retrieves all goals.
func (r *GoalRepository) List(ctx context.Context) ([]*domain.Goal, error) {
	query := `
		SELECT id, name, target_amount, current_amount, deadline, created_at
		FROM goals
		ORDER BY deadline, id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []*domain.Goal
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, goal)
	}

	return goals, rows.Err()
}

// Update replaces a goal's mutable fields. CurrentAmount is left alone;
// progress changes go through UpdateCurrentAmount.
func (r *GoalRepository) Update(ctx context.Context, goal *domain.Goal) error {
	query := `
		UPDATE goals
		SET name = $2, target_amount = $3, deadline = $4
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		goal.ID,
		goal.Name,
		decimalToNumeric(goal.TargetAmount),
		timeToPgDate(goal.Deadline),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrGoalNotFound
	}

	return nil
}

// UpdateCurrentAmount sets a goal's saved balance inside tx.
func (r *GoalRepository) UpdateCurrentAmount(ctx context.Context, tx usecase.StoreTx, id int64, amount decimal.Decimal) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx,
		`UPDATE goals SET current_amount = $2 WHERE id = $1`,
		id, decimalToNumeric(amount),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrGoalNotFound
	}

	return nil
}

// Delete removes a goal.
func (r *GoalRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM goals WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrGoalNotFound
	}

	return nil
}

func scanGoal(row pgx.Row) (*domain.Goal, error) {
	var (
		goal          domain.Goal
		targetAmount  pgtype.Numeric
		currentAmount pgtype.Numeric
		deadline      pgtype.Date
		createdAt     pgtype.Timestamptz
	)

	err := row.Scan(&goal.ID, &goal.Name, &targetAmount, &currentAmount, &deadline, &createdAt)
	if err != nil {
		return nil, err
	}

	goal.TargetAmount = numericToDecimal(targetAmount)
	goal.CurrentAmount = numericToDecimal(currentAmount)
	goal.Deadline = deadline.Time
	goal.CreatedAt = createdAt.Time

	return &goal, nil
}
