package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/apper-canvas/pennywise/internal/domain"
)

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// Create inserts a transaction. The database assigns the ID.
func (r *TransactionRepository) Create(ctx context.Context, transaction *domain.Transaction) error {
	query := `
		INSERT INTO transactions (amount, type, category, description, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	return r.pool.QueryRow(ctx, query,
		decimalToNumeric(transaction.Amount),
		string(transaction.Type),
		transaction.Category,
		transaction.Description,
		timeToPgDate(transaction.Date),
		timeToPgTimestamptz(transaction.CreatedAt),
	).Scan(&transaction.ID)
}

// GetByID retrieves a transaction by ID.
func (r *TransactionRepository) GetByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	query := `
		SELECT id, amount, type, category, description, date, created_at
		FROM transactions
		WHERE id = $1
	`

	transaction, err := scanTransaction(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}

	return transaction, nil
}

// List retrieves all transactions, newest first.
func (r *TransactionRepository) List(ctx context.Context) ([]*domain.Transaction, error) {
	query := `
		SELECT id, amount, type, category, description, date, created_at
		FROM transactions
		ORDER BY date DESC, id DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []*domain.Transaction
	for rows.Next() {
		transaction, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, transaction)
	}

	return transactions, rows.Err()
}

// Update replaces a transaction's mutable fields.
func (r *TransactionRepository) Update(ctx context.Context, transaction *domain.Transaction) error {
	query := `
		UPDATE transactions
		SET amount = $2, type = $3, category = $4, description = $5, date = $6
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		transaction.ID,
		decimalToNumeric(transaction.Amount),
		string(transaction.Type),
		transaction.Category,
		transaction.Description,
		timeToPgDate(transaction.Date),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}

	return nil
}

// Delete removes a transaction.
func (r *TransactionRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}

	return nil
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var (
		transaction domain.Transaction
		amount      pgtype.Numeric
		txType      string
		date        pgtype.Date
		createdAt   pgtype.Timestamptz
	)

	err := row.Scan(
		&transaction.ID,
		&amount,
		&txType,
		&transaction.Category,
		&transaction.Description,
		&date,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	transaction.Amount = numericToDecimal(amount)
	transaction.Type = domain.TransactionType(txType)
	transaction.Date = date.Time
	transaction.CreatedAt = createdAt.Time

	return &transaction, nil
}
