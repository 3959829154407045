package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/apper-canvas/pennywise/internal/domain"
)

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

// Create inserts a bank account. The database assigns the ID.
func (r *AccountRepository) Create(ctx context.Context, account *domain.BankAccount) error {
	query := `
		INSERT INTO bank_accounts (account_name, institution_name, account_number, balance)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	return r.pool.QueryRow(ctx, query,
		account.AccountName,
		account.InstitutionName,
		account.AccountNumber,
		decimalToNumeric(account.Balance),
	).Scan(&account.ID)
}

// GetByID retrieves a bank account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*domain.BankAccount, error) {
	query := `
		SELECT id, account_name, institution_name, account_number, balance
		FROM bank_accounts
		WHERE id = $1
	`

	account, err := scanAccount(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}

	return account, nil
}

// List retrieves all bank accounts.
func (r *AccountRepository) List(ctx context.Context) ([]*domain.BankAccount, error) {
	query := `
		SELECT id, account_name, institution_name, account_number, balance
		FROM bank_accounts
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*domain.BankAccount
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}

	return accounts, rows.Err()
}

// Update replaces a bank account's mutable fields.
func (r *AccountRepository) Update(ctx context.Context, account *domain.BankAccount) error {
	query := `
		UPDATE bank_accounts
		SET account_name = $2, institution_name = $3, account_number = $4, balance = $5
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		account.ID,
		account.AccountName,
		account.InstitutionName,
		account.AccountNumber,
		decimalToNumeric(account.Balance),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}

// Delete removes a bank account.
func (r *AccountRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM bank_accounts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}

func scanAccount(row pgx.Row) (*domain.BankAccount, error) {
	var (
		account domain.BankAccount
		balance pgtype.Numeric
	)

	err := row.Scan(&account.ID, &account.AccountName, &account.InstitutionName, &account.AccountNumber, &balance)
	if err != nil {
		return nil, err
	}

	account.Balance = numericToDecimal(balance)

	return &account, nil
}
