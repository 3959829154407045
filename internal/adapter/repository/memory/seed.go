package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/apper-canvas/pennywise/internal/domain"
)

// Seed data files come from exports of an older system whose records carry a
// "_c" suffix on field names. Both spellings are accepted here so the rest of
// the codebase only ever sees canonical field names.

type seedFile struct {
	Transactions []json.RawMessage `json:"transactions"`
	Budgets      []json.RawMessage `json:"budgets"`
	Goals        []json.RawMessage `json:"goals"`
	Accounts     []json.RawMessage `json:"accounts"`
}

// LoadSeedFile populates the store from a JSON seed file.
func LoadSeedFile(ctx context.Context, store *Store, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}

	return LoadSeed(ctx, store, data)
}

// LoadSeed populates the store from raw seed JSON.
func LoadSeed(ctx context.Context, store *Store, data []byte) error {
	var file seedFile
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse seed file: %w", err)
	}

	for i, raw := range file.Transactions {
		transaction, err := parseSeedTransaction(raw)
		if err != nil {
			return fmt.Errorf("seed transaction %d: %w", i, err)
		}
		if err := transaction.Validate(); err != nil {
			return fmt.Errorf("seed transaction %d: %w", i, err)
		}
		if err := store.Create(ctx, transaction); err != nil {
			return err
		}
	}

	budgets := NewBudgetStore(store)
	for i, raw := range file.Budgets {
		budget, err := parseSeedBudget(raw)
		if err != nil {
			return fmt.Errorf("seed budget %d: %w", i, err)
		}
		if err := budget.Validate(); err != nil {
			return fmt.Errorf("seed budget %d: %w", i, err)
		}
		if err := budgets.Create(ctx, budget); err != nil {
			return err
		}
	}

	goals := NewGoalStore(store)
	for i, raw := range file.Goals {
		goal, err := parseSeedGoal(raw)
		if err != nil {
			return fmt.Errorf("seed goal %d: %w", i, err)
		}
		if err := goals.Create(ctx, goal); err != nil {
			return err
		}
	}

	accounts := NewAccountStore(store)
	for i, raw := range file.Accounts {
		account, err := parseSeedAccount(raw)
		if err != nil {
			return fmt.Errorf("seed account %d: %w", i, err)
		}
		if err := account.Validate(); err != nil {
			return fmt.Errorf("seed account %d: %w", i, err)
		}
		if err := accounts.Create(ctx, account); err != nil {
			return err
		}
	}

	return nil
}

type seedRecord map[string]json.RawMessage

// pick returns the first present key, legacy spellings included.
func (r seedRecord) pick(keys ...string) (json.RawMessage, bool) {
	for _, key := range keys {
		if raw, ok := r[key]; ok {
			return raw, true
		}
	}
	return nil, false
}

func (r seedRecord) str(keys ...string) string {
	raw, ok := r.pick(keys...)
	if !ok {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// dec accepts both JSON numbers and quoted strings.
func (r seedRecord) dec(keys ...string) (decimal.Decimal, error) {
	raw, ok := r.pick(keys...)
	if !ok {
		return decimal.Zero, nil
	}

	var d decimal.Decimal
	if err := json.Unmarshal(raw, &d); err != nil {
		return decimal.Zero, err
	}
	return d, nil
}

func (r seedRecord) intVal(keys ...string) int {
	raw, ok := r.pick(keys...)
	if !ok {
		return 0
	}

	var n int
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0
	}
	return n
}

// date accepts "2006-01-02" and RFC 3339 timestamps.
func (r seedRecord) date(keys ...string) (time.Time, error) {
	s := r.str(keys...)
	if s == "" {
		return time.Time{}, nil
	}

	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func parseSeedRecord(raw json.RawMessage) (seedRecord, error) {
	var record seedRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, err
	}
	return record, nil
}

func parseSeedTransaction(raw json.RawMessage) (*domain.Transaction, error) {
	record, err := parseSeedRecord(raw)
	if err != nil {
		return nil, err
	}

	amount, err := record.dec("amount", "amount_c")
	if err != nil {
		return nil, fmt.Errorf("amount: %w", err)
	}

	date, err := record.date("date", "date_c")
	if err != nil {
		return nil, fmt.Errorf("date: %w", err)
	}

	createdAt, err := record.date("createdAt", "created_at", "CreatedOn")
	if err != nil || createdAt.IsZero() {
		createdAt = date
	}

	return &domain.Transaction{
		Amount:      amount,
		Type:        domain.TransactionType(record.str("type", "type_c")),
		Category:    record.str("category", "category_c"),
		Description: record.str("description", "description_c"),
		Date:        date,
		CreatedAt:   createdAt,
	}, nil
}

func parseSeedBudget(raw json.RawMessage) (*domain.Budget, error) {
	record, err := parseSeedRecord(raw)
	if err != nil {
		return nil, err
	}

	amount, err := record.dec("amount", "amount_c")
	if err != nil {
		return nil, fmt.Errorf("amount: %w", err)
	}

	return &domain.Budget{
		CategoryID: record.str("categoryId", "category_id_c", "category_id"),
		Amount:     amount,
		Month:      record.str("month", "month_c"),
		Year:       record.intVal("year", "year_c"),
	}, nil
}

func parseSeedGoal(raw json.RawMessage) (*domain.Goal, error) {
	record, err := parseSeedRecord(raw)
	if err != nil {
		return nil, err
	}

	target, err := record.dec("targetAmount", "target_amount_c", "target_amount")
	if err != nil {
		return nil, fmt.Errorf("target amount: %w", err)
	}

	current, err := record.dec("currentAmount", "current_amount_c", "current_amount")
	if err != nil {
		return nil, fmt.Errorf("current amount: %w", err)
	}

	deadline, err := record.date("deadline", "deadline_c")
	if err != nil {
		return nil, fmt.Errorf("deadline: %w", err)
	}

	createdAt, err := record.date("createdAt", "created_at", "CreatedOn")
	if err != nil {
		createdAt = time.Time{}
	}

	goal := &domain.Goal{
		Name:          record.str("name", "name_c", "title_c"),
		TargetAmount:  target,
		CurrentAmount: current,
		Deadline:      deadline,
		CreatedAt:     createdAt,
	}

	// Historical goals may carry deadlines in the past, so Validate's
	// deadline check does not apply here.
	if goal.Name == "" {
		return nil, domain.ErrInvalidGoalName
	}
	if goal.TargetAmount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}
	if goal.CurrentAmount.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}

	return goal, nil
}

func parseSeedAccount(raw json.RawMessage) (*domain.BankAccount, error) {
	record, err := parseSeedRecord(raw)
	if err != nil {
		return nil, err
	}

	balance, err := record.dec("balance", "balance_c")
	if err != nil {
		return nil, fmt.Errorf("balance: %w", err)
	}

	return &domain.BankAccount{
		AccountName:     record.str("accountName", "account_name_c", "account_name"),
		InstitutionName: record.str("institutionName", "institution_name_c", "institution_name"),
		AccountNumber:   record.str("accountNumber", "account_number_c", "account_number"),
		Balance:         balance,
	}, nil
}
