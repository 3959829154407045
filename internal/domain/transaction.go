package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType distinguishes money coming in from money going out.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// Transaction represents a single income or expense event.
// Amount is always positive; the sign is implied by Type.
type Transaction struct {
	CreatedAt   time.Time
	Date        time.Time
	Category    string
	Description string
	Amount      decimal.Decimal
	ID          int64
	Type        TransactionType
}

// Validate checks that a transaction conforms to the data model.
func (t *Transaction) Validate() error {
	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if t.Type != TypeIncome && t.Type != TypeExpense {
		return ErrInvalidType
	}

	if !IsValidCategory(t.Category) {
		return ErrInvalidCategory
	}

	if err := ValidateDescription(t.Description); err != nil {
		return err
	}

	if t.Date.IsZero() {
		return ErrInvalidDate
	}

	return nil
}

// SignedAmount returns the amount with the sign implied by the type:
// positive for income, negative for expense.
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.Type == TypeExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}
