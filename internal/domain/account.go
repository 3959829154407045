package domain

import "github.com/shopspring/decimal"

// BankAccount represents a tracked bank account. Balance is signed.
type BankAccount struct {
	AccountName     string
	InstitutionName string
	AccountNumber   string
	Balance         decimal.Decimal
	ID              int64
}

// Validate checks that a bank account conforms to the data model.
func (a *BankAccount) Validate() error {
	if a.AccountName == "" || a.InstitutionName == "" {
		return ErrInvalidAccountField
	}
	return nil
}

// MaskedNumber returns the account number with all but the last four digits
// hidden.
func (a *BankAccount) MaskedNumber() string {
	if len(a.AccountNumber) <= 4 {
		return a.AccountNumber
	}
	return "••••" + a.AccountNumber[len(a.AccountNumber)-4:]
}

// AccountStats aggregates balances across bank accounts.
type AccountStats struct {
	TotalBalance   decimal.Decimal
	HighestBalance decimal.Decimal
	Count          int
}

// SummarizeAccounts computes balance statistics across accounts.
func SummarizeAccounts(accounts []*BankAccount) AccountStats {
	stats := AccountStats{Count: len(accounts)}

	for i, a := range accounts {
		stats.TotalBalance = stats.TotalBalance.Add(a.Balance)
		if i == 0 || a.Balance.GreaterThan(stats.HighestBalance) {
			stats.HighestBalance = a.Balance
		}
	}

	return stats
}
