package domain

import "errors"

var (
	// Transaction errors
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrInvalidType         = errors.New("type must be income or expense")
	ErrInvalidCategory     = errors.New("unknown category")
	ErrInvalidDate         = errors.New("date is required")

	// Budget errors
	ErrBudgetNotFound = errors.New("budget not found")
	ErrInvalidMonth   = errors.New("month must be between 01 and 12")

	// Goal errors
	ErrGoalNotFound    = errors.New("goal not found")
	ErrPastDeadline    = errors.New("deadline must be in the future")
	ErrInvalidGoalName = errors.New("goal name is required")

	// Bank account errors
	ErrAccountNotFound     = errors.New("bank account not found")
	ErrInvalidAccountField = errors.New("account name and institution are required")
)
