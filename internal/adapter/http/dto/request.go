package dto

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/apper-canvas/pennywise/internal/domain"
	"github.com/apper-canvas/pennywise/internal/usecase"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = time.RFC3339
)

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return t, nil
}

// CreateTransactionRequest represents a request to record a transaction.
type CreateTransactionRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateTransactionRequest) ToUseCaseInput() (usecase.CreateTransactionInput, error) {
	date, err := parseDate(r.Date)
	if err != nil {
		return usecase.CreateTransactionInput{}, err
	}

	return usecase.CreateTransactionInput{
		Amount:      r.Amount,
		Type:        domain.TransactionType(r.Type),
		Category:    r.Category,
		Description: r.Description,
		Date:        date,
	}, nil
}

// UpdateTransactionRequest represents a request to update a transaction.
type UpdateTransactionRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateTransactionRequest) ToUseCaseInput() (usecase.UpdateTransactionInput, error) {
	date, err := parseDate(r.Date)
	if err != nil {
		return usecase.UpdateTransactionInput{}, err
	}

	return usecase.UpdateTransactionInput{
		Amount:      r.Amount,
		Type:        domain.TransactionType(r.Type),
		Category:    r.Category,
		Description: r.Description,
		Date:        date,
	}, nil
}

// CriteriaFromQuery builds filter criteria from list query parameters.
// Unset parameters leave their clause inactive.
func CriteriaFromQuery(q url.Values) (domain.FilterCriteria, error) {
	criteria := domain.FilterCriteria{
		Type:       domain.TypeFilter(q.Get("type")),
		SearchTerm: q.Get("search"),
	}

	if s := q.Get("start_date"); s != "" {
		start, err := parseDate(s)
		if err != nil {
			return domain.FilterCriteria{}, err
		}
		criteria.DateRange.Start = &start
	}

	if s := q.Get("end_date"); s != "" {
		end, err := parseDate(s)
		if err != nil {
			return domain.FilterCriteria{}, err
		}
		criteria.DateRange.End = &end
	}

	if s := q.Get("categories"); s != "" {
		for _, c := range strings.Split(s, ",") {
			if c = strings.TrimSpace(c); c != "" {
				criteria.Categories = append(criteria.Categories, c)
			}
		}
	}

	if s := q.Get("min_amount"); s != "" {
		min, err := decimal.NewFromString(s)
		if err != nil {
			return domain.FilterCriteria{}, fmt.Errorf("invalid min_amount %q", s)
		}
		criteria.AmountRange.Min = &min
	}

	if s := q.Get("max_amount"); s != "" {
		max, err := decimal.NewFromString(s)
		if err != nil {
			return domain.FilterCriteria{}, fmt.Errorf("invalid max_amount %q", s)
		}
		criteria.AmountRange.Max = &max
	}

	return criteria, nil
}

// CreateBudgetRequest represents a request to set a category budget.
type CreateBudgetRequest struct {
	CategoryID string          `json:"category_id"`
	Amount     decimal.Decimal `json:"amount"`
	Month      string          `json:"month"`
	Year       int             `json:"year"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateBudgetRequest) ToUseCaseInput() usecase.CreateBudgetInput {
	return usecase.CreateBudgetInput{
		CategoryID: r.CategoryID,
		Amount:     r.Amount,
		Month:      r.Month,
		Year:       r.Year,
	}
}

// CreateGoalRequest represents a request to create a savings goal.
type CreateGoalRequest struct {
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	Deadline      string          `json:"deadline"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateGoalRequest) ToUseCaseInput() (usecase.CreateGoalInput, error) {
	deadline, err := parseDate(r.Deadline)
	if err != nil {
		return usecase.CreateGoalInput{}, err
	}

	return usecase.CreateGoalInput{
		Name:          r.Name,
		TargetAmount:  r.TargetAmount,
		CurrentAmount: r.CurrentAmount,
		Deadline:      deadline,
	}, nil
}

// UpdateGoalRequest represents a request to update a goal's definition.
type UpdateGoalRequest struct {
	Name         string          `json:"name"`
	TargetAmount decimal.Decimal `json:"target_amount"`
	Deadline     string          `json:"deadline"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateGoalRequest) ToUseCaseInput() (usecase.UpdateGoalInput, error) {
	deadline, err := parseDate(r.Deadline)
	if err != nil {
		return usecase.UpdateGoalInput{}, err
	}

	return usecase.UpdateGoalInput{
		Name:         r.Name,
		TargetAmount: r.TargetAmount,
		Deadline:     deadline,
	}, nil
}

// GoalProgressRequest represents a contribution to or withdrawal from a
// goal. Negative delta withdraws.
type GoalProgressRequest struct {
	Delta decimal.Decimal `json:"delta"`
}

// CreateAccountRequest represents a request to track a bank account.
type CreateAccountRequest struct {
	AccountName     string          `json:"account_name"`
	InstitutionName string          `json:"institution_name"`
	AccountNumber   string          `json:"account_number"`
	Balance         decimal.Decimal `json:"balance"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput() usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		AccountName:     r.AccountName,
		InstitutionName: r.InstitutionName,
		AccountNumber:   r.AccountNumber,
		Balance:         r.Balance,
	}
}
