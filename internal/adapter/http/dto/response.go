package dto

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/apper-canvas/pennywise/internal/domain"
	"github.com/apper-canvas/pennywise/internal/usecase"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// TransactionResponse represents a transaction in API responses.
type TransactionResponse struct {
	ID          int64           `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
	CreatedAt   string          `json:"created_at"`
}

// TransactionFromDomain converts a domain transaction.
func TransactionFromDomain(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          t.ID,
		Amount:      t.Amount,
		Type:        string(t.Type),
		Category:    t.Category,
		Description: t.Description,
		Date:        t.Date.Format(dateLayout),
		CreatedAt:   t.CreatedAt.Format(timeLayout),
	}
}

// TransactionsFromDomain converts a slice of domain transactions.
func TransactionsFromDomain(transactions []*domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, len(transactions))
	for i, t := range transactions {
		out[i] = TransactionFromDomain(t)
	}
	return out
}

// ListTransactionsResponse represents a filtered transaction page.
type ListTransactionsResponse struct {
	Transactions  []TransactionResponse `json:"transactions"`
	Total         int                   `json:"total"`
	ActiveFilters int                   `json:"active_filters"`
}

// BudgetResponse represents a budget in API responses.
type BudgetResponse struct {
	ID         int64           `json:"id"`
	CategoryID string          `json:"category_id"`
	Amount     decimal.Decimal `json:"amount"`
	Month      string          `json:"month"`
	Year       int             `json:"year"`
}

// BudgetFromDomain converts a domain budget.
func BudgetFromDomain(b *domain.Budget) BudgetResponse {
	return BudgetResponse{
		ID:         b.ID,
		CategoryID: b.CategoryID,
		Amount:     b.Amount,
		Month:      b.Month,
		Year:       b.Year,
	}
}

// BudgetsFromDomain converts a slice of domain budgets.
func BudgetsFromDomain(budgets []*domain.Budget) []BudgetResponse {
	out := make([]BudgetResponse, len(budgets))
	for i, b := range budgets {
		out[i] = BudgetFromDomain(b)
	}
	return out
}

// BudgetStatusResponse joins a budget with its consumption.
type BudgetStatusResponse struct {
	Budget     BudgetResponse  `json:"budget"`
	Spent      decimal.Decimal `json:"spent"`
	Remaining  decimal.Decimal `json:"remaining"`
	Progress   decimal.Decimal `json:"progress"`
	OverBudget bool            `json:"over_budget"`
}

// BudgetOverviewResponse represents one month's budget consumption.
type BudgetOverviewResponse struct {
	Statuses        []BudgetStatusResponse `json:"statuses"`
	TotalBudget     decimal.Decimal        `json:"total_budget"`
	TotalSpent      decimal.Decimal        `json:"total_spent"`
	TotalRemaining  decimal.Decimal        `json:"total_remaining"`
	OverBudgetCount int                    `json:"over_budget_count"`
}

// BudgetOverviewFromUseCase converts a use case overview.
func BudgetOverviewFromUseCase(o *usecase.BudgetOverview) BudgetOverviewResponse {
	statuses := make([]BudgetStatusResponse, len(o.Statuses))
	for i, s := range o.Statuses {
		statuses[i] = BudgetStatusResponse{
			Budget:     BudgetFromDomain(s.Budget),
			Spent:      s.Spent,
			Remaining:  s.Remaining,
			Progress:   s.Progress,
			OverBudget: s.OverBudget,
		}
	}

	return BudgetOverviewResponse{
		Statuses:        statuses,
		TotalBudget:     o.TotalBudget,
		TotalSpent:      o.TotalSpent,
		TotalRemaining:  o.TotalRemaining,
		OverBudgetCount: o.OverBudgetCount,
	}
}

// GoalResponse represents a savings goal in API responses.
type GoalResponse struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	Deadline      string          `json:"deadline"`
	Progress      decimal.Decimal `json:"progress"`
	Remaining     decimal.Decimal `json:"remaining"`
	CreatedAt     string          `json:"created_at"`
}

// GoalFromDomain converts a domain goal.
func GoalFromDomain(g *domain.Goal) GoalResponse {
	return GoalResponse{
		ID:            g.ID,
		Name:          g.Name,
		TargetAmount:  g.TargetAmount,
		CurrentAmount: g.CurrentAmount,
		Deadline:      g.Deadline.Format(dateLayout),
		Progress:      g.Progress(),
		Remaining:     g.Remaining(),
		CreatedAt:     g.CreatedAt.Format(timeLayout),
	}
}

// GoalsFromDomain converts a slice of domain goals.
func GoalsFromDomain(goals []*domain.Goal) []GoalResponse {
	out := make([]GoalResponse, len(goals))
	for i, g := range goals {
		out[i] = GoalFromDomain(g)
	}
	return out
}

// GoalStatsResponse aggregates savings progress across goals.
type GoalStatsResponse struct {
	TotalTarget decimal.Decimal `json:"total_target"`
	TotalSaved  decimal.Decimal `json:"total_saved"`
	Progress    decimal.Decimal `json:"progress"`
	Count       int             `json:"count"`
}

// GoalStatsFromDomain converts domain goal statistics.
func GoalStatsFromDomain(s *domain.GoalStats) GoalStatsResponse {
	return GoalStatsResponse{
		TotalTarget: s.TotalTarget,
		TotalSaved:  s.TotalSaved,
		Progress:    s.Progress,
		Count:       s.Count,
	}
}

// AccountResponse represents a bank account in API responses. The account
// number is always masked.
type AccountResponse struct {
	ID              int64           `json:"id"`
	AccountName     string          `json:"account_name"`
	InstitutionName string          `json:"institution_name"`
	AccountNumber   string          `json:"account_number"`
	Balance         decimal.Decimal `json:"balance"`
}

// AccountFromDomain converts a domain bank account.
func AccountFromDomain(a *domain.BankAccount) AccountResponse {
	return AccountResponse{
		ID:              a.ID,
		AccountName:     a.AccountName,
		InstitutionName: a.InstitutionName,
		AccountNumber:   a.MaskedNumber(),
		Balance:         a.Balance,
	}
}

// AccountsFromDomain converts a slice of domain bank accounts.
func AccountsFromDomain(accounts []*domain.BankAccount) []AccountResponse {
	out := make([]AccountResponse, len(accounts))
	for i, a := range accounts {
		out[i] = AccountFromDomain(a)
	}
	return out
}

// AccountStatsResponse aggregates balances across bank accounts.
type AccountStatsResponse struct {
	TotalBalance   decimal.Decimal `json:"total_balance"`
	HighestBalance decimal.Decimal `json:"highest_balance"`
	Count          int             `json:"count"`
}

// AccountStatsFromDomain converts domain account statistics.
func AccountStatsFromDomain(s *domain.AccountStats) AccountStatsResponse {
	return AccountStatsResponse{
		TotalBalance:   s.TotalBalance,
		HighestBalance: s.HighestBalance,
		Count:          s.Count,
	}
}

// MonthlySummaryResponse is the dashboard view of one calendar month.
type MonthlySummaryResponse struct {
	Month              string                `json:"month"`
	Income             decimal.Decimal       `json:"income"`
	Expenses           decimal.Decimal       `json:"expenses"`
	Net                decimal.Decimal       `json:"net"`
	TotalBudget        decimal.Decimal       `json:"total_budget"`
	BudgetRemaining    decimal.Decimal       `json:"budget_remaining"`
	RecentTransactions []TransactionResponse `json:"recent_transactions"`
}

// MonthlySummaryFromUseCase converts a use case summary.
func MonthlySummaryFromUseCase(s *usecase.MonthlySummary) MonthlySummaryResponse {
	return MonthlySummaryResponse{
		Month:              s.Month,
		Income:             s.Income,
		Expenses:           s.Expenses,
		Net:                s.Net,
		TotalBudget:        s.TotalBudget,
		BudgetRemaining:    s.BudgetRemaining,
		RecentTransactions: TransactionsFromDomain(s.RecentTransactions),
	}
}

// MonthTotalResponse carries one month's income and expense totals.
type MonthTotalResponse struct {
	Month    string          `json:"month"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Net      decimal.Decimal `json:"net"`
}

// MonthlyBreakdownFromDomain converts the per-month totals map into a
// chronologically sorted list.
func MonthlyBreakdownFromDomain(totals map[string]domain.MonthTotal) []MonthTotalResponse {
	out := make([]MonthTotalResponse, 0, len(totals))
	for month, total := range totals {
		out = append(out, MonthTotalResponse{
			Month:    month,
			Income:   total.Income,
			Expenses: total.Expenses,
			Net:      total.Net(),
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })

	return out
}

// TrendPointResponse is one month of the income and expense series.
type TrendPointResponse struct {
	Month    string          `json:"month"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
}

// TrendsFromDomain converts domain trend points.
func TrendsFromDomain(points []domain.TrendPoint) []TrendPointResponse {
	out := make([]TrendPointResponse, len(points))
	for i, p := range points {
		out[i] = TrendPointResponse{
			Month:    p.Key(),
			Income:   p.Income,
			Expenses: p.Expenses,
		}
	}
	return out
}

// CategoryTotalResponse is one category's spending within a month.
type CategoryTotalResponse struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// CategoryBreakdownFromDomain converts the per-category totals map into a
// list sorted by descending spend.
func CategoryBreakdownFromDomain(totals map[string]decimal.Decimal) []CategoryTotalResponse {
	out := make([]CategoryTotalResponse, 0, len(totals))
	for category, total := range totals {
		out = append(out, CategoryTotalResponse{Category: category, Total: total})
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].Total.Equal(out[j].Total) {
			return out[i].Total.GreaterThan(out[j].Total)
		}
		return out[i].Category < out[j].Category
	})

	return out
}

// CategoriesResponse lists the category vocabulary.
type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

// AuditLogResponse represents one change history entry.
type AuditLogResponse struct {
	ID           string      `json:"id"`
	Action       string      `json:"action"`
	ResourceType string      `json:"resource_type"`
	ResourceID   string      `json:"resource_id"`
	BeforeState  domain.JSON `json:"before_state,omitempty"`
	AfterState   domain.JSON `json:"after_state,omitempty"`
	Status       string      `json:"status"`
	ErrorMessage string      `json:"error_message,omitempty"`
	CreatedAt    string      `json:"created_at"`
}

// AuditLogsFromDomain converts a slice of domain audit logs.
func AuditLogsFromDomain(logs []*domain.AuditLog) []AuditLogResponse {
	out := make([]AuditLogResponse, len(logs))
	for i, l := range logs {
		out[i] = AuditLogResponse{
			ID:           l.ID,
			Action:       l.Action,
			ResourceType: l.ResourceType,
			ResourceID:   l.ResourceID,
			BeforeState:  l.BeforeState,
			AfterState:   l.AfterState,
			Status:       l.Status,
			ErrorMessage: l.ErrorMessage,
			CreatedAt:    l.CreatedAt.Format(timeLayout),
		}
	}
	return out
}
