package domain

import "github.com/shopspring/decimal"

var oneHundred = decimal.NewFromInt(100)

// CalculateProgress returns current/target as a percentage in [0, 100].
// A zero or negative target yields 0; values above the target are capped at
// 100, never signalling overage. Callers that need "over target" must compare
// current against target themselves.
func CalculateProgress(current, target decimal.Decimal) decimal.Decimal {
	if target.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	pct := current.Div(target).Mul(oneHundred)
	if pct.GreaterThan(oneHundred) {
		return oneHundred
	}
	if pct.IsNegative() {
		return decimal.Zero
	}

	return pct
}

// BudgetStatus describes how far a budget has been consumed.
type BudgetStatus struct {
	Budget     *Budget
	Spent      decimal.Decimal
	Remaining  decimal.Decimal
	Progress   decimal.Decimal
	OverBudget bool
}

// BudgetProgress derives the consumption status of a budget from per-category
// spending. Remaining is signed and goes negative when the budget is blown;
// Progress stays capped at 100.
func BudgetProgress(budget *Budget, spentByCategory map[string]decimal.Decimal) BudgetStatus {
	spent := spentByCategory[budget.CategoryID]

	return BudgetStatus{
		Budget:     budget,
		Spent:      spent,
		Remaining:  budget.Amount.Sub(spent),
		Progress:   CalculateProgress(spent, budget.Amount),
		OverBudget: spent.GreaterThan(budget.Amount),
	}
}
