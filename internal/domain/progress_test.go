package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestCalculateProgress(t *testing.T) {
	tests := []struct {
		name    string
		current decimal.Decimal
		target  decimal.Decimal
		want    decimal.Decimal
	}{
		{"zero target yields zero", decimal.NewFromInt(50), decimal.Zero, decimal.Zero},
		{"half way", decimal.NewFromInt(50), decimal.NewFromInt(100), decimal.NewFromInt(50)},
		{"exactly at target", decimal.NewFromInt(100), decimal.NewFromInt(100), decimal.NewFromInt(100)},
		{"capped above target", decimal.NewFromInt(150), decimal.NewFromInt(100), decimal.NewFromInt(100)},
		{"zero current", decimal.Zero, decimal.NewFromInt(100), decimal.Zero},
		{"fractional result", decimal.NewFromInt(1), decimal.NewFromInt(3), decimal.NewFromInt(1).Div(decimal.NewFromInt(3)).Mul(decimal.NewFromInt(100))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateProgress(tt.current, tt.target)
			if !got.Equal(tt.want) {
				t.Errorf("CalculateProgress(%s, %s) = %s, want %s", tt.current, tt.target, got, tt.want)
			}
		})
	}
}

func TestBudgetProgress(t *testing.T) {
	budget := &Budget{ID: 1, CategoryID: "Food & Dining", Amount: decimal.NewFromInt(50), Month: "03", Year: 2024}

	tests := []struct {
		name           string
		spent          map[string]decimal.Decimal
		wantSpent      decimal.Decimal
		wantRemaining  decimal.Decimal
		wantProgress   decimal.Decimal
		wantOverBudget bool
	}{
		{
			name:          "under budget",
			spent:         map[string]decimal.Decimal{"Food & Dining": decimal.NewFromInt(40)},
			wantSpent:     decimal.NewFromInt(40),
			wantRemaining: decimal.NewFromInt(10),
			wantProgress:  decimal.NewFromInt(80),
		},
		{
			name:           "over budget caps progress and flags",
			spent:          map[string]decimal.Decimal{"Food & Dining": decimal.NewFromInt(60)},
			wantSpent:      decimal.NewFromInt(60),
			wantRemaining:  decimal.NewFromInt(-10),
			wantProgress:   decimal.NewFromInt(100),
			wantOverBudget: true,
		},
		{
			name:          "no spending recorded for category",
			spent:         map[string]decimal.Decimal{"Travel": decimal.NewFromInt(500)},
			wantSpent:     decimal.Zero,
			wantRemaining: decimal.NewFromInt(50),
			wantProgress:  decimal.Zero,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := BudgetProgress(budget, tt.spent)

			if !status.Spent.Equal(tt.wantSpent) {
				t.Errorf("expected spent %s, got %s", tt.wantSpent, status.Spent)
			}
			if !status.Remaining.Equal(tt.wantRemaining) {
				t.Errorf("expected remaining %s, got %s", tt.wantRemaining, status.Remaining)
			}
			if !status.Progress.Equal(tt.wantProgress) {
				t.Errorf("expected progress %s, got %s", tt.wantProgress, status.Progress)
			}
			if status.OverBudget != tt.wantOverBudget {
				t.Errorf("expected over budget %v, got %v", tt.wantOverBudget, status.OverBudget)
			}
		})
	}
}
