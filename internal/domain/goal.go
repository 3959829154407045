package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Goal is a savings target with a deadline and accumulated progress.
type Goal struct {
	CreatedAt     time.Time
	Deadline      time.Time
	Name          string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	ID            int64
}

// Validate checks that a goal conforms to the data model. The deadline check
// takes the reference time explicitly so creation-time validation stays
// deterministic under test.
func (g *Goal) Validate(now time.Time) error {
	if g.Name == "" {
		return ErrInvalidGoalName
	}

	if g.TargetAmount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if !g.Deadline.After(now) {
		return ErrPastDeadline
	}

	return nil
}

// Progress returns how much of the target has been saved, 0-100 capped.
func (g *Goal) Progress() decimal.Decimal {
	return CalculateProgress(g.CurrentAmount, g.TargetAmount)
}

// Remaining returns the amount still to save, never negative.
func (g *Goal) Remaining() decimal.Decimal {
	remaining := g.TargetAmount.Sub(g.CurrentAmount)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// ApplyProgressDelta returns the balance after a contribution (positive
// delta) or withdrawal (negative delta). Withdrawals that would drive the
// balance below zero clamp to exactly 0; over-withdrawal is not an error.
func (g *Goal) ApplyProgressDelta(delta decimal.Decimal) decimal.Decimal {
	next := g.CurrentAmount.Add(delta)
	if next.IsNegative() {
		return decimal.Zero
	}
	return next
}

// GoalStats aggregates savings progress across all goals.
type GoalStats struct {
	TotalTarget decimal.Decimal
	TotalSaved  decimal.Decimal
	Progress    decimal.Decimal
	Count       int
}

// SummarizeGoals computes overall savings progress across goals.
func SummarizeGoals(goals []*Goal) GoalStats {
	stats := GoalStats{Count: len(goals)}

	for _, g := range goals {
		stats.TotalTarget = stats.TotalTarget.Add(g.TargetAmount)
		stats.TotalSaved = stats.TotalSaved.Add(g.CurrentAmount)
	}

	stats.Progress = CalculateProgress(stats.TotalSaved, stats.TotalTarget)

	return stats
}
