package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// FinancialGoal is the single monthly sales/profit target record
type FinancialGoal struct {
	SalesTarget  decimal.Decimal `json:"salesTarget"`
	ProfitTarget decimal.Decimal `json:"profitTarget"`
	UpdatedAt    string          `json:"updatedAt,omitempty"`
}

// Validate rejects negative targets
func (g FinancialGoal) Validate() error {
	if g.SalesTarget.IsNegative() || g.ProfitTarget.IsNegative() {
		return fmt.Errorf("%w: goals must not be negative", ErrInvalidInput)
	}
	return nil
}

// SaveGoalRequest represents the request body for saving the financial goal
// Example: {"salesTarget": "10000", "profitTarget": "2500"}
type SaveGoalRequest struct {
	SalesTarget  decimal.Decimal `json:"salesTarget"`
	ProfitTarget decimal.Decimal `json:"profitTarget"`
}
