package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"vitrine-backoffice/db"
	"vitrine-backoffice/models"
)

// GoalRepository handles the single financial goal row
type GoalRepository struct{}

// NewGoalRepository creates a new GoalRepository
func NewGoalRepository() *GoalRepository {
	return &GoalRepository{}
}

// Ensure GoalRepository implements GoalRepositoryInterface
var _ GoalRepositoryInterface = (*GoalRepository)(nil)

// Get returns the stored goal, or zero targets when none was saved yet
func (r *GoalRepository) Get(ctx context.Context) (*models.FinancialGoal, error) {
	var goal models.FinancialGoal
	var updatedAt time.Time

	err := db.DB.QueryRowContext(ctx, `
		SELECT sales_target, profit_target, updated_at
		FROM financial_goal
		WHERE id = 1
	`).Scan(&goal.SalesTarget, &goal.ProfitTarget, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &models.FinancialGoal{SalesTarget: decimal.Zero, ProfitTarget: decimal.Zero}, nil
		}
		logger.Errorf("❌ GetGoal: Error fetching goal: %v", err)
		return nil, fmt.Errorf("failed to fetch financial goal: %w", err)
	}

	goal.UpdatedAt = updatedAt.Format(time.RFC3339)
	return &goal, nil
}

// Save upserts the goal row
func (r *GoalRepository) Save(ctx context.Context, goal models.FinancialGoal) (*models.FinancialGoal, error) {
	logger.Infof("🎯 SaveGoal: sales=%s, profit=%s", goal.SalesTarget.String(), goal.ProfitTarget.String())

	if err := goal.Validate(); err != nil {
		return nil, err
	}

	var saved models.FinancialGoal
	var updatedAt time.Time
	err := db.DB.QueryRowContext(ctx, `
		INSERT INTO financial_goal (id, sales_target, profit_target, updated_at)
		VALUES (1, $1, $2, NOW())
		ON CONFLICT (id)
		DO UPDATE SET
			sales_target = EXCLUDED.sales_target,
			profit_target = EXCLUDED.profit_target,
			updated_at = EXCLUDED.updated_at
		RETURNING sales_target, profit_target, updated_at
	`, goal.SalesTarget, goal.ProfitTarget).Scan(&saved.SalesTarget, &saved.ProfitTarget, &updatedAt)
	if err != nil {
		logger.Errorf("❌ SaveGoal: Error saving goal: %v", err)
		return nil, fmt.Errorf("failed to save financial goal: %w", err)
	}

	saved.UpdatedAt = updatedAt.Format(time.RFC3339)
	logger.Info("✅ SaveGoal: Financial goal saved")
	return &saved, nil
}
