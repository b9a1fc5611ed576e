package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	GoalStatusActive    = "active"
	GoalStatusCompleted = "completed"
	GoalStatusPaused    = "paused"
	GoalStatusDeleted   = "deleted"
)

// GoalCategories is the whitelist accepted at goal creation.
var GoalCategories = []string{
	"Emergency Fund",
	"Retirement",
	"Vacation",
	"Education",
	"Home Purchase",
	"Debt Payoff",
	"Investment",
	"Business",
	"Other",
}

func IsGoalCategory(category string) bool {
	for _, c := range GoalCategories {
		if c == category {
			return true
		}
	}
	return false
}

type Goal struct {
	ID            string          `db:"id" json:"id"`
	UserID        string          `db:"user_id" json:"user_id"`
	AccountID     *string         `db:"account_id" json:"account_id,omitempty"`
	Name          string          `db:"name" json:"name"`
	Description   string          `db:"description" json:"description"`
	Category      string          `db:"category" json:"category"`
	TargetAmount  decimal.Decimal `db:"target_amount" json:"target_amount"`
	TargetDate    time.Time       `db:"target_date" json:"target_date"`
	StartAmount   decimal.Decimal `db:"start_amount" json:"start_amount"`
	StartDate     time.Time       `db:"start_date" json:"start_date"`
	CurrentAmount decimal.Decimal `db:"current_amount" json:"current_amount"`
	Status        string          `db:"status" json:"status"`
	LastSimulated *time.Time      `db:"last_simulated_at" json:"last_simulated_at,omitempty"`
	CompletedAt   *time.Time      `db:"completed_at" json:"completed_at,omitempty"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updated_at"`
}

func (g *Goal) IsActive() bool {
	return g.Status == GoalStatusActive
}
