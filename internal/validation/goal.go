package validation

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hadikasem/AI-Financial-Advisor/internal/model"
)

// ValidateGoal checks the fields required to create or update a savings goal.
func ValidateGoal(name, category string, target decimal.Decimal, targetDate, startDate time.Time) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("goal name is required")
	}

	if len(name) > 120 {
		return errors.New("goal name is too long (max 120 characters)")
	}

	if !model.IsGoalCategory(category) {
		return errors.New("unknown goal category")
	}

	if target.LessThanOrEqual(decimal.Zero) {
		return errors.New("target amount must be positive")
	}

	if !targetDate.After(startDate) {
		return errors.New("target date must be after the start date")
	}

	return nil
}
