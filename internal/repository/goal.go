package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/hadikasem/AI-Financial-Advisor/internal/model"
)

const (
	GoalSortRecent   = "recent"
	GoalSortDeadline = "deadline"
	GoalSortName     = "name"
)

var (
	ErrGoalNotFound = errors.New("goal not found")
)

type GoalRepository interface {
	Create(goal *model.Goal) error
	ByID(userID, goalID string) (*model.Goal, error)
	Goals(userID, sortBy string) ([]*model.Goal, error)
	ActiveGoals(userID string) ([]*model.Goal, error)
	CountActive(userID string) (int, error)
	Update(goal *model.Goal) error
	UpdateCurrentAmount(userID, goalID string, amount decimal.Decimal) error
	Delete(userID, goalID string) error
	DueWithin(userID string, within time.Duration) ([]*model.Goal, error)
}

type goalRepository struct {
	db *sqlx.DB
}

func NewGoalRepository(db *sqlx.DB) GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) Create(goal *model.Goal) error {
	query := `INSERT INTO goals (id, user_id, account_id, name, description, category,
	              target_amount, target_date, start_amount, start_date, current_amount,
	              status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := r.db.Exec(query,
		goal.ID,
		goal.UserID,
		goal.AccountID,
		goal.Name,
		goal.Description,
		goal.Category,
		goal.TargetAmount,
		goal.TargetDate,
		goal.StartAmount,
		goal.StartDate,
		goal.CurrentAmount,
		goal.Status,
		goal.CreatedAt,
		goal.UpdatedAt,
	)

	return err
}

func (r *goalRepository) ByID(userID, goalID string) (*model.Goal, error) {
	goal := &model.Goal{}
	query := `SELECT * FROM goals WHERE id = $1 AND user_id = $2`

	err := r.db.Get(goal, query, goalID, userID)
	if err == sql.ErrNoRows {
		return nil, ErrGoalNotFound
	}

	return goal, err
}

func (r *goalRepository) Goals(userID, sortBy string) ([]*model.Goal, error) {
	var goals []*model.Goal

	var orderBy string
	switch sortBy {
	case GoalSortDeadline:
		orderBy = "ORDER BY target_date ASC"
	case GoalSortName:
		orderBy = "ORDER BY LOWER(name) ASC"
	default: // GoalSortRecent or empty
		orderBy = "ORDER BY updated_at DESC"
	}

	query := `SELECT * FROM goals WHERE user_id = $1 AND status != $2 ` + orderBy

	err := r.db.Select(&goals, query, userID, model.GoalStatusDeleted)
	if err != nil {
		return nil, err
	}

	return goals, nil
}

func (r *goalRepository) ActiveGoals(userID string) ([]*model.Goal, error) {
	var goals []*model.Goal
	query := `SELECT * FROM goals WHERE user_id = $1 AND status = $2 ORDER BY target_date ASC`

	err := r.db.Select(&goals, query, userID, model.GoalStatusActive)
	if err != nil {
		return nil, err
	}

	return goals, nil
}

func (r *goalRepository) CountActive(userID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM goals WHERE user_id = $1 AND status = $2`
	err := r.db.QueryRow(query, userID, model.GoalStatusActive).Scan(&count)
	return count, err
}

func (r *goalRepository) Update(goal *model.Goal) error {
	query := `UPDATE goals
	          SET account_id = $1, name = $2, description = $3, category = $4,
	              target_amount = $5, target_date = $6, current_amount = $7,
	              status = $8, last_simulated_at = $9, completed_at = $10, updated_at = $11
	          WHERE id = $12 AND user_id = $13`

	result, err := r.db.Exec(query,
		goal.AccountID,
		goal.Name,
		goal.Description,
		goal.Category,
		goal.TargetAmount,
		goal.TargetDate,
		goal.CurrentAmount,
		goal.Status,
		goal.LastSimulated,
		goal.CompletedAt,
		time.Now(),
		goal.ID,
		goal.UserID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrGoalNotFound
	}

	return nil
}

func (r *goalRepository) UpdateCurrentAmount(userID, goalID string, amount decimal.Decimal) error {
	query := `UPDATE goals SET current_amount = $1, updated_at = $2 WHERE id = $3 AND user_id = $4`

	result, err := r.db.Exec(query, amount, time.Now(), goalID, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrGoalNotFound
	}

	return nil
}

// Delete soft-deletes a goal so its history stays queryable.
func (r *goalRepository) Delete(userID, goalID string) error {
	query := `UPDATE goals SET status = $1, updated_at = $2 WHERE id = $3 AND user_id = $4 AND status != $1`

	result, err := r.db.Exec(query, model.GoalStatusDeleted, time.Now(), goalID, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrGoalNotFound
	}

	return nil
}

func (r *goalRepository) DueWithin(userID string, within time.Duration) ([]*model.Goal, error) {
	var goals []*model.Goal
	now := time.Now()
	query := `SELECT * FROM goals
	          WHERE user_id = $1 AND status = $2 AND target_date BETWEEN $3 AND $4
	          ORDER BY target_date ASC`

	err := r.db.Select(&goals, query, userID, model.GoalStatusActive, now, now.Add(within))
	if err != nil {
		return nil, err
	}

	return goals, nil
}
