package service

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hadikasem/AI-Financial-Advisor/internal/model"
	"github.com/hadikasem/AI-Financial-Advisor/internal/repository"
	"github.com/hadikasem/AI-Financial-Advisor/internal/validation"
)

var (
	ErrGoalLimitReached = errors.New("maximum number of active goals reached")
)

// maxActiveGoals caps how many goals a user can run at once.
const maxActiveGoals = 10

type GoalService struct {
	goalRepository    repository.GoalRepository
	accountRepository repository.AccountRepository
}

func NewGoalService(
	goalRepository repository.GoalRepository,
	accountRepository repository.AccountRepository,
) *GoalService {
	return &GoalService{
		goalRepository:    goalRepository,
		accountRepository: accountRepository,
	}
}

type GoalInput struct {
	Name         string
	Description  string
	Category     string
	TargetAmount decimal.Decimal
	TargetDate   time.Time
	StartAmount  decimal.Decimal
	StartDate    time.Time
	AccountID    *string
}

func (s *GoalService) Create(userID string, in GoalInput) (*model.Goal, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.StartDate.IsZero() {
		in.StartDate = time.Now()
	}

	err := validateGoalInput(in)
	if err != nil {
		return nil, err
	}

	count, err := s.goalRepository.CountActive(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count goals: %w", err)
	}
	if count >= maxActiveGoals {
		return nil, ErrGoalLimitReached
	}

	if in.AccountID != nil {
		_, err := s.accountRepository.ByID(userID, *in.AccountID)
		if err != nil {
			return nil, fmt.Errorf("linked account: %w", err)
		}
	}

	now := time.Now()
	goal := &model.Goal{
		ID:            uuid.New().String(),
		UserID:        userID,
		AccountID:     in.AccountID,
		Name:          in.Name,
		Description:   in.Description,
		Category:      in.Category,
		TargetAmount:  in.TargetAmount,
		TargetDate:    in.TargetDate,
		StartAmount:   in.StartAmount,
		StartDate:     in.StartDate,
		CurrentAmount: in.StartAmount,
		Status:        model.GoalStatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = s.goalRepository.Create(goal)
	if err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	slog.Info("goal created", "user_id", userID, "goal_id", goal.ID, "category", goal.Category)
	return goal, nil
}

func (s *GoalService) ByID(userID, goalID string) (*model.Goal, error) {
	return s.goalRepository.ByID(userID, goalID)
}

func (s *GoalService) Goals(userID, sortBy string) ([]*model.Goal, error) {
	return s.goalRepository.Goals(userID, sortBy)
}

type GoalUpdateInput struct {
	Name         *string
	Description  *string
	Category     *string
	TargetAmount *decimal.Decimal
	TargetDate   *time.Time
	Status       *string
	AccountID    *string
}

func (s *GoalService) Update(userID, goalID string, in GoalUpdateInput) (*model.Goal, error) {
	goal, err := s.goalRepository.ByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		goal.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		goal.Description = *in.Description
	}
	if in.Category != nil {
		goal.Category = *in.Category
	}
	if in.TargetAmount != nil {
		goal.TargetAmount = *in.TargetAmount
	}
	if in.TargetDate != nil {
		goal.TargetDate = *in.TargetDate
	}
	if in.AccountID != nil {
		_, err := s.accountRepository.ByID(userID, *in.AccountID)
		if err != nil {
			return nil, fmt.Errorf("linked account: %w", err)
		}
		goal.AccountID = in.AccountID
	}
	if in.Status != nil {
		switch *in.Status {
		case model.GoalStatusActive, model.GoalStatusPaused, model.GoalStatusCompleted:
			goal.Status = *in.Status
		default:
			return nil, errors.New("invalid goal status")
		}
	}

	err = validateGoalInput(GoalInput{
		Name:         goal.Name,
		Category:     goal.Category,
		TargetAmount: goal.TargetAmount,
		TargetDate:   goal.TargetDate,
		StartAmount:  goal.StartAmount,
		StartDate:    goal.StartDate,
	})
	if err != nil {
		return nil, err
	}

	err = s.goalRepository.Update(goal)
	if err != nil {
		return nil, err
	}

	return goal, nil
}

func (s *GoalService) Delete(userID, goalID string) error {
	return s.goalRepository.Delete(userID, goalID)
}

// MarkCompletedIfReached flips the goal to completed when the current amount
// covers the target. Returns true when the transition happened.
func (s *GoalService) MarkCompletedIfReached(goal *model.Goal) (bool, error) {
	if !goal.IsActive() || goal.CurrentAmount.LessThan(goal.TargetAmount) {
		return false, nil
	}

	now := time.Now()
	goal.Status = model.GoalStatusCompleted
	goal.CompletedAt = &now

	err := s.goalRepository.Update(goal)
	if err != nil {
		return false, fmt.Errorf("failed to complete goal: %w", err)
	}

	slog.Info("goal completed", "user_id", goal.UserID, "goal_id", goal.ID)
	return true, nil
}

func validateGoalInput(in GoalInput) error {
	err := validation.ValidateGoal(in.Name, in.Category, in.TargetAmount, in.TargetDate, in.StartDate)
	if err != nil {
		return err
	}
	if in.StartAmount.IsNegative() {
		return errors.New("start amount cannot be negative")
	}
	return nil
}
