package service

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hadikasem/AI-Financial-Advisor/internal/model"
	"github.com/hadikasem/AI-Financial-Advisor/internal/repository"
)

func validGoalInput(t *testing.T) GoalInput {
	t.Helper()
	return GoalInput{
		Name:         "Emergency cushion",
		Category:     "Emergency Fund",
		TargetAmount: decimal.NewFromInt(10000),
		TargetDate:   time.Now().AddDate(1, 0, 0),
		StartAmount:  decimal.NewFromInt(500),
	}
}

func TestGoalCreate(t *testing.T) {
	var created *model.Goal
	goalRepo := &mockGoalRepository{
		CreateFn: func(goal *model.Goal) error {
			created = goal
			return nil
		},
	}
	svc := NewGoalService(goalRepo, &mockAccountRepository{})

	goal, err := svc.Create("u1", validGoalInput(t))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created == nil {
		t.Fatal("goal not persisted")
	}
	if goal.Status != model.GoalStatusActive {
		t.Errorf("Status = %q, want active", goal.Status)
	}
	if !goal.CurrentAmount.Equal(goal.StartAmount) {
		t.Errorf("CurrentAmount = %s, want start amount %s", goal.CurrentAmount, goal.StartAmount)
	}
	if goal.StartDate.IsZero() {
		t.Error("StartDate not defaulted")
	}
}

func TestGoalCreateValidation(t *testing.T) {
	svc := NewGoalService(&mockGoalRepository{}, &mockAccountRepository{})

	tests := []struct {
		name   string
		mutate func(*GoalInput)
	}{
		{"blank name", func(in *GoalInput) { in.Name = "  " }},
		{"bad category", func(in *GoalInput) { in.Category = "Yacht" }},
		{"zero target", func(in *GoalInput) { in.TargetAmount = decimal.Zero }},
		{"past target date", func(in *GoalInput) { in.TargetDate = time.Now().AddDate(0, 0, -1) }},
		{"negative start amount", func(in *GoalInput) { in.StartAmount = decimal.NewFromInt(-5) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validGoalInput(t)
			tt.mutate(&in)

			_, err := svc.Create("u1", in)
			if err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestGoalCreateEnforcesLimit(t *testing.T) {
	goalRepo := &mockGoalRepository{
		CountActiveFn: func(userID string) (int, error) {
			return maxActiveGoals, nil
		},
	}
	svc := NewGoalService(goalRepo, &mockAccountRepository{})

	_, err := svc.Create("u1", validGoalInput(t))
	if !errors.Is(err, ErrGoalLimitReached) {
		t.Fatalf("err = %v, want %v", err, ErrGoalLimitReached)
	}
}

func TestGoalCreateChecksLinkedAccount(t *testing.T) {
	svc := NewGoalService(&mockGoalRepository{}, &mockAccountRepository{})

	in := validGoalInput(t)
	accountID := "missing"
	in.AccountID = &accountID

	_, err := svc.Create("u1", in)
	if !errors.Is(err, repository.ErrAccountNotFound) {
		t.Fatalf("err = %v, want %v", err, repository.ErrAccountNotFound)
	}
}

func TestGoalUpdatePatchesFields(t *testing.T) {
	stored := &model.Goal{
		ID:           "g1",
		UserID:       "u1",
		Name:         "Old name",
		Category:     "Vacation",
		TargetAmount: decimal.NewFromInt(5000),
		TargetDate:   time.Now().AddDate(1, 0, 0),
		StartDate:    time.Now().AddDate(0, -1, 0),
		Status:       model.GoalStatusActive,
	}
	goalRepo := &mockGoalRepository{
		ByIDFn: func(userID, goalID string) (*model.Goal, error) {
			return stored, nil
		},
	}
	svc := NewGoalService(goalRepo, &mockAccountRepository{})

	name := "New name"
	status := model.GoalStatusPaused
	goal, err := svc.Update("u1", "g1", GoalUpdateInput{Name: &name, Status: &status})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if goal.Name != "New name" {
		t.Errorf("Name = %q", goal.Name)
	}
	if goal.Status != model.GoalStatusPaused {
		t.Errorf("Status = %q", goal.Status)
	}
	if goal.Category != "Vacation" {
		t.Errorf("untouched Category changed to %q", goal.Category)
	}
}

func TestGoalUpdateRejectsBadStatus(t *testing.T) {
	stored := &model.Goal{
		ID:           "g1",
		UserID:       "u1",
		Name:         "Goal",
		Category:     "Vacation",
		TargetAmount: decimal.NewFromInt(5000),
		TargetDate:   time.Now().AddDate(1, 0, 0),
		StartDate:    time.Now().AddDate(0, -1, 0),
		Status:       model.GoalStatusActive,
	}
	goalRepo := &mockGoalRepository{
		ByIDFn: func(userID, goalID string) (*model.Goal, error) {
			return stored, nil
		},
	}
	svc := NewGoalService(goalRepo, &mockAccountRepository{})

	status := "deleted"
	_, err := svc.Update("u1", "g1", GoalUpdateInput{Status: &status})
	if err == nil {
		t.Fatal("expected error for disallowed status")
	}
}

func TestMarkCompletedIfReached(t *testing.T) {
	tests := []struct {
		name    string
		status  string
		current int64
		target  int64
		want    bool
	}{
		{"reached", model.GoalStatusActive, 10000, 10000, true},
		{"exceeded", model.GoalStatusActive, 12000, 10000, true},
		{"not reached", model.GoalStatusActive, 9999, 10000, false},
		{"paused goal ignored", model.GoalStatusPaused, 10000, 10000, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewGoalService(&mockGoalRepository{}, &mockAccountRepository{})
			goal := &model.Goal{
				Status:        tt.status,
				CurrentAmount: decimal.NewFromInt(tt.current),
				TargetAmount:  decimal.NewFromInt(tt.target),
			}

			completed, err := svc.MarkCompletedIfReached(goal)
			if err != nil {
				t.Fatalf("MarkCompletedIfReached failed: %v", err)
			}
			if completed != tt.want {
				t.Errorf("completed = %v, want %v", completed, tt.want)
			}
			if tt.want && goal.CompletedAt == nil {
				t.Error("CompletedAt not set")
			}
		})
	}
}
