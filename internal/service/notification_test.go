package service

import (
	"testing"
	"time"

	"github.com/hadikasem/AI-Financial-Advisor/internal/model"
)

func newTestNotificationService(existingTitles map[string]bool, recentWeekly bool) (*NotificationService, *[]*model.Notification) {
	var stored []*model.Notification

	notificationRepo := &mockNotificationRepository{
		CreateFn: func(notification *model.Notification) error {
			stored = append(stored, notification)
			return nil
		},
		ExistsByTitleFn: func(userID, goalID, notificationType, title string) (bool, error) {
			return existingTitles[title], nil
		},
		ExistsSinceFn: func(userID, goalID, notificationType string, since time.Time) (bool, error) {
			return recentWeekly, nil
		},
	}
	userRepo := &mockUserRepository{
		ByIDFn: func(id string) (*model.User, error) {
			return &model.User{ID: id, Email: "user@example.com", FullName: "Test User"}, nil
		},
	}
	emailService := NewEmailService("", "advisor@example.com", "http://localhost:8080", "Financial Advisor", true)

	return NewNotificationService(notificationRepo, userRepo, emailService), &stored
}

func TestSendMilestonesCrossedMarks(t *testing.T) {
	svc, stored := newTestNotificationService(nil, false)
	goal := &model.Goal{ID: "g1", Name: "House fund"}

	err := svc.SendMilestones("u1", goal, 60)
	if err != nil {
		t.Fatalf("SendMilestones failed: %v", err)
	}

	// 25% and 50% are crossed at 60%
	if len(*stored) != 2 {
		t.Fatalf("got %d notifications, want 2", len(*stored))
	}
	if (*stored)[0].Title != "25% Milestone Reached" {
		t.Errorf("first title = %q", (*stored)[0].Title)
	}
	if (*stored)[1].Title != "50% Milestone Reached" {
		t.Errorf("second title = %q", (*stored)[1].Title)
	}
	for _, n := range *stored {
		if n.Type != model.NotificationTypeMilestone {
			t.Errorf("type = %q", n.Type)
		}
		if n.GoalID == nil || *n.GoalID != "g1" {
			t.Errorf("GoalID = %v", n.GoalID)
		}
	}
}

func TestSendMilestonesDeduplicates(t *testing.T) {
	svc, stored := newTestNotificationService(map[string]bool{
		"25% Milestone Reached": true,
		"50% Milestone Reached": true,
	}, false)
	goal := &model.Goal{ID: "g1", Name: "House fund"}

	err := svc.SendMilestones("u1", goal, 80)
	if err != nil {
		t.Fatalf("SendMilestones failed: %v", err)
	}

	if len(*stored) != 1 {
		t.Fatalf("got %d notifications, want 1", len(*stored))
	}
	if (*stored)[0].Title != "75% Milestone Reached" {
		t.Errorf("title = %q", (*stored)[0].Title)
	}
}

func TestSendDeadlineReminder(t *testing.T) {
	tests := []struct {
		name      string
		days      int
		wantTitle string
		wantCount int
	}{
		{"far out is skipped", 45, "", 0},
		{"already passed is skipped", 0, "", 0},
		{"thirty days", 30, "Goal Progress Update", 1},
		{"two weeks", 14, "Goal Deadline Reminder", 1},
		{"final week", 5, "Goal Deadline Approaching", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, stored := newTestNotificationService(nil, false)
			goal := &model.Goal{ID: "g1", Name: "House fund"}

			err := svc.SendDeadlineReminder("u1", goal, tt.days)
			if err != nil {
				t.Fatalf("SendDeadlineReminder failed: %v", err)
			}
			if len(*stored) != tt.wantCount {
				t.Fatalf("got %d notifications, want %d", len(*stored), tt.wantCount)
			}
			if tt.wantCount > 0 && (*stored)[0].Title != tt.wantTitle {
				t.Errorf("title = %q, want %q", (*stored)[0].Title, tt.wantTitle)
			}
		})
	}
}

func TestSendWeeklyUpdateOncePerWeek(t *testing.T) {
	goal := &model.Goal{ID: "g1", Name: "House fund"}
	progress := &GoalProgress{ProgressPct: 45, PacingStatus: model.PacingOnTrack, PacingDetail: "On track with target pace"}

	t.Run("sends when none this week", func(t *testing.T) {
		svc, stored := newTestNotificationService(nil, false)

		err := svc.SendWeeklyUpdate("u1", goal, progress)
		if err != nil {
			t.Fatalf("SendWeeklyUpdate failed: %v", err)
		}
		if len(*stored) != 1 {
			t.Fatalf("got %d notifications, want 1", len(*stored))
		}
		if (*stored)[0].Type != model.NotificationTypeWeeklyUpdate {
			t.Errorf("type = %q", (*stored)[0].Type)
		}
	})

	t.Run("skips when one exists this week", func(t *testing.T) {
		svc, stored := newTestNotificationService(nil, true)

		err := svc.SendWeeklyUpdate("u1", goal, progress)
		if err != nil {
			t.Fatalf("SendWeeklyUpdate failed: %v", err)
		}
		if len(*stored) != 0 {
			t.Fatalf("got %d notifications, want 0", len(*stored))
		}
	})
}

func TestSendRecommendations(t *testing.T) {
	svc, stored := newTestNotificationService(nil, false)

	err := svc.SendRecommendations("u1", nil, []string{"Save more", "Spend less"})
	if err != nil {
		t.Fatalf("SendRecommendations failed: %v", err)
	}
	if len(*stored) != 1 {
		t.Fatalf("got %d notifications, want 1", len(*stored))
	}
	n := (*stored)[0]
	if n.Type != model.NotificationTypeRecommendation {
		t.Errorf("type = %q", n.Type)
	}
	if n.Message != "1. Save more\n2. Spend less\n" {
		t.Errorf("message = %q", n.Message)
	}

	// Nothing to store for an empty list
	err = svc.SendRecommendations("u1", nil, nil)
	if err != nil {
		t.Fatalf("SendRecommendations failed: %v", err)
	}
	if len(*stored) != 1 {
		t.Errorf("empty recommendations created a notification")
	}
}
