package service

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hadikasem/AI-Financial-Advisor/internal/model"
	"github.com/hadikasem/AI-Financial-Advisor/internal/repository"
)

// progressMilestones are the percentage marks that trigger a notification.
var progressMilestones = []int{25, 50, 75, 100}

type NotificationService struct {
	notificationRepository repository.NotificationRepository
	userRepository         repository.UserRepository
	emailService           *EmailService
}

func NewNotificationService(
	notificationRepository repository.NotificationRepository,
	userRepository repository.UserRepository,
	emailService *EmailService,
) *NotificationService {
	return &NotificationService{
		notificationRepository: notificationRepository,
		userRepository:         userRepository,
		emailService:           emailService,
	}
}

func (s *NotificationService) create(userID string, goalID *string, notificationType, title, message string, emailed bool) error {
	return s.notificationRepository.Create(&model.Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		GoalID:    goalID,
		Type:      notificationType,
		Title:     title,
		Message:   message,
		SentEmail: emailed,
		CreatedAt: time.Now(),
	})
}

// SendMilestones notifies once per crossed progress mark per goal.
func (s *NotificationService) SendMilestones(userID string, goal *model.Goal, progressPct float64) error {
	for _, milestone := range progressMilestones {
		if progressPct < float64(milestone) {
			continue
		}

		title := fmt.Sprintf("%d%% Milestone Reached", milestone)
		exists, err := s.notificationRepository.ExistsByTitle(userID, goal.ID, model.NotificationTypeMilestone, title)
		if err != nil {
			return fmt.Errorf("failed to check milestone notification: %w", err)
		}
		if exists {
			continue
		}

		message := fmt.Sprintf("Congratulations! You've reached %d%% of your goal %q. Keep up the great work!", milestone, goal.Name)

		emailed := s.emailMilestone(userID, goal.Name, float64(milestone))
		err = s.create(userID, &goal.ID, model.NotificationTypeMilestone, title, message, emailed)
		if err != nil {
			return fmt.Errorf("failed to create milestone notification: %w", err)
		}
	}

	return nil
}

// SendDeadlineReminder notifies when a goal is within 30 days of its target
// date, with wording that escalates as the date gets closer.
func (s *NotificationService) SendDeadlineReminder(userID string, goal *model.Goal, daysRemaining int) error {
	if daysRemaining <= 0 || daysRemaining > 30 {
		return nil
	}

	var title, message string
	switch {
	case daysRemaining <= 7:
		title = "Goal Deadline Approaching"
		message = fmt.Sprintf("Your goal %q deadline is in %d days. Consider adjusting your timeline or increasing your savings rate.", goal.Name, daysRemaining)
	case daysRemaining <= 14:
		title = "Goal Deadline Reminder"
		message = fmt.Sprintf("Your goal %q deadline is in %d days. You're on track to meet your target!", goal.Name, daysRemaining)
	default:
		title = "Goal Progress Update"
		message = fmt.Sprintf("Your goal %q deadline is in %d days. Keep up the momentum!", goal.Name, daysRemaining)
	}

	exists, err := s.notificationRepository.ExistsByTitle(userID, goal.ID, model.NotificationTypeDeadline, title)
	if err != nil {
		return fmt.Errorf("failed to check deadline notification: %w", err)
	}
	if exists {
		return nil
	}

	emailed := s.emailDeadline(userID, goal.Name, daysRemaining)
	err = s.create(userID, &goal.ID, model.NotificationTypeDeadline, title, message, emailed)
	if err != nil {
		return fmt.Errorf("failed to create deadline notification: %w", err)
	}

	return nil
}

// SendWeeklyUpdate posts at most one progress summary per goal per week.
func (s *NotificationService) SendWeeklyUpdate(userID string, goal *model.Goal, progress *GoalProgress) error {
	weekStart := time.Now().AddDate(0, 0, -7)
	exists, err := s.notificationRepository.ExistsSince(userID, goal.ID, model.NotificationTypeWeeklyUpdate, weekStart)
	if err != nil {
		return fmt.Errorf("failed to check weekly notification: %w", err)
	}
	if exists {
		return nil
	}

	title := fmt.Sprintf("Weekly Progress Update: %s", goal.Name)
	message := fmt.Sprintf("Progress: %.1f%%\nStatus: %s\n%s\n\nKeep up the great work toward your goal!",
		progress.ProgressPct, progress.PacingStatus, progress.PacingDetail)

	emailed := s.emailWeekly(userID, message)
	err = s.create(userID, &goal.ID, model.NotificationTypeWeeklyUpdate, title, message, emailed)
	if err != nil {
		return fmt.Errorf("failed to create weekly notification: %w", err)
	}

	return nil
}

// SendRecommendations stores advisor output as an in-app notification.
func (s *NotificationService) SendRecommendations(userID string, goalID *string, recommendations []string) error {
	if len(recommendations) == 0 {
		return nil
	}

	message := ""
	for i, r := range recommendations {
		message += fmt.Sprintf("%d. %s\n", i+1, r)
	}

	return s.create(userID, goalID, model.NotificationTypeRecommendation, "New Recommendations", message, false)
}

func (s *NotificationService) List(userID string, unreadOnly bool, limit int) ([]*model.Notification, error) {
	return s.notificationRepository.List(userID, unreadOnly, limit)
}

func (s *NotificationService) CountUnread(userID string) (int, error) {
	return s.notificationRepository.CountUnread(userID)
}

func (s *NotificationService) MarkRead(userID, notificationID string) error {
	return s.notificationRepository.MarkRead(userID, notificationID)
}

func (s *NotificationService) MarkAllRead(userID string) error {
	return s.notificationRepository.MarkAllRead(userID)
}

func (s *NotificationService) emailMilestone(userID, goalName string, pct float64) bool {
	user, err := s.userRepository.ByID(userID)
	if err != nil {
		return false
	}
	err = s.emailService.SendMilestoneEmail(user.Email, user.FullName, goalName, pct)
	if err != nil {
		slog.Warn("failed to send milestone email", "error", err, "user_id", userID)
		return false
	}
	return true
}

func (s *NotificationService) emailDeadline(userID, goalName string, daysLeft int) bool {
	user, err := s.userRepository.ByID(userID)
	if err != nil {
		return false
	}
	err = s.emailService.SendDeadlineEmail(user.Email, user.FullName, goalName, daysLeft)
	if err != nil {
		slog.Warn("failed to send deadline email", "error", err, "user_id", userID)
		return false
	}
	return true
}

func (s *NotificationService) emailWeekly(userID, summary string) bool {
	user, err := s.userRepository.ByID(userID)
	if err != nil {
		return false
	}
	err = s.emailService.SendWeeklyUpdateEmail(user.Email, user.FullName, summary)
	if err != nil {
		slog.Warn("failed to send weekly update email", "error", err, "user_id", userID)
		return false
	}
	return true
}
