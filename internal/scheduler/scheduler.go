package scheduler

import (
	"errors"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"

	"github.com/hadikasem/AI-Financial-Advisor/internal/config"
	"github.com/hadikasem/AI-Financial-Advisor/internal/repository"
	"github.com/hadikasem/AI-Financial-Advisor/internal/service"
)

// Scheduler runs the periodic background sweeps: a weekly progress update
// for every active user and a daily deadline reminder check.
type Scheduler struct {
	cron                *cron.Cron
	cfg                 *config.Config
	userRepository      repository.UserRepository
	goalRepository      repository.GoalRepository
	progressService     *service.ProgressService
	goalService         *service.GoalService
	gamificationService *service.GamificationService
	notificationService *service.NotificationService
}

func New(
	cfg *config.Config,
	userRepository repository.UserRepository,
	goalRepository repository.GoalRepository,
	progressService *service.ProgressService,
	goalService *service.GoalService,
	gamificationService *service.GamificationService,
	notificationService *service.NotificationService,
) *Scheduler {
	return &Scheduler{
		cron:                cron.New(),
		cfg:                 cfg,
		userRepository:      userRepository,
		goalRepository:      goalRepository,
		progressService:     progressService,
		goalService:         goalService,
		gamificationService: gamificationService,
		notificationService: notificationService,
	}
}

// Start registers the cron entries and launches the scheduler goroutine.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.cfg.WeeklyProgressSpec, s.weeklySweep)
	if err != nil {
		return err
	}

	_, err = s.cron.AddFunc(s.cfg.DeadlineCheckSpec, s.deadlineSweep)
	if err != nil {
		return err
	}

	s.cron.Start()
	slog.Info("scheduler started",
		"weekly_spec", s.cfg.WeeklyProgressSpec,
		"deadline_spec", s.cfg.DeadlineCheckSpec,
	)

	return nil
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// weeklySweep recomputes progress for every active user, sends weekly
// update notifications and awards milestone points.
func (s *Scheduler) weeklySweep() {
	userIDs, err := s.userRepository.ActiveUserIDs()
	if err != nil {
		slog.Error("weekly sweep failed to list users", "error", err)
		return
	}

	slog.Info("weekly progress sweep started", "users", len(userIDs))

	for _, userID := range userIDs {
		s.sweepUser(userID)
	}

	slog.Info("weekly progress sweep finished")
}

func (s *Scheduler) sweepUser(userID string) {
	result, err := s.progressService.UpdateProgress(userID)
	if err != nil {
		if errors.Is(err, service.ErrNoActiveGoals) {
			return
		}
		slog.Error("weekly sweep failed for user", "error", err, "user_id", userID)
		return
	}

	saved := decimal.Zero
	for _, progress := range result.Goals {
		goal, err := s.goalRepository.ByID(userID, progress.GoalID)
		if err != nil {
			slog.Warn("weekly sweep skipped goal", "error", err, "goal_id", progress.GoalID)
			continue
		}

		if progress.CurrentAmount.GreaterThan(saved) {
			saved = progress.CurrentAmount
		}

		err = s.notificationService.SendWeeklyUpdate(userID, goal, &progress)
		if err != nil {
			slog.Warn("failed to send weekly update", "error", err, "goal_id", goal.ID)
		}

		err = s.notificationService.SendMilestones(userID, goal, progress.ProgressPct)
		if err != nil {
			slog.Warn("failed to send milestone notifications", "error", err, "goal_id", goal.ID)
		}

		completed, err := s.goalService.MarkCompletedIfReached(goal)
		if err != nil {
			slog.Warn("failed to mark goal completed", "error", err, "goal_id", goal.ID)
		} else if completed {
			slog.Info("goal completed", "user_id", userID, "goal_id", goal.ID)
		}
	}

	_, err = s.gamificationService.CheckMilestones(userID, saved)
	if err != nil {
		slog.Warn("failed to check gamification milestones", "error", err, "user_id", userID)
	}
}

// deadlineSweep sends reminders for goals due within the next 30 days.
func (s *Scheduler) deadlineSweep() {
	userIDs, err := s.userRepository.ActiveUserIDs()
	if err != nil {
		slog.Error("deadline sweep failed to list users", "error", err)
		return
	}

	for _, userID := range userIDs {
		goals, err := s.goalRepository.DueWithin(userID, 30*24*time.Hour)
		if err != nil {
			slog.Warn("deadline sweep failed for user", "error", err, "user_id", userID)
			continue
		}

		for _, goal := range goals {
			daysRemaining := int(time.Until(goal.TargetDate).Hours() / 24)

			err = s.notificationService.SendDeadlineReminder(userID, goal, daysRemaining)
			if err != nil {
				slog.Warn("failed to send deadline reminder", "error", err, "goal_id", goal.ID)
			}
		}
	}
}
