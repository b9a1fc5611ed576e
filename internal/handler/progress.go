package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/hadikasem/AI-Financial-Advisor/internal/ctxkeys"
	"github.com/hadikasem/AI-Financial-Advisor/internal/repository"
	"github.com/hadikasem/AI-Financial-Advisor/internal/service"
)

type ProgressHandler struct {
	progressService     *service.ProgressService
	goalService         *service.GoalService
	gamificationService *service.GamificationService
	notificationService *service.NotificationService
	goalRepository      repository.GoalRepository
}

func NewProgressHandler(
	progressService *service.ProgressService,
	goalService *service.GoalService,
	gamificationService *service.GamificationService,
	notificationService *service.NotificationService,
	goalRepository repository.GoalRepository,
) *ProgressHandler {
	return &ProgressHandler{
		progressService:     progressService,
		goalService:         goalService,
		gamificationService: gamificationService,
		notificationService: notificationService,
		goalRepository:      goalRepository,
	}
}

// Update advances the simulation, recomputes progress for every active goal
// and fires the resulting milestone notifications and streak update.
func (h *ProgressHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	result, err := h.progressService.UpdateProgress(user.ID)
	if errors.Is(err, service.ErrNoActiveGoals) {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		slog.Error("failed to update progress", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "failed to update progress")
		return
	}

	for _, progress := range result.Goals {
		goal, err := h.goalRepository.ByID(user.ID, progress.GoalID)
		if err != nil {
			continue
		}

		err = h.notificationService.SendMilestones(user.ID, goal, progress.ProgressPct)
		if err != nil {
			slog.Warn("failed to send milestone notifications", "error", err, "goal_id", goal.ID)
		}

		_, err = h.goalService.MarkCompletedIfReached(goal)
		if err != nil {
			slog.Warn("failed to mark goal completed", "error", err, "goal_id", goal.ID)
		}
	}

	streak, err := h.gamificationService.UpdateStreak(user.ID, time.Now())
	if err != nil {
		slog.Warn("failed to update streak", "error", err, "user_id", user.ID)
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"progress": result,
		"streak":   streak,
	})
}

func (h *ProgressHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	goalID := r.PathValue("id")

	progress, err := h.progressService.Progress(user.ID, goalID)
	if errors.Is(err, repository.ErrGoalNotFound) {
		respondError(w, http.StatusNotFound, "goal not found")
		return
	}
	if err != nil {
		slog.Error("failed to load progress", "error", err, "user_id", user.ID, "goal_id", goalID)
		respondError(w, http.StatusInternalServerError, "failed to load progress")
		return
	}

	respondJSON(w, http.StatusOK, progress)
}

func (h *ProgressHandler) History(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	goalID := r.PathValue("id")

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			respondError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	snapshots, err := h.progressService.History(user.ID, goalID, limit)
	if err != nil {
		slog.Error("failed to load progress history", "error", err, "user_id", user.ID, "goal_id", goalID)
		respondError(w, http.StatusInternalServerError, "failed to load progress history")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"snapshots": snapshots,
	})
}
