package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/hadikasem/AI-Financial-Advisor/internal/ctxkeys"
	"github.com/hadikasem/AI-Financial-Advisor/internal/service"
)

type GamificationHandler struct {
	gamificationService *service.GamificationService
}

func NewGamificationHandler(gamificationService *service.GamificationService) *GamificationHandler {
	return &GamificationHandler{
		gamificationService: gamificationService,
	}
}

// Data returns points, level, streak and milestone state for the user.
func (h *GamificationHandler) Data(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	data, err := h.gamificationService.Data(user.ID)
	if err != nil {
		slog.Error("failed to load gamification data", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "failed to load gamification data")
		return
	}

	respondJSON(w, http.StatusOK, data)
}

// CheckIn records a daily activity for streak tracking.
func (h *GamificationHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	streak, err := h.gamificationService.UpdateStreak(user.ID, time.Now())
	if err != nil {
		slog.Error("failed to update streak", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "failed to update streak")
		return
	}

	respondJSON(w, http.StatusOK, streak)
}

func (h *GamificationHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 || parsed > 100 {
			respondError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	entries, err := h.gamificationService.Leaderboard(limit)
	if err != nil {
		slog.Error("failed to load leaderboard", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load leaderboard")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"leaderboard": entries,
	})
}
