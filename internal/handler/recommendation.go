package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/hadikasem/AI-Financial-Advisor/internal/ctxkeys"
	"github.com/hadikasem/AI-Financial-Advisor/internal/repository"
	"github.com/hadikasem/AI-Financial-Advisor/internal/service"
	"github.com/hadikasem/AI-Financial-Advisor/internal/service/advisor"
)

type RecommendationHandler struct {
	advisorService      *advisor.Service
	notificationService *service.NotificationService
}

func NewRecommendationHandler(
	advisorService *advisor.Service,
	notificationService *service.NotificationService,
) *RecommendationHandler {
	return &RecommendationHandler{
		advisorService:      advisorService,
		notificationService: notificationService,
	}
}

// Recommendations returns savings advice, scoped to a goal when goal_id is
// present. Advice is also stored as a notification for later reading.
func (h *RecommendationHandler) Recommendations(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	goalID := r.URL.Query().Get("goal_id")

	result, err := h.advisorService.Recommendations(r.Context(), user.ID, goalID)
	if errors.Is(err, repository.ErrGoalNotFound) {
		respondError(w, http.StatusNotFound, "goal not found")
		return
	}
	if err != nil {
		slog.Error("failed to generate recommendations", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "failed to generate recommendations")
		return
	}

	var notifyGoalID *string
	if goalID != "" {
		notifyGoalID = &goalID
	}
	err = h.notificationService.SendRecommendations(user.ID, notifyGoalID, result.Recommendations)
	if err != nil {
		slog.Warn("failed to store recommendations", "error", err, "user_id", user.ID)
	}

	respondJSON(w, http.StatusOK, result)
}

type explainRequest struct {
	Term string `json:"term"`
}

// Explain defines a financial term in plain language.
func (h *RecommendationHandler) Explain(w http.ResponseWriter, r *http.Request) {
	var req explainRequest
	err := decodeJSON(r, &req)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Term == "" {
		respondError(w, http.StatusBadRequest, "term is required")
		return
	}

	explanation := h.advisorService.ExplainTerm(r.Context(), req.Term)

	respondJSON(w, http.StatusOK, map[string]string{
		"term":        req.Term,
		"explanation": explanation,
	})
}

type helpRequest struct {
	Question string `json:"question"`
	Context  string `json:"context"`
}

// Help answers a free-form financial question.
func (h *RecommendationHandler) Help(w http.ResponseWriter, r *http.Request) {
	var req helpRequest
	err := decodeJSON(r, &req)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Question == "" {
		respondError(w, http.StatusBadRequest, "question is required")
		return
	}

	answer := h.advisorService.Help(r.Context(), req.Question, req.Context)

	respondJSON(w, http.StatusOK, map[string]string{"answer": answer})
}

// ProviderStatus reports reachability of each configured LLM backend, primary
// first.
func (h *RecommendationHandler) ProviderStatus(w http.ResponseWriter, r *http.Request) {
	status := h.advisorService.ProviderStatus(r.Context())

	active := ""
	if len(status) > 0 {
		active = status[0].Name
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"active":    active,
		"providers": status,
	})
}
