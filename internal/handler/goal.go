package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hadikasem/AI-Financial-Advisor/internal/ctxkeys"
	"github.com/hadikasem/AI-Financial-Advisor/internal/model"
	"github.com/hadikasem/AI-Financial-Advisor/internal/repository"
	"github.com/hadikasem/AI-Financial-Advisor/internal/service"
	"github.com/hadikasem/AI-Financial-Advisor/internal/service/advisor"
)

type GoalHandler struct {
	goalService    *service.GoalService
	advisorService *advisor.Service
}

func NewGoalHandler(goalService *service.GoalService, advisorService *advisor.Service) *GoalHandler {
	return &GoalHandler{
		goalService:    goalService,
		advisorService: advisorService,
	}
}

// parseDate accepts date-only and RFC3339 timestamps.
func parseDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	sortBy := r.URL.Query().Get("sort")
	if sortBy == "" {
		sortBy = repository.GoalSortRecent
	}

	goals, err := h.goalService.Goals(user.ID, sortBy)
	if err != nil {
		slog.Error("failed to load goals", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "failed to load goals")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"goals": goals,
	})
}

func (h *GoalHandler) Categories(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"categories": model.GoalCategories,
	})
}

type createGoalRequest struct {
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Category     string          `json:"category"`
	TargetAmount decimal.Decimal `json:"target_amount"`
	TargetDate   string          `json:"target_date"`
	StartAmount  decimal.Decimal `json:"start_amount"`
	StartDate    string          `json:"start_date"`
	AccountID    *string         `json:"account_id"`
}

func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req createGoalRequest
	err := decodeJSON(r, &req)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	targetDate, err := parseDate(req.TargetDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid target_date")
		return
	}

	var startDate time.Time
	if req.StartDate != "" {
		startDate, err = parseDate(req.StartDate)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid start_date")
			return
		}
	}

	goal, err := h.goalService.Create(user.ID, service.GoalInput{
		Name:         req.Name,
		Description:  req.Description,
		Category:     req.Category,
		TargetAmount: req.TargetAmount,
		TargetDate:   targetDate,
		StartAmount:  req.StartAmount,
		StartDate:    startDate,
		AccountID:    req.AccountID,
	})
	if errors.Is(err, service.ErrGoalLimitReached) {
		respondError(w, http.StatusConflict, err.Error())
		return
	}
	if errors.Is(err, repository.ErrAccountNotFound) {
		respondError(w, http.StatusBadRequest, "account not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, goal)
}

func (h *GoalHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	goalID := r.PathValue("id")

	goal, err := h.goalService.ByID(user.ID, goalID)
	if errors.Is(err, repository.ErrGoalNotFound) {
		respondError(w, http.StatusNotFound, "goal not found")
		return
	}
	if err != nil {
		slog.Error("failed to load goal", "error", err, "user_id", user.ID, "goal_id", goalID)
		respondError(w, http.StatusInternalServerError, "failed to load goal")
		return
	}

	respondJSON(w, http.StatusOK, goal)
}

type updateGoalRequest struct {
	Name         *string          `json:"name"`
	Description  *string          `json:"description"`
	Category     *string          `json:"category"`
	TargetAmount *decimal.Decimal `json:"target_amount"`
	TargetDate   *string          `json:"target_date"`
	Status       *string          `json:"status"`
	AccountID    *string          `json:"account_id"`
}

func (h *GoalHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	goalID := r.PathValue("id")

	var req updateGoalRequest
	err := decodeJSON(r, &req)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	in := service.GoalUpdateInput{
		Name:         req.Name,
		Description:  req.Description,
		Category:     req.Category,
		TargetAmount: req.TargetAmount,
		Status:       req.Status,
		AccountID:    req.AccountID,
	}
	if req.TargetDate != nil {
		targetDate, err := parseDate(*req.TargetDate)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid target_date")
			return
		}
		in.TargetDate = &targetDate
	}

	goal, err := h.goalService.Update(user.ID, goalID, in)
	if errors.Is(err, repository.ErrGoalNotFound) {
		respondError(w, http.StatusNotFound, "goal not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, goal)
}

func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	goalID := r.PathValue("id")

	err := h.goalService.Delete(user.ID, goalID)
	if errors.Is(err, repository.ErrGoalNotFound) {
		respondError(w, http.StatusNotFound, "goal not found")
		return
	}
	if err != nil {
		slog.Error("failed to delete goal", "error", err, "user_id", user.ID, "goal_id", goalID)
		respondError(w, http.StatusInternalServerError, "failed to delete goal")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "goal deleted"})
}

// Suggestions proposes new goals based on the user's risk profile.
func (h *GoalHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	result, err := h.advisorService.GoalSuggestions(r.Context(), user.ID)
	if err != nil {
		slog.Error("failed to generate goal suggestions", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "failed to generate suggestions")
		return
	}

	respondJSON(w, http.StatusOK, result)
}
