package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/hadikasem/AI-Financial-Advisor/internal/ctxkeys"
	"github.com/hadikasem/AI-Financial-Advisor/internal/repository"
	"github.com/hadikasem/AI-Financial-Advisor/internal/service"
)

type AssessmentHandler struct {
	assessmentService *service.AssessmentService
}

func NewAssessmentHandler(assessmentService *service.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{
		assessmentService: assessmentService,
	}
}

// Questions returns the questionnaire without scoring internals.
func (h *AssessmentHandler) Questions(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"questions": h.assessmentService.Questions(),
	})
}

func (h *AssessmentHandler) Start(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	assessment, err := h.assessmentService.Start(user.ID)
	if err != nil {
		slog.Error("failed to start assessment", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "failed to start assessment")
		return
	}

	respondJSON(w, http.StatusCreated, assessment)
}

type answerRequest struct {
	QuestionID string `json:"question_id"`
	Answer     string `json:"answer"`
}

func (h *AssessmentHandler) Answer(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	assessmentID := r.PathValue("id")

	var req answerRequest
	err := decodeJSON(r, &req)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	assessment, err := h.assessmentService.Answer(user.ID, assessmentID, req.QuestionID, req.Answer)
	if errors.Is(err, repository.ErrAssessmentNotFound) {
		respondError(w, http.StatusNotFound, "assessment not found")
		return
	}
	if errors.Is(err, service.ErrUnknownQuestion) || errors.Is(err, service.ErrInvalidAnswer) {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if errors.Is(err, service.ErrAssessmentDone) {
		respondError(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		slog.Error("failed to record answer", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "failed to record answer")
		return
	}

	respondJSON(w, http.StatusOK, assessment)
}

func (h *AssessmentHandler) Complete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	assessmentID := r.PathValue("id")

	assessment, err := h.assessmentService.Complete(user.ID, assessmentID)
	if errors.Is(err, repository.ErrAssessmentNotFound) {
		respondError(w, http.StatusNotFound, "assessment not found")
		return
	}
	if errors.Is(err, service.ErrAssessmentIncomplete) {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if errors.Is(err, service.ErrAssessmentDone) {
		respondError(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		slog.Error("failed to complete assessment", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "failed to complete assessment")
		return
	}

	respondJSON(w, http.StatusOK, assessment)
}

// Latest returns the user's most recent completed assessment.
func (h *AssessmentHandler) Latest(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	assessment, err := h.assessmentService.Latest(user.ID)
	if errors.Is(err, repository.ErrAssessmentNotFound) {
		respondError(w, http.StatusNotFound, "no completed assessment found")
		return
	}
	if err != nil {
		slog.Error("failed to load assessment", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "failed to load assessment")
		return
	}

	respondJSON(w, http.StatusOK, assessment)
}

func (h *AssessmentHandler) History(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	assessments, err := h.assessmentService.History(user.ID)
	if err != nil {
		slog.Error("failed to load assessment history", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "failed to load assessment history")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"assessments": assessments,
	})
}
