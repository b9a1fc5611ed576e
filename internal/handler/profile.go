package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/hadikasem/AI-Financial-Advisor/internal/ctxkeys"
	"github.com/hadikasem/AI-Financial-Advisor/internal/repository"
	"github.com/hadikasem/AI-Financial-Advisor/internal/validation"
)

type ProfileHandler struct {
	userRepository repository.UserRepository
}

func NewProfileHandler(userRepository repository.UserRepository) *ProfileHandler {
	return &ProfileHandler{
		userRepository: userRepository,
	}
}

// Me returns the authenticated user's profile.
func (h *ProfileHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	respondJSON(w, http.StatusOK, user)
}

type updateProfileRequest struct {
	FullName *string `json:"full_name"`
	Phone    *string `json:"phone"`
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req updateProfileRequest
	err := decodeJSON(r, &req)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Re-read so we never persist the blanked password hash from the context
	current, err := h.userRepository.ByID(user.ID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			respondError(w, http.StatusNotFound, "user not found")
			return
		}
		slog.Error("failed to load user", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "failed to update profile")
		return
	}

	if req.FullName != nil {
		name := strings.TrimSpace(*req.FullName)
		err = validation.ValidateName(name)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		current.FullName = name
	}
	if req.Phone != nil {
		current.Phone = req.Phone
	}

	err = h.userRepository.Update(current)
	if err != nil {
		slog.Error("failed to update profile", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "failed to update profile")
		return
	}

	current.PasswordHash = ""
	respondJSON(w, http.StatusOK, current)
}
