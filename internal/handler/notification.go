package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/hadikasem/AI-Financial-Advisor/internal/ctxkeys"
	"github.com/hadikasem/AI-Financial-Advisor/internal/repository"
	"github.com/hadikasem/AI-Financial-Advisor/internal/service"
)

type NotificationHandler struct {
	notificationService *service.NotificationService
}

func NewNotificationHandler(notificationService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
	}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	unreadOnly := r.URL.Query().Get("unread") == "true"

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			respondError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	notifications, err := h.notificationService.List(user.ID, unreadOnly, limit)
	if err != nil {
		slog.Error("failed to load notifications", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "failed to load notifications")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"notifications": notifications,
	})
}

func (h *NotificationHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	count, err := h.notificationService.CountUnread(user.ID)
	if err != nil {
		slog.Error("failed to count notifications", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "failed to count notifications")
		return
	}

	respondJSON(w, http.StatusOK, map[string]int{
		"unread": count,
	})
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	notificationID := r.PathValue("id")

	err := h.notificationService.MarkRead(user.ID, notificationID)
	if errors.Is(err, repository.ErrNotificationNotFound) {
		respondError(w, http.StatusNotFound, "notification not found")
		return
	}
	if err != nil {
		slog.Error("failed to mark notification read", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "failed to mark notification read")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "notification marked read"})
}

func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	err := h.notificationService.MarkAllRead(user.ID)
	if err != nil {
		slog.Error("failed to mark notifications read", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "failed to mark notifications read")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "all notifications marked read"})
}
