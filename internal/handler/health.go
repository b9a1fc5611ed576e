package handler

import (
	"net/http"

	"github.com/jmoiron/sqlx"
)

type HealthHandler struct {
	db      *sqlx.DB
	appName string
}

func NewHealthHandler(db *sqlx.DB, appName string) *HealthHandler {
	return &HealthHandler{
		db:      db,
		appName: appName,
	}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	err := h.db.Ping()
	if err != nil {
		respondJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status":  "unhealthy",
			"service": h.appName,
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": h.appName,
	})
}
