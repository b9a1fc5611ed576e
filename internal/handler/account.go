package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hadikasem/AI-Financial-Advisor/internal/ctxkeys"
	"github.com/hadikasem/AI-Financial-Advisor/internal/repository"
	"github.com/hadikasem/AI-Financial-Advisor/internal/service"
)

type AccountHandler struct {
	ledgerService     *service.LedgerService
	simulationService *service.SimulationService
}

func NewAccountHandler(ledgerService *service.LedgerService, simulationService *service.SimulationService) *AccountHandler {
	return &AccountHandler{
		ledgerService:     ledgerService,
		simulationService: simulationService,
	}
}

func (h *AccountHandler) Accounts(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	accounts, err := h.ledgerService.Accounts(user.ID)
	if err != nil {
		slog.Error("failed to load accounts", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "failed to load accounts")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"accounts": accounts,
	})
}

func (h *AccountHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	filter := repository.TransactionFilter{
		AccountID: r.URL.Query().Get("account_id"),
		Type:      r.URL.Query().Get("type"),
	}

	if v := r.URL.Query().Get("from"); v != "" {
		from, err := parseDate(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid from date")
			return
		}
		filter.From = from
	}
	if v := r.URL.Query().Get("to"); v != "" {
		to, err := parseDate(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid to date")
			return
		}
		filter.To = to
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 {
			respondError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		filter.Limit = limit
	}

	transactions, err := h.ledgerService.Transactions(user.ID, filter)
	if err != nil {
		slog.Error("failed to load transactions", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "failed to load transactions")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"transactions": transactions,
	})
}

type createTransactionRequest struct {
	AccountID   string          `json:"account_id"`
	Date        string          `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Type        string          `json:"type"`
}

func (h *AccountHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req createTransactionRequest
	err := decodeJSON(r, &req)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var date time.Time
	if req.Date != "" {
		date, err = parseDate(req.Date)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid date")
			return
		}
	}

	tx, err := h.ledgerService.Record(user.ID, service.TransactionInput{
		AccountID:   req.AccountID,
		Date:        date,
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
		Type:        req.Type,
	})
	if errors.Is(err, repository.ErrAccountNotFound) {
		respondError(w, http.StatusNotFound, "account not found")
		return
	}
	if errors.Is(err, service.ErrInvalidTransactionType) || errors.Is(err, service.ErrZeroAmount) {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		slog.Error("failed to record transaction", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "failed to record transaction")
		return
	}

	respondJSON(w, http.StatusCreated, tx)
}

// Simulate advances the ledger simulation to the present day.
func (h *AccountHandler) Simulate(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	days, err := h.simulationService.AdvanceToNow(user.ID)
	if err != nil {
		slog.Error("failed to advance simulation", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "failed to advance simulation")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"days_simulated": days,
	})
}
