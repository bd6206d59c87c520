package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/homebudget/internal/adapter/http/dto"
	"github.com/iho/homebudget/internal/domain"
	"github.com/iho/homebudget/internal/report"
	"github.com/iho/homebudget/internal/usecase"
)

// SavingsService defines the behavior needed by SavingsHandler.
type SavingsService interface {
	CreateAccount(ctx context.Context, input usecase.CreateAccountInput) (*domain.SavingsAccount, error)
	UpdateAccount(ctx context.Context, input usecase.UpdateAccountInput) (*domain.SavingsAccount, error)
	UpdateValue(ctx context.Context, input usecase.UpdateValueInput) (*domain.SavingsAccount, error)
	ListWithStats(ctx context.Context, householdID string) ([]report.SavingsStats, error)
	Snapshots(ctx context.Context, householdID, accountID string) ([]domain.SavingsSnapshot, error)
}

// SavingsHandler handles savings account HTTP requests.
type SavingsHandler struct {
	savingsUC SavingsService
}

// NewSavingsHandler creates a new SavingsHandler.
func NewSavingsHandler(savingsUC SavingsService) *SavingsHandler {
	return &SavingsHandler{savingsUC: savingsUC}
}

// Create creates a savings account.
func (h *SavingsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateSavingsAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	account, err := h.savingsUC.CreateAccount(r.Context(), req.ToUseCaseInput(chi.URLParam(r, "householdID")))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create savings account", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.SavingsAccountFromDomain(account))
}

// Update edits a savings account's name, starting amount and current value.
func (h *SavingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateSavingsAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	account, err := h.savingsUC.UpdateAccount(r.Context(), req.ToUseCaseInput(chi.URLParam(r, "householdID"), chi.URLParam(r, "id")))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update savings account", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.SavingsAccountFromDomain(account))
}

// UpdateValue asserts a new market value for an account.
func (h *SavingsHandler) UpdateValue(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateValueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	account, err := h.savingsUC.UpdateValue(r.Context(), req.ToUseCaseInput(chi.URLParam(r, "householdID"), chi.URLParam(r, "id")))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update value", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.SavingsAccountFromDomain(account))
}

// List lists a household's accounts with derived stats.
func (h *SavingsHandler) List(w http.ResponseWriter, r *http.Request) {
	stats, err := h.savingsUC.ListWithStats(r.Context(), chi.URLParam(r, "householdID"))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list savings accounts", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.SavingsStatsFromReport(stats))
}

// Snapshots returns an account's value history.
func (h *SavingsHandler) Snapshots(w http.ResponseWriter, r *http.Request) {
	snapshots, err := h.savingsUC.Snapshots(r.Context(), chi.URLParam(r, "householdID"), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list snapshots", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.SnapshotsFromDomain(snapshots))
}
