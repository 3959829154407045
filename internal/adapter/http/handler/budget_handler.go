package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/apper-canvas/pennywise/internal/adapter/http/dto"
	"github.com/apper-canvas/pennywise/internal/domain"
	"github.com/apper-canvas/pennywise/internal/usecase"
)

// BudgetService defines the behavior needed by BudgetHandler.
type BudgetService interface {
	CreateBudget(ctx context.Context, input usecase.CreateBudgetInput) (*domain.Budget, error)
	GetBudget(ctx context.Context, id int64) (*domain.Budget, error)
	ListBudgets(ctx context.Context) ([]*domain.Budget, error)
	UpdateBudget(ctx context.Context, id int64, input usecase.CreateBudgetInput) (*domain.Budget, error)
	DeleteBudget(ctx context.Context, id int64) error
	Overview(ctx context.Context, month string, year int) (*usecase.BudgetOverview, error)
}

// BudgetHandler handles budget-related HTTP requests.
type BudgetHandler struct {
	budgetUC BudgetService
	now      func() time.Time
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetUC BudgetService) *BudgetHandler {
	return &BudgetHandler{
		budgetUC: budgetUC,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Create sets a category budget.
func (h *BudgetHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	budget, err := h.budgetUC.CreateBudget(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create budget", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.BudgetFromDomain(budget))
}

// Get retrieves a budget by ID.
func (h *BudgetHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid budget ID", "")
		return
	}

	budget, err := h.budgetUC.GetBudget(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get budget", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BudgetFromDomain(budget))
}

// List lists all budgets.
func (h *BudgetHandler) List(w http.ResponseWriter, r *http.Request) {
	budgets, err := h.budgetUC.ListBudgets(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list budgets", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BudgetsFromDomain(budgets))
}

// Update replaces a budget's mutable fields.
func (h *BudgetHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid budget ID", "")
		return
	}

	var req dto.CreateBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	budget, err := h.budgetUC.UpdateBudget(r.Context(), id, req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update budget", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BudgetFromDomain(budget))
}

// Delete removes a budget.
func (h *BudgetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid budget ID", "")
		return
	}

	if err := h.budgetUC.DeleteBudget(r.Context(), id); err != nil {
		writeError(w, mapDomainError(err), "failed to delete budget", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Overview returns one month's budget consumption. The month and year
// query parameters default to the current month.
func (h *BudgetHandler) Overview(w http.ResponseWriter, r *http.Request) {
	now := h.now()

	month := r.URL.Query().Get("month")
	if month == "" {
		month = domain.FormatMonth(now.Month())
	}
	year := parseIntQuery(r, "year", now.Year())

	overview, err := h.budgetUC.Overview(r.Context(), month, year)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to build budget overview", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BudgetOverviewFromUseCase(overview))
}
