package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/apper-canvas/pennywise/internal/adapter/http/dto"
	"github.com/apper-canvas/pennywise/internal/domain"
	"github.com/apper-canvas/pennywise/internal/usecase"
)

// GoalService defines the behavior needed by GoalHandler.
type GoalService interface {
	CreateGoal(ctx context.Context, input usecase.CreateGoalInput) (*domain.Goal, error)
	GetGoal(ctx context.Context, id int64) (*domain.Goal, error)
	ListGoals(ctx context.Context) ([]*domain.Goal, error)
	UpdateGoal(ctx context.Context, id int64, input usecase.UpdateGoalInput) (*domain.Goal, error)
	DeleteGoal(ctx context.Context, id int64) error
	UpdateProgress(ctx context.Context, id int64, delta decimal.Decimal) (*domain.Goal, error)
	Stats(ctx context.Context) (*domain.GoalStats, error)
}

// GoalHandler handles savings goal HTTP requests.
type GoalHandler struct {
	goalUC GoalService
}

// NewGoalHandler creates a new GoalHandler.
func NewGoalHandler(goalUC GoalService) *GoalHandler {
	return &GoalHandler{goalUC: goalUC}
}

// Create creates a new savings goal.
func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	goal, err := h.goalUC.CreateGoal(r.Context(), input)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create goal", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.GoalFromDomain(goal))
}

// Get retrieves a goal by ID.
func (h *GoalHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid goal ID", "")
		return
	}

	goal, err := h.goalUC.GetGoal(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get goal", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.GoalFromDomain(goal))
}

// List lists all goals.
func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	goals, err := h.goalUC.ListGoals(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list goals", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.GoalsFromDomain(goals))
}

// Update replaces a goal's definition.
func (h *GoalHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid goal ID", "")
		return
	}

	var req dto.UpdateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	goal, err := h.goalUC.UpdateGoal(r.Context(), id, input)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update goal", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.GoalFromDomain(goal))
}

// Delete removes a goal.
func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid goal ID", "")
		return
	}

	if err := h.goalUC.DeleteGoal(r.Context(), id); err != nil {
		writeError(w, mapDomainError(err), "failed to delete goal", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Progress applies a contribution or withdrawal to a goal.
func (h *GoalHandler) Progress(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid goal ID", "")
		return
	}

	var req dto.GoalProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	goal, err := h.goalUC.UpdateProgress(r.Context(), id, req.Delta)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update goal progress", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.GoalFromDomain(goal))
}

// Stats returns savings progress across all goals.
func (h *GoalHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.goalUC.Stats(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to compute goal stats", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.GoalStatsFromDomain(stats))
}
