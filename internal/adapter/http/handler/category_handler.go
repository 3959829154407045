package handler

import (
	"net/http"

	"github.com/apper-canvas/pennywise/internal/adapter/http/dto"
	"github.com/apper-canvas/pennywise/internal/domain"
)

// CategoryHandler serves the category vocabulary shared by transactions and
// budgets.
type CategoryHandler struct{}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler() *CategoryHandler {
	return &CategoryHandler{}
}

// List lists all known categories.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.CategoriesResponse{Categories: domain.Categories})
}
