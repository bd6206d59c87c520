package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/homebudget/internal/adapter/http/dto"
	"github.com/iho/homebudget/internal/domain"
	"github.com/iho/homebudget/internal/usecase"
)

// CategoryService defines the behavior needed by CategoryHandler.
type CategoryService interface {
	CreateCategory(ctx context.Context, input usecase.CreateCategoryInput) (*domain.Category, error)
	DeleteCategory(ctx context.Context, householdID, id string) error
	ListCategories(ctx context.Context, householdID string) ([]domain.Category, error)
	CategoryOptions(ctx context.Context, householdID string) ([]string, error)
}

// CategoryHandler handles category HTTP requests.
type CategoryHandler struct {
	categoryUC CategoryService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryUC CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryUC: categoryUC}
}

// Create adds a custom category.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	category, err := h.categoryUC.CreateCategory(r.Context(), req.ToUseCaseInput(chi.URLParam(r, "householdID")))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create category", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, &dto.CategoryResponse{
		ID:        category.ID,
		Name:      category.Name,
		CreatedAt: category.CreatedAt,
	})
}

// Delete removes a custom category.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.categoryUC.DeleteCategory(r.Context(), chi.URLParam(r, "householdID"), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to delete category", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// List lists a household's custom categories.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryUC.ListCategories(r.Context(), chi.URLParam(r, "householdID"))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list categories", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CategoriesFromDomain(categories))
}

// Options returns the category names offered in entry forms.
func (h *CategoryHandler) Options(w http.ResponseWriter, r *http.Request) {
	options, err := h.categoryUC.CategoryOptions(r.Context(), chi.URLParam(r, "householdID"))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list category options", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CategoryOptionsResponse{Options: options})
}
