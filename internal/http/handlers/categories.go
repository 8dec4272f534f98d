package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/famfin/famfin-be/internal/http/respond"
	"github.com/famfin/famfin-be/internal/models/dto"
	"github.com/famfin/famfin-be/internal/storage"
)

// CategoryHandler owns the category creation endpoint.
type CategoryHandler struct {
	categories storage.CategoryStore
}

// NewCategoryHandler constructs the handler.
func NewCategoryHandler(categories storage.CategoryStore) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

// Register attaches the category routes to the mux.
func (h *CategoryHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/categories", h.handleCreate)
}

func (h *CategoryHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req dto.CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	name := strings.TrimSpace(req.Category)
	if name == "" {
		respond.Error(w, http.StatusBadRequest, "category is required")
		return
	}
	category, err := h.categories.CreateCategory(r.Context(), name)
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			respond.Error(w, http.StatusBadRequest, "category already exists")
			return
		}
		log.Printf("create category: %v", err)
		respond.Error(w, http.StatusInternalServerError, "failed to create category")
		return
	}
	respond.JSON(w, http.StatusOK, dto.CategoryResponse{
		Message:  "category created successfully",
		Category: category,
	})
}
