package handlers

import (
	"net/http"

	"github.com/mkoskela/qualcore/internal/adapters/http/dto"
	"github.com/mkoskela/qualcore/internal/domain/command"
	"github.com/mkoskela/qualcore/internal/ports"
)

// CategoryHandler handles HTTP requests for category commands.
type CategoryHandler struct {
	service ports.CategoryCommands
}

// NewCategoryHandler creates a new CategoryHandler with the given service port.
func NewCategoryHandler(service ports.CategoryCommands) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// CreateCategory handles POST /api/v1/categories.
func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCategoryRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	cmd, err := command.NewCreateCategory(req.Name)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeResult(w, r, h.service.CreateCategory(r.Context(), cmd), http.StatusCreated)
}

// RenameCategory handles POST /api/v1/categories/{id}/rename.
func (h *CategoryHandler) RenameCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.RenameCategoryRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	cmd, err := command.NewRenameCategory(id, req.Name)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeResult(w, r, h.service.RenameCategory(r.Context(), cmd), http.StatusOK)
}

// DeleteCategory handles DELETE /api/v1/categories/{id}.
func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	cmd, err := command.NewDeleteCategory(id)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeResult(w, r, h.service.DeleteCategory(r.Context(), cmd), http.StatusOK)
}
