package handlers

import (
	"net/http"

	"github.com/mkoskela/qualcore/internal/adapters/http/dto"
	"github.com/mkoskela/qualcore/internal/domain/command"
	"github.com/mkoskela/qualcore/internal/ports"
)

// CodeHandler handles HTTP requests for code commands.
type CodeHandler struct {
	service ports.CodeCommands
}

// NewCodeHandler creates a new CodeHandler with the given service port.
func NewCodeHandler(service ports.CodeCommands) *CodeHandler {
	return &CodeHandler{service: service}
}

// CreateCode handles POST /api/v1/codes.
func (h *CodeHandler) CreateCode(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCodeRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	cmd, err := command.NewCreateCode(req.Name, req.Color, req.CategoryID)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeResult(w, r, h.service.CreateCode(r.Context(), cmd), http.StatusCreated)
}

// RenameCode handles POST /api/v1/codes/{id}/rename.
func (h *CodeHandler) RenameCode(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.RenameCodeRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	cmd, err := command.NewRenameCode(id, req.Name)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeResult(w, r, h.service.RenameCode(r.Context(), cmd), http.StatusOK)
}

// RecolorCode handles POST /api/v1/codes/{id}/recolor.
func (h *CodeHandler) RecolorCode(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.RecolorCodeRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	cmd, err := command.NewRecolorCode(id, req.Color)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeResult(w, r, h.service.RecolorCode(r.Context(), cmd), http.StatusOK)
}

// DeleteCode handles DELETE /api/v1/codes/{id}.
func (h *CodeHandler) DeleteCode(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	cmd, err := command.NewDeleteCode(id)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeResult(w, r, h.service.DeleteCode(r.Context(), cmd), http.StatusOK)
}

// AssignCode handles POST /api/v1/codes/{id}/assign.
func (h *CodeHandler) AssignCode(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.AssignCodeRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	cmd, err := command.NewAssignCodeToCategory(id, req.CategoryID)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeResult(w, r, h.service.AssignCodeToCategory(r.Context(), cmd), http.StatusOK)
}
