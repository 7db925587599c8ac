package handlers

import (
	"net/http"

	"github.com/mkoskela/qualcore/internal/adapters/http/dto"
	"github.com/mkoskela/qualcore/internal/domain"
	"github.com/mkoskela/qualcore/internal/domain/command"
	"github.com/mkoskela/qualcore/internal/ports"
)

// CodingHandler handles HTTP requests for coding commands.
type CodingHandler struct {
	service ports.CodingCommands
}

// NewCodingHandler creates a new CodingHandler with the given service port.
func NewCodingHandler(service ports.CodingCommands) *CodingHandler {
	return &CodingHandler{service: service}
}

// ApplyCode handles POST /api/v1/codings.
func (h *CodingHandler) ApplyCode(w http.ResponseWriter, r *http.Request) {
	var req dto.ApplyCodeRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	cmd, err := command.NewApplyCode(req.CodeID, req.SourceID, req.Start, req.End)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeResult(w, r, h.service.ApplyCode(r.Context(), cmd), http.StatusCreated)
}

// RemoveCoding handles DELETE /api/v1/codings/{id}.
func (h *CodingHandler) RemoveCoding(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	cmd, err := command.NewRemoveCoding(id)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeResult(w, r, h.service.RemoveCoding(r.Context(), cmd), http.StatusOK)
}

// BulkApplyCodes handles POST /api/v1/codings/bulk. Every span must pass
// shape validation before any command is handled; one bad span rejects the
// whole request.
func (h *CodingHandler) BulkApplyCodes(w http.ResponseWriter, r *http.Request) {
	var req dto.BulkApplyCodesRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if len(req.Spans) == 0 {
		dto.WriteErrorResponse(w, r, &domain.ValidationError{
			Fields: map[string]string{"spans": "must not be empty"},
		})
		return
	}

	cmds := make([]command.ApplyCode, len(req.Spans))
	for i, span := range req.Spans {
		cmd, err := command.NewApplyCode(span.CodeID, span.SourceID, span.Start, span.End)
		if err != nil {
			dto.WriteErrorResponse(w, r, err)
			return
		}
		cmds[i] = cmd
	}

	results := h.service.BulkApplyCodes(r.Context(), cmds)
	writeJSON(w, http.StatusMultiStatus, dto.ToBulkApplyResponse(results))
}
