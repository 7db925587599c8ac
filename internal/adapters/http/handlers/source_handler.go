package handlers

import (
	"net/http"

	"github.com/mkoskela/qualcore/internal/adapters/http/dto"
	"github.com/mkoskela/qualcore/internal/ports"
)

// SourceHandler handles HTTP requests for source document registration.
type SourceHandler struct {
	sources ports.SourceRegistry
}

// NewSourceHandler creates a new SourceHandler with the given registry port.
func NewSourceHandler(sources ports.SourceRegistry) *SourceHandler {
	return &SourceHandler{sources: sources}
}

// AddSource handles PUT /api/v1/sources/{id}. Idempotent.
func (h *SourceHandler) AddSource(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	if err := h.sources.AddSource(r.Context(), id); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"source_id": id})
}
