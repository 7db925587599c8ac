package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mkoskela/qualcore/internal/adapters/http/dto"
	"github.com/mkoskela/qualcore/internal/domain"
	"github.com/mkoskela/qualcore/internal/ports"
)

// parseID extracts an int64 path parameter from the chi URL params.
func parseID(r *http.Request, param string) (int64, error) {
	raw := chi.URLParam(r, param)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &domain.ValidationError{
			Fields: map[string]string{param: "must be a valid integer"},
		}
	}
	return id, nil
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", slog.Any("error", err))
	}
}

// maxJSONBodyBytes is the maximum allowed size for a JSON request body (1 MB).
const maxJSONBodyBytes = 1 << 20

// decodeJSONBody decodes the request body as JSON into dst. The body is
// limited to maxJSONBodyBytes to prevent resource exhaustion. On failure,
// it writes a 400 error response and returns false.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		dto.WriteErrorResponse(w, r, &domain.ValidationError{
			Fields: map[string]string{"body": "invalid JSON"},
		})
		return false
	}
	return true
}

// writeResult maps an operation result to the wire. Success uses
// successStatus, a declined domain rule is 422 with the reason and message in
// the body, and an infrastructure failure becomes a Problem Details response.
func writeResult(w http.ResponseWriter, r *http.Request, result ports.OperationResult, successStatus int) {
	switch result.Outcome {
	case ports.OutcomeSuccess:
		writeJSON(w, successStatus, dto.ToOperationResponse(result))
	case ports.OutcomeDomainFailure:
		writeJSON(w, http.StatusUnprocessableEntity, dto.ToOperationResponse(result))
	default:
		dto.WriteErrorResponse(w, r, result.Err)
	}
}
