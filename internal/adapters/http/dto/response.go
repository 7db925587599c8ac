package dto

import (
	"github.com/mkoskela/qualcore/internal/domain/event"
	"github.com/mkoskela/qualcore/internal/ports"
)

// OperationResponse represents the outcome of one command in HTTP responses.
// Entity carries the affected entity fields on success; Reason and Message
// are set when a domain rule declined the command.
type OperationResponse struct {
	Outcome   string `json:"outcome"`
	EventType string `json:"event_type,omitempty"`
	Reason    string `json:"reason,omitempty"`
	Message   string `json:"message,omitempty"`
	Entity    any    `json:"entity,omitempty"`
}

// BulkApplyResponse represents the result of a bulk apply operation. Results
// holds one entry per requested span, in request order.
type BulkApplyResponse struct {
	Results   []OperationResponse `json:"results"`
	Total     int                 `json:"total"`
	Succeeded int                 `json:"succeeded"`
	Failed    int                 `json:"failed"`
}

// CodeEntity represents a code in success responses.
type CodeEntity struct {
	ID         int64  `json:"id"`
	Name       string `json:"name,omitempty"`
	Color      string `json:"color,omitempty"`
	CategoryID *int64 `json:"category_id,omitempty"`
}

// CategoryEntity represents a category in success responses.
type CategoryEntity struct {
	ID   int64  `json:"id"`
	Name string `json:"name,omitempty"`
}

// CodingEntity represents a coding in success responses.
type CodingEntity struct {
	ID       int64 `json:"id"`
	CodeID   int64 `json:"code_id"`
	SourceID int64 `json:"source_id"`
	Start    int   `json:"start"`
	End      int   `json:"end"`
}

// ToOperationResponse converts a service-layer operation result to an HTTP
// response DTO.
func ToOperationResponse(result ports.OperationResult) OperationResponse {
	resp := OperationResponse{
		Outcome: string(result.Outcome),
		Reason:  result.Reason,
		Message: result.Message,
	}
	if result.Event != nil {
		resp.EventType = string(result.Event.EventType())
		resp.Entity = toEntity(result.Event)
	}
	return resp
}

// ToBulkApplyResponse converts per-span operation results to an HTTP response
// DTO with success and failure counts.
func ToBulkApplyResponse(results []ports.OperationResult) BulkApplyResponse {
	items := make([]OperationResponse, len(results))
	succeeded := 0
	for i, r := range results {
		items[i] = ToOperationResponse(r)
		if r.Success() {
			succeeded++
		}
	}
	return BulkApplyResponse{
		Results:   items,
		Total:     len(items),
		Succeeded: succeeded,
		Failed:    len(items) - succeeded,
	}
}

// toEntity extracts the affected-entity view from a success event. Failure
// events carry their detail through Reason and Message instead.
func toEntity(e event.Event) any {
	switch ev := e.(type) {
	case event.CodeCreated:
		return CodeEntity{ID: ev.CodeID, Name: ev.Name, Color: ev.Color, CategoryID: ev.CategoryID}
	case event.CodeRenamed:
		return CodeEntity{ID: ev.CodeID, Name: ev.NewName}
	case event.CodeRecolored:
		return CodeEntity{ID: ev.CodeID, Color: ev.NewColor}
	case event.CodeDeleted:
		return CodeEntity{ID: ev.CodeID, Name: ev.Name}
	case event.CodeAssigned:
		return CodeEntity{ID: ev.CodeID, CategoryID: &ev.CategoryID}
	case event.CategoryCreated:
		return CategoryEntity{ID: ev.CategoryID, Name: ev.Name}
	case event.CategoryRenamed:
		return CategoryEntity{ID: ev.CategoryID, Name: ev.NewName}
	case event.CategoryDeleted:
		return CategoryEntity{ID: ev.CategoryID, Name: ev.Name}
	case event.CodeApplied:
		return CodingEntity{ID: ev.CodingID, CodeID: ev.CodeID, SourceID: ev.SourceID, Start: ev.Start, End: ev.End}
	case event.CodingRemoved:
		return CodingEntity{ID: ev.CodingID, CodeID: ev.CodeID, SourceID: ev.SourceID, Start: ev.Start, End: ev.End}
	default:
		return nil
	}
}
