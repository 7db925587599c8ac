// Package dto provides HTTP request/response data transfer objects and
// RFC 9457 Problem Details error responses for the inbound HTTP adapter layer.
//
// Request bodies carry raw inputs only. Shape validation lives in the command
// constructors, so handlers decode a body, build the command, and map any
// *domain.ValidationError to a 400 response.
package dto

// CreateCodeRequest represents the JSON body for creating a new code.
type CreateCodeRequest struct {
	Name       string `json:"name"`
	Color      string `json:"color"`
	CategoryID *int64 `json:"category_id,omitempty"`
}

// RenameCodeRequest represents the JSON body for renaming a code.
type RenameCodeRequest struct {
	Name string `json:"name"`
}

// RecolorCodeRequest represents the JSON body for recoloring a code.
type RecolorCodeRequest struct {
	Color string `json:"color"`
}

// AssignCodeRequest represents the JSON body for moving a code into a
// category.
type AssignCodeRequest struct {
	CategoryID int64 `json:"category_id"`
}

// CreateCategoryRequest represents the JSON body for creating a new category.
type CreateCategoryRequest struct {
	Name string `json:"name"`
}

// RenameCategoryRequest represents the JSON body for renaming a category.
type RenameCategoryRequest struct {
	Name string `json:"name"`
}

// ApplyCodeRequest represents the JSON body for applying a code to a span of
// a source document. Offsets are half-open: [start, end).
type ApplyCodeRequest struct {
	CodeID   int64 `json:"code_id"`
	SourceID int64 `json:"source_id"`
	Start    int   `json:"start"`
	End      int   `json:"end"`
}

// BulkApplyCodesRequest represents the JSON body for applying many spans in
// one request with partial-success semantics.
type BulkApplyCodesRequest struct {
	Spans []ApplyCodeRequest `json:"spans"`
}
