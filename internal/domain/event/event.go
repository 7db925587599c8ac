// Package event defines the closed vocabulary of domain events produced by
// derivers. Every event is an immutable value tagged with a stable string
// discriminant (Type) used for routing on the event bus; the Go types form a
// closed union via an unexported marker method.
//
// Events come in two families: success events record something that happened
// (past tense), failure events record why a command was declined, carrying a
// structured reason code of the form {ENTITY}_NOT_{ACTION}/{REASON}. Failure
// events are constructed only through the named factory functions in this
// package, never by filling structs ad hoc, so every reachable reason code is
// enumerable and has a stable human-readable message.
package event

// Type is the stable string discriminant routing an event on the bus.
// Changing a Type value is a breaking change for every subscriber.
type Type string

// Event discriminants, one per event shape.
const (
	TypeCodeCreated    Type = "code.created"
	TypeCodeRenamed    Type = "code.renamed"
	TypeCodeRecolored  Type = "code.recolored"
	TypeCodeDeleted    Type = "code.deleted"
	TypeCodeAssigned   Type = "code.assigned_to_category"
	TypeCodeNotCreated Type = "code.not_created"
	TypeCodeNotRenamed Type = "code.not_renamed"
	TypeCodeNotRecolored Type = "code.not_recolored"
	TypeCodeNotDeleted Type = "code.not_deleted"
	TypeCodeNotAssigned Type = "code.not_assigned"

	TypeCategoryCreated    Type = "category.created"
	TypeCategoryRenamed    Type = "category.renamed"
	TypeCategoryDeleted    Type = "category.deleted"
	TypeCategoryNotCreated Type = "category.not_created"
	TypeCategoryNotRenamed Type = "category.not_renamed"
	TypeCategoryNotDeleted Type = "category.not_deleted"

	TypeCodeApplied      Type = "coding.applied"
	TypeCodingRemoved    Type = "coding.removed"
	TypeCodeNotApplied   Type = "coding.not_applied"
	TypeCodingNotRemoved Type = "coding.not_removed"
)

// Event is the closed union of domain events. Only types in this package
// implement it.
type Event interface {
	// EventType returns the stable discriminant for bus routing.
	EventType() Type

	isEvent()
}

// Failure is the subset of events that record a declined command. Reason
// returns the full structured code ({ENTITY}_NOT_{ACTION}/{REASON}); Message
// returns the stable human-readable text for that code.
type Failure interface {
	Event
	Reason() string
	Message() string
}

// IsFailure reports whether e belongs to the failure family.
func IsFailure(e Event) bool {
	_, ok := e.(Failure)
	return ok
}

// Types returns every declared discriminant. The slice is a fresh copy; the
// registry test keeps it in lockstep with the Go types.
func Types() []Type {
	return []Type{
		TypeCodeCreated,
		TypeCodeRenamed,
		TypeCodeRecolored,
		TypeCodeDeleted,
		TypeCodeAssigned,
		TypeCodeNotCreated,
		TypeCodeNotRenamed,
		TypeCodeNotRecolored,
		TypeCodeNotDeleted,
		TypeCodeNotAssigned,
		TypeCategoryCreated,
		TypeCategoryRenamed,
		TypeCategoryDeleted,
		TypeCategoryNotCreated,
		TypeCategoryNotRenamed,
		TypeCategoryNotDeleted,
		TypeCodeApplied,
		TypeCodingRemoved,
		TypeCodeNotApplied,
		TypeCodingNotRemoved,
	}
}

// Reason segments shared across failure families.
const (
	ReasonEmptyName        = "EMPTY_NAME"
	ReasonNameTooLong      = "NAME_TOO_LONG"
	ReasonDuplicateName    = "DUPLICATE_NAME"
	ReasonInvalidColor     = "INVALID_COLOR"
	ReasonNotFound         = "NOT_FOUND"
	ReasonCodeNotFound     = "CODE_NOT_FOUND"
	ReasonCategoryNotFound = "CATEGORY_NOT_FOUND"
	ReasonCategoryNotEmpty = "CATEGORY_NOT_EMPTY"
	ReasonSourceNotFound   = "SOURCE_NOT_FOUND"
	ReasonInvalidSpan      = "INVALID_SPAN"
	ReasonDuplicateSpan    = "DUPLICATE_SPAN"
)
