// Package command defines the immutable command values accepted by the
// functional core. A command describes one intended state change and carries
// exactly the parameters its deriver needs.
//
// Commands are validated at construction: the New* constructors check shape
// (required fields present, spans non-negative) and return a
// domain.ValidationError on violation. Business rules — uniqueness, length
// bounds, referential integrity — are not checked here; those belong to the
// derivers, which report them as failure events rather than errors.
package command

import "github.com/mkoskela/qualcore/internal/domain"

// Command is the closed union of command values. Only types in this package
// implement it.
type Command interface {
	// CommandName returns a stable identifier for logging and metrics.
	CommandName() string

	isCommand()
}

// shapeError builds the constructor error for field-level shape violations.
func shapeError(fields map[string]string) error {
	return &domain.ValidationError{Fields: fields}
}
