package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for errors.Is() checking.
//
// Domain-rule failures (duplicate name, missing parent, and so on) are never
// errors: derivers report them as failure events. These sentinels cover the
// remaining taxonomy: shape violations at command construction, missing
// entities on read paths, and storage-level faults.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation error")
	ErrConflict   = errors.New("conflict")
	ErrStorage    = errors.New("storage error")
)

// ValidationError provides programmatic access to field-level shape failures
// raised by command constructors. Use errors.Is(err, ErrValidation) for simple
// checks, or errors.As(err, &verr) to access verr.Fields per-field details.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// StorageError wraps a storage-level fault so callers can distinguish
// infrastructure failures from domain-rule failures via errors.Is(err,
// ErrStorage). Op names the repository operation that failed.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrStorage.Error(), e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return ErrStorage
}
