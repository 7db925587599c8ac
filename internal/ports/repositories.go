package ports

import (
	"context"

	"github.com/mkoskela/qualcore/internal/domain"
)

// CodeRepository is the persistence port for codes. Implementations return
// domain entities, never storage-native rows, and wrap storage-level faults
// in domain.StorageError so they stay distinguishable from domain-rule
// failures. Missing entities are domain.ErrNotFound.
type CodeRepository interface {
	// GetAll returns every code.
	GetAll(ctx context.Context) ([]domain.Code, error)

	// GetByID returns a single code by ID.
	GetByID(ctx context.Context, id int64) (*domain.Code, error)

	// Save inserts or updates a code keyed by its ID.
	Save(ctx context.Context, code domain.Code) error

	// Delete removes a code by ID. Deleting a missing code is ErrNotFound.
	Delete(ctx context.Context, id int64) error
}

// CategoryRepository is the persistence port for categories.
type CategoryRepository interface {
	GetAll(ctx context.Context) ([]domain.Category, error)
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
	Save(ctx context.Context, category domain.Category) error
	Delete(ctx context.Context, id int64) error
}

// CodingRepository is the persistence port for codings. SourceIDs lists the
// known source documents so derivers can check referential integrity without
// this core owning source storage.
type CodingRepository interface {
	GetAll(ctx context.Context) ([]domain.Coding, error)
	GetByID(ctx context.Context, id int64) (*domain.Coding, error)
	Save(ctx context.Context, coding domain.Coding) error
	Delete(ctx context.Context, id int64) error

	// SourceIDs returns the identifiers of all known source documents.
	SourceIDs(ctx context.Context) ([]int64, error)
}

// SourceRegistry records source documents known to the system. Source content
// lives outside this core; only the identifiers are tracked so codings can be
// checked for referential integrity.
type SourceRegistry interface {
	// AddSource registers a source document ID. Registering an existing ID
	// is a no-op.
	AddSource(ctx context.Context, id int64) error
}

// IDAllocator hands out new entity identifiers. Storage adapters implement it
// so generated IDs stay unique across restarts; orchestration injects the
// allocation function into snapshots for derivers to capture in events.
type IDAllocator interface {
	// NextID reserves and returns the next identifier for the named entity
	// kind ("code", "category", "coding").
	NextID(ctx context.Context, kind string) (int64, error)
}
