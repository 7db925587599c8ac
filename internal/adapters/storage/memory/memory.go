// Package memory provides mutex-guarded in-memory implementations of the
// persistence ports. It backs the default profile and the service tests;
// durable deployments use the sqlite adapter instead.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/mkoskela/qualcore/internal/domain"
	"github.com/mkoskela/qualcore/internal/ports"
)

// Compile-time interface checks.
var (
	_ ports.CodeRepository     = (*Store)(nil)
	_ ports.CategoryRepository = (*CategoryStore)(nil)
	_ ports.CodingRepository   = (*CodingStore)(nil)
	_ ports.SourceRegistry     = (*CodingStore)(nil)
	_ ports.IDAllocator        = (*Allocator)(nil)
)

// Store implements ports.CodeRepository in memory.
type Store struct {
	mu    sync.RWMutex
	codes map[int64]domain.Code
}

// NewStore creates an empty code store.
func NewStore() *Store {
	return &Store{codes: make(map[int64]domain.Code)}
}

// GetAll returns every code ordered by ID.
func (s *Store) GetAll(_ context.Context) ([]domain.Code, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Code, 0, len(s.codes))
	for _, c := range s.codes {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// GetByID returns a single code by ID.
func (s *Store) GetByID(_ context.Context, id int64) (*domain.Code, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.codes[id]
	if !ok {
		return nil, fmt.Errorf("code %d: %w", id, domain.ErrNotFound)
	}
	return &c, nil
}

// Save inserts or updates a code keyed by its ID.
func (s *Store) Save(_ context.Context, code domain.Code) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[code.ID] = code
	return nil
}

// Delete removes a code by ID.
func (s *Store) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.codes[id]; !ok {
		return fmt.Errorf("code %d: %w", id, domain.ErrNotFound)
	}
	delete(s.codes, id)
	return nil
}

// CategoryStore implements ports.CategoryRepository in memory.
type CategoryStore struct {
	mu         sync.RWMutex
	categories map[int64]domain.Category
}

// NewCategoryStore creates an empty category store.
func NewCategoryStore() *CategoryStore {
	return &CategoryStore{categories: make(map[int64]domain.Category)}
}

// GetAll returns every category ordered by ID.
func (s *CategoryStore) GetAll(_ context.Context) ([]domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// GetByID returns a single category by ID.
func (s *CategoryStore) GetByID(_ context.Context, id int64) (*domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.categories[id]
	if !ok {
		return nil, fmt.Errorf("category %d: %w", id, domain.ErrNotFound)
	}
	return &c, nil
}

// Save inserts or updates a category keyed by its ID.
func (s *CategoryStore) Save(_ context.Context, category domain.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories[category.ID] = category
	return nil
}

// Delete removes a category by ID.
func (s *CategoryStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[id]; !ok {
		return fmt.Errorf("category %d: %w", id, domain.ErrNotFound)
	}
	delete(s.categories, id)
	return nil
}

// CodingStore implements ports.CodingRepository in memory. Source documents
// are registered explicitly since this core does not own source storage.
type CodingStore struct {
	mu      sync.RWMutex
	codings map[int64]domain.Coding
	sources map[int64]bool
}

// NewCodingStore creates an empty coding store.
func NewCodingStore() *CodingStore {
	return &CodingStore{
		codings: make(map[int64]domain.Coding),
		sources: make(map[int64]bool),
	}
}

// AddSource registers a known source document.
func (s *CodingStore) AddSource(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sources[id] = true
	return nil
}

// GetAll returns every coding ordered by ID.
func (s *CodingStore) GetAll(_ context.Context) ([]domain.Coding, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Coding, 0, len(s.codings))
	for _, c := range s.codings {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// GetByID returns a single coding by ID.
func (s *CodingStore) GetByID(_ context.Context, id int64) (*domain.Coding, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.codings[id]
	if !ok {
		return nil, fmt.Errorf("coding %d: %w", id, domain.ErrNotFound)
	}
	return &c, nil
}

// Save inserts or updates a coding keyed by its ID.
func (s *CodingStore) Save(_ context.Context, coding domain.Coding) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codings[coding.ID] = coding
	return nil
}

// Delete removes a coding by ID.
func (s *CodingStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.codings[id]; !ok {
		return fmt.Errorf("coding %d: %w", id, domain.ErrNotFound)
	}
	delete(s.codings, id)
	return nil
}

// SourceIDs returns the registered source document identifiers.
func (s *CodingStore) SourceIDs(_ context.Context) ([]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]int64, 0, len(s.sources))
	for id := range s.sources {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

// Allocator implements ports.IDAllocator with per-kind counters.
type Allocator struct {
	mu   sync.Mutex
	next map[string]int64
}

// NewAllocator creates an allocator starting every kind at 1.
func NewAllocator() *Allocator {
	return &Allocator{next: make(map[string]int64)}
}

// NextID reserves and returns the next identifier for kind.
func (a *Allocator) NextID(_ context.Context, kind string) (int64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.next[kind]++
	return a.next[kind], nil
}
