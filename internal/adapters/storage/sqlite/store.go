// Package sqlite persists codes, categories and codings in a single SQLite
// database file using the pure-Go modernc.org/sqlite driver. The schema is
// embedded and applied on open.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	_ "embed"

	"github.com/mkoskela/qualcore/internal/domain"
	"github.com/mkoskela/qualcore/internal/ports"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schema string

// Compile-time interface checks.
var (
	_ ports.CodeRepository = (*Store)(nil)
	_ ports.IDAllocator    = (*Store)(nil)
	_ ports.HealthChecker  = (*Store)(nil)
)

// Store implements every persistence port over one SQLite handle.
type Store struct {
	db *sql.DB
}

// Open opens the database at path, applies the embedded schema and returns a
// ready store. WAL mode and foreign keys are enabled through the DSN.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, &domain.StorageError{Op: "open", Err: err}
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, &domain.StorageError{Op: "ping", Err: err}
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, &domain.StorageError{Op: "apply schema", Err: err}
	}
	return &Store{db: db}, nil
}

// Close closes the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Name implements ports.HealthChecker.
func (s *Store) Name() string { return "sqlite" }

// HealthCheck implements ports.HealthChecker.
func (s *Store) HealthCheck(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return &domain.StorageError{Op: "ping", Err: err}
	}
	return nil
}

// GetAll returns every code ordered by ID.
func (s *Store) GetAll(ctx context.Context) ([]domain.Code, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, color, category_id FROM codes ORDER BY id`)
	if err != nil {
		return nil, &domain.StorageError{Op: "list codes", Err: err}
	}
	defer rows.Close()

	var out []domain.Code
	for rows.Next() {
		var c domain.Code
		var category sql.NullInt64
		if err := rows.Scan(&c.ID, &c.Name, &c.Color, &category); err != nil {
			return nil, &domain.StorageError{Op: "scan code", Err: err}
		}
		if category.Valid {
			c.CategoryID = &category.Int64
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StorageError{Op: "list codes", Err: err}
	}
	return out, nil
}

// GetByID returns a single code by ID.
func (s *Store) GetByID(ctx context.Context, id int64) (*domain.Code, error) {
	var c domain.Code
	var category sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, color, category_id FROM codes WHERE id = ?`, id).
		Scan(&c.ID, &c.Name, &c.Color, &category)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("code %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, &domain.StorageError{Op: "get code", Err: err}
	}
	if category.Valid {
		c.CategoryID = &category.Int64
	}
	return &c, nil
}

// Save inserts or updates a code keyed by its ID.
func (s *Store) Save(ctx context.Context, code domain.Code) error {
	var category any
	if code.CategoryID != nil {
		category = *code.CategoryID
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO codes (id, name, color, category_id) VALUES (?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET name = excluded.name,
		     color = excluded.color, category_id = excluded.category_id`,
		code.ID, code.Name, code.Color, category)
	if err != nil {
		return &domain.StorageError{Op: "save code", Err: err}
	}
	return nil
}

// Delete removes a code by ID.
func (s *Store) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM codes WHERE id = ?`, id)
	if err != nil {
		return &domain.StorageError{Op: "delete code", Err: err}
	}
	return requireAffected(res, "code", id)
}

// CategoryStore exposes the category port over the shared handle. A separate
// receiver keeps the GetAll/GetByID/Save/Delete method sets from colliding.
type CategoryStore struct {
	db *sql.DB
}

// Categories returns the category repository view of the store.
func (s *Store) Categories() *CategoryStore { return &CategoryStore{db: s.db} }

var _ ports.CategoryRepository = (*CategoryStore)(nil)

// GetAll returns every category ordered by ID.
func (s *CategoryStore) GetAll(ctx context.Context) ([]domain.Category, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM categories ORDER BY id`)
	if err != nil {
		return nil, &domain.StorageError{Op: "list categories", Err: err}
	}
	defer rows.Close()

	var out []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, &domain.StorageError{Op: "scan category", Err: err}
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StorageError{Op: "list categories", Err: err}
	}
	return out, nil
}

// GetByID returns a single category by ID.
func (s *CategoryStore) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	var c domain.Category
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name FROM categories WHERE id = ?`, id).Scan(&c.ID, &c.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("category %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, &domain.StorageError{Op: "get category", Err: err}
	}
	return &c, nil
}

// Save inserts or updates a category keyed by its ID.
func (s *CategoryStore) Save(ctx context.Context, category domain.Category) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO categories (id, name) VALUES (?, ?)
		 ON CONFLICT (id) DO UPDATE SET name = excluded.name`,
		category.ID, category.Name)
	if err != nil {
		return &domain.StorageError{Op: "save category", Err: err}
	}
	return nil
}

// Delete removes a category by ID.
func (s *CategoryStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return &domain.StorageError{Op: "delete category", Err: err}
	}
	return requireAffected(res, "category", id)
}

// CodingStore exposes the coding port over the shared handle.
type CodingStore struct {
	db *sql.DB
}

// Codings returns the coding repository view of the store.
func (s *Store) Codings() *CodingStore { return &CodingStore{db: s.db} }

var (
	_ ports.CodingRepository = (*CodingStore)(nil)
	_ ports.SourceRegistry   = (*CodingStore)(nil)
)

// GetAll returns every coding ordered by ID.
func (s *CodingStore) GetAll(ctx context.Context) ([]domain.Coding, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, code_id, source_id, start_offset, end_offset FROM codings ORDER BY id`)
	if err != nil {
		return nil, &domain.StorageError{Op: "list codings", Err: err}
	}
	defer rows.Close()

	var out []domain.Coding
	for rows.Next() {
		var c domain.Coding
		if err := rows.Scan(&c.ID, &c.CodeID, &c.SourceID, &c.Start, &c.End); err != nil {
			return nil, &domain.StorageError{Op: "scan coding", Err: err}
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StorageError{Op: "list codings", Err: err}
	}
	return out, nil
}

// GetByID returns a single coding by ID.
func (s *CodingStore) GetByID(ctx context.Context, id int64) (*domain.Coding, error) {
	var c domain.Coding
	err := s.db.QueryRowContext(ctx,
		`SELECT id, code_id, source_id, start_offset, end_offset FROM codings WHERE id = ?`, id).
		Scan(&c.ID, &c.CodeID, &c.SourceID, &c.Start, &c.End)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("coding %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, &domain.StorageError{Op: "get coding", Err: err}
	}
	return &c, nil
}

// Save inserts or updates a coding keyed by its ID.
func (s *CodingStore) Save(ctx context.Context, coding domain.Coding) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO codings (id, code_id, source_id, start_offset, end_offset)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET code_id = excluded.code_id,
		     source_id = excluded.source_id, start_offset = excluded.start_offset,
		     end_offset = excluded.end_offset`,
		coding.ID, coding.CodeID, coding.SourceID, coding.Start, coding.End)
	if err != nil {
		return &domain.StorageError{Op: "save coding", Err: err}
	}
	return nil
}

// Delete removes a coding by ID.
func (s *CodingStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM codings WHERE id = ?`, id)
	if err != nil {
		return &domain.StorageError{Op: "delete coding", Err: err}
	}
	return requireAffected(res, "coding", id)
}

// SourceIDs returns the identifiers of all known source documents.
func (s *CodingStore) SourceIDs(ctx context.Context) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM sources ORDER BY id`)
	if err != nil {
		return nil, &domain.StorageError{Op: "list sources", Err: err}
	}
	defer rows.Close()

	var out []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, &domain.StorageError{Op: "scan source", Err: err}
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StorageError{Op: "list sources", Err: err}
	}
	return out, nil
}

// AddSource registers a known source document.
func (s *CodingStore) AddSource(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sources (id) VALUES (?) ON CONFLICT (id) DO NOTHING`, id)
	if err != nil {
		return &domain.StorageError{Op: "add source", Err: err}
	}
	return nil
}

// NextID reserves and returns the next identifier for kind. The reservation
// happens inside a transaction so concurrent callers never observe the same
// value.
func (s *Store) NextID(ctx context.Context, kind string) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, &domain.StorageError{Op: "next id", Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO id_sequences (kind, next) VALUES (?, 1)
		 ON CONFLICT (kind) DO UPDATE SET next = next + 1`, kind)
	if err != nil {
		return 0, &domain.StorageError{Op: "next id", Err: err}
	}
	var id int64
	err = tx.QueryRowContext(ctx,
		`SELECT next FROM id_sequences WHERE kind = ?`, kind).Scan(&id)
	if err != nil {
		return 0, &domain.StorageError{Op: "next id", Err: err}
	}
	if err := tx.Commit(); err != nil {
		return 0, &domain.StorageError{Op: "next id", Err: err}
	}
	return id, nil
}

func requireAffected(res sql.Result, entity string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return &domain.StorageError{Op: "delete " + entity, Err: err}
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", entity, id, domain.ErrNotFound)
	}
	return nil
}
