package app

import (
	"context"
	"log/slog"

	"github.com/mkoskela/qualcore/internal/domain"
	"github.com/mkoskela/qualcore/internal/domain/command"
	"github.com/mkoskela/qualcore/internal/domain/derive"
	"github.com/mkoskela/qualcore/internal/domain/event"
	"github.com/mkoskela/qualcore/internal/eventbus"
	"github.com/mkoskela/qualcore/internal/platform/telemetry"
	"github.com/mkoskela/qualcore/internal/ports"
)

// Compile-time check that CategoryService implements ports.CategoryCommands.
var _ ports.CategoryCommands = (*CategoryService)(nil)

// CategoryService orchestrates category commands.
type CategoryService struct {
	categories ports.CategoryRepository
	codes      ports.CodeRepository
	alloc      ports.IDAllocator
	bus        *eventbus.Bus
	nameLimit  int
	logger     *slog.Logger
	metrics    *telemetry.Metrics
}

// NewCategoryService creates a CategoryService publishing on bus.
func NewCategoryService(
	categories ports.CategoryRepository,
	codes ports.CodeRepository,
	alloc ports.IDAllocator,
	bus *eventbus.Bus,
	nameLimit int,
	logger *slog.Logger,
	metrics *telemetry.Metrics,
) *CategoryService {
	if nameLimit <= 0 {
		nameLimit = domain.MaxNameLength
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &CategoryService{
		categories: categories,
		codes:      codes,
		alloc:      alloc,
		bus:        bus,
		nameLimit:  nameLimit,
		logger:     logger,
		metrics:    metrics,
	}
}

// CreateCategory handles command.CreateCategory.
func (s *CategoryService) CreateCategory(ctx context.Context, cmd command.CreateCategory) ports.OperationResult {
	snap, err := s.snapshot(ctx, false, true)
	if err != nil {
		return observeResult(ctx, s.logger, s.metrics, cmd, infraFailureResult(err))
	}

	ev := derive.CreateCategory(cmd, snap)
	if f, ok := ev.(event.Failure); ok {
		return observeResult(ctx, s.logger, s.metrics, cmd, domainFailureResult(f))
	}

	created := ev.(event.CategoryCreated)
	if err := s.categories.Save(ctx, domain.Category{ID: created.CategoryID, Name: created.Name}); err != nil {
		return observeResult(ctx, s.logger, s.metrics, cmd, infraFailureResult(err))
	}

	s.bus.Publish(ev)
	rollback, _ := command.NewDeleteCategory(created.CategoryID)
	return observeResult(ctx, s.logger, s.metrics, cmd, successResult(ev, rollback))
}

// RenameCategory handles command.RenameCategory.
func (s *CategoryService) RenameCategory(ctx context.Context, cmd command.RenameCategory) ports.OperationResult {
	snap, err := s.snapshot(ctx, false, false)
	if err != nil {
		return observeResult(ctx, s.logger, s.metrics, cmd, infraFailureResult(err))
	}

	ev := derive.RenameCategory(cmd, snap)
	if f, ok := ev.(event.Failure); ok {
		return observeResult(ctx, s.logger, s.metrics, cmd, domainFailureResult(f))
	}

	renamed := ev.(event.CategoryRenamed)
	if err := s.categories.Save(ctx, domain.Category{ID: renamed.CategoryID, Name: renamed.NewName}); err != nil {
		return observeResult(ctx, s.logger, s.metrics, cmd, infraFailureResult(err))
	}

	s.bus.Publish(ev)
	rollback, _ := command.NewRenameCategory(renamed.CategoryID, renamed.OldName)
	return observeResult(ctx, s.logger, s.metrics, cmd, successResult(ev, rollback))
}

// DeleteCategory handles command.DeleteCategory. Deletion is declined while
// codes are still assigned, so no compensating command is needed beyond
// recreation, which is not offered.
func (s *CategoryService) DeleteCategory(ctx context.Context, cmd command.DeleteCategory) ports.OperationResult {
	snap, err := s.snapshot(ctx, true, false)
	if err != nil {
		return observeResult(ctx, s.logger, s.metrics, cmd, infraFailureResult(err))
	}

	ev := derive.DeleteCategory(cmd, snap)
	if f, ok := ev.(event.Failure); ok {
		return observeResult(ctx, s.logger, s.metrics, cmd, domainFailureResult(f))
	}

	deleted := ev.(event.CategoryDeleted)
	if err := s.categories.Delete(ctx, deleted.CategoryID); err != nil {
		return observeResult(ctx, s.logger, s.metrics, cmd, infraFailureResult(err))
	}

	s.bus.Publish(ev)
	return observeResult(ctx, s.logger, s.metrics, cmd, successResult(ev, nil))
}

// snapshot queries exactly what the target deriver needs: the category list
// always, the assigned-code marks only for deletion, a fresh identifier only
// for creation.
func (s *CategoryService) snapshot(ctx context.Context, withAssignments, withID bool) (derive.CategorySnapshot, error) {
	categories, err := s.categories.GetAll(ctx)
	if err != nil {
		return derive.CategorySnapshot{}, err
	}

	snap := derive.CategorySnapshot{Categories: categories, NameLimit: s.nameLimit}

	if withAssignments {
		codes, err := s.codes.GetAll(ctx)
		if err != nil {
			return derive.CategorySnapshot{}, err
		}
		snap.AssignedCodes = make(map[int64]bool)
		for _, c := range codes {
			if c.CategoryID != nil {
				snap.AssignedCodes[*c.CategoryID] = true
			}
		}
	}

	if withID {
		id, err := s.alloc.NextID(ctx, "category")
		if err != nil {
			return derive.CategorySnapshot{}, err
		}
		snap.NextID = func() int64 { return id }
	}

	return snap, nil
}
