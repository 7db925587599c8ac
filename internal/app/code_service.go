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

// Compile-time check that CodeService implements ports.CodeCommands.
var _ ports.CodeCommands = (*CodeService)(nil)

// CodeService orchestrates code commands: it builds snapshots from the
// repositories, delegates every decision to the derivers, and owns the
// persist-then-publish sequence. It contains no business rules itself.
type CodeService struct {
	codes      ports.CodeRepository
	categories ports.CategoryRepository
	alloc      ports.IDAllocator
	bus        *eventbus.Bus
	nameLimit  int
	logger     *slog.Logger
	metrics    *telemetry.Metrics
}

// NewCodeService creates a CodeService publishing on bus. nameLimit bounds
// code names (inclusive, in runes); non-positive values fall back to
// domain.MaxNameLength. A nil logger disables logging.
func NewCodeService(
	codes ports.CodeRepository,
	categories ports.CategoryRepository,
	alloc ports.IDAllocator,
	bus *eventbus.Bus,
	nameLimit int,
	logger *slog.Logger,
	metrics *telemetry.Metrics,
) *CodeService {
	if nameLimit <= 0 {
		nameLimit = domain.MaxNameLength
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &CodeService{
		codes:      codes,
		categories: categories,
		alloc:      alloc,
		bus:        bus,
		nameLimit:  nameLimit,
		logger:     logger,
		metrics:    metrics,
	}
}

// CreateCode handles command.CreateCode.
func (s *CodeService) CreateCode(ctx context.Context, cmd command.CreateCode) ports.OperationResult {
	snap, err := s.snapshot(ctx, true, true)
	if err != nil {
		return observeResult(ctx, s.logger, s.metrics, cmd, infraFailureResult(err))
	}

	ev := derive.CreateCode(cmd, snap)
	if f, ok := ev.(event.Failure); ok {
		return observeResult(ctx, s.logger, s.metrics, cmd, domainFailureResult(f))
	}

	created := ev.(event.CodeCreated)
	code := domain.Code{
		ID:         created.CodeID,
		Name:       created.Name,
		Color:      created.Color,
		CategoryID: created.CategoryID,
	}
	if err := s.codes.Save(ctx, code); err != nil {
		return observeResult(ctx, s.logger, s.metrics, cmd, infraFailureResult(err))
	}

	s.bus.Publish(ev)
	rollback, _ := command.NewDeleteCode(created.CodeID)
	return observeResult(ctx, s.logger, s.metrics, cmd, successResult(ev, rollback))
}

// RenameCode handles command.RenameCode.
func (s *CodeService) RenameCode(ctx context.Context, cmd command.RenameCode) ports.OperationResult {
	snap, err := s.snapshot(ctx, false, false)
	if err != nil {
		return observeResult(ctx, s.logger, s.metrics, cmd, infraFailureResult(err))
	}

	ev := derive.RenameCode(cmd, snap)
	if f, ok := ev.(event.Failure); ok {
		return observeResult(ctx, s.logger, s.metrics, cmd, domainFailureResult(f))
	}

	renamed := ev.(event.CodeRenamed)
	code := findCode(snap.Codes, renamed.CodeID)
	code.Name = renamed.NewName
	if err := s.codes.Save(ctx, code); err != nil {
		return observeResult(ctx, s.logger, s.metrics, cmd, infraFailureResult(err))
	}

	s.bus.Publish(ev)
	rollback, _ := command.NewRenameCode(renamed.CodeID, renamed.OldName)
	return observeResult(ctx, s.logger, s.metrics, cmd, successResult(ev, rollback))
}

// RecolorCode handles command.RecolorCode.
func (s *CodeService) RecolorCode(ctx context.Context, cmd command.RecolorCode) ports.OperationResult {
	snap, err := s.snapshot(ctx, false, false)
	if err != nil {
		return observeResult(ctx, s.logger, s.metrics, cmd, infraFailureResult(err))
	}

	ev := derive.RecolorCode(cmd, snap)
	if f, ok := ev.(event.Failure); ok {
		return observeResult(ctx, s.logger, s.metrics, cmd, domainFailureResult(f))
	}

	recolored := ev.(event.CodeRecolored)
	code := findCode(snap.Codes, recolored.CodeID)
	code.Color = recolored.NewColor
	if err := s.codes.Save(ctx, code); err != nil {
		return observeResult(ctx, s.logger, s.metrics, cmd, infraFailureResult(err))
	}

	s.bus.Publish(ev)
	rollback, _ := command.NewRecolorCode(recolored.CodeID, recolored.OldColor)
	return observeResult(ctx, s.logger, s.metrics, cmd, successResult(ev, rollback))
}

// DeleteCode handles command.DeleteCode. No compensating command is offered:
// restoring a deleted code and its codings is a higher-level concern.
func (s *CodeService) DeleteCode(ctx context.Context, cmd command.DeleteCode) ports.OperationResult {
	snap, err := s.snapshot(ctx, false, false)
	if err != nil {
		return observeResult(ctx, s.logger, s.metrics, cmd, infraFailureResult(err))
	}

	ev := derive.DeleteCode(cmd, snap)
	if f, ok := ev.(event.Failure); ok {
		return observeResult(ctx, s.logger, s.metrics, cmd, domainFailureResult(f))
	}

	deleted := ev.(event.CodeDeleted)
	if err := s.codes.Delete(ctx, deleted.CodeID); err != nil {
		return observeResult(ctx, s.logger, s.metrics, cmd, infraFailureResult(err))
	}

	s.bus.Publish(ev)
	return observeResult(ctx, s.logger, s.metrics, cmd, successResult(ev, nil))
}

// AssignCodeToCategory handles command.AssignCodeToCategory.
func (s *CodeService) AssignCodeToCategory(ctx context.Context, cmd command.AssignCodeToCategory) ports.OperationResult {
	snap, err := s.snapshot(ctx, true, false)
	if err != nil {
		return observeResult(ctx, s.logger, s.metrics, cmd, infraFailureResult(err))
	}

	ev := derive.AssignCodeToCategory(cmd, snap)
	if f, ok := ev.(event.Failure); ok {
		return observeResult(ctx, s.logger, s.metrics, cmd, domainFailureResult(f))
	}

	assigned := ev.(event.CodeAssigned)
	code := findCode(snap.Codes, assigned.CodeID)
	categoryID := assigned.CategoryID
	code.CategoryID = &categoryID
	if err := s.codes.Save(ctx, code); err != nil {
		return observeResult(ctx, s.logger, s.metrics, cmd, infraFailureResult(err))
	}

	s.bus.Publish(ev)
	return observeResult(ctx, s.logger, s.metrics, cmd, successResult(ev, nil))
}

// snapshot queries exactly what the target deriver needs: the code list
// always, the category set only for derivers that check references, a fresh
// identifier only for derivers that create.
func (s *CodeService) snapshot(ctx context.Context, withCategories, withID bool) (derive.CodeSnapshot, error) {
	codes, err := s.codes.GetAll(ctx)
	if err != nil {
		return derive.CodeSnapshot{}, err
	}

	snap := derive.CodeSnapshot{Codes: codes, NameLimit: s.nameLimit}

	if withCategories {
		categories, err := s.categories.GetAll(ctx)
		if err != nil {
			return derive.CodeSnapshot{}, err
		}
		snap.CategoryIDs = make(map[int64]bool, len(categories))
		for _, c := range categories {
			snap.CategoryIDs[c.ID] = true
		}
	}

	if withID {
		id, err := s.alloc.NextID(ctx, "code")
		if err != nil {
			return derive.CodeSnapshot{}, err
		}
		snap.NextID = func() int64 { return id }
	}

	return snap, nil
}

// findCode returns the snapshot copy of a code the deriver already proved
// present.
func findCode(codes []domain.Code, id int64) domain.Code {
	for _, c := range codes {
		if c.ID == id {
			return c
		}
	}
	// The deriver returns a not-found failure before this can happen.
	panic("code missing from snapshot after successful derivation")
}
