package app

import (
	"context"
	"log/slog"

	"github.com/mkoskela/qualcore/internal/app/fanout"
	"github.com/mkoskela/qualcore/internal/domain"
	"github.com/mkoskela/qualcore/internal/domain/command"
	"github.com/mkoskela/qualcore/internal/domain/derive"
	"github.com/mkoskela/qualcore/internal/domain/event"
	"github.com/mkoskela/qualcore/internal/eventbus"
	"github.com/mkoskela/qualcore/internal/platform/telemetry"
	"github.com/mkoskela/qualcore/internal/ports"
)

// defaultBulkWorkers bounds the concurrency of BulkApplyCodes when no
// explicit worker count is configured.
const defaultBulkWorkers = 4

// Compile-time check that CodingService implements ports.CodingCommands.
var _ ports.CodingCommands = (*CodingService)(nil)

// CodingService orchestrates coding commands.
type CodingService struct {
	codings ports.CodingRepository
	codes   ports.CodeRepository
	alloc   ports.IDAllocator
	bus     *eventbus.Bus
	workers int
	logger  *slog.Logger
	metrics *telemetry.Metrics
}

// NewCodingService creates a CodingService publishing on bus. workers bounds
// BulkApplyCodes concurrency; non-positive values fall back to the default.
func NewCodingService(
	codings ports.CodingRepository,
	codes ports.CodeRepository,
	alloc ports.IDAllocator,
	bus *eventbus.Bus,
	workers int,
	logger *slog.Logger,
	metrics *telemetry.Metrics,
) *CodingService {
	if workers <= 0 {
		workers = defaultBulkWorkers
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &CodingService{
		codings: codings,
		codes:   codes,
		alloc:   alloc,
		bus:     bus,
		workers: workers,
		logger:  logger,
		metrics: metrics,
	}
}

// ApplyCode handles command.ApplyCode.
func (s *CodingService) ApplyCode(ctx context.Context, cmd command.ApplyCode) ports.OperationResult {
	snap, err := s.snapshot(ctx, true)
	if err != nil {
		return observeResult(ctx, s.logger, s.metrics, cmd, infraFailureResult(err))
	}

	ev := derive.ApplyCode(cmd, snap)
	if f, ok := ev.(event.Failure); ok {
		return observeResult(ctx, s.logger, s.metrics, cmd, domainFailureResult(f))
	}

	applied := ev.(event.CodeApplied)
	coding := domain.Coding{
		ID:       applied.CodingID,
		CodeID:   applied.CodeID,
		SourceID: applied.SourceID,
		Start:    applied.Start,
		End:      applied.End,
	}
	if err := s.codings.Save(ctx, coding); err != nil {
		return observeResult(ctx, s.logger, s.metrics, cmd, infraFailureResult(err))
	}

	s.bus.Publish(ev)
	rollback, _ := command.NewRemoveCoding(applied.CodingID)
	return observeResult(ctx, s.logger, s.metrics, cmd, successResult(ev, rollback))
}

// RemoveCoding handles command.RemoveCoding. The compensating command
// re-applies the same code to the same span (under a fresh coding ID).
func (s *CodingService) RemoveCoding(ctx context.Context, cmd command.RemoveCoding) ports.OperationResult {
	snap, err := s.snapshot(ctx, false)
	if err != nil {
		return observeResult(ctx, s.logger, s.metrics, cmd, infraFailureResult(err))
	}

	ev := derive.RemoveCoding(cmd, snap)
	if f, ok := ev.(event.Failure); ok {
		return observeResult(ctx, s.logger, s.metrics, cmd, domainFailureResult(f))
	}

	removed := ev.(event.CodingRemoved)
	if err := s.codings.Delete(ctx, removed.CodingID); err != nil {
		return observeResult(ctx, s.logger, s.metrics, cmd, infraFailureResult(err))
	}

	s.bus.Publish(ev)
	rollback, _ := command.NewApplyCode(removed.CodeID, removed.SourceID, removed.Start, removed.End)
	return observeResult(ctx, s.logger, s.metrics, cmd, successResult(ev, rollback))
}

// BulkApplyCodes applies many spans with bounded concurrency and
// partial-success semantics: every input command gets its own
// OperationResult, in input order. A command that fails does not stop the
// others.
func (s *CodingService) BulkApplyCodes(ctx context.Context, cmds []command.ApplyCode) []ports.OperationResult {
	results := fanout.Run(ctx, s.workers, cmds,
		func(ctx context.Context, cmd command.ApplyCode) (ports.OperationResult, error) {
			return s.ApplyCode(ctx, cmd), nil
		})

	out := make([]ports.OperationResult, len(results))
	for i, r := range results {
		if r.Err != nil {
			out[i] = infraFailureResult(r.Err)
			continue
		}
		out[i] = r.Value
	}
	return out
}

// snapshot queries exactly what the target deriver needs: the coding list
// always, the code and source ID sets plus a fresh identifier only for
// application.
func (s *CodingService) snapshot(ctx context.Context, forApply bool) (derive.CodingSnapshot, error) {
	codings, err := s.codings.GetAll(ctx)
	if err != nil {
		return derive.CodingSnapshot{}, err
	}

	snap := derive.CodingSnapshot{Codings: codings}
	if !forApply {
		return snap, nil
	}

	codes, err := s.codes.GetAll(ctx)
	if err != nil {
		return derive.CodingSnapshot{}, err
	}
	snap.CodeIDs = make(map[int64]bool, len(codes))
	for _, c := range codes {
		snap.CodeIDs[c.ID] = true
	}

	sourceIDs, err := s.codings.SourceIDs(ctx)
	if err != nil {
		return derive.CodingSnapshot{}, err
	}
	snap.SourceIDs = make(map[int64]bool, len(sourceIDs))
	for _, id := range sourceIDs {
		snap.SourceIDs[id] = true
	}

	id, err := s.alloc.NextID(ctx, "coding")
	if err != nil {
		return derive.CodingSnapshot{}, err
	}
	snap.NextID = func() int64 { return id }

	return snap, nil
}
