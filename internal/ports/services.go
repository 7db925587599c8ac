package ports

import (
	"context"

	"github.com/mkoskela/qualcore/internal/domain/command"
	"github.com/mkoskela/qualcore/internal/domain/event"
)

// Outcome classifies an OperationResult.
type Outcome string

const (
	// OutcomeSuccess: the command was accepted, persisted, and published.
	OutcomeSuccess Outcome = "success"
	// OutcomeDomainFailure: a deriver declined the command; nothing was
	// persisted or published.
	OutcomeDomainFailure Outcome = "domain_failure"
	// OutcomeInfrastructureFailure: the persistence port failed; nothing was
	// published.
	OutcomeInfrastructureFailure Outcome = "infrastructure_failure"
)

// OperationResult is the caller-facing outcome of one command. It is created
// by the command handler after persist-and-publish completes (or short
// circuits) and is never persisted itself.
type OperationResult struct {
	Outcome Outcome

	// Event is the derived event: the success variant on OutcomeSuccess, the
	// failure variant on OutcomeDomainFailure, nil on infrastructure failure.
	Event event.Event

	// Reason and Message are set on OutcomeDomainFailure, copied from the
	// failure event for callers that only need to report.
	Reason  string
	Message string

	// Err is set on OutcomeInfrastructureFailure and wraps
	// domain.ErrStorage.
	Err error

	// Rollback, when non-nil on OutcomeSuccess, is a compensating command
	// that would undo this change. Used for user-facing undo.
	Rollback command.Command
}

// Success reports whether the command went through.
func (r OperationResult) Success() bool { return r.Outcome == OutcomeSuccess }

// CodeCommands is the service port for code state changes. Implemented by the
// application layer; called by inbound adapters. Callers construct a command
// value and invoke exactly one method; invoking derivers or repositories
// directly bypasses the publish guarantee.
type CodeCommands interface {
	CreateCode(ctx context.Context, cmd command.CreateCode) OperationResult
	RenameCode(ctx context.Context, cmd command.RenameCode) OperationResult
	RecolorCode(ctx context.Context, cmd command.RecolorCode) OperationResult
	DeleteCode(ctx context.Context, cmd command.DeleteCode) OperationResult
	AssignCodeToCategory(ctx context.Context, cmd command.AssignCodeToCategory) OperationResult
}

// CategoryCommands is the service port for category state changes.
type CategoryCommands interface {
	CreateCategory(ctx context.Context, cmd command.CreateCategory) OperationResult
	RenameCategory(ctx context.Context, cmd command.RenameCategory) OperationResult
	DeleteCategory(ctx context.Context, cmd command.DeleteCategory) OperationResult
}

// CodingCommands is the service port for coding state changes.
type CodingCommands interface {
	ApplyCode(ctx context.Context, cmd command.ApplyCode) OperationResult
	RemoveCoding(ctx context.Context, cmd command.RemoveCoding) OperationResult

	// BulkApplyCodes applies many spans concurrently with partial-success
	// semantics: one OperationResult per input command, in input order.
	BulkApplyCodes(ctx context.Context, cmds []command.ApplyCode) []OperationResult
}
