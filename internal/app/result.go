// Package app provides the command handlers of the functional core. Each
// handler follows the same five-step protocol: build a state snapshot from
// the persistence ports, invoke the deriver, short-circuit on a failure
// event, persist the implied change, and only then publish the success event
// on the bus. Side effects live exclusively in the last two steps; replaying
// the first two with the same persisted state yields the same event.
package app

import (
	"context"
	"log/slog"

	"github.com/mkoskela/qualcore/internal/domain/command"
	"github.com/mkoskela/qualcore/internal/domain/event"
	"github.com/mkoskela/qualcore/internal/platform/telemetry"
	"github.com/mkoskela/qualcore/internal/ports"
)

// successResult builds the OperationResult for a persisted-and-published
// command. rollback may be nil when no compensating command exists.
func successResult(ev event.Event, rollback command.Command) ports.OperationResult {
	return ports.OperationResult{
		Outcome:  ports.OutcomeSuccess,
		Event:    ev,
		Rollback: rollback,
	}
}

// domainFailureResult builds the OperationResult for a declined command.
// Nothing was persisted or published.
func domainFailureResult(f event.Failure) ports.OperationResult {
	return ports.OperationResult{
		Outcome: ports.OutcomeDomainFailure,
		Event:   f,
		Reason:  f.Reason(),
		Message: f.Message(),
	}
}

// infraFailureResult builds the OperationResult for a persistence fault.
// The derived event, if any, was not published.
func infraFailureResult(err error) ports.OperationResult {
	return ports.OperationResult{
		Outcome: ports.OutcomeInfrastructureFailure,
		Err:     err,
	}
}

// observeResult logs and counts one handled command.
func observeResult(ctx context.Context, logger *slog.Logger, metrics *telemetry.Metrics,
	cmd command.Command, result ports.OperationResult,
) ports.OperationResult {
	metrics.RecordCommand(ctx, cmd.CommandName(), string(result.Outcome))

	switch result.Outcome {
	case ports.OutcomeDomainFailure:
		logger.InfoContext(ctx, "command declined",
			slog.String("command", cmd.CommandName()),
			slog.String("reason", result.Reason),
		)
	case ports.OutcomeInfrastructureFailure:
		logger.ErrorContext(ctx, "command failed on persistence",
			slog.String("command", cmd.CommandName()),
			slog.Any("error", result.Err),
		)
	default:
		logger.InfoContext(ctx, "command applied",
			slog.String("command", cmd.CommandName()),
			slog.String("event_type", string(result.Event.EventType())),
		)
	}
	return result
}
