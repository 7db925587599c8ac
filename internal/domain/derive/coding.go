package derive

import (
	"github.com/mkoskela/qualcore/internal/domain/command"
	"github.com/mkoskela/qualcore/internal/domain/event"
	"github.com/mkoskela/qualcore/internal/domain/invariant"
)

// ApplyCode decides whether a code may be attached to a source span. Check
// order: span valid, code exists, source exists, span not already coded with
// the same code.
func ApplyCode(cmd command.ApplyCode, state CodingSnapshot) event.Event {
	if !invariant.SpanValid(cmd.Start, cmd.End) {
		return event.CodeNotAppliedInvalidSpan(cmd.CodeID, cmd.SourceID, cmd.Start, cmd.End)
	}
	if !invariant.IDExists(cmd.CodeID, state.CodeIDs) {
		return event.CodeNotAppliedCodeNotFound(cmd.CodeID, cmd.SourceID)
	}
	if !invariant.IDExists(cmd.SourceID, state.SourceIDs) {
		return event.CodeNotAppliedSourceNotFound(cmd.CodeID, cmd.SourceID)
	}
	if state.hasSpan(cmd.CodeID, cmd.SourceID, cmd.Start, cmd.End) {
		return event.CodeNotAppliedDuplicateSpan(cmd.CodeID, cmd.SourceID, cmd.Start, cmd.End)
	}

	return event.CodeApplied{
		CodingID: state.NextID(),
		CodeID:   cmd.CodeID,
		SourceID: cmd.SourceID,
		Start:    cmd.Start,
		End:      cmd.End,
	}
}

// RemoveCoding decides whether a coding may be detached. Single check: the
// coding exists.
func RemoveCoding(cmd command.RemoveCoding, state CodingSnapshot) event.Event {
	coding, ok := state.find(cmd.CodingID)
	if !ok {
		return event.CodingNotRemovedNotFound(cmd.CodingID)
	}

	return event.CodingRemoved{
		CodingID: coding.ID,
		CodeID:   coding.CodeID,
		SourceID: coding.SourceID,
		Start:    coding.Start,
		End:      coding.End,
	}
}
