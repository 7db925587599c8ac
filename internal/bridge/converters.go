package bridge

import (
	"fmt"

	"github.com/mkoskela/qualcore/internal/domain/event"
)

// Stock converters for the coding bounded context. Each is pure and produces
// only primitive values; cmd wiring registers them against the channels the
// UI shell listens on.

// CodeCreatedPayload converts event.CodeCreated.
func CodeCreatedPayload(e event.Event) (Payload, error) {
	ev, ok := e.(event.CodeCreated)
	if !ok {
		return nil, convertMismatch(event.TypeCodeCreated, e)
	}
	p := Payload{
		"code_id":   ev.CodeID,
		"code_name": ev.Name,
		"color":     ev.Color,
	}
	if ev.CategoryID != nil {
		p["category_id"] = *ev.CategoryID
	}
	return p, nil
}

// CodeRenamedPayload converts event.CodeRenamed.
func CodeRenamedPayload(e event.Event) (Payload, error) {
	ev, ok := e.(event.CodeRenamed)
	if !ok {
		return nil, convertMismatch(event.TypeCodeRenamed, e)
	}
	return Payload{
		"code_id":  ev.CodeID,
		"old_name": ev.OldName,
		"new_name": ev.NewName,
	}, nil
}

// CodeDeletedPayload converts event.CodeDeleted.
func CodeDeletedPayload(e event.Event) (Payload, error) {
	ev, ok := e.(event.CodeDeleted)
	if !ok {
		return nil, convertMismatch(event.TypeCodeDeleted, e)
	}
	return Payload{
		"code_id":   ev.CodeID,
		"code_name": ev.Name,
	}, nil
}

// CategoryCreatedPayload converts event.CategoryCreated.
func CategoryCreatedPayload(e event.Event) (Payload, error) {
	ev, ok := e.(event.CategoryCreated)
	if !ok {
		return nil, convertMismatch(event.TypeCategoryCreated, e)
	}
	return Payload{
		"category_id":   ev.CategoryID,
		"category_name": ev.Name,
	}, nil
}

// CodeAppliedPayload converts event.CodeApplied.
func CodeAppliedPayload(e event.Event) (Payload, error) {
	ev, ok := e.(event.CodeApplied)
	if !ok {
		return nil, convertMismatch(event.TypeCodeApplied, e)
	}
	return Payload{
		"coding_id": ev.CodingID,
		"code_id":   ev.CodeID,
		"source_id": ev.SourceID,
		"start":     ev.Start,
		"end":       ev.End,
	}, nil
}

// FailurePayload converts any failure event into a reason/message payload
// for the UI's notification channel.
func FailurePayload(e event.Event) (Payload, error) {
	f, ok := e.(event.Failure)
	if !ok {
		return nil, fmt.Errorf("expected a failure event, got %q", e.EventType())
	}
	return Payload{
		"reason":  f.Reason(),
		"message": f.Message(),
	}, nil
}

func convertMismatch(want event.Type, got event.Event) error {
	return fmt.Errorf("converter for %q received %q", want, got.EventType())
}
