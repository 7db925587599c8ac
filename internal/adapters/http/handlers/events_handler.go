package handlers

import (
	"net/http"

	"github.com/mkoskela/qualcore/internal/domain/event"
	"github.com/mkoskela/qualcore/internal/eventbus"
)

// EventsHandler exposes the recent event history recorded by the bus.
type EventsHandler struct {
	bus *eventbus.Bus
}

// NewEventsHandler creates a new EventsHandler over the given bus.
func NewEventsHandler(bus *eventbus.Bus) *EventsHandler {
	return &EventsHandler{bus: bus}
}

// eventRecord is the wire form of one history entry.
type eventRecord struct {
	Type  event.Type `json:"type"`
	Event any        `json:"event"`
}

// History handles GET /api/v1/events. Entries are returned oldest first.
func (h *EventsHandler) History(w http.ResponseWriter, r *http.Request) {
	history := h.bus.History()

	records := make([]eventRecord, len(history))
	for i, e := range history {
		records[i] = eventRecord{Type: e.EventType(), Event: e}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"events": records,
		"count":  len(records),
	})
}
