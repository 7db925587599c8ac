// Package bridge adapts domain events for a single-threaded UI toolkit. The
// bridge subscribes to the event bus, converts each event into a
// primitives-only payload through a registered converter, and marshals
// delivery onto the UI execution context without blocking publishers beyond
// the conversion itself.
//
// One bridge instance exists per bounded context for the process lifetime:
// converters are registered once during construction, BindToUIContext wires
// the bus subscriptions, and Dispose cancels them so no callback can reach a
// torn-down UI.
package bridge

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mkoskela/qualcore/internal/domain/event"
	"github.com/mkoskela/qualcore/internal/eventbus"
	"github.com/mkoskela/qualcore/internal/platform/telemetry"
	"github.com/mkoskela/qualcore/internal/ports"
)

// Payload is the UI-safe representation of one event: primitive values only,
// no references to domain entities or mutable shared state.
type Payload map[string]any

// Converter turns a domain event into a payload. Converters must be pure; a
// returned error causes the bridge to log and skip that one delivery.
type Converter func(event.Event) (Payload, error)

// Sink receives converted payloads on the UI execution context, tagged with
// the output channel named at registration. This is the only path by which
// domain events reach presentation.
type Sink func(channel string, payload Payload)

type registration struct {
	convert Converter
	channel string
}

// Bridge redistributes bus events to the UI thread exactly once, in the
// order observed by its subscriptions.
type Bridge struct {
	bus     *eventbus.Bus
	sink    Sink
	logger  *slog.Logger
	metrics *telemetry.Metrics

	mu        sync.Mutex
	registry  map[event.Type]registration
	order     []event.Type
	subs      []*eventbus.Subscription
	ui        ports.UIContext
	disposed  bool
}

// New creates a Bridge publishing converted payloads to sink. A nil logger
// disables logging; a nil metrics disables instrumentation.
func New(bus *eventbus.Bus, sink Sink, logger *slog.Logger, metrics *telemetry.Metrics) *Bridge {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Bridge{
		bus:      bus,
		sink:     sink,
		logger:   logger,
		metrics:  metrics,
		registry: make(map[event.Type]registration),
	}
}

// RegisterConverter associates one event discriminant with a conversion
// function and a named UI output channel. Registration happens during
// construction wiring, before BindToUIContext; registering a duplicate key or
// registering after binding is a programming contract violation and panics.
func (b *Bridge) RegisterConverter(eventType event.Type, fn Converter, channel string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.ui != nil {
		panic("bridge: RegisterConverter called after BindToUIContext")
	}
	if _, dup := b.registry[eventType]; dup {
		panic(fmt.Sprintf("bridge: converter already registered for %q", eventType))
	}
	b.registry[eventType] = registration{convert: fn, channel: channel}
	b.order = append(b.order, eventType)
}

// BindToUIContext subscribes the bridge to the event bus for every registered
// discriminant and starts marshaling deliveries onto ui. Binding twice or
// binding a disposed bridge panics.
func (b *Bridge) BindToUIContext(ui ports.UIContext) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.disposed {
		panic("bridge: BindToUIContext on disposed bridge")
	}
	if b.ui != nil {
		panic("bridge: already bound to a UI context")
	}
	b.ui = ui

	for _, eventType := range b.order {
		reg := b.registry[eventType]
		sub := b.bus.Subscribe(eventType, func(e event.Event) {
			b.forward(reg, e)
		})
		b.subs = append(b.subs, sub)
	}
}

// Dispose cancels the bus subscriptions so no further callback reaches the
// UI. Idempotent.
func (b *Bridge) Dispose() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.disposed {
		return
	}
	b.disposed = true
	for _, sub := range b.subs {
		b.bus.Cancel(sub)
	}
	b.subs = nil
}

// forward converts one event and delivers it on the UI context. Conversion
// and payload-shape errors skip only this delivery; subsequent events still
// flow.
func (b *Bridge) forward(reg registration, e event.Event) {
	payload, err := reg.convert(e)
	if err == nil {
		err = validatePayload(payload)
	}
	if err != nil {
		b.logger.Error("event conversion failed",
			slog.String("event_type", string(e.EventType())),
			slog.String("channel", reg.channel),
			slog.Any("error", err),
		)
		return
	}

	deliver := func() {
		b.sink(reg.channel, payload)
		if b.metrics != nil {
			b.metrics.RecordBridgeDelivery(context.Background(), reg.channel)
		}
	}

	if b.ui.OnUIThread() {
		deliver()
		return
	}
	b.ui.RunOnUI(deliver)
}

// validatePayload rejects payloads carrying non-primitive values, which would
// smuggle domain references across the UI boundary.
func validatePayload(p Payload) error {
	for key, value := range p {
		switch value.(type) {
		case nil, bool, int, int32, int64, float32, float64, string:
		default:
			return fmt.Errorf("payload field %q has non-primitive type %T", key, value)
		}
	}
	return nil
}
