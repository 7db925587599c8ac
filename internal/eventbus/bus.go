// Package eventbus provides the process-wide synchronous publish/subscribe
// hub routing domain events to subscribers by their type discriminant.
//
// One bus instance is constructed at process start and handed by explicit
// reference to every command handler (publish side) and signal bridge
// (subscribe side); there is no ambient global lookup, so each test builds
// its own bus.
//
// Dispatch runs on the publishing goroutine. The internal mutex guards only
// the subscriber lists and the history ring; it is never held while a handler
// runs, so a slow handler stalls only its own publish call. Each subscription
// carries its own mutex so one subscriber never observes the notifications of
// two publishes interleaved.
package eventbus

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/mkoskela/qualcore/internal/domain/event"
	"github.com/mkoskela/qualcore/internal/platform/telemetry"
)

// DefaultHistoryCapacity bounds the diagnostic event history when the
// configured capacity is not positive.
const DefaultHistoryCapacity = 100

// Handler consumes one published event. Handlers run synchronously on the
// publishing goroutine and must not publish from within a deriver.
type Handler func(event.Event)

// Subscription is the opaque handle returned by Subscribe and SubscribeAll.
// Its only valid use is passing it to Cancel.
type Subscription struct {
	id        uint64
	eventType event.Type
	all       bool
	handler   Handler
	cancelled atomic.Bool

	// mu serializes this subscriber's notifications so two concurrent
	// publishes never interleave inside one handler.
	mu sync.Mutex
}

// Bus is the thread-safe in-process event hub.
type Bus struct {
	logger  *slog.Logger
	metrics *telemetry.Metrics

	mu      sync.Mutex
	nextID  uint64
	subs    map[event.Type][]*Subscription
	allSubs []*Subscription
	history *ring
}

// New creates a Bus with the given diagnostic history capacity. A nil logger
// disables logging; a nil metrics disables instrumentation.
func New(historyCapacity int, logger *slog.Logger, metrics *telemetry.Metrics) *Bus {
	if historyCapacity <= 0 {
		historyCapacity = DefaultHistoryCapacity
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Bus{
		logger:  logger,
		metrics: metrics,
		subs:    make(map[event.Type][]*Subscription),
		history: newRing(historyCapacity),
	}
}

// Subscribe registers a handler for one event discriminant. Handlers for the
// same discriminant are invoked in registration order.
func (b *Bus) Subscribe(eventType event.Type, handler Handler) *Subscription {
	sub := &Subscription{eventType: eventType, handler: handler}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	sub.id = b.nextID
	b.subs[eventType] = append(b.subs[eventType], sub)
	return sub
}

// SubscribeAll registers a handler invoked for every published event, after
// all type-specific handlers for that event have run.
func (b *Bus) SubscribeAll(handler Handler) *Subscription {
	sub := &Subscription{all: true, handler: handler}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	sub.id = b.nextID
	b.allSubs = append(b.allSubs, sub)
	return sub
}

// Cancel marks the subscription cancelled and removes it from the subscriber
// lists. Idempotent, and safe to call from within a handler running in an
// in-flight publish: the handler will not run on subsequent publishes, while
// a publish already iterating a stale snapshot may or may not skip it
// (best-effort same-call exclusion).
func (b *Bus) Cancel(sub *Subscription) {
	if sub == nil || sub.cancelled.Swap(true) {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if sub.all {
		b.allSubs = removeSub(b.allSubs, sub.id)
		return
	}
	b.subs[sub.eventType] = removeSub(b.subs[sub.eventType], sub.id)
	if len(b.subs[sub.eventType]) == 0 {
		delete(b.subs, sub.eventType)
	}
}

// Publish synchronously invokes, on the calling goroutine, all active
// type-specific subscribers for the event's discriminant in registration
// order, then all active global subscribers in registration order, and
// appends the event to the diagnostic history. A panicking handler is logged
// and isolated: remaining subscribers still run and nothing propagates to
// the publisher.
func (b *Bus) Publish(e event.Event) {
	b.mu.Lock()
	typed := b.subs[e.EventType()]
	targets := make([]*Subscription, 0, len(typed)+len(b.allSubs))
	targets = append(targets, typed...)
	targets = append(targets, b.allSubs...)
	b.history.append(e)
	b.mu.Unlock()

	if b.metrics != nil {
		b.metrics.RecordEventPublished(context.Background(), string(e.EventType()))
	}

	for _, sub := range targets {
		b.dispatch(sub, e)
	}
}

// dispatch delivers one event to one subscriber with panic isolation.
func (b *Bus) dispatch(sub *Subscription, e event.Event) {
	if sub.cancelled.Load() {
		return
	}

	sub.mu.Lock()
	defer sub.mu.Unlock()

	// Re-check under the subscription lock so a handler cancelled while we
	// waited is skipped.
	if sub.cancelled.Load() {
		return
	}

	defer func() {
		if v := recover(); v != nil {
			if b.metrics != nil {
				b.metrics.RecordSubscriberFailure(context.Background(), string(e.EventType()))
			}
			b.logger.Error("event subscriber panicked",
				slog.String("event_type", string(e.EventType())),
				slog.Uint64("subscription_id", sub.id),
				slog.String("panic", fmt.Sprint(v)),
				slog.String("stack", string(debug.Stack())),
			)
		}
	}()

	sub.handler(e)
}

// History returns the retained events, oldest first. The slice is a copy.
func (b *Bus) History() []event.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.history.snapshot()
}

// removeSub filters a subscription out of a registration-ordered list.
func removeSub(subs []*Subscription, id uint64) []*Subscription {
	for i, s := range subs {
		if s.id == id {
			return append(subs[:i:i], subs[i+1:]...)
		}
	}
	return subs
}
