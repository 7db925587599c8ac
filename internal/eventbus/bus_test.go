package eventbus_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/mkoskela/qualcore/internal/domain/event"
	"github.com/mkoskela/qualcore/internal/eventbus"
)

func newBus(capacity int) *eventbus.Bus {
	return eventbus.New(capacity, nil, nil)
}

func TestPublish_DeliversToTypedSubscriber(t *testing.T) {
	t.Parallel()

	bus := newBus(0)

	var got []event.Event
	bus.Subscribe(event.TypeCodeCreated, func(e event.Event) {
		got = append(got, e)
	})

	published := event.CodeCreated{CodeID: 1, Name: "Theme A", Color: "#ff0000"}
	bus.Publish(published)

	if len(got) != 1 {
		t.Fatalf("handler invoked %d times, want 1", len(got))
	}
	if got[0] != event.Event(published) {
		t.Errorf("received %+v, want %+v", got[0], published)
	}
}

func TestPublish_SkipsOtherTypes(t *testing.T) {
	t.Parallel()

	bus := newBus(0)

	calls := 0
	bus.Subscribe(event.TypeCodeDeleted, func(event.Event) { calls++ })

	bus.Publish(event.CodeCreated{CodeID: 1})

	if calls != 0 {
		t.Errorf("handler for another type invoked %d times, want 0", calls)
	}
}

func TestPublish_RegistrationOrder(t *testing.T) {
	t.Parallel()

	bus := newBus(0)

	var order []string
	for _, name := range []string{"first", "second", "third"} {
		bus.Subscribe(event.TypeCodeCreated, func(event.Event) {
			order = append(order, name)
		})
	}

	bus.Publish(event.CodeCreated{CodeID: 1})

	want := []string{"first", "second", "third"}
	if len(order) != len(want) {
		t.Fatalf("got %d invocations, want %d", len(order), len(want))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("invocation %d = %q, want %q", i, order[i], want[i])
		}
	}
}

func TestSubscribeAll_RunsAfterTypedSubscribers(t *testing.T) {
	t.Parallel()

	bus := newBus(0)

	var order []string
	bus.SubscribeAll(func(event.Event) { order = append(order, "all") })
	bus.Subscribe(event.TypeCodeCreated, func(event.Event) { order = append(order, "typed") })

	bus.Publish(event.CodeCreated{CodeID: 1})

	if len(order) != 2 || order[0] != "typed" || order[1] != "all" {
		t.Errorf("invocation order = %v, want [typed all]", order)
	}
}

func TestSubscribeAll_SeesEveryType(t *testing.T) {
	t.Parallel()

	bus := newBus(0)

	var types []event.Type
	bus.SubscribeAll(func(e event.Event) { types = append(types, e.EventType()) })

	bus.Publish(event.CodeCreated{CodeID: 1})
	bus.Publish(event.CategoryDeleted{CategoryID: 3})
	bus.Publish(event.CodeNotCreatedEmptyName(""))

	if len(types) != 3 {
		t.Fatalf("global subscriber saw %d events, want 3", len(types))
	}
	want := []event.Type{event.TypeCodeCreated, event.TypeCategoryDeleted, event.TypeCodeNotCreated}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("event %d type = %q, want %q", i, types[i], want[i])
		}
	}
}

func TestCancel_StopsDelivery(t *testing.T) {
	t.Parallel()

	bus := newBus(0)

	calls := 0
	sub := bus.Subscribe(event.TypeCodeCreated, func(event.Event) { calls++ })

	bus.Publish(event.CodeCreated{CodeID: 1})
	bus.Cancel(sub)
	bus.Publish(event.CodeCreated{CodeID: 2})

	if calls != 1 {
		t.Errorf("handler invoked %d times, want 1 (cancelled before second publish)", calls)
	}
}

func TestCancel_Idempotent(t *testing.T) {
	t.Parallel()

	bus := newBus(0)
	sub := bus.Subscribe(event.TypeCodeCreated, func(event.Event) {})

	bus.Cancel(sub)
	bus.Cancel(sub)
	bus.Cancel(nil)

	bus.Publish(event.CodeCreated{CodeID: 1})
}

func TestCancel_FromWithinHandler(t *testing.T) {
	t.Parallel()

	bus := newBus(0)

	calls := 0
	var sub *eventbus.Subscription
	sub = bus.Subscribe(event.TypeCodeCreated, func(event.Event) {
		calls++
		bus.Cancel(sub)
	})

	bus.Publish(event.CodeCreated{CodeID: 1})
	bus.Publish(event.CodeCreated{CodeID: 2})

	if calls != 1 {
		t.Errorf("handler invoked %d times, want 1 (self-cancelled)", calls)
	}
}

func TestPublish_PanicIsolation(t *testing.T) {
	t.Parallel()

	bus := newBus(0)

	bus.Subscribe(event.TypeCodeCreated, func(event.Event) {
		panic("subscriber broke")
	})
	survived := 0
	bus.Subscribe(event.TypeCodeCreated, func(event.Event) { survived++ })

	// Must not propagate the panic to the publisher.
	bus.Publish(event.CodeCreated{CodeID: 1})

	if survived != 1 {
		t.Errorf("subscriber after the panicking one invoked %d times, want 1", survived)
	}
}

func TestHistory_OldestFirst(t *testing.T) {
	t.Parallel()

	bus := newBus(10)

	bus.Publish(event.CodeCreated{CodeID: 1})
	bus.Publish(event.CodeRenamed{CodeID: 1, OldName: "a", NewName: "b"})
	bus.Publish(event.CodeDeleted{CodeID: 1, Name: "b"})

	history := bus.History()
	if len(history) != 3 {
		t.Fatalf("history has %d events, want 3", len(history))
	}
	want := []event.Type{event.TypeCodeCreated, event.TypeCodeRenamed, event.TypeCodeDeleted}
	for i := range want {
		if history[i].EventType() != want[i] {
			t.Errorf("history[%d] type = %q, want %q", i, history[i].EventType(), want[i])
		}
	}
}

func TestHistory_RingWrapsAround(t *testing.T) {
	t.Parallel()

	bus := newBus(3)

	for i := int64(1); i <= 5; i++ {
		bus.Publish(event.CodeCreated{CodeID: i})
	}

	history := bus.History()
	if len(history) != 3 {
		t.Fatalf("history has %d events, want capacity 3", len(history))
	}
	for i, wantID := range []int64{3, 4, 5} {
		created, ok := history[i].(event.CodeCreated)
		if !ok {
			t.Fatalf("history[%d] is %T, want CodeCreated", i, history[i])
		}
		if created.CodeID != wantID {
			t.Errorf("history[%d].CodeID = %d, want %d", i, created.CodeID, wantID)
		}
	}
}

func TestHistory_RecordsEventsWithoutSubscribers(t *testing.T) {
	t.Parallel()

	bus := newBus(10)
	bus.Publish(event.CodeCreated{CodeID: 1})

	if got := len(bus.History()); got != 1 {
		t.Errorf("history has %d events, want 1", got)
	}
}

func TestPublish_ConcurrentPublishers(t *testing.T) {
	t.Parallel()

	bus := newBus(1000)

	var mu sync.Mutex
	received := 0
	bus.Subscribe(event.TypeCodeCreated, func(event.Event) {
		mu.Lock()
		received++
		mu.Unlock()
	})

	const publishers = 8
	const perPublisher = 50

	var wg sync.WaitGroup
	for p := range publishers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range perPublisher {
				bus.Publish(event.CodeCreated{CodeID: int64(p*perPublisher + i)})
			}
		}()
	}
	wg.Wait()

	if received != publishers*perPublisher {
		t.Errorf("received %d events, want %d", received, publishers*perPublisher)
	}
	if got := len(bus.History()); got != publishers*perPublisher {
		t.Errorf("history has %d events, want %d", got, publishers*perPublisher)
	}
}

func TestPublish_FailureEventsRouteLikeAnyOther(t *testing.T) {
	t.Parallel()

	bus := newBus(0)

	var got event.Event
	bus.Subscribe(event.TypeCodeNotCreated, func(e event.Event) { got = e })

	bus.Publish(event.CodeNotCreatedDuplicateName("Theme A"))

	f, ok := got.(event.Failure)
	if !ok {
		t.Fatalf("received %T, want a failure event", got)
	}
	if f.Reason() != "CODE_NOT_CREATED/DUPLICATE_NAME" {
		t.Errorf("Reason() = %q, want CODE_NOT_CREATED/DUPLICATE_NAME", f.Reason())
	}
}

func ExampleBus_Subscribe() {
	bus := eventbus.New(16, nil, nil)

	bus.Subscribe(event.TypeCodeCreated, func(e event.Event) {
		created := e.(event.CodeCreated)
		fmt.Println("created", created.Name)
	})

	bus.Publish(event.CodeCreated{CodeID: 1, Name: "Theme A", Color: "#ff0000"})
	// Output: created Theme A
}
