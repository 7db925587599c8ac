package bridge_test

import (
	"errors"
	"testing"
	"time"

	"github.com/mkoskela/qualcore/internal/adapters/uiloop"
	"github.com/mkoskela/qualcore/internal/bridge"
	"github.com/mkoskela/qualcore/internal/domain/event"
	"github.com/mkoskela/qualcore/internal/eventbus"
)

// immediateUI runs every closure inline on the calling goroutine.
type immediateUI struct{}

func (immediateUI) RunOnUI(fn func()) { fn() }
func (immediateUI) OnUIThread() bool  { return false }

type delivery struct {
	channel string
	payload bridge.Payload
}

// capture collects sink deliveries. With immediateUI every delivery happens
// synchronously inside Publish, so no locking is needed.
type capture struct {
	deliveries []delivery
}

func (c *capture) sink(channel string, payload bridge.Payload) {
	c.deliveries = append(c.deliveries, delivery{channel: channel, payload: payload})
}

func newBoundBridge(t *testing.T, reg func(b *bridge.Bridge)) (*eventbus.Bus, *capture) {
	t.Helper()

	bus := eventbus.New(16, nil, nil)
	sink := &capture{}
	b := bridge.New(bus, sink.sink, nil, nil)
	reg(b)
	b.BindToUIContext(immediateUI{})
	t.Cleanup(b.Dispose)
	return bus, sink
}

func TestBridge_DeliversConvertedPayload(t *testing.T) {
	t.Parallel()

	bus, sink := newBoundBridge(t, func(b *bridge.Bridge) {
		b.RegisterConverter(event.TypeCodeCreated, bridge.CodeCreatedPayload, "codeCreated")
	})

	bus.Publish(event.CodeCreated{CodeID: 1, Name: "Theme A", Color: "#ff0000"})

	if len(sink.deliveries) != 1 {
		t.Fatalf("sink received %d deliveries, want 1", len(sink.deliveries))
	}
	d := sink.deliveries[0]
	if d.channel != "codeCreated" {
		t.Errorf("channel = %q, want %q", d.channel, "codeCreated")
	}
	if d.payload["code_name"] != "Theme A" {
		t.Errorf("payload code_name = %v, want %q", d.payload["code_name"], "Theme A")
	}
	if d.payload["code_id"] != int64(1) {
		t.Errorf("payload code_id = %v, want int64(1)", d.payload["code_id"])
	}
}

func TestBridge_ExactlyOncePerEvent(t *testing.T) {
	t.Parallel()

	bus, sink := newBoundBridge(t, func(b *bridge.Bridge) {
		b.RegisterConverter(event.TypeCodeCreated, bridge.CodeCreatedPayload, "codeCreated")
	})

	for i := int64(1); i <= 5; i++ {
		bus.Publish(event.CodeCreated{CodeID: i, Name: "n", Color: "#000000"})
	}

	if len(sink.deliveries) != 5 {
		t.Fatalf("sink received %d deliveries, want 5 (one per publish)", len(sink.deliveries))
	}
	for i, d := range sink.deliveries {
		if d.payload["code_id"] != int64(i+1) {
			t.Errorf("delivery %d code_id = %v, want %d (publish order preserved)", i, d.payload["code_id"], i+1)
		}
	}
}

func TestBridge_UnregisteredTypesIgnored(t *testing.T) {
	t.Parallel()

	bus, sink := newBoundBridge(t, func(b *bridge.Bridge) {
		b.RegisterConverter(event.TypeCodeCreated, bridge.CodeCreatedPayload, "codeCreated")
	})

	bus.Publish(event.CategoryCreated{CategoryID: 3, Name: "Emotions"})

	if len(sink.deliveries) != 0 {
		t.Errorf("sink received %d deliveries for an unregistered type, want 0", len(sink.deliveries))
	}
}

func TestBridge_ConversionErrorSkipsDelivery(t *testing.T) {
	t.Parallel()

	failing := func(event.Event) (bridge.Payload, error) {
		return nil, errors.New("conversion broke")
	}

	bus, sink := newBoundBridge(t, func(b *bridge.Bridge) {
		b.RegisterConverter(event.TypeCodeCreated, failing, "codeCreated")
		b.RegisterConverter(event.TypeCodeDeleted, bridge.CodeDeletedPayload, "codeDeleted")
	})

	bus.Publish(event.CodeCreated{CodeID: 1})
	bus.Publish(event.CodeDeleted{CodeID: 1, Name: "Theme A"})

	if len(sink.deliveries) != 1 {
		t.Fatalf("sink received %d deliveries, want 1 (failed conversion skipped)", len(sink.deliveries))
	}
	if sink.deliveries[0].channel != "codeDeleted" {
		t.Errorf("surviving delivery on channel %q, want %q", sink.deliveries[0].channel, "codeDeleted")
	}
}

func TestBridge_NonPrimitivePayloadRejected(t *testing.T) {
	t.Parallel()

	leaky := func(e event.Event) (bridge.Payload, error) {
		return bridge.Payload{"event": e}, nil
	}

	bus, sink := newBoundBridge(t, func(b *bridge.Bridge) {
		b.RegisterConverter(event.TypeCodeCreated, leaky, "codeCreated")
	})

	bus.Publish(event.CodeCreated{CodeID: 1})

	if len(sink.deliveries) != 0 {
		t.Errorf("sink received %d deliveries for a non-primitive payload, want 0", len(sink.deliveries))
	}
}

func TestBridge_DisposeStopsDeliveries(t *testing.T) {
	t.Parallel()

	bus := eventbus.New(16, nil, nil)
	sink := &capture{}
	b := bridge.New(bus, sink.sink, nil, nil)
	b.RegisterConverter(event.TypeCodeCreated, bridge.CodeCreatedPayload, "codeCreated")
	b.BindToUIContext(immediateUI{})

	bus.Publish(event.CodeCreated{CodeID: 1})
	b.Dispose()
	bus.Publish(event.CodeCreated{CodeID: 2})

	if len(sink.deliveries) != 1 {
		t.Errorf("sink received %d deliveries, want 1 (disposed before second publish)", len(sink.deliveries))
	}

	// Idempotent.
	b.Dispose()
}

func TestRegisterConverter_DuplicatePanics(t *testing.T) {
	t.Parallel()

	b := bridge.New(eventbus.New(16, nil, nil), func(string, bridge.Payload) {}, nil, nil)
	b.RegisterConverter(event.TypeCodeCreated, bridge.CodeCreatedPayload, "codeCreated")

	defer func() {
		if recover() == nil {
			t.Error("duplicate registration did not panic")
		}
	}()
	b.RegisterConverter(event.TypeCodeCreated, bridge.CodeCreatedPayload, "again")
}

func TestRegisterConverter_AfterBindPanics(t *testing.T) {
	t.Parallel()

	b := bridge.New(eventbus.New(16, nil, nil), func(string, bridge.Payload) {}, nil, nil)
	b.BindToUIContext(immediateUI{})
	defer b.Dispose()

	defer func() {
		if recover() == nil {
			t.Error("registration after binding did not panic")
		}
	}()
	b.RegisterConverter(event.TypeCodeCreated, bridge.CodeCreatedPayload, "codeCreated")
}

func TestBindToUIContext_TwicePanics(t *testing.T) {
	t.Parallel()

	b := bridge.New(eventbus.New(16, nil, nil), func(string, bridge.Payload) {}, nil, nil)
	b.BindToUIContext(immediateUI{})
	defer b.Dispose()

	defer func() {
		if recover() == nil {
			t.Error("second BindToUIContext did not panic")
		}
	}()
	b.BindToUIContext(immediateUI{})
}

func TestBridge_MarshalsOntoLoopGoroutine(t *testing.T) {
	t.Parallel()

	loop := uiloop.New()
	loop.Start()
	defer loop.Stop()

	bus := eventbus.New(16, nil, nil)
	onLoop := make(chan bool, 1)
	b := bridge.New(bus, func(string, bridge.Payload) {
		onLoop <- loop.OnUIThread()
	}, nil, nil)
	b.RegisterConverter(event.TypeCodeCreated, bridge.CodeCreatedPayload, "codeCreated")
	b.BindToUIContext(loop)
	defer b.Dispose()

	bus.Publish(event.CodeCreated{CodeID: 1, Name: "Theme A", Color: "#ff0000"})

	select {
	case got := <-onLoop:
		if !got {
			t.Error("sink ran off the loop goroutine, want delivery marshaled onto it")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("delivery never reached the sink")
	}
}

func TestFailurePayload(t *testing.T) {
	t.Parallel()

	payload, err := bridge.FailurePayload(event.CodeNotCreatedDuplicateName("Theme A"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload["reason"] != "CODE_NOT_CREATED/DUPLICATE_NAME" {
		t.Errorf("reason = %v, want CODE_NOT_CREATED/DUPLICATE_NAME", payload["reason"])
	}
	if payload["message"] == "" {
		t.Error("message is empty, want the registered text")
	}

	if _, err := bridge.FailurePayload(event.CodeCreated{}); err == nil {
		t.Error("FailurePayload accepted a success event, want error")
	}
}

func TestConverters_TypeMismatch(t *testing.T) {
	t.Parallel()

	if _, err := bridge.CodeCreatedPayload(event.CodeDeleted{}); err == nil {
		t.Error("CodeCreatedPayload accepted a CodeDeleted event, want error")
	}
	if _, err := bridge.CodeAppliedPayload(event.CodeCreated{}); err == nil {
		t.Error("CodeAppliedPayload accepted a CodeCreated event, want error")
	}
}

func TestCodeCreatedPayload_OptionalCategory(t *testing.T) {
	t.Parallel()

	catID := int64(3)
	payload, err := bridge.CodeCreatedPayload(event.CodeCreated{CodeID: 1, Name: "n", Color: "#000000", CategoryID: &catID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload["category_id"] != int64(3) {
		t.Errorf("category_id = %v, want int64(3)", payload["category_id"])
	}

	payload, err = bridge.CodeCreatedPayload(event.CodeCreated{CodeID: 1, Name: "n", Color: "#000000"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, present := payload["category_id"]; present {
		t.Error("category_id present for a code without a category")
	}
}
