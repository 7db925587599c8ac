package eventbus

import "github.com/mkoskela/qualcore/internal/domain/event"

// ring is a fixed-capacity event buffer: once full, the oldest entry is
// overwritten. Callers synchronize access; the bus uses its own mutex.
type ring struct {
	buf   []event.Event
	start int
	count int
}

func newRing(capacity int) *ring {
	return &ring{buf: make([]event.Event, capacity)}
}

func (r *ring) append(e event.Event) {
	if r.count < len(r.buf) {
		r.buf[(r.start+r.count)%len(r.buf)] = e
		r.count++
		return
	}
	r.buf[r.start] = e
	r.start = (r.start + 1) % len(r.buf)
}

// snapshot returns the retained events oldest first.
func (r *ring) snapshot() []event.Event {
	out := make([]event.Event, r.count)
	for i := range r.count {
		out[i] = r.buf[(r.start+i)%len(r.buf)]
	}
	return out
}
