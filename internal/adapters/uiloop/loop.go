// Package uiloop provides a single-goroutine serial executor implementing
// ports.UIContext. It stands in for a real UI toolkit's event loop: closures
// submitted from any goroutine run one at a time, in submission order, on the
// loop goroutine. The daemon wiring and the bridge tests both use it.
package uiloop

import (
	"bytes"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/mkoskela/qualcore/internal/ports"
)

// Compile-time check that Loop implements ports.UIContext.
var _ ports.UIContext = (*Loop)(nil)

// Loop is a serial closure executor with an unbounded FIFO queue, so
// producers never block on submission.
type Loop struct {
	mu      sync.Mutex
	cond    *sync.Cond
	queue   []func()
	stopped bool

	loopGID atomic.Uint64
	done    chan struct{}
}

// New creates a stopped Loop. Call Start before submitting work.
func New() *Loop {
	l := &Loop{done: make(chan struct{})}
	l.cond = sync.NewCond(&l.mu)
	return l
}

// Start spawns the loop goroutine. Must be called exactly once.
func (l *Loop) Start() {
	go l.run()
}

// Stop drains the pending queue, then terminates the loop goroutine and
// waits for it to exit. Submissions after Stop are dropped.
func (l *Loop) Stop() {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		<-l.done
		return
	}
	l.stopped = true
	l.cond.Signal()
	l.mu.Unlock()
	<-l.done
}

// RunOnUI schedules fn on the loop goroutine. When called from the loop
// goroutine itself, fn runs synchronously to avoid self-deadlock.
func (l *Loop) RunOnUI(fn func()) {
	if l.OnUIThread() {
		fn()
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stopped {
		return
	}
	l.queue = append(l.queue, fn)
	l.cond.Signal()
}

// OnUIThread reports whether the caller is the loop goroutine.
func (l *Loop) OnUIThread() bool {
	gid := l.loopGID.Load()
	return gid != 0 && gid == currentGID()
}

func (l *Loop) run() {
	l.loopGID.Store(currentGID())
	defer close(l.done)

	for {
		l.mu.Lock()
		for len(l.queue) == 0 && !l.stopped {
			l.cond.Wait()
		}
		if len(l.queue) == 0 && l.stopped {
			l.mu.Unlock()
			return
		}
		fn := l.queue[0]
		l.queue = l.queue[1:]
		l.mu.Unlock()

		fn()
	}
}

// currentGID parses the goroutine ID from the runtime stack header. Go gives
// no supported accessor for this, but the header format ("goroutine N [...")
// is stable and the value is used only for the thread-affinity check.
func currentGID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	fields := bytes.Fields(buf[:n])
	if len(fields) < 2 {
		return 0
	}
	gid, err := strconv.ParseUint(string(fields[1]), 10, 64)
	if err != nil {
		return 0
	}
	return gid
}
