package ports

// UIContext abstracts the UI toolkit's single-threaded execution context.
// The signal bridge depends only on this capability, never on a concrete
// toolkit type: a callback arriving off the UI thread must be replayed on it
// before touching UI state.
type UIContext interface {
	// RunOnUI schedules fn on the UI thread. Submissions from a single
	// goroutine must execute in submission order. RunOnUI must be safe to
	// call from any goroutine, including the UI thread itself.
	RunOnUI(fn func())

	// OnUIThread reports whether the caller is already running on the UI
	// thread, in which case delivery may happen synchronously.
	OnUIThread() bool
}
