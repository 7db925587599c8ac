package ports

import "context"

// HealthChecker is implemented by any component that can report its own
// health, such as the sqlite store.
type HealthChecker interface {
	// Name identifies the component in readiness output (e.g. "sqlite").
	Name() string

	// HealthCheck returns nil when healthy. Implementations respect the
	// context deadline.
	HealthCheck(ctx context.Context) error
}

// HealthRegistry collects checkers for the readiness endpoint.
type HealthRegistry interface {
	// Register adds a checker.
	Register(checker HealthChecker)

	// CheckAll runs every registered check and returns results keyed by
	// checker name. A nil value means healthy.
	CheckAll(ctx context.Context) map[string]error
}
