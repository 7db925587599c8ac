package config

const (
	defaultServerPort = 8080

	defaultHistoryCapacity = 100
	defaultNameLimit       = 120
	defaultBulkWorkers     = 4

	defaultRetryMaxAttempts = 3
	defaultRetryMultiplier  = 2.0

	defaultCircuitBreakerMaxFailures = 5
	defaultCircuitBreakerHalfOpen    = 1
)

// defaults returns the default configuration values.
// These are loaded first and can be overridden by base.yaml, profile YAML, and env vars.
func defaults() map[string]any {
	return map[string]any{
		"server.host":                "0.0.0.0",
		"server.port":                defaultServerPort,
		"server.read_timeout":        "5s",
		"server.write_timeout":       "10s",
		"server.idle_timeout":        "120s",
		"server.requests_per_second": 0,
		"server.burst_size":          0,

		"log.level":  "info",
		"log.format": "json",

		"bus.history_capacity": defaultHistoryCapacity,
		"bus.name_limit":       defaultNameLimit,
		"bus.bulk_workers":     defaultBulkWorkers,

		"storage.driver": "memory",
		"storage.path":   "",

		"guard.retry.max_attempts":              defaultRetryMaxAttempts,
		"guard.retry.initial_interval":          "50ms",
		"guard.retry.max_interval":              "2s",
		"guard.retry.multiplier":                defaultRetryMultiplier,
		"guard.circuit_breaker.max_failures":    defaultCircuitBreakerMaxFailures,
		"guard.circuit_breaker.timeout":         "30s",
		"guard.circuit_breaker.half_open_limit": defaultCircuitBreakerHalfOpen,

		"telemetry.enabled":  false,
		"telemetry.exporter": "stdout",
		"telemetry.endpoint": "",
	}
}
