package config

import (
	"errors"
	"fmt"
)

// Validate checks all configuration values and returns aggregated errors.
func (c *Config) Validate() error {
	return errors.Join(
		c.Server.validate(),
		c.Log.validate(),
		c.Bus.validate(),
		c.Storage.validate(),
		c.Guard.validate(),
		c.Telemetry.validate(),
	)
}

func (s *ServerConfig) validate() error {
	var errs []error

	if s.Port < 1 || s.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535, got %d", s.Port))
	}
	if s.ReadTimeout <= 0 {
		errs = append(errs, errors.New("server.read_timeout must be positive"))
	}
	if s.WriteTimeout <= 0 {
		errs = append(errs, errors.New("server.write_timeout must be positive"))
	}
	if s.RequestsPerSecond < 0 {
		errs = append(errs, fmt.Errorf("server.requests_per_second must not be negative, got %f", s.RequestsPerSecond))
	}
	if s.RequestsPerSecond > 0 && s.BurstSize < 1 {
		errs = append(errs, fmt.Errorf("server.burst_size must be >= 1 when rate limiting is enabled, got %d", s.BurstSize))
	}

	return errors.Join(errs...)
}

func (l *LogConfig) validate() error {
	var errs []error

	switch l.Level {
	case "debug", "info", "warn", "error":
		// Valid levels.
	default:
		errs = append(errs, fmt.Errorf("log.level must be one of: debug, info, warn, error; got %q", l.Level))
	}

	switch l.Format {
	case "json", "text":
		// Valid formats.
	default:
		errs = append(errs, fmt.Errorf("log.format must be one of: json, text; got %q", l.Format))
	}

	return errors.Join(errs...)
}

func (b *BusConfig) validate() error {
	var errs []error

	if b.HistoryCapacity < 1 {
		errs = append(errs, fmt.Errorf("bus.history_capacity must be >= 1, got %d", b.HistoryCapacity))
	}
	if b.NameLimit < 1 {
		errs = append(errs, fmt.Errorf("bus.name_limit must be >= 1, got %d", b.NameLimit))
	}
	if b.BulkWorkers < 1 {
		errs = append(errs, fmt.Errorf("bus.bulk_workers must be >= 1, got %d", b.BulkWorkers))
	}

	return errors.Join(errs...)
}

func (s *StorageConfig) validate() error {
	var errs []error

	switch s.Driver {
	case "memory", "sqlite":
		// Valid drivers.
	default:
		errs = append(errs, fmt.Errorf("storage.driver must be one of: memory, sqlite; got %q", s.Driver))
	}

	if s.Driver == "sqlite" && s.Path == "" {
		errs = append(errs, errors.New("storage.path must not be empty when driver is sqlite"))
	}

	return errors.Join(errs...)
}

func (g *GuardConfig) validate() error {
	var errs []error

	if g.Retry.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("guard.retry.max_attempts must be >= 1, got %d", g.Retry.MaxAttempts))
	}
	if g.Retry.Multiplier <= 0 {
		errs = append(errs, fmt.Errorf("guard.retry.multiplier must be positive, got %f", g.Retry.Multiplier))
	}
	if g.CircuitBreaker.MaxFailures < 1 {
		errs = append(errs, fmt.Errorf("guard.circuit_breaker.max_failures must be >= 1, got %d",
			g.CircuitBreaker.MaxFailures))
	}

	return errors.Join(errs...)
}

func (t *TelemetryConfig) validate() error {
	if !t.Enabled {
		return nil
	}

	var errs []error

	switch t.Exporter {
	case "stdout", "otlp":
		// Valid exporters.
	default:
		errs = append(errs, fmt.Errorf("telemetry.exporter must be one of: stdout, otlp; got %q", t.Exporter))
	}

	if t.Exporter == "otlp" && t.Endpoint == "" {
		errs = append(errs, errors.New("telemetry.endpoint must not be empty when exporter is otlp"))
	}

	return errors.Join(errs...)
}
