// Package main is the entry point for the service. It wires all dependencies
// using samber/do v2, starts the HTTP command source, and handles graceful
// shutdown on SIGINT/SIGTERM.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/do/v2"

	adapthttp "github.com/mkoskela/qualcore/internal/adapters/http"
	"github.com/mkoskela/qualcore/internal/adapters/http/handlers"
	"github.com/mkoskela/qualcore/internal/adapters/http/middleware"

	"github.com/mkoskela/qualcore/internal/adapters/storage/guard"
	"github.com/mkoskela/qualcore/internal/adapters/storage/memory"
	"github.com/mkoskela/qualcore/internal/adapters/storage/sqlite"
	"github.com/mkoskela/qualcore/internal/adapters/uiloop"
	"github.com/mkoskela/qualcore/internal/app"
	"github.com/mkoskela/qualcore/internal/bridge"
	"github.com/mkoskela/qualcore/internal/domain/event"
	"github.com/mkoskela/qualcore/internal/eventbus"
	"github.com/mkoskela/qualcore/internal/platform/config"
	"github.com/mkoskela/qualcore/internal/platform/health"
	"github.com/mkoskela/qualcore/internal/platform/logging"
	"github.com/mkoskela/qualcore/internal/platform/telemetry"
	"github.com/mkoskela/qualcore/internal/ports"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const (
	serverShutdownTimeout = 15 * time.Second
	otelShutdownTimeout   = 5 * time.Second
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	profile := os.Getenv("APP_PROFILE")
	if profile == "" {
		return errors.New("APP_PROFILE environment variable is required (e.g. local, dev, qa, prod)")
	}

	// Bootstrap: config, logger, telemetry.
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)

	ctx := context.Background()
	otel, err := initTelemetry(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	// DI container.
	injector := do.New()

	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, logger)
	do.ProvideValue(injector, otel.metrics)

	registerDependencies(injector, cfg, logger)

	// Resolve the server (eagerly wires the full graph).
	server, err := do.Invoke[*adapthttp.Server](injector)
	if err != nil {
		return fmt.Errorf("resolving server: %w", err)
	}

	// The UI loop stands in for a toolkit main thread: the bridge marshals
	// event payloads onto it so a UI shell could bind without touching the
	// bus directly.
	loop := do.MustInvoke[*uiloop.Loop](injector)
	loop.Start()
	defer loop.Stop()

	uiBridge := do.MustInvoke[*bridge.Bridge](injector)
	uiBridge.BindToUIContext(loop)
	defer uiBridge.Dispose()

	// Register health checkers after the graph is wired.
	if cfg.Storage.Driver == "sqlite" {
		registry := do.MustInvoke[ports.HealthRegistry](injector)
		store := do.MustInvoke[*sqlite.Store](injector)
		registry.Register(store)
		defer func() { _ = store.Close() }()
	}

	// Start server in background.
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	// Wait for shutdown signal or server error.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	}

	// Graceful shutdown: drain HTTP requests.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), serverShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	}

	// Wait for Start() goroutine to return.
	<-serverErr

	// Flush telemetry.
	otelCtx, otelCancel := context.WithTimeout(context.Background(), otelShutdownTimeout)
	defer otelCancel()

	if err := otel.Shutdown(otelCtx); err != nil {
		logger.Error("telemetry shutdown error", slog.Any("error", err))
	}

	logger.Info("shutdown complete")
	return nil
}

// otelProviders bundles OpenTelemetry provider lifecycle. All fields are nil
// when telemetry is disabled.
type otelProviders struct {
	tracer  *sdktrace.TracerProvider
	meter   *sdkmetric.MeterProvider
	metrics *telemetry.Metrics
}

// Shutdown flushes both providers. Nil-safe.
func (o *otelProviders) Shutdown(ctx context.Context) error {
	var errs []error
	if o.tracer != nil {
		if err := o.tracer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer shutdown: %w", err))
		}
	}
	if o.meter != nil {
		if err := o.meter.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter shutdown: %w", err))
		}
	}
	return errors.Join(errs...)
}

func initTelemetry(ctx context.Context, cfg *config.Config) (*otelProviders, error) {
	if !cfg.Telemetry.Enabled {
		return &otelProviders{}, nil
	}

	tp, err := telemetry.InitTracer(ctx,
		cfg.Telemetry.ServiceName,
		cfg.Telemetry.Exporter,
		cfg.Telemetry.Endpoint,
	)
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	mp, err := telemetry.InitMeter(ctx,
		cfg.Telemetry.ServiceName,
		cfg.Telemetry.Exporter,
		cfg.Telemetry.Endpoint,
	)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, fmt.Errorf("init meter: %w", err)
	}

	metrics, err := telemetry.NewMetrics(mp)
	if err != nil {
		_ = tp.Shutdown(ctx)
		_ = mp.Shutdown(ctx)
		return nil, fmt.Errorf("creating metrics: %w", err)
	}

	return &otelProviders{
		tracer:  tp,
		meter:   mp,
		metrics: metrics,
	}, nil
}

// storageSet bundles the resolved persistence ports for one backend.
type storageSet struct {
	codes      ports.CodeRepository
	categories ports.CategoryRepository
	codings    ports.CodingRepository
	sources    ports.SourceRegistry
	alloc      ports.IDAllocator
}

func registerDependencies(injector *do.RootScope, cfg *config.Config, logger *slog.Logger) {
	do.Provide(injector, func(_ do.Injector) (*sqlite.Store, error) {
		return sqlite.Open(cfg.Storage.Path)
	})

	do.Provide(injector, func(i do.Injector) (*storageSet, error) {
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		g := guard.New(&cfg.Guard, cfg.Storage.Driver, metrics, logger)

		switch cfg.Storage.Driver {
		case "sqlite":
			s, err := do.Invoke[*sqlite.Store](i)
			if err != nil {
				return nil, err
			}
			codings := s.Codings()
			return &storageSet{
				codes:      guard.Codes(g, s),
				categories: guard.Categories(g, s.Categories()),
				codings:    guard.Codings(g, codings),
				sources:    codings,
				alloc:      guard.Allocator(g, s),
			}, nil
		default:
			codings := memory.NewCodingStore()
			return &storageSet{
				codes:      guard.Codes(g, memory.NewStore()),
				categories: guard.Categories(g, memory.NewCategoryStore()),
				codings:    guard.Codings(g, codings),
				sources:    codings,
				alloc:      guard.Allocator(g, memory.NewAllocator()),
			}, nil
		}
	})

	do.Provide(injector, func(i do.Injector) (*eventbus.Bus, error) {
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		return eventbus.New(cfg.Bus.HistoryCapacity, logger, metrics), nil
	})

	do.Provide(injector, func(_ do.Injector) (*uiloop.Loop, error) {
		return uiloop.New(), nil
	})

	do.Provide(injector, func(i do.Injector) (*bridge.Bridge, error) {
		bus := do.MustInvoke[*eventbus.Bus](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)

		sink := func(channel string, payload bridge.Payload) {
			logger.Debug("ui signal",
				slog.String("channel", channel),
				slog.Any("payload", map[string]any(payload)),
			)
		}

		b := bridge.New(bus, sink, logger, metrics)
		b.RegisterConverter(event.TypeCodeCreated, bridge.CodeCreatedPayload, "codeCreated")
		b.RegisterConverter(event.TypeCodeRenamed, bridge.CodeRenamedPayload, "codeRenamed")
		b.RegisterConverter(event.TypeCodeDeleted, bridge.CodeDeletedPayload, "codeDeleted")
		b.RegisterConverter(event.TypeCategoryCreated, bridge.CategoryCreatedPayload, "categoryCreated")
		b.RegisterConverter(event.TypeCodeApplied, bridge.CodeAppliedPayload, "codeApplied")
		b.RegisterConverter(event.TypeCodeNotCreated, bridge.FailurePayload, "commandRejected")
		return b, nil
	})

	do.Provide(injector, func(i do.Injector) (ports.CodeCommands, error) {
		s := do.MustInvoke[*storageSet](i)
		bus := do.MustInvoke[*eventbus.Bus](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		return app.NewCodeService(s.codes, s.categories, s.alloc, bus, cfg.Bus.NameLimit, logger, metrics), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.CategoryCommands, error) {
		s := do.MustInvoke[*storageSet](i)
		bus := do.MustInvoke[*eventbus.Bus](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		return app.NewCategoryService(s.categories, s.codes, s.alloc, bus, cfg.Bus.NameLimit, logger, metrics), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.CodingCommands, error) {
		s := do.MustInvoke[*storageSet](i)
		bus := do.MustInvoke[*eventbus.Bus](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		return app.NewCodingService(s.codings, s.codes, s.alloc, bus, cfg.Bus.BulkWorkers, logger, metrics), nil
	})

	do.Provide(injector, func(_ do.Injector) (ports.HealthRegistry, error) {
		return health.New(), nil
	})

	do.Provide(injector, func(i do.Injector) (nethttp.Handler, error) {
		s := do.MustInvoke[*storageSet](i)
		codeH := handlers.NewCodeHandler(do.MustInvoke[ports.CodeCommands](i))
		categoryH := handlers.NewCategoryHandler(do.MustInvoke[ports.CategoryCommands](i))
		codingH := handlers.NewCodingHandler(do.MustInvoke[ports.CodingCommands](i))
		sourceH := handlers.NewSourceHandler(s.sources)
		eventsH := handlers.NewEventsHandler(do.MustInvoke[*eventbus.Bus](i))
		healthH := handlers.NewHealthHandler(do.MustInvoke[ports.HealthRegistry](i))
		metrics := do.MustInvoke[*telemetry.Metrics](i)

		stack := middleware.Chain(
			middleware.Recovery(logger),
			middleware.RequestID(),
			middleware.CorrelationID(),
			middleware.RateLimit(cfg.Server.RequestsPerSecond, cfg.Server.BurstSize),
			middleware.OpenTelemetry(metrics),
			middleware.Logging(logger),
			middleware.Timeout(cfg.Server.WriteTimeout),
		)

		return adapthttp.NewRouter(codeH, categoryH, codingH, sourceH, eventsH, healthH, stack), nil
	})

	do.Provide(injector, func(i do.Injector) (*adapthttp.Server, error) {
		handler := do.MustInvoke[nethttp.Handler](i)
		return adapthttp.NewServer(cfg.Server, handler, logger), nil
	})
}
