// Package telemetry provides OpenTelemetry tracer and meter initialization
// with support for stdout (development) and OTLP/HTTP (production) exporters.
//
// Tracer initialization:
//
//	tp, err := telemetry.InitTracer(ctx, "qualcore", "stdout", "")
//	defer tp.Shutdown(ctx)
//
// Meter initialization:
//
//	mp, err := telemetry.InitMeter(ctx, "qualcore", "stdout", "")
//	defer mp.Shutdown(ctx)
//
// Pre-registered metrics:
//
//	metrics, err := telemetry.NewMetrics(mp)
//	metrics.RecordCommand(ctx, "CreateCode", "success")
package telemetry

import (
	"context"
	"fmt"
	"net/url"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.39.0"
)

// Attribute keys for metric labels.
var (
	AttrCommand   = attribute.Key("command")
	AttrOutcome   = attribute.Key("outcome")
	AttrEventType = attribute.Key("event.type")
	AttrChannel   = attribute.Key("ui.channel")
	AttrStorageOp = attribute.Key("storage.op")

	AttrHTTPMethod = attribute.Key("http.method")
	AttrHTTPStatus = attribute.Key("http.status_code")
	AttrResult     = attribute.Key("result")
)

// Metrics holds pre-registered OpenTelemetry metric instruments for the
// functional core: command handling, bus publishes, subscriber failures, and
// signal-bridge deliveries.
type Metrics struct {
	CommandsTotal      metric.Int64Counter
	EventsPublished    metric.Int64Counter
	SubscriberFailures metric.Int64Counter
	BridgeDeliveries   metric.Int64Counter
	StorageRetries     metric.Int64Counter

	ServerRequestTotal    metric.Int64Counter
	ServerRequestDuration metric.Float64Histogram
}

// RecordCommand counts one handled command by name and outcome. Nil-safe.
func (m *Metrics) RecordCommand(ctx context.Context, command, outcome string) {
	if m == nil {
		return
	}
	m.CommandsTotal.Add(ctx, 1, metric.WithAttributes(
		AttrCommand.String(command),
		AttrOutcome.String(outcome),
	))
}

// RecordEventPublished counts one bus publish by event type. Nil-safe.
func (m *Metrics) RecordEventPublished(ctx context.Context, eventType string) {
	if m == nil {
		return
	}
	m.EventsPublished.Add(ctx, 1, metric.WithAttributes(AttrEventType.String(eventType)))
}

// RecordSubscriberFailure counts one isolated subscriber panic. Nil-safe.
func (m *Metrics) RecordSubscriberFailure(ctx context.Context, eventType string) {
	if m == nil {
		return
	}
	m.SubscriberFailures.Add(ctx, 1, metric.WithAttributes(AttrEventType.String(eventType)))
}

// RecordBridgeDelivery counts one signal-bridge delivery by UI channel.
// Nil-safe.
func (m *Metrics) RecordBridgeDelivery(ctx context.Context, channel string) {
	if m == nil {
		return
	}
	m.BridgeDeliveries.Add(ctx, 1, metric.WithAttributes(AttrChannel.String(channel)))
}

// RecordStorageRetry counts one retried storage operation. Nil-safe.
func (m *Metrics) RecordStorageRetry(ctx context.Context, op string) {
	if m == nil {
		return
	}
	m.StorageRetries.Add(ctx, 1, metric.WithAttributes(AttrStorageOp.String(op)))
}

// InitTracer creates and registers a global TracerProvider.
//
// The exporter parameter selects the span exporter: "otlp" uses OTLP/HTTP
// with the given endpoint; any other value (including "stdout") uses a
// pretty-printed stdout exporter for development.
//
// The returned TracerProvider must be shut down when the application exits.
func InitTracer(ctx context.Context, serviceName, exporter, endpoint string) (*sdktrace.TracerProvider, error) {
	res, err := newResource(serviceName)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	spanExporter, err := newSpanExporter(ctx, exporter, endpoint)
	if err != nil {
		return nil, fmt.Errorf("creating span exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(spanExporter),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return tp, nil
}

// InitMeter creates and registers a global MeterProvider.
//
// The exporter parameter selects the metric exporter: "otlp" uses OTLP/HTTP
// with the given endpoint; any other value (including "stdout") uses a
// stdout exporter for development.
//
// The returned MeterProvider must be shut down when the application exits.
func InitMeter(ctx context.Context, serviceName, exporter, endpoint string) (*sdkmetric.MeterProvider, error) {
	res, err := newResource(serviceName)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	metricExporter, err := newMetricExporter(ctx, exporter, endpoint)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	return mp, nil
}

// NewMetrics creates and registers all metric instruments using the given
// MeterProvider. The meter is scoped to the module path.
func NewMetrics(mp *sdkmetric.MeterProvider) (*Metrics, error) {
	meter := mp.Meter("github.com/mkoskela/qualcore")

	commandsTotal, err := meter.Int64Counter(
		"core.commands.total",
		metric.WithDescription("Total number of handled commands"),
		metric.WithUnit("{command}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating core.commands.total: %w", err)
	}

	eventsPublished, err := meter.Int64Counter(
		"core.events.published.total",
		metric.WithDescription("Total number of events published on the bus"),
		metric.WithUnit("{event}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating core.events.published.total: %w", err)
	}

	subscriberFailures, err := meter.Int64Counter(
		"core.events.subscriber_failures.total",
		metric.WithDescription("Total number of isolated subscriber panics"),
		metric.WithUnit("{failure}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating core.events.subscriber_failures.total: %w", err)
	}

	bridgeDeliveries, err := meter.Int64Counter(
		"core.bridge.deliveries.total",
		metric.WithDescription("Total number of payloads delivered to the UI context"),
		metric.WithUnit("{delivery}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating core.bridge.deliveries.total: %w", err)
	}

	storageRetries, err := meter.Int64Counter(
		"core.storage.retries.total",
		metric.WithDescription("Total number of retried storage operations"),
		metric.WithUnit("{retry}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating core.storage.retries.total: %w", err)
	}

	serverRequestTotal, err := meter.Int64Counter(
		"http.server.requests.total",
		metric.WithDescription("Total number of inbound HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating http.server.requests.total: %w", err)
	}

	serverRequestDuration, err := meter.Float64Histogram(
		"http.server.request.duration",
		metric.WithDescription("Inbound HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating http.server.request.duration: %w", err)
	}

	return &Metrics{
		CommandsTotal:         commandsTotal,
		EventsPublished:       eventsPublished,
		SubscriberFailures:    subscriberFailures,
		BridgeDeliveries:      bridgeDeliveries,
		StorageRetries:        storageRetries,
		ServerRequestTotal:    serverRequestTotal,
		ServerRequestDuration: serverRequestDuration,
	}, nil
}

func newResource(serviceName string) (*resource.Resource, error) {
	return resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
		),
	)
}

func newSpanExporter(ctx context.Context, exporter, endpoint string) (sdktrace.SpanExporter, error) {
	if exporter == "otlp" {
		opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(hostPort(endpoint))}
		if !isHTTPS(endpoint) {
			opts = append(opts, otlptracehttp.WithInsecure())
		}
		return otlptracehttp.New(ctx, opts...)
	}
	return stdouttrace.New(stdouttrace.WithPrettyPrint())
}

func newMetricExporter(ctx context.Context, exporter, endpoint string) (sdkmetric.Exporter, error) {
	if exporter == "otlp" {
		opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(hostPort(endpoint))}
		if !isHTTPS(endpoint) {
			opts = append(opts, otlpmetrichttp.WithInsecure())
		}
		return otlpmetrichttp.New(ctx, opts...)
	}
	return stdoutmetric.New()
}

// hostPort extracts the host:port from a URL string
// (e.g., "http://otel-collector:4318" -> "otel-collector:4318").
func hostPort(endpoint string) string {
	u, err := url.Parse(endpoint)
	if err != nil || u.Host == "" {
		return endpoint
	}
	return u.Host
}

// isHTTPS returns true if the endpoint URL uses the https scheme.
func isHTTPS(endpoint string) bool {
	u, err := url.Parse(endpoint)
	if err != nil {
		return false
	}
	return u.Scheme == "https"
}
