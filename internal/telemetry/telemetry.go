package telemetry

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	oteltrace "go.opentelemetry.io/otel/trace"
)

const defaultOTLPEndpoint = "localhost:4317"

// Telemetry owns the process-wide tracer and meter providers.
type Telemetry struct {
	// MetricsHandler serves the Prometheus scrape endpoint. It is nil when
	// metrics were not enabled.
	MetricsHandler http.Handler

	shutdowns []func(context.Context) error
}

type Option func(*settings)

type settings struct {
	endpoint       string
	metrics        bool
	runtimeMetrics bool
}

// WithOTLPEndpoint overrides the trace collector address.
func WithOTLPEndpoint(endpoint string) Option {
	return func(s *settings) {
		if endpoint != "" {
			s.endpoint = endpoint
		}
	}
}

// WithMetrics installs a Prometheus-backed MeterProvider. Runtime metrics
// are collected as well when runtimeMetrics is set.
func WithMetrics(runtimeMetrics bool) Option {
	return func(s *settings) {
		s.metrics = true
		s.runtimeMetrics = runtimeMetrics
	}
}

// Setup installs the global tracer provider and, optionally, the meter
// provider for a service.
func Setup(ctx context.Context, serviceName, serviceVersion string, opts ...Option) (*Telemetry, error) {
	s := settings{endpoint: defaultOTLPEndpoint}
	for _, opt := range opts {
		opt(&s)
	}

	res := serviceResource(serviceName, serviceVersion)
	t := &Telemetry{}

	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(s.endpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("create trace exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	t.shutdowns = append(t.shutdowns, tp.Shutdown)

	if !s.metrics {
		return t, nil
	}

	promExporter, err := prometheus.New()
	if err != nil {
		_ = t.Shutdown(ctx)
		return nil, fmt.Errorf("create prometheus exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(promExporter),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)
	t.shutdowns = append(t.shutdowns, mp.Shutdown)
	t.MetricsHandler = promhttp.Handler()

	if s.runtimeMetrics {
		if err := runtime.Start(runtime.WithMeterProvider(mp)); err != nil {
			_ = t.Shutdown(ctx)
			return nil, fmt.Errorf("start runtime metrics: %w", err)
		}
	}

	return t, nil
}

// Shutdown flushes and stops every provider, in reverse install order.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	var errs []error
	for i := len(t.shutdowns) - 1; i >= 0; i-- {
		if err := t.shutdowns[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func serviceResource(serviceName, serviceVersion string) *resource.Resource {
	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(serviceName),
		semconv.ServiceVersion(serviceVersion),
	)
}

// WithHTTPRoute wraps an http.HandlerFunc to add the http.route attribute
// to the current span using the request's Pattern.
// otelhttp does not see the route because routing happens after it.
func WithHTTPRoute(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Pattern != "" {
			span := oteltrace.SpanFromContext(r.Context())
			span.SetAttributes(semconv.HTTPRoute(r.Pattern))
		}
		h(w, r)
	}
}

// SpanName names server spans after the matched route pattern.
func SpanName(_ string, r *http.Request) string {
	if r.Pattern != "" {
		return r.Pattern
	}
	return r.Method + " " + r.URL.Path
}
