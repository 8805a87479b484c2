package telemetry

import (
	"context"
	"fmt"
	"log/slog"

	"go-catalog-ws/internal/config"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "go-catalog-ws"

// Telemetry holds the tracer provider and the Prometheus-backed metrics
type Telemetry struct {
	TracerProvider *sdktrace.TracerProvider
	Metrics        *Metrics
	Logger         *slog.Logger
}

// New initializes tracing. Spans are exported over OTLP/gRPC when an endpoint is
// configured; otherwise they are recorded but never exported.
func New(ctx context.Context, cfg *config.OTLPConfig, logger *slog.Logger) (*Telemetry, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			attribute.String("service.name", cfg.ServiceName),
			attribute.String("deployment.environment", cfg.Environment),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	opts := []sdktrace.TracerProviderOption{sdktrace.WithResource(res)}
	if cfg.Endpoint != "" {
		exporter, err := otlptracegrpc.New(ctx,
			otlptracegrpc.WithEndpoint(cfg.Endpoint),
			otlptracegrpc.WithInsecure(),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create trace exporter: %w", err)
		}
		opts = append(opts, sdktrace.WithBatcher(exporter))
		logger.Info("Trace export enabled", slog.String("endpoint", cfg.Endpoint))
	} else {
		logger.Info("Trace export disabled (OTEL_EXPORTER_OTLP_ENDPOINT not set)")
	}

	tp := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)

	return &Telemetry{
		TracerProvider: tp,
		Metrics:        NewMetrics(),
		Logger:         logger,
	}, nil
}

// Tracer returns the catalog tracer
func (t *Telemetry) Tracer() trace.Tracer {
	return t.TracerProvider.Tracer(instrumentationName)
}

// Shutdown flushes pending spans
func (t *Telemetry) Shutdown(ctx context.Context) error {
	if err := t.TracerProvider.Shutdown(ctx); err != nil {
		t.Logger.Error("Failed to shutdown tracer provider", slog.String("error", err.Error()))
		return err
	}
	return nil
}
