// internal/observability/metrics.go
package observability

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// MetricsConfig configures the OpenTelemetry meter provider.
type MetricsConfig struct {
	Enabled     bool
	ServiceName string
	Environment string
	Version     string
	// Endpoint is host:port of an OTLP/HTTP collector. Empty uses the exporter default.
	Endpoint    string
	Insecure    bool
	// Interval between exports. Zero uses 30s.
	Interval    time.Duration
}

// InitMetrics installs a global meter provider that pushes to an OTLP/HTTP
// collector and returns its shutdown func. When metrics are disabled the
// global no-op provider is left in place.
func InitMetrics(ctx context.Context, logger *slog.Logger, cfg MetricsConfig) (func(context.Context) error, error) {
	noop := func(context.Context) error { return nil }
	if !cfg.Enabled {
		return noop, nil
	}

	serviceName := serviceNameOrDefault(cfg.ServiceName)
	res, err := newResource(ctx, serviceName, cfg.Version, cfg.Environment)
	if err != nil {
		return noop, err
	}

	opts := []otlpmetrichttp.Option{}
	if cfg.Endpoint != "" {
		opts = append(opts, otlpmetrichttp.WithEndpoint(cfg.Endpoint))
	}
	if cfg.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}
	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return noop, fmt.Errorf("build otlp metric exporter: %w", err)
	}

	interval := cfg.Interval
	if interval <= 0 {
		interval = 30 * time.Second
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(interval))),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)

	if logger != nil {
		logger.Info("otel metrics initialized", "service", serviceName, "endpoint", cfg.Endpoint, "interval", interval)
	}
	return mp.Shutdown, nil
}

// BasketMetrics counts basket operations by outcome.
type BasketMetrics struct {
	operations metric.Int64Counter
	itemsAdded metric.Int64Counter
}

// NewBasketMetrics registers the basket instruments on meter.
func NewBasketMetrics(meter metric.Meter) (*BasketMetrics, error) {
	operations, err := meter.Int64Counter("basket.operations",
		metric.WithDescription("Basket operations by name and outcome."),
	)
	if err != nil {
		return nil, fmt.Errorf("create basket.operations counter: %w", err)
	}

	itemsAdded, err := meter.Int64Counter("basket.items.added",
		metric.WithDescription("Units added to baskets."),
		metric.WithUnit("{unit}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create basket.items.added counter: %w", err)
	}

	return &BasketMetrics{operations: operations, itemsAdded: itemsAdded}, nil
}

// RecordOperation counts one finished operation.
func (m *BasketMetrics) RecordOperation(ctx context.Context, operation, outcome string) {
	if m == nil {
		return
	}
	m.operations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("outcome", outcome),
	))
}

// RecordItemsAdded counts units that were added and saved.
func (m *BasketMetrics) RecordItemsAdded(ctx context.Context, quantity int) {
	if m == nil || quantity <= 0 {
		return
	}
	m.itemsAdded.Add(ctx, int64(quantity))
}
