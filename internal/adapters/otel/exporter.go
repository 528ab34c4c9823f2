// Package otel exports aggregation pass metrics to an OTEL Collector.
package otel

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/hermine-app/insights/internal/analytics"
)

const (
	serviceName    = "insights"
	serviceVersion = "1.0.0"
)

// Exporter exports aggregation pass metrics to an OTEL Collector.
type Exporter struct {
	provider           *sdkmetric.MeterProvider
	meter              metric.Meter
	conversationsTotal metric.Int64Counter
	questionsTotal     metric.Int64Counter
	costTotal          metric.Float64Counter
	tokensTotal        metric.Int64Counter
	passDurationHist   metric.Float64Histogram
}

// NewExporter creates a new OTEL metrics exporter.
func NewExporter(ctx context.Context, cfg Config) (*Exporter, error) {
	if !cfg.Enabled || cfg.Endpoint == "" {
		return nil, fmt.Errorf("OTEL exporter is disabled or endpoint not configured")
	}

	opts := []otlpmetricgrpc.Option{
		otlpmetricgrpc.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlpmetricgrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())))
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}

	exp, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating OTLP exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	conversationsTotal, err := meter.Int64Counter(
		"insights_pass_conversations_total",
		metric.WithDescription("Conversations seen per aggregation pass"),
		metric.WithUnit("{conversation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating conversations counter: %w", err)
	}

	questionsTotal, err := meter.Int64Counter(
		"insights_pass_questions_total",
		metric.WithDescription("Questions seen per aggregation pass"),
		metric.WithUnit("{question}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating questions counter: %w", err)
	}

	costTotal, err := meter.Float64Counter(
		"insights_pass_cost_usd",
		metric.WithDescription("Displayed cost per aggregation pass in USD"),
		metric.WithUnit("USD"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating cost counter: %w", err)
	}

	tokensTotal, err := meter.Int64Counter(
		"insights_pass_tokens_total",
		metric.WithDescription("Tokens seen per aggregation pass"),
		metric.WithUnit("{token}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating tokens counter: %w", err)
	}

	passDurationHist, err := meter.Float64Histogram(
		"insights_pass_duration_seconds",
		metric.WithDescription("Aggregation pass duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pass duration histogram: %w", err)
	}

	return &Exporter{
		provider:           provider,
		meter:              meter,
		conversationsTotal: conversationsTotal,
		questionsTotal:     questionsTotal,
		costTotal:          costTotal,
		tokensTotal:        tokensTotal,
		passDurationHist:   passDurationHist,
	}, nil
}

// RecordPass exports metrics for one aggregation pass.
func (e *Exporter) RecordPass(ctx context.Context, pass analytics.PassMetrics) {
	e.conversationsTotal.Add(ctx, int64(pass.Conversations))
	e.questionsTotal.Add(ctx, int64(pass.Questions))
	e.costTotal.Add(ctx, pass.DisplayedCost)
	e.tokensTotal.Add(ctx, pass.Tokens)
	e.passDurationHist.Record(ctx, pass.Duration.Seconds())
}

// Close shuts down the exporter and flushes any pending metrics.
func (e *Exporter) Close(ctx context.Context) error {
	return e.provider.Shutdown(ctx)
}
