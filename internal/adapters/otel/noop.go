package otel

import (
	"context"

	"github.com/hermine-app/insights/internal/analytics"
)

// NoOpExporter is a metrics exporter that does nothing.
type NoOpExporter struct{}

// NewNoOpExporter creates a new no-op exporter for graceful degradation.
func NewNoOpExporter() *NoOpExporter {
	return &NoOpExporter{}
}

func (e *NoOpExporter) RecordPass(ctx context.Context, pass analytics.PassMetrics) {}

func (e *NoOpExporter) Close(ctx context.Context) error {
	return nil
}
