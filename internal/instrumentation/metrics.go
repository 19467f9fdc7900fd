package instrumentation

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys - using constants for consistency
const (
	attrStatus    = "status"
	attrOperation = "operation"
	attrProvider  = "provider"
	attrChannel   = "channel"
	attrCategory  = "category"
)

// Metrics provides methods for recording observability metrics.
// The zero value is a no-op recorder: every Record method checks its
// instruments and returns early when they were never created.
type Metrics struct {
	// Pipeline run metrics
	runsTotal   metric.Int64Counter
	runDuration metric.Float64Histogram

	// Per-message metrics
	messagesTotal metric.Int64Counter

	// Delivery metrics
	deliveriesTotal  metric.Int64Counter
	deliveryDuration metric.Float64Histogram

	// Mailbox provider metrics
	mailboxOpsTotal   metric.Int64Counter
	mailboxOpDuration metric.Float64Histogram
}

// NewMetrics creates a new Metrics instance with all metrics initialized.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	// Pipeline run metrics
	m.runsTotal, err = meter.Int64Counter(
		"pipeline_runs_total",
		metric.WithDescription("Total number of pipeline runs"),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create pipeline_runs_total counter: %w", err)
	}

	m.runDuration, err = meter.Float64Histogram(
		"pipeline_run_duration_seconds",
		metric.WithDescription("Pipeline run duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.1, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0, 60.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create pipeline_run_duration_seconds histogram: %w", err)
	}

	// Per-message metrics
	m.messagesTotal, err = meter.Int64Counter(
		"messages_processed_total",
		metric.WithDescription("Total number of messages processed, by category and status"),
		metric.WithUnit("{message}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create messages_processed_total counter: %w", err)
	}

	// Delivery metrics
	m.deliveriesTotal, err = meter.Int64Counter(
		"deliveries_total",
		metric.WithDescription("Total number of notification deliveries"),
		metric.WithUnit("{delivery}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create deliveries_total counter: %w", err)
	}

	m.deliveryDuration, err = meter.Float64Histogram(
		"delivery_duration_seconds",
		metric.WithDescription("Notification delivery duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create delivery_duration_seconds histogram: %w", err)
	}

	// Mailbox provider metrics
	m.mailboxOpsTotal, err = meter.Int64Counter(
		"mailbox_operations_total",
		metric.WithDescription("Total number of mailbox operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mailbox_operations_total counter: %w", err)
	}

	m.mailboxOpDuration, err = meter.Float64Histogram(
		"mailbox_operation_duration_seconds",
		metric.WithDescription("Mailbox operation duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mailbox_operation_duration_seconds histogram: %w", err)
	}

	return m, nil
}

// RecordRun records a completed pipeline run with status and duration.
// Status should be one of: "success", "error"
func (m *Metrics) RecordRun(ctx context.Context, status string, duration time.Duration) {
	if m.runsTotal == nil || m.runDuration == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrStatus, status),
	}

	m.runsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.runDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordMessage records a processed message with its category and status.
//
// Parameters:
//   - category: The category label assigned to the message
//   - status: Result status ("success" or "error")
func (m *Metrics) RecordMessage(ctx context.Context, category, status string) {
	if m.messagesTotal == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrCategory, category),
		attribute.String(attrStatus, status),
	}

	m.messagesTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordDelivery records a notification delivery attempt with channel,
// status, and duration.
//
// Parameters:
//   - channel: Delivery channel name (slack, whatsapp)
//   - status: Result status ("success" or "error")
//   - duration: Time taken for the delivery
func (m *Metrics) RecordDelivery(ctx context.Context, channel, status string, duration time.Duration) {
	if m.deliveriesTotal == nil || m.deliveryDuration == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrChannel, channel),
		attribute.String(attrStatus, status),
	}

	m.deliveriesTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.deliveryDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordMailboxOperation records a mailbox operation with provider,
// operation, status, and duration.
//
// Parameters:
//   - provider: Mailbox provider name (gmail, imap)
//   - operation: Operation type (list, get, mark)
//   - status: Result status ("success" or "error")
//   - duration: Time taken for the operation
func (m *Metrics) RecordMailboxOperation(ctx context.Context, provider, operation, status string, duration time.Duration) {
	if m.mailboxOpsTotal == nil || m.mailboxOpDuration == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrProvider, provider),
		attribute.String(attrOperation, operation),
		attribute.String(attrStatus, status),
	}

	m.mailboxOpsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.mailboxOpDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}
