// Package instrumentation provides OpenTelemetry-based observability
// for inboxping.
//
// It wires up metrics and distributed tracing behind a single Provider
// that owns the exporter lifecycle. Metrics can be exposed via
// Prometheus (default), pushed over OTLP, or dumped to stdout for
// debugging. Tracing is off unless an exporter is configured.
//
// The zero-value Metrics recorder is a no-op, so pipeline code can
// record unconditionally without caring whether instrumentation was
// enabled:
//
//	provider, err := instrumentation.NewProvider(ctx, instrumentation.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	defer provider.Shutdown(ctx)
//
//	metrics := provider.Metrics()
//	metrics.RecordRun(ctx, instrumentation.StatusSuccess, elapsed)
//
// Recorded metrics cover pipeline runs, per-message outcomes by
// category, deliveries by channel, and mailbox operations (list, get,
// mark) by provider. Span helpers (StartRunSpan, StartMessageSpan)
// use the globally registered tracer provider and degrade to no-ops
// when none is set.
package instrumentation
