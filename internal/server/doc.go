// Package server provides the operational HTTP surface for inboxping's
// watch mode.
//
// MetricsServer serves Prometheus metrics on a dedicated port, isolated
// from any application traffic. Alongside /metrics it registers the
// health endpoints used by Kubernetes probes:
//
//   - /healthz           liveness: the process is running
//   - /readyz            readiness: the watcher is polling
//   - /healthz/detailed  readiness plus uptime
//
// HealthChecker tracks the readiness state. The watch command marks it
// ready once the first poll cycle has been scheduled and not-ready when
// shutdown begins, so rolling restarts drain cleanly.
package server
