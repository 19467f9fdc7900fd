// Package logging provides structured logging utilities for inboxping.
//
// This package centralizes logging patterns to ensure consistent,
// structured logging throughout the codebase using the standard
// library's slog package.
//
// # Key Features
//
//   - Structured logging with slog
//   - PII sanitization (sender anonymization)
//   - Consistent attribute naming across the codebase
//   - Logger adapter interface for flexibility
//
// # Usage Patterns
//
// Create a logger with standard attributes:
//
//	logger := logging.WithOperation(slog.Default(), "run")
//	logger.Info("listed candidate messages",
//	    logging.Status("success"))
//
// Sanitize sensitive data before logging:
//
//	logger.Info("notification delivered",
//	    slog.String("sender", logging.AnonymizeSender(detail.Sender)))
//
// # Security Considerations
//
// Sender addresses are hashed before logging to prevent PII leakage
// while still allowing correlation of log entries. Tokens and webhook
// URLs are never logged directly.
package logging
