// Package logging provides structured logging utilities for gateway components.
//
// # Overview
//
// This package wraps the standard library slog package with gateway defaults
// and conventions for consistent logging across the daemon and the CLI. It
// supports environment-based log level configuration, module/version context
// injection, and source location tracking for debug logs.
//
// # Log Levels
//
// Supported log levels (case-insensitive):
//   - DEBUG: cascade attempts, cache hits and misses, with source location
//   - INFO: lifecycle events (default)
//   - WARN/WARNING: degraded responses and corrected configuration anomalies
//   - ERROR: failures requiring attention
//
// # Usage
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("gatewayd", version)
//	    slog.Info("gateway started", "port", 8080)
//	}
//
// Setting an explicit log level:
//
//	logging.SetDefaultStructuredLoggerWithLevel("gatewayctl", version, "warn")
//
// # Environment Configuration
//
// The LOG_LEVEL environment variable controls logging verbosity:
//
//	LOG_LEVEL=debug gatewayd
//
// If LOG_LEVEL is not set, defaults to INFO level.
//
// # Output Format
//
// All logs are written to stderr in JSON format:
//
//	{
//	    "time": "2025-01-15T10:30:00.123Z",
//	    "level": "WARN",
//	    "msg": "serving degraded response",
//	    "module": "gatewayd",
//	    "version": "v1.0.0",
//	    "operation": "orders.list",
//	    "level_served": "synthetic"
//	}
package logging
