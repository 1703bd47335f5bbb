// Package logger builds configured slog.Logger instances for the service.
//
// Production defaults are JSON output at Info level for log aggregation;
// development flips to text output at Debug level. Every logger carries a
// static service attribute so multi-service log streams stay attributable.
package logger
