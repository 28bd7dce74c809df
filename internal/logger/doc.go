// Package logger provides a structured logging solution using the Zap logging library.
// It includes utilities for creating and managing loggers, setting log levels,
// and integrating logging with context for enhanced traceability.
// The package supports key-value logging, a warnings log file,
// and customizable log levels, making it suitable for both interactive and unattended runs.
package logger
