// Package port contains the port interfaces (driven ports) for the application layer.
// Ports define what the application needs from logging and metrics backends;
// adapters in cmd and infrastructure implement them.
package port

import (
	"context"
	"time"
)

// Logger defines the interface for structured logging.
//
// Example usage:
//
//	logger.Info("Conversion completed", "material", material, "tonne", weight.Tonne)
type Logger interface {
	// Debug logs a debug message with optional key-value pairs.
	Debug(msg string, keysAndValues ...any)

	// Info logs an info message with optional key-value pairs.
	Info(msg string, keysAndValues ...any)

	// Warn logs a warning message with optional key-value pairs.
	Warn(msg string, keysAndValues ...any)

	// Error logs an error message with optional key-value pairs.
	Error(msg string, keysAndValues ...any)

	// With return a logger with additional context fields.
	With(keysAndValues ...any) Logger

	// WithContext return a logger with context information (e.g., request ID).
	WithContext(ctx context.Context) Logger
}

// Metrics defines the interface for recording application metrics.
// Tags become metric labels, so a given name must always be recorded
// with the same set of tag keys.
type Metrics interface {
	// Counter increments a counter metric.
	Counter(name string, value float64, tags map[string]string)

	// Gauge sets a gauge metric value.
	Gauge(name string, value float64, tags map[string]string)

	// Histogram records a value in a histogram.
	Histogram(name string, value float64, tags map[string]string)

	// Timing records a timing/duration metric in seconds.
	Timing(name string, duration time.Duration, tags map[string]string)
}

// NopMetrics discards all metrics.
type NopMetrics struct{}

// Counter implements Metrics.
func (NopMetrics) Counter(string, float64, map[string]string) {}

// Gauge implements Metrics.
func (NopMetrics) Gauge(string, float64, map[string]string) {}

// Histogram implements Metrics.
func (NopMetrics) Histogram(string, float64, map[string]string) {}

// Timing implements Metrics.
func (NopMetrics) Timing(string, time.Duration, map[string]string) {}
