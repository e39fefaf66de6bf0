// Package metrics tracks table I/O with Prometheus metrics.
//
// Each Collector owns its registry, so independent adapters (and tests) never
// collide on metric registration. A command-line run can dump the registry in
// the Prometheus text exposition format with WriteToTextfile.
//
// # Basic Usage
//
//	collector := metrics.NewCollector("tabula")
//	timer := metrics.NewTimer("save_text")
//	// ... write rows
//	collector.RowsWritten("text", rows)
//	collector.ObserveDuration(timer.Name(), timer.Stop())
//
// # Metric Types
//
// Counter: rows read, rows written, files written, errors
// Histogram: operation duration in seconds
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DefaultNamespace prefixes every metric name when none is configured
const DefaultNamespace = "tabula"

// Collector records table I/O metrics on a private registry. It is safe for
// concurrent use.
type Collector struct {
	registry          *prometheus.Registry
	rowsRead          *prometheus.CounterVec   // Rows decoded, by format
	rowsWritten       *prometheus.CounterVec   // Rows encoded, by format
	filesWritten      *prometheus.CounterVec   // Files (whole or chunk) created, by format
	operationDuration *prometheus.HistogramVec // Wall time per adapter operation
	errorsTotal       *prometheus.CounterVec   // Failures by operation and error type
	startTime         time.Time
}

// NewCollector creates a collector whose metric names start with namespace
func NewCollector(namespace string) *Collector {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Collector{
		registry: registry,
		rowsRead: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rows_read_total",
				Help:      "Total number of rows loaded",
			},
			[]string{"format"},
		),
		rowsWritten: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rows_written_total",
				Help:      "Total number of rows saved",
			},
			[]string{"format"},
		),
		filesWritten: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "files_written_total",
				Help:      "Total number of files saved, counting each chunk",
			},
			[]string{"format"},
		),
		operationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "operation_duration_seconds",
				Help:      "Duration of load and save operations",
				Buckets: []float64{
					0.001, // 1ms - tiny tables
					0.01,  // 10ms
					0.1,   // 100ms
					1,     // 1s - large tables
					10,    // 10s
				},
			},
			[]string{"operation"},
		),
		errorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "errors_total",
				Help:      "Total number of failed operations",
			},
			[]string{"operation", "type"},
		),
		startTime: time.Now(),
	}
}

// Registry exposes the underlying registry
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// StartTime returns when the collector was created
func (c *Collector) StartTime() time.Time {
	return c.startTime
}

// RowsRead adds n loaded rows for format
func (c *Collector) RowsRead(format string, n int) {
	c.rowsRead.WithLabelValues(format).Add(float64(n))
}

// RowsWritten adds n saved rows for format
func (c *Collector) RowsWritten(format string, n int) {
	c.rowsWritten.WithLabelValues(format).Add(float64(n))
}

// FileWritten counts one saved file for format
func (c *Collector) FileWritten(format string) {
	c.filesWritten.WithLabelValues(format).Inc()
}

// ObserveDuration records how long operation took
func (c *Collector) ObserveDuration(operation string, d time.Duration) {
	c.operationDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// Error counts one failure of operation with the given error type
func (c *Collector) Error(operation, errType string) {
	c.errorsTotal.WithLabelValues(operation, errType).Inc()
}

// WriteToTextfile writes every metric to path in the text exposition format
func (c *Collector) WriteToTextfile(path string) error {
	return prometheus.WriteToTextfile(path, c.registry)
}

// Timer provides a simple timing mechanism for measuring operation durations.
// It captures the start time on creation and calculates elapsed time on stop.
type Timer struct {
	start time.Time
	name  string
}

// NewTimer creates a new timer and starts timing immediately.
func NewTimer(name string) *Timer {
	return &Timer{
		start: time.Now(),
		name:  name,
	}
}

// Name returns the name the timer was created with
func (t *Timer) Name() string {
	return t.name
}

// Stop returns the elapsed duration since creation. The timer can be
// stopped multiple times.
func (t *Timer) Stop() time.Duration {
	return time.Since(t.start)
}
