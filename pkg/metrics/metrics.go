// Package metrics provides Prometheus instrumentation for the connector
// layer: catalog query volume, cursor lifecycle accounting, and query
// latency. Cursor metrics exist to make the one-open-cursor protocol
// observable; opened and released should track each other exactly.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CatalogQueries counts metadata queries by vendor and operation
	// (list_tables, columns, primary_key) and outcome (success, error).
	CatalogQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sqoop_catalog_queries_total",
			Help: "Total catalog/metadata queries executed",
		},
		[]string{"vendor", "operation", "status"},
	)

	// CursorsOpened counts cursors opened per vendor.
	CursorsOpened = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sqoop_cursors_opened_total",
			Help: "Total query cursors opened",
		},
		[]string{"vendor"},
	)

	// CursorsReleased counts cursors released per vendor.
	CursorsReleased = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sqoop_cursors_released_total",
			Help: "Total query cursors released",
		},
		[]string{"vendor"},
	)

	// QueryDuration observes wall time of executed statements.
	QueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sqoop_query_duration_seconds",
			Help:    "Latency of executed SQL statements",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 14),
		},
		[]string{"vendor"},
	)

	// JobsLaunched counts jobs handed to the delegate by direction and status.
	JobsLaunched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sqoop_jobs_launched_total",
			Help: "Import/export jobs handed to the job delegate",
		},
		[]string{"direction", "status"},
	)
)

// Timer tracks the duration of an operation.
type Timer struct {
	start  time.Time
	vendor string
}

// NewQueryTimer starts a timer for a statement execution.
func NewQueryTimer(vendor string) *Timer {
	return &Timer{start: time.Now(), vendor: vendor}
}

// Stop records the elapsed time and returns it.
func (t *Timer) Stop() time.Duration {
	elapsed := time.Since(t.start)
	QueryDuration.WithLabelValues(t.vendor).Observe(elapsed.Seconds())
	return elapsed
}

// RecordCatalogQuery records the outcome of one metadata query.
func RecordCatalogQuery(vendor, operation string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	CatalogQueries.WithLabelValues(vendor, operation, status).Inc()
}
