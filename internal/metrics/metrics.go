// Package metrics exposes Prometheus instrumentation for the grocer services.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/mmynk/grocer/internal/storage"
)

// Outcome labels.
const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

var (
	// Operations counts completed operations by entity kind, operation and outcome.
	Operations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "grocer",
		Name:      "operations_total",
		Help:      "Completed get/upsert/delete operations.",
	}, []string{"kind", "op", "outcome"})

	// OperationDuration tracks operation latency by entity kind and operation.
	OperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "grocer",
		Name:      "operation_duration_seconds",
		Help:      "Latency of get/upsert/delete operations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"kind", "op"})

	// CascadeDeleted counts rows removed by delete operations, per entity kind.
	CascadeDeleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "grocer",
		Name:      "deleted_rows_total",
		Help:      "Rows removed by top-level deletes, including cascaded descendants.",
	}, []string{"kind"})
)

// Observe records one finished operation.
func Observe(kind, op, outcome string, start time.Time) {
	Operations.WithLabelValues(kind, op, outcome).Inc()
	OperationDuration.WithLabelValues(kind, op).Observe(time.Since(start).Seconds())
}

// ObserveCascade records the rows removed by a delete.
func ObserveCascade(c storage.Cascade) {
	CascadeDeleted.WithLabelValues("account").Add(float64(c.Accounts))
	CascadeDeleted.WithLabelValues("list").Add(float64(c.Lists))
	CascadeDeleted.WithLabelValues("item").Add(float64(c.Items))
}
