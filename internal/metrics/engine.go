package metrics

import (
	"errors"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/docsearch/internal/db"
)

// Search engine Prometheus metrics.
var (
	EngineOperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "engine_operations_total",
			Help:      "Total number of search engine operations",
		},
		[]string{"driver", "op", "outcome"},
	)

	EngineOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "engine_operation_duration_seconds",
			Help:      "Search engine operation duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"driver", "op"},
	)
)

var registerEngineOnce sync.Once

// RegisterEngineMetrics registers the engine metrics with the default registry.
// Safe to call more than once.
func RegisterEngineMetrics() {
	registerEngineOnce.Do(func() {
		prometheus.MustRegister(EngineOperationsTotal, EngineOperationDuration)
	})
}

// ObserveEngine records one engine operation.
func ObserveEngine(driver, op string, start time.Time, err error) {
	EngineOperationDuration.WithLabelValues(driver, op).Observe(time.Since(start).Seconds())
	EngineOperationsTotal.WithLabelValues(driver, op, outcome(err)).Inc()
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, db.ErrIndexNotFound), errors.Is(err, db.ErrIndexExists):
		return "conflict"
	default:
		return "error"
	}
}
