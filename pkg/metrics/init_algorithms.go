package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initAlgorithmMetrics() {
	r.AlgorithmRunsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "graphreport_algorithm_runs_total",
			Help: "Total number of algorithm executions",
		},
		[]string{"algorithm", "status"},
	)

	r.AlgorithmDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "graphreport_algorithm_duration_seconds",
			Help:    "Algorithm execution time in seconds",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 30, 120, 600},
		},
		[]string{"algorithm"},
	)

	r.BridgesFound = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "graphreport_bridges",
			Help: "Number of bridges found in a dataset",
		},
		[]string{"dataset"},
	)

	r.ComponentsFound = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "graphreport_components",
			Help: "Number of connected (weakly, for directed graphs) components",
		},
		[]string{"dataset"},
	)
}
