package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initDatasetMetrics() {
	r.DatasetNodes = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "graphreport_dataset_nodes",
			Help: "Number of nodes loaded from a dataset",
		},
		[]string{"dataset"},
	)

	r.DatasetEdges = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "graphreport_dataset_edges",
			Help: "Number of edges loaded from a dataset",
		},
		[]string{"dataset"},
	)

	r.DatasetLoadDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "graphreport_dataset_load_duration_seconds",
			Help:    "Time spent parsing a dataset file",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
		},
		[]string{"dataset", "format"},
	)

	r.DatasetRecordsSkipped = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "graphreport_dataset_records_skipped_total",
			Help: "Input records ignored while loading (comments, duplicates, self-loops)",
		},
		[]string{"dataset"},
	)

	r.DatasetsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "graphreport_datasets_total",
			Help: "Datasets processed by outcome",
		},
		[]string{"kind", "status"},
	)
}
