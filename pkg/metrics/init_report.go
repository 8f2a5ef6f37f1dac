package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initReportMetrics() {
	r.ReportRenderDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "graphreport_report_render_duration_seconds",
			Help:    "Time spent rendering the HTML report",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5},
		},
	)

	r.ReportSizeBytes = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "graphreport_report_size_bytes",
			Help: "Size of the rendered HTML report",
		},
	)

	r.PublishTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "graphreport_publish_total",
			Help: "Report artefacts uploaded by outcome",
		},
		[]string{"status"},
	)
}
