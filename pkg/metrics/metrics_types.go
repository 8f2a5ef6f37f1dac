package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for an analysis run
type Registry struct {
	// Dataset Metrics
	DatasetNodes          *prometheus.GaugeVec
	DatasetEdges          *prometheus.GaugeVec
	DatasetLoadDuration   *prometheus.HistogramVec
	DatasetRecordsSkipped *prometheus.CounterVec
	DatasetsTotal         *prometheus.CounterVec

	// Algorithm Metrics
	AlgorithmRunsTotal *prometheus.CounterVec
	AlgorithmDuration  *prometheus.HistogramVec
	BridgesFound       *prometheus.GaugeVec
	ComponentsFound    *prometheus.GaugeVec

	// Report Metrics
	ReportRenderDuration prometheus.Histogram
	ReportSizeBytes      prometheus.Gauge
	PublishTotal         *prometheus.CounterVec

	// System Metrics
	RunStartTimestamp prometheus.Gauge
	RunDuration       prometheus.Gauge
	GoRoutines        prometheus.Gauge
	MemoryAllocBytes  prometheus.Gauge
	MemorySysBytes    prometheus.Gauge

	registry *prometheus.Registry
	started  time.Time
	mu       sync.RWMutex
}

var (
	// Global registry instance
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
		started:  time.Now(),
	}

	r.initDatasetMetrics()
	r.initAlgorithmMetrics()
	r.initReportMetrics()
	r.initSystemMetrics()

	r.RunStartTimestamp.Set(float64(r.started.Unix()))

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
