package metrics

import (
	"fmt"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

func status(err error) string {
	if err != nil {
		return StatusError
	}
	return StatusSuccess
}

// RecordDatasetLoad records the size of a loaded dataset and how long parsing took
func (r *Registry) RecordDatasetLoad(dataset, format string, nodes, edges, skipped int, duration time.Duration) {
	r.DatasetNodes.WithLabelValues(dataset).Set(float64(nodes))
	r.DatasetEdges.WithLabelValues(dataset).Set(float64(edges))
	r.DatasetLoadDuration.WithLabelValues(dataset, format).Observe(duration.Seconds())
	if skipped > 0 {
		r.DatasetRecordsSkipped.WithLabelValues(dataset).Add(float64(skipped))
	}
}

// RecordDataset counts a finished dataset analysis
func (r *Registry) RecordDataset(kind string, err error) {
	r.DatasetsTotal.WithLabelValues(kind, status(err)).Inc()
}

// RecordAlgorithm records one algorithm execution
func (r *Registry) RecordAlgorithm(algorithm string, duration time.Duration, err error) {
	r.AlgorithmRunsTotal.WithLabelValues(algorithm, status(err)).Inc()
	r.AlgorithmDuration.WithLabelValues(algorithm).Observe(duration.Seconds())
}

// RecordStructure records the bridge and component counts of a dataset
func (r *Registry) RecordStructure(dataset string, bridges, components int) {
	r.BridgesFound.WithLabelValues(dataset).Set(float64(bridges))
	r.ComponentsFound.WithLabelValues(dataset).Set(float64(components))
}

// RecordReport records a rendered report
func (r *Registry) RecordReport(size int, duration time.Duration) {
	r.ReportRenderDuration.Observe(duration.Seconds())
	r.ReportSizeBytes.Set(float64(size))
}

// RecordPublish counts an uploaded artefact
func (r *Registry) RecordPublish(err error) {
	r.PublishTotal.WithLabelValues(status(err)).Inc()
}

// UpdateSystemMetrics samples runtime statistics and the run duration
func (r *Registry) UpdateSystemMetrics() {
	r.mu.Lock()
	defer r.mu.Unlock()

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	r.GoRoutines.Set(float64(runtime.NumGoroutine()))
	r.MemoryAllocBytes.Set(float64(m.Alloc))
	r.MemorySysBytes.Set(float64(m.Sys))
	r.RunDuration.Set(time.Since(r.started).Seconds())
}

// WriteTextfile writes every metric in the Prometheus text format, suitable
// for the node_exporter textfile collector. The file is replaced atomically.
func (r *Registry) WriteTextfile(path string) error {
	r.UpdateSystemMetrics()
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
