package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initExportMetrics() {
	r.RowsEmittedTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "goannotate_rows_emitted_total",
			Help: "Aggregated rows emitted",
		},
		[]string{"variant", "kind"},
	)

	r.ExportFilesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "goannotate_export_files_total",
			Help: "Artifacts written, by sink",
		},
		[]string{"sink"},
	)

	r.ExportBytesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "goannotate_export_bytes_total",
			Help: "Uncompressed bytes written, by sink",
		},
		[]string{"sink"},
	)

	r.ExportDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "goannotate_export_duration_seconds",
			Help:    "Time spent writing one artifact",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1.0, 5.0, 30.0},
		},
		[]string{"sink"},
	)

	r.ExportFailuresTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "goannotate_export_failures_total",
			Help: "Artifacts that failed to write, by sink",
		},
		[]string{"sink"},
	)
}
