package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initRunMetrics() {
	r.StageDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "goannotate_stage_duration_seconds",
			Help:    "Pipeline stage duration in seconds",
			Buckets: []float64{0.01, 0.1, 0.5, 1.0, 5.0, 10.0, 30.0, 120.0},
		},
		[]string{"stage"},
	)

	r.RunsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "goannotate_runs_total",
			Help: "Pipeline runs, by result",
		},
		[]string{"status"},
	)

	r.LastSuccessTimestamp = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "goannotate_last_success_timestamp_seconds",
			Help: "Unix time of the last successful run",
		},
	)

	r.GoRoutines = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "goannotate_goroutines",
			Help: "Number of goroutines",
		},
	)

	r.MemoryAllocBytes = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "goannotate_memory_alloc_bytes",
			Help: "Bytes of allocated heap objects",
		},
	)

	r.MemoryTotalAllocBytes = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "goannotate_memory_total_alloc_bytes",
			Help: "Cumulative bytes allocated for heap objects",
		},
	)
}
