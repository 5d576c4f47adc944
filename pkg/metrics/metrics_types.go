package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for one pipeline process
type Registry struct {
	// Ontology Metrics
	OntologyTermsTotal    *prometheus.GaugeVec
	OntologyEdgesTotal    prometheus.Gauge
	OntologyTermsExcluded prometheus.Gauge
	OntologyEdgesDropped  *prometheus.GaugeVec

	// Annotation Metrics
	AnnotationRecordsTotal *prometheus.CounterVec
	DirectoryGenesTotal    prometheus.Gauge
	PropagationDuration    *prometheus.HistogramVec
	InferredPairsTotal     *prometheus.GaugeVec

	// Export Metrics
	RowsEmittedTotal    *prometheus.CounterVec
	ExportFilesTotal    *prometheus.CounterVec
	ExportBytesTotal    *prometheus.CounterVec
	ExportDuration      *prometheus.HistogramVec
	ExportFailuresTotal *prometheus.CounterVec

	// Run Metrics
	StageDuration         *prometheus.HistogramVec
	RunsTotal             *prometheus.CounterVec
	LastSuccessTimestamp  prometheus.Gauge
	GoRoutines            prometheus.Gauge
	MemoryAllocBytes      prometheus.Gauge
	MemoryTotalAllocBytes prometheus.Gauge

	registry *prometheus.Registry
	mu       sync.Mutex
}

var (
	// Global registry instance
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the process-wide metrics registry
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
	}

	r.initOntologyMetrics()
	r.initAnnotationMetrics()
	r.initExportMetrics()
	r.initRunMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
