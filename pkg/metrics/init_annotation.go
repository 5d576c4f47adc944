package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initAnnotationMetrics() {
	r.AnnotationRecordsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "goannotate_annotation_records_total",
			Help: "Annotation records assigned, by outcome",
		},
		[]string{"variant", "outcome"},
	)

	r.DirectoryGenesTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "goannotate_directory_genes",
			Help: "Genes in the gene directory for the configured organism",
		},
	)

	r.PropagationDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "goannotate_propagation_duration_seconds",
			Help:    "Time spent propagating one evidence variant",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 10.0, 30.0},
		},
		[]string{"variant"},
	)

	r.InferredPairsTotal = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "goannotate_inferred_pairs",
			Help: "Gene-term pairs in the inferred sets after propagation",
		},
		[]string{"variant"},
	)
}
