package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initOntologyMetrics() {
	r.OntologyTermsTotal = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "goannotate_ontology_terms",
			Help: "Terms retained in the term graph",
		},
		[]string{"domain"},
	)

	r.OntologyEdgesTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "goannotate_ontology_edges",
			Help: "Edges retained in the term graph",
		},
	)

	r.OntologyTermsExcluded = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "goannotate_ontology_terms_excluded",
			Help: "Terms removed because of an excluded subset",
		},
	)

	r.OntologyEdgesDropped = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "goannotate_ontology_edges_dropped",
			Help: "Edges dropped while building the term graph",
		},
		[]string{"reason"},
	)
}
