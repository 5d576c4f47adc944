package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Annotation outcomes
const (
	OutcomeDirect      = "direct"
	OutcomeDirectNot   = "direct_not"
	OutcomeUnknownTerm = "unknown_term"
)

// Run statuses
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// RecordGraph records the shape of the built term graph
func (r *Registry) RecordGraph(termsByDomain map[string]int, edges, excluded int, dropped map[string]int) {
	for domain, n := range termsByDomain {
		r.OntologyTermsTotal.WithLabelValues(domain).Set(float64(n))
	}
	r.OntologyEdgesTotal.Set(float64(edges))
	r.OntologyTermsExcluded.Set(float64(excluded))
	for reason, n := range dropped {
		r.OntologyEdgesDropped.WithLabelValues(reason).Set(float64(n))
	}
}

// RecordAssignment records how one variant's annotation records were routed
func (r *Registry) RecordAssignment(variant string, direct, directNot, unknownTerm int) {
	r.AnnotationRecordsTotal.WithLabelValues(variant, OutcomeDirect).Add(float64(direct))
	r.AnnotationRecordsTotal.WithLabelValues(variant, OutcomeDirectNot).Add(float64(directNot))
	r.AnnotationRecordsTotal.WithLabelValues(variant, OutcomeUnknownTerm).Add(float64(unknownTerm))
}

// RecordPropagation records one propagation pass
func (r *Registry) RecordPropagation(variant string, duration time.Duration, inferredPairs int) {
	r.PropagationDuration.WithLabelValues(variant).Observe(duration.Seconds())
	r.InferredPairsTotal.WithLabelValues(variant).Set(float64(inferredPairs))
}

// RecordRows records emitted aggregate rows
func (r *Registry) RecordRows(variant, kind string, n int) {
	r.RowsEmittedTotal.WithLabelValues(variant, kind).Add(float64(n))
}

// RecordExport records one artifact write
func (r *Registry) RecordExport(sink string, bytes int64, duration time.Duration, err error) {
	if err != nil {
		r.ExportFailuresTotal.WithLabelValues(sink).Inc()
		return
	}
	r.ExportFilesTotal.WithLabelValues(sink).Inc()
	r.ExportBytesTotal.WithLabelValues(sink).Add(float64(bytes))
	r.ExportDuration.WithLabelValues(sink).Observe(duration.Seconds())
}

// RecordStage records a pipeline stage duration
func (r *Registry) RecordStage(stage string, duration time.Duration) {
	r.StageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// RecordRun records the end of a run and samples the Go runtime
func (r *Registry) RecordRun(err error, finished time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err != nil {
		r.RunsTotal.WithLabelValues(StatusFailure).Inc()
	} else {
		r.RunsTotal.WithLabelValues(StatusSuccess).Inc()
		r.LastSuccessTimestamp.Set(float64(finished.Unix()))
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	r.GoRoutines.Set(float64(runtime.NumGoroutine()))
	r.MemoryAllocBytes.Set(float64(m.Alloc))
	r.MemoryTotalAllocBytes.Set(float64(m.TotalAlloc))
}

// WriteTextfile writes every metric in text exposition format to path, for
// pickup by a node_exporter textfile collector.
func (r *Registry) WriteTextfile(path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return prometheus.WriteToTextfile(path, r.registry)
}
