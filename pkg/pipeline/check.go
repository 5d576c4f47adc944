package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/dd0wney/cluso-goannotate/pkg/annotation"
	"github.com/dd0wney/cluso-goannotate/pkg/health"
	"github.com/dd0wney/cluso-goannotate/pkg/ontology"
)

// CheckReport summarizes the inputs without propagating or writing anything
type CheckReport struct {
	Preflight   health.Response     `json:"preflight"`
	Build       ontology.BuildStats `json:"build"`
	ByDomain    map[string]int      `json:"terms_by_domain"`
	Records     int                 `json:"records"`
	Negative    int                 `json:"negative"`
	UnknownTerm int                 `json:"unknown_term"`
	Genes       int                 `json:"genes"`
	// Records whose gene is missing from the gene directory
	UnknownGene int `json:"unknown_gene"`
}

// Check runs the preflight probes, loads every source, builds the term graph
// and routes the annotation records, reporting what a run would see. Input
// and ontology failures are returned as such; a failed output probe returns
// the full report together with ErrPreflight.
func (r *Runner) Check(ctx context.Context) (*CheckReport, error) {
	preflight := r.Preflight(ctx)

	in, err := r.LoadInputs(ctx)
	if err != nil {
		return nil, err
	}
	g, stats, err := r.BuildGraph(in.Ontology)
	if err != nil {
		return nil, err
	}

	dir := annotation.NewDirectory(in.Genes)
	assigned := annotation.NewAssigner(r.logger).Assign(annotation.NewState(g), in.Records)

	report := &CheckReport{
		Preflight:   preflight,
		Build:       stats,
		ByDomain:    make(map[string]int),
		Records:     assigned.Records,
		Negative:    assigned.DirectNot,
		UnknownTerm: assigned.UnknownTerm,
		Genes:       dir.Len(),
	}
	for d, n := range g.CountByDomain() {
		report.ByDomain[d.String()] = n
	}
	for _, rec := range in.Records {
		if _, ok := dir.Symbol(rec.GeneID); !ok {
			report.UnknownGene++
		}
	}
	if failed := preflight.Failed(); len(failed) > 0 {
		return report, fmt.Errorf("%w: %s", ErrPreflight, strings.Join(failed, ", "))
	}
	return report, nil
}
