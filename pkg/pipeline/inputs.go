package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/dd0wney/cluso-goannotate/pkg/annotation"
	"github.com/dd0wney/cluso-goannotate/pkg/logging"
	"github.com/dd0wney/cluso-goannotate/pkg/ontology"
	"github.com/dd0wney/cluso-goannotate/pkg/source"
)

// Inputs holds every upstream source, fully read
type Inputs struct {
	Ontology *ontology.RawGraph
	Records  []annotation.Record
	Genes    []annotation.Gene
}

// LoadInputs reads the three sources concurrently and returns the first
// *source.InputError encountered.
func (r *Runner) LoadInputs(ctx context.Context) (*Inputs, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	timer := logging.StartTimer(r.logger, "inputs loaded", logging.Stage("load"))
	in := &Inputs{}

	var g errgroup.Group
	g.Go(func() error {
		raw, err := source.OpenOntology(r.cfg.Inputs.Ontology)
		in.Ontology = raw
		return err
	})
	g.Go(func() error {
		records, err := source.ReadAnnotations(r.cfg.Inputs.Gene2Go, r.cfg.Organism)
		in.Records = records
		return err
	})
	g.Go(func() error {
		genes, err := source.ReadGenes(r.cfg.Inputs.GeneInfo, r.cfg.Organism)
		in.Genes = genes
		return err
	})
	if err := g.Wait(); err != nil {
		timer.EndError(err)
		return nil, err
	}

	elapsed := timer.End(
		logging.Int("raw_terms", len(in.Ontology.Terms)),
		logging.Int("records", len(in.Records)),
		logging.Int("genes", len(in.Genes)),
	)
	r.metrics.RecordStage("load", elapsed)
	return in, nil
}

// BuildGraph filters the raw ontology into the term graph
func (r *Runner) BuildGraph(raw *ontology.RawGraph) (*ontology.Graph, ontology.BuildStats, error) {
	timer := logging.StartTimer(r.logger, "term graph built", logging.Stage("build"))

	g, stats, err := ontology.NewBuilder(ontology.BuildConfig{
		ExcludedSubsets: r.cfg.ExcludedSubsets,
		Relations:       r.cfg.Relations,
	}).Build(raw)
	if err != nil {
		timer.EndError(err)
		return nil, stats, err
	}

	byDomain := make(map[string]int)
	for d, n := range g.CountByDomain() {
		byDomain[d.String()] = n
	}
	r.metrics.RecordGraph(byDomain, stats.EdgesKept, stats.TermsExcluded, map[string]int{
		"relation": stats.EdgesRelation,
		"dangling": stats.EdgesDangling,
	})

	elapsed := timer.End(
		logging.Int("terms", stats.TermsKept),
		logging.Int("terms_excluded", stats.TermsExcluded),
		logging.Int("duplicate_terms", stats.DuplicateTerms),
		logging.Int("edges", stats.EdgesKept),
		logging.Int("edges_relation_dropped", stats.EdgesRelation),
		logging.Int("edges_dangling", stats.EdgesDangling),
	)
	r.metrics.RecordStage("build", elapsed)
	return g, stats, nil
}
