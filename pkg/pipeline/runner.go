// Package pipeline runs the annotation propagation end to end: load sources,
// build the term graph once, then assign, propagate, aggregate and export each
// evidence variant concurrently.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/dd0wney/cluso-goannotate/pkg/aggregate"
	"github.com/dd0wney/cluso-goannotate/pkg/annotation"
	"github.com/dd0wney/cluso-goannotate/pkg/config"
	"github.com/dd0wney/cluso-goannotate/pkg/export"
	"github.com/dd0wney/cluso-goannotate/pkg/logging"
	"github.com/dd0wney/cluso-goannotate/pkg/metrics"
	"github.com/dd0wney/cluso-goannotate/pkg/ontology"
)

// Runner executes pipeline runs for one configuration
type Runner struct {
	cfg     *config.Config
	logger  logging.Logger
	metrics *metrics.Registry

	sink  export.Sink
	store export.SummaryStore
	now   func() time.Time
}

// Option customizes a Runner
type Option func(*Runner)

// WithLogger sets the logger
func WithLogger(l logging.Logger) Option {
	return func(r *Runner) { r.logger = l }
}

// WithMetrics sets the metrics registry
func WithMetrics(m *metrics.Registry) Option {
	return func(r *Runner) { r.metrics = m }
}

// WithSink replaces the sinks derived from the configuration
func WithSink(s export.Sink) Option {
	return func(r *Runner) { r.sink = s }
}

// WithStore replaces the summary store derived from the configuration
func WithStore(s export.SummaryStore) Option {
	return func(r *Runner) { r.store = s }
}

// NewRunner creates a runner. cfg must already be validated.
func NewRunner(cfg *config.Config, opts ...Option) *Runner {
	r := &Runner{
		cfg:     cfg,
		logger:  logging.NewNopLogger(),
		metrics: metrics.DefaultRegistry(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With(logging.Component("pipeline"), logging.Organism(cfg.Organism))
	return r
}

// Run executes one complete run and returns its manifest. Errors from
// ontology validation are *ontology.OntologyError, unreadable sources are
// *source.InputError; anything else failed while writing outputs.
func (r *Runner) Run(ctx context.Context) (manifest *export.Manifest, err error) {
	runID := uuid.New()
	started := r.now()
	log := r.logger.With(logging.RunID(runID.String()))
	runner := *r
	runner.logger = log

	defer func() {
		r.metrics.RecordRun(err, r.now())
		if path := r.cfg.Metrics.Textfile; path != "" {
			if werr := r.metrics.WriteTextfile(path); werr != nil {
				log.Warn("metrics textfile not written", logging.Path(path), logging.Error(werr))
			}
		}
	}()

	log.Info("run started", logging.String("fingerprint", r.cfg.Fingerprint()))

	sink, store, err := runner.openOutputs(ctx)
	if err != nil {
		return nil, err
	}
	if store != nil {
		defer store.Close()
	}

	in, err := runner.LoadInputs(ctx)
	if err != nil {
		return nil, err
	}
	g, _, err := runner.BuildGraph(in.Ontology)
	if err != nil {
		return nil, err
	}
	dir := annotation.NewDirectory(in.Genes)
	r.metrics.DirectoryGenesTotal.Set(float64(dir.Len()))

	exporter := export.NewExporter(sink, export.Options{
		Organism: r.cfg.Organism,
		Wide:     r.cfg.Output.Wide,
		Graph:    r.cfg.Output.Graph,
		Store:    store,
		Metrics:  r.metrics,
		Logger:   log,
	})

	var experimental export.ExperimentalPairs
	codes := annotation.NewEvidenceSet(r.cfg.ExperimentalCodes)
	if r.cfg.Output.Graph {
		experimental = export.NewExperimentalPairs(in.Records, codes)
	}

	results := make([]variantResult, len(r.cfg.EvidenceModes))
	eg, egCtx := errgroup.WithContext(ctx)
	for i, mode := range r.cfg.EvidenceModes {
		eg.Go(func() error {
			res, err := runner.runVariant(egCtx, variantInput{
				runID:        runID,
				mode:         mode,
				graph:        g,
				directory:    dir,
				records:      in.Records,
				codes:        codes,
				experimental: experimental,
				exporter:     exporter,
			})
			if err != nil {
				return fmt.Errorf("variant %s: %w", mode.Tag(), err)
			}
			results[i] = res
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		log.Error("run failed", logging.Error(err))
		return nil, err
	}

	manifest = &export.Manifest{
		RunID:       runID,
		Organism:    r.cfg.Organism,
		Fingerprint: r.cfg.Fingerprint(),
		Compression: r.cfg.Output.Compress,
		StartedAt:   started.UTC(),
		Terms:       g.Len(),
		Edges:       g.EdgeCount(),
		Genes:       dir.Len(),
	}
	for _, res := range results {
		manifest.Variants = append(manifest.Variants, res.stats)
		manifest.Files = append(manifest.Files, res.files...)
	}
	manifest.FinishedAt = r.now().UTC()

	if err := exporter.Finish(ctx, manifest); err != nil {
		return nil, err
	}
	log.Info("run finished",
		logging.Count(len(manifest.Files)),
		logging.Latency(manifest.FinishedAt.Sub(manifest.StartedAt)),
	)
	return manifest, nil
}

type variantInput struct {
	runID        uuid.UUID
	mode         config.EvidenceMode
	graph        *ontology.Graph
	directory    *annotation.Directory
	records      []annotation.Record
	codes        annotation.EvidenceSet
	experimental export.ExperimentalPairs
	exporter     *export.Exporter
}

type variantResult struct {
	stats export.VariantStats
	files []export.FileEntry
}

// runVariant owns a private State; the graph and directory are shared
// read-only with the other variants.
func (r *Runner) runVariant(ctx context.Context, in variantInput) (variantResult, error) {
	variant := in.mode.Tag()
	log := r.logger.With(logging.Variant(variant))

	records := in.records
	if in.mode == config.EvidenceExperimental {
		records = in.codes.Filter(records)
	}

	st := annotation.NewState(in.graph)
	assigned := annotation.NewAssigner(log).Assign(st, records)
	r.metrics.RecordAssignment(variant, assigned.Direct, assigned.DirectNot, assigned.UnknownTerm)
	log.Info("annotations assigned",
		logging.Int("records", assigned.Records),
		logging.Int("direct", assigned.Direct),
		logging.Int("direct_not", assigned.DirectNot),
		logging.Int("unknown_term", assigned.UnknownTerm),
	)

	timer := logging.StartTimer(log, "annotations propagated", logging.Stage("propagate"))
	annotation.Propagate(st)
	pairs := st.InferredPairs()
	elapsed := timer.End(logging.Int("inferred_pairs", pairs))
	r.metrics.RecordPropagation(variant, elapsed, pairs)
	r.metrics.RecordStage("propagate", elapsed)

	timer = logging.StartTimer(log, "rows aggregated", logging.Stage("aggregate"))
	rows := aggregate.NewAggregator(in.directory).Aggregate(st)
	split := aggregate.Split(rows)
	r.metrics.RecordStage("aggregate", timer.End(logging.Count(len(rows))))

	if err := ctx.Err(); err != nil {
		return variantResult{}, err
	}

	timer = logging.StartTimer(log, "variant exported", logging.Stage("export"))
	files, err := in.exporter.ExportVariant(ctx, export.VariantOutput{
		RunID:        in.runID,
		Variant:      variant,
		Rows:         rows,
		Experimental: in.experimental,
	})
	if err != nil {
		timer.EndError(err)
		return variantResult{}, err
	}
	r.metrics.RecordStage("export", timer.End(logging.Count(len(files))))

	return variantResult{
		stats: export.VariantStats{
			Variant:       variant,
			Records:       assigned.Records,
			Direct:        assigned.Direct,
			DirectNot:     assigned.DirectNot,
			UnknownTerm:   assigned.UnknownTerm,
			DirectRows:    len(split[aggregate.Direct]),
			InferredRows:  len(split[aggregate.Inferred]),
			InferredPairs: pairs,
		},
		files: files,
	}, nil
}

// openOutputs builds the sink chain and the optional summary store
func (r *Runner) openOutputs(ctx context.Context) (export.Sink, export.SummaryStore, error) {
	store := r.store
	if store == nil && r.cfg.Postgres.URL != "" {
		pg, err := export.NewPGStore(ctx, r.cfg.Postgres.URL)
		if err != nil {
			return nil, nil, fmt.Errorf("summary store: %w", err)
		}
		store = pg
	}

	if r.sink != nil {
		return r.sink, store, nil
	}

	sinks, err := r.buildSinks(ctx)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, nil, err
	}
	sink := export.NewMultiSink(sinks...)
	if r.cfg.Output.Compress == config.CompressSnappy {
		sink = export.NewSnappySink(sink)
	}
	return sink, store, nil
}

func (r *Runner) buildSinks(ctx context.Context) ([]export.Sink, error) {
	dirSink, err := export.NewDirSink(r.cfg.Output.Dir)
	if err != nil {
		return nil, err
	}
	sinks := []export.Sink{dirSink}

	if r.cfg.S3.Enabled() {
		client, err := export.NewS3Client(ctx, export.S3Options{
			Region:    r.cfg.S3.Region,
			Endpoint:  r.cfg.S3.Endpoint,
			AccessKey: r.cfg.S3.AccessKey,
			SecretKey: r.cfg.S3.SecretKey,
		})
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, export.NewS3Sink(client, r.cfg.S3.Bucket, r.cfg.S3.Prefix))
	}
	return sinks, nil
}
