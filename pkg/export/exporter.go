package export

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-goannotate/pkg/aggregate"
	"github.com/dd0wney/cluso-goannotate/pkg/logging"
	"github.com/dd0wney/cluso-goannotate/pkg/metrics"
	"github.com/dd0wney/cluso-goannotate/pkg/ontology"
)

// LongName names the long-form summary of one kind
func LongName(taxID int, kind aggregate.Kind, variant string) string {
	return fmt.Sprintf("GO_annotations-%d-%s-%s.tsv", taxID, kind, variant)
}

// WideName names the one-row-per-term summary
func WideName(taxID int, variant string) string {
	return fmt.Sprintf("GO_summary-%d-%s.tsv", taxID, variant)
}

// NodesName names the node file of one domain
func NodesName(domain ontology.Domain, variant string) string {
	return fmt.Sprintf("nodes-%s-%s.tsv", domain, variant)
}

// EdgesName names the edge file of one domain
func EdgesName(domain ontology.Domain, variant string) string {
	return fmt.Sprintf("edges-%s-%s.tsv", domain, variant)
}

// Options configures an Exporter
type Options struct {
	Organism int
	Wide     bool
	Graph    bool
	// Store receives the long-form rows when set
	Store   SummaryStore
	Metrics *metrics.Registry
	Logger  logging.Logger
}

// Exporter writes the artifacts of each evidence variant. ExportVariant is
// safe to call concurrently for different variants.
type Exporter struct {
	sink    Sink
	opts    Options
	metrics *metrics.Registry
	logger  logging.Logger
}

// NewExporter writes through sink
func NewExporter(sink Sink, opts Options) *Exporter {
	e := &Exporter{sink: sink, opts: opts, metrics: opts.Metrics, logger: opts.Logger}
	if e.metrics == nil {
		e.metrics = metrics.NewRegistry()
	}
	if e.logger == nil {
		e.logger = logging.NewNopLogger()
	}
	e.logger = e.logger.With(logging.Component("export"))
	return e
}

// VariantOutput is everything one variant hands to the exporter
type VariantOutput struct {
	RunID   uuid.UUID
	Variant string
	Rows    []aggregate.Row
	// Experimental is required when graph output is enabled
	Experimental ExperimentalPairs
}

// ExportVariant writes the long-form files, then the optional wide and graph
// files, then loads the summary store.
func (e *Exporter) ExportVariant(ctx context.Context, out VariantOutput) ([]FileEntry, error) {
	var files []FileEntry
	tax := e.opts.Organism

	split := aggregate.Split(out.Rows)
	for _, kind := range aggregate.Kinds() {
		rows := split[kind]
		entry, err := e.write(ctx, LongName(tax, kind, out.Variant), func(w io.Writer) (int, error) {
			return WriteLong(w, tax, rows)
		})
		if err != nil {
			return nil, err
		}
		entry.Kind, entry.Variant, entry.Part = ArtifactSummary, out.Variant, kind.String()
		files = append(files, entry)
		e.metrics.RecordRows(out.Variant, kind.String(), len(rows))
	}

	if e.opts.Wide {
		wide := aggregate.Wide(out.Rows)
		entry, err := e.write(ctx, WideName(tax, out.Variant), func(w io.Writer) (int, error) {
			return WriteWide(w, tax, wide)
		})
		if err != nil {
			return nil, err
		}
		entry.Kind, entry.Variant = ArtifactWide, out.Variant
		files = append(files, entry)
	}

	if e.opts.Graph {
		for _, g := range PartitionByDomain(out.Rows, out.Experimental) {
			nodes, err := e.write(ctx, NodesName(g.Domain, out.Variant), func(w io.Writer) (int, error) {
				return WriteNodes(w, g.Nodes)
			})
			if err != nil {
				return nil, err
			}
			nodes.Kind, nodes.Variant, nodes.Part = ArtifactNodes, out.Variant, g.Domain.String()

			edges, err := e.write(ctx, EdgesName(g.Domain, out.Variant), func(w io.Writer) (int, error) {
				return WriteEdges(w, g.Edges)
			})
			if err != nil {
				return nil, err
			}
			edges.Kind, edges.Variant, edges.Part = ArtifactEdges, out.Variant, g.Domain.String()
			files = append(files, nodes, edges)
		}
	}

	if e.opts.Store != nil {
		timer := logging.StartTimer(e.logger, "summary store load", logging.Variant(out.Variant), logging.Count(len(out.Rows)))
		if err := e.opts.Store.ReplaceSummary(ctx, out.RunID, tax, out.Variant, out.Rows); err != nil {
			timer.EndError(err)
			return nil, fmt.Errorf("summary store: %w", err)
		}
		timer.End()
	}

	return files, nil
}

// Finish writes the manifest and records the run in the summary store
func (e *Exporter) Finish(ctx context.Context, m *Manifest) error {
	start := time.Now()
	err := WriteManifest(ctx, e.sink, m)
	e.metrics.RecordExport(e.sink.Name(), 0, time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	if e.opts.Store != nil {
		if err := e.opts.Store.RecordRun(ctx, m); err != nil {
			return fmt.Errorf("summary store: %w", err)
		}
	}
	e.logger.Info("manifest written", logging.Path(StoredName(e.sink, ManifestName(m.RunID))), logging.Count(len(m.Files)))
	return nil
}

func (e *Exporter) write(ctx context.Context, name string, fn func(io.Writer) (int, error)) (FileEntry, error) {
	start := time.Now()
	w, err := e.sink.Create(ctx, name)
	if err != nil {
		e.metrics.RecordExport(e.sink.Name(), 0, time.Since(start), err)
		return FileEntry{}, fmt.Errorf("failed to create %s: %w", name, err)
	}

	cw := &countingWriter{w: w}
	rows, err := fn(cw)
	if err != nil {
		abort(w)
	} else {
		err = w.Close()
	}
	e.metrics.RecordExport(e.sink.Name(), cw.n, time.Since(start), err)
	if err != nil {
		return FileEntry{}, fmt.Errorf("failed to write %s: %w", name, err)
	}

	e.logger.Debug("artifact written", logging.Path(StoredName(e.sink, name)), logging.Count(rows), logging.Int64("bytes", cw.n))
	return FileEntry{Name: name, Rows: rows, Bytes: cw.n}, nil
}
