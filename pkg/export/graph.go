package export

import (
	"io"
	"strconv"

	"github.com/dd0wney/cluso-goannotate/pkg/aggregate"
	"github.com/dd0wney/cluso-goannotate/pkg/annotation"
	"github.com/dd0wney/cluso-goannotate/pkg/ontology"
)

type genePair struct {
	gene int64
	term string
}

// ExperimentalPairs is the set of (gene, term) pairs backed by at least one
// record with an experimental evidence code.
type ExperimentalPairs map[genePair]struct{}

// NewExperimentalPairs collects pairs from records whose evidence is in codes.
// Negative records count too; the flag describes support, not polarity.
func NewExperimentalPairs(records []annotation.Record, codes annotation.EvidenceSet) ExperimentalPairs {
	pairs := make(ExperimentalPairs)
	for _, r := range codes.Filter(records) {
		pairs[genePair{gene: r.GeneID, term: r.TermID}] = struct{}{}
	}
	return pairs
}

// Contains reports whether (gene, term) is experimentally supported
func (p ExperimentalPairs) Contains(gene int64, term string) bool {
	_, ok := p[genePair{gene: gene, term: term}]
	return ok
}

// Edge links a gene to a term in the graph export
type Edge struct {
	GeneID       int64
	TermID       string
	Kind         aggregate.Kind
	Experimental bool
}

// Node is a term in the graph export
type Node struct {
	TermID string
	Name   string
}

// DomainGraph is the node and edge set of one ontology domain
type DomainGraph struct {
	Domain ontology.Domain
	Nodes  []Node
	Edges  []Edge
}

// PartitionByDomain splits rows into per-domain node and edge sets. An
// inferred edge is never flagged experimental, even when the direct
// annotations it came from were. Terms with an unknown domain are skipped.
func PartitionByDomain(rows []aggregate.Row, exp ExperimentalPairs) []DomainGraph {
	byDomain := make(map[ontology.Domain]*DomainGraph)
	lastNode := make(map[ontology.Domain]string)

	for _, r := range rows {
		if r.Domain == ontology.DomainUnknown {
			continue
		}
		g, ok := byDomain[r.Domain]
		if !ok {
			g = &DomainGraph{Domain: r.Domain}
			byDomain[r.Domain] = g
		}
		// rows arrive grouped by term id
		if lastNode[r.Domain] != r.TermID {
			g.Nodes = append(g.Nodes, Node{TermID: r.TermID, Name: r.Name})
			lastNode[r.Domain] = r.TermID
		}
		for _, gene := range r.GeneIDs {
			g.Edges = append(g.Edges, Edge{
				GeneID:       gene,
				TermID:       r.TermID,
				Kind:         r.Kind,
				Experimental: r.Kind == aggregate.Direct && exp.Contains(gene, r.TermID),
			})
		}
	}

	out := make([]DomainGraph, 0, len(byDomain))
	for _, d := range ontology.Domains() {
		if g, ok := byDomain[d]; ok {
			out = append(out, *g)
		}
	}
	return out
}

// WriteNodes writes the node file of one domain
func WriteNodes(w io.Writer, nodes []Node) (int, error) {
	cw := newTSVWriter(w)
	if err := cw.Write([]string{"go_id", "go_name"}); err != nil {
		return 0, err
	}
	for _, n := range nodes {
		if err := cw.Write([]string{n.TermID, n.Name}); err != nil {
			return 0, err
		}
	}
	cw.Flush()
	return len(nodes), cw.Error()
}

// WriteEdges writes the edge file of one domain
func WriteEdges(w io.Writer, edges []Edge) (int, error) {
	cw := newTSVWriter(w)
	if err := cw.Write([]string{"gene_id", "go_id", "annotation_type", "experimental"}); err != nil {
		return 0, err
	}
	for _, e := range edges {
		record := []string{
			strconv.FormatInt(e.GeneID, 10),
			e.TermID,
			e.Kind.String(),
			strconv.FormatBool(e.Experimental),
		}
		if err := cw.Write(record); err != nil {
			return 0, err
		}
	}
	cw.Flush()
	return len(edges), cw.Error()
}
