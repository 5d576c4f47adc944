// Package aggregate turns propagated annotation state into per-term rows.
package aggregate

import (
	"fmt"
	"slices"

	"github.com/dd0wney/cluso-goannotate/pkg/annotation"
	"github.com/dd0wney/cluso-goannotate/pkg/ontology"
)

// Kind selects which gene set of a term a row reports
type Kind uint8

const (
	// Direct rows report the term's own positive assertions
	Direct Kind = iota
	// Inferred rows report propagated genes not already direct at the term
	Inferred
)

// String returns "direct" or "inferred"
func (k Kind) String() string {
	switch k {
	case Direct:
		return "direct"
	case Inferred:
		return "inferred"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Kinds lists both kinds in output order
func Kinds() []Kind {
	return []Kind{Direct, Inferred}
}

// Row summarizes one (term, kind) pair. GeneIDs ascend numerically; Symbols
// are sorted on their own and are not position-aligned with GeneIDs.
type Row struct {
	TermID  string
	Name    string
	Domain  ontology.Domain
	Kind    Kind
	GeneIDs []int64
	Symbols []string
}

// Size is the number of genes in the row
func (r Row) Size() int {
	return len(r.GeneIDs)
}

// Aggregator joins propagated sets with the gene directory
type Aggregator struct {
	dir *annotation.Directory
}

// NewAggregator creates an aggregator over dir
func NewAggregator(dir *annotation.Directory) *Aggregator {
	return &Aggregator{dir: dir}
}

// Rows builds the rows of one kind in term-ID order. Terms left without any
// known gene are omitted.
func (a *Aggregator) Rows(st *annotation.State, kind Kind) []Row {
	g := st.Graph()
	rows := make([]Row, 0)
	for i := 0; i < g.Len(); i++ {
		if row, ok := a.row(st, ontology.TermIndex(i), kind); ok {
			rows = append(rows, row)
		}
	}
	return rows
}

// Aggregate builds all rows, ordered by term ID with the direct row of a
// term before its inferred row.
func (a *Aggregator) Aggregate(st *annotation.State) []Row {
	g := st.Graph()
	rows := make([]Row, 0)
	for i := 0; i < g.Len(); i++ {
		for _, kind := range Kinds() {
			if row, ok := a.row(st, ontology.TermIndex(i), kind); ok {
				rows = append(rows, row)
			}
		}
	}
	return rows
}

func (a *Aggregator) row(st *annotation.State, idx ontology.TermIndex, kind Kind) (Row, bool) {
	var genes annotation.GeneSet
	switch kind {
	case Direct:
		genes = st.Direct(idx)
	case Inferred:
		genes = st.Inferred(idx).Minus(st.Direct(idx))
	default:
		return Row{}, false
	}
	if genes.IsEmpty() {
		return Row{}, false
	}

	ids := make([]int64, 0, genes.Len())
	seen := make(map[string]struct{}, genes.Len())
	symbols := make([]string, 0, genes.Len())
	for _, id := range genes.IDs() {
		symbol, ok := a.dir.Symbol(id)
		if !ok {
			continue
		}
		ids = append(ids, id)
		if symbol == "" {
			continue
		}
		if _, dup := seen[symbol]; !dup {
			seen[symbol] = struct{}{}
			symbols = append(symbols, symbol)
		}
	}
	if len(ids) == 0 {
		return Row{}, false
	}
	slices.Sort(symbols)

	term := st.Graph().Term(idx)
	return Row{
		TermID:  term.ID,
		Name:    term.Name,
		Domain:  term.Domain,
		Kind:    kind,
		GeneIDs: ids,
		Symbols: symbols,
	}, true
}

// WideRow carries both kinds of one term side by side
type WideRow struct {
	TermID          string
	Name            string
	Domain          ontology.Domain
	DirectGeneIDs   []int64
	InferredGeneIDs []int64
	DirectSymbols   []string
	InferredSymbols []string
}

// Wide folds rows produced by Aggregate into one row per term, keeping
// term order.
func Wide(rows []Row) []WideRow {
	out := make([]WideRow, 0, len(rows))
	pos := make(map[string]int, len(rows))
	for _, r := range rows {
		i, ok := pos[r.TermID]
		if !ok {
			i = len(out)
			pos[r.TermID] = i
			out = append(out, WideRow{TermID: r.TermID, Name: r.Name, Domain: r.Domain})
		}
		switch r.Kind {
		case Direct:
			out[i].DirectGeneIDs = r.GeneIDs
			out[i].DirectSymbols = r.Symbols
		case Inferred:
			out[i].InferredGeneIDs = r.GeneIDs
			out[i].InferredSymbols = r.Symbols
		}
	}
	return out
}

// Split partitions rows by kind, preserving order
func Split(rows []Row) map[Kind][]Row {
	out := make(map[Kind][]Row, 2)
	for _, r := range rows {
		out[r.Kind] = append(out[r.Kind], r)
	}
	return out
}
