package ontology

import "sort"

// Domain is one of the three fixed top-level categories partitioning all terms
type Domain uint8

const (
	DomainUnknown Domain = iota
	BiologicalProcess
	MolecularFunction
	CellularComponent
)

var domainNames = [...]string{
	DomainUnknown:     "unknown",
	BiologicalProcess: "biological_process",
	MolecularFunction: "molecular_function",
	CellularComponent: "cellular_component",
}

// String returns the OBO namespace spelling of the domain
func (d Domain) String() string {
	if int(d) < len(domainNames) {
		return domainNames[d]
	}
	return domainNames[DomainUnknown]
}

// ParseDomain maps an OBO namespace to a Domain
func ParseDomain(namespace string) (Domain, bool) {
	for d, name := range domainNames {
		if d != int(DomainUnknown) && name == namespace {
			return Domain(d), true
		}
	}
	return DomainUnknown, false
}

// Domains lists the known domains in output order
func Domains() []Domain {
	return []Domain{BiologicalProcess, MolecularFunction, CellularComponent}
}

// TermIndex is the dense arena position of a term in a built Graph.
// Indices are assigned in ascending term-ID order.
type TermIndex uint32

// Term is a node of the filtered ontology
type Term struct {
	ID      string
	Name    string
	Domain  Domain
	Subsets []string
}

// RawTerm is a term as produced by an ontology parser, before filtering
type RawTerm struct {
	ID        string
	Name      string
	Namespace string
	Subsets   []string
}

// RawEdge points from a more specific term to a more general one
type RawEdge struct {
	From     string
	To       string
	Relation string
}

// RawGraph is the unfiltered parser output
type RawGraph struct {
	Terms []RawTerm
	Edges []RawEdge
}

// Graph is an immutable DAG over terms. Edges point from child (more
// specific) to parent (more general).
type Graph struct {
	terms    []Term
	index    map[string]TermIndex
	parents  [][]TermIndex
	children [][]TermIndex
	order    []TermIndex
	edges    int
}

// Len returns the number of terms
func (g *Graph) Len() int {
	return len(g.terms)
}

// EdgeCount returns the number of distinct hierarchy edges
func (g *Graph) EdgeCount() int {
	return g.edges
}

// Term returns the term stored at idx
func (g *Graph) Term(idx TermIndex) Term {
	return g.terms[idx]
}

// Lookup resolves a term ID to its arena index
func (g *Graph) Lookup(id string) (TermIndex, bool) {
	idx, ok := g.index[id]
	return idx, ok
}

// Parents returns the more general neighbors of idx. The slice must not be modified.
func (g *Graph) Parents(idx TermIndex) []TermIndex {
	return g.parents[idx]
}

// Children returns the more specific neighbors of idx. The slice must not be modified.
func (g *Graph) Children(idx TermIndex) []TermIndex {
	return g.children[idx]
}

// Order returns the cached topological order: every term appears after all
// of its children and before all of its parents. The slice must not be modified.
func (g *Graph) Order() []TermIndex {
	return g.order
}

// TermIDs returns all term IDs in ascending order
func (g *Graph) TermIDs() []string {
	ids := make([]string, len(g.terms))
	for i, t := range g.terms {
		ids[i] = t.ID
	}
	return ids
}

// CountByDomain returns how many terms fall in each domain
func (g *Graph) CountByDomain() map[Domain]int {
	counts := make(map[Domain]int)
	for _, t := range g.terms {
		counts[t.Domain]++
	}
	return counts
}

// newGraph lays out terms in ID order and wires the adjacency lists.
// Edges must reference known IDs; duplicates are collapsed.
func newGraph(terms []Term, edges [][2]string) *Graph {
	sort.Slice(terms, func(i, j int) bool { return terms[i].ID < terms[j].ID })

	g := &Graph{
		terms:    terms,
		index:    make(map[string]TermIndex, len(terms)),
		parents:  make([][]TermIndex, len(terms)),
		children: make([][]TermIndex, len(terms)),
	}
	for i, t := range terms {
		g.index[t.ID] = TermIndex(i)
	}

	seen := make(map[[2]TermIndex]struct{}, len(edges))
	for _, e := range edges {
		from, to := g.index[e[0]], g.index[e[1]]
		key := [2]TermIndex{from, to}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		g.parents[from] = append(g.parents[from], to)
		g.children[to] = append(g.children[to], from)
		g.edges++
	}
	return g
}
