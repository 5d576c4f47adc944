package annotation

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/dd0wney/cluso-goannotate/pkg/ontology"
)

// State holds the three gene sets of every term for one run. Every set
// exists from construction on, so an empty set always means "no genes",
// never "not computed yet". A State is owned by a single goroutine.
type State struct {
	graph     *ontology.Graph
	genes     *GeneIndex
	direct    []*bitset.BitSet
	directNot []*bitset.BitSet
	inferred  []*bitset.BitSet
}

// NewState allocates empty sets for every term of g
func NewState(g *ontology.Graph) *State {
	n := g.Len()
	s := &State{
		graph:     g,
		genes:     NewGeneIndex(),
		direct:    make([]*bitset.BitSet, n),
		directNot: make([]*bitset.BitSet, n),
		inferred:  make([]*bitset.BitSet, n),
	}
	for i := 0; i < n; i++ {
		s.direct[i] = bitset.New(0)
		s.directNot[i] = bitset.New(0)
		s.inferred[i] = bitset.New(0)
	}
	return s
}

// Graph returns the shared, immutable ontology graph
func (s *State) Graph() *ontology.Graph {
	return s.graph
}

// Genes returns the gene index of this run
func (s *State) Genes() *GeneIndex {
	return s.genes
}

// AddDirect records a positive assertion of gene at term idx
func (s *State) AddDirect(idx ontology.TermIndex, gene int64) {
	s.direct[idx].Set(s.genes.Intern(gene))
}

// AddDirectNot records a negative assertion of gene at term idx
func (s *State) AddDirectNot(idx ontology.TermIndex, gene int64) {
	s.directNot[idx].Set(s.genes.Intern(gene))
}

// Direct returns the positively asserted genes of idx
func (s *State) Direct(idx ontology.TermIndex) GeneSet {
	return GeneSet{bits: s.direct[idx], genes: s.genes}
}

// DirectNot returns the negatively asserted genes of idx
func (s *State) DirectNot(idx ontology.TermIndex) GeneSet {
	return GeneSet{bits: s.directNot[idx], genes: s.genes}
}

// Inferred returns the propagated genes of idx
func (s *State) Inferred(idx ontology.TermIndex) GeneSet {
	return GeneSet{bits: s.inferred[idx], genes: s.genes}
}

// InferredPairs counts (gene, term) pairs across all inferred sets
func (s *State) InferredPairs() int {
	n := uint(0)
	for _, b := range s.inferred {
		n += b.Count()
	}
	return int(n)
}

// Clone deep-copies the per-term sets. The graph is shared; the gene index
// is copied so the clone may intern new genes independently.
func (s *State) Clone() *State {
	c := &State{
		graph: s.graph,
		genes: &GeneIndex{
			ids: append([]int64(nil), s.genes.ids...),
			pos: make(map[int64]uint, len(s.genes.pos)),
		},
		direct:    make([]*bitset.BitSet, len(s.direct)),
		directNot: make([]*bitset.BitSet, len(s.directNot)),
		inferred:  make([]*bitset.BitSet, len(s.inferred)),
	}
	for id, p := range s.genes.pos {
		c.genes.pos[id] = p
	}
	for i := range s.direct {
		c.direct[i] = s.direct[i].Clone()
		c.directNot[i] = s.directNot[i].Clone()
		c.inferred[i] = s.inferred[i].Clone()
	}
	return c
}
