package annotation

import (
	"slices"

	"github.com/bits-and-blooms/bitset"
)

// GeneIndex interns gene IDs into dense bit positions so per-term sets can
// be stored as bitsets. Positions are handed out in first-seen order.
type GeneIndex struct {
	ids []int64
	pos map[int64]uint
}

// NewGeneIndex creates an empty index
func NewGeneIndex() *GeneIndex {
	return &GeneIndex{pos: make(map[int64]uint)}
}

// Intern returns the position of id, assigning one if needed
func (gi *GeneIndex) Intern(id int64) uint {
	if p, ok := gi.pos[id]; ok {
		return p
	}
	p := uint(len(gi.ids))
	gi.ids = append(gi.ids, id)
	gi.pos[id] = p
	return p
}

// Position looks up an already interned gene
func (gi *GeneIndex) Position(id int64) (uint, bool) {
	p, ok := gi.pos[id]
	return p, ok
}

// ID returns the gene stored at position p
func (gi *GeneIndex) ID(p uint) int64 {
	return gi.ids[p]
}

// Len returns the number of interned genes
func (gi *GeneIndex) Len() int {
	return len(gi.ids)
}

// GeneSet is a read-only view of one per-term gene set
type GeneSet struct {
	bits  *bitset.BitSet
	genes *GeneIndex
}

// Len returns the number of genes in the set
func (s GeneSet) Len() int {
	return int(s.bits.Count())
}

// IsEmpty reports whether the set has no genes
func (s GeneSet) IsEmpty() bool {
	return s.bits.None()
}

// Contains reports whether gene id is in the set
func (s GeneSet) Contains(id int64) bool {
	p, ok := s.genes.Position(id)
	return ok && s.bits.Test(p)
}

// IDs returns the gene IDs in ascending order
func (s GeneSet) IDs() []int64 {
	out := make([]int64, 0, s.bits.Count())
	for p, ok := s.bits.NextSet(0); ok; p, ok = s.bits.NextSet(p + 1) {
		out = append(out, s.genes.ID(p))
	}
	slices.Sort(out)
	return out
}

// Minus returns a new set holding the genes of s that are not in other
func (s GeneSet) Minus(other GeneSet) GeneSet {
	return GeneSet{bits: s.bits.Difference(other.bits), genes: s.genes}
}

// Equal reports whether both sets hold the same genes, regardless of
// how far each underlying bitset has grown.
func (s GeneSet) Equal(other GeneSet) bool {
	return s.bits.SymmetricDifferenceCardinality(other.bits) == 0
}
