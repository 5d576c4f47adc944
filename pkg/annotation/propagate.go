package annotation

import (
	"github.com/dd0wney/cluso-goannotate/pkg/ontology"
)

// Propagate fills the inferred set of every term by walking the graph's
// cached topological order, children before parents. At each term:
//
//  1. genes negated at this exact term are removed from what its children
//     contributed,
//  2. the term's own positive assertions are added,
//  3. the result is merged into every parent.
//
// A negative assertion only blocks a gene at the term that carries it; an
// ancestor reachable through another path still receives the gene.
func Propagate(st *State) {
	propagate(st, st.Graph().Order())
}

// PropagateInOrder propagates along a caller-supplied order, which must be a
// valid topological order of the state's graph. Any such order yields the
// same inferred sets.
func PropagateInOrder(st *State, order []ontology.TermIndex) error {
	if err := ontology.ValidateOrder(st.Graph(), order); err != nil {
		return err
	}
	propagate(st, order)
	return nil
}

func propagate(st *State, order []ontology.TermIndex) {
	g := st.Graph()
	for _, idx := range order {
		inferred := st.inferred[idx]
		inferred.InPlaceDifference(st.directNot[idx])
		inferred.InPlaceUnion(st.direct[idx])

		for _, p := range g.Parents(idx) {
			st.inferred[p].InPlaceUnion(inferred)
		}
	}
}
