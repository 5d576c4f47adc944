package ontology

import "fmt"

// TopologicalOrder returns the terms in child-before-parent order using
// Kahn's algorithm. Roots of the ontology come last. Ties are broken by
// arena index, so the result is deterministic.
func TopologicalOrder(g *Graph) ([]TermIndex, error) {
	n := g.Len()

	// Pending child count per term; a term is ready once all its children are.
	pending := make([]int, n)
	for i := 0; i < n; i++ {
		pending[i] = len(g.children[i])
	}

	queue := make([]TermIndex, 0, n)
	for i := 0; i < n; i++ {
		if pending[i] == 0 {
			queue = append(queue, TermIndex(i))
		}
	}

	sorted := make([]TermIndex, 0, n)
	for head := 0; head < len(queue); head++ {
		current := queue[head]
		sorted = append(sorted, current)

		for _, p := range g.parents[current] {
			pending[p]--
			if pending[p] == 0 {
				queue = append(queue, p)
			}
		}
	}

	if len(sorted) != n {
		return nil, NewError("TopologicalOrder").
			Cause(fmt.Errorf("%w: %d of %d terms unreachable", ErrCyclicGraph, n-len(sorted), n)).
			Build()
	}
	return sorted, nil
}

// IsDAG reports whether the graph has no cycles
func IsDAG(g *Graph) bool {
	return !HasCycle(g)
}

// ValidateOrder checks that order lists every term exactly once and places
// each term after all of its children.
func ValidateOrder(g *Graph, order []TermIndex) error {
	if len(order) != g.Len() {
		return NewError("ValidateOrder").
			Cause(fmt.Errorf("%w: %d entries for %d terms", ErrInvalidOrder, len(order), g.Len())).
			Build()
	}

	position := make([]int, g.Len())
	for i := range position {
		position[i] = -1
	}
	for pos, idx := range order {
		if int(idx) >= g.Len() || position[idx] != -1 {
			return NewError("ValidateOrder").
				Cause(fmt.Errorf("%w: index %d repeated or out of range", ErrInvalidOrder, idx)).
				Build()
		}
		position[idx] = pos
	}

	for child := range g.parents {
		for _, p := range g.parents[child] {
			if position[child] > position[p] {
				return NewError("ValidateOrder").
					Term(g.terms[p].ID).
					Cause(fmt.Errorf("%w: precedes child %s", ErrInvalidOrder, g.terms[child].ID)).
					Build()
			}
		}
	}
	return nil
}
