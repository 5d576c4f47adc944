package ontology

// Cycle is a sequence of term indices closing back on its first element
type Cycle []TermIndex

// FindCycle returns one cycle in the graph, or nil when the graph is a DAG.
//
// Algorithm: depth-first search with three colors:
//   - white: unvisited
//   - gray: on the current DFS path
//   - black: fully explored
//
// Reaching a gray term along a child-to-parent edge is a back edge, which
// closes a cycle.
func FindCycle(g *Graph) Cycle {
	color := make([]uint8, g.Len())
	parent := make([]TermIndex, g.Len())

	for i := range g.terms {
		if color[i] != white {
			continue
		}
		if c := dfsFindCycle(g, TermIndex(i), color, parent); c != nil {
			return c
		}
	}
	return nil
}

// HasCycle reports whether the graph contains any cycle
func HasCycle(g *Graph) bool {
	return FindCycle(g) != nil
}

const (
	white uint8 = iota
	gray
	black
)

func dfsFindCycle(g *Graph, idx TermIndex, color []uint8, parent []TermIndex) Cycle {
	color[idx] = gray

	for _, next := range g.parents[idx] {
		if next == idx {
			return Cycle{idx}
		}
		switch color[next] {
		case white:
			parent[next] = idx
			if c := dfsFindCycle(g, next, color, parent); c != nil {
				return c
			}
		case gray:
			return extractCycle(next, idx, parent)
		}
		// black: cross or forward edge, no cycle through it
	}

	color[idx] = black
	return nil
}

// extractCycle walks parent pointers back from end to start, given a back
// edge end -> start, and returns the cycle in traversal order.
func extractCycle(start, end TermIndex, parent []TermIndex) Cycle {
	path := Cycle{end}
	for cur := end; cur != start; {
		cur = parent[cur]
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// IDs converts a cycle to term IDs, repeating the first ID at the end
func (c Cycle) IDs(g *Graph) []string {
	if len(c) == 0 {
		return nil
	}
	ids := make([]string, 0, len(c)+1)
	for _, idx := range c {
		ids = append(ids, g.terms[idx].ID)
	}
	return append(ids, g.terms[c[0]].ID)
}
