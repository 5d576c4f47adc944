package ontology

import "testing"

var defaultBuildConfig = BuildConfig{
	ExcludedSubsets: []string{"gocheck_do_not_annotate", "goantislim_grouping"},
	Relations:       []string{"is_a", "part_of"},
}

func rawTerm(id string) RawTerm {
	return RawTerm{ID: id, Name: "term " + id, Namespace: "biological_process"}
}

// chainRaw builds A -is_a-> B -is_a-> C
func chainRaw() *RawGraph {
	return &RawGraph{
		Terms: []RawTerm{rawTerm("A"), rawTerm("B"), rawTerm("C")},
		Edges: []RawEdge{
			{From: "A", To: "B", Relation: "is_a"},
			{From: "B", To: "C", Relation: "is_a"},
		},
	}
}

func mustBuild(t *testing.T, raw *RawGraph) *Graph {
	t.Helper()
	g, _, err := NewBuilder(defaultBuildConfig).Build(raw)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return g
}

func mustLookup(t *testing.T, g *Graph, id string) TermIndex {
	t.Helper()
	idx, ok := g.Lookup(id)
	if !ok {
		t.Fatalf("term %s missing from graph", id)
	}
	return idx
}
