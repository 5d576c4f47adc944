package annotation

import (
	"testing"

	"github.com/bits-and-blooms/bitset"

	"github.com/dd0wney/cluso-goannotate/pkg/ontology"
)

var testBuildConfig = ontology.BuildConfig{
	ExcludedSubsets: []string{"gocheck_do_not_annotate"},
	Relations:       []string{"is_a", "part_of"},
}

func buildGraph(t *testing.T, ids []string, edges [][3]string) *ontology.Graph {
	t.Helper()
	raw := &ontology.RawGraph{}
	for _, id := range ids {
		raw.Terms = append(raw.Terms, ontology.RawTerm{ID: id, Name: "name of " + id, Namespace: "biological_process"})
	}
	for _, e := range edges {
		raw.Edges = append(raw.Edges, ontology.RawEdge{From: e[0], To: e[1], Relation: e[2]})
	}
	g, _, err := ontology.NewBuilder(testBuildConfig).Build(raw)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return g
}

func idx(t *testing.T, g *ontology.Graph, id string) ontology.TermIndex {
	t.Helper()
	i, ok := g.Lookup(id)
	if !ok {
		t.Fatalf("term %s not in graph", id)
	}
	return i
}

func equalIDs(got, want []int64) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

// invariantViolation returns the first term whose inferred set differs from
// (inferred of all children − direct_not) ∪ direct, or "" if none does. A
// gene both asserted and negated at the same term stays in its inferred set.
func invariantViolation(st *State) string {
	g := st.Graph()
	for i := 0; i < g.Len(); i++ {
		n := ontology.TermIndex(i)
		want := bitset.New(0)
		for _, c := range g.Children(n) {
			want.InPlaceUnion(st.inferred[c])
		}
		want.InPlaceDifference(st.directNot[n])
		want.InPlaceUnion(st.direct[n])
		if want.SymmetricDifferenceCardinality(st.inferred[n]) != 0 {
			return g.Term(n).ID
		}
	}
	return ""
}

func sameInferred(a, b *State) bool {
	for i := range a.inferred {
		if !a.Inferred(ontology.TermIndex(i)).Equal(b.Inferred(ontology.TermIndex(i))) {
			return false
		}
	}
	return true
}

