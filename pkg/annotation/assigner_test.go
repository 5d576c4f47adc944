package annotation

import "testing"

func TestAssign(t *testing.T) {
	g := buildGraph(t, []string{"GO:1", "GO:2"}, [][3]string{{"GO:1", "GO:2", "is_a"}})
	st := NewState(g)

	records := []Record{
		{GeneID: 10, TermID: "GO:1", Evidence: "IDA"},
		{GeneID: 11, TermID: "GO:1", Evidence: "IEA", Qualifier: "contributes_to"},
		{GeneID: 12, TermID: "GO:2", Evidence: "IMP", Qualifier: "NOT|enables"},
		{GeneID: 13, TermID: "GO:obsolete", Evidence: "IDA"},
		{GeneID: 10, TermID: "GO:1", Evidence: "TAS"},
	}

	stats := NewAssigner(nil).Assign(st, records)

	if stats.Records != 5 || stats.Direct != 3 || stats.DirectNot != 1 || stats.UnknownTerm != 1 {
		t.Errorf("stats = %+v", stats)
	}

	one, two := idx(t, g, "GO:1"), idx(t, g, "GO:2")
	if !equalIDs(st.Direct(one).IDs(), []int64{10, 11}) {
		t.Errorf("direct(GO:1) = %v", st.Direct(one).IDs())
	}
	if !equalIDs(st.DirectNot(two).IDs(), []int64{12}) {
		t.Errorf("direct_not(GO:2) = %v", st.DirectNot(two).IDs())
	}
	if !st.Direct(two).IsEmpty() {
		t.Errorf("direct(GO:2) = %v, want empty", st.Direct(two).IDs())
	}
	if _, ok := st.Genes().Position(13); ok {
		t.Error("genes of dropped records must not be interned")
	}
}

func TestAssign_ExcludedTermSilentlyDropped(t *testing.T) {
	raw := []string{"GO:1"}
	g := buildGraph(t, raw, nil)
	st := NewState(g)

	// GO:2 never made it into the filtered graph.
	stats := NewAssigner(nil).Assign(st, []Record{{GeneID: 1, TermID: "GO:2"}})
	if stats.UnknownTerm != 1 || stats.Direct != 0 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestAssign_SameGeneBothPolarities(t *testing.T) {
	g := buildGraph(t, []string{"GO:1"}, nil)
	st := NewState(g)
	one := idx(t, g, "GO:1")

	NewAssigner(nil).Assign(st, []Record{
		{GeneID: 5, TermID: "GO:1"},
		{GeneID: 5, TermID: "GO:1", Qualifier: "NOT"},
	})
	Propagate(st)

	if !st.Direct(one).Contains(5) || !st.DirectNot(one).Contains(5) {
		t.Fatal("both assertions must be recorded")
	}
	// The positive assertion is added after the negation is applied.
	if !st.Inferred(one).Contains(5) {
		t.Error("own positive assertion survives a negation at the same term")
	}
}
