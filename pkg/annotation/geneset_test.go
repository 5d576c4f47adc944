package annotation

import (
	"testing"

	"github.com/dd0wney/cluso-goannotate/pkg/ontology"
)

func TestGeneIndex(t *testing.T) {
	gi := NewGeneIndex()
	a := gi.Intern(7157)
	b := gi.Intern(672)
	if gi.Intern(7157) != a {
		t.Error("Intern must be stable")
	}
	if a == b || gi.Len() != 2 {
		t.Errorf("positions %d/%d, len %d", a, b, gi.Len())
	}
	if gi.ID(b) != 672 {
		t.Errorf("ID(%d) = %d", b, gi.ID(b))
	}
	if _, ok := gi.Position(1); ok {
		t.Error("unknown gene should not resolve")
	}
}

func TestGeneSet(t *testing.T) {
	g := buildGraph(t, []string{"A", "B"}, nil)
	st := NewState(g)
	a, b := idx(t, g, "A"), idx(t, g, "B")

	for _, gene := range []int64{30, 5, 12} {
		st.AddDirect(a, gene)
	}
	st.AddDirect(b, 12)

	set := st.Direct(a)
	if !equalIDs(set.IDs(), []int64{5, 12, 30}) {
		t.Errorf("IDs() = %v, want ascending", set.IDs())
	}
	if set.Len() != 3 || set.IsEmpty() {
		t.Errorf("Len() = %d", set.Len())
	}
	if !set.Contains(5) || set.Contains(6) {
		t.Error("Contains mismatch")
	}

	diff := set.Minus(st.Direct(b))
	if !equalIDs(diff.IDs(), []int64{5, 30}) {
		t.Errorf("Minus() = %v", diff.IDs())
	}
	if !equalIDs(set.IDs(), []int64{5, 12, 30}) {
		t.Error("Minus must not modify the receiver")
	}
}

func TestGeneSetEqual_DifferentCapacity(t *testing.T) {
	g := buildGraph(t, []string{"A", "B"}, nil)
	st := NewState(g)
	a, b := idx(t, g, "A"), idx(t, g, "B")

	// Intern many genes so B's bitset grows past A's before clearing.
	st.AddDirect(a, 1)
	for gene := int64(100); gene < 300; gene++ {
		st.genes.Intern(gene)
	}
	st.AddDirect(b, 1)
	st.direct[b].Set(250)
	st.direct[b].Clear(250)

	if !st.Direct(a).Equal(st.Direct(b)) {
		t.Error("sets with equal members but different capacity must be equal")
	}
	if st.Direct(a).Equal(st.DirectNot(a)) {
		t.Error("{1} must differ from {}")
	}
}

func TestNewState_AllSetsEmpty(t *testing.T) {
	g := buildGraph(t, []string{"A", "B", "C"}, [][3]string{{"A", "B", "is_a"}})
	st := NewState(g)

	for i := 0; i < g.Len(); i++ {
		n := ontology.TermIndex(i)
		if !st.Direct(n).IsEmpty() || !st.DirectNot(n).IsEmpty() || !st.Inferred(n).IsEmpty() {
			t.Errorf("term %s should start with three empty sets", g.Term(n).ID)
		}
	}
}

func TestDirectory(t *testing.T) {
	d := NewDirectory([]Gene{
		{ID: 7157, Symbol: "TP53"},
		{ID: 672, Symbol: "BRCA1"},
		{ID: 7157, Symbol: "duplicate"},
	})
	if d.Len() != 2 {
		t.Errorf("Len() = %d", d.Len())
	}
	if s, _ := d.Symbol(7157); s != "TP53" {
		t.Errorf("Symbol(7157) = %s, want first entry", s)
	}
	if _, ok := d.Symbol(1); ok {
		t.Error("unknown gene should not resolve")
	}
}
