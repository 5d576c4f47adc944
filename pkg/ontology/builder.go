package ontology

// BuildConfig holds the structural filters applied to a raw ontology
type BuildConfig struct {
	// ExcludedSubsets removes every term tagged with any of these subsets
	ExcludedSubsets []string
	// Relations lists the relation types kept as hierarchy edges
	Relations []string
}

// BuildStats describes what filtering removed
type BuildStats struct {
	TermsIn        int `json:"terms_in"`
	TermsExcluded  int `json:"terms_excluded"`
	DuplicateTerms int `json:"duplicate_terms"`
	UnknownDomain  int `json:"unknown_domain"`
	EdgesIn        int `json:"edges_in"`
	EdgesRelation  int `json:"edges_relation_dropped"` // relation type not allowed
	EdgesDangling  int `json:"edges_dangling"`         // endpoint excluded or never defined
	EdgesKept      int `json:"edges_kept"`
	TermsKept      int `json:"terms_kept"`
}

// Builder turns a raw parsed ontology into a filtered, verified DAG
type Builder struct {
	excluded  map[string]struct{}
	relations map[string]struct{}
}

// NewBuilder creates a builder; the config is copied
func NewBuilder(cfg BuildConfig) *Builder {
	b := &Builder{
		excluded:  make(map[string]struct{}, len(cfg.ExcludedSubsets)),
		relations: make(map[string]struct{}, len(cfg.Relations)),
	}
	for _, s := range cfg.ExcludedSubsets {
		b.excluded[s] = struct{}{}
	}
	for _, r := range cfg.Relations {
		b.relations[r] = struct{}{}
	}
	return b
}

// Build filters raw and verifies the result is acyclic. A cycle is returned
// as an *OntologyError wrapping ErrCyclicGraph.
func (b *Builder) Build(raw *RawGraph) (*Graph, BuildStats, error) {
	stats := BuildStats{TermsIn: len(raw.Terms), EdgesIn: len(raw.Edges)}

	kept := make(map[string]struct{}, len(raw.Terms))
	seen := make(map[string]struct{}, len(raw.Terms))
	terms := make([]Term, 0, len(raw.Terms))

	for _, rt := range raw.Terms {
		if rt.ID == "" {
			return nil, stats, NewError("Build").Cause(ErrEmptyTermID).Build()
		}
		if _, dup := seen[rt.ID]; dup {
			stats.DuplicateTerms++
			continue
		}
		seen[rt.ID] = struct{}{}

		if b.isExcluded(rt.Subsets) {
			stats.TermsExcluded++
			continue
		}

		domain, ok := ParseDomain(rt.Namespace)
		if !ok {
			stats.UnknownDomain++
		}
		kept[rt.ID] = struct{}{}
		terms = append(terms, Term{
			ID:      rt.ID,
			Name:    rt.Name,
			Domain:  domain,
			Subsets: append([]string(nil), rt.Subsets...),
		})
	}

	edges := make([][2]string, 0, len(raw.Edges))
	for _, e := range raw.Edges {
		if _, ok := b.relations[e.Relation]; !ok {
			stats.EdgesRelation++
			continue
		}
		_, fromOK := kept[e.From]
		_, toOK := kept[e.To]
		if !fromOK || !toOK {
			stats.EdgesDangling++
			continue
		}
		edges = append(edges, [2]string{e.From, e.To})
	}

	g := newGraph(terms, edges)
	stats.TermsKept = g.Len()
	stats.EdgesKept = g.EdgeCount()

	if cycle := FindCycle(g); cycle != nil {
		return nil, stats, NewError("Build").
			Term(g.terms[cycle[0]].ID).
			Cycle(cycle.IDs(g)).
			Cause(ErrCyclicGraph).
			Build()
	}

	order, err := TopologicalOrder(g)
	if err != nil {
		return nil, stats, err
	}
	g.order = order

	return g, stats, nil
}

func (b *Builder) isExcluded(subsets []string) bool {
	for _, s := range subsets {
		if _, ok := b.excluded[s]; ok {
			return true
		}
	}
	return false
}
