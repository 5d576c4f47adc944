package annotation

import (
	"github.com/dd0wney/cluso-goannotate/pkg/logging"
)

// AssignStats counts how records were routed
type AssignStats struct {
	Records     int
	Direct      int
	DirectNot   int
	UnknownTerm int // dropped: term absent from the filtered graph
}

// Assigner attaches records to the terms of a State
type Assigner struct {
	logger logging.Logger
}

// NewAssigner creates an assigner; a nil logger discards output
func NewAssigner(logger logging.Logger) *Assigner {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Assigner{logger: logger}
}

// Assign adds every record to direct or direct_not of its term. Records for
// terms missing from the graph, including terms removed by subset
// filtering, are skipped without error.
func (a *Assigner) Assign(st *State, records []Record) AssignStats {
	stats := AssignStats{Records: len(records)}
	g := st.Graph()

	for _, r := range records {
		idx, ok := g.Lookup(r.TermID)
		if !ok {
			stats.UnknownTerm++
			a.logger.Debug("annotation for absent term skipped", logging.TermID(r.TermID), logging.GeneID(r.GeneID))
			continue
		}

		if r.Polarity() == Negative {
			st.AddDirectNot(idx, r.GeneID)
			stats.DirectNot++
		} else {
			st.AddDirect(idx, r.GeneID)
			stats.Direct++
		}
	}
	return stats
}
