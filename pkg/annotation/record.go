package annotation

import (
	"strings"
)

// Record is one gene-to-term assertion from the annotation source,
// already restricted to a single organism.
type Record struct {
	OrganismID int
	GeneID     int64
	TermID     string
	Evidence   string
	Qualifier  string
}

// Polarity says whether a record asserts or denies the gene-term link
type Polarity uint8

const (
	Positive Polarity = iota
	Negative
)

// String returns "positive" or "negative"
func (p Polarity) String() string {
	if p == Negative {
		return "negative"
	}
	return "positive"
}

// Classify reads a qualifier: it is negative when it starts with NOT in any
// letter case; empty and every other qualifier is positive.
func Classify(qualifier string) Polarity {
	if len(qualifier) >= 3 && strings.EqualFold(qualifier[:3], "NOT") {
		return Negative
	}
	return Positive
}

// Polarity classifies the record's qualifier
func (r Record) Polarity() Polarity {
	return Classify(r.Qualifier)
}

// EvidenceSet is a set of evidence codes
type EvidenceSet map[string]struct{}

// NewEvidenceSet builds a set from codes
func NewEvidenceSet(codes []string) EvidenceSet {
	s := make(EvidenceSet, len(codes))
	for _, c := range codes {
		s[c] = struct{}{}
	}
	return s
}

// Contains reports whether code is in the set
func (s EvidenceSet) Contains(code string) bool {
	_, ok := s[code]
	return ok
}

// Filter returns the records whose evidence code is in the set. The input
// slice is left untouched.
func (s EvidenceSet) Filter(records []Record) []Record {
	out := make([]Record, 0, len(records)/4)
	for _, r := range records {
		if s.Contains(r.Evidence) {
			out = append(out, r)
		}
	}
	return out
}
