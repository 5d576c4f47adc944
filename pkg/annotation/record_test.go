package annotation

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		qualifier string
		want      Polarity
	}{
		{"NOT", Negative},
		{"NOT|contributes_to", Negative},
		{"not|colocalizes_with", Negative},
		{"Not", Negative},
		{"", Positive},
		{"contributes_to", Positive},
		{"colocalizes_with", Positive},
		{"enables", Positive},
		{"NO", Positive},
		{" NOT", Positive},
	}

	for _, tt := range tests {
		t.Run(tt.qualifier, func(t *testing.T) {
			if got := Classify(tt.qualifier); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.qualifier, got, tt.want)
			}
		})
	}
}

func TestRecordPolarity(t *testing.T) {
	r := Record{GeneID: 1, TermID: "GO:1", Qualifier: "NOT|enables"}
	if r.Polarity() != Negative {
		t.Errorf("Polarity() = %v", r.Polarity())
	}
	if Negative.String() != "negative" || Positive.String() != "positive" {
		t.Error("unexpected polarity names")
	}
}

func TestEvidenceSetFilter(t *testing.T) {
	exp := NewEvidenceSet([]string{"EXP", "IDA", "IMP"})
	records := []Record{
		{GeneID: 1, Evidence: "IDA"},
		{GeneID: 2, Evidence: "IEA"},
		{GeneID: 3, Evidence: "IMP"},
		{GeneID: 4, Evidence: "TAS"},
	}

	got := exp.Filter(records)
	if len(got) != 2 || got[0].GeneID != 1 || got[1].GeneID != 3 {
		t.Errorf("Filter() = %+v", got)
	}
	if len(records) != 4 || records[1].GeneID != 2 {
		t.Error("Filter must not modify its input")
	}
	if exp.Contains("IEA") {
		t.Error("IEA is not experimental")
	}
}
