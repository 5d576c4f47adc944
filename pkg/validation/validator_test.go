package validation

import (
	"strings"
	"testing"
)

type sample struct {
	Organism int      `validate:"required,min=1"`
	Modes    []string `validate:"required,min=1,unique,dive,oneof=all experimental"`
}

func TestStruct(t *testing.T) {
	tests := []struct {
		name    string
		in      sample
		wantErr string
	}{
		{"valid", sample{Organism: 9606, Modes: []string{"all"}}, ""},
		{"missing organism", sample{Modes: []string{"all"}}, "Organism: field is required"},
		{"no modes", sample{Organism: 1, Modes: []string{}}, "must be at least 1"},
		{"unknown mode", sample{Organism: 1, Modes: []string{"curated"}}, "must be one of"},
		{"duplicate mode", sample{Organism: 1, Modes: []string{"all", "all"}}, "unique"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(&tt.in)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestStruct_Nil(t *testing.T) {
	if err := Struct(nil); err == nil {
		t.Error("expected error for nil")
	}
}
