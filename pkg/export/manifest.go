package export

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Artifact kinds recorded in the manifest
const (
	ArtifactSummary = "summary"
	ArtifactWide    = "wide"
	ArtifactNodes   = "nodes"
	ArtifactEdges   = "edges"
)

// FileEntry describes one written artifact
type FileEntry struct {
	Name    string `json:"name"`
	Kind    string `json:"kind"`
	Variant string `json:"variant"`
	// Annotation kind or domain, depending on Kind
	Part  string `json:"part,omitempty"`
	Rows  int    `json:"rows"`
	Bytes int64  `json:"bytes"`
}

// VariantStats summarizes one evidence variant
type VariantStats struct {
	Variant       string `json:"variant"`
	Records       int    `json:"records"`
	Direct        int    `json:"direct"`
	DirectNot     int    `json:"direct_not"`
	UnknownTerm   int    `json:"unknown_term"`
	DirectRows    int    `json:"direct_rows"`
	InferredRows  int    `json:"inferred_rows"`
	InferredPairs int    `json:"inferred_pairs"`
}

// Manifest records what one run produced
type Manifest struct {
	RunID       uuid.UUID      `json:"run_id"`
	Organism    int            `json:"organism"`
	Fingerprint string         `json:"config_fingerprint"`
	Compression string         `json:"compression"`
	StartedAt   time.Time      `json:"started_at"`
	FinishedAt  time.Time      `json:"finished_at"`
	Terms       int            `json:"terms"`
	Edges       int            `json:"edges"`
	Genes       int            `json:"genes"`
	Variants    []VariantStats `json:"variants"`
	Files       []FileEntry    `json:"files"`
}

// ManifestName is the artifact name of a run's manifest
func ManifestName(runID uuid.UUID) string {
	return fmt.Sprintf("manifest-%s.json", runID)
}

// WriteManifest encodes m as indented JSON into sink
func WriteManifest(ctx context.Context, sink Sink, m *Manifest) error {
	w, err := sink.Create(ctx, ManifestName(m.RunID))
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		abort(w)
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	return w.Close()
}
