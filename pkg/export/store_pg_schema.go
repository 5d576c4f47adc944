package export

import "context"

var summaryColumns = []string{
	"run_id", "tax_id", "variant",
	"go_id", "go_name", "go_domain", "annotation_type",
	"size", "gene_ids", "gene_symbols",
}

// migrate creates the necessary database tables
func (s *PGStore) migrate(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS go_annotation_runs (
		run_id UUID PRIMARY KEY,
		tax_id INTEGER NOT NULL,
		fingerprint TEXT NOT NULL,
		started_at TIMESTAMPTZ NOT NULL,
		finished_at TIMESTAMPTZ NOT NULL,
		files JSONB NOT NULL
	);

	CREATE TABLE IF NOT EXISTS go_annotation_summary (
		run_id UUID NOT NULL,
		tax_id INTEGER NOT NULL,
		variant TEXT NOT NULL,
		go_id TEXT NOT NULL,
		go_name TEXT NOT NULL,
		go_domain TEXT NOT NULL,
		annotation_type TEXT NOT NULL,
		size INTEGER NOT NULL,
		gene_ids BIGINT[] NOT NULL,
		gene_symbols TEXT[] NOT NULL,
		PRIMARY KEY (tax_id, variant, go_id, annotation_type)
	);

	CREATE INDEX IF NOT EXISTS idx_go_annotation_summary_go_id ON go_annotation_summary(go_id);
	`

	_, err := s.pool.Exec(ctx, schema)
	return err
}
