package export

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dd0wney/cluso-goannotate/pkg/aggregate"
)

// PGStore loads summary rows into PostgreSQL
type PGStore struct {
	pool *pgxpool.Pool
}

// NewPGStore connects, verifies the connection and creates tables
func NewPGStore(ctx context.Context, databaseURL string) (*PGStore, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	// one writer per evidence variant
	config.MaxConns = 4
	config.MinConns = 1
	config.MaxConnLifetime = 30 * time.Minute
	config.MaxConnIdleTime = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	s := &PGStore{pool: pool}

	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return s, nil
}

// PingPostgres opens a single connection and pings it without touching the
// schema.
func PingPostgres(ctx context.Context, databaseURL string) error {
	conn, err := pgx.Connect(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("database unreachable: %w", err)
	}
	defer conn.Close(ctx)
	return conn.Ping(ctx)
}

// ReplaceSummary deletes the previous snapshot and copies rows in, in one
// transaction.
func (s *PGStore) ReplaceSummary(ctx context.Context, runID uuid.UUID, taxID int, variant string, rows []aggregate.Row) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM go_annotation_summary WHERE tax_id = $1 AND variant = $2`, taxID, variant); err != nil {
		return fmt.Errorf("failed to clear summary: %w", err)
	}

	_, err = tx.CopyFrom(ctx,
		pgx.Identifier{"go_annotation_summary"},
		summaryColumns,
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			r := rows[i]
			return []any{
				runID, taxID, variant,
				r.TermID, r.Name, r.Domain.String(), r.Kind.String(),
				r.Size(), r.GeneIDs, r.Symbols,
			}, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to copy summary rows: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit summary: %w", err)
	}
	return nil
}

// RecordRun stores the run manifest
func (s *PGStore) RecordRun(ctx context.Context, m *Manifest) error {
	files, err := json.Marshal(m.Files)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest files: %w", err)
	}

	query := `
		INSERT INTO go_annotation_runs (run_id, tax_id, fingerprint, started_at, finished_at, files)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = s.pool.Exec(ctx, query, m.RunID, m.Organism, m.Fingerprint, m.StartedAt, m.FinishedAt, files)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	return nil
}

// Ping checks database connectivity
func (s *PGStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close closes the database connection pool
func (s *PGStore) Close() error {
	s.pool.Close()
	return nil
}
