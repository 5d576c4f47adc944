package export

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-goannotate/pkg/aggregate"
)

// SummaryStore persists long-form summary rows of one (organism, variant)
// snapshot. ReplaceSummary swaps the previous snapshot for the new one.
type SummaryStore interface {
	ReplaceSummary(ctx context.Context, runID uuid.UUID, taxID int, variant string, rows []aggregate.Row) error
	RecordRun(ctx context.Context, m *Manifest) error
	Ping(ctx context.Context) error
	Close() error
}

type summaryKey struct {
	taxID   int
	variant string
}

// MemoryStore is an in-memory SummaryStore
type MemoryStore struct {
	mu      sync.RWMutex
	summary map[summaryKey][]aggregate.Row
	runs    []*Manifest
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{summary: make(map[summaryKey][]aggregate.Row)}
}

// ReplaceSummary implements SummaryStore
func (s *MemoryStore) ReplaceSummary(_ context.Context, _ uuid.UUID, taxID int, variant string, rows []aggregate.Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summary[summaryKey{taxID, variant}] = slices.Clone(rows)
	return nil
}

// RecordRun implements SummaryStore
func (s *MemoryStore) RecordRun(_ context.Context, m *Manifest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs = append(s.runs, m)
	return nil
}

// Summary returns the stored rows of one snapshot
func (s *MemoryStore) Summary(taxID int, variant string) []aggregate.Row {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.summary[summaryKey{taxID, variant}]
}

// Runs returns every recorded manifest
func (s *MemoryStore) Runs() []*Manifest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.runs)
}

// Ping implements SummaryStore
func (s *MemoryStore) Ping(context.Context) error { return nil }

// Close implements SummaryStore
func (s *MemoryStore) Close() error { return nil }
