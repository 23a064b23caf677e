// Package memory is a process-local db.Store. Snapshots are published through
// atomic pointers so readers never take a lock.
package memory

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/kailas-cloud/ncosearch/internal/db"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

// Store keeps all state in memory.
type Store struct {
	records  atomic.Pointer[[]db.RecordRow]
	synonyms atomic.Pointer[[]db.SynonymRow]
	audit    atomic.Pointer[[]db.AuditRow]

	synMu   sync.Mutex
	seq     int64
	auditMu sync.Mutex
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// Ping always succeeds.
func (s *Store) Ping(_ context.Context) error { return nil }

// Close is a no-op.
func (s *Store) Close() {}

// WaitForReady returns immediately.
func (s *Store) WaitForReady(_ context.Context, _ time.Duration) error { return nil }

// ReplaceRecords publishes a copy of rows as the new snapshot.
func (s *Store) ReplaceRecords(ctx context.Context, rows []db.RecordRow) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	cp := slices.Clone(rows)
	s.records.Store(&cp)
	return nil
}

// Records returns a copy of the current snapshot.
func (s *Store) Records(_ context.Context) ([]db.RecordRow, error) {
	p := s.records.Load()
	if p == nil {
		return nil, nil
	}
	return slices.Clone(*p), nil
}

// AddSynonym appends row with the next sequence number.
func (s *Store) AddSynonym(ctx context.Context, row db.SynonymRow) (db.SynonymRow, error) {
	if err := ctx.Err(); err != nil {
		return db.SynonymRow{}, err
	}
	s.synMu.Lock()
	defer s.synMu.Unlock()

	s.seq++
	row.Seq = s.seq

	var next []db.SynonymRow
	if p := s.synonyms.Load(); p != nil {
		next = slices.Clone(*p)
	}
	next = append(next, row)
	s.synonyms.Store(&next)
	return row, nil
}

// Synonyms returns rows in creation order.
func (s *Store) Synonyms(_ context.Context) ([]db.SynonymRow, error) {
	p := s.synonyms.Load()
	if p == nil {
		return nil, nil
	}
	return slices.Clone(*p), nil
}

// DeleteSynonym removes the row with id if present.
func (s *Store) DeleteSynonym(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.synMu.Lock()
	defer s.synMu.Unlock()

	p := s.synonyms.Load()
	if p == nil {
		return nil
	}
	next := slices.DeleteFunc(slices.Clone(*p), func(r db.SynonymRow) bool { return r.ID == id })
	s.synonyms.Store(&next)
	return nil
}

// AppendAudit appends under a writer lock and republishes the slice header.
// Readers keep seeing their prefix since published elements are never rewritten.
func (s *Store) AppendAudit(ctx context.Context, row db.AuditRow) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	row.Results = slices.Clone(row.Results)

	s.auditMu.Lock()
	defer s.auditMu.Unlock()

	var cur []db.AuditRow
	if p := s.audit.Load(); p != nil {
		cur = *p
	}
	next := append(cur, row) //nolint:gocritic // published prefix is never rewritten
	s.audit.Store(&next)
	return nil
}

// AuditEntries returns the newest limit rows, oldest first.
func (s *Store) AuditEntries(_ context.Context, limit int) ([]db.AuditRow, error) {
	p := s.audit.Load()
	if p == nil {
		return nil, nil
	}
	rows := *p
	if limit > 0 && len(rows) > limit {
		rows = rows[len(rows)-limit:]
	}
	return slices.Clone(rows), nil
}
