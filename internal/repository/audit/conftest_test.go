package audit

import (
	"context"
	"testing"

	"github.com/kailas-cloud/ncosearch/internal/db"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	appendFn  func(ctx context.Context, row db.AuditRow) error
	entriesFn func(ctx context.Context, limit int) ([]db.AuditRow, error)
}

func (m *mockStore) AppendAudit(ctx context.Context, row db.AuditRow) error {
	if m.appendFn != nil {
		return m.appendFn(ctx, row)
	}
	return nil
}

func (m *mockStore) AuditEntries(ctx context.Context, limit int) ([]db.AuditRow, error) {
	if m.entriesFn != nil {
		return m.entriesFn(ctx, limit)
	}
	return nil, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms), ms
}
