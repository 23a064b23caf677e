package record

import (
	"context"
	"testing"

	"github.com/kailas-cloud/ncosearch/internal/db"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	replaceFn func(ctx context.Context, rows []db.RecordRow) error
	recordsFn func(ctx context.Context) ([]db.RecordRow, error)
}

func (m *mockStore) ReplaceRecords(ctx context.Context, rows []db.RecordRow) error {
	if m.replaceFn != nil {
		return m.replaceFn(ctx, rows)
	}
	return nil
}

func (m *mockStore) Records(ctx context.Context) ([]db.RecordRow, error) {
	if m.recordsFn != nil {
		return m.recordsFn(ctx)
	}
	return nil, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms), ms
}
