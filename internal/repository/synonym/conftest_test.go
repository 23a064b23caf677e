package synonym

import (
	"context"
	"testing"

	"github.com/kailas-cloud/ncosearch/internal/db"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	addFn      func(ctx context.Context, row db.SynonymRow) (db.SynonymRow, error)
	synonymsFn func(ctx context.Context) ([]db.SynonymRow, error)
	deleteFn   func(ctx context.Context, id string) error
}

func (m *mockStore) AddSynonym(ctx context.Context, row db.SynonymRow) (db.SynonymRow, error) {
	if m.addFn != nil {
		return m.addFn(ctx, row)
	}
	return row, nil
}

func (m *mockStore) Synonyms(ctx context.Context) ([]db.SynonymRow, error) {
	if m.synonymsFn != nil {
		return m.synonymsFn(ctx)
	}
	return nil, nil
}

func (m *mockStore) DeleteSynonym(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms), ms
}
