package ncosearch

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domaudit "github.com/kailas-cloud/ncosearch/internal/domain/audit"
	"github.com/kailas-cloud/ncosearch/internal/domain/search/result"
	domsyn "github.com/kailas-cloud/ncosearch/internal/domain/synonym"
	searchuc "github.com/kailas-cloud/ncosearch/internal/usecase/search"
)

// --- mocks ---

type mockSearchUC struct {
	searchFn func(ctx context.Context, query string, topK int) (searchuc.Response, error)
}

func (m *mockSearchUC) Search(ctx context.Context, query string, topK int) (searchuc.Response, error) {
	return m.searchFn(ctx, query, topK)
}

type mockSynonymUC struct {
	addFn    func(ctx context.Context, anchor, term string) (domsyn.Entry, error)
	listFn   func(ctx context.Context) ([]domsyn.Entry, error)
	deleteFn func(ctx context.Context, id string) error
}

func (m *mockSynonymUC) Add(ctx context.Context, anchor, term string) (domsyn.Entry, error) {
	return m.addFn(ctx, anchor, term)
}

func (m *mockSynonymUC) List(ctx context.Context) ([]domsyn.Entry, error) {
	return m.listFn(ctx)
}

func (m *mockSynonymUC) Delete(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}

type mockAuditUC struct {
	listFn func(ctx context.Context, limit *int) ([]domaudit.Entry, error)
}

func (m *mockAuditUC) List(ctx context.Context, limit *int) ([]domaudit.Entry, error) {
	return m.listFn(ctx, limit)
}

// --- tests ---

func TestSearch_Converts(t *testing.T) {
	c := &Client{searchSvc: &mockSearchUC{
		searchFn: func(_ context.Context, q string, k int) (searchuc.Response, error) {
			assert.Equal(t, "driver", q)
			assert.Equal(t, 3, k)
			return searchuc.Response{
				Message:  "Found 1 result",
				Expanded: "driver chauffeur",
				Results:  []result.Result{result.New("A2", "Driver", "Operates vehicles", "Transport", 0.75)},
			}, nil
		},
	}}

	resp, err := c.Search(context.Background(), "driver", 3)
	require.NoError(t, err)
	assert.Equal(t, "driver chauffeur", resp.Expanded)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, Result{
		Code: "A2", Title: "Driver", Description: "Operates vehicles", Path: "Transport", Confidence: 0.75,
	}, resp.Results[0])
}

func TestSearch_ErrorKeepsSentinel(t *testing.T) {
	c := &Client{searchSvc: &mockSearchUC{
		searchFn: func(context.Context, string, int) (searchuc.Response, error) {
			return searchuc.Response{}, ErrInvalidRequest
		},
	}}

	_, err := c.Search(context.Background(), "", 5)
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestSynonyms_Converts(t *testing.T) {
	entry, err := domsyn.New("s1", "driver", "chauffeur", 1700000000000)
	require.NoError(t, err)

	c := &Client{synSvc: &mockSynonymUC{
		addFn: func(context.Context, string, string) (domsyn.Entry, error) { return entry, nil },
		listFn: func(context.Context) ([]domsyn.Entry, error) {
			return []domsyn.Entry{entry}, nil
		},
		deleteFn: func(context.Context, string) error { return errors.New("down") },
	}}

	s, err := c.AddSynonym(context.Background(), "driver", "chauffeur")
	require.NoError(t, err)
	assert.Equal(t, "s1", s.ID)
	assert.Equal(t, int64(1700000000000), s.CreatedAt.UnixMilli())

	list, err := c.Synonyms(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)

	assert.Error(t, c.DeleteSynonym(context.Background(), "s1"))
}

func TestAudit_Limit(t *testing.T) {
	var got *int
	c := &Client{auditSvc: &mockAuditUC{
		listFn: func(_ context.Context, limit *int) ([]domaudit.Entry, error) {
			got = limit
			return []domaudit.Entry{
				domaudit.New("a1", 1700000000000, "driver", "driver", 5, []domaudit.Hit{{Code: "A2", Title: "Driver", Confidence: 1}}),
			}, nil
		},
	}}

	entries, err := c.Audit(context.Background(), 10)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 10, *got)
	require.Len(t, entries, 1)
	assert.Equal(t, "A2", entries[0].Results[0].Code)

	_, err = c.Audit(context.Background(), -1)
	assert.ErrorIs(t, err, ErrInvalidRequest)
}
