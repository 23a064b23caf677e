package search

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/kailas-cloud/ncosearch/internal/domain"
	domaudit "github.com/kailas-cloud/ncosearch/internal/domain/audit"
	domidx "github.com/kailas-cloud/ncosearch/internal/domain/index"
	"github.com/kailas-cloud/ncosearch/internal/domain/search/result"
	domsyn "github.com/kailas-cloud/ncosearch/internal/domain/synonym"
	"github.com/kailas-cloud/ncosearch/internal/domain/vocabulary"
)

// --- Mocks ---

type mockSynonyms struct {
	entries []domsyn.Entry
	err     error
}

func (m *mockSynonyms) List(_ context.Context) ([]domsyn.Entry, error) {
	return m.entries, m.err
}

type recorded struct {
	query, expanded string
	topK            int
	results         []result.Result
}

type mockAudit struct {
	mu      sync.Mutex
	entries []recorded
	err     error
}

func (m *mockAudit) Record(
	_ context.Context, query, expanded string, topK int, results []result.Result,
) (domaudit.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return domaudit.Entry{}, m.err
	}
	m.entries = append(m.entries, recorded{query, expanded, topK, results})
	return domaudit.New("id", 0, query, expanded, topK, nil), nil
}

func (m *mockAudit) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// --- Helpers ---

func activeWith(t *testing.T, recs ...vocabulary.Record) *domidx.Active {
	t.Helper()
	a := domidx.NewActive()
	if len(recs) == 0 {
		return a
	}
	ix, err := domidx.Build(context.Background(), recs, 2)
	if err != nil {
		t.Fatal(err)
	}
	a.Swap(ix, time.Now())
	return a
}

func sampleRecords(t *testing.T) []vocabulary.Record {
	t.Helper()
	var out []vocabulary.Record
	for _, r := range [][2]string{{"A1", "Carpenter"}, {"A2", "Driver"}, {"A3", "Electrician"}} {
		rec, err := vocabulary.New(r[0], r[1], "", "")
		if err != nil {
			t.Fatal(err)
		}
		out = append(out, rec)
	}
	return out
}

func synonym(t *testing.T, anchor, term string) domsyn.Entry {
	t.Helper()
	e, err := domsyn.New(anchor+"-"+term, anchor, term, 0)
	if err != nil {
		t.Fatal(err)
	}
	return e
}

// --- Tests ---

func TestSearch_ExactTitle(t *testing.T) {
	audit := &mockAudit{}
	svc := New(&mockSynonyms{}, audit, activeWith(t, sampleRecords(t)...), DefaultConfig(), nil)

	resp, err := svc.Search(context.Background(), "driver", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Results) != 1 {
		t.Fatalf("results = %d, want 1", len(resp.Results))
	}
	top := resp.Results[0]
	if top.Code() != "A2" || top.Confidence() != 1.0 {
		t.Errorf("top = %s %.4f, want A2 1.0", top.Code(), top.Confidence())
	}
	if resp.Message != "Found 1 result" || resp.Expanded != "driver" {
		t.Errorf("message/expanded = %q/%q", resp.Message, resp.Expanded)
	}
	if audit.count() != 1 || audit.entries[0].topK != 2 || audit.entries[0].query != "driver" {
		t.Errorf("audit = %+v", audit.entries)
	}
}

func TestSearch_SynonymExpansion(t *testing.T) {
	syns := &mockSynonyms{entries: []domsyn.Entry{synonym(t, "driver", "chauffeur")}}
	audit := &mockAudit{}
	svc := New(syns, audit, activeWith(t, sampleRecords(t)...), DefaultConfig(), nil)

	resp, err := svc.Search(context.Background(), "Chauffeur", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Results) == 0 || resp.Results[0].Code() != "A2" {
		t.Fatalf("results = %+v, want A2 first", resp.Results)
	}
	if resp.Expanded != "chauffeur driver" {
		t.Errorf("expanded = %q", resp.Expanded)
	}
	if audit.entries[0].expanded != resp.Expanded {
		t.Error("audit must store the expansion display verbatim")
	}
}

func TestSearch_ForwardOnly(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Bidirectional = false
	syns := &mockSynonyms{entries: []domsyn.Entry{synonym(t, "driver", "chauffeur")}}
	svc := New(syns, &mockAudit{}, activeWith(t, sampleRecords(t)...), cfg, nil)

	resp, err := svc.Search(context.Background(), "chauffeur", 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Results) != 0 || resp.Message != MessageNoResults {
		t.Errorf("forward-only expansion should not match, got %+v", resp)
	}
}

func TestSearch_NoResultsStillAudited(t *testing.T) {
	audit := &mockAudit{}
	svc := New(&mockSynonyms{}, audit, activeWith(t, sampleRecords(t)...), DefaultConfig(), nil)

	resp, err := svc.Search(context.Background(), "astronaut", 5)
	if err != nil {
		t.Fatal(err)
	}
	if resp.Message != MessageNoResults || len(resp.Results) != 0 {
		t.Errorf("resp = %+v", resp)
	}
	if audit.count() != 1 {
		t.Errorf("audit count = %d, want 1", audit.count())
	}
}

func TestSearch_EmptyIndex(t *testing.T) {
	audit := &mockAudit{}
	svc := New(&mockSynonyms{}, audit, activeWith(t), DefaultConfig(), nil)

	resp, err := svc.Search(context.Background(), "driver", 5)
	if err != nil {
		t.Fatal(err)
	}
	if resp.Message != MessageNoResults || audit.count() != 1 {
		t.Errorf("resp = %+v, audit = %d", resp, audit.count())
	}
}

func TestSearch_Rejected(t *testing.T) {
	tests := []struct {
		name  string
		query string
		topK  int
	}{
		{"blank query", "   ", 5},
		{"zero top_k", "driver", 0},
		{"negative top_k", "driver", -3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			audit := &mockAudit{}
			svc := New(&mockSynonyms{}, audit, activeWith(t, sampleRecords(t)...), DefaultConfig(), nil)

			_, err := svc.Search(context.Background(), tt.query, tt.topK)
			if !errors.Is(err, domain.ErrInvalidRequest) {
				t.Fatalf("expected ErrInvalidRequest, got %v", err)
			}
			if audit.count() != 0 {
				t.Error("rejected search must not be audited")
			}
		})
	}
}

func TestSearch_TopKClipped(t *testing.T) {
	audit := &mockAudit{}
	cfg := DefaultConfig()
	cfg.MaxTopK = 2
	svc := New(&mockSynonyms{}, audit, activeWith(t, sampleRecords(t)...), cfg, nil)

	if _, err := svc.Search(context.Background(), "driver", 1000); err != nil {
		t.Fatal(err)
	}
	if audit.entries[0].topK != 2 {
		t.Errorf("audited top_k = %d, want 2", audit.entries[0].topK)
	}
}

func TestSearch_SynonymSourceError(t *testing.T) {
	audit := &mockAudit{}
	svc := New(&mockSynonyms{err: errors.New("down")}, audit, activeWith(t, sampleRecords(t)...), DefaultConfig(), nil)

	_, err := svc.Search(context.Background(), "driver", 5)
	if err == nil || errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("expected storage error, got %v", err)
	}
	if audit.count() != 0 {
		t.Error("failed search must not be audited")
	}
}

func TestSearch_AuditError(t *testing.T) {
	auditErr := errors.New("disk full")
	svc := New(&mockSynonyms{}, &mockAudit{err: auditErr}, activeWith(t, sampleRecords(t)...), DefaultConfig(), nil)

	if _, err := svc.Search(context.Background(), "driver", 5); !errors.Is(err, auditErr) {
		t.Fatalf("expected audit error, got %v", err)
	}
}

func TestSearch_AuditCountMatchesCompletedSearches(t *testing.T) {
	audit := &mockAudit{}
	svc := New(&mockSynonyms{}, audit, activeWith(t, sampleRecords(t)...), DefaultConfig(), nil)

	var wg sync.WaitGroup
	var mu sync.Mutex
	completed := 0
	queries := []string{"driver", "", "carpenter", "zzz", "  ", "electrician"}
	for range 5 {
		for _, q := range queries {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := svc.Search(context.Background(), q, 3); err == nil {
					mu.Lock()
					completed++
					mu.Unlock()
				}
			}()
		}
	}
	wg.Wait()

	if completed != 20 || audit.count() != completed {
		t.Errorf("completed = %d, audit = %d", completed, audit.count())
	}
}

func TestNew_FillsDefaults(t *testing.T) {
	svc := New(&mockSynonyms{}, &mockAudit{}, domidx.NewActive(), Config{}, nil)
	if svc.DefaultTopK() != 5 || svc.cfg.MaxTopK != 50 {
		t.Errorf("defaults = %d/%d", svc.DefaultTopK(), svc.cfg.MaxTopK)
	}
}

func TestResultMessage(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "No results"},
		{1, "Found 1 result"},
		{2, "Found 2 results"},
		{50, "Found 50 results"},
	}
	for _, tt := range tests {
		if got := resultMessage(tt.n); got != tt.want {
			t.Errorf("resultMessage(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
