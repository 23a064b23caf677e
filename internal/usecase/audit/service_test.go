package audit

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	domaudit "github.com/kailas-cloud/ncosearch/internal/domain/audit"
	"github.com/kailas-cloud/ncosearch/internal/domain/search/result"
)

type mockRepo struct {
	mu        sync.Mutex
	entries   []domaudit.Entry
	lastLimit int
	err       error
}

func (m *mockRepo) Append(_ context.Context, e *domaudit.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.entries = append(m.entries, *e)
	return nil
}

func (m *mockRepo) List(_ context.Context, limit int) ([]domaudit.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastLimit = limit
	if m.err != nil {
		return nil, m.err
	}
	if limit > 0 && len(m.entries) > limit {
		return m.entries[len(m.entries)-limit:], nil
	}
	return m.entries, nil
}

func TestRecord(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo, 0)
	svc.now = func() time.Time { return time.UnixMilli(42) }
	svc.newID = func() string { return "id-1" }

	e, err := svc.Record(context.Background(), "Driver", "driver chauffeur", 2, []result.Result{
		result.New("A2", "Driver", "desc", "path", 1),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.ID() != "id-1" || e.At() != 42 || e.Query() != "Driver" || e.Expanded() != "driver chauffeur" || e.TopK() != 2 {
		t.Errorf("entry = %+v", e)
	}
	if len(e.Hits()) != 1 || e.Hits()[0] != (domaudit.Hit{Code: "A2", Title: "Driver", Confidence: 1}) {
		t.Errorf("hits = %+v", e.Hits())
	}
	if len(repo.entries) != 1 {
		t.Errorf("entries = %d", len(repo.entries))
	}
}

func TestRecord_EmptyResults(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo, 0)
	if _, err := svc.Record(context.Background(), "zzz", "zzz", 5, nil); err != nil {
		t.Fatal(err)
	}
	if len(repo.entries) != 1 || len(repo.entries[0].Hits()) != 0 {
		t.Errorf("entries = %+v", repo.entries)
	}
}

func TestRecord_Error(t *testing.T) {
	svc := New(&mockRepo{err: errors.New("down")}, 0)
	if _, err := svc.Record(context.Background(), "q", "q", 5, nil); err == nil {
		t.Fatal("expected error")
	}
}

func TestRecord_Concurrent(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo, 0)

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.Record(context.Background(), fmt.Sprint(i), "", 5, nil)
		}()
	}
	wg.Wait()
	if len(repo.entries) != 20 {
		t.Errorf("entries = %d, want 20", len(repo.entries))
	}
}

func TestList_Limits(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo, 3)
	for i := range 5 {
		_, _ = svc.Record(context.Background(), fmt.Sprint(i), "", 5, nil)
	}

	got, err := svc.List(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if repo.lastLimit != 3 || len(got) != 3 || got[0].Query() != "2" {
		t.Errorf("default limit: limit=%d len=%d", repo.lastLimit, len(got))
	}

	zero := 0
	got, _ = svc.List(context.Background(), &zero)
	if len(got) != 5 || got[0].Query() != "0" || got[4].Query() != "4" {
		t.Errorf("limit 0 should return all in order, got %d", len(got))
	}

	one := 1
	got, _ = svc.List(context.Background(), &one)
	if len(got) != 1 || got[0].Query() != "4" {
		t.Errorf("limit 1 = %+v", got)
	}
}

func TestNew_DefaultLimit(t *testing.T) {
	if svc := New(&mockRepo{}, -1); svc.defaultLimit != DefaultListLimit {
		t.Errorf("defaultLimit = %d", svc.defaultLimit)
	}
}
