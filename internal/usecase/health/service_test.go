package health

import (
	"context"
	"errors"
	"testing"
	"time"

	domidx "github.com/kailas-cloud/ncosearch/internal/domain/index"
	"github.com/kailas-cloud/ncosearch/internal/domain/vocabulary"
)

// --- Mocks ---

type mockDBPinger struct {
	err error
}

func (m *mockDBPinger) Ping(_ context.Context) error { return m.err }

func builtIndex(t *testing.T) *domidx.Active {
	t.Helper()
	rec, err := vocabulary.New("A2", "Driver", "", "")
	if err != nil {
		t.Fatal(err)
	}
	ix, err := domidx.Build(context.Background(), []vocabulary.Record{rec}, 1)
	if err != nil {
		t.Fatal(err)
	}
	a := domidx.NewActive()
	a.Swap(ix, time.Now())
	return a
}

// --- Tests ---

func TestCheck_AllHealthy(t *testing.T) {
	svc := New(&mockDBPinger{}, builtIndex(t))
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if r.Checks["database"] != CheckOK {
		t.Errorf("expected database %q, got %q", CheckOK, r.Checks["database"])
	}
	if r.Checks["index"] != CheckOK {
		t.Errorf("expected index %q, got %q", CheckOK, r.Checks["index"])
	}
	if r.Generation != 1 || r.Records != 1 {
		t.Errorf("generation/records = %d/%d", r.Generation, r.Records)
	}
}

func TestCheck_DBError(t *testing.T) {
	svc := New(&mockDBPinger{err: errors.New("conn refused")}, builtIndex(t))
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["database"] != CheckError {
		t.Errorf("expected database %q, got %q", CheckError, r.Checks["database"])
	}
	if r.Checks["index"] != CheckOK {
		t.Errorf("expected index %q, got %q", CheckOK, r.Checks["index"])
	}
}

func TestCheck_EmptyIndex(t *testing.T) {
	svc := New(&mockDBPinger{}, domidx.NewActive())
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("empty index must not degrade, got %q", r.Status)
	}
	if r.Checks["index"] != CheckEmpty {
		t.Errorf("expected index %q, got %q", CheckEmpty, r.Checks["index"])
	}
}

func TestCheck_NoIndexReader(t *testing.T) {
	svc := New(&mockDBPinger{}, nil)
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if _, ok := r.Checks["index"]; ok {
		t.Error("index check should be absent when no reader is configured")
	}
}
