package synonym

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/ncosearch/internal/db"
	domsyn "github.com/kailas-cloud/ncosearch/internal/domain/synonym"
)

func TestAdd(t *testing.T) {
	repo, ms := newTestRepo(t)

	var got db.SynonymRow
	ms.addFn = func(_ context.Context, row db.SynonymRow) (db.SynonymRow, error) {
		got = row
		row.Seq = 1
		return row, nil
	}

	e, err := domsyn.New("s1", "Driver", "Chauffeur", 42)
	if err != nil {
		t.Fatal(err)
	}
	if err := repo.Add(context.Background(), &e); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := db.SynonymRow{ID: "s1", For: "Driver", Term: "Chauffeur", CreatedAt: 42}
	if got != want {
		t.Errorf("row = %+v, want %+v", got, want)
	}
}

func TestAdd_Error(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.addFn = func(_ context.Context, _ db.SynonymRow) (db.SynonymRow, error) {
		return db.SynonymRow{}, errors.New("down")
	}
	e := domsyn.Reconstruct("s1", "a", "b", 0)
	if err := repo.Add(context.Background(), &e); err == nil {
		t.Fatal("expected error")
	}
}

func TestList(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.synonymsFn = func(_ context.Context) ([]db.SynonymRow, error) {
		return []db.SynonymRow{
			{ID: "a", For: "driver", Term: "chauffeur", CreatedAt: 1, Seq: 1},
			{ID: "b", For: "coder", Term: "software engineer", CreatedAt: 2, Seq: 2},
		}, nil
	}

	entries, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 || entries[0].ID() != "a" || entries[1].For() != "coder" {
		t.Fatalf("entries = %+v", entries)
	}
	if len(entries[1].TermTokens()) != 2 {
		t.Errorf("TermTokens() = %v", entries[1].TermTokens())
	}
}

func TestDelete(t *testing.T) {
	repo, ms := newTestRepo(t)
	var deleted string
	ms.deleteFn = func(_ context.Context, id string) error {
		deleted = id
		return nil
	}
	if err := repo.Delete(context.Background(), "x"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted != "x" {
		t.Errorf("deleted = %q", deleted)
	}

	ms.deleteFn = func(_ context.Context, _ string) error { return errors.New("down") }
	if err := repo.Delete(context.Background(), "x"); err == nil {
		t.Fatal("expected error")
	}
}
