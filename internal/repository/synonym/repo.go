package synonym

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/ncosearch/internal/db"
	domsyn "github.com/kailas-cloud/ncosearch/internal/domain/synonym"
)

// store is the consumer interface for synonyms (ISP).
type store interface {
	AddSynonym(ctx context.Context, row db.SynonymRow) (db.SynonymRow, error)
	Synonyms(ctx context.Context) ([]db.SynonymRow, error)
	DeleteSynonym(ctx context.Context, id string) error
}

// Repo implements usecase/synonym.Repository and the search synonym source.
type Repo struct {
	store store
}

// New creates a synonym repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Add persists e.
func (r *Repo) Add(ctx context.Context, e *domsyn.Entry) error {
	if _, err := r.store.AddSynonym(ctx, toRow(e)); err != nil {
		return fmt.Errorf("add synonym %s: %w", e.ID(), err)
	}
	return nil
}

// List returns every entry in creation order.
func (r *Repo) List(ctx context.Context) ([]domsyn.Entry, error) {
	rows, err := r.store.Synonyms(ctx)
	if err != nil {
		return nil, fmt.Errorf("list synonyms: %w", err)
	}
	out := make([]domsyn.Entry, len(rows))
	for i, row := range rows {
		out[i] = fromRow(row)
	}
	return out, nil
}

// Delete removes the entry with id. Missing ids are not an error.
func (r *Repo) Delete(ctx context.Context, id string) error {
	if err := r.store.DeleteSynonym(ctx, id); err != nil {
		return fmt.Errorf("delete synonym %s: %w", id, err)
	}
	return nil
}
